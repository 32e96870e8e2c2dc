// Package domain contains core business entities and types for derived
// clinical metric calculation: laboratory analytes, unit-system conversion
// metadata, calculator definitions, and interpretation bands.
//
// Unit conversion factors follow the AMA Manual of Style conversion tables
// for laboratory values (conventional vs. SI reporting).
package domain

import (
	"errors"
)

// UnitSystem identifies one of the two competing laboratory unit systems.
// Every unit-bearing input value carries one of these flags from the point
// of origin; the system is never inferred from the literal unit string.
type UnitSystem string

const (
	Conventional UnitSystem = "conventional"
	SI           UnitSystem = "si"
)

// Category groups calculators for catalog browsing. The set is fixed;
// the registry indexes definitions by category in insertion order.
type Category string

const (
	KidneyFunction  Category = "Kidney Function"
	AcidBase        Category = "Electrolytes & Acid-Base"
	FluidsSodium    Category = "Fluids & Sodium"
	Dialysis        Category = "Dialysis"
	MineralBone     Category = "Mineral & Bone"
	Proteinuria     Category = "Proteinuria"
	Anthropometrics Category = "Anthropometrics"
	RiskScores      Category = "Risk Scores"
	LabsLipids      Category = "Labs & Lipids"
)

// InputKind identifies how a calculator input is captured and parsed.
type InputKind string

const (
	InputNumeric InputKind = "numeric"
	InputSelect  InputKind = "single-select"
	InputBoolean InputKind = "boolean"
	InputRadio   InputKind = "radio"
)

// Lookup and conversion sentinel errors.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidUnitSystem     = errors.New("invalid unit system")
	ErrInvalidCategory       = errors.New("invalid calculator category")
	ErrInvalidInputKind      = errors.New("invalid input kind")
	ErrUnsupportedConversion = errors.New("unsupported unit conversion")
)

// IsValid validates the unit system flag. Clinical arithmetic must never
// run on a value whose unit system is unknown.
func (s UnitSystem) IsValid() bool {
	switch s {
	case Conventional, SI:
		return true
	default:
		return false
	}
}

// String returns the string representation of the unit system.
func (s UnitSystem) String() string {
	return string(s)
}

// Other returns the opposite unit system.
func (s UnitSystem) Other() UnitSystem {
	if s == Conventional {
		return SI
	}
	return Conventional
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		KidneyFunction,
		AcidBase,
		FluidsSodium,
		Dialysis,
		MineralBone,
		Proteinuria,
		Anthropometrics,
		RiskScores,
		LabsLipids,
	}
}

// IsValid validates the category against the fixed set.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid validates the input kind.
func (k InputKind) IsValid() bool {
	switch k {
	case InputNumeric, InputSelect, InputBoolean, InputRadio:
		return true
	default:
		return false
	}
}
