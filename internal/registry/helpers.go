package registry

import (
	"strconv"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

func fptr(v float64) *float64 {
	return &v
}

// choiceNumber parses a select option value that carries a numeric payload
// (e.g. infusate sodium content). Option values are static catalog data, so
// a parse failure is a catalog bug; it yields zero rather than panicking.
func choiceNumber(value string) float64 {
	v, _ := strconv.ParseFloat(value, 64)
	return v
}

// analyteInput builds a required numeric input with a unit toggle. Bounds
// are in the input's conventional unit unless the input is later switched
// to an SI formula system with inSI.
func analyteInput(id, label string, analyte domain.Analyte, min, max, step float64) domain.InputSpec {
	return domain.InputSpec{
		ID:       id,
		Label:    label,
		Kind:     domain.InputNumeric,
		Required: true,
		Analyte:  analyte,
		Min:      fptr(min),
		Max:      fptr(max),
		Step:     step,
	}
}

// numberInput builds a required numeric input without a unit toggle.
func numberInput(id, label, unit string, min, max, step float64) domain.InputSpec {
	return domain.InputSpec{
		ID:       id,
		Label:    label,
		Kind:     domain.InputNumeric,
		Required: true,
		Unit:     unit,
		Min:      fptr(min),
		Max:      fptr(max),
		Step:     step,
	}
}

// inSI marks a unit-bearing input as one the formula consumes in SI units
// (weight in kg, height in cm).
func inSI(spec domain.InputSpec) domain.InputSpec {
	spec.FormulaSystem = domain.SI
	return spec
}

// optional clears the required flag.
func optional(spec domain.InputSpec) domain.InputSpec {
	spec.Required = false
	return spec
}

// sexInput is the standard biological-sex covariate, passed through to
// formulas uninterpreted as the option value.
func sexInput() domain.InputSpec {
	return domain.InputSpec{
		ID:       "sex",
		Label:    "Sex",
		Kind:     domain.InputRadio,
		Required: true,
		Options: []domain.InputOption{
			{Value: "male", Label: "Male"},
			{Value: "female", Label: "Female"},
		},
	}
}

func boolInput(id, label string) domain.InputSpec {
	return domain.InputSpec{
		ID:       id,
		Label:    label,
		Kind:     domain.InputBoolean,
		Required: false,
	}
}

func selectInput(id, label string, options ...domain.InputOption) domain.InputSpec {
	return domain.InputSpec{
		ID:       id,
		Label:    label,
		Kind:     domain.InputSelect,
		Required: true,
		Options:  options,
	}
}

// ageInput is the standard adult age covariate in years.
func ageInput() domain.InputSpec {
	return numberInput("age", "Age", "years", 18, 120, 1)
}

func gte(threshold float64, text string) domain.Band {
	return domain.Band{Op: domain.OpGTE, Threshold: threshold, Text: text}
}

func gt(threshold float64, text string) domain.Band {
	return domain.Band{Op: domain.OpGT, Threshold: threshold, Text: text}
}

func lte(threshold float64, text string) domain.Band {
	return domain.Band{Op: domain.OpLTE, Threshold: threshold, Text: text}
}

func lt(threshold float64, text string) domain.Band {
	return domain.Band{Op: domain.OpLT, Threshold: threshold, Text: text}
}
