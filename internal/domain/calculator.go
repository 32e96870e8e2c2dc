package domain

import (
	"fmt"
)

// InputOption is one entry of a select or radio input.
type InputOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// InputSpec describes one calculator input field. Order within a
// CalculatorDefinition is the form display order.
type InputSpec struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Kind     InputKind     `json:"kind"`
	Required bool          `json:"required"`
	Options  []InputOption `json:"options,omitempty"`

	// Analyte is set on unit-bearing numeric inputs and links the field to
	// its conversion factor pair. Empty for dimensionless or categorical
	// inputs (age, sex, session time, score components).
	Analyte Analyte `json:"analyte,omitempty"`

	// FormulaSystem is the unit system the compute function expects this
	// input in. Zero value means conventional; anthropometric formulas
	// typically want SI (kg, cm) while lab formulas want conventional.
	FormulaSystem UnitSystem `json:"formula_system,omitempty"`

	// Unit is the display unit for inputs without a unit toggle
	// (years, hours, mL, mmHg). Unit-toggling fields derive their unit
	// label from the analyte conversion instead.
	Unit string `json:"unit,omitempty"`

	// Declared bounds, expressed in the unit the formula expects
	// (FormulaSystem) for unit-bearing inputs. Nil means unbounded on
	// that side.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step float64  `json:"step,omitempty"`
}

// HasUnitToggle reports whether the input accepts values in either unit
// system and therefore needs normalization before evaluation.
func (s InputSpec) HasUnitToggle() bool {
	return s.Kind == InputNumeric && s.Analyte != ""
}

// CalcInputs carries parsed, normalized inputs into a compute function.
// Numeric values are already normalized to the canonical unit the formula
// expects; categorical values pass through uninterpreted.
type CalcInputs struct {
	Numbers map[string]float64
	Choices map[string]string
	Flags   map[string]bool
}

// Number returns the parsed numeric input for the given field id, or zero
// when the optional field was left empty.
func (in CalcInputs) Number(id string) float64 {
	return in.Numbers[id]
}

// Has reports whether a numeric value was supplied for the field.
func (in CalcInputs) Has(id string) bool {
	_, ok := in.Numbers[id]
	return ok
}

// Choice returns the selected option value for a select or radio field.
func (in CalcInputs) Choice(id string) string {
	return in.Choices[id]
}

// Flag returns the boolean input for the given field id.
func (in CalcInputs) Flag(id string) bool {
	return in.Flags[id]
}

// ComputeFunc is the registered pure formula for one calculator. Inputs are
// validated and normalized before the function runs; it must be deterministic
// and free of side effects.
type ComputeFunc func(in CalcInputs) float64

// CalculatorDefinition is one immutable entry of the calculator catalog.
// Definitions are constructed once at startup and never mutated; the registry
// is safe for unsynchronized concurrent reads.
type CalculatorDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Inputs      []InputSpec `json:"inputs"`

	ResultLabel     string             `json:"result_label"`
	ResultUnit      string             `json:"result_unit"`
	ResultPrecision int                `json:"result_precision"`
	Interpretation  InterpretationRule `json:"interpretation"`

	ClinicalPearls []string `json:"clinical_pearls,omitempty"`
	References     []string `json:"references,omitempty"`

	// Compute is the bespoke closed-form formula for this calculator.
	Compute ComputeFunc `json:"-"`
}

// Input returns the InputSpec with the given id.
func (d *CalculatorDefinition) Input(id string) (InputSpec, bool) {
	for _, spec := range d.Inputs {
		if spec.ID == id {
			return spec, true
		}
	}
	return InputSpec{}, false
}

// Validate enforces the structural invariants a definition must satisfy
// before it may enter the registry. Definitions are static data, so a
// violation is a programming error surfaced at startup.
func (d *CalculatorDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("calculator validation: id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("calculator validation %q: name is required", d.ID)
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("calculator validation %q: %w", d.ID, ErrInvalidCategory)
	}
	if len(d.Inputs) == 0 {
		return fmt.Errorf("calculator validation %q: at least one input is required", d.ID)
	}
	seen := make(map[string]bool, len(d.Inputs))
	for _, spec := range d.Inputs {
		if spec.ID == "" {
			return fmt.Errorf("calculator validation %q: input id is required", d.ID)
		}
		if seen[spec.ID] {
			return fmt.Errorf("calculator validation %q: duplicate input id %q", d.ID, spec.ID)
		}
		seen[spec.ID] = true
		if !spec.Kind.IsValid() {
			return fmt.Errorf("calculator validation %q input %q: %w", d.ID, spec.ID, ErrInvalidInputKind)
		}
		if (spec.Kind == InputSelect || spec.Kind == InputRadio) && len(spec.Options) == 0 {
			return fmt.Errorf("calculator validation %q input %q: options are required for %s inputs", d.ID, spec.ID, spec.Kind)
		}
		if spec.Min != nil && spec.Max != nil && *spec.Min > *spec.Max {
			return fmt.Errorf("calculator validation %q input %q: min exceeds max", d.ID, spec.ID)
		}
	}
	if d.Compute == nil {
		return fmt.Errorf("calculator validation %q: compute function is required", d.ID)
	}
	if err := d.Interpretation.Validate(); err != nil {
		return fmt.Errorf("calculator validation %q: %w", d.ID, err)
	}
	return nil
}
