package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() *CalculatorDefinition {
	return &CalculatorDefinition{
		ID:          "test-calc",
		Name:        "Test calculator",
		Description: "A minimal valid definition",
		Category:    KidneyFunction,
		Inputs: []InputSpec{
			{ID: "x", Label: "X", Kind: InputNumeric, Required: true},
		},
		ResultLabel:     "X doubled",
		ResultPrecision: 1,
		Interpretation:  NewRule("always"),
		Compute: func(in CalcInputs) float64 {
			return in.Number("x") * 2
		},
	}
}

func TestCalculatorDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *CalculatorDefinition)
		wantErr string
	}{
		{
			name:   "valid definition",
			mutate: func(d *CalculatorDefinition) {},
		},
		{
			name:    "missing id",
			mutate:  func(d *CalculatorDefinition) { d.ID = "" },
			wantErr: "id is required",
		},
		{
			name:    "missing name",
			mutate:  func(d *CalculatorDefinition) { d.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "unknown category",
			mutate:  func(d *CalculatorDefinition) { d.Category = Category("Astrology") },
			wantErr: "invalid calculator category",
		},
		{
			name:    "no inputs",
			mutate:  func(d *CalculatorDefinition) { d.Inputs = nil },
			wantErr: "at least one input",
		},
		{
			name: "duplicate input ids",
			mutate: func(d *CalculatorDefinition) {
				d.Inputs = append(d.Inputs, InputSpec{ID: "x", Label: "X again", Kind: InputNumeric})
			},
			wantErr: "duplicate input id",
		},
		{
			name: "select without options",
			mutate: func(d *CalculatorDefinition) {
				d.Inputs = append(d.Inputs, InputSpec{ID: "mode", Label: "Mode", Kind: InputSelect})
			},
			wantErr: "options are required",
		},
		{
			name: "min exceeds max",
			mutate: func(d *CalculatorDefinition) {
				lo, hi := 10.0, 1.0
				d.Inputs[0].Min = &lo
				d.Inputs[0].Max = &hi
			},
			wantErr: "min exceeds max",
		},
		{
			name:    "missing compute",
			mutate:  func(d *CalculatorDefinition) { d.Compute = nil },
			wantErr: "compute function is required",
		},
		{
			name: "interpretation missing catch-all",
			mutate: func(d *CalculatorDefinition) {
				d.Interpretation = InterpretationRule{Bands: []Band{{Op: OpLT, Threshold: 1, Text: "low"}}}
			},
			wantErr: "catch-all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(def)

			err := def.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputSpec_HasUnitToggle(t *testing.T) {
	assert.True(t, InputSpec{Kind: InputNumeric, Analyte: Creatinine}.HasUnitToggle())
	assert.False(t, InputSpec{Kind: InputNumeric}.HasUnitToggle(), "dimensionless numeric has no toggle")
	assert.False(t, InputSpec{Kind: InputSelect, Analyte: Creatinine}.HasUnitToggle())
}

func TestUnitSystem(t *testing.T) {
	assert.True(t, Conventional.IsValid())
	assert.True(t, SI.IsValid())
	assert.False(t, UnitSystem("imperial").IsValid())

	assert.Equal(t, SI, Conventional.Other())
	assert.Equal(t, Conventional, SI.Other())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeMissingRequiredField, ErrorCode(&MissingFieldError{FieldID: "age"}))
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(&InvalidInputError{FieldID: "age", Reason: "not a number"}))
	assert.Equal(t, ErrCodeUnsupportedConversion, ErrorCode(&UnsupportedConversionError{FromUnit: "a", ToUnit: "b"}))
	assert.Equal(t, ErrCodeInternalServer, ErrorCode(assert.AnError))
}
