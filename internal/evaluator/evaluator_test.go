package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return New(registry.Default(), units.NewEngine(nil), nil)
}

func TestEvaluate_FENa(t *testing.T) {
	eval := newTestEvaluator(t)

	result, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "fena",
		Values: map[string]string{
			"urine_sodium":      "20",
			"plasma_sodium":     "140",
			"urine_creatinine":  "80",
			"plasma_creatinine": "2.0",
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.3571, result.Value, 1e-3)
	assert.Equal(t, "%", result.Unit)
	assert.Equal(t, "Prerenal azotemia", result.Interpretation)
	assert.Empty(t, result.Warnings)
}

func TestEvaluate_CorrectedCalcium(t *testing.T) {
	eval := newTestEvaluator(t)

	result, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "corrected-calcium",
		Values: map[string]string{
			"calcium": "7.5",
			"albumin": "2.0",
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 9.1, result.Value, 1e-9)
	assert.Equal(t, "Normal corrected calcium", result.Interpretation)
}

func TestEvaluate_AnionGap(t *testing.T) {
	eval := newTestEvaluator(t)

	result, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "anion-gap",
		Values: map[string]string{
			"sodium":      "140",
			"chloride":    "104",
			"bicarbonate": "21",
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 15, result.Value, 1e-9)
	assert.Equal(t, "Borderline high", result.Interpretation)
}

func TestEvaluate_SIUnitNormalization(t *testing.T) {
	eval := newTestEvaluator(t)

	conventional, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "ckd-epi-2021",
		Values: map[string]string{
			"creatinine": "1.2",
			"age":        "55",
			"sex":        "male",
		},
	})
	require.NoError(t, err)

	// The same creatinine expressed in µmol/L must yield the same eGFR.
	si, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "ckd-epi-2021",
		Values: map[string]string{
			"creatinine": "106.08",
			"age":        "55",
			"sex":        "male",
		},
		UnitSystems: map[string]domain.UnitSystem{"creatinine": domain.SI},
	})
	require.NoError(t, err)

	assert.InDelta(t, conventional.Value, si.Value, 1e-6)
}

func TestInterpret_StageBoundary(t *testing.T) {
	eval := newTestEvaluator(t)

	// Interpretation resolves on the unrounded value: 89.999 displays as
	// 90 but still falls in Stage 2.
	stage1, err := eval.Interpret("ckd-epi-2021", 90)
	require.NoError(t, err)
	assert.Contains(t, stage1, "Stage 1")

	stage2, err := eval.Interpret("ckd-epi-2021", 89.999)
	require.NoError(t, err)
	assert.Contains(t, stage2, "Stage 2")

	_, err = eval.Interpret("no-such-calculator", 50)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	eval := newTestEvaluator(t)

	tests := []struct {
		name     string
		req      domain.EvaluationRequest
		wantCode string
	}{
		{
			name: "unknown calculator",
			req: domain.EvaluationRequest{
				CalculatorID: "phlogiston-index",
				Values:       map[string]string{},
			},
			wantCode: domain.ErrCodeInternalServer, // code assigned at API layer via ErrNotFound
		},
		{
			name: "missing required field",
			req: domain.EvaluationRequest{
				CalculatorID: "anion-gap",
				Values: map[string]string{
					"sodium":   "140",
					"chloride": "104",
				},
			},
			wantCode: domain.ErrCodeMissingRequiredField,
		},
		{
			name: "whitespace-only value counts as missing",
			req: domain.EvaluationRequest{
				CalculatorID: "anion-gap",
				Values: map[string]string{
					"sodium":      "140",
					"chloride":    "104",
					"bicarbonate": "   ",
				},
			},
			wantCode: domain.ErrCodeMissingRequiredField,
		},
		{
			name: "non-numeric value",
			req: domain.EvaluationRequest{
				CalculatorID: "anion-gap",
				Values: map[string]string{
					"sodium":      "one forty",
					"chloride":    "104",
					"bicarbonate": "21",
				},
			},
			wantCode: domain.ErrCodeInvalidInput,
		},
		{
			name: "non-finite value",
			req: domain.EvaluationRequest{
				CalculatorID: "anion-gap",
				Values: map[string]string{
					"sodium":      "NaN",
					"chloride":    "104",
					"bicarbonate": "21",
				},
			},
			wantCode: domain.ErrCodeInvalidInput,
		},
		{
			name: "value above declared maximum",
			req: domain.EvaluationRequest{
				CalculatorID: "corrected-calcium",
				Values: map[string]string{
					"calcium": "25",
					"albumin": "4",
				},
			},
			wantCode: domain.ErrCodeInvalidInput,
		},
		{
			name: "unknown select option",
			req: domain.EvaluationRequest{
				CalculatorID: "ckd-epi-2021",
				Values: map[string]string{
					"creatinine": "1.0",
					"age":        "50",
					"sex":        "unknown",
				},
			},
			wantCode: domain.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.Evaluate(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
		})
	}
}

func TestEvaluate_BoundsCheckedAfterNormalization(t *testing.T) {
	eval := newTestEvaluator(t)

	// 110 µmol/L is within creatinine bounds once converted to mg/dL even
	// though 110 would exceed the conventional maximum of 25.
	_, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "ckd-epi-2021",
		Values: map[string]string{
			"creatinine": "110",
			"age":        "60",
			"sex":        "female",
		},
		UnitSystems: map[string]domain.UnitSystem{"creatinine": domain.SI},
	})
	require.NoError(t, err)

	// Entered as conventional the same literal is out of bounds.
	_, err = eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "ckd-epi-2021",
		Values: map[string]string{
			"creatinine": "110",
			"age":        "60",
			"sex":        "female",
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}

func TestEvaluate_MetricDefaultsForSIFormulas(t *testing.T) {
	eval := newTestEvaluator(t)

	// Height and weight are consumed in SI; with no unit_systems entry the
	// values must pass through as cm and kg, not be converted from in/lb.
	req := domain.EvaluationRequest{
		CalculatorID: "tbw-watson",
		Values: map[string]string{
			"age":    "60",
			"height": "165",
			"weight": "70",
			"sex":    "female",
		},
	}
	result, err := eval.Evaluate(req)
	require.NoError(t, err)
	assert.InDelta(t, 32.8, result.Value, 0.1)

	// Explicit SI flags are identical to the default.
	flagged := req
	flagged.UnitSystems = map[string]domain.UnitSystem{
		"height": domain.SI,
		"weight": domain.SI,
	}
	same, err := eval.Evaluate(flagged)
	require.NoError(t, err)
	assert.Equal(t, result.Value, same.Value)

	// An explicit conventional flag still converts: 154.324 lb is 70 kg.
	pounds := domain.EvaluationRequest{
		CalculatorID: "tbw-watson",
		Values: map[string]string{
			"age":    "60",
			"height": "165",
			"weight": "154.324",
			"sex":    "female",
		},
		UnitSystems: map[string]domain.UnitSystem{"weight": domain.Conventional},
	}
	converted, err := eval.Evaluate(pounds)
	require.NoError(t, err)
	assert.InDelta(t, result.Value, converted.Value, 0.001)
}

func TestEvaluate_UnknownFieldsIgnored(t *testing.T) {
	eval := newTestEvaluator(t)

	result, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "map",
		Values: map[string]string{
			"systolic":    "120",
			"diastolic":   "80",
			"extra_field": "ignored",
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 93.333, result.Value, 1e-3)
}

func TestEvaluate_BooleanAndSelectInputs(t *testing.T) {
	eval := newTestEvaluator(t)

	result, err := eval.Evaluate(domain.EvaluationRequest{
		CalculatorID: "mehran-score",
		Values: map[string]string{
			"hypotension":     "false",
			"iabp":            "false",
			"chf":             "false",
			"age_over_75":     "false",
			"anemia":          "false",
			"diabetes":        "true",
			"contrast_volume": "150",
			"egfr_band":       "2",
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 6, result.Value, 1e-9) // 3 + 1 + 2
}

func TestEvaluate_Deterministic(t *testing.T) {
	eval := newTestEvaluator(t)

	req := domain.EvaluationRequest{
		CalculatorID: "bmi",
		Values: map[string]string{
			"weight": "80",
			"height": "180",
		},
	}

	first, err := eval.Evaluate(req)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := eval.Evaluate(req)
		require.NoError(t, err)
		assert.Equal(t, first.Value, again.Value)
		assert.Equal(t, first.Interpretation, again.Interpretation)
	}
}
