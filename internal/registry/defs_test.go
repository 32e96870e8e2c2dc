package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// compute runs a calculator's formula on pre-normalized inputs, bypassing
// parsing. Numbers must already be in the unit system the formula expects.
func compute(t *testing.T, id string, in domain.CalcInputs) float64 {
	t.Helper()
	def, err := Default().GetByID(id)
	require.NoError(t, err)
	return def.Compute(in)
}

func numbers(kv map[string]float64) domain.CalcInputs {
	return domain.CalcInputs{Numbers: kv, Choices: map[string]string{}, Flags: map[string]bool{}}
}

func TestComputeFormulas(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		in    domain.CalcInputs
		want  float64
		delta float64
	}{
		{
			name: "CKD-EPI 2021 male with normal creatinine",
			id:   "ckd-epi-2021",
			in: domain.CalcInputs{
				Numbers: map[string]float64{"creatinine": 0.9, "age": 50},
				Choices: map[string]string{"sex": "male"},
			},
			// 142 * 0.9938^50 for scr at kappa
			want:  104.0,
			delta: 0.5,
		},
		{
			name: "CKD-EPI 2021 female low creatinine",
			id:   "ckd-epi-2021",
			in: domain.CalcInputs{
				Numbers: map[string]float64{"creatinine": 0.7, "age": 40},
				Choices: map[string]string{"sex": "female"},
			},
			want:  112.3,
			delta: 0.5,
		},
		{
			name:  "anion gap",
			id:    "anion-gap",
			in:    numbers(map[string]float64{"sodium": 140, "chloride": 104, "bicarbonate": 21}),
			want:  15,
			delta: 1e-9,
		},
		{
			name:  "corrected calcium",
			id:    "corrected-calcium",
			in:    numbers(map[string]float64{"calcium": 7.5, "albumin": 2.0}),
			want:  9.1,
			delta: 1e-9,
		},
		{
			name:  "FENa prerenal pattern",
			id:    "fena",
			in:    numbers(map[string]float64{"urine_sodium": 20, "plasma_sodium": 140, "urine_creatinine": 80, "plasma_creatinine": 2.0}),
			want:  0.3571,
			delta: 1e-3,
		},
		{
			name:  "Winter's formula",
			id:    "winters-formula",
			in:    numbers(map[string]float64{"bicarbonate": 12}),
			want:  26,
			delta: 1e-9,
		},
		{
			name:  "urea reduction ratio",
			id:    "urr",
			in:    numbers(map[string]float64{"pre_bun": 60, "post_bun": 18}),
			want:  70,
			delta: 1e-9,
		},
		{
			name:  "BMI",
			id:    "bmi",
			in:    numbers(map[string]float64{"weight": 80, "height": 180}),
			want:  24.69,
			delta: 0.01,
		},
		{
			name:  "BSA Mosteller",
			id:    "bsa-mosteller",
			in:    numbers(map[string]float64{"height": 180, "weight": 72}),
			want:  1.897,
			delta: 0.001,
		},
		{
			name: "ideal body weight Devine male",
			id:   "ibw-devine",
			in: domain.CalcInputs{
				Numbers: map[string]float64{"height": 70},
				Choices: map[string]string{"sex": "male"},
			},
			want:  73.0,
			delta: 1e-9,
		},
		{
			name: "total body water Watson female",
			id:   "tbw-watson",
			in: domain.CalcInputs{
				Numbers: map[string]float64{"age": 60, "height": 165, "weight": 70},
				Choices: map[string]string{"sex": "female"},
			},
			// -2.097 + 0.1069*165 + 0.2466*70
			want:  32.8,
			delta: 0.05,
		},
		{
			name:  "mean arterial pressure",
			id:    "map",
			in:    numbers(map[string]float64{"systolic": 120, "diastolic": 80}),
			want:  93.333,
			delta: 0.001,
		},
		{
			name:  "LDL Friedewald",
			id:    "ldl-friedewald",
			in:    numbers(map[string]float64{"total_cholesterol": 200, "hdl": 50, "triglycerides": 150}),
			want:  120,
			delta: 1e-9,
		},
		{
			name:  "estimated average glucose",
			id:    "eag-hba1c",
			in:    numbers(map[string]float64{"hba1c": 7}),
			want:  154.2,
			delta: 0.01,
		},
		{
			name:  "transferrin saturation",
			id:    "tsat",
			in:    numbers(map[string]float64{"serum_iron": 60, "tibc": 300}),
			want:  20,
			delta: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compute(t, tt.id, tt.in)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestKFRE_KnownRiskProfile(t *testing.T) {
	// The published four-variable KFRE validation profile: risk must rise
	// with horizon and fall with eGFR.
	in := domain.CalcInputs{
		Numbers: map[string]float64{"age": 65, "egfr": 25, "acr": 300},
		Choices: map[string]string{"sex": "male"},
	}

	twoYear := compute(t, "kfre-2yr", in)
	fiveYear := compute(t, "kfre-5yr", in)

	assert.Greater(t, twoYear, 0.0)
	assert.Less(t, twoYear, 100.0)
	assert.Greater(t, fiveYear, twoYear, "5-year risk exceeds 2-year risk")

	better := domain.CalcInputs{
		Numbers: map[string]float64{"age": 65, "egfr": 50, "acr": 300},
		Choices: map[string]string{"sex": "male"},
	}
	assert.Less(t, compute(t, "kfre-2yr", better), twoYear, "higher eGFR lowers risk")
}

func TestMehranScore_AdditiveComponents(t *testing.T) {
	base := domain.CalcInputs{
		Numbers: map[string]float64{"contrast_volume": 0},
		Choices: map[string]string{"egfr_band": "0"},
		Flags: map[string]bool{
			"hypotension": false, "iabp": false, "chf": false,
			"age_over_75": false, "anemia": false, "diabetes": false,
		},
	}
	assert.InDelta(t, 0, compute(t, "mehran-score", base), 1e-9)

	loaded := domain.CalcInputs{
		Numbers: map[string]float64{"contrast_volume": 250},
		Choices: map[string]string{"egfr_band": "6"},
		Flags: map[string]bool{
			"hypotension": true, "iabp": true, "chf": true,
			"age_over_75": true, "anemia": true, "diabetes": true,
		},
	}
	// 5+5+5+4+3+3 flags + 6 band + floor(250/100)
	assert.InDelta(t, 33, compute(t, "mehran-score", loaded), 1e-9)
}
