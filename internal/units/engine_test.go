package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

const tolerance = 1e-6

func TestEngine_ToSI(t *testing.T) {
	eng := NewEngine(nil)

	tests := []struct {
		name    string
		analyte domain.Analyte
		value   float64
		want    float64
	}{
		{"creatinine mg/dL to µmol/L", domain.Creatinine, 1.2, 106.08},
		{"calcium mg/dL to mmol/L", domain.Calcium, 10.0, 2.495},
		{"albumin g/dL to g/L", domain.Albumin, 4.0, 40.0},
		{"sodium identity factor", domain.Sodium, 140, 140},
		{"weight lb to kg", domain.Weight, 154.324, 70.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.ToSI(tt.value, tt.analyte)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-3)
		})
	}
}

func TestEngine_RoundTrip(t *testing.T) {
	eng := NewEngine(nil)

	// Reciprocal factor pairs must round-trip within floating point noise
	// for every analyte in the vocabulary.
	for _, conv := range Conversions() {
		si, err := eng.ToSI(1.7, conv.Analyte)
		require.NoError(t, err, "analyte %s", conv.Analyte)

		back, err := eng.ToConventional(si, conv.Analyte)
		require.NoError(t, err, "analyte %s", conv.Analyte)

		assert.InDelta(t, 1.7, back, tolerance, "analyte %s", conv.Analyte)
	}
}

func TestEngine_Normalize(t *testing.T) {
	eng := NewEngine(nil)

	t.Run("identity when systems match", func(t *testing.T) {
		got, err := eng.Normalize(1.2, domain.Creatinine, domain.Conventional, domain.Conventional)
		require.NoError(t, err)
		assert.Equal(t, 1.2, got)
	})

	t.Run("SI to conventional", func(t *testing.T) {
		got, err := eng.NormalizeToConventional(106.08, domain.Creatinine, domain.SI)
		require.NoError(t, err)
		assert.InDelta(t, 1.2, got, tolerance)
	})

	t.Run("invalid unit system", func(t *testing.T) {
		_, err := eng.Normalize(1.2, domain.Creatinine, domain.UnitSystem("imperial"), domain.SI)
		assert.ErrorIs(t, err, domain.ErrInvalidUnitSystem)
	})

	t.Run("unknown analyte is a hard failure", func(t *testing.T) {
		_, err := eng.ToSI(1.0, domain.Analyte("troponin"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
	})
}

func TestEngine_ConvertValue(t *testing.T) {
	eng := NewEngine(nil)

	t.Run("same unit passes through", func(t *testing.T) {
		got, warning := eng.ConvertValue(1.2, "mg/dL", "mg/dL")
		assert.Equal(t, 1.2, got)
		assert.Nil(t, warning)
	})

	t.Run("unambiguous pair", func(t *testing.T) {
		got, warning := eng.ConvertValue(4.0, "g/dL", "g/L")
		assert.InDelta(t, 40.0, got, tolerance)
		assert.Nil(t, warning)
	})

	t.Run("ambiguous pair resolved by magnitude", func(t *testing.T) {
		// mg/dL -> µmol/L matches both creatinine and uric acid; 1.2 sits
		// in the typical creatinine range so the creatinine factor wins.
		got, warning := eng.ConvertValue(1.2, "mg/dL", "µmol/L")
		assert.InDelta(t, 106.08, got, 1e-3)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarnAmbiguousUnitInference, warning.Code)
	})

	t.Run("unknown pair passes through with warning", func(t *testing.T) {
		got, warning := eng.ConvertValue(7.5, "furlongs", "fathoms")
		assert.Equal(t, 7.5, got)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarnUnknownConversion, warning.Code)
	})
}

func TestConversionFor(t *testing.T) {
	conv, ok := ConversionFor(domain.Creatinine)
	require.True(t, ok)
	assert.Equal(t, "mg/dL", conv.ConventionalUnit)
	assert.Equal(t, "µmol/L", conv.SIUnit)
	assert.InDelta(t, 88.4, conv.ToSIFactor, tolerance)

	_, ok = ConversionFor(domain.Analyte("troponin"))
	assert.False(t, ok)
}
