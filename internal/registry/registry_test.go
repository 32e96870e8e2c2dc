package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

func TestDefault_CatalogIntegrity(t *testing.T) {
	reg := Default()

	assert.Equal(t, 52, reg.Len())

	seen := make(map[string]bool)
	for _, def := range reg.All() {
		assert.False(t, seen[def.ID], "duplicate calculator id %q", def.ID)
		seen[def.ID] = true

		require.NoError(t, def.Validate(), "calculator %q", def.ID)
		assert.NotEmpty(t, def.ResultLabel, "calculator %q has no result label", def.ID)
		assert.NotEmpty(t, def.References, "calculator %q cites no references", def.ID)
	}
}

func TestDefault_CategoryCounts(t *testing.T) {
	reg := Default()

	counts := map[domain.Category]int{
		domain.KidneyFunction:  8,
		domain.AcidBase:        9,
		domain.FluidsSodium:    6,
		domain.Dialysis:        5,
		domain.MineralBone:     5,
		domain.Proteinuria:     5,
		domain.Anthropometrics: 7,
		domain.RiskScores:      4,
		domain.LabsLipids:      3,
	}

	require.Len(t, reg.ListCategories(), len(counts))
	for category, want := range counts {
		assert.Len(t, reg.GetByCategory(category), want, "category %s", category)
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	def := kidneyFunctionDefs()[0]
	_, err := New([]*domain.CalculatorDefinition{def, def})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate calculator id")
}

func TestNew_RejectsUnknownAnalyte(t *testing.T) {
	def := &domain.CalculatorDefinition{
		ID:          "bogus",
		Name:        "Bogus",
		Description: "References an analyte outside the conversion vocabulary",
		Category:    domain.KidneyFunction,
		Inputs: []domain.InputSpec{
			{ID: "x", Label: "X", Kind: domain.InputNumeric, Required: true, Analyte: domain.Analyte("troponin")},
		},
		ResultLabel:    "X",
		Interpretation: domain.NewRule("always"),
		Compute:        func(in domain.CalcInputs) float64 { return in.Number("x") },
	}

	_, err := New([]*domain.CalculatorDefinition{def})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown analyte")
}

func TestRegistry_GetByID(t *testing.T) {
	reg := Default()

	def, err := reg.GetByID("ckd-epi-2021")
	require.NoError(t, err)
	assert.Equal(t, "eGFR (CKD-EPI 2021)", def.Name)

	_, err = reg.GetByID("no-such-calculator")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_Search(t *testing.T) {
	reg := Default()

	t.Run("empty query returns nothing", func(t *testing.T) {
		assert.Nil(t, reg.Search("", 0))
		assert.Nil(t, reg.Search("   ", 10))
	})

	t.Run("name matches rank first", func(t *testing.T) {
		results := reg.Search("anion gap", 0)
		require.NotEmpty(t, results)
		assert.Equal(t, "anion-gap", results[0].ID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		results := reg.Search("KT/V", 0)
		require.NotEmpty(t, results)
	})

	t.Run("category match", func(t *testing.T) {
		results := reg.Search("dialysis", 0)
		require.NotEmpty(t, results)
	})

	t.Run("limit caps results", func(t *testing.T) {
		all := reg.Search("sodium", 0)
		require.Greater(t, len(all), 2)
		assert.Len(t, reg.Search("sodium", 2), 2)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, reg.Search("xylophone", 0))
	})
}
