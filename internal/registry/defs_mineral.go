package registry

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// fractionalExcretion is the shared FE formula: the urine-to-plasma ratio of
// the analyte divided by the urine-to-plasma ratio of creatinine, as a
// percentage. Inputs arrive in conventional units.
func fractionalExcretion(urineX, plasmaX, urineCr, plasmaCr float64) float64 {
	return (urineX * plasmaCr) / (plasmaX * urineCr) * 100
}

func mineralBoneDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "corrected-calcium",
			Name:        "Albumin-corrected calcium",
			Description: "Total serum calcium adjusted for hypoalbuminemia: add 0.8 mg/dL per 1 g/dL of albumin below 4.",
			Category:    domain.MineralBone,
			Inputs: []domain.InputSpec{
				analyteInput("calcium", "Measured total calcium", domain.Calcium, 4, 18, 0.1),
				analyteInput("albumin", "Serum albumin", domain.Albumin, 0.5, 6, 0.1),
			},
			ResultLabel:     "Corrected calcium",
			ResultUnit:      "mg/dL",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Normal corrected calcium",
				lt(8.5, "Hypocalcemia after albumin correction"),
				gt(10.5, "Hypercalcemia after albumin correction"),
			),
			ClinicalPearls: []string{
				"The correction performs poorly in CKD and critical illness; measure ionized calcium when the result will change management.",
			},
			References: []string{
				"Payne RB, et al. Interpretation of serum calcium in patients with abnormal serum proteins. Br Med J. 1973;4(5893):643-646.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("calcium") + 0.8*(4.0-in.Number("albumin"))
			},
		},
		{
			ID:          "calcium-phosphate-product",
			Name:        "Calcium-phosphate product",
			Description: "Product of serum calcium and phosphate, a historical marker of extraskeletal calcification risk in CKD.",
			Category:    domain.MineralBone,
			Inputs: []domain.InputSpec{
				analyteInput("calcium", "Serum calcium", domain.Calcium, 4, 18, 0.1),
				analyteInput("phosphate", "Serum phosphate", domain.Phosphate, 0.5, 15, 0.1),
			},
			ResultLabel:     "Ca × P product",
			ResultUnit:      "mg²/dL²",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Acceptable calcium-phosphate product",
				gte(55, "Elevated product (≥55 mg²/dL²) — increased vascular calcification risk"),
			),
			ClinicalPearls: []string{
				"KDIGO no longer sets a product target; manage calcium and phosphate individually and trend them.",
			},
			References: []string{
				"KDIGO 2017 Clinical Practice Guideline Update for CKD-MBD. Kidney Int Suppl. 2017;7(1):1-59.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("calcium") * in.Number("phosphate")
			},
		},
		{
			ID:          "fe-phosphate",
			Name:        "Fractional excretion of phosphate",
			Description: "Renal phosphate handling from paired spot urine and serum phosphate and creatinine.",
			Category:    domain.MineralBone,
			Inputs: []domain.InputSpec{
				analyteInput("urine_phosphate", "Urine phosphate", domain.Phosphate, 1, 300, 0.1),
				analyteInput("plasma_phosphate", "Serum phosphate", domain.Phosphate, 0.5, 15, 0.1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
				analyteInput("plasma_creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
			},
			ResultLabel:     "FEPO4",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Appropriate renal phosphate conservation during hypophosphatemia",
				gt(5, "Renal phosphate wasting (FEPO4 >5% with hypophosphatemia) — consider hyperparathyroidism or FGF-23 excess"),
			),
			ClinicalPearls: []string{
				"Interpretable only during hypophosphatemia; a 24h TRP calculation is preferred when results are borderline.",
			},
			References: []string{
				"Gaasbeek A, Meinders AE. Hypophosphatemia: an update on its etiology and treatment. Am J Med. 2005;118(10):1094-1101.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return fractionalExcretion(in.Number("urine_phosphate"), in.Number("plasma_phosphate"),
					in.Number("urine_creatinine"), in.Number("plasma_creatinine"))
			},
		},
		{
			ID:          "fe-magnesium",
			Name:        "Fractional excretion of magnesium",
			Description: "Distinguishes renal from extrarenal magnesium loss; only 70% of plasma magnesium is ultrafilterable.",
			Category:    domain.MineralBone,
			Inputs: []domain.InputSpec{
				analyteInput("urine_magnesium", "Urine magnesium", domain.Magnesium, 0.1, 50, 0.1),
				analyteInput("plasma_magnesium", "Serum magnesium", domain.Magnesium, 0.5, 10, 0.1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
				analyteInput("plasma_creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
			},
			ResultLabel:     "FEMg",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Extrarenal magnesium loss likely (FEMg <4% with hypomagnesemia)",
				gt(4, "Renal magnesium wasting (FEMg >4%) — consider diuretics, tubulopathy, or nephrotoxins"),
			),
			ClinicalPearls: []string{
				"The 0.7 factor in the denominator accounts for protein-bound, non-filterable magnesium.",
			},
			References: []string{
				"Elisaf M, Panteli K, Theodorou J, Siamopoulos KC. Fractional excretion of magnesium in normal subjects and in patients with hypomagnesemia. Magnes Res. 1997;10(4):315-320.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return (in.Number("urine_magnesium") * in.Number("plasma_creatinine")) /
					(0.7 * in.Number("plasma_magnesium") * in.Number("urine_creatinine")) * 100
			},
		},
		{
			ID:          "fe-urate",
			Name:        "Fractional excretion of uric acid",
			Description: "Renal urate handling; helps separate SIADH from volume depletion in hyponatremia.",
			Category:    domain.MineralBone,
			Inputs: []domain.InputSpec{
				analyteInput("urine_urate", "Urine uric acid", domain.UricAcid, 1, 300, 0.1),
				analyteInput("plasma_urate", "Serum uric acid", domain.UricAcid, 1, 20, 0.1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
				analyteInput("plasma_creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
			},
			ResultLabel:     "FEUrate",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Intermediate fractional urate excretion",
				lt(4, "Low FEUrate — consistent with volume depletion"),
				gt(11, "High FEUrate — consistent with SIADH or renal salt wasting"),
			),
			ClinicalPearls: []string{
				"Unlike urine sodium, FEUrate remains interpretable during diuretic therapy.",
			},
			References: []string{
				"Fenske W, et al. Utility and limitations of the traditional diagnostic approach to hyponatremia. Am J Med. 2010;123(7):652-657.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return fractionalExcretion(in.Number("urine_urate"), in.Number("plasma_urate"),
					in.Number("urine_creatinine"), in.Number("plasma_creatinine"))
			},
		},
	}
}
