package registry

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

func proteinuriaDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "uacr",
			Name:        "Urine albumin-creatinine ratio",
			Description: "Spot urine albumin indexed to creatinine; the KDIGO albuminuria staging measure.",
			Category:    domain.Proteinuria,
			Inputs: []domain.InputSpec{
				numberInput("urine_albumin", "Urine albumin", "mg/L", 0.1, 30000, 0.1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
			},
			ResultLabel:     "ACR",
			ResultUnit:      "mg/g",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"A3 — severely increased albuminuria (>300 mg/g)",
				lt(30, "A1 — normal to mildly increased albuminuria"),
				lte(300, "A2 — moderately increased albuminuria (microalbuminuria)"),
			),
			ClinicalPearls: []string{
				"First-morning samples track 24h excretion best; fever and exercise cause transient albuminuria.",
				"Divide mg/g by 8.84 to express the ratio in mg/mmol.",
			},
			References: []string{
				"KDIGO 2012 Clinical Practice Guideline for the Evaluation and Management of Chronic Kidney Disease. Kidney Int Suppl. 2013;3(1):1-150.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				// Urine creatinine mg/dL -> g/L is ×0.01; albumin mg/L over
				// creatinine g/L gives mg/g.
				return in.Number("urine_albumin") / (in.Number("urine_creatinine") * 0.01)
			},
		},
		{
			ID:          "upcr",
			Name:        "Urine protein-creatinine ratio",
			Description: "Spot urine total protein indexed to creatinine; approximates grams of proteinuria per day.",
			Category:    domain.Proteinuria,
			Inputs: []domain.InputSpec{
				analyteInput("urine_protein", "Urine protein", domain.UrineProtein, 1, 30000, 1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
			},
			ResultLabel:     "UPCR",
			ResultUnit:      "mg/g",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Nephrotic-range proteinuria (>3500 mg/g)",
				lt(150, "Normal protein excretion (<150 mg/g)"),
				lte(500, "Mild proteinuria"),
				lte(3500, "Moderate proteinuria"),
			),
			ClinicalPearls: []string{
				"The ratio in mg/g roughly equals mg of protein excreted per day in an average-size adult.",
				"UPCR misses albumin-selective changes; use ACR for early diabetic kidney disease.",
			},
			References: []string{
				"Ginsberg JM, et al. Use of single voided urine samples to estimate quantitative proteinuria. N Engl J Med. 1983;309(25):1543-1546.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("urine_protein") / in.Number("urine_creatinine") * 1000
			},
		},
		{
			ID:          "fena",
			Name:        "Fractional excretion of sodium",
			Description: "Percent of filtered sodium excreted, from paired spot urine and plasma sodium and creatinine; separates prerenal azotemia from intrinsic injury in oliguric AKI.",
			Category:    domain.Proteinuria,
			Inputs: []domain.InputSpec{
				analyteInput("urine_sodium", "Urine sodium", domain.Sodium, 1, 300, 1),
				analyteInput("plasma_creatinine", "Plasma creatinine", domain.Creatinine, 0.1, 25, 0.01),
				analyteInput("plasma_sodium", "Plasma sodium", domain.Sodium, 100, 200, 1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
			},
			ResultLabel:     "FENa",
			ResultUnit:      "%",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Intrinsic renal injury (ATN) likely (FENa >2%)",
				lt(1, "Prerenal azotemia"),
				lte(2, "Indeterminate (1-2%) — integrate with urine microscopy and clinical course"),
			),
			ClinicalPearls: []string{
				"Diuretics, CKD, and contrast nephropathy produce misleading values; use FEUrea under diuretic therapy.",
				"A low FENa also occurs in early glomerulonephritis and hepatorenal physiology.",
			},
			References: []string{
				"Espinel CH. The FENa test: use in the differential diagnosis of acute renal failure. JAMA. 1976;236(6):579-581.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return fractionalExcretion(in.Number("urine_sodium"), in.Number("plasma_sodium"),
					in.Number("urine_creatinine"), in.Number("plasma_creatinine"))
			},
		},
		{
			ID:          "feurea",
			Name:        "Fractional excretion of urea",
			Description: "Prerenal-versus-intrinsic discrimination that stays valid during diuretic therapy.",
			Category:    domain.Proteinuria,
			Inputs: []domain.InputSpec{
				analyteInput("urine_urea", "Urine urea nitrogen", domain.BUN, 1, 2000, 1),
				analyteInput("plasma_bun", "Blood urea nitrogen", domain.BUN, 2, 250, 1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
				analyteInput("plasma_creatinine", "Plasma creatinine", domain.Creatinine, 0.1, 25, 0.01),
			},
			ResultLabel:     "FEUrea",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Consistent with intrinsic renal injury (FEUrea >50%)",
				lte(35, "Prerenal state (FEUrea ≤35%)"),
				lte(50, "Indeterminate (35-50%)"),
			),
			ClinicalPearls: []string{
				"Urea reabsorption occurs proximally, so loop and thiazide diuretics do not confound it.",
			},
			References: []string{
				"Carvounis CP, Nisar S, Guro-Razuman S. Significance of the fractional excretion of urea in the differential diagnosis of acute renal failure. Kidney Int. 2002;62(6):2223-2229.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return fractionalExcretion(in.Number("urine_urea"), in.Number("plasma_bun"),
					in.Number("urine_creatinine"), in.Number("plasma_creatinine"))
			},
		},
		{
			ID:          "urine-calcium-creatinine",
			Name:        "Urine calcium-creatinine ratio",
			Description: "Spot urine calcium indexed to creatinine; screens for hypercalciuria in stone formers.",
			Category:    domain.Proteinuria,
			Inputs: []domain.InputSpec{
				analyteInput("urine_calcium", "Urine calcium", domain.Calcium, 0.1, 100, 0.1),
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
			},
			ResultLabel:     "Ca/Cr ratio",
			ResultUnit:      "mg/mg",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Normal calcium excretion",
				gt(0.2, "Elevated ratio (>0.2 mg/mg) — hypercalciuria; confirm with a 24h collection"),
			),
			ClinicalPearls: []string{
				"Confirm with 24h urine calcium (>250 mg/day in women, >300 mg/day in men) before treating.",
			},
			References: []string{
				"Pak CY, et al. A simple test for the diagnosis of absorptive, resorptive and renal hypercalciurias. N Engl J Med. 1975;292(10):497-500.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("urine_calcium") / in.Number("urine_creatinine")
			},
		},
	}
}
