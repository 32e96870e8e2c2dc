package registry

import (
	"math"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// ckdStageBands are the KDIGO GFR staging bands shared by the eGFR
// estimators. Thresholds are inclusive lower bounds evaluated descending:
// a value of exactly 90 is Stage 1, 89.999 is Stage 2.
func ckdStageBands() domain.InterpretationRule {
	return domain.NewRule(
		"Kidney failure (Stage 5, GFR <15)",
		gte(90, "Normal or high kidney function (Stage 1)"),
		gte(60, "Mild decrease in kidney function (Stage 2)"),
		gte(45, "Mild to moderate decrease (Stage 3a)"),
		gte(30, "Moderate to severe decrease (Stage 3b)"),
		gte(15, "Severe decrease in kidney function (Stage 4)"),
	)
}

func kidneyFunctionDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "ckd-epi-2021",
			Name:        "eGFR (CKD-EPI 2021)",
			Description: "Estimated glomerular filtration rate from serum creatinine, age, and sex using the race-free 2021 CKD-EPI creatinine equation.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				ageInput(),
				sexInput(),
			},
			ResultLabel:     "eGFR",
			ResultUnit:      "mL/min/1.73m²",
			ResultPrecision: 0,
			Interpretation:  ckdStageBands(),
			ClinicalPearls: []string{
				"The 2021 refit removed the race coefficient; results differ from the 2009 equation, particularly at higher GFR.",
				"eGFR is unreliable in acute kidney injury; creatinine must be at steady state.",
			},
			References: []string{
				"Inker LA, et al. New creatinine- and cystatin C-based equations to estimate GFR without race. N Engl J Med. 2021;385(19):1737-1749.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				scr := in.Number("creatinine")
				age := in.Number("age")
				kappa, alpha, sexFactor := 0.9, -0.302, 1.0
				if in.Choice("sex") == "female" {
					kappa, alpha, sexFactor = 0.7, -0.241, 1.012
				}
				ratio := scr / kappa
				return 142 *
					math.Pow(math.Min(ratio, 1), alpha) *
					math.Pow(math.Max(ratio, 1), -1.200) *
					math.Pow(0.9938, age) *
					sexFactor
			},
		},
		{
			ID:          "ckd-epi-cystatin-c",
			Name:        "eGFR (CKD-EPI Cystatin C 2012)",
			Description: "Estimated GFR from serum cystatin C, age, and sex; useful when creatinine is confounded by muscle mass.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				analyteInput("cystatin", "Serum cystatin C", domain.CystatinC, 0.1, 10, 0.01),
				ageInput(),
				sexInput(),
			},
			ResultLabel:     "eGFR",
			ResultUnit:      "mL/min/1.73m²",
			ResultPrecision: 0,
			Interpretation:  ckdStageBands(),
			ClinicalPearls: []string{
				"Cystatin C is independent of muscle mass but rises with inflammation, steroid use, and thyroid disease.",
				"A confirmatory cystatin C eGFR is recommended when creatinine-based eGFR is 45-59 without albuminuria.",
			},
			References: []string{
				"Inker LA, et al. Estimating glomerular filtration rate from serum creatinine and cystatin C. N Engl J Med. 2012;367(1):20-29.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				scys := in.Number("cystatin")
				age := in.Number("age")
				sexFactor := 1.0
				if in.Choice("sex") == "female" {
					sexFactor = 0.932
				}
				ratio := scys / 0.8
				return 133 *
					math.Pow(math.Min(ratio, 1), -0.499) *
					math.Pow(math.Max(ratio, 1), -1.328) *
					math.Pow(0.996, age) *
					sexFactor
			},
		},
		{
			ID:          "ckd-epi-cr-cys",
			Name:        "eGFR (CKD-EPI Creatinine-Cystatin C 2021)",
			Description: "Combined creatinine and cystatin C estimate of GFR; the most accurate of the CKD-EPI family.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				analyteInput("cystatin", "Serum cystatin C", domain.CystatinC, 0.1, 10, 0.01),
				ageInput(),
				sexInput(),
			},
			ResultLabel:     "eGFR",
			ResultUnit:      "mL/min/1.73m²",
			ResultPrecision: 0,
			Interpretation:  ckdStageBands(),
			ClinicalPearls: []string{
				"Prefer the combined equation when a confirmatory GFR estimate will change management.",
			},
			References: []string{
				"Inker LA, et al. New creatinine- and cystatin C-based equations to estimate GFR without race. N Engl J Med. 2021;385(19):1737-1749.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				scr := in.Number("creatinine")
				scys := in.Number("cystatin")
				age := in.Number("age")
				kappa, alpha, sexFactor := 0.9, -0.144, 1.0
				if in.Choice("sex") == "female" {
					kappa, alpha, sexFactor = 0.7, -0.219, 0.963
				}
				crRatio := scr / kappa
				cysRatio := scys / 0.8
				return 135 *
					math.Pow(math.Min(crRatio, 1), alpha) *
					math.Pow(math.Max(crRatio, 1), -0.544) *
					math.Pow(math.Min(cysRatio, 1), -0.323) *
					math.Pow(math.Max(cysRatio, 1), -0.778) *
					math.Pow(0.9961, age) *
					sexFactor
			},
		},
		{
			ID:          "mdrd-4v",
			Name:        "eGFR (MDRD 4-variable)",
			Description: "Legacy 4-variable MDRD study equation for estimated GFR; retained for comparison with historical records.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				ageInput(),
				sexInput(),
				boolInput("black_race", "Black race (original study coefficient)"),
			},
			ResultLabel:     "eGFR",
			ResultUnit:      "mL/min/1.73m²",
			ResultPrecision: 0,
			Interpretation:  ckdStageBands(),
			ClinicalPearls: []string{
				"MDRD systematically underestimates GFR above 60; CKD-EPI 2021 is preferred for new reports.",
				"The race coefficient is reproduced only for comparison against historical laboratory reports.",
			},
			References: []string{
				"Levey AS, et al. A more accurate method to estimate glomerular filtration rate from serum creatinine. Ann Intern Med. 1999;130(6):461-470.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				scr := in.Number("creatinine")
				age := in.Number("age")
				egfr := 175 * math.Pow(scr, -1.154) * math.Pow(age, -0.203)
				if in.Choice("sex") == "female" {
					egfr *= 0.742
				}
				if in.Flag("black_race") {
					egfr *= 1.212
				}
				return egfr
			},
		},
		{
			ID:          "cockcroft-gault",
			Name:        "Creatinine clearance (Cockcroft-Gault)",
			Description: "Estimated creatinine clearance from age, weight, sex, and serum creatinine; the reference equation for renal drug dosing.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				ageInput(),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				sexInput(),
			},
			ResultLabel:     "CrCl",
			ResultUnit:      "mL/min",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Severely reduced clearance (<30 mL/min) — most renally cleared drugs need adjustment",
				gte(90, "Normal estimated clearance"),
				gte(60, "Mildly reduced clearance"),
				gte(30, "Moderately reduced clearance — review renally cleared drug doses"),
			),
			ClinicalPearls: []string{
				"Use ideal or adjusted body weight in obesity; actual weight overestimates clearance.",
				"Not indexed to body surface area, unlike the CKD-EPI estimates.",
			},
			References: []string{
				"Cockcroft DW, Gault MH. Prediction of creatinine clearance from serum creatinine. Nephron. 1976;16(1):31-41.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				crcl := (140 - in.Number("age")) * in.Number("weight") /
					(72 * in.Number("creatinine"))
				if in.Choice("sex") == "female" {
					crcl *= 0.85
				}
				return crcl
			},
		},
		{
			ID:          "schwartz-bedside",
			Name:        "Pediatric eGFR (Bedside Schwartz)",
			Description: "Estimated GFR for children from height and serum creatinine using the bedside Schwartz constant.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("height", "Height", domain.Height, 30, 220, 0.1)),
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
			},
			ResultLabel:     "eGFR",
			ResultUnit:      "mL/min/1.73m²",
			ResultPrecision: 0,
			Interpretation:  ckdStageBands(),
			ClinicalPearls: []string{
				"Validated for ages 1-16 with enzymatic creatinine assays; the 0.413 constant assumes IDMS-traceable creatinine.",
			},
			References: []string{
				"Schwartz GJ, et al. New equations to estimate GFR in children with CKD. J Am Soc Nephrol. 2009;20(3):629-637.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 0.413 * in.Number("height") / in.Number("creatinine")
			},
		},
		{
			ID:          "kinetic-egfr",
			Name:        "Kinetic eGFR",
			Description: "GFR estimate when creatinine is not at steady state, from two creatinine values, the time between them, and the steady-state clearance.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				numberInput("baseline_crcl", "Steady-state creatinine clearance", "mL/min", 1, 200, 1),
				analyteInput("creatinine1", "First serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				analyteInput("creatinine2", "Second serum creatinine", domain.Creatinine, 0.1, 25, 0.01),
				numberInput("hours", "Hours between samples", "h", 1, 168, 0.5),
			},
			ResultLabel:     "Kinetic eGFR",
			ResultUnit:      "mL/min",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Severely reduced kinetic clearance (<30 mL/min)",
				gte(60, "Kinetic clearance above 60 mL/min"),
				gte(30, "Moderately reduced kinetic clearance"),
			),
			ClinicalPearls: []string{
				"Assumes a maximal creatinine rise of 1.5 mg/dL per day at zero clearance.",
				"A falling creatinine yields a kinetic estimate above the steady-state value.",
			},
			References: []string{
				"Chen S. Retooling the creatinine clearance equation to estimate kinetic GFR when the plasma creatinine is changing acutely. J Am Soc Nephrol. 2013;24(6):877-888.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				scr1 := in.Number("creatinine1")
				scr2 := in.Number("creatinine2")
				hours := in.Number("hours")
				meanScr := (scr1 + scr2) / 2
				const maxDailyRise = 1.5 // mg/dL per day with zero clearance
				correction := 1 - (24*(scr2-scr1))/(hours*maxDailyRise)
				return in.Number("baseline_crcl") * scr1 / meanScr * correction
			},
		},
		{
			ID:          "creatinine-clearance-24h",
			Name:        "Measured creatinine clearance (24h urine)",
			Description: "Creatinine clearance measured from a timed urine collection, urine creatinine, and plasma creatinine.",
			Category:    domain.KidneyFunction,
			Inputs: []domain.InputSpec{
				analyteInput("urine_creatinine", "Urine creatinine", domain.UrineCreatinine, 1, 500, 1),
				numberInput("urine_volume", "Urine volume", "mL", 50, 10000, 10),
				analyteInput("plasma_creatinine", "Plasma creatinine", domain.Creatinine, 0.1, 25, 0.01),
				numberInput("collection_hours", "Collection duration", "h", 1, 48, 1),
			},
			ResultLabel:     "CrCl",
			ResultUnit:      "mL/min",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Severely reduced measured clearance (<30 mL/min)",
				gte(90, "Normal measured clearance"),
				gte(60, "Mildly reduced measured clearance"),
				gte(30, "Moderately reduced measured clearance"),
			),
			ClinicalPearls: []string{
				"Incomplete collections are the dominant error source; expected creatinine excretion is 15-25 mg/kg/day in men and 10-20 in women.",
				"Tubular secretion makes measured CrCl overestimate true GFR by 10-20%.",
			},
			References: []string{
				"KDIGO 2012 Clinical Practice Guideline for the Evaluation and Management of Chronic Kidney Disease. Kidney Int Suppl. 2013;3(1):1-150.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				minutes := in.Number("collection_hours") * 60
				return in.Number("urine_creatinine") * in.Number("urine_volume") /
					(in.Number("plasma_creatinine") * minutes)
			},
		},
	}
}
