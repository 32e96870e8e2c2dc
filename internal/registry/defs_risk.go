package registry

import (
	"math"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// kfreLinearPredictor is the centered 4-variable KFRE linear predictor
// shared by the 2-year and 5-year horizons (Tangri 2011, North American
// calibration).
func kfreLinearPredictor(age, egfr, acr float64, sex string) float64 {
	male := 0.0
	if sex == "male" {
		male = 1.0
	}
	return -0.2201*(age/10-7.036) +
		0.2467*(male-0.5642) -
		0.5567*(egfr/5-7.222) +
		0.4510*(math.Log(acr)-5.137)
}

// kfreRisk maps the linear predictor through the baseline survival for
// the chosen horizon and returns a percentage.
func kfreRisk(lp, baselineSurvival float64) float64 {
	return (1 - math.Pow(baselineSurvival, math.Exp(lp))) * 100
}

func kfreInputs() []domain.InputSpec {
	return []domain.InputSpec{
		ageInput(),
		sexInput(),
		numberInput("egfr", "eGFR", "mL/min/1.73m²", 1, 59, 0.1),
		analyteInput("acr", "Urine albumin-creatinine ratio", domain.UrineAlbumin, 1, 25000, 0.1),
	}
}

func riskScoreDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "kfre-2yr",
			Name:        "Kidney Failure Risk Equation (2-year)",
			Description: "Two-year risk of kidney failure requiring dialysis or transplant, from the 4-variable KFRE.",
			Category:    domain.RiskScores,
			Inputs:      kfreInputs(),
			ResultLabel:     "2-year kidney failure risk",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"High risk: plan for kidney replacement therapy, including access and transplant referral",
				lt(10, "Low 2-year risk of kidney failure"),
				lt(40, "Intermediate risk: nephrology comanagement and multidisciplinary CKD care"),
			),
			ClinicalPearls: []string{
				"The 4-variable KFRE (age, sex, eGFR, ACR) performs nearly as well as the 8-variable version in validation cohorts.",
				"A 2-year risk above 40% is a common threshold for vascular access planning.",
			},
			References: []string{
				"Tangri N, Stevens LA, Griffith J, et al. A predictive model for progression of chronic kidney disease to kidney failure. JAMA. 2011;305(15):1553-1559.",
				"Tangri N, Grams ME, Levey AS, et al. Multinational assessment of accuracy of equations for predicting risk of kidney failure. JAMA. 2016;315(2):164-174.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				lp := kfreLinearPredictor(in.Number("age"), in.Number("egfr"), in.Number("acr"), in.Choice("sex"))
				return kfreRisk(lp, 0.9832)
			},
		},
		{
			ID:          "kfre-5yr",
			Name:        "Kidney Failure Risk Equation (5-year)",
			Description: "Five-year risk of kidney failure requiring dialysis or transplant, from the 4-variable KFRE.",
			Category:    domain.RiskScores,
			Inputs:      kfreInputs(),
			ResultLabel:     "5-year kidney failure risk",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"High 5-year risk of kidney failure",
				lt(5, "Low 5-year risk of kidney failure"),
				lt(15, "Intermediate 5-year risk: intensify CKD management"),
			),
			ClinicalPearls: []string{
				"A 5-year risk above 3-5% is a suggested threshold for nephrology referral from primary care.",
			},
			References: []string{
				"Tangri N, Stevens LA, Griffith J, et al. A predictive model for progression of chronic kidney disease to kidney failure. JAMA. 2011;305(15):1553-1559.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				lp := kfreLinearPredictor(in.Number("age"), in.Number("egfr"), in.Number("acr"), in.Choice("sex"))
				return kfreRisk(lp, 0.9365)
			},
		},
		{
			ID:          "mehran-score",
			Name:        "Mehran contrast nephropathy score",
			Description: "Additive risk score for contrast-induced nephropathy after percutaneous coronary intervention.",
			Category:    domain.RiskScores,
			Inputs: []domain.InputSpec{
				boolInput("hypotension", "Hypotension (SBP <80 mmHg for ≥1 h requiring inotropes)"),
				boolInput("iabp", "Intra-aortic balloon pump"),
				boolInput("chf", "Congestive heart failure (NYHA III/IV or pulmonary edema)"),
				boolInput("age_over_75", "Age >75 years"),
				boolInput("anemia", "Anemia (Hct <39% men, <36% women)"),
				boolInput("diabetes", "Diabetes mellitus"),
				numberInput("contrast_volume", "Contrast volume", "mL", 0, 1000, 1),
				selectInput("egfr_band", "eGFR (mL/min/1.73m²)",
					domain.InputOption{Value: "0", Label: "≥60"},
					domain.InputOption{Value: "2", Label: "40-59"},
					domain.InputOption{Value: "4", Label: "20-39"},
					domain.InputOption{Value: "6", Label: "<20"},
				),
			},
			ResultLabel:     "Mehran score",
			ResultUnit:      "points",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Very high risk: ~57% CIN risk, ~12.6% risk of dialysis",
				lte(5, "Low risk: ~7.5% CIN risk, 0.04% risk of dialysis"),
				lte(10, "Moderate risk: ~14% CIN risk, 0.12% risk of dialysis"),
				lte(15, "High risk: ~26% CIN risk, ~1.1% risk of dialysis"),
			),
			ClinicalPearls: []string{
				"Contrast volume contributes 1 point per 100 mL, so minimizing dose directly lowers the score.",
				"Derived in a PCI cohort; it is not validated for CT contrast exposure.",
			},
			References: []string{
				"Mehran R, Aymong ED, Nikolsky E, et al. A simple risk score for prediction of contrast-induced nephropathy after percutaneous coronary intervention. J Am Coll Cardiol. 2004;44(7):1393-1399.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				score := 0.0
				if in.Flag("hypotension") {
					score += 5
				}
				if in.Flag("iabp") {
					score += 5
				}
				if in.Flag("chf") {
					score += 5
				}
				if in.Flag("age_over_75") {
					score += 4
				}
				if in.Flag("anemia") {
					score += 3
				}
				if in.Flag("diabetes") {
					score += 3
				}
				score += math.Floor(in.Number("contrast_volume") / 100)
				score += choiceNumber(in.Choice("egfr_band"))
				return score
			},
		},
		{
			ID:          "contrast-volume-limit",
			Name:        "Maximum contrast dose (Cigarroa)",
			Description: "Weight- and creatinine-based ceiling on contrast volume to limit nephropathy risk.",
			Category:    domain.RiskScores,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				analyteInput("creatinine", "Serum creatinine", domain.Creatinine, 0.2, 20, 0.01),
			},
			ResultLabel:     "Maximum contrast volume",
			ResultUnit:      "mL",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Exceeding the calculated limit roughly triples the risk of contrast nephropathy",
			),
			ClinicalPearls: []string{
				"Derived with older high-osmolar agents; treat it as a conservative ceiling with modern iso-osmolar contrast.",
			},
			References: []string{
				"Cigarroa RG, Lange RA, Williams RH, Hillis LD. Dosing of contrast material to prevent contrast nephropathy in patients with renal disease. Am J Med. 1989;86(6 Pt 1):649-652.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 5 * in.Number("weight") / in.Number("creatinine")
			},
		},
	}
}
