package registry

import (
	"math"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// devineIBW is the Devine ideal body weight in kg from height in inches.
func devineIBW(heightIn float64, sex string) float64 {
	base := 50.0
	if sex == "female" {
		base = 45.5
	}
	return base + 2.3*(heightIn-60)
}

func anthropometricsDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "bmi",
			Name:        "Body mass index",
			Description: "Weight in kilograms divided by height in meters squared.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				inSI(analyteInput("height", "Height", domain.Height, 100, 250, 0.1)),
			},
			ResultLabel:     "BMI",
			ResultUnit:      "kg/m²",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Obese range (BMI ≥30)",
				lt(18.5, "Underweight"),
				lt(25, "Normal weight"),
				lt(30, "Overweight"),
			),
			ClinicalPearls: []string{
				"In dialysis populations higher BMI associates with better survival (the obesity paradox).",
			},
			References: []string{
				"WHO. Obesity: preventing and managing the global epidemic. WHO Technical Report Series 894; 2000.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				heightM := in.Number("height") / 100
				return in.Number("weight") / (heightM * heightM)
			},
		},
		{
			ID:          "bsa-dubois",
			Name:        "Body surface area (DuBois)",
			Description: "BSA from the 1916 DuBois height-weight power formula.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("height", "Height", domain.Height, 30, 250, 0.1)),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 2, 300, 0.1)),
			},
			ResultLabel:     "BSA",
			ResultUnit:      "m²",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Reference adult BSA is 1.73 m²; use the measured BSA to de-index GFR for drug dosing",
			),
			ClinicalPearls: []string{
				"De-index eGFR by multiplying by BSA/1.73 when absolute clearance drives dosing decisions.",
			},
			References: []string{
				"DuBois D, DuBois EF. A formula to estimate the approximate surface area if height and weight be known. Arch Intern Med. 1916;17:863-871.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 0.007184 * math.Pow(in.Number("height"), 0.725) * math.Pow(in.Number("weight"), 0.425)
			},
		},
		{
			ID:          "bsa-mosteller",
			Name:        "Body surface area (Mosteller)",
			Description: "BSA as the square root of height times weight over 3600.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("height", "Height", domain.Height, 30, 250, 0.1)),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 2, 300, 0.1)),
			},
			ResultLabel:     "BSA",
			ResultUnit:      "m²",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Reference adult BSA is 1.73 m²",
			),
			ClinicalPearls: []string{
				"Agrees with DuBois within about 2% across the adult range and is easier to compute at the bedside.",
			},
			References: []string{
				"Mosteller RD. Simplified calculation of body-surface area. N Engl J Med. 1987;317(17):1098.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return math.Sqrt(in.Number("height") * in.Number("weight") / 3600)
			},
		},
		{
			ID:          "ibw-devine",
			Name:        "Ideal body weight (Devine)",
			Description: "Ideal body weight from height and sex; the weight basis for many renal drug doses.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				analyteInput("height", "Height", domain.Height, 48, 90, 0.1),
				sexInput(),
			},
			ResultLabel:     "Ideal body weight",
			ResultUnit:      "kg",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Use ideal body weight for aminoglycoside and acyclovir dosing; use adjusted weight when actual exceeds ideal by more than 30%",
			),
			ClinicalPearls: []string{
				"The formula assumes height above 60 inches; it extrapolates poorly below that.",
			},
			References: []string{
				"Devine BJ. Gentamicin therapy. Drug Intell Clin Pharm. 1974;8:650-655.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return devineIBW(in.Number("height"), in.Choice("sex"))
			},
		},
		{
			ID:          "adjusted-body-weight",
			Name:        "Adjusted body weight",
			Description: "Dosing weight for obesity: ideal body weight plus 40% of the excess over ideal.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				analyteInput("height", "Height", domain.Height, 48, 90, 0.1),
				inSI(analyteInput("weight", "Actual body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
			},
			ResultLabel:     "Adjusted body weight",
			ResultUnit:      "kg",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Use adjusted weight in Cockcroft-Gault when actual weight exceeds ideal by more than 30%",
			),
			ClinicalPearls: []string{
				"The 0.4 correction factor is empirical; some drugs (vancomycin loading) dose on actual weight regardless.",
			},
			References: []string{
				"Winter MA, Guhr KN, Berg GM. Impact of various body weights and serum creatinine concentrations on the bias and accuracy of the Cockcroft-Gault equation. Pharmacotherapy. 2012;32(7):604-612.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				ibw := devineIBW(in.Number("height"), in.Choice("sex"))
				return ibw + 0.4*(in.Number("weight")-ibw)
			},
		},
		{
			ID:          "tbw-watson",
			Name:        "Total body water (Watson)",
			Description: "Anthropometric total body water, the V used in urea kinetic modeling.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				ageInput(),
				inSI(analyteInput("height", "Height", domain.Height, 100, 250, 0.1)),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
			},
			ResultLabel:     "Total body water",
			ResultUnit:      "L",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Watson volume is the V of Kt/V; it overestimates V in cachexia and underestimates it in volume overload",
			),
			ClinicalPearls: []string{
				"Watson V runs about 10% below the 0.6 × weight rule in elderly women.",
			},
			References: []string{
				"Watson PE, Watson ID, Batt RD. Total body water volumes for adult males and females estimated from simple anthropometric measurements. Am J Clin Nutr. 1980;33(1):27-39.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				age := in.Number("age")
				height := in.Number("height")
				weight := in.Number("weight")
				if in.Choice("sex") == "female" {
					return -2.097 + 0.1069*height + 0.2466*weight
				}
				return 2.447 - 0.09156*age + 0.1074*height + 0.3362*weight
			},
		},
		{
			ID:          "map",
			Name:        "Mean arterial pressure",
			Description: "Diastolic pressure plus one third of the pulse pressure.",
			Category:    domain.Anthropometrics,
			Inputs: []domain.InputSpec{
				numberInput("systolic", "Systolic blood pressure", "mmHg", 40, 300, 1),
				numberInput("diastolic", "Diastolic blood pressure", "mmHg", 20, 200, 1),
			},
			ResultLabel:     "MAP",
			ResultUnit:      "mmHg",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Within the usual perfusion range",
				lt(65, "Below the usual organ-perfusion target (MAP <65 mmHg)"),
				gt(100, "Elevated mean arterial pressure"),
			),
			ClinicalPearls: []string{
				"The one-third weighting assumes a normal heart rate; tachycardia shifts the true mean toward systolic.",
			},
			References: []string{
				"Magder SA. The highs and lows of blood pressure: toward meaningful clinical targets in patients with shock. Crit Care Med. 2014;42(5):1241-1251.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return (in.Number("systolic") + 2*in.Number("diastolic")) / 3
			},
		},
	}
}
