package registry

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// tbwFraction is the conventional total-body-water fraction of body weight
// used by the deficit equations: 0.6 for men, 0.5 for women.
func tbwFraction(sex string) float64 {
	if sex == "female" {
		return 0.5
	}
	return 0.6
}

func fluidsSodiumDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "corrected-sodium-hyperglycemia",
			Name:        "Corrected sodium (hyperglycemia)",
			Description: "Serum sodium corrected for the dilutional effect of hyperglycemia: add 1.6 mEq/L per 100 mg/dL of glucose above 100.",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Measured serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("glucose", "Serum glucose", domain.Glucose, 20, 2000, 1),
			},
			ResultLabel:     "Corrected sodium",
			ResultUnit:      "mEq/L",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Corrected sodium within the normal range",
				lt(135, "True hyponatremia persists after glucose correction"),
				gt(145, "Hypernatremia after glucose correction — free water deficit likely"),
			),
			ClinicalPearls: []string{
				"A factor of 2.4 may be more accurate above 400 mg/dL of glucose.",
			},
			References: []string{
				"Katz MA. Hyperglycemia-induced hyponatremia: calculation of expected serum sodium depression. N Engl J Med. 1973;289(16):843-844.",
				"Hillier TA, Abbott RD, Barrett EJ. Hyponatremia: evaluating the correction factor for hyperglycemia. Am J Med. 1999;106(4):399-403.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("sodium") + 1.6*(in.Number("glucose")-100)/100
			},
		},
		{
			ID:          "sodium-deficit",
			Name:        "Sodium deficit",
			Description: "Total body sodium deficit for correction of hyponatremia, from total body water and the target sodium.",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
				analyteInput("sodium", "Current serum sodium", domain.Sodium, 100, 134, 1),
				numberInput("target_sodium", "Target serum sodium", "mEq/L", 120, 145, 1),
			},
			ResultLabel:     "Sodium deficit",
			ResultUnit:      "mEq",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Replace no faster than 8-10 mEq/L of serum sodium per 24 hours to avoid osmotic demyelination",
				lte(0, "No sodium deficit at the chosen target"),
			),
			ClinicalPearls: []string{
				"The deficit equation sets the budget; the Adrogue-Madias equation sets the rate.",
			},
			References: []string{
				"Adrogue HJ, Madias NE. Hyponatremia. N Engl J Med. 2000;342(21):1581-1589.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				tbw := tbwFraction(in.Choice("sex")) * in.Number("weight")
				return tbw * (in.Number("target_sodium") - in.Number("sodium"))
			},
		},
		{
			ID:          "water-deficit",
			Name:        "Free water deficit",
			Description: "Free water deficit in hypernatremia: total body water × (serum Na/140 − 1).",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
				analyteInput("sodium", "Serum sodium", domain.Sodium, 120, 200, 1),
			},
			ResultLabel:     "Free water deficit",
			ResultUnit:      "L",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Replace the deficit over 48 hours or longer; lower serum sodium by no more than 10 mEq/L per 24 hours",
				lte(0, "No free water deficit — serum sodium at or below 140 mEq/L"),
			),
			ClinicalPearls: []string{
				"Add ongoing insensible and renal free water losses to the replacement plan; the deficit alone underestimates requirements.",
			},
			References: []string{
				"Adrogue HJ, Madias NE. Hypernatremia. N Engl J Med. 2000;342(20):1493-1499.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				tbw := tbwFraction(in.Choice("sex")) * in.Number("weight")
				return tbw * (in.Number("sodium")/140 - 1)
			},
		},
		{
			ID:          "free-water-clearance",
			Name:        "Free water clearance",
			Description: "Net renal free water excretion from urine flow and the urine-to-plasma osmolality ratio.",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				numberInput("urine_volume", "Urine output", "L/day", 0.1, 20, 0.1),
				analyteInput("urine_osm", "Urine osmolality", domain.Osmolality, 50, 1400, 1),
				analyteInput("plasma_osm", "Plasma osmolality", domain.Osmolality, 200, 450, 1),
			},
			ResultLabel:     "Free water clearance",
			ResultUnit:      "L/day",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Negative clearance — net free water reabsorption (concentrated urine)",
				gt(0, "Positive clearance — kidneys are excreting free water (dilute urine)"),
			),
			ClinicalPearls: []string{
				"In hyponatremia, a persistently negative free water clearance despite fluid restriction points to non-suppressible ADH activity.",
			},
			References: []string{
				"Rose BD. New approach to disturbances in the plasma sodium concentration. Am J Med. 1986;81(6):1033-1040.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("urine_volume") * (1 - in.Number("urine_osm")/in.Number("plasma_osm"))
			},
		},
		{
			ID:          "adrogue-madias",
			Name:        "Sodium change per liter of infusate (Adrogue-Madias)",
			Description: "Expected change in serum sodium from one liter of a chosen infusate, given total body water.",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				selectInput("infusate", "Infusate",
					domain.InputOption{Value: "513", Label: "3% saline (513 mEq/L)"},
					domain.InputOption{Value: "154", Label: "0.9% saline (154 mEq/L)"},
					domain.InputOption{Value: "134", Label: "Lactated Ringer's (130 Na + 4 K mEq/L)"},
					domain.InputOption{Value: "77", Label: "0.45% saline (77 mEq/L)"},
					domain.InputOption{Value: "0", Label: "5% dextrose in water (0 mEq/L)"},
				),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
			},
			ResultLabel:     "ΔNa per liter",
			ResultUnit:      "mEq/L",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"No change in serum sodium expected from this infusate",
				gt(0, "Infusate will raise serum sodium — recheck electrolytes frequently during correction"),
				lt(0, "Infusate will lower serum sodium"),
			),
			ClinicalPearls: []string{
				"The equation ignores ongoing renal water and electrolyte losses, which often dominate the actual trajectory.",
				"The infusate option value is its sodium plus potassium content in mEq/L.",
			},
			References: []string{
				"Adrogue HJ, Madias NE. Hyponatremia. N Engl J Med. 2000;342(21):1581-1589.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				infusate := choiceNumber(in.Choice("infusate"))
				tbw := tbwFraction(in.Choice("sex")) * in.Number("weight")
				return (infusate - in.Number("sodium")) / (tbw + 1)
			},
		},
		{
			ID:          "potassium-deficit",
			Name:        "Potassium deficit",
			Description: "Rough estimate of total body potassium deficit in hypokalemia, assuming 0.4 mEq/kg per 1 mEq/L below 4.0.",
			Category:    domain.FluidsSodium,
			Inputs: []domain.InputSpec{
				analyteInput("potassium", "Serum potassium", domain.Potassium, 1, 4, 0.1),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
			},
			ResultLabel:     "Estimated potassium deficit",
			ResultUnit:      "mEq",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Replace gradually and recheck; transcellular shifts make serum potassium a poor deficit gauge",
				lte(0, "No deficit estimated at this serum potassium"),
			),
			ClinicalPearls: []string{
				"Correct hypomagnesemia first; potassium repletion fails while magnesium is low.",
				"In acidosis the measured potassium overestimates total body stores.",
			},
			References: []string{
				"Gennari FJ. Hypokalemia. N Engl J Med. 1998;339(7):451-458.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return (4.0 - in.Number("potassium")) * in.Number("weight") * 0.4
			},
		},
	}
}
