package registry

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

func acidBaseDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "anion-gap",
			Name:        "Serum anion gap",
			Description: "Sodium minus chloride plus bicarbonate; screens for unmeasured anions in metabolic acidosis.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("chloride", "Serum chloride", domain.Chloride, 60, 150, 1),
				analyteInput("bicarbonate", "Serum bicarbonate", domain.Bicarbonate, 2, 60, 1),
			},
			ResultLabel:     "Anion gap",
			ResultUnit:      "mEq/L",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Low anion gap — consider hypoalbuminemia or paraproteinemia",
				gte(17, "High anion gap — unmeasured anions present (GOLD MARK differential)"),
				gte(13, "Borderline high"),
				gte(8, "Normal anion gap"),
			),
			ClinicalPearls: []string{
				"Correct for albumin: each 1 g/dL drop in albumin lowers the expected gap by about 2.5 mEq/L.",
				"Potassium is omitted in the conventional 3-electrolyte gap.",
			},
			References: []string{
				"Kraut JA, Madias NE. Serum anion gap: its uses and limitations in clinical medicine. Clin J Am Soc Nephrol. 2007;2(1):162-174.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("sodium") - (in.Number("chloride") + in.Number("bicarbonate"))
			},
		},
		{
			ID:          "corrected-anion-gap",
			Name:        "Albumin-corrected anion gap",
			Description: "Anion gap adjusted for hypoalbuminemia, which otherwise masks unmeasured anions.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("chloride", "Serum chloride", domain.Chloride, 60, 150, 1),
				analyteInput("bicarbonate", "Serum bicarbonate", domain.Bicarbonate, 2, 60, 1),
				analyteInput("albumin", "Serum albumin", domain.Albumin, 0.5, 6, 0.1),
			},
			ResultLabel:     "Corrected anion gap",
			ResultUnit:      "mEq/L",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Low corrected gap — consider paraproteinemia or laboratory error",
				gte(17, "High corrected anion gap — unmeasured anions present"),
				gte(13, "Borderline high after albumin correction"),
				gte(8, "Normal corrected anion gap"),
			),
			ClinicalPearls: []string{
				"The correction adds 2.5 mEq/L per 1 g/dL of albumin below 4 g/dL.",
			},
			References: []string{
				"Figge J, et al. Anion gap and hypoalbuminemia. Crit Care Med. 1998;26(11):1807-1810.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				gap := in.Number("sodium") - (in.Number("chloride") + in.Number("bicarbonate"))
				return gap + 2.5*(4.0-in.Number("albumin"))
			},
		},
		{
			ID:          "delta-ratio",
			Name:        "Delta-delta ratio",
			Description: "Ratio of anion gap excess to bicarbonate deficit; detects mixed metabolic disturbances in high anion gap acidosis.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("chloride", "Serum chloride", domain.Chloride, 60, 150, 1),
				analyteInput("bicarbonate", "Serum bicarbonate", domain.Bicarbonate, 2, 23, 1),
			},
			ResultLabel:     "Delta ratio",
			ResultUnit:      "",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Ratio >2 — concurrent metabolic alkalosis or chronic respiratory acidosis",
				lt(0.4, "Pure normal anion gap (hyperchloremic) acidosis"),
				lt(1, "Mixed high and normal anion gap acidosis"),
				lte(2, "Pure high anion gap metabolic acidosis"),
			),
			ClinicalPearls: []string{
				"Assumes a normal anion gap of 12 and normal bicarbonate of 24 mEq/L.",
				"Only meaningful when a high anion gap acidosis is present.",
			},
			References: []string{
				"Rastegar A. Use of the deltaAG/deltaHCO3- ratio in the diagnosis of mixed acid-base disorders. J Am Soc Nephrol. 2007;18(9):2429-2431.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				gap := in.Number("sodium") - (in.Number("chloride") + in.Number("bicarbonate"))
				return (gap - 12) / (24 - in.Number("bicarbonate"))
			},
		},
		{
			ID:          "winters-formula",
			Name:        "Expected PaCO2 (Winter's formula)",
			Description: "Expected respiratory compensation for a metabolic acidosis: PaCO2 = 1.5 × HCO3 + 8 (± 2).",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("bicarbonate", "Serum bicarbonate", domain.Bicarbonate, 2, 40, 1),
			},
			ResultLabel:     "Expected PaCO2",
			ResultUnit:      "mmHg",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Compare with the measured PaCO2: within ±2 mmHg indicates appropriate compensation; higher suggests a concurrent respiratory acidosis, lower a concurrent respiratory alkalosis",
			),
			ClinicalPearls: []string{
				"A quick bedside check: the expected PaCO2 roughly equals the last two digits of the pH in compensated metabolic acidosis.",
			},
			References: []string{
				"Albert MS, Dell RB, Winters RW. Quantitative displacement of acid-base equilibrium in metabolic acidosis. Ann Intern Med. 1967;66(2):312-322.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 1.5*in.Number("bicarbonate") + 8
			},
		},
		{
			ID:          "bicarbonate-deficit",
			Name:        "Bicarbonate deficit",
			Description: "Estimated total body bicarbonate deficit from weight and serum bicarbonate, using a 0.5 L/kg distribution volume.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				analyteInput("bicarbonate", "Serum bicarbonate", domain.Bicarbonate, 2, 24, 1),
			},
			ResultLabel:     "Bicarbonate deficit",
			ResultUnit:      "mEq",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Replace slowly and recheck; full correction risks overshoot alkalosis and hypokalemia",
				lte(0, "No bicarbonate deficit estimated"),
			),
			ClinicalPearls: []string{
				"The apparent bicarbonate space rises above 0.5 L/kg in severe acidosis (HCO3 <10 mEq/L).",
				"Target partial correction (HCO3 10-12 mEq/L) in acute severe metabolic acidosis.",
			},
			References: []string{
				"Sabatini S, Kurtzman NA. Bicarbonate therapy in severe metabolic acidosis. J Am Soc Nephrol. 2009;20(4):692-695.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 0.5 * in.Number("weight") * (24 - in.Number("bicarbonate"))
			},
		},
		{
			ID:          "urine-anion-gap",
			Name:        "Urine anion gap",
			Description: "Urine sodium plus potassium minus chloride; a surrogate for urinary ammonium excretion in normal anion gap acidosis.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("urine_sodium", "Urine sodium", domain.Sodium, 1, 300, 1),
				analyteInput("urine_potassium", "Urine potassium", domain.Potassium, 1, 200, 1),
				analyteInput("urine_chloride", "Urine chloride", domain.Chloride, 1, 400, 1),
			},
			ResultLabel:     "Urine anion gap",
			ResultUnit:      "mEq/L",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Indeterminate — interpret with urine pH and serum potassium",
				lt(-10, "Negative gap — intact ammonium excretion, suggests GI bicarbonate loss"),
				gt(10, "Positive gap — impaired urinary acidification (renal tubular acidosis)"),
			),
			ClinicalPearls: []string{
				"Invalid when unmeasured urinary anions are abundant (ketoacids, toluene metabolites); use the urine osmolal gap instead.",
			},
			References: []string{
				"Batlle DC, et al. The use of the urinary anion gap in the diagnosis of hyperchloremic metabolic acidosis. N Engl J Med. 1988;318(10):594-599.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("urine_sodium") + in.Number("urine_potassium") - in.Number("urine_chloride")
			},
		},
		{
			ID:          "serum-osmolality",
			Name:        "Calculated serum osmolality",
			Description: "2 × Na + glucose/18 + BUN/2.8, with an optional ethanol term, in conventional units.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("glucose", "Serum glucose", domain.Glucose, 20, 2000, 1),
				analyteInput("bun", "Blood urea nitrogen", domain.BUN, 1, 250, 1),
				optional(analyteInput("ethanol", "Serum ethanol", domain.Ethanol, 0, 600, 1)),
			},
			ResultLabel:     "Calculated osmolality",
			ResultUnit:      "mOsm/kg",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Calculated osmolality within the usual range (275-295 mOsm/kg)",
				lt(275, "Hypoosmolar — evaluate for true hyponatremia"),
				gt(295, "Hyperosmolar — consider hyperglycemia, azotemia, or ingestions"),
			),
			ClinicalPearls: []string{
				"The divisors 18, 2.8, and 3.7 convert mg/dL of glucose, urea nitrogen, and ethanol to mmol/L.",
			},
			References: []string{
				"Rasouli M. Basic concepts and practical equations on osmolality. Clin Biochem. 2016;49(12):936-941.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				osm := 2*in.Number("sodium") + in.Number("glucose")/18 + in.Number("bun")/2.8
				if in.Has("ethanol") {
					osm += in.Number("ethanol") / 3.7
				}
				return osm
			},
		},
		{
			ID:          "osmolal-gap",
			Name:        "Osmolal gap",
			Description: "Measured minus calculated serum osmolality; elevated values flag unmeasured osmoles such as toxic alcohols.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("measured_osm", "Measured serum osmolality", domain.Osmolality, 200, 450, 1),
				analyteInput("sodium", "Serum sodium", domain.Sodium, 100, 200, 1),
				analyteInput("glucose", "Serum glucose", domain.Glucose, 20, 2000, 1),
				analyteInput("bun", "Blood urea nitrogen", domain.BUN, 1, 250, 1),
				optional(analyteInput("ethanol", "Serum ethanol", domain.Ethanol, 0, 600, 1)),
			},
			ResultLabel:     "Osmolal gap",
			ResultUnit:      "mOsm/kg",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Normal osmolal gap (≤10 mOsm/kg)",
				gt(10, "Elevated gap — consider methanol, ethylene glycol, or other unmeasured osmoles"),
			),
			ClinicalPearls: []string{
				"A normal gap does not exclude late toxic alcohol ingestion once the parent alcohol is metabolized.",
				"Include the ethanol term whenever ethanol is detectable, or the gap will be spuriously elevated.",
			},
			References: []string{
				"Kraut JA, Kurtz I. Toxic alcohol ingestions: clinical features, diagnosis, and management. Clin J Am Soc Nephrol. 2008;3(1):208-225.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				calc := 2*in.Number("sodium") + in.Number("glucose")/18 + in.Number("bun")/2.8
				if in.Has("ethanol") {
					calc += in.Number("ethanol") / 3.7
				}
				return in.Number("measured_osm") - calc
			},
		},
		{
			ID:          "ttkg",
			Name:        "Transtubular potassium gradient",
			Description: "Estimates distal nephron potassium secretion from paired urine and serum potassium and osmolality.",
			Category:    domain.AcidBase,
			Inputs: []domain.InputSpec{
				analyteInput("urine_potassium", "Urine potassium", domain.Potassium, 1, 200, 0.1),
				analyteInput("serum_potassium", "Serum potassium", domain.Potassium, 1, 10, 0.1),
				analyteInput("urine_osm", "Urine osmolality", domain.Osmolality, 50, 1400, 1),
				analyteInput("serum_osm", "Serum osmolality", domain.Osmolality, 200, 450, 1),
			},
			ResultLabel:     "TTKG",
			ResultUnit:      "",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Intermediate — interpret against the serum potassium",
				lt(3, "Low gradient — in hyperkalemia suggests hypoaldosteronism or aldosterone resistance"),
				gt(7, "High gradient — appropriate renal potassium secretion during hyperkalemia"),
			),
			ClinicalPearls: []string{
				"Valid only when urine osmolality exceeds serum osmolality and urine sodium is above 25 mEq/L.",
				"The original authors later questioned the gradient's assumptions; trend it rather than relying on a single value.",
			},
			References: []string{
				"Ethier JH, et al. The transtubular potassium concentration in patients with hypokalemia and hyperkalemia. Am J Kidney Dis. 1990;15(4):309-315.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return (in.Number("urine_potassium") * in.Number("serum_osm")) /
					(in.Number("serum_potassium") * in.Number("urine_osm"))
			},
		},
	}
}
