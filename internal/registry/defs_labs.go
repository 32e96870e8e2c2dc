package registry

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

func labsLipidsDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "ldl-friedewald",
			Name:        "LDL cholesterol (Friedewald)",
			Description: "Estimated LDL from total cholesterol, HDL, and triglycerides.",
			Category:    domain.LabsLipids,
			Inputs: []domain.InputSpec{
				analyteInput("total_cholesterol", "Total cholesterol", domain.Cholesterol, 50, 1000, 1),
				analyteInput("hdl", "HDL cholesterol", domain.HDLCholesterol, 5, 200, 1),
				analyteInput("triglycerides", "Triglycerides", domain.Triglycerides, 10, 400, 1),
			},
			ResultLabel:     "LDL cholesterol",
			ResultUnit:      "mg/dL",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Very high LDL cholesterol",
				lt(70, "Optimal for very-high-risk patients"),
				lt(100, "Optimal LDL cholesterol"),
				lt(130, "Near-optimal LDL cholesterol"),
				lt(160, "Borderline high LDL cholesterol"),
				lt(190, "High LDL cholesterol"),
			),
			ClinicalPearls: []string{
				"The estimate is unreliable above triglycerides of 400 mg/dL; order a direct LDL instead.",
				"CKD is a coronary risk equivalent; most guidelines favor statin therapy in non-dialysis CKD regardless of LDL.",
			},
			References: []string{
				"Friedewald WT, Levy RI, Fredrickson DS. Estimation of the concentration of low-density lipoprotein cholesterol in plasma, without use of the preparative ultracentrifuge. Clin Chem. 1972;18(6):499-502.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("total_cholesterol") - in.Number("hdl") - in.Number("triglycerides")/5
			},
		},
		{
			ID:          "eag-hba1c",
			Name:        "Estimated average glucose from HbA1c",
			Description: "Linear ADAG mapping from glycated hemoglobin to mean plasma glucose.",
			Category:    domain.LabsLipids,
			Inputs: []domain.InputSpec{
				numberInput("hba1c", "Hemoglobin A1c", "%", 3, 20, 0.1),
			},
			ResultLabel:     "Estimated average glucose",
			ResultUnit:      "mg/dL",
			ResultPrecision: 0,
			Interpretation: domain.NewRule(
				"Average glucose in the diabetic range",
				lt(117, "Average glucose consistent with HbA1c <5.7% (normoglycemia)"),
				lt(140, "Average glucose consistent with prediabetes"),
			),
			ClinicalPearls: []string{
				"HbA1c underestimates glycemia in ESKD because shortened red-cell survival and ESA therapy dilute glycated hemoglobin.",
			},
			References: []string{
				"Nathan DM, Kuenen J, Borg R, et al. Translating the A1C assay into estimated average glucose values. Diabetes Care. 2008;31(8):1473-1478.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return 28.7*in.Number("hba1c") - 46.7
			},
		},
		{
			ID:          "tsat",
			Name:        "Transferrin saturation",
			Description: "Serum iron as a percentage of total iron-binding capacity.",
			Category:    domain.LabsLipids,
			Inputs: []domain.InputSpec{
				numberInput("serum_iron", "Serum iron", "µg/dL", 5, 500, 1),
				numberInput("tibc", "Total iron-binding capacity", "µg/dL", 50, 800, 1),
			},
			ResultLabel:     "Transferrin saturation",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Adequate or elevated transferrin saturation",
				lt(20, "Iron deficiency range: consider IV iron in CKD anemia"),
			),
			ClinicalPearls: []string{
				"KDIGO suggests IV iron when TSAT is ≤30% and ferritin ≤500 ng/mL in ESA-treated CKD patients.",
				"TSAT falls acutely with inflammation; interpret alongside ferritin.",
			},
			References: []string{
				"KDIGO Clinical Practice Guideline for Anemia in Chronic Kidney Disease. Kidney Int Suppl. 2012;2(4):279-335.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				return in.Number("serum_iron") / in.Number("tibc") * 100
			},
		},
	}
}
