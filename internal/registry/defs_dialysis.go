package registry

import (
	"math"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// spKtV is the Daugirdas second-generation single-pool Kt/V. R is the
// post/pre BUN ratio, t the session hours, uf the ultrafiltration volume in
// liters, and w the post-dialysis weight in kg.
func spKtV(r, t, uf, w float64) float64 {
	return -math.Log(r-0.008*t) + (4-3.5*r)*uf/w
}

func dialysisDefs() []*domain.CalculatorDefinition {
	return []*domain.CalculatorDefinition{
		{
			ID:          "urr",
			Name:        "Urea reduction ratio",
			Description: "Percent fall in BUN across a hemodialysis session; the simplest single-session adequacy measure.",
			Category:    domain.Dialysis,
			Inputs: []domain.InputSpec{
				analyteInput("pre_bun", "Pre-dialysis BUN", domain.BUN, 2, 250, 1),
				analyteInput("post_bun", "Post-dialysis BUN", domain.BUN, 1, 250, 1),
			},
			ResultLabel:     "URR",
			ResultUnit:      "%",
			ResultPrecision: 1,
			Interpretation: domain.NewRule(
				"Below the adequacy target (URR <65%) — review prescription, access, and session time",
				gte(65, "Meets the conventional adequacy target (URR ≥65%)"),
			),
			ClinicalPearls: []string{
				"URR ignores ultrafiltration and urea rebound; Kt/V is the preferred adequacy measure.",
				"Draw the post-dialysis sample with a slow-flow or stop-pump technique to avoid recirculation artifact.",
			},
			References: []string{
				"KDOQI Clinical Practice Guideline for Hemodialysis Adequacy: 2015 update. Am J Kidney Dis. 2015;66(5):884-930.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				pre := in.Number("pre_bun")
				return (pre - in.Number("post_bun")) / pre * 100
			},
		},
		{
			ID:          "ktv-daugirdas",
			Name:        "Single-pool Kt/V (Daugirdas)",
			Description: "Urea-kinetic hemodialysis dose from the pre/post BUN ratio, session time, ultrafiltration volume, and post-dialysis weight.",
			Category:    domain.Dialysis,
			Inputs: []domain.InputSpec{
				analyteInput("pre_bun", "Pre-dialysis BUN", domain.BUN, 2, 250, 1),
				analyteInput("post_bun", "Post-dialysis BUN", domain.BUN, 1, 250, 1),
				numberInput("hours", "Session length", "h", 0.5, 10, 0.25),
				numberInput("uf_volume", "Ultrafiltration volume", "L", 0, 10, 0.1),
				inSI(analyteInput("weight", "Post-dialysis weight", domain.Weight, 20, 300, 0.1)),
			},
			ResultLabel:     "spKt/V",
			ResultUnit:      "",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Inadequate dialysis dose (spKt/V <1.2)",
				gte(1.4, "Meets the target dose (spKt/V ≥1.4)"),
				gte(1.2, "Minimally adequate dose (1.2-1.4) — little margin for shortened sessions"),
			),
			ClinicalPearls: []string{
				"The -0.008×t term models urea generation during the session; the UF term adds convective clearance.",
				"Target spKt/V 1.4 per session with a 1.2 minimum for thrice-weekly hemodialysis.",
			},
			References: []string{
				"Daugirdas JT. Second generation logarithmic estimates of single-pool variable volume Kt/V: an analysis of error. J Am Soc Nephrol. 1993;4(5):1205-1213.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				r := in.Number("post_bun") / in.Number("pre_bun")
				return spKtV(r, in.Number("hours"), in.Number("uf_volume"), in.Number("weight"))
			},
		},
		{
			ID:          "equilibrated-ktv",
			Name:        "Equilibrated Kt/V",
			Description: "Single-pool Kt/V corrected for post-dialysis urea rebound using the Daugirdas rate equation.",
			Category:    domain.Dialysis,
			Inputs: []domain.InputSpec{
				analyteInput("pre_bun", "Pre-dialysis BUN", domain.BUN, 2, 250, 1),
				analyteInput("post_bun", "Post-dialysis BUN", domain.BUN, 1, 250, 1),
				numberInput("hours", "Session length", "h", 0.5, 10, 0.25),
				numberInput("uf_volume", "Ultrafiltration volume", "L", 0, 10, 0.1),
				inSI(analyteInput("weight", "Post-dialysis weight", domain.Weight, 20, 300, 0.1)),
			},
			ResultLabel:     "eKt/V",
			ResultUnit:      "",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Below the equilibrated adequacy floor (eKt/V <1.05)",
				gte(1.2, "Comfortably adequate equilibrated dose"),
				gte(1.05, "Meets the equilibrated adequacy floor (eKt/V ≥1.05)"),
			),
			ClinicalPearls: []string{
				"Rebound correction matters most for short, high-efficiency sessions.",
			},
			References: []string{
				"Daugirdas JT, Schneditz D. Overestimation of hemodialysis dose depends on dialysis efficiency by regional blood flow but not by conventional two pool urea kinetic analysis. ASAIO J. 1995;41(3):M719-724.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				r := in.Number("post_bun") / in.Number("pre_bun")
				t := in.Number("hours")
				sp := spKtV(r, t, in.Number("uf_volume"), in.Number("weight"))
				return sp - 0.6*sp/t + 0.03
			},
		},
		{
			ID:          "pd-weekly-ktv",
			Name:        "Peritoneal dialysis weekly Kt/V",
			Description: "Weekly urea clearance for PD from the dialysate-to-plasma urea ratio, daily drain volume, and estimated total body water.",
			Category:    domain.Dialysis,
			Inputs: []domain.InputSpec{
				analyteInput("dialysate_urea", "24h dialysate urea nitrogen", domain.BUN, 1, 250, 1),
				analyteInput("plasma_bun", "Plasma BUN", domain.BUN, 2, 250, 1),
				numberInput("drain_volume", "24h drain volume", "L", 1, 30, 0.1),
				inSI(analyteInput("weight", "Body weight", domain.Weight, 20, 300, 0.1)),
				sexInput(),
			},
			ResultLabel:     "Weekly Kt/V",
			ResultUnit:      "",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Below the weekly adequacy target (Kt/V <1.7) — reassess prescription and residual function",
				gte(1.7, "Meets the KDOQI weekly adequacy target (Kt/V ≥1.7)"),
			),
			ClinicalPearls: []string{
				"Total body water is estimated as 60% (men) or 50% (women) of weight; the Watson equation is more precise.",
				"Add residual renal urea clearance to total weekly Kt/V before judging adequacy.",
			},
			References: []string{
				"KDOQI Clinical Practice Recommendations for Peritoneal Dialysis Adequacy: 2006 update. Am J Kidney Dis. 2006;48 Suppl 1:S91-S158.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				dpRatio := in.Number("dialysate_urea") / in.Number("plasma_bun")
				dailyClearance := dpRatio * in.Number("drain_volume")
				tbw := tbwFraction(in.Choice("sex")) * in.Number("weight")
				return dailyClearance * 7 / tbw
			},
		},
		{
			ID:          "npcr",
			Name:        "Normalized protein catabolic rate",
			Description: "Dietary protein intake surrogate for hemodialysis patients from the interdialytic BUN rise.",
			Category:    domain.Dialysis,
			Inputs: []domain.InputSpec{
				analyteInput("post_bun", "Post-dialysis BUN (end of session)", domain.BUN, 1, 250, 1),
				analyteInput("pre_bun", "Pre-dialysis BUN (next session)", domain.BUN, 2, 250, 1),
				numberInput("interval_hours", "Interdialytic interval", "h", 12, 96, 1),
			},
			ResultLabel:     "nPCR",
			ResultUnit:      "g/kg/day",
			ResultPrecision: 2,
			Interpretation: domain.NewRule(
				"Low protein catabolic rate (<0.8 g/kg/day) — assess nutrition",
				gte(1.2, "Adequate estimated protein intake (≥1.2 g/kg/day)"),
				gte(0.8, "Borderline protein intake (0.8-1.2 g/kg/day)"),
			),
			ClinicalPearls: []string{
				"nPCR equals protein intake only in nitrogen-balanced, non-catabolic patients.",
			},
			References: []string{
				"Depner TA, Daugirdas JT. Equations for normalized protein catabolic rate based on two-point modeling of hemodialysis urea kinetics. J Am Soc Nephrol. 1996;7(5):780-785.",
			},
			Compute: func(in domain.CalcInputs) float64 {
				rise := in.Number("pre_bun") - in.Number("post_bun")
				return 0.22 + 0.036*rise*24/in.Number("interval_hours")
			},
		},
	}
}
