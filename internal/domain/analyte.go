package domain

// Analyte names a specific measured clinical quantity. The analyte is the
// conversion key: two analytes may share the same literal unit strings with
// different factors (creatinine and BUN both report in mg/dL), so values are
// tagged with their analyte from the point of origin and the tag is carried
// through normalization.
type Analyte string

const (
	Creatinine      Analyte = "creatinine"
	BUN             Analyte = "bun"
	Urea            Analyte = "urea"
	Glucose         Analyte = "glucose"
	Calcium         Analyte = "calcium"
	Phosphate       Analyte = "phosphate"
	Albumin         Analyte = "albumin"
	Sodium          Analyte = "sodium"
	Potassium       Analyte = "potassium"
	Chloride        Analyte = "chloride"
	Bicarbonate     Analyte = "bicarbonate"
	Magnesium       Analyte = "magnesium"
	UricAcid        Analyte = "uric_acid"
	Cholesterol     Analyte = "cholesterol"
	HDLCholesterol  Analyte = "hdl_cholesterol"
	Triglycerides   Analyte = "triglycerides"
	Hemoglobin      Analyte = "hemoglobin"
	Height          Analyte = "height"
	Weight          Analyte = "weight"
	UrineAlbumin    Analyte = "urine_albumin"
	UrineCreatinine Analyte = "urine_creatinine"
	UrineProtein    Analyte = "urine_protein"
	Osmolality      Analyte = "osmolality"
	CystatinC       Analyte = "cystatin_c"
	Tacrolimus      Analyte = "tacrolimus"
	Ethanol         Analyte = "ethanol"
)

// AnalyteConversion holds the conversion factor pair between the two unit
// systems for one analyte. The unit strings are immutable identifiers used
// for display and for the string-keyed compatibility path; they are never
// parsed to infer conversion behavior.
type AnalyteConversion struct {
	Analyte               Analyte `json:"analyte"`
	ConventionalUnit      string  `json:"conventional_unit"`
	SIUnit                string  `json:"si_unit"`
	ToSIFactor            float64 `json:"to_si_factor"`
	ToConventionalFactor  float64 `json:"to_conventional_factor"`
	ConventionalPrecision int     `json:"conventional_precision"`
	SIPrecision           int     `json:"si_precision"`
}

// Unit returns the canonical unit string for the given system.
func (c AnalyteConversion) Unit(system UnitSystem) string {
	if system == SI {
		return c.SIUnit
	}
	return c.ConventionalUnit
}

// Precision returns the display precision (decimal places) for the given system.
func (c AnalyteConversion) Precision(system UnitSystem) int {
	if system == SI {
		return c.SIPrecision
	}
	return c.ConventionalPrecision
}

// String returns the analyte identifier.
func (a Analyte) String() string {
	return string(a)
}
