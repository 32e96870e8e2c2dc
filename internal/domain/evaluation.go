package domain

// EvaluationRequest is the transient value object carrying one calculation.
// Values map input ids to raw field values exactly as the caller captured
// them; UnitSystems maps unit-toggling input ids to the system the caller
// entered the value in. Missing map entries default to the system the
// input's formula expects, so an unflagged value passes through unchanged.
// Lifetime is a single Evaluate call; nothing is persisted.
type EvaluationRequest struct {
	CalculatorID string                `json:"calculator_id"`
	Values       map[string]string     `json:"values"`
	UnitSystems  map[string]UnitSystem `json:"unit_systems,omitempty"`
}

// System returns the unit system the caller entered the given field in.
// Fields without an explicit entry are assumed to already be in fallback,
// the system the input's formula consumes.
func (r EvaluationRequest) System(fieldID string, fallback UnitSystem) UnitSystem {
	if s, ok := r.UnitSystems[fieldID]; ok && s.IsValid() {
		return s
	}
	if fallback.IsValid() {
		return fallback
	}
	return Conventional
}

// Warning codes surfaced alongside a successful result.
const (
	WarnAmbiguousUnitInference = "AMBIGUOUS_UNIT_INFERENCE"
	WarnUnknownConversion      = "UNKNOWN_CONVERSION"
)

// Warning is a non-fatal condition observed during normalization. Ambiguous
// unit inference must be observable by the caller; a result carrying
// warnings must never be silently trusted for clinical-grade output.
type Warning struct {
	Code    string `json:"code"`
	FieldID string `json:"field_id,omitempty"`
	Message string `json:"message"`
}

// EvaluationResult is the transient outcome of one calculation: the raw
// numeric result, the first matching interpretation band text, and the
// result unit label. Evaluation is all-or-nothing, so a result only exists
// when validation and normalization succeeded.
type EvaluationResult struct {
	CalculatorID   string    `json:"calculator_id"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	Interpretation string    `json:"interpretation"`
	Warnings       []Warning `json:"warnings,omitempty"`
}
