package domain

import (
	"fmt"
)

// Error codes for API error payloads.
const (
	ErrCodeMissingRequiredField  = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidInput          = "INVALID_INPUT"
	ErrCodeUnsupportedConversion = "UNSUPPORTED_UNIT_CONVERSION"
	ErrCodeCalculatorNotFound    = "CALCULATOR_NOT_FOUND"
	ErrCodeInternalServer        = "INTERNAL_SERVER_ERROR"
)

// MissingFieldError reports a required input with no value. Validation
// errors abort evaluation before any formula executes.
type MissingFieldError struct {
	FieldID string `json:"field_id"`
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.FieldID)
}

// InvalidInputError reports a field whose value is non-numeric, non-finite,
// or outside its declared bounds.
type InvalidInputError struct {
	FieldID string `json:"field_id"`
	Reason  string `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for field %q: %s", e.FieldID, e.Reason)
}

// UnsupportedConversionError reports that normalization found no factor rule
// for the requested conversion. On the analyte-keyed path this is a hard
// failure: returning the input unchanged would risk a silently wrong
// clinical number.
type UnsupportedConversionError struct {
	Analyte  Analyte `json:"analyte,omitempty"`
	FromUnit string  `json:"from_unit"`
	ToUnit   string  `json:"to_unit"`
}

func (e *UnsupportedConversionError) Error() string {
	if e.Analyte != "" {
		return fmt.Sprintf("unsupported unit conversion for %s: %s -> %s", e.Analyte, e.FromUnit, e.ToUnit)
	}
	return fmt.Sprintf("unsupported unit conversion: %s -> %s", e.FromUnit, e.ToUnit)
}

// Unwrap lets callers test with errors.Is(err, ErrUnsupportedConversion).
func (e *UnsupportedConversionError) Unwrap() error {
	return ErrUnsupportedConversion
}

// ErrorCode maps an evaluation error to its API error code.
func ErrorCode(err error) string {
	switch err.(type) {
	case *MissingFieldError:
		return ErrCodeMissingRequiredField
	case *InvalidInputError:
		return ErrCodeInvalidInput
	case *UnsupportedConversionError:
		return ErrCodeUnsupportedConversion
	default:
		return ErrCodeInternalServer
	}
}
