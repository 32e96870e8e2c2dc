package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationRecord is a persisted audit entry for a single evaluation.
// Records capture the computed value and the interpretation that was
// returned to the caller so reviewers can audit past results.
type EvaluationRecord struct {
	ID             uuid.UUID `json:"id"`
	CalculatorID   string    `json:"calculator_id"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit,omitempty"`
	Interpretation string    `json:"interpretation,omitempty"`
	Warnings       []Warning `json:"warnings,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
