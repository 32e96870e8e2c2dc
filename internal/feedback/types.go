// Package feedback provides storage for clinician feedback on calculator
// interpretations. It stores assessments of band texts and thresholds to
// guide catalog revisions; no patient data is persisted, only the computed
// metric value and the resolved band.
package feedback

import (
	"context"
	"io"
	"time"
)

// Assessment represents the reviewer's judgment of an interpretation band.
type Assessment string

const (
	AssessmentAccurate        Assessment = "Accurate"
	AssessmentTooConservative Assessment = "Too Conservative"
	AssessmentTooAggressive   Assessment = "Too Aggressive"
	AssessmentIncorrect       Assessment = "Incorrect"
)

// Feedback represents one reviewer's standing assessment of a calculator's
// interpretation. A reviewer has at most one entry per calculator; saving
// again replaces it.
type Feedback struct {
	ID             int64      `json:"id,omitempty"`
	CalculatorID   string     `json:"calculator_id"`
	ReviewerID     string     `json:"reviewer_id"`               // Opaque client identifier
	ComputedValue  float64    `json:"computed_value"`            // Metric value the band was resolved for
	Interpretation string     `json:"interpretation"`            // Band text the system returned
	Assessment     Assessment `json:"assessment"`                // Reviewer's judgment
	Agreed         bool       `json:"agreed"`                    // Did the reviewer agree with the band?
	Notes          string     `json:"notes,omitempty"`           // Free-text comments
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores or updates a reviewer's feedback for a calculator.
	// If feedback for the same calculator+reviewer exists, it is updated.
	Save(ctx context.Context, feedback *Feedback) error

	// Get retrieves a reviewer's feedback for a calculator.
	// Returns nil without error when none exists.
	Get(ctx context.Context, calculatorID, reviewerID string) (*Feedback, error)

	// List returns all feedback entries with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// ListByCalculator returns all feedback for one calculator, newest first.
	ListByCalculator(ctx context.Context, calculatorID string, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader.
	// Returns the number of imported and skipped entries.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// FeedbackExport represents the JSON export format.
type FeedbackExport struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}
