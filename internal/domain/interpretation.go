package domain

import (
	"fmt"
)

// BandOp is the comparison a band applies to the computed value.
type BandOp string

const (
	OpGTE BandOp = ">="
	OpGT  BandOp = ">"
	OpLTE BandOp = "<="
	OpLT  BandOp = "<"
	// OpAny always matches. The final band of every rule uses it as the
	// catch-all for values outside all declared thresholds.
	OpAny BandOp = "any"
)

// Band maps one comparison against a threshold to a clinical-meaning text.
type Band struct {
	Op        BandOp  `json:"op"`
	Threshold float64 `json:"threshold,omitempty"`
	Text      string  `json:"text"`
}

// Matches reports whether the value satisfies this band's comparison.
func (b Band) Matches(value float64) bool {
	switch b.Op {
	case OpGTE:
		return value >= b.Threshold
	case OpGT:
		return value > b.Threshold
	case OpLTE:
		return value <= b.Threshold
	case OpLT:
		return value < b.Threshold
	case OpAny:
		return true
	default:
		return false
	}
}

// InterpretationRule is an ordered list of bands evaluated first-match-wins.
// Each calculator embeds its own comparison direction (some rules descend
// from best to worst, others ascend) matching clinical convention; the
// resolver never re-sorts the bands. Boundary values belong to the band
// whose comparison matches first.
type InterpretationRule struct {
	Bands []Band `json:"bands"`
}

// Resolve returns the text of the first band the value satisfies. The rule
// is callable standalone with just a numeric value, independent of the
// evaluator, for live-preview consumers.
func (r InterpretationRule) Resolve(value float64) string {
	for _, band := range r.Bands {
		if band.Matches(value) {
			return band.Text
		}
	}
	return ""
}

// Validate checks the rule is non-empty, every band is well formed, and the
// final band is a catch-all so no value falls through without a text.
func (r InterpretationRule) Validate() error {
	if len(r.Bands) == 0 {
		return fmt.Errorf("interpretation rule: at least one band is required")
	}
	for i, band := range r.Bands {
		switch band.Op {
		case OpGTE, OpGT, OpLTE, OpLT, OpAny:
		default:
			return fmt.Errorf("interpretation rule: band %d has unknown op %q", i, band.Op)
		}
		if band.Text == "" {
			return fmt.Errorf("interpretation rule: band %d has empty text", i)
		}
	}
	if r.Bands[len(r.Bands)-1].Op != OpAny {
		return fmt.Errorf("interpretation rule: final band must be a catch-all")
	}
	return nil
}

// NewRule builds a rule from ordered bands followed by a final catch-all.
func NewRule(catchAll string, bands ...Band) InterpretationRule {
	all := make([]Band, 0, len(bands)+1)
	all = append(all, bands...)
	all = append(all, Band{Op: OpAny, Text: catchAll})
	return InterpretationRule{Bands: all}
}
