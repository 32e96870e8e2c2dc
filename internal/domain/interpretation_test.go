package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBand_Matches(t *testing.T) {
	tests := []struct {
		name  string
		band  Band
		value float64
		want  bool
	}{
		{
			name:  "GTE at threshold",
			band:  Band{Op: OpGTE, Threshold: 90},
			value: 90,
			want:  true,
		},
		{
			name:  "GTE below threshold",
			band:  Band{Op: OpGTE, Threshold: 90},
			value: 89.999,
			want:  false,
		},
		{
			name:  "GT at threshold",
			band:  Band{Op: OpGT, Threshold: 10.5},
			value: 10.5,
			want:  false,
		},
		{
			name:  "GT above threshold",
			band:  Band{Op: OpGT, Threshold: 10.5},
			value: 10.6,
			want:  true,
		},
		{
			name:  "LTE at threshold",
			band:  Band{Op: OpLTE, Threshold: 2},
			value: 2,
			want:  true,
		},
		{
			name:  "LT at threshold",
			band:  Band{Op: OpLT, Threshold: 1},
			value: 1,
			want:  false,
		},
		{
			name:  "LT below threshold",
			band:  Band{Op: OpLT, Threshold: 1},
			value: 0.99,
			want:  true,
		},
		{
			name:  "Any matches everything",
			band:  Band{Op: OpAny},
			value: -1e9,
			want:  true,
		},
		{
			name:  "Unknown op never matches",
			band:  Band{Op: BandOp("between"), Threshold: 5},
			value: 5,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.band.Matches(tt.value))
		})
	}
}

func TestInterpretationRule_Resolve_FirstMatchWins(t *testing.T) {
	// Descending GFR-style bands: overlapping comparisons where order
	// decides the outcome.
	rule := NewRule(
		"worst",
		Band{Op: OpGTE, Threshold: 90, Text: "best"},
		Band{Op: OpGTE, Threshold: 60, Text: "good"},
		Band{Op: OpGTE, Threshold: 30, Text: "bad"},
	)

	tests := []struct {
		value float64
		want  string
	}{
		{120, "best"},
		{90, "best"},
		{89.999, "good"},
		{60, "good"},
		{59.5, "bad"},
		{30, "bad"},
		{29.999, "worst"},
		{-5, "worst"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rule.Resolve(tt.value), "value %v", tt.value)
	}
}

func TestInterpretationRule_Resolve_AscendingBands(t *testing.T) {
	rule := NewRule(
		"high",
		Band{Op: OpLT, Threshold: 1, Text: "low"},
		Band{Op: OpLTE, Threshold: 2, Text: "middle"},
	)

	assert.Equal(t, "low", rule.Resolve(0.5))
	assert.Equal(t, "middle", rule.Resolve(1))
	assert.Equal(t, "middle", rule.Resolve(2))
	assert.Equal(t, "high", rule.Resolve(2.001))
}

func TestInterpretationRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    InterpretationRule
		wantErr bool
	}{
		{
			name:    "valid rule with catch-all",
			rule:    NewRule("fallback", Band{Op: OpLT, Threshold: 1, Text: "low"}),
			wantErr: false,
		},
		{
			name:    "catch-all only",
			rule:    NewRule("always"),
			wantErr: false,
		},
		{
			name:    "empty rule",
			rule:    InterpretationRule{},
			wantErr: true,
		},
		{
			name: "missing catch-all",
			rule: InterpretationRule{Bands: []Band{
				{Op: OpLT, Threshold: 1, Text: "low"},
			}},
			wantErr: true,
		},
		{
			name: "unknown op",
			rule: InterpretationRule{Bands: []Band{
				{Op: BandOp("!="), Threshold: 1, Text: "x"},
				{Op: OpAny, Text: "y"},
			}},
			wantErr: true,
		},
		{
			name: "empty band text",
			rule: InterpretationRule{Bands: []Band{
				{Op: OpLT, Threshold: 1, Text: ""},
				{Op: OpAny, Text: "y"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewRule_AppendsCatchAll(t *testing.T) {
	rule := NewRule("rest", Band{Op: OpLT, Threshold: 5, Text: "small"})

	require.Len(t, rule.Bands, 2)
	assert.Equal(t, OpAny, rule.Bands[1].Op)
	assert.Equal(t, "rest", rule.Bands[1].Text)
}
