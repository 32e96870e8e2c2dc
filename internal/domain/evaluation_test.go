package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationRequest_System(t *testing.T) {
	req := EvaluationRequest{
		UnitSystems: map[string]UnitSystem{
			"creatinine": SI,
			"weight":     UnitSystem("imperial"),
		},
	}

	// Explicit valid entries win.
	assert.Equal(t, SI, req.System("creatinine", Conventional))

	// Unflagged fields default to the system the formula consumes.
	assert.Equal(t, SI, req.System("height", SI))
	assert.Equal(t, Conventional, req.System("sodium", Conventional))

	// Unrecognized entries and fallbacks degrade to conventional.
	assert.Equal(t, Conventional, req.System("weight", UnitSystem("")))
}
