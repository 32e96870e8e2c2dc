// Package evaluator turns a raw evaluation request into a derived metric:
// it validates the request against the calculator's input specifications,
// normalizes unit-toggling values into the unit system each formula expects,
// runs the closed-form compute function, and resolves the interpretation
// band. Evaluation is all-or-nothing; no partial result survives a
// validation or normalization failure.
package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

// Evaluator computes derived metrics against a fixed catalog. It holds no
// per-request state and is safe for concurrent use.
type Evaluator struct {
	log      *logrus.Logger
	registry *registry.Registry
	units    *units.Engine
}

// New creates an evaluator over the given catalog and normalization engine.
func New(reg *registry.Registry, eng *units.Engine, logger *logrus.Logger) *Evaluator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{log: logger, registry: reg, units: eng}
}

// Evaluate runs one calculation end to end. Field values arrive as raw
// strings exactly as captured from the caller; unknown field ids are
// ignored so callers can submit a superset form payload.
func (e *Evaluator) Evaluate(req domain.EvaluationRequest) (*domain.EvaluationResult, error) {
	def, err := e.registry.GetByID(req.CalculatorID)
	if err != nil {
		return nil, err
	}

	inputs, warnings, err := e.parseInputs(def, req)
	if err != nil {
		return nil, err
	}

	value := def.Compute(inputs)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		e.log.WithFields(logrus.Fields{
			"calculator": def.ID,
			"value":      value,
		}).Error("formula produced a non-finite result")
		return nil, fmt.Errorf("calculator %q produced a non-finite result", def.ID)
	}

	result := &domain.EvaluationResult{
		CalculatorID:   def.ID,
		Value:          value,
		Unit:           def.ResultUnit,
		Interpretation: def.Interpretation.Resolve(value),
		Warnings:       warnings,
	}

	e.log.WithFields(logrus.Fields{
		"calculator": def.ID,
		"value":      value,
		"warnings":   len(warnings),
	}).Debug("calculation evaluated")

	return result, nil
}

// Interpret resolves the interpretation band text for an already-computed
// metric value, without re-running the formula.
func (e *Evaluator) Interpret(calculatorID string, value float64) (string, error) {
	def, err := e.registry.GetByID(calculatorID)
	if err != nil {
		return "", err
	}
	return def.Interpretation.Resolve(value), nil
}

// parseInputs walks the definition's input specs in order, converting raw
// string values into typed, normalized CalcInputs. The first violation
// aborts the whole evaluation.
func (e *Evaluator) parseInputs(def *domain.CalculatorDefinition, req domain.EvaluationRequest) (domain.CalcInputs, []domain.Warning, error) {
	inputs := domain.CalcInputs{
		Numbers: make(map[string]float64),
		Choices: make(map[string]string),
		Flags:   make(map[string]bool),
	}
	var warnings []domain.Warning

	for _, spec := range def.Inputs {
		raw := strings.TrimSpace(req.Values[spec.ID])
		if raw == "" {
			if spec.Required {
				return inputs, nil, &domain.MissingFieldError{FieldID: spec.ID}
			}
			continue
		}

		switch spec.Kind {
		case domain.InputNumeric:
			value, err := e.parseNumeric(spec, raw, req.System(spec.ID, spec.FormulaSystem))
			if err != nil {
				return inputs, nil, err
			}
			inputs.Numbers[spec.ID] = value

		case domain.InputSelect, domain.InputRadio:
			if !hasOption(spec.Options, raw) {
				return inputs, nil, &domain.InvalidInputError{
					FieldID: spec.ID,
					Reason:  fmt.Sprintf("%q is not one of the allowed options", raw),
				}
			}
			inputs.Choices[spec.ID] = raw

		case domain.InputBoolean:
			flag, err := strconv.ParseBool(raw)
			if err != nil {
				return inputs, nil, &domain.InvalidInputError{
					FieldID: spec.ID,
					Reason:  fmt.Sprintf("%q is not a boolean", raw),
				}
			}
			inputs.Flags[spec.ID] = flag
		}
	}

	return inputs, warnings, nil
}

// parseNumeric parses a numeric field, normalizes it into the unit system
// the formula expects, and applies the declared bounds. Bounds are declared
// in the formula's unit system, so they are checked after normalization.
func (e *Evaluator) parseNumeric(spec domain.InputSpec, raw string, entered domain.UnitSystem) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.InvalidInputError{
			FieldID: spec.ID,
			Reason:  fmt.Sprintf("%q is not a number", raw),
		}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &domain.InvalidInputError{FieldID: spec.ID, Reason: "value must be finite"}
	}

	if spec.HasUnitToggle() {
		target := spec.FormulaSystem
		if !target.IsValid() {
			target = domain.Conventional
		}
		value, err = e.units.Normalize(value, spec.Analyte, entered, target)
		if err != nil {
			return 0, err
		}
	}

	if spec.Min != nil && value < *spec.Min {
		return 0, &domain.InvalidInputError{
			FieldID: spec.ID,
			Reason:  fmt.Sprintf("value %g is below the minimum of %g", value, *spec.Min),
		}
	}
	if spec.Max != nil && value > *spec.Max {
		return 0, &domain.InvalidInputError{
			FieldID: spec.ID,
			Reason:  fmt.Sprintf("value %g is above the maximum of %g", value, *spec.Max),
		}
	}

	return value, nil
}

func hasOption(options []domain.InputOption, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
