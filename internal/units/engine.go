package units

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// Engine converts laboratory values between the two unit systems. All
// operations are pure functions over the fixed conversion table; the only
// side effect is diagnostic logging on the compatibility path.
type Engine struct {
	log   *logrus.Logger
	table map[domain.Analyte]domain.AnalyteConversion
}

// NewEngine creates a normalization engine over the built-in conversion
// vocabulary.
func NewEngine(logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	table := make(map[domain.Analyte]domain.AnalyteConversion, len(conversionTable))
	for _, c := range conversionTable {
		table[c.Analyte] = c
	}
	return &Engine{log: logger, table: table}
}

// Conversion returns the factor pair for the given analyte.
func (e *Engine) Conversion(analyte domain.Analyte) (domain.AnalyteConversion, bool) {
	c, ok := e.table[analyte]
	return c, ok
}

// ToSI converts a conventional-unit value into the analyte's SI unit.
func (e *Engine) ToSI(value float64, analyte domain.Analyte) (float64, error) {
	c, ok := e.table[analyte]
	if !ok {
		return 0, &domain.UnsupportedConversionError{Analyte: analyte, FromUnit: "conventional", ToUnit: "si"}
	}
	return value * c.ToSIFactor, nil
}

// ToConventional converts an SI-unit value into the analyte's conventional unit.
func (e *Engine) ToConventional(value float64, analyte domain.Analyte) (float64, error) {
	c, ok := e.table[analyte]
	if !ok {
		return 0, &domain.UnsupportedConversionError{Analyte: analyte, FromUnit: "si", ToUnit: "conventional"}
	}
	return value * c.ToConventionalFactor, nil
}

// Normalize converts a value from its current unit system to the target
// system. Identity when the value is already in the target system.
func (e *Engine) Normalize(value float64, analyte domain.Analyte, current, target domain.UnitSystem) (float64, error) {
	if !current.IsValid() || !target.IsValid() {
		return 0, domain.ErrInvalidUnitSystem
	}
	if current == target {
		return value, nil
	}
	if target == domain.SI {
		return e.ToSI(value, analyte)
	}
	return e.ToConventional(value, analyte)
}

// NormalizeToSI converts a value to the analyte's SI unit unless it is
// already expressed in it.
func (e *Engine) NormalizeToSI(value float64, analyte domain.Analyte, current domain.UnitSystem) (float64, error) {
	return e.Normalize(value, analyte, current, domain.SI)
}

// NormalizeToConventional converts a value to the analyte's conventional
// unit unless it is already expressed in it.
func (e *Engine) NormalizeToConventional(value float64, analyte domain.Analyte, current domain.UnitSystem) (float64, error) {
	return e.Normalize(value, analyte, current, domain.Conventional)
}

// ConvertValue is the string-keyed compatibility shim for callers that lost
// the analyte tag. Several analytes share literal unit pairs (creatinine and
// uric acid both convert mg/dL to µmol/L), so when the pair alone is
// ambiguous the shim guesses by input magnitude and reports the guess as an
// AmbiguousUnitInference warning. When no factor rule matches at all it
// returns the value unchanged with an UnknownConversion warning; callers
// must not treat the returned value as proof the units matched.
//
// New code should carry the analyte tag and use Normalize instead.
func (e *Engine) ConvertValue(value float64, fromUnit, toUnit string) (float64, *domain.Warning) {
	if fromUnit == toUnit {
		return value, nil
	}

	type candidate struct {
		conv domain.AnalyteConversion
		toSI bool
	}
	var candidates []candidate
	for _, c := range conversionTable {
		if c.ConventionalUnit == fromUnit && c.SIUnit == toUnit {
			candidates = append(candidates, candidate{conv: c, toSI: true})
		} else if c.SIUnit == fromUnit && c.ConventionalUnit == toUnit {
			candidates = append(candidates, candidate{conv: c, toSI: false})
		}
	}

	if len(candidates) == 0 {
		e.log.WithFields(logrus.Fields{
			"from_unit": fromUnit,
			"to_unit":   toUnit,
		}).Warn("no conversion rule for unit pair, returning value unchanged")
		return value, &domain.Warning{
			Code:    domain.WarnUnknownConversion,
			Message: fmt.Sprintf("no conversion rule for %s -> %s; value passed through unchanged", fromUnit, toUnit),
		}
	}

	chosen := candidates[0]
	var warning *domain.Warning
	if len(candidates) > 1 {
		for _, cand := range candidates {
			r, ok := typicalConventionalRange[cand.conv.Analyte]
			if !ok {
				continue
			}
			low, high := r[0], r[1]
			probe := value
			if !cand.toSI {
				// Incoming value is SI; compare in conventional terms.
				probe = value * cand.conv.ToConventionalFactor
			}
			if probe >= low && probe <= high {
				chosen = cand
				break
			}
		}
		warning = &domain.Warning{
			Code: domain.WarnAmbiguousUnitInference,
			Message: fmt.Sprintf("unit pair %s -> %s matches multiple analytes; inferred %s from magnitude",
				fromUnit, toUnit, chosen.conv.Analyte),
		}
		e.log.WithFields(logrus.Fields{
			"from_unit": fromUnit,
			"to_unit":   toUnit,
			"inferred":  chosen.conv.Analyte.String(),
			"value":     value,
		}).Warn("ambiguous unit conversion resolved by magnitude heuristic")
	}

	if chosen.toSI {
		return value * chosen.conv.ToSIFactor, warning
	}
	return value * chosen.conv.ToConventionalFactor, warning
}
