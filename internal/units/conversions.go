// Package units implements the canonical unit model and the normalization
// engine that converts laboratory values between conventional and SI
// reporting before any formula runs.
package units

import (
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// conversionTable is the fixed per-analyte factor vocabulary. Factors are
// the AMA/SI laboratory conversion constants; reciprocal pairs are expressed
// as exact reciprocals so round trips only lose floating-point rounding.
var conversionTable = []domain.AnalyteConversion{
	{Analyte: domain.Creatinine, ConventionalUnit: "mg/dL", SIUnit: "µmol/L", ToSIFactor: 88.4, ToConventionalFactor: 1.0 / 88.4, ConventionalPrecision: 2, SIPrecision: 0},
	{Analyte: domain.BUN, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.357, ToConventionalFactor: 1.0 / 0.357, ConventionalPrecision: 0, SIPrecision: 1},
	{Analyte: domain.Urea, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.1665, ToConventionalFactor: 1.0 / 0.1665, ConventionalPrecision: 0, SIPrecision: 1},
	{Analyte: domain.Glucose, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 1.0 / 18.0182, ToConventionalFactor: 18.0182, ConventionalPrecision: 0, SIPrecision: 1},
	{Analyte: domain.Calcium, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.2495, ToConventionalFactor: 1.0 / 0.2495, ConventionalPrecision: 1, SIPrecision: 2},
	{Analyte: domain.Phosphate, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.3229, ToConventionalFactor: 1.0 / 0.3229, ConventionalPrecision: 1, SIPrecision: 2},
	{Analyte: domain.Albumin, ConventionalUnit: "g/dL", SIUnit: "g/L", ToSIFactor: 10, ToConventionalFactor: 0.1, ConventionalPrecision: 1, SIPrecision: 0},
	{Analyte: domain.Sodium, ConventionalUnit: "mEq/L", SIUnit: "mmol/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 0, SIPrecision: 0},
	{Analyte: domain.Potassium, ConventionalUnit: "mEq/L", SIUnit: "mmol/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 1, SIPrecision: 1},
	{Analyte: domain.Chloride, ConventionalUnit: "mEq/L", SIUnit: "mmol/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 0, SIPrecision: 0},
	{Analyte: domain.Bicarbonate, ConventionalUnit: "mEq/L", SIUnit: "mmol/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 0, SIPrecision: 0},
	{Analyte: domain.Magnesium, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.4114, ToConventionalFactor: 1.0 / 0.4114, ConventionalPrecision: 1, SIPrecision: 2},
	{Analyte: domain.UricAcid, ConventionalUnit: "mg/dL", SIUnit: "µmol/L", ToSIFactor: 59.48, ToConventionalFactor: 1.0 / 59.48, ConventionalPrecision: 1, SIPrecision: 0},
	{Analyte: domain.Cholesterol, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.02586, ToConventionalFactor: 1.0 / 0.02586, ConventionalPrecision: 0, SIPrecision: 2},
	{Analyte: domain.HDLCholesterol, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.02586, ToConventionalFactor: 1.0 / 0.02586, ConventionalPrecision: 0, SIPrecision: 2},
	{Analyte: domain.Triglycerides, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.01129, ToConventionalFactor: 1.0 / 0.01129, ConventionalPrecision: 0, SIPrecision: 2},
	{Analyte: domain.Hemoglobin, ConventionalUnit: "g/dL", SIUnit: "g/L", ToSIFactor: 10, ToConventionalFactor: 0.1, ConventionalPrecision: 1, SIPrecision: 0},
	{Analyte: domain.Height, ConventionalUnit: "in", SIUnit: "cm", ToSIFactor: 2.54, ToConventionalFactor: 1.0 / 2.54, ConventionalPrecision: 1, SIPrecision: 1},
	{Analyte: domain.Weight, ConventionalUnit: "lb", SIUnit: "kg", ToSIFactor: 0.453592, ToConventionalFactor: 1.0 / 0.453592, ConventionalPrecision: 1, SIPrecision: 1},
	{Analyte: domain.UrineAlbumin, ConventionalUnit: "mg/g", SIUnit: "mg/mmol", ToSIFactor: 0.113, ToConventionalFactor: 1.0 / 0.113, ConventionalPrecision: 0, SIPrecision: 1},
	{Analyte: domain.UrineCreatinine, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.0884, ToConventionalFactor: 1.0 / 0.0884, ConventionalPrecision: 0, SIPrecision: 1},
	{Analyte: domain.UrineProtein, ConventionalUnit: "mg/dL", SIUnit: "g/L", ToSIFactor: 0.01, ToConventionalFactor: 100, ConventionalPrecision: 0, SIPrecision: 2},
	{Analyte: domain.Osmolality, ConventionalUnit: "mOsm/kg", SIUnit: "mmol/kg", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 0, SIPrecision: 0},
	{Analyte: domain.CystatinC, ConventionalUnit: "mg/L", SIUnit: "mg/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 2, SIPrecision: 2},
	{Analyte: domain.Tacrolimus, ConventionalUnit: "ng/mL", SIUnit: "µg/L", ToSIFactor: 1, ToConventionalFactor: 1, ConventionalPrecision: 1, SIPrecision: 1},
	{Analyte: domain.Ethanol, ConventionalUnit: "mg/dL", SIUnit: "mmol/L", ToSIFactor: 0.2171, ToConventionalFactor: 1.0 / 0.2171, ConventionalPrecision: 0, SIPrecision: 1},
}

// typicalConventionalRange is the plausible conventional-unit magnitude range
// per analyte, used only by the string-keyed compatibility shim to pick among
// analytes that share a literal unit pair. The analyte-keyed path never
// consults it.
var typicalConventionalRange = map[domain.Analyte][2]float64{
	domain.Creatinine:      {0.1, 25},
	domain.BUN:             {1, 250},
	domain.Urea:            {2, 500},
	domain.Glucose:         {20, 2000},
	domain.Calcium:         {4, 18},
	domain.Phosphate:       {0.5, 15},
	domain.Magnesium:       {0.5, 10},
	domain.UricAcid:        {1, 20},
	domain.Cholesterol:     {50, 500},
	domain.HDLCholesterol:  {10, 120},
	domain.Triglycerides:   {30, 3000},
	domain.UrineCreatinine: {10, 400},
	domain.Ethanol:         {10, 600},
}

// Conversions returns the full conversion vocabulary in table order.
func Conversions() []domain.AnalyteConversion {
	out := make([]domain.AnalyteConversion, len(conversionTable))
	copy(out, conversionTable)
	return out
}

// ConversionFor returns the factor pair for the given analyte.
func ConversionFor(analyte domain.Analyte) (domain.AnalyteConversion, bool) {
	for _, c := range conversionTable {
		if c.Analyte == analyte {
			return c, true
		}
	}
	return domain.AnalyteConversion{}, false
}
