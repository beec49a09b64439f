package impact

import (
	"math"
	"strings"
)

// Canonical units. Every unit-bearing value is converted to these before it
// enters any computation, so downstream components never see raw units.
const (
	// UnitKilograms is the canonical unit for carbon footprint and
	// plastic-mass values.
	UnitKilograms = "kg"

	// UnitLiters is the canonical unit for water usage.
	UnitLiters = "L"

	// UnitKilowattHours is the canonical unit for energy consumption.
	UnitKilowattHours = "kWh"

	// UnitKilometers is the canonical unit for manufacturing distance.
	UnitKilometers = "km"
)

// Unit conversion factors to the canonical unit of each dimension.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// MillilitersToL converts milliliters to liters.
	MillilitersToL = 0.001

	// WattHoursToKWh converts watt-hours to kilowatt-hours.
	WattHoursToKWh = 0.001

	// MilesToKm converts statute miles to kilometers.
	MilesToKm = 1.609344
)

// Measurement is a raw value with its declared unit, as supplied by the
// brand/verification workflow before canonicalization.
type Measurement struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// carbonUnitFactor returns the conversion factor to kilograms for a carbon
// unit string. Matching is case-insensitive. Returns (0, false) for
// unrecognized units.
func carbonUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g":
		return GramsToKg, true
	case "", "kg":
		return 1, true
	default:
		return 0, false
	}
}

// waterUnitFactor returns the conversion factor to liters for a water unit
// string.
func waterUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "ml":
		return MillilitersToL, true
	case "", "l":
		return 1, true
	default:
		return 0, false
	}
}

// energyUnitFactor returns the conversion factor to kilowatt-hours for an
// energy unit string.
func energyUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "wh":
		return WattHoursToKWh, true
	case "", "kwh":
		return 1, true
	default:
		return 0, false
	}
}

// distanceUnitFactor returns the conversion factor to kilometers for a
// distance unit string.
func distanceUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "mi":
		return MilesToKm, true
	case "", "km":
		return 1, true
	default:
		return 0, false
	}
}

// normalize converts a measurement to its canonical unit using the supplied
// factor lookup.
//
// Returns ErrNegativeValue for negative values, ErrInvalidUnit for
// unrecognized units, and ErrCalculationOverflow for Inf/NaN inputs or
// results.
func normalize(m Measurement, factorFor func(string) (float64, bool)) (float64, error) {
	if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
		return 0, ErrCalculationOverflow
	}

	if m.Value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := factorFor(m.Unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := m.Value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}

	return result, nil
}

// NormalizeCarbonToKg converts a carbon measurement to kilograms.
// Recognized units: kg, g (case-insensitive; empty defaults to kg).
func NormalizeCarbonToKg(m Measurement) (float64, error) {
	return normalize(m, carbonUnitFactor)
}

// NormalizeWaterToLiters converts a water measurement to liters.
// Recognized units: L, mL (case-insensitive; empty defaults to L).
func NormalizeWaterToLiters(m Measurement) (float64, error) {
	return normalize(m, waterUnitFactor)
}

// NormalizeEnergyToKWh converts an energy measurement to kilowatt-hours.
// Recognized units: kWh, Wh (case-insensitive; empty defaults to kWh).
func NormalizeEnergyToKWh(m Measurement) (float64, error) {
	return normalize(m, energyUnitFactor)
}

// NormalizeDistanceToKm converts a distance measurement to kilometers.
// Recognized units: km, mi (case-insensitive; empty defaults to km).
func NormalizeDistanceToKm(m Measurement) (float64, error) {
	return normalize(m, distanceUnitFactor)
}
