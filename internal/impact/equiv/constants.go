package equiv

// Conversion factors for human-relatable equivalents.
//
// These constants are configuration, not derived values. To calculate an
// equivalent, divide the canonical total by the factor:
//
//	equivalent = total / factor
const (
	// KgCarbonPerTreeYear is kg CO2e absorbed by one tree in a year.
	// Based on urban tree carbon sequestration rates.
	KgCarbonPerTreeYear = 21.0

	// LitersPerShower is liters of water used by an average shower.
	// Based on an eight-minute shower at a standard flow rate.
	LitersPerShower = 65.0

	// KgPlasticPerBottle is kg of plastic in a single-use PET bottle.
	KgPlasticPerBottle = 0.025
)

// Display threshold constants control number presentation.
const (
	// LargeNumberThreshold is the threshold for abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)
