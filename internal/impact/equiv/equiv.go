// Package equiv converts aggregated impact totals into human-relatable
// equivalents: trees planted, showers of water, and single-use plastic
// bottles. Pure lookup and arithmetic over fixed conversion constants.
package equiv

import (
	"fmt"

	"github.com/terracart/terracart/internal/impact/aggregate"
)

// Equivalents is the converted form of a set of totals.
type Equivalents struct {
	// TreesPlanted is how many trees would absorb the saved carbon in a
	// year.
	TreesPlanted float64 `json:"treesPlanted"`

	// ShowersEquivalent is how many average showers the saved water fills.
	ShowersEquivalent float64 `json:"showersEquivalent"`

	// BottlesEquivalent is how many single-use bottles the reduced plastic
	// amounts to.
	BottlesEquivalent float64 `json:"bottlesEquivalent"`
}

// Convert maps aggregated totals to their equivalents. Zero totals convert
// to zero equivalents.
func Convert(totals aggregate.Impact) Equivalents {
	return Equivalents{
		TreesPlanted:      totals.Get(aggregate.MetricCarbonSaved) / KgCarbonPerTreeYear,
		ShowersEquivalent: totals.Get(aggregate.MetricWaterSaved) / LitersPerShower,
		BottlesEquivalent: totals.Get(aggregate.MetricPlasticReduced) / KgPlasticPerBottle,
	}
}

// DisplayText renders the equivalents as a single prose line for CLI
// output.
//
// Example: "Equivalent to planting ~3 trees, skipping ~12 showers and
// avoiding ~840 plastic bottles".
func (e Equivalents) DisplayText() string {
	return fmt.Sprintf(
		"Equivalent to planting ~%s trees, skipping ~%s showers and avoiding ~%s plastic bottles",
		FormatValue(e.TreesPlanted),
		FormatValue(e.ShowersEquivalent),
		FormatValue(e.BottlesEquivalent),
	)
}
