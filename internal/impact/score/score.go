// Package score computes a product's environmental score from its canonical
// impact record.
//
// The formula is a weighted sum of clamped factors:
//
//	carbonTerm  = clamp(100 - carbonFootprintKg, 0, 100) * Carbon
//	waterTerm   = clamp(100 - waterUsageL,       0, 100) * Water
//	recycleTerm = recycledMaterials.percentage          * Recycle
//	eolTerm     = avg(recyclability, biodegradability)  * EndOfLife
//	score       = clamp(carbonTerm + waterTerm + recycleTerm + eolTerm, 0, 100)
//
// The weights are configuration: they do not sum to 1, and footprints above
// 100 kg floor at zero contribution.
package score

import "github.com/terracart/terracart/internal/impact"

// Default scoring weights.
const (
	// DefaultCarbonWeight weights the carbon footprint term.
	DefaultCarbonWeight = 0.30

	// DefaultWaterWeight weights the water usage term.
	DefaultWaterWeight = 0.20

	// DefaultRecycleWeight weights the recycled-materials term.
	DefaultRecycleWeight = 0.20

	// DefaultEndOfLifeWeight weights the end-of-life term.
	DefaultEndOfLifeWeight = 0.15
)

// scoreCeiling bounds the score range and the per-factor normalization.
const scoreCeiling = 100.0

// Weights holds the scoring weights. They are not required to sum to 1.
type Weights struct {
	Carbon    float64 `yaml:"carbon"`
	Water     float64 `yaml:"water"`
	Recycle   float64 `yaml:"recycle"`
	EndOfLife float64 `yaml:"end_of_life"`
}

// DefaultWeights returns the stock weight configuration.
func DefaultWeights() Weights {
	return Weights{
		Carbon:    DefaultCarbonWeight,
		Water:     DefaultWaterWeight,
		Recycle:   DefaultRecycleWeight,
		EndOfLife: DefaultEndOfLifeWeight,
	}
}

// Result pairs a score with the record's verification state. Verification
// never changes the number; it is reported alongside so callers can decide
// how much to trust it.
type Result struct {
	// Score is the environmental score in [0,100].
	Score float64 `json:"score"`

	// Verification is the record's verification state.
	Verification impact.Verification `json:"verification"`
}

// Calculator scores impact records with a fixed weight configuration.
// It is stateless and safe for concurrent use.
type Calculator struct {
	weights Weights
}

// NewCalculator returns a Calculator using the given weights.
func NewCalculator(w Weights) *Calculator {
	return &Calculator{weights: w}
}

// Score computes the environmental score of a record.
//
// Identical input always yields an identical result. Records that violate
// the percentage invariants are rejected with *impact.ValidationError; a
// record built through impact.NewRecord always passes.
func (c *Calculator) Score(rec *impact.Record) (Result, error) {
	if err := rec.Validate(); err != nil {
		return Result{}, err
	}

	carbonTerm := clamp(scoreCeiling-rec.CarbonFootprintKg, 0, scoreCeiling) * c.weights.Carbon
	waterTerm := clamp(scoreCeiling-rec.WaterUsageL, 0, scoreCeiling) * c.weights.Water
	recycleTerm := rec.RecycledPercentage * c.weights.Recycle
	eolTerm := (rec.EndOfLife.Recyclability + rec.EndOfLife.Biodegradability) / 2 * c.weights.EndOfLife

	return Result{
		Score:        clamp(carbonTerm+waterTerm+recycleTerm+eolTerm, 0, scoreCeiling),
		Verification: rec.Verification,
	}, nil
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
