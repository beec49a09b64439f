// Package aggregate accumulates per-purchase impact snapshots into running
// totals. Accumulation is element-wise addition: Merge is commutative and
// associative and Zero is its identity, so totals may be computed
// incrementally or over parallel chunks and combined in any order.
package aggregate

import "github.com/terracart/terracart/internal/impact"

// Metric names the accumulated impact dimensions.
type Metric string

const (
	// MetricCarbonSaved is kilograms of CO2e avoided.
	MetricCarbonSaved Metric = "carbon_saved"

	// MetricWaterSaved is liters of water avoided.
	MetricWaterSaved Metric = "water_saved"

	// MetricPlasticReduced is kilograms of plastic avoided.
	MetricPlasticReduced Metric = "plastic_reduced"
)

// Metrics lists every accumulated metric in display order.
func Metrics() []Metric {
	return []Metric{MetricCarbonSaved, MetricWaterSaved, MetricPlasticReduced}
}

// Impact maps metric names to accumulated totals. It is purely derived
// state: never persisted as a source of truth, at most cached.
type Impact map[Metric]float64

// Zero returns the identity aggregate (all metrics absent, i.e. zero).
func Zero() Impact {
	return Impact{}
}

// Get returns the accumulated total for a metric, zero if absent.
func (a Impact) Get(m Metric) float64 {
	return a[m]
}

// Clone returns an independent copy of the aggregate.
func (a Impact) Clone() Impact {
	out := make(Impact, len(a))
	for m, v := range a {
		out[m] = v
	}
	return out
}

// Merge combines two aggregates by element-wise addition and returns the
// result without mutating either operand. Merge(a, b) == Merge(b, a) and
// Merge(Merge(a, b), c) == Merge(a, Merge(b, c)).
func Merge(a, b Impact) Impact {
	out := a.Clone()
	for m, v := range b {
		out[m] += v
	}
	return out
}

// Line is one purchase line item: the impact captured per unit at checkout
// and the number of units bought.
type Line struct {
	Snapshot impact.Snapshot
	Quantity int
}

// Sum aggregates purchase line items into totals. Each metric contributes
// snapshot value times quantity; a metric missing from a snapshot is zero by
// policy, not an error. An empty input yields the zero aggregate.
func Sum(lines []Line) Impact {
	total := Zero()
	for _, l := range lines {
		qty := float64(l.Quantity)
		total[MetricCarbonSaved] += l.Snapshot.CarbonSavedKg * qty
		total[MetricWaterSaved] += l.Snapshot.WaterSavedL * qty
		total[MetricPlasticReduced] += l.Snapshot.PlasticReducedKg * qty
	}
	return total
}
