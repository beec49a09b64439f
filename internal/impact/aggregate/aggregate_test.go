package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracart/terracart/internal/impact"
)

func line(carbon, water, plastic float64, qty int) Line {
	return Line{
		Snapshot: impact.Snapshot{
			CarbonSavedKg:    carbon,
			WaterSavedL:      water,
			PlasticReducedKg: plastic,
		},
		Quantity: qty,
	}
}

// assertSameTotals compares aggregates metric by metric so explicit zero
// entries and absent entries count as equal.
func assertSameTotals(t *testing.T, want, got Impact) {
	t.Helper()
	for _, m := range Metrics() {
		assert.InDelta(t, want.Get(m), got.Get(m), 1e-9, "metric %s", m)
	}
}

func TestSum(t *testing.T) {
	t.Run("empty input yields the zero aggregate", func(t *testing.T) {
		assertSameTotals(t, Zero(), Sum(nil))
		assertSameTotals(t, Zero(), Sum([]Line{}))
	})

	t.Run("multiplies by quantity", func(t *testing.T) {
		got := Sum([]Line{line(2, 10, 0.5, 3)})
		assert.InDelta(t, 6, got.Get(MetricCarbonSaved), 1e-9)
		assert.InDelta(t, 30, got.Get(MetricWaterSaved), 1e-9)
		assert.InDelta(t, 1.5, got.Get(MetricPlasticReduced), 1e-9)
	})

	t.Run("missing metrics contribute zero", func(t *testing.T) {
		got := Sum([]Line{{Snapshot: impact.Snapshot{CarbonSavedKg: 4}, Quantity: 2}})
		assert.InDelta(t, 8, got.Get(MetricCarbonSaved), 1e-9)
		assert.InDelta(t, 0, got.Get(MetricWaterSaved), 1e-9)
		assert.InDelta(t, 0, got.Get(MetricPlasticReduced), 1e-9)
	})
}

func TestMergeLaws(t *testing.T) {
	a := Impact{MetricCarbonSaved: 1, MetricWaterSaved: 2}
	b := Impact{MetricCarbonSaved: 3, MetricPlasticReduced: 4}
	c := Impact{MetricWaterSaved: 5}

	t.Run("commutative", func(t *testing.T) {
		assertSameTotals(t, Merge(a, b), Merge(b, a))
	})

	t.Run("associative", func(t *testing.T) {
		assertSameTotals(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)))
	})

	t.Run("zero is the identity", func(t *testing.T) {
		assertSameTotals(t, a, Merge(a, Zero()))
		assertSameTotals(t, a, Merge(Zero(), a))
	})

	t.Run("does not mutate operands", func(t *testing.T) {
		before := a.Get(MetricCarbonSaved)
		_ = Merge(a, b)
		assert.InDelta(t, before, a.Get(MetricCarbonSaved), 1e-9)
	})
}

// TestSumPartition checks that aggregating any partition of the items and
// merging the parts equals aggregating everything at once.
func TestSumPartition(t *testing.T) {
	lines := []Line{
		line(1, 2, 3, 1),
		line(4, 5, 6, 2),
		line(7, 8, 9, 3),
		line(0.1, 0.2, 0.3, 10),
	}

	whole := Sum(lines)
	for split := 1; split < len(lines); split++ {
		parts := Merge(Sum(lines[:split]), Sum(lines[split:]))
		assertSameTotals(t, whole, parts)
	}
}

func TestClone(t *testing.T) {
	a := Impact{MetricCarbonSaved: 1}
	b := a.Clone()
	b[MetricCarbonSaved] = 99

	require.InDelta(t, 1, a.Get(MetricCarbonSaved), 1e-9)
}
