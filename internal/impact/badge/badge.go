// Package badge evaluates a static achievement catalog against cumulative
// impact totals. Evaluation is a pure function of the catalog and the
// totals: no hidden counters, no per-evaluation state, and every badge is
// judged independently, so extending the catalog never changes the result
// of existing badges for the same totals.
package badge

import (
	"fmt"

	"github.com/terracart/terracart/internal/impact/aggregate"
)

// Badge is a static achievement definition. The catalog is process-wide,
// read-only configuration loaded once at startup.
type Badge struct {
	ID          string           `yaml:"id" json:"id"`
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Icon        string           `yaml:"icon" json:"icon"`
	Metric      aggregate.Metric `yaml:"metric" json:"metric"`
	Target      float64          `yaml:"target" json:"target"`
}

// Validate rejects badge definitions that could never be evaluated sensibly.
func (b Badge) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("badge: missing id")
	}
	if b.Target <= 0 {
		return fmt.Errorf("badge %s: target must be positive, got %g", b.ID, b.Target)
	}
	switch b.Metric {
	case aggregate.MetricCarbonSaved, aggregate.MetricWaterSaved, aggregate.MetricPlasticReduced:
		return nil
	default:
		return fmt.Errorf("badge %s: unknown metric %q", b.ID, b.Metric)
	}
}

// Evaluation is the computed state of one badge for a set of totals. It is
// recomputed per query, never stored back onto the definition.
type Evaluation struct {
	Badge    Badge
	Achieved bool
	Progress float64
}

// Catalog is an ordered set of badge definitions.
type Catalog []Badge

// Validate checks every definition and rejects duplicate IDs.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, b := range c {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("badge %s: duplicate id", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Evaluate computes achieved/progress state for every badge in catalog
// order. Progress is capped at the badge's target; a badge is achieved once
// its metric total meets or exceeds the target. Evaluation is monotonic:
// totals that grow element-wise can only raise progress and never revoke an
// achievement.
func (c Catalog) Evaluate(totals aggregate.Impact) []Evaluation {
	out := make([]Evaluation, 0, len(c))
	for _, b := range c {
		value := totals.Get(b.Metric)
		out = append(out, Evaluation{
			Badge:    b,
			Achieved: value >= b.Target,
			Progress: min(value, b.Target),
		})
	}
	return out
}
