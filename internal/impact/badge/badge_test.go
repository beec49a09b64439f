package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracart/terracart/internal/impact/aggregate"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: "c10", Name: "Carbon 10", Metric: aggregate.MetricCarbonSaved, Target: 10},
		{ID: "c100", Name: "Carbon 100", Metric: aggregate.MetricCarbonSaved, Target: 100},
		{ID: "w500", Name: "Water 500", Metric: aggregate.MetricWaterSaved, Target: 500},
	}
}

func TestEvaluate(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name         string
		totals       aggregate.Impact
		wantAchieved map[string]bool
		wantProgress map[string]float64
	}{
		{
			name:         "zero totals",
			totals:       aggregate.Zero(),
			wantAchieved: map[string]bool{"c10": false, "c100": false, "w500": false},
			wantProgress: map[string]float64{"c10": 0, "c100": 0, "w500": 0},
		},
		{
			name:         "partial progress",
			totals:       aggregate.Impact{aggregate.MetricCarbonSaved: 42},
			wantAchieved: map[string]bool{"c10": true, "c100": false, "w500": false},
			wantProgress: map[string]float64{"c10": 10, "c100": 42, "w500": 0},
		},
		{
			name:         "exact target achieves",
			totals:       aggregate.Impact{aggregate.MetricCarbonSaved: 100},
			wantAchieved: map[string]bool{"c10": true, "c100": true, "w500": false},
			wantProgress: map[string]float64{"c10": 10, "c100": 100, "w500": 0},
		},
		{
			name:         "progress is capped at target",
			totals:       aggregate.Impact{aggregate.MetricCarbonSaved: 9999, aggregate.MetricWaterSaved: 600},
			wantAchieved: map[string]bool{"c10": true, "c100": true, "w500": true},
			wantProgress: map[string]float64{"c10": 10, "c100": 100, "w500": 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evals := catalog.Evaluate(tt.totals)
			require.Len(t, evals, len(catalog))

			for _, e := range evals {
				assert.Equal(t, tt.wantAchieved[e.Badge.ID], e.Achieved, "achieved for %s", e.Badge.ID)
				assert.InDelta(t, tt.wantProgress[e.Badge.ID], e.Progress, 1e-9, "progress for %s", e.Badge.ID)
			}
		})
	}
}

// Growing totals can only raise progress and never revoke an achievement.
func TestEvaluateMonotonic(t *testing.T) {
	catalog := testCatalog()

	smaller := aggregate.Impact{aggregate.MetricCarbonSaved: 50, aggregate.MetricWaterSaved: 100}
	larger := aggregate.Impact{aggregate.MetricCarbonSaved: 120, aggregate.MetricWaterSaved: 500}

	before := catalog.Evaluate(smaller)
	after := catalog.Evaluate(larger)

	for i := range before {
		if before[i].Achieved {
			assert.True(t, after[i].Achieved, "badge %s lost its achievement", before[i].Badge.ID)
		}
		assert.GreaterOrEqual(t, after[i].Progress, before[i].Progress, "badge %s progress regressed", before[i].Badge.ID)
	}
}

// Extending the catalog never changes the result of existing badges.
func TestEvaluateCatalogExtension(t *testing.T) {
	catalog := testCatalog()
	extended := append(Catalog{}, catalog...)
	extended = append(extended, Badge{ID: "p5", Metric: aggregate.MetricPlasticReduced, Target: 5})

	totals := aggregate.Impact{aggregate.MetricCarbonSaved: 42, aggregate.MetricWaterSaved: 600}

	base := catalog.Evaluate(totals)
	withExtra := extended.Evaluate(totals)

	require.Len(t, withExtra, len(base)+1)
	for i := range base {
		assert.Equal(t, base[i], withExtra[i])
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr string
	}{
		{name: "valid", catalog: testCatalog()},
		{
			name:    "missing id",
			catalog: Catalog{{Metric: aggregate.MetricCarbonSaved, Target: 1}},
			wantErr: "missing id",
		},
		{
			name:    "non-positive target",
			catalog: Catalog{{ID: "a", Metric: aggregate.MetricCarbonSaved, Target: 0}},
			wantErr: "target must be positive",
		},
		{
			name:    "unknown metric",
			catalog: Catalog{{ID: "a", Metric: "happiness", Target: 1}},
			wantErr: "unknown metric",
		},
		{
			name: "duplicate id",
			catalog: Catalog{
				{ID: "a", Metric: aggregate.MetricCarbonSaved, Target: 1},
				{ID: "a", Metric: aggregate.MetricWaterSaved, Target: 2},
			},
			wantErr: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog)
	assert.NoError(t, catalog.Validate())
}
