package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracart/terracart/internal/impact"
)

// record builds a canonical record directly; the constructor path is
// covered in the impact package tests.
func record(carbonKg, waterL, recycled, recyclability, biodegradability float64) *impact.Record {
	return &impact.Record{
		ProductID:          "prod-1",
		CarbonFootprintKg:  carbonKg,
		WaterUsageL:        waterL,
		RecycledPercentage: recycled,
		EndOfLife: impact.EndOfLife{
			Recyclability:    recyclability,
			Biodegradability: biodegradability,
		},
	}
}

func TestScore(t *testing.T) {
	calc := NewCalculator(DefaultWeights())

	tests := []struct {
		name string
		rec  *impact.Record
		want float64
	}{
		{
			// 90*0.30 + 80*0.20 + 80*0.20 + 80*0.15 = 27+16+16+12
			name: "reference record scores 71",
			rec:  record(10, 20, 80, 90, 70),
			want: 71,
		},
		{
			name: "all zero metrics score from the clamped terms only",
			rec:  record(0, 0, 0, 0, 0),
			want: 100*0.30 + 100*0.20,
		},
		{
			// Footprints above the ceiling floor at zero contribution
			// rather than going negative.
			name: "extreme footprint floors at zero contribution",
			rec:  record(5000, 9000, 50, 40, 60),
			want: 50*0.20 + 50*0.15,
		},
		{
			name: "best case stays within ceiling",
			rec:  record(0, 0, 100, 100, 100),
			want: 30 + 20 + 20 + 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Score(tt.rec)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Score, 1e-9)
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 100.0)
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultWeights())
	rec := record(12.3, 45.6, 78.9, 10, 20)

	first, err := calc.Score(rec)
	require.NoError(t, err)
	second, err := calc.Score(rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreIgnoresVerificationStatus(t *testing.T) {
	calc := NewCalculator(DefaultWeights())

	pending := record(10, 20, 80, 90, 70)
	verified := record(10, 20, 80, 90, 70)
	verified.Verification.Status = impact.VerificationVerified

	a, err := calc.Score(pending)
	require.NoError(t, err)
	b, err := calc.Score(verified)
	require.NoError(t, err)

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, impact.VerificationVerified, b.Verification.Status)
}

func TestScoreRejectsInvalidRecord(t *testing.T) {
	calc := NewCalculator(DefaultWeights())

	rec := record(10, 20, 150, 90, 70)
	_, err := calc.Score(rec)
	require.Error(t, err)

	var verr *impact.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recycledMaterials.percentage", verr.Field)
}

func TestScoreCustomWeights(t *testing.T) {
	calc := NewCalculator(Weights{Carbon: 1})

	got, err := calc.Score(record(40, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 60, got.Score, 1e-9)
}
