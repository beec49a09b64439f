// Package report assembles per-user impact reports: all-time totals, a
// gap-filled timeline, badge evaluations, and human-relatable equivalents.
// It orchestrates the pure impact components over the purchase-history
// collaborator and caches the result per (user, timeframe).
package report

import (
	"time"

	"github.com/terracart/terracart/internal/impact/aggregate"
	"github.com/terracart/terracart/internal/impact/badge"
	"github.com/terracart/terracart/internal/impact/equiv"
	"github.com/terracart/terracart/internal/impact/timeline"
)

// TimelineEntry is one rendered timeline bucket. Date is formatted at the
// bucket's granularity (day, month, or year).
type TimelineEntry struct {
	Date        string  `json:"date"`
	CarbonSaved float64 `json:"carbonSaved"`
	WaterSaved  float64 `json:"waterSaved"`
}

// BadgeStatus is one rendered badge evaluation.
type BadgeStatus struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Achieved    bool    `json:"achieved"`
	Progress    float64 `json:"progress"`
	Target      float64 `json:"target"`
}

// Report is the assembled impact report consumed by the presentation layer.
type Report struct {
	ID          string             `json:"reportId"`
	UserID      string             `json:"userId"`
	Timeframe   timeline.Timeframe `json:"timeframe"`
	GeneratedAt time.Time          `json:"generatedAt"`

	TotalCarbonSaved    float64 `json:"totalCarbonSaved"`
	TotalWaterSaved     float64 `json:"totalWaterSaved"`
	TotalPlasticReduced float64 `json:"totalPlasticReduced"`

	CarbonEquivalent  float64 `json:"carbonEquivalent"`
	WaterEquivalent   float64 `json:"waterEquivalent"`
	PlasticEquivalent float64 `json:"plasticEquivalent"`

	Timeline []TimelineEntry `json:"timeline"`
	Badges   []BadgeStatus   `json:"badges"`
}

// dateLayout returns the display layout for a timeframe's bucket starts.
func dateLayout(tf timeline.Timeframe) string {
	switch tf {
	case timeline.TimeframeMonth:
		return "2006-01-02"
	case timeline.TimeframeYear:
		return "2006-01"
	default:
		return "2006"
	}
}

// renderTimeline converts buckets to their display form.
func renderTimeline(buckets []timeline.Bucket, tf timeline.Timeframe) []TimelineEntry {
	layout := dateLayout(tf)
	out := make([]TimelineEntry, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TimelineEntry{
			Date:        b.Start.Format(layout),
			CarbonSaved: b.Totals.Get(aggregate.MetricCarbonSaved),
			WaterSaved:  b.Totals.Get(aggregate.MetricWaterSaved),
		})
	}
	return out
}

// renderBadges converts badge evaluations to their display form.
func renderBadges(evals []badge.Evaluation) []BadgeStatus {
	out := make([]BadgeStatus, 0, len(evals))
	for _, e := range evals {
		out = append(out, BadgeStatus{
			ID:          e.Badge.ID,
			Name:        e.Badge.Name,
			Description: e.Badge.Description,
			Icon:        e.Badge.Icon,
			Achieved:    e.Achieved,
			Progress:    e.Progress,
			Target:      e.Badge.Target,
		})
	}
	return out
}

// applyTotals fills the totals and equivalents fields from an aggregate.
func (r *Report) applyTotals(totals aggregate.Impact) {
	r.TotalCarbonSaved = totals.Get(aggregate.MetricCarbonSaved)
	r.TotalWaterSaved = totals.Get(aggregate.MetricWaterSaved)
	r.TotalPlasticReduced = totals.Get(aggregate.MetricPlasticReduced)

	eq := equiv.Convert(totals)
	r.CarbonEquivalent = eq.TreesPlanted
	r.WaterEquivalent = eq.ShowersEquivalent
	r.PlasticEquivalent = eq.BottlesEquivalent
}
