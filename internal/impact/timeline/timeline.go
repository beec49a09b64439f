// Package timeline buckets dated impact events into a chronological,
// gap-filled series for charting. All bucket-boundary arithmetic is done in
// UTC so bucket assignment never depends on the host locale.
package timeline

import (
	"time"

	"github.com/terracart/terracart/internal/impact"
	"github.com/terracart/terracart/internal/impact/aggregate"
)

// Timeframe is the requested reporting window.
type Timeframe string

const (
	// TimeframeMonth is one bucket per day over the trailing 30 days.
	TimeframeMonth Timeframe = "month"

	// TimeframeYear is one bucket per month over the trailing 12 months.
	TimeframeYear Timeframe = "year"

	// TimeframeAll is one bucket per year from the earliest event to now.
	TimeframeAll Timeframe = "all"
)

// MonthWindowDays is the number of daily buckets in the month timeframe.
const MonthWindowDays = 30

// YearWindowMonths is the number of monthly buckets in the year timeframe.
const YearWindowMonths = 12

// ParseTimeframe validates a timeframe string.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeMonth, TimeframeYear, TimeframeAll:
		return Timeframe(s), nil
	default:
		return "", &impact.ValidationError{Field: "timeframe", Reason: "must be one of month, year, all"}
	}
}

// Timeframes lists every supported timeframe. Cache invalidation walks this
// to drop all windows for a user at once.
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeMonth, TimeframeYear, TimeframeAll}
}

// Event is a dated aggregate ready for bucketing. Events need not arrive in
// any particular order.
type Event struct {
	At     time.Time
	Totals aggregate.Impact
}

// Bucket is one dated slice of the series. Start is the inclusive UTC
// boundary of the bucket at its timeframe's granularity.
type Bucket struct {
	Start  time.Time
	Totals aggregate.Impact
}

// WindowStart returns the inclusive lower bound of a timeframe's window
// relative to now. The second return is false for TimeframeAll, whose window
// is unbounded below.
func WindowStart(tf Timeframe, now time.Time) (time.Time, bool) {
	now = now.UTC()
	switch tf {
	case TimeframeMonth:
		return truncateDay(now).AddDate(0, 0, -(MonthWindowDays - 1)), true
	case TimeframeYear:
		return truncateMonth(now).AddDate(0, -(YearWindowMonths - 1), 0), true
	default:
		return time.Time{}, false
	}
}

// Build assembles the full bucket sequence for a timeframe.
//
// Events outside [windowStart, now] are dropped and events sharing a bucket
// are merged. Every bucket in the window is emitted in ascending order,
// zero-valued buckets included, so charts render continuous axes. An empty
// event list yields the full zero-filled sequence, never an empty one.
func Build(events []Event, tf Timeframe, now time.Time) []Bucket {
	now = now.UTC()

	var start, end time.Time
	var truncate func(time.Time) time.Time
	var next func(time.Time) time.Time

	switch tf {
	case TimeframeMonth:
		truncate = truncateDay
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		start, _ = WindowStart(tf, now)
		end = truncateDay(now)
	case TimeframeYear:
		truncate = truncateMonth
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		start, _ = WindowStart(tf, now)
		end = truncateMonth(now)
	default:
		truncate = truncateYear
		next = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
		end = truncateYear(now)
		start = end
		for _, ev := range events {
			if at := truncateYear(ev.At.UTC()); at.Before(start) {
				start = at
			}
		}
	}

	byBucket := make(map[time.Time]aggregate.Impact)
	for _, ev := range events {
		at := ev.At.UTC()
		if at.After(now) {
			continue
		}
		key := truncate(at)
		if key.Before(start) {
			continue
		}
		byBucket[key] = aggregate.Merge(byBucket[key], ev.Totals)
	}

	var out []Bucket
	for cursor := start; !cursor.After(end); cursor = next(cursor) {
		totals, ok := byBucket[cursor]
		if !ok {
			totals = aggregate.Zero()
		}
		out = append(out, Bucket{Start: cursor, Totals: totals})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func truncateYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}
