package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/terracart/terracart/internal/history"
	"github.com/terracart/terracart/internal/impact"
	"github.com/terracart/terracart/internal/impact/aggregate"
	"github.com/terracart/terracart/internal/impact/badge"
	"github.com/terracart/terracart/internal/impact/timeline"
	"github.com/terracart/terracart/internal/logging"
)

// DefaultHistoryTimeout bounds the purchase-history round-trip when no
// timeout is configured.
const DefaultHistoryTimeout = 5 * time.Second

// Service computes impact reports. All computation is pure and stateless
// between invocations; the only suspension point is the history fetch,
// which is bounded by the configured timeout and surfaces
// impact.ErrDataUnavailable on expiry or failure.
type Service struct {
	source  history.Source
	catalog badge.Catalog
	cache   Cache
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache attaches a report cache. Without one every query recomputes.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithTimeout bounds the purchase-history fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithClock overrides the time source. Exposed for testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a report service over a purchase-history source and a
// badge catalog.
func NewService(source history.Source, catalog badge.Catalog, opts ...Option) *Service {
	s := &Service{
		source:  source,
		catalog: catalog,
		timeout: DefaultHistoryTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeReport assembles the impact report for a user and timeframe.
//
// All-time events feed the totals, badge evaluation, and equivalents;
// windowed events feed the timeline. A user with no purchase history gets a
// fully zero-valued report with a zero-filled timeline, not an error.
// Collaborator failure or timeout returns impact.ErrDataUnavailable and
// never a partially guessed report.
func (s *Service) ComputeReport(ctx context.Context, userID string, tf timeline.Timeframe) (*Report, error) {
	logger := logging.ComponentLogger(logging.FromContext(ctx), "report")
	now := s.now().UTC()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID, tf); err == nil {
			logger.Debug().
				Str("operation", "compute_report").
				Str("user_id", userID).
				Str("timeframe", string(tf)).
				Msg("serving cached report")
			return cached, nil
		} else if !errors.Is(err, ErrCacheMiss) {
			logger.Warn().Err(err).Str("user_id", userID).Msg("report cache read failed")
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allEvents, windowed, err := s.fetchEvents(fetchCtx, userID, tf, now)
	if err != nil {
		logger.Error().Err(err).
			Str("operation", "compute_report").
			Str("user_id", userID).
			Msg("purchase history unavailable")
		return nil, fmt.Errorf("%w: %v", impact.ErrDataUnavailable, err)
	}

	totals := aggregate.Sum(toLines(allEvents))
	buckets := timeline.Build(toTimelineEvents(windowed), tf, now)

	rep := &Report{
		ID:          ulid.Make().String(),
		UserID:      userID,
		Timeframe:   tf,
		GeneratedAt: now,
		Timeline:    renderTimeline(buckets, tf),
		Badges:      renderBadges(s.catalog.Evaluate(totals)),
	}
	rep.applyTotals(totals)

	if s.cache != nil {
		if err := s.cache.Set(ctx, rep); err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("report cache write failed")
		}
	}

	logger.Info().
		Str("operation", "compute_report").
		Str("user_id", userID).
		Str("timeframe", string(tf)).
		Int("events", len(allEvents)).
		Float64("total_carbon_saved", rep.TotalCarbonSaved).
		Msg("computed impact report")

	return rep, nil
}

// fetchEvents resolves the user's full history and, for bounded timeframes,
// the windowed slice in parallel. The unbounded "all" timeframe reuses the
// full history for both.
func (s *Service) fetchEvents(
	ctx context.Context,
	userID string,
	tf timeline.Timeframe,
	now time.Time,
) (all, windowed []history.PurchaseEvent, err error) {
	since, bounded := timeline.WindowStart(tf, now)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		all, fetchErr = s.source.ListEvents(gctx, userID, time.Time{})
		return fetchErr
	})
	if bounded {
		g.Go(func() error {
			var fetchErr error
			windowed, fetchErr = s.source.ListEvents(gctx, userID, since)
			return fetchErr
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if !bounded {
		windowed = all
	}
	return all, windowed, nil
}

// toLines converts purchase events to aggregation line items.
func toLines(events []history.PurchaseEvent) []aggregate.Line {
	lines := make([]aggregate.Line, 0, len(events))
	for _, ev := range events {
		lines = append(lines, aggregate.Line{Snapshot: ev.Snapshot, Quantity: ev.Quantity})
	}
	return lines
}

// toTimelineEvents converts purchase events to dated aggregates, one per
// line item.
func toTimelineEvents(events []history.PurchaseEvent) []timeline.Event {
	out := make([]timeline.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, timeline.Event{
			At:     ev.At,
			Totals: aggregate.Sum([]aggregate.Line{{Snapshot: ev.Snapshot, Quantity: ev.Quantity}}),
		})
	}
	return out
}
