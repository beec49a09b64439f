package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresSource reads purchase events from the order store. It implements
// Source over the orders/order_items tables written by the checkout flow;
// the eco-impact columns hold the snapshot frozen at purchase time and are
// never updated afterwards.
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres connects to the order store and verifies the connection.
func OpenPostgres(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping order store: %w", err)
	}
	return &PostgresSource{db: db}, nil
}

// NewPostgresSource wraps an existing database handle.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Close releases the underlying database handle.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// listEventsQuery fetches line items with their frozen impact snapshots.
// COALESCE applies the snapshot zero-default policy to rows written before
// the eco-impact columns existed.
const listEventsQuery = `
SELECT o.id, o.created_at, oi.quantity,
       COALESCE(oi.carbon_saved, 0),
       COALESCE(oi.water_saved, 0),
       COALESCE(oi.plastic_reduced, 0)
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE o.user_id = $1 AND o.created_at >= $2`

// ListEvents returns the user's purchase events at or after since. A zero
// since returns the full history. Rows are returned in store order; callers
// bucket and sort themselves.
func (s *PostgresSource) ListEvents(ctx context.Context, userID string, since time.Time) ([]PurchaseEvent, error) {
	rows, err := s.db.QueryContext(ctx, listEventsQuery, userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase events: %w", err)
	}
	defer rows.Close()

	var events []PurchaseEvent
	for rows.Next() {
		var ev PurchaseEvent
		if err := rows.Scan(
			&ev.OrderID, &ev.At, &ev.Quantity,
			&ev.Snapshot.CarbonSavedKg,
			&ev.Snapshot.WaterSavedL,
			&ev.Snapshot.PlasticReducedKg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read purchase events: %w", err)
	}

	return events, nil
}
