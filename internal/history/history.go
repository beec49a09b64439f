// Package history resolves a user's purchase events (the dated impact
// snapshots captured at checkout) from the order store, and consumes the
// order-event stream that keeps report caches fresh.
package history

import (
	"context"
	"time"

	"github.com/terracart/terracart/internal/impact"
)

// PurchaseEvent is one purchased line item: when it was bought, the per-unit
// impact snapshot frozen at checkout, and the quantity.
type PurchaseEvent struct {
	OrderID  string
	At       time.Time
	Snapshot impact.Snapshot
	Quantity int
}

// Source lists a user's purchase events. Implementations may return events
// in any order; callers sort or bucket themselves. A zero since time means
// the full history.
//
// Implementations must treat each line item independently: the order store
// may be appended to concurrently, and the only guarantee is the set
// observed at read time.
type Source interface {
	ListEvents(ctx context.Context, userID string, since time.Time) ([]PurchaseEvent, error)
}
