package secondary

import "context"

// Unsubscribe stops a change-feed subscription. Safe to call more than once.
type Unsubscribe func()

// InsertHandler receives one newly created record. Calls are sequential.
type InsertHandler func(ctx context.Context, photo *PhotoRecord)

// ChangeFeed defines the secondary port for "record created" notifications.
// Each record is delivered at least once; delivery order follows creation order.
type ChangeFeed interface {
	Subscribe(ctx context.Context, onInsert InsertHandler) (Unsubscribe, error)
}
