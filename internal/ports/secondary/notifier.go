package secondary

import (
	"context"

	"github.com/helena-commits/badge-capture-stream/internal/core/notice"
)

// Notifier defines the secondary port for operator notices.
// Notify is fire-and-forget and must not block on the operator.
type Notifier interface {
	Notify(ctx context.Context, n notice.Notice)
}
