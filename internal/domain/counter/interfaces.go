package counter

import (
	"context"
	"time"
)

// Repository persists the aggregate and the per-client action records.
type Repository interface {
	// Consume records an action for clientKey at now when the client has no
	// record for kind or its last action is more than cooldown ago. The
	// aggregate increment and the client upsert commit together. It reports
	// whether the action was recorded.
	Consume(ctx context.Context, kind ActionKind, clientKey string, now time.Time, cooldown time.Duration) (bool, error)
	Aggregate(ctx context.Context) (Aggregate, error)
	Reset(ctx context.Context) error
	PruneBefore(ctx context.Context, kind ActionKind, cutoff time.Time) (int64, error)
}
