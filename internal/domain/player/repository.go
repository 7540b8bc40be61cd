package player

import (
	"context"
	"time"
)

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByDocument(ctx context.Context, document string) (Player, bool, error)
	// Create stores the player together with its stats history in one
	// atomic write. A taken document yields ErrDuplicateDocument.
	Create(ctx context.Context, p Player) error
	// Update rewrites the profile fields and last payment date, and the stats
	// values of the newest record. Join date and older records are untouched.
	Update(ctx context.Context, p Player) (bool, error)
	SetLastPaymentDate(ctx context.Context, id string, paidAt time.Time) (bool, error)
	AppendStatsRecord(ctx context.Context, playerID string, rec StatsRecord) (bool, error)
	// Delete removes the player, its stats history, its attendance records and
	// its team memberships in one atomic write.
	Delete(ctx context.Context, id string) (bool, error)
}
