package attendance

import (
	"context"
	"time"
)

// Repository describes attendance persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	// ListByPlayer returns the player's records, most recent day first.
	ListByPlayer(ctx context.Context, playerID string) ([]Record, error)
	ListByDay(ctx context.Context, day time.Time) ([]Record, error)
	// Upsert writes the record keyed by (PlayerID, Day) atomically, replacing
	// the status of an existing record. A missing player yields
	// player.ErrUnknownPlayer.
	Upsert(ctx context.Context, rec Record) (Record, error)
}
