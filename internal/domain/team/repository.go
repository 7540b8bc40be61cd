package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Team, error)
	// Create stores the team row and its membership set atomically. A roster
	// player already on another team of the category yields
	// ErrPlayerOnOtherTeam; one that does not exist yields
	// player.ErrUnknownPlayer.
	Create(ctx context.Context, t Team) error
	// Update rewrites name, tournament fields and coach, and replaces the
	// membership set, atomically, with the same roster errors as Create.
	// Categories are never written.
	Update(ctx context.Context, t Team) (bool, error)
}
