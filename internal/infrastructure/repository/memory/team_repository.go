package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teamOrder))
	for _, id := range r.store.teamOrder {
		out = append(out, cloneTeam(r.store.teams[id]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[id]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(t), true, nil
}

func (r *TeamRepository) ListByPlayer(_ context.Context, playerID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.store.teamOrder {
		if t := r.store.teams[id]; t.HasPlayer(playerID) {
			out = append(out, cloneTeam(t))
		}
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkRoster(t.ID, t.MainCategory, t.PlayerIDs); err != nil {
		return err
	}
	if _, exists := r.store.teams[t.ID]; !exists {
		r.store.teamOrder = append(r.store.teamOrder, t.ID)
	}
	r.store.teams[t.ID] = cloneTeam(t)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.teams[t.ID]
	if !ok {
		return false, nil
	}
	if err := r.checkRoster(t.ID, current.MainCategory, t.PlayerIDs); err != nil {
		return false, err
	}

	current.Name = t.Name
	current.Tournament = t.Tournament
	current.TournamentPosition = t.TournamentPosition
	current.CoachID = t.CoachID
	current.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	r.store.teams[t.ID] = current
	return true, nil
}

// checkRoster mirrors the team_members foreign key and unique constraint.
// Callers hold the write lock.
func (r *TeamRepository) checkRoster(teamID string, category player.MainCategory, playerIDs []string) error {
	for _, id := range playerIDs {
		if _, ok := r.store.players[id]; !ok {
			return fmt.Errorf("%w: %s", player.ErrUnknownPlayer, id)
		}
	}
	for _, otherID := range r.store.teamOrder {
		other := r.store.teams[otherID]
		if otherID == teamID || other.MainCategory != category {
			continue
		}
		for _, id := range playerIDs {
			if other.HasPlayer(id) {
				return fmt.Errorf("%w: team=%s player=%s", team.ErrPlayerOnOtherTeam, otherID, id)
			}
		}
	}
	return nil
}
