package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.playerOrder))
	for _, id := range r.store.playerOrder {
		out = append(out, clonePlayer(r.store.players[id]))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByDocument(_ context.Context, document string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.playerOrder {
		if p := r.store.players[id]; p.Document == document {
			return clonePlayer(p), true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.documentTakenLocked(p.Document, p.ID) {
		return player.ErrDuplicateDocument
	}
	if _, exists := r.store.players[p.ID]; !exists {
		r.store.playerOrder = append(r.store.playerOrder, p.ID)
	}
	r.store.players[p.ID] = clonePlayer(p)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.players[p.ID]
	if !ok {
		return false, nil
	}
	if r.documentTakenLocked(p.Document, p.ID) {
		return false, player.ErrDuplicateDocument
	}

	updated := clonePlayer(current)
	updated.Name = p.Name
	updated.Document = p.Document
	updated.Address = p.Address
	updated.Phone = p.Phone
	updated.BirthDate = p.BirthDate
	updated.AvatarURL = p.AvatarURL
	updated.MainCategories = append([]player.MainCategory(nil), p.MainCategories...)
	updated.SubCategory = p.SubCategory
	updated.Position = p.Position
	updated.LastPaymentDate = nil
	if p.LastPaymentDate != nil {
		paid := *p.LastPaymentDate
		updated.LastPaymentDate = &paid
	}

	if latest, ok := player.LatestRecord(current); ok {
		if incoming, ok := player.LatestRecord(p); ok && incoming.ID == latest.ID {
			for i := range updated.StatsHistory {
				if updated.StatsHistory[i].ID == latest.ID {
					updated.StatsHistory[i].Stats = incoming.Stats
				}
			}
		}
	}

	r.store.players[p.ID] = updated
	return true, nil
}

func (r *PlayerRepository) SetLastPaymentDate(_ context.Context, id string, paidAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[id]
	if !ok {
		return false, nil
	}
	p.LastPaymentDate = &paidAt
	r.store.players[id] = p
	return true, nil
}

func (r *PlayerRepository) AppendStatsRecord(_ context.Context, playerID string, rec player.StatsRecord) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return false, nil
	}
	p = clonePlayer(p)
	p.StatsHistory = append(p.StatsHistory, rec)
	r.store.players[playerID] = p
	return true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[id]; !ok {
		return false, nil
	}

	delete(r.store.players, id)
	r.store.playerOrder = removeID(r.store.playerOrder, id)

	for key := range r.store.attendance {
		if key.playerID == id {
			delete(r.store.attendance, key)
		}
	}
	for teamID, t := range r.store.teams {
		if t.HasPlayer(id) {
			t = cloneTeam(t)
			t.PlayerIDs = removeID(t.PlayerIDs, id)
			r.store.teams[teamID] = t
		}
	}
	return true, nil
}

func (r *PlayerRepository) documentTakenLocked(document, ownerID string) bool {
	for id, p := range r.store.players {
		if id != ownerID && p.Document == document {
			return true
		}
	}
	return false
}
