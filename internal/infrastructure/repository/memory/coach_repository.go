package memory

import (
	"context"

	"github.com/riskibarqy/voley-club/internal/domain/coach"
)

type CoachRepository struct {
	store *Store
}

func NewCoachRepository(store *Store) *CoachRepository {
	return &CoachRepository{store: store}
}

func (r *CoachRepository) List(_ context.Context) ([]coach.Coach, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]coach.Coach, 0, len(r.store.coachOrder))
	for _, id := range r.store.coachOrder {
		out = append(out, r.store.coaches[id])
	}
	return out, nil
}

func (r *CoachRepository) GetByID(_ context.Context, id string) (coach.Coach, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.coaches[id]
	return c, ok, nil
}

func (r *CoachRepository) GetByDocument(_ context.Context, document string) (coach.Coach, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.coachOrder {
		if c := r.store.coaches[id]; c.Document == document {
			return c, true, nil
		}
	}
	return coach.Coach{}, false, nil
}

func (r *CoachRepository) Create(_ context.Context, c coach.Coach) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.coaches {
		if existing.Document == c.Document && existing.ID != c.ID {
			return coach.ErrDuplicateDocument
		}
	}
	if _, exists := r.store.coaches[c.ID]; !exists {
		r.store.coachOrder = append(r.store.coachOrder, c.ID)
	}
	r.store.coaches[c.ID] = c
	return nil
}
