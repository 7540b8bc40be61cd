package memory

import (
	"context"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
)

type ClubSettingsRepository struct {
	store *Store
}

func NewClubSettingsRepository(store *Store) *ClubSettingsRepository {
	return &ClubSettingsRepository{store: store}
}

func (r *ClubSettingsRepository) GetOrCreate(_ context.Context, defaults clubsettings.Settings) (clubsettings.Settings, error) {
	r.store.mu.RLock()
	if r.store.settings != nil {
		current := *r.store.settings
		r.store.mu.RUnlock()
		return current, nil
	}
	r.store.mu.RUnlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.settings == nil {
		created := defaults
		r.store.settings = &created
	}
	return *r.store.settings, nil
}

func (r *ClubSettingsRepository) Save(_ context.Context, s clubsettings.Settings) (clubsettings.Settings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	saved := s
	r.store.settings = &saved
	return saved, nil
}
