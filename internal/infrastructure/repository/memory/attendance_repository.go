package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/player"
)

type AttendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

func (r *AttendanceRepository) List(_ context.Context) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]attendance.Record, 0, len(r.store.attendance))
	for _, rec := range r.store.attendance {
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

func (r *AttendanceRepository) ListByPlayer(_ context.Context, playerID string) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for key, rec := range r.store.attendance {
		if key.playerID == playerID {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *AttendanceRepository) ListByDay(_ context.Context, day time.Time) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	want := attendance.FormatDay(attendance.NormalizeDay(day))
	out := make([]attendance.Record, 0)
	for key, rec := range r.store.attendance {
		if key.day == want {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *AttendanceRepository) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	rec.Day = attendance.NormalizeDay(rec.Day)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[rec.PlayerID]; !ok {
		return attendance.Record{}, fmt.Errorf("%w: %s", player.ErrUnknownPlayer, rec.PlayerID)
	}
	r.store.attendance[keyOf(rec)] = rec
	return rec, nil
}

// sortRecords orders by day, newest first, then by player id.
func sortRecords(records []attendance.Record) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Day.Equal(records[j].Day) {
			return records[i].Day.After(records[j].Day)
		}
		return records[i].PlayerID < records[j].PlayerID
	})
}
