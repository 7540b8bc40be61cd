package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	basecache "github.com/riskibarqy/voley-club/internal/platform/cache"
)

// Key prefixes per entity. A successful write drops every prefix whose data
// it may have changed.
const (
	playerPrefix     = "player:"
	teamPrefix       = "team:"
	attendancePrefix = "attendance:"
	coachPrefix      = "coach:"
	settingsPrefix   = "settings:"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerPrefix+"id:"+id, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByDocument(ctx context.Context, document string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerPrefix+"document:"+document, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByDocument(ctx, document)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (bool, error) {
	ok, err := r.next.Update(ctx, p)
	if err != nil {
		return false, err
	}
	r.cache.Invalidate(ctx, playerPrefix)
	return ok, nil
}

func (r *PlayerRepository) SetLastPaymentDate(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	ok, err := r.next.SetLastPaymentDate(ctx, id, paidAt)
	if err != nil {
		return false, err
	}
	r.cache.Invalidate(ctx, playerPrefix)
	return ok, nil
}

func (r *PlayerRepository) AppendStatsRecord(ctx context.Context, playerID string, rec player.StatsRecord) (bool, error) {
	ok, err := r.next.AppendStatsRecord(ctx, playerID, rec)
	if err != nil {
		return false, err
	}
	r.cache.Invalidate(ctx, playerPrefix)
	return ok, nil
}

// Delete cascades in the store, so teams and attendance are dropped too.
func (r *PlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.cache.Invalidate(ctx, playerPrefix, teamPrefix, attendancePrefix)
	return ok, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamPrefix+"id:"+id, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListByPlayer(ctx context.Context, playerID string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamPrefix+"player:"+playerID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByPlayer(ctx, playerID)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) (bool, error) {
	ok, err := r.next.Update(ctx, t)
	if err != nil {
		return false, err
	}
	r.cache.Invalidate(ctx, teamPrefix)
	return ok, nil
}

type AttendanceRepository struct {
	next  attendance.Repository
	cache *basecache.Store
}

func NewAttendanceRepository(next attendance.Repository, cache *basecache.Store) *AttendanceRepository {
	return &AttendanceRepository{next: next, cache: cache}
}

func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	items, err := basecache.Load(ctx, r.cache, attendancePrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]attendance.Record(nil), items...), nil
}

func (r *AttendanceRepository) ListByPlayer(ctx context.Context, playerID string) ([]attendance.Record, error) {
	items, err := basecache.Load(ctx, r.cache, attendancePrefix+"player:"+playerID, func(ctx context.Context) ([]attendance.Record, error) {
		return r.next.ListByPlayer(ctx, playerID)
	})
	if err != nil {
		return nil, err
	}
	return append([]attendance.Record(nil), items...), nil
}

func (r *AttendanceRepository) ListByDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	key := attendancePrefix + "day:" + attendance.FormatDay(attendance.NormalizeDay(day))
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]attendance.Record, error) {
		return r.next.ListByDay(ctx, day)
	})
	if err != nil {
		return nil, err
	}
	return append([]attendance.Record(nil), items...), nil
}

func (r *AttendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	saved, err := r.next.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, err
	}
	r.cache.Invalidate(ctx, attendancePrefix)
	return saved, nil
}

type CoachRepository struct {
	next  coach.Repository
	cache *basecache.Store
}

func NewCoachRepository(next coach.Repository, cache *basecache.Store) *CoachRepository {
	return &CoachRepository{next: next, cache: cache}
}

func (r *CoachRepository) List(ctx context.Context) ([]coach.Coach, error) {
	items, err := basecache.Load(ctx, r.cache, coachPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]coach.Coach(nil), items...), nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id string) (coach.Coach, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, coachPrefix+"id:"+id, func(ctx context.Context) (lookup[coach.Coach], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[coach.Coach]{value: item, exists: exists}, err
	})
	if err != nil {
		return coach.Coach{}, false, err
	}
	return cached.value, cached.exists, nil
}

// GetByDocument backs coach login and is not cached, so a newly registered
// coach can log in immediately from any instance.
func (r *CoachRepository) GetByDocument(ctx context.Context, document string) (coach.Coach, bool, error) {
	return r.next.GetByDocument(ctx, document)
}

func (r *CoachRepository) Create(ctx context.Context, c coach.Coach) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, coachPrefix)
	return nil
}

type ClubSettingsRepository struct {
	next  clubsettings.Repository
	cache *basecache.Store
}

func NewClubSettingsRepository(next clubsettings.Repository, cache *basecache.Store) *ClubSettingsRepository {
	return &ClubSettingsRepository{next: next, cache: cache}
}

func (r *ClubSettingsRepository) GetOrCreate(ctx context.Context, defaults clubsettings.Settings) (clubsettings.Settings, error) {
	return basecache.Load(ctx, r.cache, settingsPrefix+"singleton", func(ctx context.Context) (clubsettings.Settings, error) {
		return r.next.GetOrCreate(ctx, defaults)
	})
}

func (r *ClubSettingsRepository) Save(ctx context.Context, s clubsettings.Settings) (clubsettings.Settings, error) {
	saved, err := r.next.Save(ctx, s)
	if err != nil {
		return clubsettings.Settings{}, err
	}
	r.cache.Invalidate(ctx, settingsPrefix)
	return saved, nil
}
