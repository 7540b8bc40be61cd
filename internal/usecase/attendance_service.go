package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

const defaultAttendanceBatchWorkers = 4

// AttendanceEntry is one line of a batch attendance submission.
type AttendanceEntry struct {
	PlayerID string
	Status   attendance.Status
}

// AttendanceBatchResult reports the outcome for one batch entry. Err is nil
// when the record was written.
type AttendanceBatchResult struct {
	PlayerID string
	Record   attendance.Record
	Err      error
}

type AttendanceService struct {
	attendanceRepo attendance.Repository
	playerRepo     player.Repository
	batchWorkers   int
	logger         *logging.Logger
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	playerRepo player.Repository,
	batchWorkers int,
	logger *logging.Logger,
) *AttendanceService {
	if logger == nil {
		logger = logging.Default()
	}
	if batchWorkers <= 0 {
		batchWorkers = defaultAttendanceBatchWorkers
	}

	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		playerRepo:     playerRepo,
		batchWorkers:   batchWorkers,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *AttendanceService) ListAttendances(ctx context.Context) ([]attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.ListAttendances")
	defer span.End()

	records, err := s.attendanceRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list attendances")
	}
	return records, nil
}

func (s *AttendanceService) ListForPlayer(ctx context.Context, playerID string) ([]attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.ListForPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, invalidField("playerId", "is required")
	}

	records, err := s.attendanceRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, storeFailure(err, "list attendances by player")
	}
	return records, nil
}

// RecordAttendance upserts today's status for a player. Recording twice on
// the same day overwrites the first status.
func (s *AttendanceService) RecordAttendance(ctx context.Context, playerID string, status attendance.Status) (attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.RecordAttendance")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return attendance.Record{}, invalidField("playerId", "is required")
	}
	if !status.Recordable() {
		return attendance.Record{}, invalidRule("status", errors.Wrapf(attendance.ErrInvalidStatus, "%q", status))
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return attendance.Record{}, storeFailure(err, "get player")
	}
	if !exists {
		return attendance.Record{}, notFound("player %s not found", playerID)
	}

	return s.upsert(ctx, playerID, status, attendance.NormalizeDay(s.now().UTC()))
}

// RecordAttendanceBatch records today's status for many players through a
// bounded worker pool. Entries fail independently; results keep input order.
func (s *AttendanceService) RecordAttendanceBatch(ctx context.Context, entries []AttendanceEntry) ([]AttendanceBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.RecordAttendanceBatch")
	defer span.End()

	if len(entries) == 0 {
		return nil, invalidField("entries", "at least one entry is required")
	}
	batch := make([]AttendanceEntry, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		entry.PlayerID = strings.TrimSpace(entry.PlayerID)
		if entry.PlayerID == "" {
			return nil, invalidField("entries", "entry %d has no player id", i)
		}
		if _, dup := seen[entry.PlayerID]; dup {
			return nil, invalidField("entries", "player %s listed twice", entry.PlayerID)
		}
		seen[entry.PlayerID] = struct{}{}
		if !entry.Status.Recordable() {
			return nil, invalidRule("entries", errors.Wrapf(attendance.ErrInvalidStatus, "entry %d %q", i, entry.Status))
		}
		batch[i] = entry
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list players")
	}
	known := make(map[string]struct{}, len(players))
	for _, p := range players {
		known[p.ID] = struct{}{}
	}

	day := attendance.NormalizeDay(s.now().UTC())
	results := make([]AttendanceBatchResult, len(batch))

	workerCount := s.batchWorkers
	if workerCount > len(batch) {
		workerCount = len(batch)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, errors.Wrap(err, "create attendance worker pool")
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, entry := range batch {
		results[i].PlayerID = entry.PlayerID
		if _, ok := known[entry.PlayerID]; !ok {
			results[i].Err = notFound("player %s not found", entry.PlayerID)
			continue
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rec, err := s.upsert(ctx, entry.PlayerID, entry.Status, day)
			results[i].Record = rec
			results[i].Err = err
		}); err != nil {
			workers.Done()
			results[i].Err = errors.Wrap(err, "submit attendance task")
		}
	}
	workers.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "attendance batch recorded",
		"day", attendance.FormatDay(day),
		"entries", len(batch),
		"failed", failed,
	)

	return results, nil
}

// StatusFor resolves a player's status on day, Pending when nothing was recorded.
func (s *AttendanceService) StatusFor(ctx context.Context, playerID string, day time.Time) (attendance.Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.StatusFor")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return "", invalidField("playerId", "is required")
	}

	records, err := s.attendanceRepo.ListByDay(ctx, attendance.NormalizeDay(day))
	if err != nil {
		return "", storeFailure(err, "list attendances by day")
	}
	return attendance.StatusFor(records, playerID, day), nil
}

// ListForDay builds the attendance sheet of day for every registered player.
func (s *AttendanceService) ListForDay(ctx context.Context, day time.Time) ([]attendance.DayEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.ListForDay")
	defer span.End()

	day = attendance.NormalizeDay(day)
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list players")
	}
	records, err := s.attendanceRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, storeFailure(err, "list attendances by day")
	}

	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return attendance.Sheet(ids, records, day), nil
}

func (s *AttendanceService) upsert(ctx context.Context, playerID string, status attendance.Status, day time.Time) (attendance.Record, error) {
	rec, err := s.attendanceRepo.Upsert(ctx, attendance.Record{
		PlayerID: playerID,
		Day:      day,
		Status:   status,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "attendance upsert failed",
			"player_id", playerID,
			"error", err,
		)
		if errors.Is(err, player.ErrUnknownPlayer) {
			return attendance.Record{}, notFound("player %s not found", playerID)
		}
		return attendance.Record{}, storeFailure(err, "upsert attendance")
	}
	return rec, nil
}
