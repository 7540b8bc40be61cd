package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	attendancemock "github.com/riskibarqy/voley-club/internal/mocks/domain/attendance"
	playermock "github.com/riskibarqy/voley-club/internal/mocks/domain/player"
)

func newAttendanceServiceWithStore(store *memory.Store, now time.Time) *AttendanceService {
	svc := NewAttendanceService(memory.NewAttendanceRepository(store), memory.NewPlayerRepository(store), 2, nil)
	svc.now = fixedClock(now)
	return svc
}

func TestAttendanceService_RecordAttendance_SecondCallOverwrites(t *testing.T) {
	now := time.Date(2024, time.May, 10, 19, 45, 0, 0, time.UTC)
	store := memory.NewStoreWithData(memory.Dataset{Players: []player.Player{samplePlayer("p1", "1")}})
	svc := newAttendanceServiceWithStore(store, now)
	ctx := context.Background()

	first, err := svc.RecordAttendance(ctx, "p1", attendance.StatusPresent)
	require.NoError(t, err)
	assert.True(t, first.Day.Equal(day(2024, time.May, 10)))

	_, err = svc.RecordAttendance(ctx, "p1", attendance.StatusAbsent)
	require.NoError(t, err)

	records, err := svc.ListForPlayer(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)

	status, err := svc.StatusFor(ctx, "p1", now)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, status)
}

func TestAttendanceService_RecordAttendance_Rejects(t *testing.T) {
	store := memory.NewStoreWithData(memory.Dataset{Players: []player.Player{samplePlayer("p1", "1")}})
	svc := newAttendanceServiceWithStore(store, day(2024, time.May, 10))
	ctx := context.Background()

	if _, err := svc.RecordAttendance(ctx, "p1", attendance.StatusPending); !errors.Is(err, attendance.ErrInvalidStatus) {
		t.Fatalf("expected pending to be unrecordable, got %v", err)
	}
	if _, err := svc.RecordAttendance(ctx, "p1", "Tarde"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RecordAttendance(ctx, "ghost", attendance.StatusPresent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.RecordAttendance(ctx, " ", attendance.StatusPresent); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank player, got %v", err)
	}
}

func TestAttendanceService_StatusFor_PendingWithoutRecord(t *testing.T) {
	store := memory.NewStoreWithData(memory.Dataset{Players: []player.Player{samplePlayer("p1", "1")}})
	svc := newAttendanceServiceWithStore(store, day(2024, time.May, 10))

	status, err := svc.StatusFor(context.Background(), "p1", day(2024, time.May, 9))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, status)
}

func TestAttendanceService_RecordAttendanceBatch(t *testing.T) {
	now := day(2024, time.May, 10)
	store := memory.NewStoreWithData(memory.Dataset{Players: mixtoRoster(3)})
	svc := newAttendanceServiceWithStore(store, now)
	ctx := context.Background()

	results, err := svc.RecordAttendanceBatch(ctx, []AttendanceEntry{
		{PlayerID: "p1", Status: attendance.StatusPresent},
		{PlayerID: "ghost", Status: attendance.StatusPresent},
		{PlayerID: "p3", Status: attendance.StatusAbsent},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "p1", results[0].PlayerID)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, attendance.StatusPresent, results[0].Record.Status)
	assert.Equal(t, "ghost", results[1].PlayerID)
	assert.True(t, errors.Is(results[1].Err, ErrNotFound))
	assert.Equal(t, "p3", results[2].PlayerID)
	assert.NoError(t, results[2].Err)

	sheet, err := svc.ListForDay(ctx, now)
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	statuses := map[string]attendance.Status{}
	for _, entry := range sheet {
		statuses[entry.PlayerID] = entry.Status
	}
	assert.Equal(t, attendance.StatusPresent, statuses["p1"])
	assert.Equal(t, attendance.StatusPending, statuses["p2"])
	assert.Equal(t, attendance.StatusAbsent, statuses["p3"])
}

func TestAttendanceService_RecordAttendanceBatch_RejectsMalformedBatch(t *testing.T) {
	svc := newAttendanceServiceWithStore(memory.NewStore(), day(2024, time.May, 10))
	ctx := context.Background()

	_, err := svc.RecordAttendanceBatch(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.RecordAttendanceBatch(ctx, []AttendanceEntry{
		{PlayerID: "p1", Status: attendance.StatusPresent},
		{PlayerID: "p1", Status: attendance.StatusAbsent},
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.RecordAttendanceBatch(ctx, []AttendanceEntry{{PlayerID: "p1", Status: attendance.StatusPending}})
	assert.True(t, errors.Is(err, attendance.ErrInvalidStatus))
}

func TestAttendanceService_RecordAttendanceBatch_StoreFailurePerEntry(t *testing.T) {
	playerRepo := playermock.NewRepository(t)
	attendanceRepo := attendancemock.NewRepository(t)
	svc := NewAttendanceService(attendanceRepo, playerRepo, 1, nil)
	svc.now = fixedClock(day(2024, time.May, 10))

	playerRepo.On("List", mock.Anything).Return(mixtoRoster(2), nil).Once()
	attendanceRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(r attendance.Record) bool { return r.PlayerID == "p1" })).
		Return(func(_ context.Context, r attendance.Record) (attendance.Record, error) { return r, nil }).
		Once()
	attendanceRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(r attendance.Record) bool { return r.PlayerID == "p2" })).
		Return(attendance.Record{}, errors.New("deadlock detected")).
		Once()

	results, err := svc.RecordAttendanceBatch(context.Background(), []AttendanceEntry{
		{PlayerID: "p1", Status: attendance.StatusPresent},
		{PlayerID: "p2", Status: attendance.StatusPresent},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.True(t, errors.Is(results[1].Err, ErrDependencyUnavailable))
}

func TestAttendanceService_RecordAttendance_PlayerDeletedBeforeWrite(t *testing.T) {
	playerRepo := playermock.NewRepository(t)
	attendanceRepo := attendancemock.NewRepository(t)
	svc := NewAttendanceService(attendanceRepo, playerRepo, 1, nil)
	svc.now = fixedClock(day(2024, time.May, 10))

	playerRepo.On("GetByID", mock.Anything, "p1").Return(samplePlayer("p1", "1"), true, nil).Once()
	attendanceRepo.On("Upsert", mock.Anything, mock.AnythingOfType("attendance.Record")).
		Return(attendance.Record{}, errors.Wrap(player.ErrUnknownPlayer, "p1")).Once()

	_, err := svc.RecordAttendance(context.Background(), "p1", attendance.StatusPresent)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	assert.False(t, errors.Is(err, ErrDependencyUnavailable))
}

func TestAttendanceService_RecordAttendanceBatch_LeavesEntriesUntouched(t *testing.T) {
	store := memory.NewStoreWithData(memory.Dataset{Players: mixtoRoster(2)})
	svc := newAttendanceServiceWithStore(store, day(2024, time.May, 10))

	entries := []AttendanceEntry{
		{PlayerID: " p1 ", Status: attendance.StatusPresent},
		{PlayerID: "p2\t", Status: attendance.StatusAbsent},
	}
	results, err := svc.RecordAttendanceBatch(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p1", results[0].PlayerID)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "p2", results[1].PlayerID)
	assert.NoError(t, results[1].Err)

	assert.Equal(t, " p1 ", entries[0].PlayerID)
	assert.Equal(t, "p2\t", entries[1].PlayerID)
}
