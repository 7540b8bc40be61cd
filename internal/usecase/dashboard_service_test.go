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
	"github.com/riskibarqy/voley-club/internal/domain/team"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	attendancemock "github.com/riskibarqy/voley-club/internal/mocks/domain/attendance"
	playermock "github.com/riskibarqy/voley-club/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/voley-club/internal/mocks/domain/team"
)

func TestDashboardService_Get(t *testing.T) {
	today := time.Date(2024, time.May, 10, 20, 0, 0, 0, time.UTC)
	players := mixtoRoster(7)
	for i := range players {
		players[i].StatsHistory[0].Stats.Attack = 10 * (i + 1)
	}
	players[6].JoinDate = day(2024, time.May, 2)

	store := memory.NewStoreWithData(memory.Dataset{
		Players: players,
		Teams: []team.Team{
			{ID: "t1", Tournament: "Copa"},
			{ID: "t2"},
		},
		Attendances: []attendance.Record{
			{PlayerID: "p1", Day: today, Status: attendance.StatusPresent},
			{PlayerID: "p2", Day: today, Status: attendance.StatusPresent},
			{PlayerID: "p3", Day: today, Status: attendance.StatusAbsent},
			{PlayerID: "p4", Day: today.AddDate(0, 0, -1), Status: attendance.StatusPresent},
		},
	})
	svc := NewDashboardService(
		memory.NewPlayerRepository(store),
		memory.NewTeamRepository(store),
		memory.NewAttendanceRepository(store),
	)
	svc.now = fixedClock(today)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}

	assert.Equal(t, 7, got.Summary.TotalPlayers)
	assert.Equal(t, 2, got.Summary.TotalTeams)
	assert.Equal(t, 29, got.Summary.TodayAttendanceRate)

	require.Len(t, got.TopAthletes, 5)
	assert.Equal(t, "p7", got.TopAthletes[0].Player.ID)
	assert.Equal(t, "p3", got.TopAthletes[4].Player.ID)

	require.Len(t, got.MonthlyJoins, 12)
	assert.Equal(t, "2024-05", got.MonthlyJoins[11].Label())
	assert.Equal(t, 1, got.MonthlyJoins[11].Count)
	assert.Equal(t, "2024-01", got.MonthlyJoins[7].Label())
	assert.Equal(t, 6, got.MonthlyJoins[7].Count)

	require.Len(t, got.Tournaments, 1)
	assert.Equal(t, "Copa", got.Tournaments[0].Tournament)
}

func TestDashboardService_Get_StoreFailure(t *testing.T) {
	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	attendanceRepo := attendancemock.NewRepository(t)
	svc := NewDashboardService(playerRepo, teamRepo, attendanceRepo)

	playerRepo.On("List", mock.Anything).Return([]player.Player{}, nil).Maybe()
	teamRepo.On("List", mock.Anything).Return(nil, errors.New("too many connections")).Once()
	attendanceRepo.On("ListByDay", mock.Anything, mock.Anything).Return([]attendance.Record{}, nil).Maybe()

	_, err := svc.Get(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
