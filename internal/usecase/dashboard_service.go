package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/dashboard"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
)

// Dashboard is the club overview.
type Dashboard struct {
	Summary      dashboard.Summary
	TopAthletes  []dashboard.RankedAthlete
	MonthlyJoins []dashboard.MonthBucket
	Tournaments  []team.TournamentGroup
}

type DashboardService struct {
	playerRepo     player.Repository
	teamRepo       team.Repository
	attendanceRepo attendance.Repository
	now            func() time.Time
}

func NewDashboardService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	attendanceRepo attendance.Repository,
) *DashboardService {
	return &DashboardService{
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	today := s.now().UTC()

	var (
		players []player.Player
		teams   []team.Team
		records []attendance.Record
	)
	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		var err error
		players, err = s.playerRepo.List(ctx)
		if err != nil {
			return storeFailure(err, "list players")
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		teams, err = s.teamRepo.List(ctx)
		if err != nil {
			return storeFailure(err, "list teams")
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		records, err = s.attendanceRepo.ListByDay(ctx, attendance.NormalizeDay(today))
		if err != nil {
			return storeFailure(err, "list today's attendances")
		}
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Summary:      dashboard.Summarize(players, len(teams), records, today),
		TopAthletes:  dashboard.TopAthletes(players, dashboard.TopAthleteCount),
		MonthlyJoins: dashboard.MonthlyJoinCounts(players, today),
		Tournaments:  team.GroupByTournament(teams),
	}, nil
}
