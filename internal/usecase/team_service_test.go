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
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	attendancemock "github.com/riskibarqy/voley-club/internal/mocks/domain/attendance"
	clubsettingsmock "github.com/riskibarqy/voley-club/internal/mocks/domain/clubsettings"
	coachmock "github.com/riskibarqy/voley-club/internal/mocks/domain/coach"
	playermock "github.com/riskibarqy/voley-club/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/voley-club/internal/mocks/domain/team"
)

func newTeamServiceWithStore(store *memory.Store) *TeamService {
	return NewTeamService(
		memory.NewTeamRepository(store),
		memory.NewPlayerRepository(store),
		memory.NewCoachRepository(store),
		memory.NewAttendanceRepository(store),
		memory.NewClubSettingsRepository(store),
		&sequenceIDs{prefix: "team"},
		nil,
	)
}

func TestTeamService_CreateTeam_Success(t *testing.T) {
	players := mixtoRoster(7)
	store := memory.NewStoreWithData(memory.Dataset{
		Players: players,
		Coaches: []coach.Coach{{ID: "c1", FirstName: "Laura", LastName: "Pérez", Document: "900"}},
	})
	svc := newTeamServiceWithStore(store)

	got, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		Name:         " Halcones ",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryBasico,
		PlayerIDs:    rosterIDs(players[:6]),
		Tournament:   "Liga Regional",
		CoachID:      "c1",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.ID != "team-1" || got.Name != "Halcones" {
		t.Fatalf("unexpected team: id=%s name=%q", got.ID, got.Name)
	}

	forPlayer, err := svc.ListTeamsForPlayer(context.Background(), "p3")
	require.NoError(t, err)
	require.Len(t, forPlayer, 1)
	assert.Equal(t, got.ID, forPlayer[0].ID)
}

func TestTeamService_CreateTeam_Rules(t *testing.T) {
	players := mixtoRoster(8)
	femenino := samplePlayer("f1", "f-1", player.MainCategoryFemenino)
	players = append(players, femenino)

	existing := team.Team{
		ID:           "t-existing",
		Name:         "Existing",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryIntermedio,
		PlayerIDs:    rosterIDs(players[:6]),
	}

	tests := []struct {
		name      string
		in        CreateTeamInput
		want      error
		domainErr error
	}{
		{
			name: "roster below minimum",
			in: CreateTeamInput{
				Name: "Small", MainCategory: player.MainCategoryMixto, SubCategory: player.SubCategoryBasico,
				PlayerIDs: []string{"p7", "p8"},
			},
			want:      ErrInvalidInput,
			domainErr: team.ErrRosterTooSmall,
		},
		{
			name: "sub category not offered",
			in: CreateTeamInput{
				Name: "Fem", MainCategory: player.MainCategoryFemenino, SubCategory: player.SubCategoryAvanzado,
				PlayerIDs: rosterIDs(players[:6]),
			},
			want:      ErrInvalidInput,
			domainErr: team.ErrIncompatibleSubCategory,
		},
		{
			name: "player already on a team of the category",
			in: CreateTeamInput{
				Name: "Again", MainCategory: player.MainCategoryMixto, SubCategory: player.SubCategoryAvanzado,
				PlayerIDs: []string{"p1", "p7", "p8", "x", "y", "z"},
			},
			want: ErrInvalidInput,
		},
		{
			name: "player lacks category",
			in: CreateTeamInput{
				Name: "Mixed", MainCategory: player.MainCategoryMixto, SubCategory: player.SubCategoryAvanzado,
				PlayerIDs: []string{"f1", "p7", "p8", "p2", "p3", "p4"},
			},
			want:      ErrInvalidInput,
			domainErr: team.ErrPlayerLacksCategory,
		},
		{
			name: "unknown coach",
			in: CreateTeamInput{
				Name: "Coachless", MainCategory: player.MainCategoryMasculino, SubCategory: player.SubCategoryAvanzado,
				PlayerIDs: rosterIDs(players[:6]), CoachID: "ghost",
			},
			want: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStoreWithData(memory.Dataset{Players: players, Teams: []team.Team{existing}})
			svc := newTeamServiceWithStore(store)

			_, err := svc.CreateTeam(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.domainErr != nil && !errors.Is(err, tc.domainErr) {
				t.Fatalf("expected %v to be reachable, got %v", tc.domainErr, err)
			}
		})
	}
}

func TestTeamService_CreateTeam_PlayerOnOtherTeam(t *testing.T) {
	players := mixtoRoster(12)
	existing := team.Team{
		ID:           "t-existing",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryIntermedio,
		PlayerIDs:    rosterIDs(players[:6]),
	}
	store := memory.NewStoreWithData(memory.Dataset{Players: players, Teams: []team.Team{existing}})
	svc := newTeamServiceWithStore(store)

	ids := append([]string{"p1"}, rosterIDs(players[7:12])...)
	_, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		Name:         "Second",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryAvanzado,
		PlayerIDs:    ids,
	})
	if !errors.Is(err, team.ErrPlayerOnOtherTeam) {
		t.Fatalf("expected ErrPlayerOnOtherTeam, got %v", err)
	}
	fe, ok := FieldErrorOf(err)
	require.True(t, ok)
	assert.Equal(t, "playerIds", fe.Field)
}

func TestTeamService_CreateTeam_DisabledFeature(t *testing.T) {
	players := mixtoRoster(6)
	store := memory.NewStoreWithData(memory.Dataset{Players: players})
	saveSettings(t, store, func(s *clubsettings.Settings) { s.TeamCreationEnabled = false })
	svc := newTeamServiceWithStore(store)

	_, err := svc.CreateTeam(context.Background(), CreateTeamInput{
		Name:         "Blocked",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryBasico,
		PlayerIDs:    rosterIDs(players),
	})
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
}

func TestTeamService_CreateTeam_StoreRejectsRacingMembership(t *testing.T) {
	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	settingsRepo := clubsettingsmock.NewRepository(t)
	svc := NewTeamService(teamRepo, playerRepo, coachmock.NewRepository(t), attendancemock.NewRepository(t), settingsRepo, &sequenceIDs{prefix: "team"}, nil)

	players := mixtoRoster(6)
	settingsRepo.On("GetOrCreate", mock.Anything, clubsettings.Defaults()).Return(clubsettings.Defaults(), nil).Once()
	playerRepo.On("List", mock.Anything).Return(players, nil).Once()
	teamRepo.On("List", mock.Anything).Return([]team.Team{}, nil).Once()
	teamRepo.On("Create", mock.Anything, mock.AnythingOfType("team.Team")).
		Return(errors.Wrap(team.ErrPlayerOnOtherTeam, "team=team-1")).Once()

	_, err := svc.CreateTeam(ctx, CreateTeamInput{
		Name:         "Halcones",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryBasico,
		PlayerIDs:    rosterIDs(players),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	assert.False(t, errors.Is(err, ErrDependencyUnavailable))
	fe, ok := FieldErrorOf(err)
	require.True(t, ok)
	assert.Equal(t, "playerIds", fe.Field)
}

func TestTeamService_CreateTeam_StoreRejectsDeletedRosterPlayer(t *testing.T) {
	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	settingsRepo := clubsettingsmock.NewRepository(t)
	svc := NewTeamService(teamRepo, playerRepo, coachmock.NewRepository(t), attendancemock.NewRepository(t), settingsRepo, &sequenceIDs{prefix: "team"}, nil)

	players := mixtoRoster(6)
	settingsRepo.On("GetOrCreate", mock.Anything, clubsettings.Defaults()).Return(clubsettings.Defaults(), nil).Once()
	playerRepo.On("List", mock.Anything).Return(players, nil).Once()
	teamRepo.On("List", mock.Anything).Return([]team.Team{}, nil).Once()
	teamRepo.On("Create", mock.Anything, mock.AnythingOfType("team.Team")).
		Return(errors.Wrap(player.ErrUnknownPlayer, "p6")).Once()

	_, err := svc.CreateTeam(ctx, CreateTeamInput{
		Name:         "Halcones",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryBasico,
		PlayerIDs:    rosterIDs(players),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrDependencyUnavailable))
	fe, ok := FieldErrorOf(err)
	require.True(t, ok)
	assert.Equal(t, "playerIds", fe.Field)
}

func TestTeamService_UpdateTeam_KeepsCategoriesAndExcludesSelf(t *testing.T) {
	players := mixtoRoster(8)
	current := team.Team{
		ID:           "t1",
		Name:         "Halcones",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryIntermedio,
		PlayerIDs:    rosterIDs(players[:6]),
	}
	store := memory.NewStoreWithData(memory.Dataset{Players: players, Teams: []team.Team{current}})
	svc := newTeamServiceWithStore(store)

	name := "Halcones B"
	position := "2do"
	roster := append(rosterIDs(players[:6]), "p7")
	got, err := svc.UpdateTeam(context.Background(), "t1", TeamUpdate{
		Name:               &name,
		TournamentPosition: &position,
		PlayerIDs:          roster,
	})
	require.NoError(t, err)
	assert.Equal(t, "Halcones B", got.Name)
	assert.Equal(t, "2do", got.TournamentPosition)
	assert.Equal(t, player.MainCategoryMixto, got.MainCategory)
	assert.Equal(t, player.SubCategoryIntermedio, got.SubCategory)
	assert.Len(t, got.PlayerIDs, 7)

	blank := "  "
	_, err = svc.UpdateTeam(context.Background(), "t1", TeamUpdate{Name: &blank})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.UpdateTeam(context.Background(), "ghost", TeamUpdate{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTeamService_ListCandidates_NewTeamRankedByAttendance(t *testing.T) {
	players := mixtoRoster(9)
	existing := team.Team{
		ID:           "t1",
		MainCategory: player.MainCategoryMixto,
		SubCategory:  player.SubCategoryIntermedio,
		PlayerIDs:    rosterIDs(players[:6]),
	}
	d1 := day(2024, time.May, 1)
	d2 := day(2024, time.May, 2)
	store := memory.NewStoreWithData(memory.Dataset{
		Players: players,
		Teams:   []team.Team{existing},
		Attendances: []attendance.Record{
			{PlayerID: "p9", Day: d1, Status: attendance.StatusPresent},
			{PlayerID: "p9", Day: d2, Status: attendance.StatusPresent},
			{PlayerID: "p8", Day: d1, Status: attendance.StatusPresent},
			{PlayerID: "p7", Day: d1, Status: attendance.StatusAbsent},
		},
	})
	svc := newTeamServiceWithStore(store)

	got, err := svc.ListCandidates(context.Background(), player.MainCategoryMixto, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p9", got[0].Player.ID)
	assert.Equal(t, 2, got[0].PresentCount)
	assert.Equal(t, "p8", got[1].Player.ID)
	assert.Equal(t, "p7", got[2].Player.ID)

	forEdit, err := svc.ListCandidates(context.Background(), "", "t1")
	require.NoError(t, err)
	assert.Len(t, forEdit, 9)
}

func TestTeamService_ListCandidates_EditRankedByScore(t *testing.T) {
	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	svc := NewTeamService(teamRepo, playerRepo, coachmock.NewRepository(t), attendancemock.NewRepository(t), clubsettingsmock.NewRepository(t), &sequenceIDs{prefix: "team"}, nil)

	low := samplePlayer("low", "1")
	high := samplePlayer("high", "2")
	high.StatsHistory[0].Stats = player.Stats{Attack: 90, Defense: 90, Block: 90, Pass: 90}
	current := team.Team{ID: "t1", MainCategory: player.MainCategoryMixto, PlayerIDs: []string{"low"}}

	teamRepo.On("GetByID", mock.Anything, "t1").Return(current, true, nil).Once()
	teamRepo.On("List", mock.Anything).Return([]team.Team{current}, nil).Once()
	playerRepo.On("List", mock.Anything).Return([]player.Player{low, high}, nil).Once()

	got, err := svc.ListCandidates(ctx, player.MainCategoryMixto, "t1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Player.ID)
	assert.Equal(t, 360, got[0].TotalScore)
}

func TestTeamService_ListTournaments(t *testing.T) {
	store := memory.NewStoreWithData(memory.Dataset{Teams: []team.Team{
		{ID: "a", Tournament: "Copa"},
		{ID: "b"},
		{ID: "c", Tournament: "Liga"},
		{ID: "d", Tournament: "Copa"},
	}})
	svc := newTeamServiceWithStore(store)

	got, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Copa", got[0].Tournament)
	assert.Len(t, got[0].Teams, 2)
	assert.Equal(t, "Liga", got[1].Tournament)
}
