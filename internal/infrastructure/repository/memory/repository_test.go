package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
)

func newPlayer(id, document string) player.Player {
	return player.Player{
		ID:             id,
		Name:           "Player " + id,
		Document:       document,
		JoinDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		MainCategories: []player.MainCategory{player.MainCategoryMixto},
		SubCategory:    player.SubCategoryBasico,
		Position:       player.PositionSetter,
		StatsHistory: []player.StatsRecord{
			{ID: id + "-r1", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Stats: player.Stats{Attack: 5}},
		},
	}
}

func TestPlayerRepository_CreateRejectsDuplicateDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(NewStore())

	require.NoError(t, repo.Create(ctx, newPlayer("p1", "111")))
	err := repo.Create(ctx, newPlayer("p2", "111"))
	assert.True(t, errors.Is(err, player.ErrDuplicateDocument))

	got, ok, err := repo.GetByDocument(ctx, "111")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)
}

func TestPlayerRepository_UpdateEditsOnlyNewestStats(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(NewStore())

	p := newPlayer("p1", "111")
	p.StatsHistory = append(p.StatsHistory, player.StatsRecord{ID: "p1-r2", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Stats: player.Stats{Attack: 6}})
	require.NoError(t, repo.Create(ctx, p))

	edit := p
	edit.Name = "Renamed"
	edit.JoinDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	edit.StatsHistory = []player.StatsRecord{
		{ID: "p1-r1", Date: p.StatsHistory[0].Date, Stats: player.Stats{Attack: 99}},
		{ID: "p1-r2", Date: p.StatsHistory[1].Date, Stats: player.Stats{Attack: 8}},
	}
	ok, err := repo.Update(ctx, edit)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, _ := repo.GetByID(ctx, "p1")
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.JoinDate.Equal(p.JoinDate), "join date must not change")
	assert.Equal(t, 5, got.StatsHistory[0].Stats.Attack)
	assert.Equal(t, 8, got.StatsHistory[1].Stats.Attack)
}

func TestPlayerRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	store := NewStoreWithData(Dataset{
		Players: []player.Player{newPlayer("p1", "111"), newPlayer("p2", "222")},
		Teams: []team.Team{
			{ID: "t1", Name: "Halcones", MainCategory: player.MainCategoryMixto, SubCategory: player.SubCategoryBasico, PlayerIDs: []string{"p1", "p2"}},
		},
		Attendances: []attendance.Record{
			{PlayerID: "p1", Day: day, Status: attendance.StatusPresent},
			{PlayerID: "p2", Day: day, Status: attendance.StatusPresent},
		},
	})
	players := NewPlayerRepository(store)
	teams := NewTeamRepository(store)
	records := NewAttendanceRepository(store)

	ok, err := players.Delete(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)

	_, found, _ := players.GetByID(ctx, "p1")
	assert.False(t, found)

	left, _ := records.ListByPlayer(ctx, "p1")
	assert.Empty(t, left)
	all, _ := records.List(ctx)
	assert.Len(t, all, 1)

	tm, _, _ := teams.GetByID(ctx, "t1")
	assert.Equal(t, []string{"p2"}, tm.PlayerIDs)

	ok, err = players.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttendanceRepository_UpsertIsIdempotentPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStoreWithData(Dataset{Players: []player.Player{newPlayer("p1", "111")}}))
	morning := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, attendance.Record{PlayerID: "p1", Day: morning, Status: attendance.StatusAbsent})
	require.NoError(t, err)
	rec, err := repo.Upsert(ctx, attendance.Record{PlayerID: "p1", Day: morning.Add(8 * time.Hour), Status: attendance.StatusPresent})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", attendance.FormatDay(rec.Day))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, attendance.StatusPresent, all[0].Status)
}

func TestAttendanceRepository_ConcurrentUpsertKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStoreWithData(Dataset{Players: []player.Player{newPlayer("p1", "111")}}))
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := attendance.StatusPresent
			if i%2 == 0 {
				status = attendance.StatusAbsent
			}
			_, _ = repo.Upsert(ctx, attendance.Record{PlayerID: "p1", Day: day, Status: status})
		}(i)
	}
	wg.Wait()

	byDay, err := repo.ListByDay(ctx, day)
	require.NoError(t, err)
	assert.Len(t, byDay, 1)
}

func TestAttendanceRepository_UpsertRejectsDeletedPlayer(t *testing.T) {
	ctx := context.Background()
	store := NewStoreWithData(Dataset{Players: []player.Player{newPlayer("p1", "111")}})
	players := NewPlayerRepository(store)
	repo := NewAttendanceRepository(store)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	ok, err := players.Delete(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Upsert(ctx, attendance.Record{PlayerID: "p1", Day: day, Status: attendance.StatusPresent})
	assert.True(t, errors.Is(err, player.ErrUnknownPlayer))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func rosterOf(prefix string, n int) ([]player.Player, []string) {
	players := make([]player.Player, 0, n)
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%s%d", prefix, i)
		players = append(players, newPlayer(id, "doc-"+id))
		ids = append(ids, id)
	}
	return players, ids
}

func TestTeamRepository_CreateEnforcesOneTeamPerCategory(t *testing.T) {
	ctx := context.Background()
	players, ids := rosterOf("p", 7)
	store := NewStoreWithData(Dataset{Players: players})
	repo := NewTeamRepository(store)

	first := team.Team{ID: "t1", Name: "Halcones", MainCategory: player.MainCategoryMixto, PlayerIDs: ids[:6]}
	require.NoError(t, repo.Create(ctx, first))

	clash := team.Team{ID: "t2", Name: "Tigres", MainCategory: player.MainCategoryMixto, PlayerIDs: ids[1:7]}
	err := repo.Create(ctx, clash)
	assert.True(t, errors.Is(err, team.ErrPlayerOnOtherTeam))

	other := team.Team{ID: "t3", Name: "Panteras", MainCategory: player.MainCategoryMasculino, PlayerIDs: ids[1:7]}
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTeamRepository_ConcurrentCreateSameRosterKeepsOne(t *testing.T) {
	ctx := context.Background()
	players, ids := rosterOf("p", 6)
	repo := NewTeamRepository(NewStoreWithData(Dataset{Players: players}))

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, team.Team{
				ID:           fmt.Sprintf("t%d", i),
				Name:         "Halcones",
				MainCategory: player.MainCategoryMixto,
				PlayerIDs:    ids,
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, team.ErrPlayerOnOtherTeam), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, created)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTeamRepository_UpdateChecksRoster(t *testing.T) {
	ctx := context.Background()
	players, ids := rosterOf("p", 8)
	store := NewStoreWithData(Dataset{
		Players: players,
		Teams: []team.Team{
			{ID: "t1", Name: "Halcones", MainCategory: player.MainCategoryMixto, PlayerIDs: ids[:6]},
			{ID: "t2", Name: "Tigres", MainCategory: player.MainCategoryMixto, PlayerIDs: ids[6:8]},
		},
	})
	repo := NewTeamRepository(store)

	ok, err := repo.Update(ctx, team.Team{ID: "t1", Name: "Halcones", PlayerIDs: append(ids[:6:6], "p7")})
	assert.False(t, ok)
	assert.True(t, errors.Is(err, team.ErrPlayerOnOtherTeam))

	ok, err = repo.Update(ctx, team.Team{ID: "t1", Name: "Halcones", PlayerIDs: append(ids[:6:6], "ghost")})
	assert.False(t, ok)
	assert.True(t, errors.Is(err, player.ErrUnknownPlayer))

	ok, err = repo.Update(ctx, team.Team{ID: "t1", Name: "Halcones B", PlayerIDs: ids[:5]})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _, _ := repo.GetByID(ctx, "t1")
	assert.Equal(t, "Halcones B", got.Name)
	assert.Equal(t, ids[:5], got.PlayerIDs)
}

func TestClubSettingsRepository_GetOrCreateThenSave(t *testing.T) {
	ctx := context.Background()
	repo := NewClubSettingsRepository(NewStore())

	first, err := repo.GetOrCreate(ctx, clubsettings.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "Voley Club", first.Name)

	changed := first
	changed.Name = "Club Atlético"
	changed.TeamCreationEnabled = false
	_, err = repo.Save(ctx, changed)
	require.NoError(t, err)

	again, err := repo.GetOrCreate(ctx, clubsettings.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "Club Atlético", again.Name)
	assert.False(t, again.TeamCreationEnabled)
}

func TestSeedDataset_IsConsistent(t *testing.T) {
	ds := SeedDataset(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, p := range ds.Players {
		require.NoError(t, p.Validate())
	}
	for _, tm := range ds.Teams {
		require.NoError(t, tm.Validate())
	}
	for _, c := range ds.Coaches {
		require.NoError(t, c.Validate())
	}
}
