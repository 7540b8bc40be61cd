package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
)

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePlayer(id, document string, mains ...player.MainCategory) player.Player {
	if len(mains) == 0 {
		mains = []player.MainCategory{player.MainCategoryMixto}
	}
	joined := day(2024, time.January, 15)
	return player.Player{
		ID:             id,
		Name:           "Player " + id,
		Document:       document,
		JoinDate:       joined,
		BirthDate:      day(2000, time.March, 1),
		MainCategories: mains,
		SubCategory:    player.SubCategoryIntermedio,
		Position:       player.PositionOutsideHitter,
		StatsHistory: []player.StatsRecord{
			{ID: id + "-s1", Date: joined, Stats: player.Stats{Attack: 50, Defense: 50, Block: 50, Pass: 50}},
		},
	}
}

func mixtoRoster(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, samplePlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("doc-%d", i)))
	}
	return out
}

func rosterIDs(players []player.Player) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}

func saveSettings(t *testing.T, store *memory.Store, mutate func(*clubsettings.Settings)) {
	t.Helper()

	s := clubsettings.Defaults()
	mutate(&s)
	if _, err := memory.NewClubSettingsRepository(store).Save(context.Background(), s); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}
