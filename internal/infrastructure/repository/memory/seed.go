package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
)

const (
	SeedCoachID = "coach-demo-01"
	SeedTeamID  = "team-demo-mixto"
)

type seedPlayer struct {
	name      string
	main      []player.MainCategory
	sub       player.SubCategory
	position  player.Position
	stats     player.Stats
	joinedAgo int
}

// SeedDataset builds a small demo club relative to now, for running the API
// with the memory driver.
func SeedDataset(now time.Time) Dataset {
	now = now.UTC()
	mixto := []player.MainCategory{player.MainCategoryMixto}
	roster := []seedPlayer{
		{"Lucía Fernández", append([]player.MainCategory{player.MainCategoryFemenino}, mixto...), player.SubCategoryIntermedio, player.PositionSetter, player.Stats{Attack: 6, Defense: 7, Block: 5, Pass: 9}, 14},
		{"Martín Gómez", append([]player.MainCategory{player.MainCategoryMasculino}, mixto...), player.SubCategoryAvanzado, player.PositionOutsideHitter, player.Stats{Attack: 9, Defense: 6, Block: 7, Pass: 6}, 10},
		{"Sofía Ramírez", append([]player.MainCategory{player.MainCategoryFemenino}, mixto...), player.SubCategoryIntermedio, player.PositionLibero, player.Stats{Attack: 3, Defense: 9, Block: 2, Pass: 9}, 8},
		{"Diego Torres", append([]player.MainCategory{player.MainCategoryMasculino}, mixto...), player.SubCategoryAvanzado, player.PositionMiddleBlocker, player.Stats{Attack: 7, Defense: 5, Block: 9, Pass: 5}, 6},
		{"Valentina Ruiz", mixto, player.SubCategoryBasico, player.PositionOppositeHitter, player.Stats{Attack: 8, Defense: 5, Block: 6, Pass: 5}, 4},
		{"Tomás Herrera", mixto, player.SubCategoryIntermedio, player.PositionMiddleBlocker, player.Stats{Attack: 6, Defense: 5, Block: 8, Pass: 4}, 3},
		{"Camila Díaz", append([]player.MainCategory{player.MainCategoryFemenino}, mixto...), player.SubCategoryIntermedio, player.PositionOutsideHitter, player.Stats{Attack: 7, Defense: 6, Block: 5, Pass: 7}, 1},
		{"Joaquín López", []player.MainCategory{player.MainCategoryMasculino}, player.SubCategoryIntermedio, player.PositionSetter, player.Stats{Attack: 5, Defense: 6, Block: 4, Pass: 8}, 0},
	}

	ds := Dataset{
		Coaches: []coach.Coach{
			{ID: SeedCoachID, FirstName: "Laura", LastName: "Pérez", Document: "30111222"},
		},
	}

	memberIDs := make([]string, 0, 6)
	for i, sp := range roster {
		id := fmt.Sprintf("player-demo-%02d", i+1)
		joined := now.AddDate(0, -sp.joinedAgo, 0)
		p := player.Player{
			ID:             id,
			Name:           sp.name,
			Document:       fmt.Sprintf("4000%04d", i+1),
			JoinDate:       joined,
			BirthDate:      time.Date(1995+i, time.Month(i%12+1), 10, 0, 0, 0, 0, time.UTC),
			MainCategories: sp.main,
			SubCategory:    sp.sub,
			Position:       sp.position,
			StatsHistory: []player.StatsRecord{
				{ID: id + "-stats-01", Date: joined, Stats: sp.stats},
			},
		}
		if sp.joinedAgo > 1 {
			paid := now.AddDate(0, -(i % 4), 0)
			p.LastPaymentDate = &paid
		}
		ds.Players = append(ds.Players, p)
		if p.HasMainCategory(player.MainCategoryMixto) && len(memberIDs) < cap(memberIDs) {
			memberIDs = append(memberIDs, id)
		}
	}

	ds.Teams = []team.Team{
		{
			ID:           SeedTeamID,
			Name:         "Halcones Mixto",
			MainCategory: player.MainCategoryMixto,
			SubCategory:  player.SubCategoryIntermedio,
			PlayerIDs:    memberIDs,
			Tournament:   "Liga Regional",
			CoachID:      SeedCoachID,
		},
	}

	return ds
}
