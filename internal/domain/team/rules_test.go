package team

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/player"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%d", i+1)
	}
	return out
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name      string
		playerIDs []string
		targetErr error
	}{
		{name: "five is too small", playerIDs: ids(5), targetErr: ErrRosterTooSmall},
		{name: "six is accepted", playerIDs: ids(6)},
		{name: "fourteen is accepted", playerIDs: ids(14)},
		{name: "fifteen is too large", playerIDs: ids(15), targetErr: ErrRosterTooLarge},
		{name: "duplicate player", playerIDs: append(ids(6), "p1"), targetErr: ErrDuplicateRosterPlayer},
		{name: "blank player", playerIDs: append(ids(6), " "), targetErr: ErrBlankRosterPlayer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRoster(tc.playerIDs)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		main      player.MainCategory
		sub       player.SubCategory
		targetErr error
	}{
		{main: player.MainCategoryFemenino, sub: player.SubCategoryIntermedio},
		{main: player.MainCategoryFemenino, sub: player.SubCategoryAvanzado, targetErr: ErrIncompatibleSubCategory},
		{main: player.MainCategoryFemenino, sub: player.SubCategoryBasico, targetErr: ErrIncompatibleSubCategory},
		{main: player.MainCategoryMasculino, sub: player.SubCategoryAvanzado},
		{main: player.MainCategoryMasculino, sub: player.SubCategoryIntermedio},
		{main: player.MainCategoryMasculino, sub: player.SubCategoryBasico, targetErr: ErrIncompatibleSubCategory},
		{main: player.MainCategoryMixto, sub: player.SubCategoryBasico},
		{main: player.MainCategoryMixto, sub: player.SubCategoryAvanzado},
		{main: "Juvenil", sub: player.SubCategoryBasico, targetErr: ErrInvalidMainCategory},
	}

	for _, tc := range tests {
		err := ValidateCategory(tc.main, tc.sub)
		if tc.targetErr == nil && err != nil {
			t.Fatalf("%s/%s: expected no error, got %v", tc.main, tc.sub, err)
		}
		if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
			t.Fatalf("%s/%s: expected %v, got %v", tc.main, tc.sub, tc.targetErr, err)
		}
	}

	if got := AllowedSubCategories(player.MainCategoryMixto); len(got) != 3 {
		t.Fatalf("expected three tiers for mixto, got %v", got)
	}
}

func TestCheckEligibility(t *testing.T) {
	versatile := player.Player{ID: "p1", MainCategories: []player.MainCategory{player.MainCategoryMasculino, player.MainCategoryMixto}}
	womenOnly := player.Player{ID: "p2", MainCategories: []player.MainCategory{player.MainCategoryFemenino}}

	teams := []Team{
		{ID: "t-masc", MainCategory: player.MainCategoryMasculino, PlayerIDs: []string{"p1"}},
	}

	if err := CheckEligibility(versatile, player.MainCategoryMasculino, "", teams); !errors.Is(err, ErrPlayerOnOtherTeam) {
		t.Fatalf("expected player on other masculino team to be rejected, got %v", err)
	}
	if err := CheckEligibility(versatile, player.MainCategoryMasculino, "t-masc", teams); err != nil {
		t.Fatalf("expected player to stay eligible for own team, got %v", err)
	}
	if err := CheckEligibility(versatile, player.MainCategoryMixto, "", teams); err != nil {
		t.Fatalf("expected masculino member to be eligible for mixto, got %v", err)
	}
	if err := CheckEligibility(womenOnly, player.MainCategoryMixto, "", teams); !errors.Is(err, ErrPlayerLacksCategory) {
		t.Fatalf("expected missing category to be rejected, got %v", err)
	}
}

func TestEligibleCandidatesAndRanking(t *testing.T) {
	stats := func(total int) []player.StatsRecord {
		return []player.StatsRecord{{ID: "r", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Stats: player.Stats{Attack: total}}}
	}
	players := []player.Player{
		{ID: "a", MainCategories: []player.MainCategory{player.MainCategoryMixto}, StatsHistory: stats(10)},
		{ID: "b", MainCategories: []player.MainCategory{player.MainCategoryMixto}, StatsHistory: stats(30)},
		{ID: "c", MainCategories: []player.MainCategory{player.MainCategoryMixto}, StatsHistory: stats(30)},
		{ID: "d", MainCategories: []player.MainCategory{player.MainCategoryFemenino}, StatsHistory: stats(40)},
	}
	present := map[string]int{"a": 5, "b": 1, "c": 5}

	candidates := EligibleCandidates(players, player.MainCategoryMixto, "", nil, present)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}

	RankCandidatesByAttendance(candidates)
	if got := []string{candidates[0].Player.ID, candidates[1].Player.ID, candidates[2].Player.ID}; got[0] != "a" || got[1] != "c" || got[2] != "b" {
		t.Fatalf("unexpected attendance order: %v", got)
	}

	RankCandidatesByScore(candidates)
	if got := []string{candidates[0].Player.ID, candidates[1].Player.ID, candidates[2].Player.ID}; got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("unexpected score order: %v", got)
	}
}

func TestGroupByTournament(t *testing.T) {
	teams := []Team{
		{ID: "t1", Tournament: "Liga Norte"},
		{ID: "t2", Tournament: ""},
		{ID: "t3", Tournament: "Copa Sur"},
		{ID: "t4", Tournament: "Liga Norte"},
	}

	groups := GroupByTournament(teams)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Tournament != "Liga Norte" || len(groups[0].Teams) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Tournament != "Copa Sur" || groups[1].Teams[0].ID != "t3" {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}
