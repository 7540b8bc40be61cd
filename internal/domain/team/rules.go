package team

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/voley-club/internal/domain/player"
)

var (
	ErrRosterTooSmall          = errors.New("roster below minimum size")
	ErrRosterTooLarge          = errors.New("roster above maximum size")
	ErrDuplicateRosterPlayer   = errors.New("duplicate player in roster")
	ErrBlankRosterPlayer       = errors.New("blank player id in roster")
	ErrInvalidMainCategory     = errors.New("invalid team main category")
	ErrIncompatibleSubCategory = errors.New("sub category not allowed for main category")
	ErrPlayerLacksCategory     = errors.New("player does not hold the team main category")
	ErrPlayerOnOtherTeam       = errors.New("player already plays for another team in this main category")
)

const (
	MinRosterSize = 6
	MaxRosterSize = 14
)

var allowedSubCategories = map[player.MainCategory][]player.SubCategory{
	player.MainCategoryFemenino:  {player.SubCategoryIntermedio},
	player.MainCategoryMasculino: {player.SubCategoryAvanzado, player.SubCategoryIntermedio},
	player.MainCategoryMixto:     {player.SubCategoryAvanzado, player.SubCategoryIntermedio, player.SubCategoryBasico},
}

// AllowedSubCategories lists the skill tiers a team of main may be created in.
func AllowedSubCategories(main player.MainCategory) []player.SubCategory {
	return append([]player.SubCategory(nil), allowedSubCategories[main]...)
}

func ValidateCategory(main player.MainCategory, sub player.SubCategory) error {
	allowed, ok := allowedSubCategories[main]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMainCategory, main)
	}
	for _, candidate := range allowed {
		if candidate == sub {
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrIncompatibleSubCategory, main, sub)
}

func ValidateRoster(playerIDs []string) error {
	if len(playerIDs) < MinRosterSize {
		return fmt.Errorf("%w: minimum %d, got %d", ErrRosterTooSmall, MinRosterSize, len(playerIDs))
	}
	if len(playerIDs) > MaxRosterSize {
		return fmt.Errorf("%w: maximum %d, got %d", ErrRosterTooLarge, MaxRosterSize, len(playerIDs))
	}

	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if strings.TrimSpace(id) == "" {
			return ErrBlankRosterPlayer
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRosterPlayer, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// CheckEligibility reports why p cannot join a team of main, if at all.
// teamID is the team being edited and is empty on creation; membership of
// that team does not count against the player.
func CheckEligibility(p player.Player, main player.MainCategory, teamID string, teams []Team) error {
	if !p.HasMainCategory(main) {
		return fmt.Errorf("%w: player=%s category=%s", ErrPlayerLacksCategory, p.ID, main)
	}
	for _, t := range teams {
		if t.ID == teamID || t.MainCategory != main {
			continue
		}
		if t.HasPlayer(p.ID) {
			return fmt.Errorf("%w: player=%s team=%s", ErrPlayerOnOtherTeam, p.ID, t.ID)
		}
	}
	return nil
}

func IsEligible(p player.Player, main player.MainCategory, teamID string, teams []Team) bool {
	return CheckEligibility(p, main, teamID, teams) == nil
}

// Candidate is an eligible player with the figures used to order the pick list.
type Candidate struct {
	Player       player.Player
	PresentCount int
	TotalScore   int
}

// EligibleCandidates filters players down to those who may join the team.
func EligibleCandidates(players []player.Player, main player.MainCategory, teamID string, teams []Team, presentCounts map[string]int) []Candidate {
	out := make([]Candidate, 0, len(players))
	for _, p := range players {
		if !IsEligible(p, main, teamID, teams) {
			continue
		}
		out = append(out, Candidate{
			Player:       p,
			PresentCount: presentCounts[p.ID],
			TotalScore:   player.TotalScore(p),
		})
	}
	return out
}

// RankCandidatesByAttendance orders by present count, highest first. Used
// when a team is being created.
func RankCandidatesByAttendance(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PresentCount > candidates[j].PresentCount
	})
}

// RankCandidatesByScore orders by total latest score, highest first. Used
// when an existing team is being edited.
func RankCandidatesByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})
}

// TournamentGroup holds the teams entered in one tournament.
type TournamentGroup struct {
	Tournament string
	Teams      []Team
}

// GroupByTournament groups teams with a tournament name, in order of first
// appearance.
func GroupByTournament(teams []Team) []TournamentGroup {
	index := make(map[string]int)
	var groups []TournamentGroup
	for _, t := range teams {
		name := strings.TrimSpace(t.Tournament)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, TournamentGroup{Tournament: name})
		}
		groups[i].Teams = append(groups[i].Teams, t)
	}
	return groups
}
