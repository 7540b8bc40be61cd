package team

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/voley-club/internal/domain/player"
)

// Team is a club squad entered in one main category and skill tier.
type Team struct {
	ID                 string
	Name               string
	MainCategory       player.MainCategory
	SubCategory        player.SubCategory
	PlayerIDs          []string
	Tournament         string
	TournamentPosition string
	CoachID            string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if err := ValidateCategory(t.MainCategory, t.SubCategory); err != nil {
		return err
	}

	return ValidateRoster(t.PlayerIDs)
}

func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
