package player

import (
	"fmt"
	"strings"
	"time"
)

// MainCategory is the broad cohort a player or team competes in.
type MainCategory string

const (
	MainCategoryMasculino MainCategory = "Masculino"
	MainCategoryFemenino  MainCategory = "Femenino"
	MainCategoryMixto     MainCategory = "Mixto"
)

var AllMainCategories = []MainCategory{
	MainCategoryMasculino,
	MainCategoryFemenino,
	MainCategoryMixto,
}

func (c MainCategory) Valid() bool {
	for _, candidate := range AllMainCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// SubCategory is the skill tier of a player or team.
type SubCategory string

const (
	SubCategoryBasico     SubCategory = "Basico"
	SubCategoryIntermedio SubCategory = "Intermedio"
	SubCategoryAvanzado   SubCategory = "Avanzado"
)

var AllSubCategories = []SubCategory{
	SubCategoryBasico,
	SubCategoryIntermedio,
	SubCategoryAvanzado,
}

func (c SubCategory) Valid() bool {
	for _, candidate := range AllSubCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// Position is the on-court role of a player.
type Position string

const (
	PositionSetter         Position = "Setter"
	PositionLibero         Position = "Libero"
	PositionMiddleBlocker  Position = "MiddleBlocker"
	PositionOutsideHitter  Position = "OutsideHitter"
	PositionOppositeHitter Position = "OppositeHitter"
)

var AllPositions = []Position{
	PositionSetter,
	PositionLibero,
	PositionMiddleBlocker,
	PositionOutsideHitter,
	PositionOppositeHitter,
}

func (p Position) Valid() bool {
	for _, candidate := range AllPositions {
		if p == candidate {
			return true
		}
	}
	return false
}

const (
	MinStatValue = 0
	MaxStatValue = 100
)

// Stats holds the four skill scores of one assessment.
type Stats struct {
	Attack  int
	Defense int
	Block   int
	Pass    int
}

func (s Stats) Total() int {
	return s.Attack + s.Defense + s.Block + s.Pass
}

func (s Stats) Validate() error {
	values := map[string]int{
		"attack":  s.Attack,
		"defense": s.Defense,
		"block":   s.Block,
		"pass":    s.Pass,
	}
	for _, name := range []string{"attack", "defense", "block", "pass"} {
		v := values[name]
		if v < MinStatValue || v > MaxStatValue {
			return fmt.Errorf("%w: %s=%d", ErrStatOutOfRange, name, v)
		}
	}
	return nil
}

// StatsRecord is one dated skill assessment.
type StatsRecord struct {
	ID    string
	Date  time.Time
	Stats Stats
}

// Player is a registered club member.
type Player struct {
	ID              string
	Name            string
	Document        string
	Address         string
	Phone           string
	JoinDate        time.Time
	BirthDate       time.Time
	AvatarURL       string
	MainCategories  []MainCategory
	SubCategory     SubCategory
	Position        Position
	StatsHistory    []StatsRecord
	LastPaymentDate *time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.Document) == "" {
		return fmt.Errorf("player document is required")
	}
	if len(p.MainCategories) == 0 {
		return ErrNoMainCategory
	}
	seen := make(map[MainCategory]struct{}, len(p.MainCategories))
	for _, c := range p.MainCategories {
		if !c.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidMainCategory, c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMainCategory, c)
		}
		seen[c] = struct{}{}
	}
	if !p.SubCategory.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSubCategory, p.SubCategory)
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p.Position)
	}
	if len(p.StatsHistory) == 0 {
		return ErrEmptyStatsHistory
	}
	for _, rec := range p.StatsHistory {
		if err := rec.Stats.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (p Player) HasMainCategory(c MainCategory) bool {
	for _, held := range p.MainCategories {
		if held == c {
			return true
		}
	}
	return false
}
