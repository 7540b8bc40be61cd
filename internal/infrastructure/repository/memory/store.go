package memory

import (
	"sync"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
)

// Store holds every entity table behind one lock so that writes spanning
// several tables, like deleting a player with its attendance and
// memberships, apply as a unit.
type Store struct {
	mu sync.RWMutex

	players     map[string]player.Player
	playerOrder []string

	teams     map[string]team.Team
	teamOrder []string

	attendance map[attendanceKey]attendance.Record

	coaches    map[string]coach.Coach
	coachOrder []string
	settings   *clubsettings.Settings
}

type attendanceKey struct {
	playerID string
	day      string
}

func NewStore() *Store {
	return &Store{
		players:    make(map[string]player.Player),
		teams:      make(map[string]team.Team),
		attendance: make(map[attendanceKey]attendance.Record),
		coaches:    make(map[string]coach.Coach),
	}
}

// Dataset is a bulk load used for local runs and tests.
type Dataset struct {
	Players     []player.Player
	Teams       []team.Team
	Coaches     []coach.Coach
	Attendances []attendance.Record
}

func NewStoreWithData(ds Dataset) *Store {
	s := NewStore()
	for _, p := range ds.Players {
		s.players[p.ID] = clonePlayer(p)
		s.playerOrder = append(s.playerOrder, p.ID)
	}
	for _, t := range ds.Teams {
		s.teams[t.ID] = cloneTeam(t)
		s.teamOrder = append(s.teamOrder, t.ID)
	}
	for _, c := range ds.Coaches {
		s.coaches[c.ID] = c
		s.coachOrder = append(s.coachOrder, c.ID)
	}
	for _, rec := range ds.Attendances {
		rec.Day = attendance.NormalizeDay(rec.Day)
		s.attendance[keyOf(rec)] = rec
	}
	return s
}

func keyOf(rec attendance.Record) attendanceKey {
	return attendanceKey{playerID: rec.PlayerID, day: attendance.FormatDay(rec.Day)}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func clonePlayer(p player.Player) player.Player {
	copied := p
	copied.MainCategories = append([]player.MainCategory(nil), p.MainCategories...)
	copied.StatsHistory = append([]player.StatsRecord(nil), p.StatsHistory...)
	if p.LastPaymentDate != nil {
		paid := *p.LastPaymentDate
		copied.LastPaymentDate = &paid
	}
	return copied
}

func cloneTeam(t team.Team) team.Team {
	copied := t
	copied.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	return copied
}
