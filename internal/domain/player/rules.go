package player

import (
	"errors"
	"math"
	"sort"
	"time"
)

var (
	ErrNoMainCategory        = errors.New("at least one main category is required")
	ErrInvalidMainCategory   = errors.New("invalid main category")
	ErrDuplicateMainCategory = errors.New("duplicate main category")
	ErrInvalidSubCategory    = errors.New("invalid sub category")
	ErrInvalidPosition       = errors.New("invalid position")
	ErrStatOutOfRange        = errors.New("stat value out of range")
	ErrEmptyStatsHistory     = errors.New("stats history must not be empty")
	ErrDuplicateDocument     = errors.New("player document already registered")
	ErrUnknownPlayer         = errors.New("player does not exist")
)

// ExpelThresholdMonths is the debt from which a player may be expelled.
const ExpelThresholdMonths = 3

// OverdueMonths counts the unpaid monthly fee cycles of p as of today. The
// join month is free, and a payment inside today's month settles the cycle.
// Dates are compared as calendar months in today's location.
func OverdueMonths(p Player, today time.Time) int {
	loc := today.Location()
	join := p.JoinDate.In(loc)
	if join.After(today) {
		return 0
	}

	current := monthIndex(today)
	if monthIndex(join) == current {
		return 0
	}

	firstUnpaid := monthIndex(join) + 1
	if p.LastPaymentDate != nil {
		paid := p.LastPaymentDate.In(loc)
		if monthIndex(paid) == current {
			return 0
		}
		firstUnpaid = monthIndex(paid) + 1
	}
	if firstUnpaid > current {
		return 0
	}

	return current - firstUnpaid + 1
}

func CanExpel(p Player, today time.Time) bool {
	return OverdueMonths(p, today) >= ExpelThresholdMonths
}

// PaidInMonth reports whether the last payment falls in today's calendar month.
func PaidInMonth(p Player, today time.Time) bool {
	if p.LastPaymentDate == nil {
		return false
	}
	return monthIndex(p.LastPaymentDate.In(today.Location())) == monthIndex(today)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// LatestRecord returns the record with the greatest date. Records sharing that
// date are ordered by ID and the highest ID wins.
func LatestRecord(p Player) (StatsRecord, bool) {
	if len(p.StatsHistory) == 0 {
		return StatsRecord{}, false
	}

	latest := p.StatsHistory[0]
	for _, rec := range p.StatsHistory[1:] {
		if rec.Date.After(latest.Date) || (rec.Date.Equal(latest.Date) && rec.ID > latest.ID) {
			latest = rec
		}
	}
	return latest, true
}

// LatestStats is the stats of LatestRecord, or all zeros for an empty history.
func LatestStats(p Player) Stats {
	rec, ok := LatestRecord(p)
	if !ok {
		return Stats{}
	}
	return rec.Stats
}

func TotalScore(p Player) int {
	return LatestStats(p).Total()
}

// AverageStats is a per-skill mean rounded to one decimal place.
type AverageStats struct {
	Attack  float64
	Defense float64
	Block   float64
	Pass    float64
}

// PeerAverageStats averages the latest stats of every other player sharing
// p's position. ok is false when p has no peers.
func PeerAverageStats(p Player, all []Player) (AverageStats, bool) {
	var sum Stats
	peers := 0
	for _, other := range all {
		if other.ID == p.ID || other.Position != p.Position {
			continue
		}
		s := LatestStats(other)
		sum.Attack += s.Attack
		sum.Defense += s.Defense
		sum.Block += s.Block
		sum.Pass += s.Pass
		peers++
	}
	if peers == 0 {
		return AverageStats{}, false
	}

	n := float64(peers)
	return AverageStats{
		Attack:  roundOneDecimal(float64(sum.Attack) / n),
		Defense: roundOneDecimal(float64(sum.Defense) / n),
		Block:   roundOneDecimal(float64(sum.Block) / n),
		Pass:    roundOneDecimal(float64(sum.Pass) / n),
	}, true
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// StatsRange selects how far back the stats history view reaches.
type StatsRange string

const (
	StatsRangeQuarterly  StatsRange = "quarterly"
	StatsRangeSemiannual StatsRange = "semiannual"
	StatsRangeYearly     StatsRange = "yearly"
)

func (r StatsRange) Valid() bool {
	switch r {
	case StatsRangeQuarterly, StatsRangeSemiannual, StatsRangeYearly:
		return true
	default:
		return false
	}
}

func (r StatsRange) Start(now time.Time) time.Time {
	switch r {
	case StatsRangeSemiannual:
		return now.AddDate(0, -6, 0)
	case StatsRangeYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -3, 0)
	}
}

// StatsInRange returns the records dated on or after the range start, oldest first.
func StatsInRange(p Player, r StatsRange, now time.Time) []StatsRecord {
	start := r.Start(now)
	out := make([]StatsRecord, 0, len(p.StatsHistory))
	for _, rec := range p.StatsHistory {
		if !rec.Date.Before(start) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Age is the number of whole years between birthDate and today.
func Age(birthDate, today time.Time) int {
	if birthDate.IsZero() || birthDate.After(today) {
		return 0
	}
	years := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() || (today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		years--
	}
	return years
}

// Filter narrows a player listing. Empty fields match everything.
type Filter struct {
	MainCategory MainCategory
	SubCategory  SubCategory
}

func (f Filter) Match(p Player) bool {
	if f.MainCategory != "" && !p.HasMainCategory(f.MainCategory) {
		return false
	}
	if f.SubCategory != "" && p.SubCategory != f.SubCategory {
		return false
	}
	return true
}

func FilterPlayers(players []Player, f Filter) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
