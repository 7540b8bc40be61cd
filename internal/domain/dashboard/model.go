package dashboard

import (
	"sort"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/player"
)

// TopAthleteCount is the size of the dashboard ranking.
const TopAthleteCount = 5

// MonthBucketLayout labels monthly join buckets.
const MonthBucketLayout = "2006-01"

// Summary carries the headline figures of the club dashboard.
type Summary struct {
	TotalPlayers        int
	TotalTeams          int
	TodayAttendanceRate int
}

func Summarize(players []player.Player, totalTeams int, records []attendance.Record, today time.Time) Summary {
	return Summary{
		TotalPlayers:        len(players),
		TotalTeams:          totalTeams,
		TodayAttendanceRate: attendance.PresentRate(len(players), records, today),
	}
}

// RankedAthlete is a player with their latest total score.
type RankedAthlete struct {
	Player     player.Player
	TotalScore int
}

// TopAthletes ranks by total latest score, highest first, keeping input order
// between equal scores, and keeps the first n.
func TopAthletes(players []player.Player, n int) []RankedAthlete {
	ranked := make([]RankedAthlete, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, RankedAthlete{Player: p, TotalScore: player.TotalScore(p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthBucket counts players who joined in one calendar month.
type MonthBucket struct {
	Month time.Time
	Count int
}

func (b MonthBucket) Label() string {
	return b.Month.Format(MonthBucketLayout)
}

// MonthlyJoinCounts returns the twelve calendar months ending at ref's month,
// oldest first. Join dates are bucketed in ref's location.
func MonthlyJoinCounts(players []player.Player, ref time.Time) []MonthBucket {
	const months = 12
	loc := ref.Location()
	last := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	first := last.AddDate(0, -(months - 1), 0)

	buckets := make([]MonthBucket, months)
	for i := range buckets {
		buckets[i].Month = first.AddDate(0, i, 0)
	}

	for _, p := range players {
		join := p.JoinDate.In(loc)
		offset := (join.Year()-first.Year())*12 + int(join.Month()) - int(first.Month())
		if offset < 0 || offset >= months {
			continue
		}
		buckets[offset].Count++
	}
	return buckets
}
