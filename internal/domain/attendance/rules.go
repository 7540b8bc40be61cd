package attendance

import (
	"errors"
	"time"
)

var (
	ErrInvalidStatus = errors.New("invalid attendance status")
	ErrInvalidDay    = errors.New("invalid attendance day")
)

// StatusFor resolves the status of a player on day, Pending when nothing was
// recorded.
func StatusFor(records []Record, playerID string, day time.Time) Status {
	day = NormalizeDay(day)
	for _, r := range records {
		if r.PlayerID == playerID && r.Day.Equal(day) {
			return r.Status
		}
	}
	return StatusPending
}

// PresentCounts counts Presente records per player.
func PresentCounts(records []Record) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		if r.Status == StatusPresent {
			out[r.PlayerID]++
		}
	}
	return out
}

// DayEntry is one line of the attendance sheet for a day.
type DayEntry struct {
	PlayerID string
	Status   Status
}

// Sheet lists every player with their status on day, in the given order.
func Sheet(playerIDs []string, records []Record, day time.Time) []DayEntry {
	day = NormalizeDay(day)
	byPlayer := make(map[string]Status, len(records))
	for _, r := range records {
		if r.Day.Equal(day) {
			byPlayer[r.PlayerID] = r.Status
		}
	}

	out := make([]DayEntry, 0, len(playerIDs))
	for _, id := range playerIDs {
		status, ok := byPlayer[id]
		if !ok {
			status = StatusPending
		}
		out = append(out, DayEntry{PlayerID: id, Status: status})
	}
	return out
}

// PresentRate is the rounded percentage of players marked present on day.
func PresentRate(totalPlayers int, records []Record, day time.Time) int {
	if totalPlayers <= 0 {
		return 0
	}
	day = NormalizeDay(day)
	present := 0
	for _, r := range records {
		if r.Status == StatusPresent && r.Day.Equal(day) {
			present++
		}
	}
	return (present*100 + totalPlayers/2) / totalPlayers
}
