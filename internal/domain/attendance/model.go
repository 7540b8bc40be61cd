package attendance

import (
	"fmt"
	"strings"
	"time"
)

// Status is the recorded presence of a player on a training day.
type Status string

const (
	StatusPresent Status = "Presente"
	StatusAbsent  Status = "Ausente"
	// StatusPending is derived, never stored: no record exists for the day.
	StatusPending Status = "Pending"
)

// Recordable reports whether s may be written to the store.
func (s Status) Recordable() bool {
	return s == StatusPresent || s == StatusAbsent
}

// DayLayout is the wire form of a calendar day.
const DayLayout = "2006-01-02"

// Record is the attendance of one player on one calendar day. The pair
// (PlayerID, Day) identifies it.
type Record struct {
	PlayerID string
	Day      time.Time
	Status   Status
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.PlayerID) == "" {
		return fmt.Errorf("attendance player id is required")
	}
	if !r.Status.Recordable() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, r.Status)
	}
	if !r.Day.Equal(NormalizeDay(r.Day)) {
		return fmt.Errorf("attendance day must be a date without time of day")
	}
	return nil
}

// NormalizeDay strips the time of day, keeping t's calendar date, and
// returns it as midnight UTC.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

func ParseDay(raw string) (time.Time, error) {
	day, err := time.Parse(DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, raw)
	}
	return day, nil
}
