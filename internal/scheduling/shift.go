package scheduling

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for shift dates. Dates carry no
// time zone component; a shift belongs to the resort's local calendar day.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds the wall-clock minute values carried by a shift.
const MinutesPerDay = 24 * 60

// Shift is the minimal view of a staff assignment consumed by the conflict
// detector and the calendar grid builder. Times are minutes since midnight.
type Shift struct {
	ID           string
	StaffID      string
	StaffName    string
	Date         string
	StartMinutes int
	EndMinutes   int
	Position     string
	Department   string
	Status       string
}

// ParseClock converts a zero-padded HH:MM string into minutes since midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("scheduling: invalid clock value %q", value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatClock renders minutes since midnight as a zero-padded HH:MM string.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate validates a calendar date in DateLayout form.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("scheduling: invalid date %q", value)
	}
	return parsed, nil
}
