package recurrence

import (
	"errors"
	"strings"
	"time"
)

// Frequency represents supported recurrence intervals.
type Frequency int

const (
	// FrequencyUnspecified indicates the pattern frequency is not set.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily generates an occurrence at every cursor step.
	FrequencyDaily
	// FrequencyWeekly generates occurrences only on the selected weekdays.
	FrequencyWeekly
)

// MaxOccurrences is the hard ceiling on generated occurrences. It halts the
// walk even when the end date has not been reached, bounding misconfigured
// patterns such as a daily pattern with a distant end date.
const MaxOccurrences = 50

// DefaultWindowDays is the generation window applied when a pattern carries
// no end date: occurrences run through anchor+30 days.
const DefaultWindowDays = 30

const dateLayout = "2006-01-02"

var (
	// ErrInvalidFrequency indicates the pattern frequency is not supported.
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")
	// ErrInvalidInterval indicates the step between occurrences is below one.
	ErrInvalidInterval = errors.New("recurrence: interval must be at least 1")
	// ErrInvalidDate indicates an anchor or end date is not a calendar date.
	ErrInvalidDate = errors.New("recurrence: invalid date")
)

// Pattern describes a recurrence configuration for a shift template. It is a
// transient value: constructed from form input, consumed once, discarded.
type Pattern struct {
	Frequency Frequency
	Interval  int
	Weekdays  []time.Weekday
	EndDate   string
}

// ParseFrequency maps the wire representation of a frequency onto the enum.
func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	default:
		return FrequencyUnspecified, ErrInvalidFrequency
	}
}

// Expand walks a cursor from the anchor date to the pattern's end date
// (inclusive) in steps of Interval days and returns the ordered occurrence
// dates.
//
// Semantics:
//   - Daily patterns emit one occurrence per step.
//   - Weekly patterns emit only when the cursor weekday is selected; the
//     cursor still advances by Interval regardless of emission, so an empty
//     weekday set yields zero occurrences.
//   - An anchor past the end date yields an empty result.
//   - Generation stops at MaxOccurrences even when the window is unfinished.
func Expand(anchor string, pattern Pattern) ([]string, error) {
	start, err := time.Parse(dateLayout, anchor)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if pattern.Interval < 1 {
		return nil, ErrInvalidInterval
	}
	if pattern.Frequency != FrequencyDaily && pattern.Frequency != FrequencyWeekly {
		return nil, ErrInvalidFrequency
	}

	end := start.AddDate(0, 0, DefaultWindowDays)
	if strings.TrimSpace(pattern.EndDate) != "" {
		end, err = time.Parse(dateLayout, pattern.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	if start.After(end) {
		return nil, nil
	}

	weekdaySet := make(map[time.Weekday]struct{}, len(pattern.Weekdays))
	for _, day := range pattern.Weekdays {
		weekdaySet[day] = struct{}{}
	}

	dates := make([]string, 0)
	for cursor := start; !cursor.After(end) && len(dates) < MaxOccurrences; cursor = cursor.AddDate(0, 0, pattern.Interval) {
		if pattern.Frequency == FrequencyWeekly {
			if _, ok := weekdaySet[cursor.Weekday()]; !ok {
				continue
			}
		}
		dates = append(dates, cursor.Format(dateLayout))
	}

	return dates, nil
}
