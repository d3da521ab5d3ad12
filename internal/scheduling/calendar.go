package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// MaxInlineShifts caps how many shifts a calendar cell renders inline before
// collapsing the remainder into an overflow count. Display truncation only;
// the full day list stays available on the cell.
const MaxInlineShifts = 2

// Cell is one slot of the month grid: either a leading blank (Day == 0) that
// pads the first week to a Sunday-start layout, or a concrete calendar day
// with its bucketed shifts.
type Cell struct {
	Day        int
	Date       string
	Shifts     []Shift
	Inline     []Shift
	MoreCount  int
	IsToday    bool
	IsSelected bool
	IsDragOver bool
}

// MonthOptions carries the derived display state recomputed on every build.
// All fields are DateLayout strings; empty values disable the matching flag.
type MonthOptions struct {
	Today        string
	SelectedDate string
	DragOverDate string
}

// BuildMonth buckets shifts by calendar day and produces the grid consumed by
// the presentation layer: one blank cell per weekday offset before the 1st,
// then one cell per day of the month. Shifts within a cell are ordered by
// start time, ties broken by ID, so renders are deterministic.
func BuildMonth(year int, month time.Month, shifts []Shift, opts MonthOptions) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	byDate := make(map[string][]Shift)
	for _, shift := range shifts {
		byDate[shift.Date] = append(byDate[shift.Date], shift)
	}
	for _, bucket := range byDate {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].StartMinutes == bucket[j].StartMinutes {
				return bucket[i].ID < bucket[j].ID
			}
			return bucket[i].StartMinutes < bucket[j].StartMinutes
		})
	}

	cells := make([]Cell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		bucket := byDate[date]

		inline := bucket
		more := 0
		if len(bucket) > MaxInlineShifts {
			inline = bucket[:MaxInlineShifts]
			more = len(bucket) - MaxInlineShifts
		}

		cells = append(cells, Cell{
			Day:        day,
			Date:       date,
			Shifts:     bucket,
			Inline:     inline,
			MoreCount:  more,
			IsToday:    date == opts.Today,
			IsSelected: date == opts.SelectedDate,
			IsDragOver: date == opts.DragOverDate,
		})
	}

	return cells
}
