package scheduling

import (
	"testing"
	"time"
)

func TestBuildMonth(t *testing.T) {
	t.Parallel()

	t.Run("pads the first week with blank cells", func(t *testing.T) {
		t.Parallel()

		// 2026-01-01 is a Thursday, so four blanks precede it.
		cells := BuildMonth(2026, time.January, nil, MonthOptions{})
		if len(cells) != 4+31 {
			t.Fatalf("expected 35 cells, got %d", len(cells))
		}
		for i := 0; i < 4; i++ {
			if cells[i].Day != 0 {
				t.Fatalf("expected cell %d to be blank, got day %d", i, cells[i].Day)
			}
		}
		if cells[4].Day != 1 || cells[4].Date != "2026-01-01" {
			t.Fatalf("expected first day cell 2026-01-01, got %+v", cells[4])
		}
		if last := cells[len(cells)-1]; last.Day != 31 || last.Date != "2026-01-31" {
			t.Fatalf("expected last cell 2026-01-31, got %+v", last)
		}
	})

	t.Run("a month starting on Sunday has no blanks", func(t *testing.T) {
		t.Parallel()

		// 2026-02-01 is a Sunday.
		cells := BuildMonth(2026, time.February, nil, MonthOptions{})
		if len(cells) != 28 {
			t.Fatalf("expected 28 cells, got %d", len(cells))
		}
		if cells[0].Day != 1 {
			t.Fatalf("expected the grid to start on day 1, got %d", cells[0].Day)
		}
	})

	t.Run("buckets shifts by date and sorts by start then id", func(t *testing.T) {
		t.Parallel()

		shifts := []Shift{
			{ID: "b", Date: "2026-01-05", StartMinutes: 9 * 60, EndMinutes: 12 * 60},
			{ID: "a", Date: "2026-01-05", StartMinutes: 9 * 60, EndMinutes: 12 * 60},
			{ID: "c", Date: "2026-01-05", StartMinutes: 7 * 60, EndMinutes: 9 * 60},
			{ID: "d", Date: "2026-01-06", StartMinutes: 8 * 60, EndMinutes: 16 * 60},
		}

		cells := BuildMonth(2026, time.January, shifts, MonthOptions{})
		day5 := cells[4+4] // four blanks, then days 1-4
		if day5.Date != "2026-01-05" {
			t.Fatalf("expected day 5 cell, got %s", day5.Date)
		}

		order := []string{"c", "a", "b"}
		if len(day5.Shifts) != 3 {
			t.Fatalf("expected 3 shifts on day 5, got %d", len(day5.Shifts))
		}
		for i, id := range order {
			if day5.Shifts[i].ID != id {
				t.Fatalf("position %d: expected %s, got %s", i, id, day5.Shifts[i].ID)
			}
		}
	})

	t.Run("collapses overflow beyond the inline cap", func(t *testing.T) {
		t.Parallel()

		shifts := []Shift{
			{ID: "a", Date: "2026-01-05", StartMinutes: 6 * 60, EndMinutes: 10 * 60},
			{ID: "b", Date: "2026-01-05", StartMinutes: 10 * 60, EndMinutes: 14 * 60},
			{ID: "c", Date: "2026-01-05", StartMinutes: 14 * 60, EndMinutes: 18 * 60},
			{ID: "d", Date: "2026-01-05", StartMinutes: 18 * 60, EndMinutes: 22 * 60},
		}

		cells := BuildMonth(2026, time.January, shifts, MonthOptions{})
		day5 := cells[8]
		if len(day5.Inline) != MaxInlineShifts {
			t.Fatalf("expected %d inline shifts, got %d", MaxInlineShifts, len(day5.Inline))
		}
		if day5.MoreCount != 2 {
			t.Fatalf("expected overflow of 2, got %d", day5.MoreCount)
		}
		if len(day5.Shifts) != 4 {
			t.Fatalf("expected the full bucket to stay available, got %d", len(day5.Shifts))
		}
	})

	t.Run("flags today, selection and drag target", func(t *testing.T) {
		t.Parallel()

		cells := BuildMonth(2026, time.January, nil, MonthOptions{
			Today:        "2026-01-10",
			SelectedDate: "2026-01-11",
			DragOverDate: "2026-01-12",
		})

		var today, selected, dragOver int
		for _, cell := range cells {
			if cell.IsToday {
				today = cell.Day
			}
			if cell.IsSelected {
				selected = cell.Day
			}
			if cell.IsDragOver {
				dragOver = cell.Day
			}
		}
		if today != 10 || selected != 11 || dragOver != 12 {
			t.Fatalf("expected flags on days 10/11/12, got %d/%d/%d", today, selected, dragOver)
		}
	})
}
