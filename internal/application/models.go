package application

import "time"

// Shift represents a persisted staff assignment. Date is a YYYY-MM-DD string
// with no time zone component; times are minutes since midnight. Version is
// the optimistic concurrency token carried back by clients on updates.
type Shift struct {
	ID           string
	TenantID     string
	StaffID      string
	StaffName    string
	Date         string
	StartMinutes int
	EndMinutes   int
	Position     string
	Department   string
	Location     string
	Notes        string
	Status       Status
	HourlyRate   float64
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Staff represents a staff directory entry exposed to the scheduling core.
type Staff struct {
	ID          string
	DisplayName string
	Position    string
	Department  string
}

// ShiftInput captures caller provided shift fields. Start and End are
// zero-padded HH:MM wall-clock strings; they are normalized to minutes before
// any comparison.
type ShiftInput struct {
	StaffID    string
	Date       string
	Start      string
	End        string
	Position   string
	Department string
	Location   string
	Notes      string
	Status     string
	HourlyRate float64
}

// UpdateShiftParams wraps the data required to update an existing shift.
// Version carries the client's concurrency token; zero means "use current".
// ForceStatus bypasses the transition table, the explicit admin override used
// by bulk operations.
type UpdateShiftParams struct {
	ShiftID     string
	Version     int64
	Input       ShiftInput
	ForceStatus bool
}

// RecurrenceInput captures a recurrence form submission. Weekdays uses the
// 0-6 Sunday-start convention. EndDate is optional; the expander applies its
// default window when absent.
type RecurrenceInput struct {
	Frequency string
	Interval  int
	Weekdays  []int
	EndDate   string
}

// ShiftFilter narrows the in-memory shift listing. Search matches staff name,
// position and department case-insensitively; Department and Status are
// equality filters.
type ShiftFilter struct {
	Search     string
	Department string
	Status     string
}

// BatchResult reports the per-member outcome of a bulk operation so partial
// failure is visible and retryable rather than silently dropped.
type BatchResult struct {
	Succeeded []string
	Failed    []BatchFailure
}

// BatchFailure names one bulk member that could not be processed.
type BatchFailure struct {
	ShiftID string
	Reason  string
}

// RecurringCreateResult reports the outcome of expanding and persisting a
// recurring pattern. Earlier occurrences are not rolled back when a later
// one fails.
type RecurringCreateResult struct {
	Created []Shift
	Failed  []OccurrenceFailure
}

// OccurrenceFailure names one generated occurrence that could not be created.
type OccurrenceFailure struct {
	Date   string
	Reason string
}
