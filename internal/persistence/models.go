package persistence

import "time"

// Shift represents a staff assignment stored in persistence. Date is a
// YYYY-MM-DD string with no time zone component; start and end are wall-clock
// minutes since midnight. Version is an optimistic concurrency token bumped
// on every successful update.
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
	Status       string
	HourlyRate   float64
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Staff represents a staff directory entry scoped to a tenant.
type Staff struct {
	ID          string
	TenantID    string
	DisplayName string
	Position    string
	Department  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
