package application

import "fmt"

// Status is the closed lifecycle state of a shift.
type Status string

const (
	// StatusScheduled is the initial state of a newly created shift.
	StatusScheduled Status = "scheduled"
	// StatusConfirmed indicates the staff member has acknowledged the shift.
	StatusConfirmed Status = "confirmed"
	// StatusCompleted indicates the shift was worked. Terminal.
	StatusCompleted Status = "completed"
	// StatusCancelled indicates the shift was called off. Terminal.
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates the wire representation of a status.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(value), nil
	default:
		return "", fmt.Errorf("application: invalid status %q", value)
	}
}

// Terminal reports whether no further transitions leave the state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the forward edge set of the status machine:
// scheduled -> confirmed -> completed, with cancelled reachable from any
// non-terminal state. Bulk operations bypass this table through the explicit
// force path.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether the status machine permits moving a shift
// from one state to another. A state may always be restated to itself.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
