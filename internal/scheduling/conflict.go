package scheduling

// Conflict details an overlapping assignment that callers can present to
// users, either as a warning badge or a validation message.
type Conflict struct {
	WithShiftID  string
	StaffID      string
	StaffName    string
	Date         string
	StartMinutes int
	EndMinutes   int
}

// Overlaps reports whether two shifts occupy intersecting time ranges. The
// test is half-open on both sides: a shift ending at 14:00 does not overlap
// one starting at 14:00. Callers are responsible for scoping to staff/date.
func Overlaps(a, b Shift) bool {
	return a.StartMinutes < b.EndMinutes && a.EndMinutes > b.StartMinutes
}

// FindConflicts identifies every existing shift that collides with the
// candidate: same staff member, same date, overlapping time range. The
// candidate's own record is skipped by ID so edits do not conflict with
// themselves.
func FindConflicts(candidate Shift, existing []Shift) []Conflict {
	var conflicts []Conflict
	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.StaffID != candidate.StaffID || other.Date != candidate.Date {
			continue
		}
		if !Overlaps(candidate, other) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			WithShiftID:  other.ID,
			StaffID:      other.StaffID,
			StaffName:    other.StaffName,
			Date:         other.Date,
			StartMinutes: other.StartMinutes,
			EndMinutes:   other.EndMinutes,
		})
	}
	return conflicts
}

// HasConflict reports whether the candidate collides with any existing shift.
func HasConflict(candidate Shift, existing []Shift) bool {
	return len(FindConflicts(candidate, existing)) > 0
}
