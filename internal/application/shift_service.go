package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/resort-backoffice/internal/persistence"
	"github.com/example/resort-backoffice/internal/recurrence"
	"github.com/example/resort-backoffice/internal/scheduling"
)

// ShiftRepository captures the persistence interactions needed by the service.
type ShiftRepository interface {
	CreateShift(ctx context.Context, tenantID string, shift Shift) (Shift, error)
	GetShift(ctx context.Context, tenantID, id string) (Shift, error)
	UpdateShift(ctx context.Context, tenantID string, shift Shift, expectedVersion int64) (Shift, error)
	DeleteShift(ctx context.Context, tenantID, id string) error
	ListShifts(ctx context.Context, tenantID string) ([]Shift, error)
}

// StaffDirectory exposes the staff lookups used to populate pickers and to
// resolve a staff id to a display name at shift-creation time.
type StaffDirectory interface {
	GetStaff(ctx context.Context, tenantID, id string) (Staff, error)
	ListStaff(ctx context.Context, tenantID string) ([]Staff, error)
}

// maxShiftMinutes bounds a single shift's duration at twelve hours.
const maxShiftMinutes = 12 * 60

// ShiftService orchestrates validation, conflict detection, recurrence
// expansion and persistence for shift operations. Every method takes the
// tenant identifier explicitly; there is no ambient tenant state.
type ShiftService struct {
	shifts      ShiftRepository
	staff       StaffDirectory
	idGenerator func() string
	now         func() time.Time
}

// NewShiftService wires dependencies for shift operations.
func NewShiftService(shifts ShiftRepository, staff StaffDirectory, idGenerator func() string, now func() time.Time) *ShiftService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ShiftService{
		shifts:      shifts,
		staff:       staff,
		idGenerator: idGenerator,
		now:         now,
	}
}

// Create validates the submission and persists a single shift. All rule
// violations are accumulated into one ValidationError so the form can surface
// the complete list at once.
func (s *ShiftService) Create(ctx context.Context, tenantID string, input ShiftInput) (Shift, error) {
	if strings.TrimSpace(tenantID) == "" {
		return Shift{}, ErrTenantRequired
	}

	vErr := &ValidationError{}
	parsed := validateShiftCore(input, vErr)

	member, ok, err := s.resolveStaff(ctx, tenantID, input.StaffID, vErr)
	if err != nil {
		return Shift{}, err
	}

	if !vErr.HasErrors() {
		if err := s.checkConflicts(ctx, tenantID, "", input.StaffID, parsed, vErr); err != nil {
			return Shift{}, err
		}
	}

	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	status := parsed.status
	if status == "" {
		status = StatusScheduled
	}

	now := s.now()
	shift := Shift{
		ID:           s.idGenerator(),
		TenantID:     tenantID,
		StaffID:      input.StaffID,
		Date:         parsed.date,
		StartMinutes: parsed.start,
		EndMinutes:   parsed.end,
		Position:     strings.TrimSpace(input.Position),
		Department:   strings.TrimSpace(input.Department),
		Location:     strings.TrimSpace(input.Location),
		Notes:        input.Notes,
		Status:       status,
		HourlyRate:   input.HourlyRate,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ok {
		shift.StaffName = member.DisplayName
	}

	persisted, err := s.shifts.CreateShift(ctx, tenantID, shift)
	if err != nil {
		return Shift{}, mapShiftRepoError(err)
	}
	return persisted, nil
}

// CreateRecurring expands the pattern from the template's date and issues one
// create per occurrence. Occurrences are independent: a failure creating one
// does not roll back those already persisted, and every outcome is reported.
func (s *ShiftService) CreateRecurring(ctx context.Context, tenantID string, input ShiftInput, pattern RecurrenceInput) (RecurringCreateResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return RecurringCreateResult{}, ErrTenantRequired
	}

	vErr := &ValidationError{}
	parsed := validateShiftCore(input, vErr)

	frequency, err := recurrence.ParseFrequency(pattern.Frequency)
	if err != nil {
		vErr.add("recurrence frequency must be daily or weekly")
	}
	if pattern.Interval < 1 {
		vErr.add("recurrence interval must be at least 1")
	}
	if frequency == recurrence.FrequencyWeekly && len(pattern.Weekdays) == 0 {
		vErr.add("select at least one weekday for weekly recurrence")
	}

	weekdays := make([]time.Weekday, 0, len(pattern.Weekdays))
	for _, day := range pattern.Weekdays {
		if day < 0 || day > 6 {
			vErr.add("recurrence weekdays must be between 0 and 6")
			break
		}
		weekdays = append(weekdays, time.Weekday(day))
	}

	member, ok, err := s.resolveStaff(ctx, tenantID, input.StaffID, vErr)
	if err != nil {
		return RecurringCreateResult{}, err
	}

	if !vErr.HasErrors() {
		if err := s.checkConflicts(ctx, tenantID, "", input.StaffID, parsed, vErr); err != nil {
			return RecurringCreateResult{}, err
		}
	}

	if vErr.HasErrors() {
		return RecurringCreateResult{}, vErr
	}

	dates, err := recurrence.Expand(input.Date, recurrence.Pattern{
		Frequency: frequency,
		Interval:  pattern.Interval,
		Weekdays:  weekdays,
		EndDate:   pattern.EndDate,
	})
	if err != nil {
		vErr.add("recurrence pattern could not be expanded")
		return RecurringCreateResult{}, vErr
	}

	status := parsed.status
	if status == "" {
		status = StatusScheduled
	}

	result := RecurringCreateResult{}
	for _, date := range dates {
		now := s.now()
		occurrence := Shift{
			ID:           s.idGenerator(),
			TenantID:     tenantID,
			StaffID:      input.StaffID,
			Date:         date,
			StartMinutes: parsed.start,
			EndMinutes:   parsed.end,
			Position:     strings.TrimSpace(input.Position),
			Department:   strings.TrimSpace(input.Department),
			Location:     strings.TrimSpace(input.Location),
			Notes:        input.Notes,
			Status:       status,
			HourlyRate:   input.HourlyRate,
			Version:      1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if ok {
			occurrence.StaffName = member.DisplayName
		}

		persisted, err := s.shifts.CreateShift(ctx, tenantID, occurrence)
		if err != nil {
			result.Failed = append(result.Failed, OccurrenceFailure{Date: date, Reason: mapShiftRepoError(err).Error()})
			continue
		}
		result.Created = append(result.Created, persisted)
	}

	return result, nil
}

// Update validates the edited submission against the full collection
// (excluding the shift itself), enforces the status transition table unless
// the force path is used, and rejects stale version tokens.
func (s *ShiftService) Update(ctx context.Context, tenantID string, params UpdateShiftParams) (Shift, error) {
	if strings.TrimSpace(tenantID) == "" {
		return Shift{}, ErrTenantRequired
	}

	existing, err := s.shifts.GetShift(ctx, tenantID, params.ShiftID)
	if err != nil {
		return Shift{}, mapShiftRepoError(err)
	}

	input := params.Input
	vErr := &ValidationError{}
	parsed := validateShiftCore(input, vErr)

	member, ok, err := s.resolveStaff(ctx, tenantID, input.StaffID, vErr)
	if err != nil {
		return Shift{}, err
	}

	if parsed.status != "" && !params.ForceStatus && !CanTransition(existing.Status, parsed.status) {
		vErr.add(fmt.Sprintf("status cannot change from %s to %s", existing.Status, parsed.status))
	}

	if !vErr.HasErrors() {
		if err := s.checkConflicts(ctx, tenantID, existing.ID, input.StaffID, parsed, vErr); err != nil {
			return Shift{}, err
		}
	}

	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	updated := existing
	updated.StaffID = input.StaffID
	if ok {
		updated.StaffName = member.DisplayName
	}
	updated.Date = parsed.date
	updated.StartMinutes = parsed.start
	updated.EndMinutes = parsed.end
	updated.Position = strings.TrimSpace(input.Position)
	updated.Department = strings.TrimSpace(input.Department)
	updated.Location = strings.TrimSpace(input.Location)
	updated.Notes = input.Notes
	if parsed.status != "" {
		updated.Status = parsed.status
	}
	updated.HourlyRate = input.HourlyRate
	updated.UpdatedAt = s.now()

	expected := params.Version
	if expected == 0 {
		expected = existing.Version
	}

	persisted, err := s.shifts.UpdateShift(ctx, tenantID, updated, expected)
	if err != nil {
		return Shift{}, mapShiftRepoError(err)
	}
	return persisted, nil
}

// Delete removes a single shift. Deletion is permanent; there is no
// soft-delete or versioning of removed records.
func (s *ShiftService) Delete(ctx context.Context, tenantID, shiftID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return ErrTenantRequired
	}
	if err := s.shifts.DeleteShift(ctx, tenantID, shiftID); err != nil {
		return mapShiftRepoError(err)
	}
	return nil
}

// Reschedule moves a shift to a different calendar day, mutating the date
// field only. A same-day drop is a no-op with no persistence call.
func (s *ShiftService) Reschedule(ctx context.Context, tenantID, shiftID, date string, version int64) (Shift, error) {
	if strings.TrimSpace(tenantID) == "" {
		return Shift{}, ErrTenantRequired
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(date) == "" {
		vErr.add("date is required")
	} else if _, err := scheduling.ParseDate(date); err != nil {
		vErr.add("date must use the YYYY-MM-DD format")
	}
	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	existing, err := s.shifts.GetShift(ctx, tenantID, shiftID)
	if err != nil {
		return Shift{}, mapShiftRepoError(err)
	}

	if existing.Date == date {
		return existing, nil
	}

	parsed := parsedShift{date: date, start: existing.StartMinutes, end: existing.EndMinutes}
	if err := s.checkConflicts(ctx, tenantID, existing.ID, existing.StaffID, parsed, vErr); err != nil {
		return Shift{}, err
	}
	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	updated := existing
	updated.Date = date
	updated.UpdatedAt = s.now()

	expected := version
	if expected == 0 {
		expected = existing.Version
	}

	persisted, err := s.shifts.UpdateShift(ctx, tenantID, updated, expected)
	if err != nil {
		return Shift{}, mapShiftRepoError(err)
	}
	return persisted, nil
}

// BulkUpdateStatus force-sets the status on every selected shift. Member
// requests fan out concurrently; the only ordering guarantee is that the
// result is assembled after all of them have settled.
func (s *ShiftService) BulkUpdateStatus(ctx context.Context, tenantID string, ids []string, status string) (BatchResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return BatchResult{}, ErrTenantRequired
	}

	target, err := ParseStatus(status)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("status must be one of scheduled, confirmed, completed or cancelled")
		return BatchResult{}, vErr
	}

	outcomes := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = s.forceStatus(ctx, tenantID, id, target)
		}(i, id)
	}
	wg.Wait()

	return buildBatchResult(ids, outcomes), nil
}

// BulkDelete removes every selected shift, fanning out one delete per id and
// settling before reporting.
func (s *ShiftService) BulkDelete(ctx context.Context, tenantID string, ids []string) (BatchResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return BatchResult{}, ErrTenantRequired
	}

	outcomes := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = s.Delete(ctx, tenantID, id)
		}(i, id)
	}
	wg.Wait()

	return buildBatchResult(ids, outcomes), nil
}

// DeleteAllForDate removes every shift bucketed into the given calendar day.
func (s *ShiftService) DeleteAllForDate(ctx context.Context, tenantID, date string) (BatchResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return BatchResult{}, ErrTenantRequired
	}

	shifts, err := s.shifts.ListShifts(ctx, tenantID)
	if err != nil {
		return BatchResult{}, mapShiftRepoError(err)
	}

	ids := make([]string, 0)
	for _, shift := range shifts {
		if shift.Date == date {
			ids = append(ids, shift.ID)
		}
	}

	return s.BulkDelete(ctx, tenantID, ids)
}

// List returns the tenant's full shift collection with the filter applied as
// in-memory predicates; filtering is never pushed down to persistence.
func (s *ShiftService) List(ctx context.Context, tenantID string, filter ShiftFilter) ([]Shift, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}

	shifts, err := s.shifts.ListShifts(ctx, tenantID)
	if err != nil {
		return nil, mapShiftRepoError(err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	department := strings.TrimSpace(filter.Department)
	status := strings.TrimSpace(filter.Status)

	filtered := make([]Shift, 0, len(shifts))
	for _, shift := range shifts {
		if search != "" && !matchesSearch(shift, search) {
			continue
		}
		if department != "" && !strings.EqualFold(shift.Department, department) {
			continue
		}
		if status != "" && string(shift.Status) != status {
			continue
		}
		filtered = append(filtered, shift)
	}

	return filtered, nil
}

// Calendar buckets the tenant's shifts into the month grid consumed by the
// presentation layer. The grid is rebuilt from scratch on every call.
func (s *ShiftService) Calendar(ctx context.Context, tenantID string, year int, month time.Month, opts scheduling.MonthOptions) ([]scheduling.Cell, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}

	shifts, err := s.shifts.ListShifts(ctx, tenantID)
	if err != nil {
		return nil, mapShiftRepoError(err)
	}

	if opts.Today == "" {
		opts.Today = s.now().Format(scheduling.DateLayout)
	}

	return scheduling.BuildMonth(year, month, toSchedulingShifts(shifts), opts), nil
}

// forceStatus applies the admin override path used by bulk operations: the
// target status overwrites the current one without consulting the transition
// table.
func (s *ShiftService) forceStatus(ctx context.Context, tenantID, id string, target Status) error {
	shift, err := s.shifts.GetShift(ctx, tenantID, id)
	if err != nil {
		return mapShiftRepoError(err)
	}

	shift.Status = target
	shift.UpdatedAt = s.now()

	if _, err := s.shifts.UpdateShift(ctx, tenantID, shift, shift.Version); err != nil {
		return mapShiftRepoError(err)
	}
	return nil
}

// checkConflicts runs the conflict detector against the full tenant
// collection, excluding excludeID, and records one message per collision.
func (s *ShiftService) checkConflicts(ctx context.Context, tenantID, excludeID, staffID string, parsed parsedShift, vErr *ValidationError) error {
	existing, err := s.shifts.ListShifts(ctx, tenantID)
	if err != nil {
		return mapShiftRepoError(err)
	}

	candidate := scheduling.Shift{
		ID:           excludeID,
		StaffID:      staffID,
		Date:         parsed.date,
		StartMinutes: parsed.start,
		EndMinutes:   parsed.end,
	}

	for _, conflict := range scheduling.FindConflicts(candidate, toSchedulingShifts(existing)) {
		name := conflict.StaffName
		if name == "" {
			name = "this staff member"
		}
		vErr.add(fmt.Sprintf("%s already has a shift from %s to %s on %s",
			name,
			scheduling.FormatClock(conflict.StartMinutes),
			scheduling.FormatClock(conflict.EndMinutes),
			conflict.Date,
		))
	}
	return nil
}

// resolveStaff looks up the staff member, recording a validation message when
// the id is unknown. The boolean reports whether a member was resolved.
func (s *ShiftService) resolveStaff(ctx context.Context, tenantID, staffID string, vErr *ValidationError) (Staff, bool, error) {
	if strings.TrimSpace(staffID) == "" || s.staff == nil {
		return Staff{}, false, nil
	}

	member, err := s.staff.GetStaff(ctx, tenantID, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
			vErr.add("staff member does not exist")
			return Staff{}, false, nil
		}
		return Staff{}, false, err
	}
	return member, true, nil
}

type parsedShift struct {
	date   string
	start  int
	end    int
	status Status
}

// validateShiftCore runs the field-presence, format, time-order and duration
// checks shared by create and update, accumulating messages in form order.
func validateShiftCore(input ShiftInput, vErr *ValidationError) parsedShift {
	parsed := parsedShift{start: -1, end: -1}

	if strings.TrimSpace(input.StaffID) == "" {
		vErr.add("staff member is required")
	}

	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date is required")
	} else if _, err := scheduling.ParseDate(input.Date); err != nil {
		vErr.add("date must use the YYYY-MM-DD format")
	} else {
		parsed.date = input.Date
	}

	if strings.TrimSpace(input.Start) == "" {
		vErr.add("start time is required")
	} else if minutes, err := scheduling.ParseClock(input.Start); err != nil {
		vErr.add("start time must use the HH:MM format")
	} else {
		parsed.start = minutes
	}

	if strings.TrimSpace(input.End) == "" {
		vErr.add("end time is required")
	} else if minutes, err := scheduling.ParseClock(input.End); err != nil {
		vErr.add("end time must use the HH:MM format")
	} else {
		parsed.end = minutes
	}

	if parsed.start >= 0 && parsed.end >= 0 {
		if parsed.end <= parsed.start {
			vErr.add("end time must be after start time")
		} else if parsed.end-parsed.start > maxShiftMinutes {
			vErr.add("shift duration cannot exceed 12 hours")
		}
	}

	if strings.TrimSpace(input.Status) != "" {
		status, err := ParseStatus(input.Status)
		if err != nil {
			vErr.add("status must be one of scheduled, confirmed, completed or cancelled")
		} else {
			parsed.status = status
		}
	}

	return parsed
}

func matchesSearch(shift Shift, search string) bool {
	return strings.Contains(strings.ToLower(shift.StaffName), search) ||
		strings.Contains(strings.ToLower(shift.Position), search) ||
		strings.Contains(strings.ToLower(shift.Department), search)
}

func buildBatchResult(ids []string, outcomes []error) BatchResult {
	result := BatchResult{}
	for i, id := range ids {
		if outcomes[i] != nil {
			result.Failed = append(result.Failed, BatchFailure{ShiftID: id, Reason: outcomes[i].Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

func toSchedulingShifts(shifts []Shift) []scheduling.Shift {
	out := make([]scheduling.Shift, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, scheduling.Shift{
			ID:           shift.ID,
			StaffID:      shift.StaffID,
			StaffName:    shift.StaffName,
			Date:         shift.Date,
			StartMinutes: shift.StartMinutes,
			EndMinutes:   shift.EndMinutes,
			Position:     shift.Position,
			Department:   shift.Department,
			Status:       string(shift.Status),
		})
	}
	return out
}

func mapShiftRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, ErrStaleVersion) || errors.Is(err, persistence.ErrStaleVersion) {
		return ErrStaleVersion
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("end time must be after start time")
		return vErr
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("staff member does not exist")
		return vErr
	}
	return err
}
