package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/resort-backoffice/internal/application"
	"github.com/example/resort-backoffice/internal/scheduling"
)

// ShiftOperations is the slice of the shift service the handler needs.
type ShiftOperations interface {
	Create(ctx context.Context, tenantID string, input application.ShiftInput) (application.Shift, error)
	CreateRecurring(ctx context.Context, tenantID string, input application.ShiftInput, pattern application.RecurrenceInput) (application.RecurringCreateResult, error)
	Update(ctx context.Context, tenantID string, params application.UpdateShiftParams) (application.Shift, error)
	Delete(ctx context.Context, tenantID, shiftID string) error
	Reschedule(ctx context.Context, tenantID, shiftID, date string, version int64) (application.Shift, error)
	BulkUpdateStatus(ctx context.Context, tenantID string, ids []string, status string) (application.BatchResult, error)
	BulkDelete(ctx context.Context, tenantID string, ids []string) (application.BatchResult, error)
	DeleteAllForDate(ctx context.Context, tenantID, date string) (application.BatchResult, error)
	List(ctx context.Context, tenantID string, filter application.ShiftFilter) ([]application.Shift, error)
	Calendar(ctx context.Context, tenantID string, year int, month time.Month, opts scheduling.MonthOptions) ([]scheduling.Cell, error)
}

// ShiftHandler serves the shift and calendar routes.
type ShiftHandler struct {
	service   ShiftOperations
	responder responder
	validate  *validator.Validate
}

// NewShiftHandler creates a shift handler.
func NewShiftHandler(service ShiftOperations, logger *zap.Logger) *ShiftHandler {
	return &ShiftHandler{
		service:   service,
		responder: newResponder(logger),
		validate:  validator.New(),
	}
}

type shiftPayload struct {
	StaffID    string  `json:"staffId"`
	Date       string  `json:"date"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status"`
	HourlyRate float64 `json:"hourlyRate"`
}

type recurrencePayload struct {
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly"`
	Interval  int    `json:"interval" validate:"required,min=1"`
	Weekdays  []int  `json:"weekdays" validate:"dive,min=0,max=6"`
	EndDate   string `json:"endDate"`
}

type createShiftRequest struct {
	shiftPayload
	Recurrence *recurrencePayload `json:"recurrence,omitempty"`
}

type updateShiftRequest struct {
	shiftPayload
	Version     int64 `json:"version"`
	ForceStatus bool  `json:"forceStatus"`
}

type rescheduleRequest struct {
	Date    string `json:"date" validate:"required"`
	Version int64  `json:"version"`
}

type bulkStatusRequest struct {
	ShiftIDs []string `json:"shiftIds" validate:"required,min=1,dive,required"`
	Status   string   `json:"status" validate:"required"`
}

type bulkDeleteRequest struct {
	ShiftIDs []string `json:"shiftIds" validate:"required,min=1,dive,required"`
}

type shiftResponse struct {
	ID         string  `json:"id"`
	StaffID    string  `json:"staffId"`
	StaffName  string  `json:"staffName"`
	Date       string  `json:"date"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status"`
	HourlyRate float64 `json:"hourlyRate"`
	Version    int64   `json:"version"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// shiftMutationResponse carries the mutated shift together with the refreshed
// collection so clients rebuild their views from authoritative state instead
// of patching local copies.
type shiftMutationResponse struct {
	Shift  shiftResponse   `json:"shift"`
	Shifts []shiftResponse `json:"shifts"`
}

type batchResponse struct {
	Succeeded []string                    `json:"succeeded"`
	Failed    []application.BatchFailure  `json:"failed"`
	Shifts    []shiftResponse             `json:"shifts"`
}

type recurringCreateResponse struct {
	Created []shiftResponse               `json:"created"`
	Failed  []application.OccurrenceFailure `json:"failed"`
	Shifts  []shiftResponse               `json:"shifts"`
}

type listShiftsResponse struct {
	Shifts []shiftResponse `json:"shifts"`
}

type calendarCellResponse struct {
	Day       int             `json:"day"`
	Date      string          `json:"date"`
	Blank     bool            `json:"blank"`
	Inline    []shiftResponse `json:"inline"`
	MoreCount int             `json:"moreCount"`
	Total     int             `json:"total"`
	IsToday   bool            `json:"isToday"`
	Selected  bool            `json:"selected"`
	DragOver  bool            `json:"dragOver"`
}

type calendarResponse struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"`
	Cells []calendarCellResponse `json:"cells"`
}

// List serves GET /shifts with the optional search, department and status
// query filters.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := application.ShiftFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
	}

	shifts, err := h.service.List(ctx, TenantFromContext(ctx), filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, listShiftsResponse{Shifts: toShiftResponses(shifts)})
}

// Create serves POST /shifts. A request carrying a recurrence block expands
// into one shift per occurrence.
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := TenantFromContext(ctx)

	var req createShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	if req.Recurrence != nil {
		if err := h.validate.Struct(req.Recurrence); err != nil {
			h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
			return
		}

		result, err := h.service.CreateRecurring(ctx, tenantID, req.shiftPayload.toInput(), application.RecurrenceInput{
			Frequency: req.Recurrence.Frequency,
			Interval:  req.Recurrence.Interval,
			Weekdays:  req.Recurrence.Weekdays,
			EndDate:   req.Recurrence.EndDate,
		})
		if err != nil {
			h.responder.handleServiceError(ctx, w, err)
			return
		}

		shifts, err := h.service.List(ctx, tenantID, application.ShiftFilter{})
		if err != nil {
			h.responder.handleServiceError(ctx, w, err)
			return
		}

		h.responder.writeJSON(ctx, w, http.StatusCreated, recurringCreateResponse{
			Created: toShiftResponses(result.Created),
			Failed:  result.Failed,
			Shifts:  toShiftResponses(shifts),
		})
		return
	}

	created, err := h.service.Create(ctx, tenantID, req.shiftPayload.toInput())
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithMutation(ctx, w, http.StatusCreated, created)
}

// Update serves PUT /shifts/{shiftID}.
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	updated, err := h.service.Update(ctx, TenantFromContext(ctx), application.UpdateShiftParams{
		ShiftID:     chi.URLParam(r, "shiftID"),
		Version:     req.Version,
		Input:       req.shiftPayload.toInput(),
		ForceStatus: req.ForceStatus,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithMutation(ctx, w, http.StatusOK, updated)
}

// Delete serves DELETE /shifts/{shiftID}.
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := TenantFromContext(ctx)

	if err := h.service.Delete(ctx, tenantID, chi.URLParam(r, "shiftID")); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	shifts, err := h.service.List(ctx, tenantID, application.ShiftFilter{})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, listShiftsResponse{Shifts: toShiftResponses(shifts)})
}

// Reschedule serves POST /shifts/{shiftID}/reschedule, the drag-and-drop
// date move.
func (h *ShiftHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	moved, err := h.service.Reschedule(ctx, TenantFromContext(ctx), chi.URLParam(r, "shiftID"), req.Date, req.Version)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithMutation(ctx, w, http.StatusOK, moved)
}

// BulkStatus serves POST /shifts/bulk/status.
func (h *ShiftHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.BulkUpdateStatus(ctx, TenantFromContext(ctx), req.ShiftIDs, req.Status)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithBatch(ctx, w, result)
}

// BulkDelete serves POST /shifts/bulk/delete.
func (h *ShiftHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.BulkDelete(ctx, TenantFromContext(ctx), req.ShiftIDs)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithBatch(ctx, w, result)
}

// DeleteForDate serves DELETE /shifts/date/{date}.
func (h *ShiftHandler) DeleteForDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.DeleteAllForDate(ctx, TenantFromContext(ctx), chi.URLParam(r, "date"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.respondWithBatch(ctx, w, result)
}

// Calendar serves GET /calendar/{year}/{month}.
func (h *ShiftHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errors.New("year must be a positive number"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errors.New("month must be between 1 and 12"))
		return
	}

	opts := scheduling.MonthOptions{
		SelectedDate: r.URL.Query().Get("selected"),
		DragOverDate: r.URL.Query().Get("dragOver"),
	}

	cells, err := h.service.Calendar(ctx, TenantFromContext(ctx), year, time.Month(month), opts)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, calendarResponse{
		Year:  year,
		Month: month,
		Cells: toCalendarCells(cells),
	})
}

func (h *ShiftHandler) respondWithMutation(ctx context.Context, w http.ResponseWriter, status int, shift application.Shift) {
	shifts, err := h.service.List(ctx, TenantFromContext(ctx), application.ShiftFilter{})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, status, shiftMutationResponse{
		Shift:  toShiftResponse(shift),
		Shifts: toShiftResponses(shifts),
	})
}

func (h *ShiftHandler) respondWithBatch(ctx context.Context, w http.ResponseWriter, result application.BatchResult) {
	shifts, err := h.service.List(ctx, TenantFromContext(ctx), application.ShiftFilter{})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	succeeded := result.Succeeded
	if succeeded == nil {
		succeeded = []string{}
	}
	failed := result.Failed
	if failed == nil {
		failed = []application.BatchFailure{}
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, batchResponse{
		Succeeded: succeeded,
		Failed:    failed,
		Shifts:    toShiftResponses(shifts),
	})
}

func (p shiftPayload) toInput() application.ShiftInput {
	return application.ShiftInput{
		StaffID:    p.StaffID,
		Date:       p.Date,
		Start:      p.Start,
		End:        p.End,
		Position:   p.Position,
		Department: p.Department,
		Location:   p.Location,
		Notes:      p.Notes,
		Status:     p.Status,
		HourlyRate: p.HourlyRate,
	}
}

func toShiftResponse(shift application.Shift) shiftResponse {
	return shiftResponse{
		ID:         shift.ID,
		StaffID:    shift.StaffID,
		StaffName:  shift.StaffName,
		Date:       shift.Date,
		Start:      scheduling.FormatClock(shift.StartMinutes),
		End:        scheduling.FormatClock(shift.EndMinutes),
		Position:   shift.Position,
		Department: shift.Department,
		Location:   shift.Location,
		Notes:      shift.Notes,
		Status:     string(shift.Status),
		HourlyRate: shift.HourlyRate,
		Version:    shift.Version,
		CreatedAt:  shift.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  shift.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toShiftResponses(shifts []application.Shift) []shiftResponse {
	out := make([]shiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, toShiftResponse(shift))
	}
	return out
}

func toCalendarCells(cells []scheduling.Cell) []calendarCellResponse {
	out := make([]calendarCellResponse, 0, len(cells))
	for _, cell := range cells {
		response := calendarCellResponse{
			Day:       cell.Day,
			Date:      cell.Date,
			Blank:     cell.Day == 0,
			Inline:    []shiftResponse{},
			MoreCount: cell.MoreCount,
			Total:     len(cell.Shifts),
			IsToday:   cell.IsToday,
			Selected:  cell.IsSelected,
			DragOver:  cell.IsDragOver,
		}
		for _, shift := range cell.Inline {
			response.Inline = append(response.Inline, shiftResponse{
				ID:         shift.ID,
				StaffID:    shift.StaffID,
				StaffName:  shift.StaffName,
				Date:       shift.Date,
				Start:      scheduling.FormatClock(shift.StartMinutes),
				End:        scheduling.FormatClock(shift.EndMinutes),
				Position:   shift.Position,
				Department: shift.Department,
				Status:     shift.Status,
			})
		}
		out = append(out, response)
	}
	return out
}
