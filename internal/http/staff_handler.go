package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/resort-backoffice/internal/application"
)

// StaffReader is the slice of the staff service the handler needs.
type StaffReader interface {
	List(ctx context.Context, tenantID string) ([]application.Staff, error)
	Get(ctx context.Context, tenantID, id string) (application.Staff, error)
}

// StaffHandler serves the read-only staff directory routes.
type StaffHandler struct {
	service   StaffReader
	responder responder
}

// NewStaffHandler creates a staff handler.
func NewStaffHandler(service StaffReader, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{service: service, responder: newResponder(logger)}
}

type staffResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Position    string `json:"position"`
	Department  string `json:"department"`
}

type listStaffResponse struct {
	Staff []staffResponse `json:"staff"`
}

// List serves GET /staff.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.service.List(ctx, TenantFromContext(ctx))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, member := range members {
		out = append(out, toStaffResponse(member))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, listStaffResponse{Staff: out})
}

// Get serves GET /staff/{staffID}.
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	member, err := h.service.Get(ctx, TenantFromContext(ctx), chi.URLParam(r, "staffID"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toStaffResponse(member))
}

func toStaffResponse(member application.Staff) staffResponse {
	return staffResponse{
		ID:          member.ID,
		DisplayName: member.DisplayName,
		Position:    member.Position,
		Department:  member.Department,
	}
}
