package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/metrics"
)

type staffService interface {
	Add(ctx context.Context, input application.StaffInput) (application.StaffMember, error)
	Update(ctx context.Context, id string, input application.StaffInput) (application.StaffMember, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]application.StaffMember, error)
}

type StaffHandler struct {
	service   staffService
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewStaffHandler(service staffService, logger *slog.Logger, m *metrics.Metrics) *StaffHandler {
	base := defaultLogger(logger)
	return &StaffHandler{service: service, responder: newResponder(base), logger: base, metrics: m}
}

func (h *StaffHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "StaffHandler", operation, attrs...)
}

func (h *StaffHandler) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("StaffService", operation, result)
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode staff request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	member, err := h.service.Add(r.Context(), req.toInput())
	h.record("Add", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "staff creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("staff_id", member.ID).InfoContext(r.Context(), "staff member created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, staffResponse{Staff: toStaffDTO(member)})
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "staff_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode staff update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "staff_id", id)

	member, err := h.service.Update(r.Context(), id, req.toInput())
	h.record("Update", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "staff update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "staff member updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, staffResponse{Staff: toStaffDTO(member)})
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "staff_id", id)

	err := h.service.Delete(r.Context(), id)
	h.record("Delete", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "staff delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "staff member deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	members, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "staff list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(members)).InfoContext(r.Context(), "staff listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listStaffResponse{Staff: toStaffDTOs(members)})
}

type staffRequest struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   string  `json:"status"`
}

func (r staffRequest) toInput() application.StaffInput {
	return application.StaffInput{
		Name:     strings.TrimSpace(r.Name),
		Position: strings.TrimSpace(r.Position),
		Email:    r.Email,
		Phone:    r.Phone,
		Status:   application.StaffStatus(strings.TrimSpace(r.Status)),
	}
}

type staffResponse struct {
	Staff staffDTO `json:"staff"`
}

type listStaffResponse struct {
	Staff []staffDTO `json:"staff"`
}

type staffDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Status   string  `json:"status"`
}

func toStaffDTO(member application.StaffMember) staffDTO {
	return staffDTO{
		ID:       member.ID,
		Name:     member.Name,
		Position: member.Position,
		Email:    member.Email,
		Phone:    member.Phone,
		Status:   string(member.Status),
	}
}

func toStaffDTOs(members []application.StaffMember) []staffDTO {
	if len(members) == 0 {
		return nil
	}
	out := make([]staffDTO, 0, len(members))
	for _, member := range members {
		out = append(out, toStaffDTO(member))
	}
	return out
}
