package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/metrics"
)

type checklistService interface {
	AddItem(ctx context.Context, input application.ChecklistItemInput) (application.ChecklistItem, error)
	Toggle(ctx context.Context, id string, completed bool, staff string) (application.ChecklistItem, error)
	CompleteAll(ctx context.Context, staff string) ([]application.ChecklistItem, error)
	UpdateNotes(ctx context.Context, id string, notes *string) (application.ChecklistItem, error)
	List(ctx context.Context) ([]application.ChecklistItem, error)
}

type ChecklistHandler struct {
	service   checklistService
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewChecklistHandler(service checklistService, logger *slog.Logger, m *metrics.Metrics) *ChecklistHandler {
	base := defaultLogger(logger)
	return &ChecklistHandler{service: service, responder: newResponder(base), logger: base, metrics: m}
}

func (h *ChecklistHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ChecklistHandler", operation, attrs...)
}

func (h *ChecklistHandler) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("ChecklistService", operation, result)
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req checklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode checklist request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	item, err := h.service.AddItem(r.Context(), req.toInput())
	h.record("AddItem", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist item creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("item_id", item.ID).InfoContext(r.Context(), "checklist item created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, checklistItemResponse{Item: toChecklistItemDTO(item)})
}

func (h *ChecklistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Toggle", "item_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode toggle request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Toggle", "item_id", id)

	item, err := h.service.Toggle(r.Context(), id, req.Completed, req.Staff)
	h.record("Toggle", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist toggle failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "checklist item toggled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, checklistItemResponse{Item: toChecklistItemDTO(item)})
}

func (h *ChecklistHandler) CompleteAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req completeAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CompleteAll", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode complete-all request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CompleteAll")

	items, err := h.service.CompleteAll(r.Context(), req.Staff)
	h.record("CompleteAll", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist complete-all failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "all checklist items completed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listChecklistResponse{Items: toChecklistItemDTOs(items)})
}

func (h *ChecklistHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateNotes", "item_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode notes request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateNotes", "item_id", id)

	item, err := h.service.UpdateNotes(r.Context(), id, req.Notes)
	h.record("UpdateNotes", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist notes update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "checklist notes updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, checklistItemResponse{Item: toChecklistItemDTO(item)})
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	items, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "checklist listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listChecklistResponse{Items: toChecklistItemDTOs(items)})
}

type checklistItemRequest struct {
	Category   string  `json:"category"`
	Task       string  `json:"task"`
	Priority   string  `json:"priority"`
	AssignedTo *string `json:"assignedTo"`
	Notes      *string `json:"notes"`
}

func (r checklistItemRequest) toInput() application.ChecklistItemInput {
	return application.ChecklistItemInput{
		Category:   application.ChecklistCategory(strings.TrimSpace(r.Category)),
		Task:       strings.TrimSpace(r.Task),
		Priority:   application.Priority(strings.TrimSpace(r.Priority)),
		AssignedTo: r.AssignedTo,
		Notes:      r.Notes,
	}
}

type toggleRequest struct {
	Completed bool   `json:"completed"`
	Staff     string `json:"staff"`
}

type completeAllRequest struct {
	Staff string `json:"staff"`
}

type notesRequest struct {
	Notes *string `json:"notes"`
}

type checklistItemResponse struct {
	Item checklistItemDTO `json:"item"`
}

type listChecklistResponse struct {
	Items []checklistItemDTO `json:"items"`
}

type checklistItemDTO struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Task        string  `json:"task"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
	CompletedBy *string `json:"completedBy,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	AssignedTo  *string `json:"assignedTo,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func toChecklistItemDTO(item application.ChecklistItem) checklistItemDTO {
	dto := checklistItemDTO{
		ID:          item.ID,
		Category:    string(item.Category),
		Task:        item.Task,
		Priority:    string(item.Priority),
		Completed:   item.Completed,
		CompletedBy: item.CompletedBy,
		AssignedTo:  item.AssignedTo,
		Notes:       item.Notes,
	}
	if item.CompletedAt != nil {
		at := item.CompletedAt.UTC().Format(time.RFC3339Nano)
		dto.CompletedAt = &at
	}
	return dto
}

func toChecklistItemDTOs(items []application.ChecklistItem) []checklistItemDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]checklistItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toChecklistItemDTO(item))
	}
	return out
}
