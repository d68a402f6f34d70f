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

type maintenanceService interface {
	Schedule(ctx context.Context, input application.MaintenanceInput) (application.ScheduledMaintenance, error)
	MarkStatus(ctx context.Context, id string, status application.MaintenanceStatus) (application.ScheduledMaintenance, error)
	Delete(ctx context.Context, id string) error
	CompleteChecked(ctx context.Context, ids []string, notesByID map[string]string, staff string) ([]application.ScheduledMaintenance, error)
	List(ctx context.Context) ([]application.ScheduledMaintenance, error)
	ForDate(ctx context.Context, day time.Time) ([]application.ScheduledMaintenance, error)
	Overdue(ctx context.Context) ([]application.ScheduledMaintenance, error)
	Upcoming(ctx context.Context) ([]application.ScheduledMaintenance, error)
}

type MaintenanceHandler struct {
	service   maintenanceService
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewMaintenanceHandler(service maintenanceService, logger *slog.Logger, m *metrics.Metrics) *MaintenanceHandler {
	base := defaultLogger(logger)
	return &MaintenanceHandler{service: service, responder: newResponder(base), logger: base, metrics: m}
}

func (h *MaintenanceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MaintenanceHandler", operation, attrs...)
}

func (h *MaintenanceHandler) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("MaintenanceService", operation, result)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode maintenance request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid maintenance date", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create")

	task, err := h.service.Schedule(r.Context(), input)
	h.record("Schedule", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "maintenance scheduling failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("task_id", task.ID).InfoContext(r.Context(), "maintenance scheduled")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, maintenanceResponse{Task: toMaintenanceDTO(task)})
}

func (h *MaintenanceHandler) MarkStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req maintenanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "MarkStatus", "task_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "MarkStatus", "task_id", id)

	task, err := h.service.MarkStatus(r.Context(), id, application.MaintenanceStatus(strings.TrimSpace(req.Status)))
	h.record("MarkStatus", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "maintenance status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "maintenance status marked")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, maintenanceResponse{Task: toMaintenanceDTO(task)})
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "task_id", id)

	err := h.service.Delete(r.Context(), id)
	h.record("Delete", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "maintenance delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "maintenance deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req completeCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Complete", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode complete request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Complete")

	tasks, err := h.service.CompleteChecked(r.Context(), req.IDs, req.Notes, req.Staff)
	h.record("CompleteChecked", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "maintenance completion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(tasks)).InfoContext(r.Context(), "maintenance tasks completed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMaintenanceResponse{Tasks: toMaintenanceDTOs(tasks)})
}

// List serves the full schedule, a calendar day when ?date=YYYY-MM-DD is
// given, or the upcoming view when ?view=upcoming.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	var (
		tasks []application.ScheduledMaintenance
		err   error
	)
	switch {
	case r.URL.Query().Get("date") != "":
		var day time.Time
		day, err = time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
		tasks, err = h.service.ForDate(r.Context(), day)
	case r.URL.Query().Get("view") == "upcoming":
		tasks, err = h.service.Upcoming(r.Context())
	default:
		tasks, err = h.service.List(r.Context())
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "maintenance list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(tasks)).InfoContext(r.Context(), "maintenance listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMaintenanceResponse{Tasks: toMaintenanceDTOs(tasks)})
}

func (h *MaintenanceHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Overdue")

	tasks, err := h.service.Overdue(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "overdue list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(tasks)).InfoContext(r.Context(), "overdue maintenance listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMaintenanceResponse{Tasks: toMaintenanceDTOs(tasks)})
}

type maintenanceRequest struct {
	Type          string  `json:"type"`
	EquipmentID   *string `json:"equipmentId"`
	Zone          *string `json:"zone"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ScheduledDate string  `json:"scheduledDate"`
	Priority      string  `json:"priority"`
	AssignedTo    *string `json:"assignedTo"`
}

func (r maintenanceRequest) toInput() (application.MaintenanceInput, error) {
	input := application.MaintenanceInput{
		TargetType:  application.MaintenanceTarget(strings.TrimSpace(r.Type)),
		EquipmentID: r.EquipmentID,
		Zone:        r.Zone,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Priority:    application.Priority(strings.TrimSpace(r.Priority)),
		AssignedTo:  r.AssignedTo,
	}

	if value := strings.TrimSpace(r.ScheduledDate); value != "" {
		date, err := time.Parse(time.RFC3339, value)
		if err != nil {
			date, err = time.Parse("2006-01-02", value)
		}
		if err != nil {
			return application.MaintenanceInput{}, err
		}
		input.ScheduledDate = date
	}

	return input, nil
}

type maintenanceStatusRequest struct {
	Status string `json:"status"`
}

type completeCheckedRequest struct {
	IDs   []string          `json:"ids"`
	Notes map[string]string `json:"notes"`
	Staff string            `json:"staff"`
}

type maintenanceResponse struct {
	Task maintenanceDTO `json:"task"`
}

type listMaintenanceResponse struct {
	Tasks []maintenanceDTO `json:"tasks"`
}

type maintenanceDTO struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	EquipmentID   *string `json:"equipmentId,omitempty"`
	EquipmentName *string `json:"equipmentName,omitempty"`
	Zone          *string `json:"zone,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ScheduledDate string  `json:"scheduledDate"`
	Priority      string  `json:"priority"`
	AssignedTo    *string `json:"assignedTo,omitempty"`
	Status        string  `json:"status"`
}

func toMaintenanceDTO(task application.ScheduledMaintenance) maintenanceDTO {
	return maintenanceDTO{
		ID:            task.ID,
		Type:          string(task.TargetType),
		EquipmentID:   task.EquipmentID,
		EquipmentName: task.EquipmentName,
		Zone:          task.Zone,
		Title:         task.Title,
		Description:   task.Description,
		ScheduledDate: task.ScheduledDate.UTC().Format(time.RFC3339Nano),
		Priority:      string(task.Priority),
		AssignedTo:    task.AssignedTo,
		Status:        string(task.Status),
	}
}

func toMaintenanceDTOs(tasks []application.ScheduledMaintenance) []maintenanceDTO {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]maintenanceDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toMaintenanceDTO(task))
	}
	return out
}
