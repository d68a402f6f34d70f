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

type logService interface {
	Append(ctx context.Context, input application.LogEntryInput) (application.LogEntry, error)
	UpdateStatus(ctx context.Context, id string, status application.LogStatus) (application.LogEntry, error)
	List(ctx context.Context, query application.LogQuery) ([]application.LogEntry, error)
}

type LogHandler struct {
	service   logService
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewLogHandler(service logService, logger *slog.Logger, m *metrics.Metrics) *LogHandler {
	base := defaultLogger(logger)
	return &LogHandler{service: service, responder: newResponder(base), logger: base, metrics: m}
}

func (h *LogHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "LogHandler", operation, attrs...)
}

func (h *LogHandler) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("LogService", operation, result)
}

func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req logEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode log request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	entry, err := h.service.Append(r.Context(), req.toInput())
	h.record("Append", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "log append failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("entry_id", entry.ID).InfoContext(r.Context(), "log entry created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, logEntryResponse{Entry: toLogEntryDTO(entry)})
}

func (h *LogHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req logStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "entry_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "entry_id", id)

	entry, err := h.service.UpdateStatus(r.Context(), id, application.LogStatus(strings.TrimSpace(req.Status)))
	h.record("UpdateStatus", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "log status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "log status updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, logEntryResponse{Entry: toLogEntryDTO(entry)})
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := application.LogQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Type:   application.LogType(strings.TrimSpace(r.URL.Query().Get("type"))),
		SortBy: application.LogSort(strings.TrimSpace(r.URL.Query().Get("sortBy"))),
	}

	logger := h.log(r.Context(), "List")

	entries, err := h.service.List(r.Context(), query)
	if err != nil {
		logger.ErrorContext(r.Context(), "log list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "log entries listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listLogResponse{Entries: toLogEntryDTOs(entries)})
}

type logEntryRequest struct {
	EquipmentID *string  `json:"equipmentId"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Staff       string   `json:"staff"`
	Priority    *string  `json:"priority"`
	Status      string   `json:"status"`
	Photos      []string `json:"photos"`
}

func (r logEntryRequest) toInput() application.LogEntryInput {
	input := application.LogEntryInput{
		EquipmentID: r.EquipmentID,
		Type:        application.LogType(strings.TrimSpace(r.Type)),
		Description: strings.TrimSpace(r.Description),
		Staff:       strings.TrimSpace(r.Staff),
		Status:      application.LogStatus(strings.TrimSpace(r.Status)),
		Photos:      r.Photos,
	}
	if r.Priority != nil {
		priority := application.Priority(strings.TrimSpace(*r.Priority))
		input.Priority = &priority
	}
	return input
}

type logStatusRequest struct {
	Status string `json:"status"`
}

type logEntryResponse struct {
	Entry logEntryDTO `json:"entry"`
}

type listLogResponse struct {
	Entries []logEntryDTO `json:"entries"`
}

type logEntryDTO struct {
	ID            string   `json:"id"`
	EquipmentID   *string  `json:"equipmentId,omitempty"`
	EquipmentName *string  `json:"equipmentName,omitempty"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Staff         string   `json:"staff"`
	Timestamp     string   `json:"timestamp"`
	Priority      *string  `json:"priority,omitempty"`
	Status        string   `json:"status"`
	Photos        []string `json:"photos,omitempty"`
}

func toLogEntryDTO(entry application.LogEntry) logEntryDTO {
	dto := logEntryDTO{
		ID:            entry.ID,
		EquipmentID:   entry.EquipmentID,
		EquipmentName: entry.EquipmentName,
		Type:          string(entry.Type),
		Description:   entry.Description,
		Staff:         entry.Staff,
		Timestamp:     entry.Timestamp.UTC().Format(time.RFC3339Nano),
		Status:        string(entry.Status),
		Photos:        entry.Photos,
	}
	if entry.Priority != nil {
		priority := string(*entry.Priority)
		dto.Priority = &priority
	}
	return dto
}

func toLogEntryDTOs(entries []application.LogEntry) []logEntryDTO {
	if len(entries) == 0 {
		return nil
	}
	out := make([]logEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toLogEntryDTO(entry))
	}
	return out
}
