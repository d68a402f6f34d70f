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

type issueService interface {
	Report(ctx context.Context, report application.IssueReport) (application.IssueResult, error)
}

type IssueHandler struct {
	service   issueService
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewIssueHandler(service issueService, logger *slog.Logger, m *metrics.Metrics) *IssueHandler {
	base := defaultLogger(logger)
	return &IssueHandler{service: service, responder: newResponder(base), logger: base, metrics: m}
}

func (h *IssueHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "IssueHandler", operation, attrs...)
}

func (h *IssueHandler) Report(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Report", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode issue request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Report", "equipment_id", req.EquipmentID)

	result, err := h.service.Report(r.Context(), req.toReport())
	outcome := "success"
	if err != nil {
		outcome = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("IssueService", "Report", outcome)
	if err != nil {
		logger.ErrorContext(r.Context(), "issue report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("entry_id", result.Entry.ID).InfoContext(r.Context(), "issue reported")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, issueResponse{
		Equipment: toEquipmentDTO(result.Equipment),
		Entry:     toLogEntryDTO(result.Entry),
	})
}

type issueRequest struct {
	EquipmentID string   `json:"equipmentId"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	ReportedBy  string   `json:"reportedBy"`
	Photos      []string `json:"photos"`
}

func (r issueRequest) toReport() application.IssueReport {
	return application.IssueReport{
		EquipmentID: strings.TrimSpace(r.EquipmentID),
		Priority:    application.Priority(strings.TrimSpace(r.Priority)),
		Description: strings.TrimSpace(r.Description),
		ReportedBy:  strings.TrimSpace(r.ReportedBy),
		Photos:      r.Photos,
	}
}

type issueResponse struct {
	Equipment equipmentDTO `json:"equipment"`
	Entry     logEntryDTO  `json:"entry"`
}
