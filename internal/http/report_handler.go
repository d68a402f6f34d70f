package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/report"
)

type reportGenerator interface {
	Generate(ctx context.Context, params report.Params) ([]byte, error)
}

type ReportHandler struct {
	generator reportGenerator
	responder responder
	logger    *slog.Logger
	now       func() time.Time
}

func NewReportHandler(generator reportGenerator, logger *slog.Logger, now func() time.Time) *ReportHandler {
	base := defaultLogger(logger)
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{generator: generator, responder: newResponder(base), logger: base, now: now}
}

func (h *ReportHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ReportHandler", operation, attrs...)
}

// Generate renders the report named in the path and serves it as a PDF
// download. from/to query parameters bound the ledger range; the default is
// the last 30 days.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.generator == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reportType, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(reportType) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	params := report.Params{Type: report.Type(reportType)}
	if !params.Type.Valid() {
		h.responder.writeError(r.Context(), w, http.StatusNotFound, fmt.Errorf("unknown report type %q", reportType))
		return
	}

	now := h.now()
	params.From = now.AddDate(0, 0, -30)
	params.To = now

	if value := strings.TrimSpace(r.URL.Query().Get("from")); value != "" {
		from, err := time.Parse("2006-01-02", value)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
		params.From = from
	}
	if value := strings.TrimSpace(r.URL.Query().Get("to")); value != "" {
		to, err := time.Parse("2006-01-02", value)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
		// Include the whole end day.
		params.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	logger := h.log(r.Context(), "Generate", "report_type", reportType)

	pdf, err := h.generator.Generate(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "report generation failed", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, nil)
		return
	}

	logger.With("size_bytes", len(pdf)).InfoContext(r.Context(), "report generated")

	filename := fmt.Sprintf("%s-%s.pdf", reportType, now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logger.ErrorContext(r.Context(), "failed to write report response", "error", err)
	}
}
