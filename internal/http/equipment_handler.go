package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/metrics"
	"github.com/example/gym-maintenance/internal/photostore"
)

type equipmentService interface {
	Add(ctx context.Context, input application.EquipmentInput) (application.Equipment, error)
	Update(ctx context.Context, id string, input application.EquipmentInput) (application.Equipment, error)
	Delete(ctx context.Context, id string) error
	CompleteCheck(ctx context.Context, id, staff string) (application.Equipment, error)
	Get(ctx context.Context, id string) (application.Equipment, error)
	List(ctx context.Context) ([]application.Equipment, error)
	ImportCSV(ctx context.Context, r io.Reader) ([]application.Equipment, error)
}

type photoLister interface {
	List(ctx context.Context, equipmentID string) ([]photostore.Photo, error)
}

type EquipmentHandler struct {
	service   equipmentService
	photos    photoLister
	responder responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewEquipmentHandler(service equipmentService, photos photoLister, logger *slog.Logger, m *metrics.Metrics) *EquipmentHandler {
	base := defaultLogger(logger)
	return &EquipmentHandler{service: service, photos: photos, responder: newResponder(base), logger: base, metrics: m}
}

func (h *EquipmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EquipmentHandler", operation, attrs...)
}

func (h *EquipmentHandler) record(operation string, err error) {
	result := "success"
	if err != nil {
		result = application.ErrorKind(err)
	}
	h.metrics.RecordOperation("EquipmentService", operation, result)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	item, err := h.service.Add(r.Context(), req.toInput())
	h.record("Add", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("equipment_id", item.ID).InfoContext(r.Context(), "equipment created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, equipmentResponse{Equipment: toEquipmentDTO(item)})
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing equipment id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "equipment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "equipment_id", id)

	item, err := h.service.Update(r.Context(), id, req.toInput())
	h.record("Update", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(item)})
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing equipment id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "equipment_id", id)

	err := h.service.Delete(r.Context(), id)
	h.record("Delete", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "equipment_id", id).ErrorContext(r.Context(), "equipment get failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(item)})
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	items, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "equipment listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEquipmentResponse{Equipment: toEquipmentDTOs(items)})
}

func (h *EquipmentHandler) CompleteCheck(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req completeCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CompleteCheck", "equipment_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode check request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CompleteCheck", "equipment_id", id)

	item, err := h.service.CompleteCheck(r.Context(), id, req.Staff)
	h.record("CompleteCheck", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "check completion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "check completed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(item)})
}

// Import accepts a raw CSV body and persists every valid row as one batch.
func (h *EquipmentHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Import")

	items, err := h.service.ImportCSV(r.Context(), r.Body)
	h.record("ImportCSV", err)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment import failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "equipment imported")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, listEquipmentResponse{Equipment: toEquipmentDTOs(items)})
}

func (h *EquipmentHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.photos == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "ListPhotos", "equipment_id", id)

	photos, err := h.photos.List(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "photo list failed", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, nil)
		return
	}

	logger.With("result_count", len(photos)).InfoContext(r.Context(), "photos listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPhotosResponse{Photos: photos})
}

type equipmentRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Location string  `json:"location"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes"`
}

func (r equipmentRequest) toInput() application.EquipmentInput {
	return application.EquipmentInput{
		Name:     strings.TrimSpace(r.Name),
		Category: application.EquipmentCategory(strings.TrimSpace(r.Category)),
		Location: strings.TrimSpace(r.Location),
		Status:   application.EquipmentStatus(strings.TrimSpace(r.Status)),
		Notes:    r.Notes,
	}
}

type completeCheckRequest struct {
	Staff string `json:"staff"`
}

type equipmentResponse struct {
	Equipment equipmentDTO `json:"equipment"`
}

type listEquipmentResponse struct {
	Equipment []equipmentDTO `json:"equipment"`
}

type listPhotosResponse struct {
	Photos []photostore.Photo `json:"photos"`
}

type equipmentDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Location   string  `json:"location"`
	Status     string  `json:"status"`
	LastCheck  string  `json:"lastCheck"`
	NextDue    string  `json:"nextDue"`
	IssueCount int     `json:"issueCount"`
	PhotoCount int     `json:"photoCount"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func toEquipmentDTO(item application.Equipment) equipmentDTO {
	return equipmentDTO{
		ID:         item.ID,
		Name:       item.Name,
		Category:   string(item.Category),
		Location:   item.Location,
		Status:     string(item.Status),
		LastCheck:  item.LastCheck.UTC().Format(time.RFC3339Nano),
		NextDue:    item.NextDue.UTC().Format(time.RFC3339Nano),
		IssueCount: item.IssueCount,
		PhotoCount: item.PhotoCount,
		Notes:      item.Notes,
		CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEquipmentDTOs(items []application.Equipment) []equipmentDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]equipmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toEquipmentDTO(item))
	}
	return out
}
