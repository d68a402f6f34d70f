package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/importer"
	"github.com/example/gym-maintenance/internal/persistence"
)

// DefaultCheckInterval is how long after a completed check the next one
// falls due when no interval is configured.
const DefaultCheckInterval = 7 * 24 * time.Hour

// EquipmentService orchestrates validation, persistence, and check logging
// for the equipment collection.
type EquipmentService struct {
	equipment     persistence.EquipmentRepository
	ledger        persistence.LogRepository
	idGenerator   func() string
	now           func() time.Time
	checkInterval time.Duration
	logger        *slog.Logger
}

// NewEquipmentService constructs an equipment service with the provided dependencies.
func NewEquipmentService(equipment persistence.EquipmentRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time, checkInterval time.Duration) *EquipmentService {
	return NewEquipmentServiceWithLogger(equipment, ledger, idGenerator, now, checkInterval, nil)
}

// NewEquipmentServiceWithLogger constructs an equipment service with a specified logger.
func NewEquipmentServiceWithLogger(equipment persistence.EquipmentRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time, checkInterval time.Duration, logger *slog.Logger) *EquipmentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}
	return &EquipmentService{
		equipment:     equipment,
		ledger:        ledger,
		idGenerator:   idGenerator,
		now:           now,
		checkInterval: checkInterval,
		logger:        defaultLogger(logger),
	}
}

func (s *EquipmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EquipmentService", operation, attrs...)
}

// Add validates input and persists a new piece of equipment. The first check
// counts as done now; the next one falls due one interval later.
func (s *EquipmentService) Add(ctx context.Context, input EquipmentInput) (item Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Add")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("equipment_id", item.ID).InfoContext(ctx, "equipment added")
	}()

	if input.Status == "" {
		input.Status = StatusOperational
	}
	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	item = s.buildEquipment(input)

	if err = s.equipment.CreateEquipment(ctx, equipmentToRecord(item)); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// Update validates input and updates an existing piece of equipment. The
// check timestamps and counters of the stored record are preserved.
func (s *EquipmentService) Update(ctx context.Context, id string, input EquipmentInput) (item Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Update", "equipment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "equipment updated")
	}()

	var existing persistence.Equipment
	existing, err = s.equipment.GetEquipment(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if input.Status == "" {
		input.Status = EquipmentStatus(existing.Status)
	}
	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := equipmentFromRecord(existing)
	updated.Name = strings.TrimSpace(input.Name)
	updated.Category = input.Category
	updated.Location = strings.TrimSpace(input.Location)
	updated.Status = input.Status
	updated.Notes = normalizeOptionalString(input.Notes)
	updated.UpdatedAt = s.now()

	if err = s.equipment.UpdateEquipment(ctx, equipmentToRecord(updated)); err != nil {
		err = mapRepoError(err)
		return
	}

	item = updated
	return
}

// Delete removes a piece of equipment.
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("EquipmentService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "equipment_id", id)

	if err := s.equipment.DeleteEquipment(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete equipment", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "equipment deleted")
	return nil
}

// CompleteCheck records a routine check on a piece of equipment: the last
// check moves to now, the next one falls due one interval later, and one
// ledger entry is appended.
func (s *EquipmentService) CompleteCheck(ctx context.Context, id, staff string) (item Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CompleteCheck", "equipment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to complete check", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "check completed")
	}()

	staff = strings.TrimSpace(staff)
	if staff == "" {
		err = ErrStaffRequired
		return
	}

	var existing persistence.Equipment
	existing, err = s.equipment.GetEquipment(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	checked := equipmentFromRecord(existing)
	at := s.now()
	checked.LastCheck = at
	checked.NextDue = at.Add(s.checkInterval)
	checked.UpdatedAt = at

	if err = s.equipment.UpdateEquipment(ctx, equipmentToRecord(checked)); err != nil {
		err = mapRepoError(err)
		return
	}

	entry := LogEntry{
		ID:            s.idGenerator(),
		EquipmentID:   &checked.ID,
		EquipmentName: &checked.Name,
		Type:          LogTypeCheck,
		Description:   fmt.Sprintf("%s check completed by %s", checked.Name, staff),
		Staff:         staff,
		Timestamp:     at,
		Status:        LogStatusCompleted,
	}
	if err = s.ledger.AppendLogEntry(ctx, logEntryToRecord(entry)); err != nil {
		err = mapRepoError(err)
		return
	}

	item = checked
	return
}

// Get retrieves a piece of equipment by id.
func (s *EquipmentService) Get(ctx context.Context, id string) (Equipment, error) {
	if s == nil {
		return Equipment{}, fmt.Errorf("EquipmentService is nil")
	}

	record, err := s.equipment.GetEquipment(ctx, id)
	if err != nil {
		return Equipment{}, mapRepoError(err)
	}
	return equipmentFromRecord(record), nil
}

// List returns the equipment collection in creation order.
func (s *EquipmentService) List(ctx context.Context) ([]Equipment, error) {
	if s == nil {
		return nil, fmt.Errorf("EquipmentService is nil")
	}

	records, err := s.equipment.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Equipment, 0, len(records))
	for _, record := range records {
		items = append(items, equipmentFromRecord(record))
	}
	return items, nil
}

// ImportCSV parses the supplied CSV document and persists every row as one
// batch. Any invalid row rejects the whole import with its row number.
func (s *EquipmentService) ImportCSV(ctx context.Context, r io.Reader) (items []Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ImportCSV")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to import equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(items)).InfoContext(ctx, "equipment imported")
	}()

	rows, parseErr := importer.Parse(r)
	if parseErr != nil {
		var rowErr *importer.RowError
		if errors.As(parseErr, &rowErr) {
			vErr := &ValidationError{}
			vErr.add(fmt.Sprintf("row %d", rowErr.Line), rowErr.Message)
			err = vErr
			return
		}
		vErr := &ValidationError{}
		vErr.add("file", parseErr.Error())
		err = vErr
		return
	}

	items = make([]Equipment, 0, len(rows))
	records := make([]persistence.Equipment, 0, len(rows))
	for _, row := range rows {
		item := s.buildEquipment(EquipmentInput{
			Name:     row.Name,
			Category: EquipmentCategory(row.Category),
			Location: row.Location,
			Status:   EquipmentStatus(row.Status),
			Notes:    row.Notes,
		})
		items = append(items, item)
		records = append(records, equipmentToRecord(item))
	}

	if err = s.equipment.CreateEquipmentBatch(ctx, records); err != nil {
		err = mapRepoError(err)
		items = nil
		return
	}
	return
}

func (s *EquipmentService) buildEquipment(input EquipmentInput) Equipment {
	at := s.now()
	return Equipment{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Category:  input.Category,
		Location:  strings.TrimSpace(input.Location),
		Status:    input.Status,
		LastCheck: at,
		NextDue:   at.Add(s.checkInterval),
		Notes:     normalizeOptionalString(input.Notes),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func validateEquipmentInput(input EquipmentInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !input.Category.Valid() {
		vErr.add("category", "category must be one of cardio, weight-machines, free-weights")
	}
	if strings.TrimSpace(input.Location) == "" {
		vErr.add("location", "location is required")
	}
	if !input.Status.Valid() {
		vErr.add("status", "status must be one of operational, maintenance, broken")
	}

	return vErr
}
