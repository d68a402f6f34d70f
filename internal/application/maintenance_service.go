package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// MaintenanceService manages scheduled maintenance tasks and their calendar
// views. Overdue is always computed at read time, never stored.
type MaintenanceService struct {
	maintenance persistence.MaintenanceRepository
	equipment   persistence.EquipmentRepository
	ledger      persistence.LogRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMaintenanceService constructs a maintenance service with the provided dependencies.
func NewMaintenanceService(maintenance persistence.MaintenanceRepository, equipment persistence.EquipmentRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time) *MaintenanceService {
	return NewMaintenanceServiceWithLogger(maintenance, equipment, ledger, idGenerator, now, nil)
}

// NewMaintenanceServiceWithLogger constructs a maintenance service with a specified logger.
func NewMaintenanceServiceWithLogger(maintenance persistence.MaintenanceRepository, equipment persistence.EquipmentRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MaintenanceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MaintenanceService{
		maintenance: maintenance,
		equipment:   equipment,
		ledger:      ledger,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *MaintenanceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MaintenanceService", operation, attrs...)
}

// Schedule validates input and persists a new maintenance task. An equipment
// task must reference equipment that resolves; the name is snapshotted at
// write time. A zone task carries the zone instead.
func (s *MaintenanceService) Schedule(ctx context.Context, input MaintenanceInput) (task ScheduledMaintenance, err error) {
	if s == nil {
		err = fmt.Errorf("MaintenanceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Schedule")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to schedule maintenance", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("task_id", task.ID).InfoContext(ctx, "maintenance scheduled")
	}()

	vErr := validateMaintenanceInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	at := s.now()
	task = ScheduledMaintenance{
		ID:            s.idGenerator(),
		TargetType:    input.TargetType,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		ScheduledDate: input.ScheduledDate,
		Priority:      input.Priority,
		AssignedTo:    normalizeOptionalString(input.AssignedTo),
		Status:        MaintenanceScheduled,
		CreatedAt:     at,
		UpdatedAt:     at,
	}

	switch input.TargetType {
	case TargetEquipment:
		var record persistence.Equipment
		record, err = s.equipment.GetEquipment(ctx, *input.EquipmentID)
		if err != nil {
			err = mapRepoError(err)
			task = ScheduledMaintenance{}
			return
		}
		task.EquipmentID = &record.ID
		task.EquipmentName = &record.Name
	case TargetZone:
		task.Zone = normalizeOptionalString(input.Zone)
	}

	if err = s.maintenance.CreateMaintenance(ctx, maintenanceToRecord(task)); err != nil {
		err = mapRepoError(err)
		task = ScheduledMaintenance{}
		return
	}
	return
}

// MarkStatus moves a task between scheduled and completed. Overdue is a
// derived view and cannot be assigned.
func (s *MaintenanceService) MarkStatus(ctx context.Context, id string, status MaintenanceStatus) (task ScheduledMaintenance, err error) {
	if s == nil {
		err = fmt.Errorf("MaintenanceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "MarkStatus", "task_id", id, "status", string(status))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to mark maintenance status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "maintenance status marked")
	}()

	if status != MaintenanceScheduled && status != MaintenanceCompleted {
		vErr := &ValidationError{}
		vErr.add("status", "status must be scheduled or completed")
		err = vErr
		return
	}

	var existing persistence.ScheduledMaintenance
	existing, err = s.maintenance.GetMaintenance(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := maintenanceFromRecord(existing)
	updated.Status = status
	updated.UpdatedAt = s.now()

	if err = s.maintenance.UpdateMaintenance(ctx, maintenanceToRecord(updated)); err != nil {
		err = mapRepoError(err)
		return
	}

	task = updated
	return
}

// Delete removes a task.
func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("MaintenanceService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "task_id", id)

	if err := s.maintenance.DeleteMaintenance(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete maintenance", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "maintenance deleted")
	return nil
}

// CompleteChecked completes each named task and appends one ledger entry per
// task, carrying the target snapshot, priority, and any note appended to the
// completion description. The per-task entries are intentional; this is the
// opposite of the checklist's single summary entry.
func (s *MaintenanceService) CompleteChecked(ctx context.Context, ids []string, notesByID map[string]string, staff string) (tasks []ScheduledMaintenance, err error) {
	if s == nil {
		err = fmt.Errorf("MaintenanceService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CompleteChecked")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to complete maintenance tasks", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(tasks)).InfoContext(ctx, "maintenance tasks completed")
	}()

	staff = strings.TrimSpace(staff)
	if staff == "" {
		err = ErrStaffRequired
		return
	}
	if len(ids) == 0 {
		vErr := &ValidationError{}
		vErr.add("ids", "at least one task id is required")
		err = vErr
		return
	}

	at := s.now()
	tasks = make([]ScheduledMaintenance, 0, len(ids))
	for _, id := range ids {
		var existing persistence.ScheduledMaintenance
		existing, err = s.maintenance.GetMaintenance(ctx, id)
		if err != nil {
			err = mapRepoError(err)
			tasks = nil
			return
		}

		updated := maintenanceFromRecord(existing)
		updated.Status = MaintenanceCompleted
		updated.UpdatedAt = at

		if err = s.maintenance.UpdateMaintenance(ctx, maintenanceToRecord(updated)); err != nil {
			err = mapRepoError(err)
			tasks = nil
			return
		}

		description := fmt.Sprintf("Completed: %s", updated.Title)
		if note := strings.TrimSpace(notesByID[id]); note != "" {
			description = fmt.Sprintf("%s - %s", description, note)
		}

		priority := updated.Priority
		entry := LogEntry{
			ID:            s.idGenerator(),
			EquipmentID:   updated.EquipmentID,
			EquipmentName: updated.EquipmentName,
			Type:          LogTypeMaintenance,
			Description:   description,
			Staff:         staff,
			Timestamp:     at,
			Priority:      &priority,
			Status:        LogStatusCompleted,
		}
		if err = s.ledger.AppendLogEntry(ctx, logEntryToRecord(entry)); err != nil {
			err = mapRepoError(err)
			tasks = nil
			return
		}

		tasks = append(tasks, updated)
	}
	return
}

// Get retrieves a task by id.
func (s *MaintenanceService) Get(ctx context.Context, id string) (ScheduledMaintenance, error) {
	if s == nil {
		return ScheduledMaintenance{}, fmt.Errorf("MaintenanceService is nil")
	}

	record, err := s.maintenance.GetMaintenance(ctx, id)
	if err != nil {
		return ScheduledMaintenance{}, mapRepoError(err)
	}
	return s.derived(maintenanceFromRecord(record)), nil
}

// List returns every task in date order, with overdue derived.
func (s *MaintenanceService) List(ctx context.Context) ([]ScheduledMaintenance, error) {
	if s == nil {
		return nil, fmt.Errorf("MaintenanceService is nil")
	}

	records, err := s.maintenance.ListMaintenance(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]ScheduledMaintenance, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, s.derived(maintenanceFromRecord(record)))
	}
	return tasks, nil
}

// ForDate returns the tasks whose scheduled date falls on the given calendar
// day.
func (s *MaintenanceService) ForDate(ctx context.Context, day time.Time) ([]ScheduledMaintenance, error) {
	if s == nil {
		return nil, fmt.Errorf("MaintenanceService is nil")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]ScheduledMaintenance, 0)
	for _, task := range all {
		if sameDay(task.ScheduledDate, day) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Overdue returns the scheduled tasks whose date has passed, presented with
// the derived overdue status.
func (s *MaintenanceService) Overdue(ctx context.Context) ([]ScheduledMaintenance, error) {
	if s == nil {
		return nil, fmt.Errorf("MaintenanceService is nil")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]ScheduledMaintenance, 0)
	for _, task := range all {
		if task.Status == MaintenanceOverdue {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Upcoming returns the scheduled tasks from today onward in date order.
func (s *MaintenanceService) Upcoming(ctx context.Context) ([]ScheduledMaintenance, error) {
	if s == nil {
		return nil, fmt.Errorf("MaintenanceService is nil")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	today := startOfDay(s.now())
	tasks := make([]ScheduledMaintenance, 0)
	for _, task := range all {
		if task.Status == MaintenanceScheduled && !task.ScheduledDate.Before(today) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// derived rewrites a stored scheduled status as overdue when the date has
// passed. Stored records are never touched.
func (s *MaintenanceService) derived(task ScheduledMaintenance) ScheduledMaintenance {
	if task.Status == MaintenanceScheduled && task.ScheduledDate.Before(startOfDay(s.now())) {
		task.Status = MaintenanceOverdue
	}
	return task
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func validateMaintenanceInput(input MaintenanceInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.ScheduledDate.IsZero() {
		vErr.add("scheduledDate", "scheduled date is required")
	}
	if !input.Priority.Valid() {
		vErr.add("priority", "priority must be one of low, medium, high, urgent")
	}

	hasEquipment := input.EquipmentID != nil && strings.TrimSpace(*input.EquipmentID) != ""
	hasZone := input.Zone != nil && strings.TrimSpace(*input.Zone) != ""

	switch input.TargetType {
	case TargetEquipment:
		if !hasEquipment {
			vErr.add("equipmentId", "equipment id is required for an equipment task")
		}
		if hasZone {
			vErr.add("zone", "zone must be empty for an equipment task")
		}
	case TargetZone:
		if !hasZone {
			vErr.add("zone", "zone is required for a zone task")
		}
		if hasEquipment {
			vErr.add("equipmentId", "equipment id must be empty for a zone task")
		}
	default:
		vErr.add("type", "type must be equipment or zone")
	}

	return vErr
}
