package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// ChecklistService manages the daily checklist and its completion logging.
type ChecklistService struct {
	checklist   persistence.ChecklistRepository
	ledger      persistence.LogRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewChecklistService constructs a checklist service with the provided dependencies.
func NewChecklistService(checklist persistence.ChecklistRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time) *ChecklistService {
	return NewChecklistServiceWithLogger(checklist, ledger, idGenerator, now, nil)
}

// NewChecklistServiceWithLogger constructs a checklist service with a specified logger.
func NewChecklistServiceWithLogger(checklist persistence.ChecklistRepository, ledger persistence.LogRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ChecklistService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ChecklistService{
		checklist:   checklist,
		ledger:      ledger,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *ChecklistService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ChecklistService", operation, attrs...)
}

// AddItem validates input and persists a new checklist item, starting
// incomplete.
func (s *ChecklistService) AddItem(ctx context.Context, input ChecklistItemInput) (item ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AddItem")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add checklist item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("item_id", item.ID).InfoContext(ctx, "checklist item added")
	}()

	vErr := validateChecklistInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	at := s.now()
	item = ChecklistItem{
		ID:         s.idGenerator(),
		Category:   input.Category,
		Task:       strings.TrimSpace(input.Task),
		Priority:   input.Priority,
		AssignedTo: normalizeOptionalString(input.AssignedTo),
		Notes:      normalizeOptionalString(input.Notes),
		CreatedAt:  at,
		UpdatedAt:  at,
	}

	if err = s.checklist.CreateChecklistItem(ctx, checklistItemToRecord(item)); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// Toggle marks an item complete or incomplete. Completing requires a staff
// name, stamps completedBy/completedAt together, and appends one ledger
// entry; un-completing clears both fields and logs nothing.
func (s *ChecklistService) Toggle(ctx context.Context, id string, completed bool, staff string) (item ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Toggle", "item_id", id, "completed", completed)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to toggle checklist item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "checklist item toggled")
	}()

	staff = strings.TrimSpace(staff)
	if completed && staff == "" {
		err = ErrStaffRequired
		return
	}

	var existing persistence.ChecklistItem
	existing, err = s.checklist.GetChecklistItem(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := checklistItemFromRecord(existing)
	at := s.now()
	if completed {
		updated.Completed = true
		updated.CompletedBy = &staff
		updated.CompletedAt = &at
	} else {
		updated.Completed = false
		updated.CompletedBy = nil
		updated.CompletedAt = nil
	}
	updated.UpdatedAt = at

	if err = s.checklist.UpdateChecklistItem(ctx, checklistItemToRecord(updated)); err != nil {
		err = mapRepoError(err)
		return
	}

	if completed {
		priority := updated.Priority
		entry := LogEntry{
			ID:          s.idGenerator(),
			Type:        LogTypeDailyCheck,
			Description: fmt.Sprintf("Daily check completed: %s", updated.Task),
			Staff:       staff,
			Timestamp:   at,
			Priority:    &priority,
			Status:      LogStatusCompleted,
		}
		if err = s.ledger.AppendLogEntry(ctx, logEntryToRecord(entry)); err != nil {
			err = mapRepoError(err)
			return
		}
	}

	item = updated
	return
}

// CompleteAll marks every item complete for the given staff member as one
// persisted batch and appends exactly one summary ledger entry naming the
// task count. Per-item entries are deliberately not written here.
func (s *ChecklistService) CompleteAll(ctx context.Context, staff string) (items []ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CompleteAll")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to complete all checklist items", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(items)).InfoContext(ctx, "all checklist items completed")
	}()

	staff = strings.TrimSpace(staff)
	if staff == "" {
		err = ErrStaffRequired
		return
	}

	var records []persistence.ChecklistItem
	records, err = s.checklist.ListChecklistItems(ctx)
	if err != nil {
		return
	}

	at := s.now()
	items = make([]ChecklistItem, 0, len(records))
	updated := make([]persistence.ChecklistItem, 0, len(records))
	for _, record := range records {
		item := checklistItemFromRecord(record)
		item.Completed = true
		item.CompletedBy = &staff
		item.CompletedAt = &at
		item.UpdatedAt = at
		items = append(items, item)
		updated = append(updated, checklistItemToRecord(item))
	}

	if err = s.checklist.UpdateChecklistItemBatch(ctx, updated); err != nil {
		err = mapRepoError(err)
		items = nil
		return
	}

	entry := LogEntry{
		ID:          s.idGenerator(),
		Type:        LogTypeDailyCheck,
		Description: fmt.Sprintf("All daily checklist items completed (%d tasks)", len(items)),
		Staff:       staff,
		Timestamp:   at,
		Status:      LogStatusCompleted,
	}
	if err = s.ledger.AppendLogEntry(ctx, logEntryToRecord(entry)); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// UpdateNotes replaces an item's notes; completion fields are untouched.
func (s *ChecklistService) UpdateNotes(ctx context.Context, id string, notes *string) (item ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateNotes", "item_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update checklist notes", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "checklist notes updated")
	}()

	var existing persistence.ChecklistItem
	existing, err = s.checklist.GetChecklistItem(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := checklistItemFromRecord(existing)
	updated.Notes = normalizeOptionalString(notes)
	updated.UpdatedAt = s.now()

	if err = s.checklist.UpdateChecklistItem(ctx, checklistItemToRecord(updated)); err != nil {
		err = mapRepoError(err)
		return
	}

	item = updated
	return
}

// List returns the checklist in creation order.
func (s *ChecklistService) List(ctx context.Context) ([]ChecklistItem, error) {
	if s == nil {
		return nil, fmt.Errorf("ChecklistService is nil")
	}

	records, err := s.checklist.ListChecklistItems(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ChecklistItem, 0, len(records))
	for _, record := range records {
		items = append(items, checklistItemFromRecord(record))
	}
	return items, nil
}

// Seed populates an empty checklist from a template. A non-empty checklist
// is left alone, so restarts never duplicate the template.
func (s *ChecklistService) Seed(ctx context.Context, template []ChecklistItemInput) (seeded int, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Seed")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed checklist", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", seeded).InfoContext(ctx, "checklist seeded")
	}()

	var existing []persistence.ChecklistItem
	existing, err = s.checklist.ListChecklistItems(ctx)
	if err != nil {
		return
	}
	if len(existing) > 0 {
		return
	}

	at := s.now()
	records := make([]persistence.ChecklistItem, 0, len(template))
	for _, input := range template {
		vErr := validateChecklistInput(input)
		if vErr.HasErrors() {
			err = vErr
			return
		}
		records = append(records, checklistItemToRecord(ChecklistItem{
			ID:         s.idGenerator(),
			Category:   input.Category,
			Task:       strings.TrimSpace(input.Task),
			Priority:   input.Priority,
			AssignedTo: normalizeOptionalString(input.AssignedTo),
			Notes:      normalizeOptionalString(input.Notes),
			CreatedAt:  at,
			UpdatedAt:  at,
		}))
	}

	if err = s.checklist.CreateChecklistItemBatch(ctx, records); err != nil {
		err = mapRepoError(err)
		return
	}

	seeded = len(records)
	return
}

func validateChecklistInput(input ChecklistItemInput) *ValidationError {
	vErr := &ValidationError{}

	if !input.Category.Valid() {
		vErr.add("category", "category must be one of safety, cleanliness, equipment, facility")
	}
	if strings.TrimSpace(input.Task) == "" {
		vErr.add("task", "task is required")
	}
	if !input.Priority.Valid() {
		vErr.add("priority", "priority must be one of low, medium, high, urgent")
	}

	return vErr
}
