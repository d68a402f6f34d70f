package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// LogService manages the append-only maintenance ledger. Entries get their
// id and timestamp here and are immutable afterward except for status.
type LogService struct {
	ledger      persistence.LogRepository
	equipment   persistence.EquipmentRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewLogService constructs a log service with the provided dependencies.
func NewLogService(ledger persistence.LogRepository, equipment persistence.EquipmentRepository, idGenerator func() string, now func() time.Time) *LogService {
	return NewLogServiceWithLogger(ledger, equipment, idGenerator, now, nil)
}

// NewLogServiceWithLogger constructs a log service with a specified logger.
func NewLogServiceWithLogger(ledger persistence.LogRepository, equipment persistence.EquipmentRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *LogService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &LogService{
		ledger:      ledger,
		equipment:   equipment,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *LogService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LogService", operation, attrs...)
}

// Append validates the input, assigns id and timestamp, snapshots the
// equipment name when a reference is supplied, and persists the entry.
func (s *LogService) Append(ctx context.Context, input LogEntryInput) (entry LogEntry, err error) {
	if s == nil {
		err = fmt.Errorf("LogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Append", "log_type", string(input.Type))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to append log entry", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("entry_id", entry.ID).InfoContext(ctx, "log entry appended")
	}()

	if input.Status == "" {
		input.Status = LogStatusCompleted
	}
	vErr := validateLogInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	entry = LogEntry{
		ID:          s.idGenerator(),
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Staff:       strings.TrimSpace(input.Staff),
		Timestamp:   s.now(),
		Priority:    input.Priority,
		Status:      input.Status,
		Photos:      input.Photos,
	}

	if input.EquipmentID != nil && *input.EquipmentID != "" {
		var record persistence.Equipment
		record, err = s.equipment.GetEquipment(ctx, *input.EquipmentID)
		if err != nil {
			err = mapRepoError(err)
			entry = LogEntry{}
			return
		}
		entry.EquipmentID = &record.ID
		entry.EquipmentName = &record.Name
	}

	if err = s.ledger.AppendLogEntry(ctx, logEntryToRecord(entry)); err != nil {
		err = mapRepoError(err)
		entry = LogEntry{}
		return
	}
	return
}

// UpdateStatus revises the workflow status of an existing entry. Every other
// field stays as written.
func (s *LogService) UpdateStatus(ctx context.Context, id string, status LogStatus) (entry LogEntry, err error) {
	if s == nil {
		err = fmt.Errorf("LogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateStatus", "entry_id", id, "status", string(status))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update log status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "log status updated")
	}()

	if !status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "status must be one of completed, in-progress, pending")
		err = vErr
		return
	}

	if err = s.ledger.UpdateLogEntryStatus(ctx, id, string(status), s.now()); err != nil {
		err = mapRepoError(err)
		return
	}

	var record persistence.LogEntry
	record, err = s.ledger.GetLogEntry(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	entry = logEntryFromRecord(record)
	return
}

// Get retrieves a ledger entry by id.
func (s *LogService) Get(ctx context.Context, id string) (LogEntry, error) {
	if s == nil {
		return LogEntry{}, fmt.Errorf("LogService is nil")
	}

	record, err := s.ledger.GetLogEntry(ctx, id)
	if err != nil {
		return LogEntry{}, mapRepoError(err)
	}
	return logEntryFromRecord(record), nil
}

// List returns ledger entries matching the query. The default order is
// newest first; type and priority orderings fall back to newest first within
// equal keys.
func (s *LogService) List(ctx context.Context, query LogQuery) (entries []LogEntry, err error) {
	if s == nil {
		err = fmt.Errorf("LogService is nil")
		return
	}

	logger := s.loggerWith(ctx, "List")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list log entries", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).InfoContext(ctx, "log entries listed")
	}()

	var records []persistence.LogEntry
	records, err = s.ledger.ListLogEntries(ctx, persistence.LogFilter{
		Search: strings.TrimSpace(query.Search),
		Type:   string(query.Type),
	})
	if err != nil {
		return
	}

	entries = make([]LogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, logEntryFromRecord(record))
	}

	switch query.SortBy {
	case LogSortType:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Type < entries[j].Type
		})
	case LogSortPriority:
		sort.SliceStable(entries, func(i, j int) bool {
			return priorityRank(entries[i].Priority) > priorityRank(entries[j].Priority)
		})
	}
	return
}

func validateLogInput(input LogEntryInput) *ValidationError {
	vErr := &ValidationError{}

	if !input.Type.Valid() {
		vErr.add("type", "type must be one of check, issue, repair, maintenance, daily-check")
	}
	if strings.TrimSpace(input.Description) == "" {
		vErr.add("description", "description is required")
	}
	if strings.TrimSpace(input.Staff) == "" {
		vErr.add("staff", "staff is required")
	}
	if input.Priority != nil && !input.Priority.Valid() {
		vErr.add("priority", "priority must be one of low, medium, high, urgent")
	}
	if !input.Status.Valid() {
		vErr.add("status", "status must be one of completed, in-progress, pending")
	}

	return vErr
}
