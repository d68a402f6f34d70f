package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
	"github.com/example/gym-maintenance/internal/photostore"
)

// IssueResult carries both records produced by a committed issue report.
type IssueResult struct {
	Equipment Equipment
	Entry     LogEntry
}

// IssueService runs the cross-cutting issue flow: one report updates the
// equipment record, appends a ledger entry, and stores any photos.
type IssueService struct {
	writer      persistence.IssueWriter
	equipment   persistence.EquipmentRepository
	photos      photostore.Store
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewIssueService constructs an issue service with the provided dependencies.
func NewIssueService(writer persistence.IssueWriter, equipment persistence.EquipmentRepository, photos photostore.Store, idGenerator func() string, now func() time.Time) *IssueService {
	return NewIssueServiceWithLogger(writer, equipment, photos, idGenerator, now, nil)
}

// NewIssueServiceWithLogger constructs an issue service with a specified logger.
func NewIssueServiceWithLogger(writer persistence.IssueWriter, equipment persistence.EquipmentRepository, photos photostore.Store, idGenerator func() string, now func() time.Time, logger *slog.Logger) *IssueService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &IssueService{
		writer:      writer,
		equipment:   equipment,
		photos:      photos,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *IssueService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "IssueService", operation, attrs...)
}

// Report validates the report, computes the full target equipment state, and
// commits the equipment update together with the ledger entry so both land
// or neither does. Photos are stored after the commit; a photo store failure
// is surfaced, never swallowed.
func (s *IssueService) Report(ctx context.Context, report IssueReport) (result IssueResult, err error) {
	if s == nil {
		err = fmt.Errorf("IssueService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Report", "equipment_id", report.EquipmentID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to report issue", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("entry_id", result.Entry.ID).InfoContext(ctx, "issue reported")
	}()

	vErr := validateIssueReport(report)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Equipment
	existing, err = s.equipment.GetEquipment(ctx, report.EquipmentID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	at := s.now()
	item := equipmentFromRecord(existing)
	item.IssueCount++
	item.PhotoCount += len(report.Photos)
	item.Status = escalate(item.Status, report.Priority)
	item.UpdatedAt = at

	priority := report.Priority
	staff := strings.TrimSpace(report.ReportedBy)
	entry := LogEntry{
		ID:            s.idGenerator(),
		EquipmentID:   &item.ID,
		EquipmentName: &item.Name,
		Type:          LogTypeIssue,
		Description:   strings.TrimSpace(report.Description),
		Staff:         staff,
		Timestamp:     at,
		Priority:      &priority,
		Status:        LogStatusPending,
		Photos:        report.Photos,
	}

	if err = s.writer.ApplyIssueReport(ctx, equipmentToRecord(item), logEntryToRecord(entry)); err != nil {
		err = mapRepoError(err)
		return
	}

	if len(report.Photos) > 0 && s.photos != nil {
		caption := fmt.Sprintf("Issue report: %s", truncate(entry.Description, 50))
		stored := make([]photostore.Photo, 0, len(report.Photos))
		for _, reference := range report.Photos {
			stored = append(stored, photostore.Photo{
				ID:          s.idGenerator(),
				EquipmentID: item.ID,
				Reference:   reference,
				Caption:     caption,
				UploadedBy:  staff,
				UploadedAt:  at,
			})
		}
		if storeErr := s.photos.Append(ctx, item.ID, stored); storeErr != nil {
			err = &PersistenceError{Op: "store issue photos", Err: storeErr}
			return
		}
	}

	result = IssueResult{Equipment: item, Entry: entry}
	return
}

// escalate raises the equipment status for a severe report and never lowers
// it. Broken stays broken whatever the new report says.
func escalate(current EquipmentStatus, priority Priority) EquipmentStatus {
	switch priority {
	case PriorityUrgent:
		return StatusBroken
	case PriorityHigh:
		if current == StatusBroken {
			return current
		}
		return StatusMaintenance
	}
	return current
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func validateIssueReport(report IssueReport) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(report.EquipmentID) == "" {
		vErr.add("equipmentId", "equipment id is required")
	}
	if !report.Priority.Valid() {
		vErr.add("priority", "priority must be one of low, medium, high, urgent")
	}
	if strings.TrimSpace(report.Description) == "" {
		vErr.add("description", "description is required")
	}
	if strings.TrimSpace(report.ReportedBy) == "" {
		vErr.add("reportedBy", "reporter is required")
	}

	return vErr
}
