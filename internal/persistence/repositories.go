package persistence

import (
	"context"
	"time"
)

// EquipmentRepository stores the equipment collection.
type EquipmentRepository interface {
	CreateEquipment(ctx context.Context, item Equipment) error
	CreateEquipmentBatch(ctx context.Context, items []Equipment) error
	UpdateEquipment(ctx context.Context, item Equipment) error
	GetEquipment(ctx context.Context, id string) (Equipment, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

// ChecklistRepository stores the daily checklist collection.
type ChecklistRepository interface {
	CreateChecklistItem(ctx context.Context, item ChecklistItem) error
	CreateChecklistItemBatch(ctx context.Context, items []ChecklistItem) error
	UpdateChecklistItem(ctx context.Context, item ChecklistItem) error
	UpdateChecklistItemBatch(ctx context.Context, items []ChecklistItem) error
	GetChecklistItem(ctx context.Context, id string) (ChecklistItem, error)
	ListChecklistItems(ctx context.Context) ([]ChecklistItem, error)
}

// LogRepository stores the append-only maintenance ledger. Entries are
// created once; only their status field may be revised afterward.
type LogRepository interface {
	AppendLogEntry(ctx context.Context, entry LogEntry) error
	UpdateLogEntryStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	GetLogEntry(ctx context.Context, id string) (LogEntry, error)
	ListLogEntries(ctx context.Context, filter LogFilter) ([]LogEntry, error)
}

// MaintenanceRepository stores scheduled maintenance tasks.
type MaintenanceRepository interface {
	CreateMaintenance(ctx context.Context, task ScheduledMaintenance) error
	UpdateMaintenance(ctx context.Context, task ScheduledMaintenance) error
	GetMaintenance(ctx context.Context, id string) (ScheduledMaintenance, error)
	ListMaintenance(ctx context.Context) ([]ScheduledMaintenance, error)
	DeleteMaintenance(ctx context.Context, id string) error
}

// StaffRepository stores staff records for one organization.
type StaffRepository interface {
	CreateStaffMember(ctx context.Context, member StaffMember) error
	UpdateStaffMember(ctx context.Context, member StaffMember) error
	GetStaffMember(ctx context.Context, id string) (StaffMember, error)
	ListStaffMembers(ctx context.Context, organizationID string) ([]StaffMember, error)
	DeleteStaffMember(ctx context.Context, id string) error
}

// IssueWriter applies the two writes of an issue report as one unit: the
// updated equipment record and the appended ledger entry land together or
// not at all.
type IssueWriter interface {
	ApplyIssueReport(ctx context.Context, item Equipment, entry LogEntry) error
}
