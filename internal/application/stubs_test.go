package application

import (
	"context"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

type equipmentRepoStub struct {
	createErr error
	created   persistence.Equipment

	batchErr error
	batch    []persistence.Equipment

	getItem persistence.Equipment
	getErr  error

	updateErr error
	updated   persistence.Equipment

	deleteErr error
	deletedID string

	list    []persistence.Equipment
	listErr error
}

func (r *equipmentRepoStub) CreateEquipment(ctx context.Context, item persistence.Equipment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = item
	return nil
}

func (r *equipmentRepoStub) CreateEquipmentBatch(ctx context.Context, items []persistence.Equipment) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	r.batch = append([]persistence.Equipment(nil), items...)
	return nil
}

func (r *equipmentRepoStub) UpdateEquipment(ctx context.Context, item persistence.Equipment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = item
	return nil
}

func (r *equipmentRepoStub) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	if r.getErr != nil {
		return persistence.Equipment{}, r.getErr
	}
	if r.getItem.ID == "" {
		return persistence.Equipment{}, persistence.ErrNotFound
	}
	return r.getItem, nil
}

func (r *equipmentRepoStub) ListEquipment(ctx context.Context) ([]persistence.Equipment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]persistence.Equipment, len(r.list))
	copy(out, r.list)
	return out, nil
}

func (r *equipmentRepoStub) DeleteEquipment(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

type checklistRepoStub struct {
	createErr error
	created   persistence.ChecklistItem

	batchErr error
	batch    []persistence.ChecklistItem

	updateErr error
	updated   persistence.ChecklistItem

	updateBatchErr error
	updatedBatch   []persistence.ChecklistItem

	getItem persistence.ChecklistItem
	getErr  error

	list    []persistence.ChecklistItem
	listErr error
}

func (r *checklistRepoStub) CreateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = item
	return nil
}

func (r *checklistRepoStub) CreateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	r.batch = append([]persistence.ChecklistItem(nil), items...)
	return nil
}

func (r *checklistRepoStub) UpdateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = item
	return nil
}

func (r *checklistRepoStub) UpdateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	if r.updateBatchErr != nil {
		return r.updateBatchErr
	}
	r.updatedBatch = append([]persistence.ChecklistItem(nil), items...)
	return nil
}

func (r *checklistRepoStub) GetChecklistItem(ctx context.Context, id string) (persistence.ChecklistItem, error) {
	if r.getErr != nil {
		return persistence.ChecklistItem{}, r.getErr
	}
	if r.getItem.ID == "" {
		return persistence.ChecklistItem{}, persistence.ErrNotFound
	}
	return r.getItem, nil
}

func (r *checklistRepoStub) ListChecklistItems(ctx context.Context) ([]persistence.ChecklistItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]persistence.ChecklistItem, len(r.list))
	copy(out, r.list)
	return out, nil
}

type logRepoStub struct {
	appendErr error
	appended  []persistence.LogEntry

	statusErr     error
	statusID      string
	statusValue   string
	statusUpdated time.Time

	getEntry persistence.LogEntry
	getErr   error

	list       []persistence.LogEntry
	listErr    error
	listFilter persistence.LogFilter
}

func (r *logRepoStub) AppendLogEntry(ctx context.Context, entry persistence.LogEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, entry)
	return nil
}

func (r *logRepoStub) UpdateLogEntryStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statusID = id
	r.statusValue = status
	r.statusUpdated = updatedAt
	return nil
}

func (r *logRepoStub) GetLogEntry(ctx context.Context, id string) (persistence.LogEntry, error) {
	if r.getErr != nil {
		return persistence.LogEntry{}, r.getErr
	}
	if r.getEntry.ID == "" {
		return persistence.LogEntry{}, persistence.ErrNotFound
	}
	return r.getEntry, nil
}

func (r *logRepoStub) ListLogEntries(ctx context.Context, filter persistence.LogFilter) ([]persistence.LogEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.listFilter = filter
	out := make([]persistence.LogEntry, len(r.list))
	copy(out, r.list)
	return out, nil
}

type maintenanceRepoStub struct {
	createErr error
	created   persistence.ScheduledMaintenance

	updateErr error
	updated   []persistence.ScheduledMaintenance

	getTasks map[string]persistence.ScheduledMaintenance
	getErr   error

	list    []persistence.ScheduledMaintenance
	listErr error

	deleteErr error
	deletedID string
}

func (r *maintenanceRepoStub) CreateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = task
	return nil
}

func (r *maintenanceRepoStub) UpdateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, task)
	return nil
}

func (r *maintenanceRepoStub) GetMaintenance(ctx context.Context, id string) (persistence.ScheduledMaintenance, error) {
	if r.getErr != nil {
		return persistence.ScheduledMaintenance{}, r.getErr
	}
	task, ok := r.getTasks[id]
	if !ok {
		return persistence.ScheduledMaintenance{}, persistence.ErrNotFound
	}
	return task, nil
}

func (r *maintenanceRepoStub) ListMaintenance(ctx context.Context) ([]persistence.ScheduledMaintenance, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]persistence.ScheduledMaintenance, len(r.list))
	copy(out, r.list)
	return out, nil
}

func (r *maintenanceRepoStub) DeleteMaintenance(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

type staffRepoStub struct {
	createErr error
	created   persistence.StaffMember

	updateErr error
	updated   persistence.StaffMember

	getMember persistence.StaffMember
	getErr    error

	list    []persistence.StaffMember
	listErr error
	listOrg string

	deleteErr error
	deletedID string
}

func (r *staffRepoStub) CreateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = member
	return nil
}

func (r *staffRepoStub) UpdateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = member
	return nil
}

func (r *staffRepoStub) GetStaffMember(ctx context.Context, id string) (persistence.StaffMember, error) {
	if r.getErr != nil {
		return persistence.StaffMember{}, r.getErr
	}
	if r.getMember.ID == "" {
		return persistence.StaffMember{}, persistence.ErrNotFound
	}
	return r.getMember, nil
}

func (r *staffRepoStub) ListStaffMembers(ctx context.Context, organizationID string) ([]persistence.StaffMember, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.listOrg = organizationID
	out := make([]persistence.StaffMember, len(r.list))
	copy(out, r.list)
	return out, nil
}

func (r *staffRepoStub) DeleteStaffMember(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

type issueWriterStub struct {
	applyErr error
	item     persistence.Equipment
	entry    persistence.LogEntry
	applied  int
}

func (w *issueWriterStub) ApplyIssueReport(ctx context.Context, item persistence.Equipment, entry persistence.LogEntry) error {
	if w.applyErr != nil {
		return w.applyErr
	}
	w.item = item
	w.entry = entry
	w.applied++
	return nil
}
