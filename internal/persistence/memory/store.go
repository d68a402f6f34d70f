// Package memory provides a mutex-guarded, map-backed implementation of the
// persistence contracts, used by tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// Store holds every collection behind one lock so the issue writer can apply
// its two writes atomically.
type Store struct {
	mu          sync.RWMutex
	equipment   map[string]persistence.Equipment
	checklist   map[string]persistence.ChecklistItem
	logEntries  map[string]persistence.LogEntry
	maintenance map[string]persistence.ScheduledMaintenance
	staff       map[string]persistence.StaffMember
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		equipment:   make(map[string]persistence.Equipment),
		checklist:   make(map[string]persistence.ChecklistItem),
		logEntries:  make(map[string]persistence.LogEntry),
		maintenance: make(map[string]persistence.ScheduledMaintenance),
		staff:       make(map[string]persistence.StaffMember),
	}
}

// --- EquipmentRepository implementation ---

// CreateEquipment stores a new equipment record.
func (s *Store) CreateEquipment(ctx context.Context, item persistence.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[item.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.equipment[item.ID] = cloneEquipment(item)
	return nil
}

// CreateEquipmentBatch stores all records or none.
func (s *Store) CreateEquipmentBatch(ctx context.Context, items []persistence.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.equipment[item.ID]; ok {
			return persistence.ErrDuplicate
		}
	}
	for _, item := range items {
		s.equipment[item.ID] = cloneEquipment(item)
	}
	return nil
}

// UpdateEquipment replaces an existing equipment record.
func (s *Store) UpdateEquipment(ctx context.Context, item persistence.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[item.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.equipment[item.ID] = cloneEquipment(item)
	return nil
}

// GetEquipment retrieves an equipment record by id.
func (s *Store) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.equipment[id]
	if !ok {
		return persistence.Equipment{}, persistence.ErrNotFound
	}
	return cloneEquipment(item), nil
}

// ListEquipment returns all equipment ordered by CreatedAt ascending.
func (s *Store) ListEquipment(ctx context.Context) ([]persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]persistence.Equipment, 0, len(s.equipment))
	for _, item := range s.equipment {
		items = append(items, cloneEquipment(item))
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// DeleteEquipment removes an equipment record by id.
func (s *Store) DeleteEquipment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.equipment, id)
	return nil
}

// --- ChecklistRepository implementation ---

// CreateChecklistItem stores a new checklist item.
func (s *Store) CreateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklist[item.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.checklist[item.ID] = cloneChecklistItem(item)
	return nil
}

// CreateChecklistItemBatch stores all items or none.
func (s *Store) CreateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.checklist[item.ID]; ok {
			return persistence.ErrDuplicate
		}
	}
	for _, item := range items {
		s.checklist[item.ID] = cloneChecklistItem(item)
	}
	return nil
}

// UpdateChecklistItem replaces an existing checklist item.
func (s *Store) UpdateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklist[item.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.checklist[item.ID] = cloneChecklistItem(item)
	return nil
}

// UpdateChecklistItemBatch replaces every supplied item as one unit.
func (s *Store) UpdateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.checklist[item.ID]; !ok {
			return persistence.ErrNotFound
		}
	}
	for _, item := range items {
		s.checklist[item.ID] = cloneChecklistItem(item)
	}
	return nil
}

// GetChecklistItem retrieves a checklist item by id.
func (s *Store) GetChecklistItem(ctx context.Context, id string) (persistence.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.checklist[id]
	if !ok {
		return persistence.ChecklistItem{}, persistence.ErrNotFound
	}
	return cloneChecklistItem(item), nil
}

// ListChecklistItems returns all checklist items ordered by CreatedAt ascending.
func (s *Store) ListChecklistItems(ctx context.Context) ([]persistence.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]persistence.ChecklistItem, 0, len(s.checklist))
	for _, item := range s.checklist {
		items = append(items, cloneChecklistItem(item))
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// --- LogRepository implementation ---

// AppendLogEntry stores a new ledger entry.
func (s *Store) AppendLogEntry(ctx context.Context, entry persistence.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLogEntryLocked(entry)
}

func (s *Store) appendLogEntryLocked(entry persistence.LogEntry) error {
	if _, ok := s.logEntries[entry.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.logEntries[entry.ID] = cloneLogEntry(entry)
	return nil
}

// UpdateLogEntryStatus revises the status of an existing entry; every other
// field stays as written.
func (s *Store) UpdateLogEntryStatus(ctx context.Context, id, status string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.logEntries[id]
	if !ok {
		return persistence.ErrNotFound
	}
	entry.Status = status
	s.logEntries[id] = entry
	return nil
}

// GetLogEntry retrieves a ledger entry by id.
func (s *Store) GetLogEntry(ctx context.Context, id string) (persistence.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.logEntries[id]
	if !ok {
		return persistence.LogEntry{}, persistence.ErrNotFound
	}
	return cloneLogEntry(entry), nil
}

// ListLogEntries returns entries matching the filter, newest first.
func (s *Store) ListLogEntries(ctx context.Context, filter persistence.LogFilter) ([]persistence.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]persistence.LogEntry, 0, len(s.logEntries))
	for _, entry := range s.logEntries {
		if !matchesLogFilter(entry, filter) {
			continue
		}
		entries = append(entries, cloneLogEntry(entry))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}

func matchesLogFilter(entry persistence.LogEntry, filter persistence.LogFilter) bool {
	if filter.Type != "" && entry.Type != filter.Type {
		return false
	}
	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return true
	}
	lower := strings.ToLower(search)
	if strings.Contains(strings.ToLower(entry.Description), lower) {
		return true
	}
	if entry.EquipmentName != nil && strings.Contains(strings.ToLower(*entry.EquipmentName), lower) {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Staff), lower)
}

// --- MaintenanceRepository implementation ---

// CreateMaintenance stores a new scheduled maintenance task.
func (s *Store) CreateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[task.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.maintenance[task.ID] = cloneMaintenance(task)
	return nil
}

// UpdateMaintenance replaces an existing task.
func (s *Store) UpdateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[task.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.maintenance[task.ID] = cloneMaintenance(task)
	return nil
}

// GetMaintenance retrieves a task by id.
func (s *Store) GetMaintenance(ctx context.Context, id string) (persistence.ScheduledMaintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.maintenance[id]
	if !ok {
		return persistence.ScheduledMaintenance{}, persistence.ErrNotFound
	}
	return cloneMaintenance(task), nil
}

// ListMaintenance returns all tasks ordered by scheduled date.
func (s *Store) ListMaintenance(ctx context.Context) ([]persistence.ScheduledMaintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]persistence.ScheduledMaintenance, 0, len(s.maintenance))
	for _, task := range s.maintenance {
		tasks = append(tasks, cloneMaintenance(task))
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].ScheduledDate.Equal(tasks[j].ScheduledDate) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].ScheduledDate.Before(tasks[j].ScheduledDate)
	})

	return tasks, nil
}

// DeleteMaintenance removes a task by id.
func (s *Store) DeleteMaintenance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maintenance[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.maintenance, id)
	return nil
}

// --- StaffRepository implementation ---

// CreateStaffMember stores a new staff record.
func (s *Store) CreateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[member.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.staff[member.ID] = cloneStaffMember(member)
	return nil
}

// UpdateStaffMember replaces an existing staff record.
func (s *Store) UpdateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.staff[member.ID]
	if !ok || existing.OrganizationID != member.OrganizationID {
		return persistence.ErrNotFound
	}
	s.staff[member.ID] = cloneStaffMember(member)
	return nil
}

// GetStaffMember retrieves a staff record by id.
func (s *Store) GetStaffMember(ctx context.Context, id string) (persistence.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.staff[id]
	if !ok {
		return persistence.StaffMember{}, persistence.ErrNotFound
	}
	return cloneStaffMember(member), nil
}

// ListStaffMembers returns the organization's staff ordered by name.
func (s *Store) ListStaffMembers(ctx context.Context, organizationID string) ([]persistence.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]persistence.StaffMember, 0)
	for _, member := range s.staff {
		if member.OrganizationID != organizationID {
			continue
		}
		members = append(members, cloneStaffMember(member))
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Name == members[j].Name {
			return members[i].ID < members[j].ID
		}
		return members[i].Name < members[j].Name
	})

	return members, nil
}

// DeleteStaffMember removes a staff record by id.
func (s *Store) DeleteStaffMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staff[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.staff, id)
	return nil
}

// --- IssueWriter implementation ---

// ApplyIssueReport applies the equipment update and ledger append under one
// lock acquisition so both land or neither does.
func (s *Store) ApplyIssueReport(ctx context.Context, item persistence.Equipment, entry persistence.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[item.ID]; !ok {
		return persistence.ErrNotFound
	}
	if err := s.appendLogEntryLocked(entry); err != nil {
		return err
	}
	s.equipment[item.ID] = cloneEquipment(item)
	return nil
}

// --- Helpers ---

func cloneEquipment(item persistence.Equipment) persistence.Equipment {
	out := item
	out.Notes = cloneStringPtr(item.Notes)
	return out
}

func cloneChecklistItem(item persistence.ChecklistItem) persistence.ChecklistItem {
	out := item
	out.CompletedBy = cloneStringPtr(item.CompletedBy)
	out.CompletedAt = cloneTimePtr(item.CompletedAt)
	out.AssignedTo = cloneStringPtr(item.AssignedTo)
	out.Notes = cloneStringPtr(item.Notes)
	return out
}

func cloneLogEntry(entry persistence.LogEntry) persistence.LogEntry {
	out := entry
	out.EquipmentID = cloneStringPtr(entry.EquipmentID)
	out.EquipmentName = cloneStringPtr(entry.EquipmentName)
	out.Priority = cloneStringPtr(entry.Priority)
	if entry.Photos != nil {
		out.Photos = make([]string, len(entry.Photos))
		copy(out.Photos, entry.Photos)
	}
	return out
}

func cloneMaintenance(task persistence.ScheduledMaintenance) persistence.ScheduledMaintenance {
	out := task
	out.EquipmentID = cloneStringPtr(task.EquipmentID)
	out.EquipmentName = cloneStringPtr(task.EquipmentName)
	out.Zone = cloneStringPtr(task.Zone)
	out.AssignedTo = cloneStringPtr(task.AssignedTo)
	return out
}

func cloneStaffMember(member persistence.StaffMember) persistence.StaffMember {
	out := member
	out.Email = cloneStringPtr(member.Email)
	out.Phone = cloneStringPtr(member.Phone)
	return out
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
