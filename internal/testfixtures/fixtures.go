package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/persistence"
)

var (
	equipmentCounter   uint64
	checklistCounter   uint64
	logCounter         uint64
	maintenanceCounter uint64
	staffCounter       uint64
)

var referenceTime = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// OrganizationID is the organization all staff fixtures belong to.
const OrganizationID = "org-fixture"

// --------------------------- Equipment fixtures ---------------------------

// EquipmentFixture represents a deterministic equipment record.
type EquipmentFixture struct {
	ID         string
	Name       string
	Category   application.EquipmentCategory
	Location   string
	Status     application.EquipmentStatus
	LastCheck  time.Time
	NextDue    time.Time
	IssueCount int
	PhotoCount int
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EquipmentOption configures the generated equipment fixture.
type EquipmentOption func(*EquipmentFixture)

// NewEquipmentFixture returns a deterministic equipment fixture with optional
// overrides.
func NewEquipmentFixture(opts ...EquipmentOption) EquipmentFixture {
	idx := atomic.AddUint64(&equipmentCounter, 1)
	id := fmt.Sprintf("equipment-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EquipmentFixture{
		ID:        id,
		Name:      fmt.Sprintf("Treadmill %03d", idx),
		Category:  application.CategoryCardio,
		Location:  "Cardio Zone",
		Status:    application.StatusOperational,
		LastCheck: created,
		NextDue:   created.Add(7 * 24 * time.Hour),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEquipmentID overrides the generated equipment ID.
func WithEquipmentID(id string) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.ID = id
	}
}

// WithEquipmentName overrides the generated name.
func WithEquipmentName(name string) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.Name = name
	}
}

// WithEquipmentCategory sets the equipment category.
func WithEquipmentCategory(category application.EquipmentCategory) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.Category = category
	}
}

// WithEquipmentLocation overrides the generated location.
func WithEquipmentLocation(location string) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.Location = location
	}
}

// WithEquipmentStatus sets the equipment status.
func WithEquipmentStatus(status application.EquipmentStatus) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.Status = status
	}
}

// WithEquipmentChecks sets the last check and next due timestamps.
func WithEquipmentChecks(lastCheck, nextDue time.Time) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.LastCheck = lastCheck
		f.NextDue = nextDue
	}
}

// WithEquipmentCounters sets the issue and photo counters.
func WithEquipmentCounters(issues, photos int) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.IssueCount = issues
		f.PhotoCount = photos
	}
}

// WithEquipmentNotes sets the notes on the fixture.
func WithEquipmentNotes(notes string) EquipmentOption {
	return func(f *EquipmentFixture) {
		value := notes
		f.Notes = &value
	}
}

// WithEquipmentTimestamps sets both created and updated timestamps.
func WithEquipmentTimestamps(created, updated time.Time) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Equipment value.
func (f EquipmentFixture) Application() application.Equipment {
	return application.Equipment{
		ID:         f.ID,
		Name:       f.Name,
		Category:   f.Category,
		Location:   f.Location,
		Status:     f.Status,
		LastCheck:  f.LastCheck,
		NextDue:    f.NextDue,
		IssueCount: f.IssueCount,
		PhotoCount: f.PhotoCount,
		Notes:      copyStringPtr(f.Notes),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Equipment value.
func (f EquipmentFixture) Persistence() persistence.Equipment {
	return persistence.Equipment{
		ID:         f.ID,
		Name:       f.Name,
		Category:   string(f.Category),
		Location:   f.Location,
		Status:     string(f.Status),
		LastCheck:  f.LastCheck,
		NextDue:    f.NextDue,
		IssueCount: f.IssueCount,
		PhotoCount: f.PhotoCount,
		Notes:      copyStringPtr(f.Notes),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EquipmentInput.
func (f EquipmentFixture) Input() application.EquipmentInput {
	return application.EquipmentInput{
		Name:     f.Name,
		Category: f.Category,
		Location: f.Location,
		Status:   f.Status,
		Notes:    copyStringPtr(f.Notes),
	}
}

// --------------------------- Checklist fixtures ---------------------------

// ChecklistItemFixture represents a deterministic daily checklist item.
type ChecklistItemFixture struct {
	ID          string
	Category    application.ChecklistCategory
	Task        string
	Priority    application.Priority
	Completed   bool
	CompletedBy *string
	CompletedAt *time.Time
	AssignedTo  *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChecklistOption configures the generated checklist fixture.
type ChecklistOption func(*ChecklistItemFixture)

// NewChecklistItemFixture returns a deterministic checklist fixture with
// optional overrides.
func NewChecklistItemFixture(opts ...ChecklistOption) ChecklistItemFixture {
	idx := atomic.AddUint64(&checklistCounter, 1)
	id := fmt.Sprintf("checklist-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ChecklistItemFixture{
		ID:        id,
		Category:  application.ChecklistSafety,
		Task:      fmt.Sprintf("Inspect station %03d", idx),
		Priority:  application.PriorityMedium,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithChecklistID overrides the generated checklist item ID.
func WithChecklistID(id string) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		f.ID = id
	}
}

// WithChecklistTask overrides the generated task description.
func WithChecklistTask(task string) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		f.Task = task
	}
}

// WithChecklistCategory sets the checklist category.
func WithChecklistCategory(category application.ChecklistCategory) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		f.Category = category
	}
}

// WithChecklistPriority sets the item priority.
func WithChecklistPriority(priority application.Priority) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		f.Priority = priority
	}
}

// WithChecklistCompleted marks the item completed by the given staff member at
// the given time.
func WithChecklistCompleted(staff string, at time.Time) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		f.Completed = true
		by := staff
		when := at
		f.CompletedBy = &by
		f.CompletedAt = &when
	}
}

// WithChecklistAssignedTo sets the assignee on the fixture.
func WithChecklistAssignedTo(staff string) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		value := staff
		f.AssignedTo = &value
	}
}

// WithChecklistNotes sets the notes on the fixture.
func WithChecklistNotes(notes string) ChecklistOption {
	return func(f *ChecklistItemFixture) {
		value := notes
		f.Notes = &value
	}
}

// Application returns the fixture as an application.ChecklistItem value.
func (f ChecklistItemFixture) Application() application.ChecklistItem {
	return application.ChecklistItem{
		ID:          f.ID,
		Category:    f.Category,
		Task:        f.Task,
		Priority:    f.Priority,
		Completed:   f.Completed,
		CompletedBy: copyStringPtr(f.CompletedBy),
		CompletedAt: copyTimePtr(f.CompletedAt),
		AssignedTo:  copyStringPtr(f.AssignedTo),
		Notes:       copyStringPtr(f.Notes),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.ChecklistItem value.
func (f ChecklistItemFixture) Persistence() persistence.ChecklistItem {
	return persistence.ChecklistItem{
		ID:          f.ID,
		Category:    string(f.Category),
		Task:        f.Task,
		Priority:    string(f.Priority),
		Completed:   f.Completed,
		CompletedBy: copyStringPtr(f.CompletedBy),
		CompletedAt: copyTimePtr(f.CompletedAt),
		AssignedTo:  copyStringPtr(f.AssignedTo),
		Notes:       copyStringPtr(f.Notes),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ChecklistItemInput.
func (f ChecklistItemFixture) Input() application.ChecklistItemInput {
	return application.ChecklistItemInput{
		Category:   f.Category,
		Task:       f.Task,
		Priority:   f.Priority,
		AssignedTo: copyStringPtr(f.AssignedTo),
		Notes:      copyStringPtr(f.Notes),
	}
}

// ----------------------------- Ledger fixtures ----------------------------

// LogEntryFixture represents a deterministic maintenance ledger entry.
type LogEntryFixture struct {
	ID            string
	EquipmentID   *string
	EquipmentName *string
	Type          application.LogType
	Description   string
	Staff         string
	Timestamp     time.Time
	Priority      *application.Priority
	Status        application.LogStatus
	Photos        []string
}

// LogOption configures the generated ledger fixture.
type LogOption func(*LogEntryFixture)

// NewLogEntryFixture returns a deterministic ledger fixture with optional
// overrides.
func NewLogEntryFixture(opts ...LogOption) LogEntryFixture {
	idx := atomic.AddUint64(&logCounter, 1)
	id := fmt.Sprintf("log-%03d", idx)
	fixture := LogEntryFixture{
		ID:          id,
		Type:        application.LogTypeCheck,
		Description: fmt.Sprintf("Routine check %03d", idx),
		Staff:       "Jordan",
		Timestamp:   referenceTime.Add(time.Duration(idx) * time.Minute),
		Status:      application.LogStatusCompleted,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithLogID overrides the generated entry ID.
func WithLogID(id string) LogOption {
	return func(f *LogEntryFixture) {
		f.ID = id
	}
}

// WithLogEquipment sets the denormalized equipment snapshot on the entry.
func WithLogEquipment(id, name string) LogOption {
	return func(f *LogEntryFixture) {
		eid := id
		ename := name
		f.EquipmentID = &eid
		f.EquipmentName = &ename
	}
}

// WithLogType sets the entry type.
func WithLogType(t application.LogType) LogOption {
	return func(f *LogEntryFixture) {
		f.Type = t
	}
}

// WithLogDescription overrides the entry description.
func WithLogDescription(description string) LogOption {
	return func(f *LogEntryFixture) {
		f.Description = description
	}
}

// WithLogStaff overrides the recording staff member.
func WithLogStaff(staff string) LogOption {
	return func(f *LogEntryFixture) {
		f.Staff = staff
	}
}

// WithLogTimestamp sets the entry timestamp.
func WithLogTimestamp(t time.Time) LogOption {
	return func(f *LogEntryFixture) {
		f.Timestamp = t
	}
}

// WithLogPriority sets the optional priority on the entry.
func WithLogPriority(priority application.Priority) LogOption {
	return func(f *LogEntryFixture) {
		value := priority
		f.Priority = &value
	}
}

// WithLogStatus sets the entry status.
func WithLogStatus(status application.LogStatus) LogOption {
	return func(f *LogEntryFixture) {
		f.Status = status
	}
}

// WithLogPhotos sets the photo references attached to the entry.
func WithLogPhotos(photos ...string) LogOption {
	return func(f *LogEntryFixture) {
		f.Photos = append([]string(nil), photos...)
	}
}

// Application returns the fixture as an application.LogEntry value.
func (f LogEntryFixture) Application() application.LogEntry {
	var priority *application.Priority
	if f.Priority != nil {
		value := *f.Priority
		priority = &value
	}
	return application.LogEntry{
		ID:            f.ID,
		EquipmentID:   copyStringPtr(f.EquipmentID),
		EquipmentName: copyStringPtr(f.EquipmentName),
		Type:          f.Type,
		Description:   f.Description,
		Staff:         f.Staff,
		Timestamp:     f.Timestamp,
		Priority:      priority,
		Status:        f.Status,
		Photos:        append([]string(nil), f.Photos...),
	}
}

// Persistence returns the fixture as a persistence.LogEntry value.
func (f LogEntryFixture) Persistence() persistence.LogEntry {
	var priority *string
	if f.Priority != nil {
		value := string(*f.Priority)
		priority = &value
	}
	return persistence.LogEntry{
		ID:            f.ID,
		EquipmentID:   copyStringPtr(f.EquipmentID),
		EquipmentName: copyStringPtr(f.EquipmentName),
		Type:          string(f.Type),
		Description:   f.Description,
		Staff:         f.Staff,
		Timestamp:     f.Timestamp,
		Priority:      priority,
		Status:        string(f.Status),
		Photos:        append([]string(nil), f.Photos...),
	}
}

// Input returns the fixture as an application.LogEntryInput.
func (f LogEntryFixture) Input() application.LogEntryInput {
	var priority *application.Priority
	if f.Priority != nil {
		value := *f.Priority
		priority = &value
	}
	return application.LogEntryInput{
		EquipmentID: copyStringPtr(f.EquipmentID),
		Type:        f.Type,
		Description: f.Description,
		Staff:       f.Staff,
		Priority:    priority,
		Status:      f.Status,
		Photos:      append([]string(nil), f.Photos...),
	}
}

// -------------------------- Maintenance fixtures --------------------------

// MaintenanceFixture represents a deterministic scheduled maintenance task.
type MaintenanceFixture struct {
	ID            string
	TargetType    application.MaintenanceTarget
	EquipmentID   *string
	EquipmentName *string
	Zone          *string
	Title         string
	Description   string
	ScheduledDate time.Time
	Priority      application.Priority
	AssignedTo    *string
	Status        application.MaintenanceStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MaintenanceOption configures the generated maintenance fixture.
type MaintenanceOption func(*MaintenanceFixture)

// NewMaintenanceFixture returns a deterministic maintenance fixture with
// optional overrides. The default targets a zone one week after the reference
// time.
func NewMaintenanceFixture(opts ...MaintenanceOption) MaintenanceFixture {
	idx := atomic.AddUint64(&maintenanceCounter, 1)
	id := fmt.Sprintf("maintenance-%03d", idx)
	zone := "Free Weights Area"
	fixture := MaintenanceFixture{
		ID:            id,
		TargetType:    application.TargetZone,
		Zone:          &zone,
		Title:         fmt.Sprintf("Deep clean %03d", idx),
		ScheduledDate: referenceTime.Add(7 * 24 * time.Hour),
		Priority:      application.PriorityMedium,
		Status:        application.MaintenanceScheduled,
		CreatedAt:     referenceTime,
		UpdatedAt:     referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMaintenanceID overrides the generated task ID.
func WithMaintenanceID(id string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.ID = id
	}
}

// WithMaintenanceEquipment retargets the task at a piece of equipment.
func WithMaintenanceEquipment(id, name string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		eid := id
		ename := name
		f.TargetType = application.TargetEquipment
		f.EquipmentID = &eid
		f.EquipmentName = &ename
		f.Zone = nil
	}
}

// WithMaintenanceZone retargets the task at a zone.
func WithMaintenanceZone(zone string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		value := zone
		f.TargetType = application.TargetZone
		f.Zone = &value
		f.EquipmentID = nil
		f.EquipmentName = nil
	}
}

// WithMaintenanceTitle overrides the task title.
func WithMaintenanceTitle(title string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.Title = title
	}
}

// WithMaintenanceDescription sets the task description.
func WithMaintenanceDescription(description string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.Description = description
	}
}

// WithMaintenanceDate sets the scheduled date.
func WithMaintenanceDate(t time.Time) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.ScheduledDate = t
	}
}

// WithMaintenancePriority sets the task priority.
func WithMaintenancePriority(priority application.Priority) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.Priority = priority
	}
}

// WithMaintenanceAssignedTo sets the assignee.
func WithMaintenanceAssignedTo(staff string) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		value := staff
		f.AssignedTo = &value
	}
}

// WithMaintenanceStatus sets the stored task status.
func WithMaintenanceStatus(status application.MaintenanceStatus) MaintenanceOption {
	return func(f *MaintenanceFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.ScheduledMaintenance value.
func (f MaintenanceFixture) Application() application.ScheduledMaintenance {
	return application.ScheduledMaintenance{
		ID:            f.ID,
		TargetType:    f.TargetType,
		EquipmentID:   copyStringPtr(f.EquipmentID),
		EquipmentName: copyStringPtr(f.EquipmentName),
		Zone:          copyStringPtr(f.Zone),
		Title:         f.Title,
		Description:   f.Description,
		ScheduledDate: f.ScheduledDate,
		Priority:      f.Priority,
		AssignedTo:    copyStringPtr(f.AssignedTo),
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.ScheduledMaintenance value.
func (f MaintenanceFixture) Persistence() persistence.ScheduledMaintenance {
	return persistence.ScheduledMaintenance{
		ID:            f.ID,
		TargetType:    string(f.TargetType),
		EquipmentID:   copyStringPtr(f.EquipmentID),
		EquipmentName: copyStringPtr(f.EquipmentName),
		Zone:          copyStringPtr(f.Zone),
		Title:         f.Title,
		Description:   f.Description,
		ScheduledDate: f.ScheduledDate,
		Priority:      string(f.Priority),
		AssignedTo:    copyStringPtr(f.AssignedTo),
		Status:        string(f.Status),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// Input returns the fixture as an application.MaintenanceInput.
func (f MaintenanceFixture) Input() application.MaintenanceInput {
	return application.MaintenanceInput{
		TargetType:    f.TargetType,
		EquipmentID:   copyStringPtr(f.EquipmentID),
		Zone:          copyStringPtr(f.Zone),
		Title:         f.Title,
		Description:   f.Description,
		ScheduledDate: f.ScheduledDate,
		Priority:      f.Priority,
		AssignedTo:    copyStringPtr(f.AssignedTo),
	}
}

// ----------------------------- Staff fixtures -----------------------------

// StaffFixture represents a deterministic staff record.
type StaffFixture struct {
	ID             string
	OrganizationID string
	Name           string
	Position       string
	Email          *string
	Phone          *string
	Status         application.StaffStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StaffOption configures the generated staff fixture.
type StaffOption func(*StaffFixture)

// NewStaffFixture returns a deterministic staff fixture with optional
// overrides.
func NewStaffFixture(opts ...StaffOption) StaffFixture {
	idx := atomic.AddUint64(&staffCounter, 1)
	id := fmt.Sprintf("staff-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := StaffFixture{
		ID:             id,
		OrganizationID: OrganizationID,
		Name:           fmt.Sprintf("Staff %03d", idx),
		Position:       "Trainer",
		Status:         application.StaffActive,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithStaffID overrides the generated staff ID.
func WithStaffID(id string) StaffOption {
	return func(f *StaffFixture) {
		f.ID = id
	}
}

// WithStaffOrganization sets the owning organization.
func WithStaffOrganization(orgID string) StaffOption {
	return func(f *StaffFixture) {
		f.OrganizationID = orgID
	}
}

// WithStaffName overrides the generated name.
func WithStaffName(name string) StaffOption {
	return func(f *StaffFixture) {
		f.Name = name
	}
}

// WithStaffPosition sets the staff position.
func WithStaffPosition(position string) StaffOption {
	return func(f *StaffFixture) {
		f.Position = position
	}
}

// WithStaffEmail sets the contact email.
func WithStaffEmail(email string) StaffOption {
	return func(f *StaffFixture) {
		value := email
		f.Email = &value
	}
}

// WithStaffPhone sets the contact phone number.
func WithStaffPhone(phone string) StaffOption {
	return func(f *StaffFixture) {
		value := phone
		f.Phone = &value
	}
}

// WithStaffStatus sets the staff status.
func WithStaffStatus(status application.StaffStatus) StaffOption {
	return func(f *StaffFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.StaffMember value.
func (f StaffFixture) Application() application.StaffMember {
	return application.StaffMember{
		ID:             f.ID,
		OrganizationID: f.OrganizationID,
		Name:           f.Name,
		Position:       f.Position,
		Email:          copyStringPtr(f.Email),
		Phone:          copyStringPtr(f.Phone),
		Status:         f.Status,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.StaffMember value.
func (f StaffFixture) Persistence() persistence.StaffMember {
	return persistence.StaffMember{
		ID:             f.ID,
		OrganizationID: f.OrganizationID,
		Name:           f.Name,
		Position:       f.Position,
		Email:          copyStringPtr(f.Email),
		Phone:          copyStringPtr(f.Phone),
		Status:         string(f.Status),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// Input returns the fixture as an application.StaffInput.
func (f StaffFixture) Input() application.StaffInput {
	return application.StaffInput{
		Name:     f.Name,
		Position: f.Position,
		Email:    copyStringPtr(f.Email),
		Phone:    copyStringPtr(f.Phone),
		Status:   f.Status,
	}
}

// helpers to deep copy optional fields.
func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func copyTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
