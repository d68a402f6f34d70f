package application

import "time"

// EquipmentCategory classifies a piece of equipment.
type EquipmentCategory string

const (
	CategoryCardio         EquipmentCategory = "cardio"
	CategoryWeightMachines EquipmentCategory = "weight-machines"
	CategoryFreeWeights    EquipmentCategory = "free-weights"
)

// Valid reports whether the category is one of the closed set.
func (c EquipmentCategory) Valid() bool {
	switch c {
	case CategoryCardio, CategoryWeightMachines, CategoryFreeWeights:
		return true
	}
	return false
}

// EquipmentStatus describes the operational state of a piece of equipment.
type EquipmentStatus string

const (
	StatusOperational EquipmentStatus = "operational"
	StatusMaintenance EquipmentStatus = "maintenance"
	StatusBroken      EquipmentStatus = "broken"
)

// Valid reports whether the status is one of the closed set.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusBroken:
		return true
	}
	return false
}

// Priority orders work by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the closed set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// rank orders priorities for sorting; a nil priority sorts last.
func priorityRank(p *Priority) int {
	if p == nil {
		return 0
	}
	switch *p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ChecklistCategory groups daily checklist items.
type ChecklistCategory string

const (
	ChecklistSafety      ChecklistCategory = "safety"
	ChecklistCleanliness ChecklistCategory = "cleanliness"
	ChecklistEquipment   ChecklistCategory = "equipment"
	ChecklistFacility    ChecklistCategory = "facility"
)

// Valid reports whether the category is one of the closed set.
func (c ChecklistCategory) Valid() bool {
	switch c {
	case ChecklistSafety, ChecklistCleanliness, ChecklistEquipment, ChecklistFacility:
		return true
	}
	return false
}

// LogType classifies a maintenance ledger entry.
type LogType string

const (
	LogTypeCheck       LogType = "check"
	LogTypeIssue       LogType = "issue"
	LogTypeRepair      LogType = "repair"
	LogTypeMaintenance LogType = "maintenance"
	LogTypeDailyCheck  LogType = "daily-check"
)

// Valid reports whether the log type is one of the closed set.
func (t LogType) Valid() bool {
	switch t {
	case LogTypeCheck, LogTypeIssue, LogTypeRepair, LogTypeMaintenance, LogTypeDailyCheck:
		return true
	}
	return false
}

// LogStatus describes the workflow state of a ledger entry.
type LogStatus string

const (
	LogStatusCompleted  LogStatus = "completed"
	LogStatusInProgress LogStatus = "in-progress"
	LogStatusPending    LogStatus = "pending"
)

// Valid reports whether the log status is one of the closed set.
func (s LogStatus) Valid() bool {
	switch s {
	case LogStatusCompleted, LogStatusInProgress, LogStatusPending:
		return true
	}
	return false
}

// MaintenanceStatus describes a scheduled maintenance task. Overdue is a
// derived read-time view; only scheduled and completed are ever stored.
type MaintenanceStatus string

const (
	MaintenanceScheduled MaintenanceStatus = "scheduled"
	MaintenanceCompleted MaintenanceStatus = "completed"
	MaintenanceOverdue   MaintenanceStatus = "overdue"
)

// Valid reports whether the status is one of the closed set.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceCompleted, MaintenanceOverdue:
		return true
	}
	return false
}

// MaintenanceTarget discriminates what a scheduled task points at.
type MaintenanceTarget string

const (
	TargetEquipment MaintenanceTarget = "equipment"
	TargetZone      MaintenanceTarget = "zone"
)

// Valid reports whether the target type is one of the closed set.
func (t MaintenanceTarget) Valid() bool {
	return t == TargetEquipment || t == TargetZone
}

// StaffStatus marks whether a staff member is currently active.
type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Valid reports whether the status is one of the closed set.
func (s StaffStatus) Valid() bool {
	return s == StaffActive || s == StaffInactive
}

// Equipment is a tracked piece of gym equipment.
type Equipment struct {
	ID         string
	Name       string
	Category   EquipmentCategory
	Location   string
	Status     EquipmentStatus
	LastCheck  time.Time
	NextDue    time.Time
	IssueCount int
	PhotoCount int
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EquipmentInput captures caller provided equipment fields.
type EquipmentInput struct {
	Name     string
	Category EquipmentCategory
	Location string
	Status   EquipmentStatus
	Notes    *string
}

// ChecklistItem is one entry on the daily checklist.
type ChecklistItem struct {
	ID          string
	Category    ChecklistCategory
	Task        string
	Priority    Priority
	Completed   bool
	CompletedBy *string
	CompletedAt *time.Time
	AssignedTo  *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChecklistItemInput captures caller provided checklist fields.
type ChecklistItemInput struct {
	Category   ChecklistCategory
	Task       string
	Priority   Priority
	AssignedTo *string
	Notes      *string
}

// LogEntry is one row of the append-only maintenance ledger. The equipment
// name is a snapshot taken at write time.
type LogEntry struct {
	ID            string
	EquipmentID   *string
	EquipmentName *string
	Type          LogType
	Description   string
	Staff         string
	Timestamp     time.Time
	Priority      *Priority
	Status        LogStatus
	Photos        []string
}

// LogEntryInput captures the caller supplied fields of a ledger entry; id,
// timestamp, and the equipment name snapshot are assigned by the service.
type LogEntryInput struct {
	EquipmentID *string
	Type        LogType
	Description string
	Staff       string
	Priority    *Priority
	Status      LogStatus
	Photos      []string
}

// LogSort selects the ordering applied to ledger listings.
type LogSort string

const (
	LogSortTimestamp LogSort = "timestamp"
	LogSortType      LogSort = "type"
	LogSortPriority  LogSort = "priority"
)

// LogQuery narrows and orders ledger listings.
type LogQuery struct {
	Search string
	Type   LogType
	SortBy LogSort
}

// ScheduledMaintenance is a future-dated maintenance task against either a
// piece of equipment or a zone.
type ScheduledMaintenance struct {
	ID            string
	TargetType    MaintenanceTarget
	EquipmentID   *string
	EquipmentName *string
	Zone          *string
	Title         string
	Description   string
	ScheduledDate time.Time
	Priority      Priority
	AssignedTo    *string
	Status        MaintenanceStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MaintenanceInput captures caller provided scheduling fields.
type MaintenanceInput struct {
	TargetType    MaintenanceTarget
	EquipmentID   *string
	Zone          *string
	Title         string
	Description   string
	ScheduledDate time.Time
	Priority      Priority
	AssignedTo    *string
}

// IssueReport is the ephemeral input to the issue flow; it is never stored
// as-is.
type IssueReport struct {
	EquipmentID string
	Priority    Priority
	Description string
	ReportedBy  string
	Photos      []string
}

// StaffMember is a staff record within one organization.
type StaffMember struct {
	ID             string
	OrganizationID string
	Name           string
	Position       string
	Email          *string
	Phone          *string
	Status         StaffStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StaffInput captures caller provided staff fields.
type StaffInput struct {
	Name     string
	Position string
	Email    *string
	Phone    *string
	Status   StaffStatus
}
