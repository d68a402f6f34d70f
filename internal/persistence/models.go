package persistence

import "time"

// Equipment represents a tracked piece of gym equipment.
type Equipment struct {
	ID         string
	Name       string
	Category   string
	Location   string
	Status     string
	LastCheck  time.Time
	NextDue    time.Time
	IssueCount int
	PhotoCount int
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ChecklistItem represents one entry on the daily checklist.
type ChecklistItem struct {
	ID          string
	Category    string
	Task        string
	Priority    string
	Completed   bool
	CompletedBy *string
	CompletedAt *time.Time
	AssignedTo  *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LogEntry represents one row of the append-only maintenance ledger. The
// equipment fields are a denormalized snapshot taken at write time, not a
// live reference.
type LogEntry struct {
	ID            string
	EquipmentID   *string
	EquipmentName *string
	Type          string
	Description   string
	Staff         string
	Timestamp     time.Time
	Priority      *string
	Status        string
	Photos        []string
}

// LogFilter narrows queries issued to the log repository.
type LogFilter struct {
	Search string
	Type   string
}

// ScheduledMaintenance represents a future-dated maintenance task against
// either a piece of equipment or a zone, discriminated by TargetType.
type ScheduledMaintenance struct {
	ID            string
	TargetType    string
	EquipmentID   *string
	EquipmentName *string
	Zone          *string
	Title         string
	Description   string
	ScheduledDate time.Time
	Priority      string
	AssignedTo    *string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StaffMember represents a staff record namespaced by organization.
type StaffMember struct {
	ID             string
	OrganizationID string
	Name           string
	Position       string
	Email          *string
	Phone          *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
