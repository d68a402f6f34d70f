package application

import (
	"errors"
	"strings"

	"github.com/example/gym-maintenance/internal/persistence"
)

// mapRepoError translates persistence sentinels into application sentinels.
// Constraint violations fall through as-is: the services validate before
// writing, so one here is a programming error worth surfacing raw.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func equipmentToRecord(item Equipment) persistence.Equipment {
	return persistence.Equipment{
		ID:         item.ID,
		Name:       item.Name,
		Category:   string(item.Category),
		Location:   item.Location,
		Status:     string(item.Status),
		LastCheck:  item.LastCheck,
		NextDue:    item.NextDue,
		IssueCount: item.IssueCount,
		PhotoCount: item.PhotoCount,
		Notes:      item.Notes,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func equipmentFromRecord(record persistence.Equipment) Equipment {
	return Equipment{
		ID:         record.ID,
		Name:       record.Name,
		Category:   EquipmentCategory(record.Category),
		Location:   record.Location,
		Status:     EquipmentStatus(record.Status),
		LastCheck:  record.LastCheck,
		NextDue:    record.NextDue,
		IssueCount: record.IssueCount,
		PhotoCount: record.PhotoCount,
		Notes:      record.Notes,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func checklistItemToRecord(item ChecklistItem) persistence.ChecklistItem {
	return persistence.ChecklistItem{
		ID:          item.ID,
		Category:    string(item.Category),
		Task:        item.Task,
		Priority:    string(item.Priority),
		Completed:   item.Completed,
		CompletedBy: item.CompletedBy,
		CompletedAt: item.CompletedAt,
		AssignedTo:  item.AssignedTo,
		Notes:       item.Notes,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func checklistItemFromRecord(record persistence.ChecklistItem) ChecklistItem {
	return ChecklistItem{
		ID:          record.ID,
		Category:    ChecklistCategory(record.Category),
		Task:        record.Task,
		Priority:    Priority(record.Priority),
		Completed:   record.Completed,
		CompletedBy: record.CompletedBy,
		CompletedAt: record.CompletedAt,
		AssignedTo:  record.AssignedTo,
		Notes:       record.Notes,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func logEntryToRecord(entry LogEntry) persistence.LogEntry {
	record := persistence.LogEntry{
		ID:            entry.ID,
		EquipmentID:   entry.EquipmentID,
		EquipmentName: entry.EquipmentName,
		Type:          string(entry.Type),
		Description:   entry.Description,
		Staff:         entry.Staff,
		Timestamp:     entry.Timestamp,
		Status:        string(entry.Status),
		Photos:        entry.Photos,
	}
	if entry.Priority != nil {
		value := string(*entry.Priority)
		record.Priority = &value
	}
	return record
}

func logEntryFromRecord(record persistence.LogEntry) LogEntry {
	entry := LogEntry{
		ID:            record.ID,
		EquipmentID:   record.EquipmentID,
		EquipmentName: record.EquipmentName,
		Type:          LogType(record.Type),
		Description:   record.Description,
		Staff:         record.Staff,
		Timestamp:     record.Timestamp,
		Status:        LogStatus(record.Status),
		Photos:        record.Photos,
	}
	if record.Priority != nil {
		value := Priority(*record.Priority)
		entry.Priority = &value
	}
	return entry
}

func maintenanceToRecord(task ScheduledMaintenance) persistence.ScheduledMaintenance {
	return persistence.ScheduledMaintenance{
		ID:            task.ID,
		TargetType:    string(task.TargetType),
		EquipmentID:   task.EquipmentID,
		EquipmentName: task.EquipmentName,
		Zone:          task.Zone,
		Title:         task.Title,
		Description:   task.Description,
		ScheduledDate: task.ScheduledDate,
		Priority:      string(task.Priority),
		AssignedTo:    task.AssignedTo,
		Status:        string(task.Status),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

func maintenanceFromRecord(record persistence.ScheduledMaintenance) ScheduledMaintenance {
	return ScheduledMaintenance{
		ID:            record.ID,
		TargetType:    MaintenanceTarget(record.TargetType),
		EquipmentID:   record.EquipmentID,
		EquipmentName: record.EquipmentName,
		Zone:          record.Zone,
		Title:         record.Title,
		Description:   record.Description,
		ScheduledDate: record.ScheduledDate,
		Priority:      Priority(record.Priority),
		AssignedTo:    record.AssignedTo,
		Status:        MaintenanceStatus(record.Status),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func staffMemberToRecord(member StaffMember) persistence.StaffMember {
	return persistence.StaffMember{
		ID:             member.ID,
		OrganizationID: member.OrganizationID,
		Name:           member.Name,
		Position:       member.Position,
		Email:          member.Email,
		Phone:          member.Phone,
		Status:         string(member.Status),
		CreatedAt:      member.CreatedAt,
		UpdatedAt:      member.UpdatedAt,
	}
}

func staffMemberFromRecord(record persistence.StaffMember) StaffMember {
	return StaffMember{
		ID:             record.ID,
		OrganizationID: record.OrganizationID,
		Name:           record.Name,
		Position:       record.Position,
		Email:          record.Email,
		Phone:          record.Phone,
		Status:         StaffStatus(record.Status),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}
