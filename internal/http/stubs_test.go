package http

import (
	"context"
	"io"
	"time"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/photostore"
	"github.com/example/gym-maintenance/internal/report"
)

type equipmentServiceStub struct {
	item    application.Equipment
	items   []application.Equipment
	err     error
	lastID  string
	deleted string
}

func (s *equipmentServiceStub) Add(ctx context.Context, input application.EquipmentInput) (application.Equipment, error) {
	if s.err != nil {
		return application.Equipment{}, s.err
	}
	return s.item, nil
}

func (s *equipmentServiceStub) Update(ctx context.Context, id string, input application.EquipmentInput) (application.Equipment, error) {
	s.lastID = id
	if s.err != nil {
		return application.Equipment{}, s.err
	}
	return s.item, nil
}

func (s *equipmentServiceStub) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *equipmentServiceStub) CompleteCheck(ctx context.Context, id, staff string) (application.Equipment, error) {
	s.lastID = id
	if s.err != nil {
		return application.Equipment{}, s.err
	}
	return s.item, nil
}

func (s *equipmentServiceStub) Get(ctx context.Context, id string) (application.Equipment, error) {
	s.lastID = id
	if s.err != nil {
		return application.Equipment{}, s.err
	}
	return s.item, nil
}

func (s *equipmentServiceStub) List(ctx context.Context) ([]application.Equipment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *equipmentServiceStub) ImportCSV(ctx context.Context, r io.Reader) ([]application.Equipment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type photoListerStub struct {
	photos []photostore.Photo
	err    error
}

func (s *photoListerStub) List(ctx context.Context, equipmentID string) ([]photostore.Photo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.photos, nil
}

type checklistServiceStub struct {
	item  application.ChecklistItem
	items []application.ChecklistItem
	err   error
}

func (s *checklistServiceStub) AddItem(ctx context.Context, input application.ChecklistItemInput) (application.ChecklistItem, error) {
	if s.err != nil {
		return application.ChecklistItem{}, s.err
	}
	return s.item, nil
}

func (s *checklistServiceStub) Toggle(ctx context.Context, id string, completed bool, staff string) (application.ChecklistItem, error) {
	if s.err != nil {
		return application.ChecklistItem{}, s.err
	}
	return s.item, nil
}

func (s *checklistServiceStub) CompleteAll(ctx context.Context, staff string) ([]application.ChecklistItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *checklistServiceStub) UpdateNotes(ctx context.Context, id string, notes *string) (application.ChecklistItem, error) {
	if s.err != nil {
		return application.ChecklistItem{}, s.err
	}
	return s.item, nil
}

func (s *checklistServiceStub) List(ctx context.Context) ([]application.ChecklistItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type logServiceStub struct {
	entry     application.LogEntry
	entries   []application.LogEntry
	err       error
	lastQuery application.LogQuery
}

func (s *logServiceStub) Append(ctx context.Context, input application.LogEntryInput) (application.LogEntry, error) {
	if s.err != nil {
		return application.LogEntry{}, s.err
	}
	return s.entry, nil
}

func (s *logServiceStub) UpdateStatus(ctx context.Context, id string, status application.LogStatus) (application.LogEntry, error) {
	if s.err != nil {
		return application.LogEntry{}, s.err
	}
	return s.entry, nil
}

func (s *logServiceStub) List(ctx context.Context, query application.LogQuery) ([]application.LogEntry, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

type maintenanceServiceStub struct {
	task    application.ScheduledMaintenance
	tasks   []application.ScheduledMaintenance
	err     error
	deleted string
	lastDay time.Time
}

func (s *maintenanceServiceStub) Schedule(ctx context.Context, input application.MaintenanceInput) (application.ScheduledMaintenance, error) {
	if s.err != nil {
		return application.ScheduledMaintenance{}, s.err
	}
	return s.task, nil
}

func (s *maintenanceServiceStub) MarkStatus(ctx context.Context, id string, status application.MaintenanceStatus) (application.ScheduledMaintenance, error) {
	if s.err != nil {
		return application.ScheduledMaintenance{}, s.err
	}
	return s.task, nil
}

func (s *maintenanceServiceStub) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *maintenanceServiceStub) CompleteChecked(ctx context.Context, ids []string, notesByID map[string]string, staff string) ([]application.ScheduledMaintenance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *maintenanceServiceStub) List(ctx context.Context) ([]application.ScheduledMaintenance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *maintenanceServiceStub) ForDate(ctx context.Context, day time.Time) ([]application.ScheduledMaintenance, error) {
	s.lastDay = day
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *maintenanceServiceStub) Overdue(ctx context.Context) ([]application.ScheduledMaintenance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *maintenanceServiceStub) Upcoming(ctx context.Context) ([]application.ScheduledMaintenance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

type issueServiceStub struct {
	result application.IssueResult
	err    error
	report application.IssueReport
}

func (s *issueServiceStub) Report(ctx context.Context, r application.IssueReport) (application.IssueResult, error) {
	s.report = r
	if s.err != nil {
		return application.IssueResult{}, s.err
	}
	return s.result, nil
}

type staffServiceStub struct {
	member  application.StaffMember
	members []application.StaffMember
	err     error
	deleted string
}

func (s *staffServiceStub) Add(ctx context.Context, input application.StaffInput) (application.StaffMember, error) {
	if s.err != nil {
		return application.StaffMember{}, s.err
	}
	return s.member, nil
}

func (s *staffServiceStub) Update(ctx context.Context, id string, input application.StaffInput) (application.StaffMember, error) {
	if s.err != nil {
		return application.StaffMember{}, s.err
	}
	return s.member, nil
}

func (s *staffServiceStub) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *staffServiceStub) List(ctx context.Context) ([]application.StaffMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.members, nil
}

type reportGeneratorStub struct {
	output     []byte
	err        error
	lastParams report.Params
}

func (s *reportGeneratorStub) Generate(ctx context.Context, params report.Params) ([]byte, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

type pingerStub struct {
	err error
}

func (s *pingerStub) Ping(ctx context.Context) error {
	return s.err
}

func sampleEquipment() application.Equipment {
	at := time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)
	return application.Equipment{
		ID:        "eq-1",
		Name:      "Treadmill A",
		Category:  application.CategoryCardio,
		Location:  "Cardio floor",
		Status:    application.StatusOperational,
		LastCheck: at,
		NextDue:   at.Add(7 * 24 * time.Hour),
		CreatedAt: at,
		UpdatedAt: at,
	}
}
