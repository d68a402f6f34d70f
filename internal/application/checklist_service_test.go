package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChecklistService_AddItem(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		svc := NewChecklistService(&checklistRepoStub{}, &logRepoStub{}, nil, nil)

		_, err := svc.AddItem(context.Background(), ChecklistItemInput{
			Category: "paperwork",
			Task:     "  ",
			Priority: "critical",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"category", "task", "priority"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("persists an incomplete item", func(t *testing.T) {
		repo := &checklistRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewChecklistService(repo, &logRepoStub{}, sequenceIDs("item-1"), fixedClock(now))

		item, err := svc.AddItem(context.Background(), ChecklistItemInput{
			Category: ChecklistSafety,
			Task:     "  Check emergency stops  ",
			Priority: PriorityHigh,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if item.ID != "item-1" {
			t.Fatalf("expected generated id, got %q", item.ID)
		}
		if item.Task != "Check emergency stops" {
			t.Fatalf("expected trimmed task, got %q", item.Task)
		}
		if item.Completed || item.CompletedBy != nil || item.CompletedAt != nil {
			t.Fatalf("expected item to start incomplete, got %+v", item)
		}
		if repo.created.ID != "item-1" {
			t.Fatalf("expected repository to receive the record, got %q", repo.created.ID)
		}
	})
}

func TestChecklistService_Toggle(t *testing.T) {
	storedItem := func() ChecklistItem {
		return ChecklistItem{
			ID:        "item-1",
			Category:  ChecklistSafety,
			Task:      "Check emergency stops",
			Priority:  PriorityHigh,
			CreatedAt: time.Date(2024, time.March, 1, 7, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.March, 1, 7, 0, 0, 0, time.UTC),
		}
	}

	t.Run("completing requires a staff name", func(t *testing.T) {
		svc := NewChecklistService(&checklistRepoStub{}, &logRepoStub{}, nil, nil)

		_, err := svc.Toggle(context.Background(), "item-1", true, "  ")
		if !errors.Is(err, ErrStaffRequired) {
			t.Fatalf("expected ErrStaffRequired, got %v", err)
		}
	})

	t.Run("completing stamps both fields and logs once", func(t *testing.T) {
		repo := &checklistRepoStub{getItem: checklistItemToRecord(storedItem())}
		ledger := &logRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewChecklistService(repo, ledger, sequenceIDs("log-1"), fixedClock(now))

		item, err := svc.Toggle(context.Background(), "item-1", true, "Jordan")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if !item.Completed {
			t.Fatalf("expected item completed")
		}
		if item.CompletedBy == nil || *item.CompletedBy != "Jordan" {
			t.Fatalf("expected completedBy stamped, got %v", item.CompletedBy)
		}
		if item.CompletedAt == nil || !item.CompletedAt.Equal(now) {
			t.Fatalf("expected completedAt stamped, got %v", item.CompletedAt)
		}

		if len(ledger.appended) != 1 {
			t.Fatalf("expected one ledger entry, got %d", len(ledger.appended))
		}
		entry := ledger.appended[0]
		if entry.Type != string(LogTypeDailyCheck) {
			t.Fatalf("expected daily-check entry, got %q", entry.Type)
		}
		if entry.Description != "Daily check completed: Check emergency stops" {
			t.Fatalf("unexpected description %q", entry.Description)
		}
		if entry.Priority == nil || *entry.Priority != string(PriorityHigh) {
			t.Fatalf("expected item priority carried onto the entry, got %v", entry.Priority)
		}
	})

	t.Run("un-completing clears both fields and logs nothing", func(t *testing.T) {
		completed := storedItem()
		by := "Jordan"
		at := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
		completed.Completed = true
		completed.CompletedBy = &by
		completed.CompletedAt = &at

		repo := &checklistRepoStub{getItem: checklistItemToRecord(completed)}
		ledger := &logRepoStub{}
		svc := NewChecklistService(repo, ledger, nil, fixedClock(at.Add(time.Hour)))

		item, err := svc.Toggle(context.Background(), "item-1", false, "")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if item.Completed || item.CompletedBy != nil || item.CompletedAt != nil {
			t.Fatalf("expected completion fields cleared, got %+v", item)
		}
		if len(ledger.appended) != 0 {
			t.Fatalf("expected no ledger entries, got %d", len(ledger.appended))
		}
	})
}

func TestChecklistService_CompleteAll(t *testing.T) {
	t.Run("requires a staff name", func(t *testing.T) {
		svc := NewChecklistService(&checklistRepoStub{}, &logRepoStub{}, nil, nil)

		_, err := svc.CompleteAll(context.Background(), "")
		if !errors.Is(err, ErrStaffRequired) {
			t.Fatalf("expected ErrStaffRequired, got %v", err)
		}
	})

	t.Run("writes one batch and one summary entry", func(t *testing.T) {
		repo := &checklistRepoStub{}
		repo.list = append(repo.list,
			checklistItemToRecord(ChecklistItem{ID: "item-1", Category: ChecklistSafety, Task: "First aid kit stocked", Priority: PriorityMedium}),
			checklistItemToRecord(ChecklistItem{ID: "item-2", Category: ChecklistCleanliness, Task: "Wipe down machines", Priority: PriorityLow}),
			checklistItemToRecord(ChecklistItem{ID: "item-3", Category: ChecklistFacility, Task: "Check locker rooms", Priority: PriorityMedium}),
		)
		ledger := &logRepoStub{}
		now := time.Date(2024, time.March, 4, 21, 0, 0, 0, time.UTC)
		svc := NewChecklistService(repo, ledger, sequenceIDs("log-1"), fixedClock(now))

		items, err := svc.CompleteAll(context.Background(), "Jordan")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if len(items) != 3 {
			t.Fatalf("expected three completed items, got %d", len(items))
		}
		for _, item := range items {
			if !item.Completed || item.CompletedBy == nil || *item.CompletedBy != "Jordan" {
				t.Fatalf("expected every item completed by Jordan, got %+v", item)
			}
		}
		if len(repo.updatedBatch) != 3 {
			t.Fatalf("expected one batch of three updates, got %d", len(repo.updatedBatch))
		}

		if len(ledger.appended) != 1 {
			t.Fatalf("expected exactly one summary entry, got %d", len(ledger.appended))
		}
		entry := ledger.appended[0]
		if entry.Description != "All daily checklist items completed (3 tasks)" {
			t.Fatalf("unexpected description %q", entry.Description)
		}
		if entry.Priority != nil {
			t.Fatalf("expected the summary entry to carry no priority, got %v", entry.Priority)
		}
	})
}

func TestChecklistService_UpdateNotes(t *testing.T) {
	by := "Jordan"
	at := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	stored := ChecklistItem{
		ID:          "item-1",
		Category:    ChecklistSafety,
		Task:        "Check emergency stops",
		Priority:    PriorityHigh,
		Completed:   true,
		CompletedBy: &by,
		CompletedAt: &at,
	}
	repo := &checklistRepoStub{getItem: checklistItemToRecord(stored)}
	svc := NewChecklistService(repo, &logRepoStub{}, nil, fixedClock(at.Add(time.Hour)))

	notes := "  left stop sticks slightly  "
	item, err := svc.UpdateNotes(context.Background(), "item-1", &notes)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if item.Notes == nil || *item.Notes != "left stop sticks slightly" {
		t.Fatalf("expected trimmed notes, got %v", item.Notes)
	}
	if !item.Completed || item.CompletedBy == nil || item.CompletedAt == nil {
		t.Fatalf("expected completion fields untouched, got %+v", item)
	}
}

func TestChecklistService_Seed(t *testing.T) {
	template := []ChecklistItemInput{
		{Category: ChecklistSafety, Task: "Check emergency stops", Priority: PriorityHigh},
		{Category: ChecklistCleanliness, Task: "Wipe down machines", Priority: PriorityMedium},
	}

	t.Run("seeds an empty checklist", func(t *testing.T) {
		repo := &checklistRepoStub{}
		svc := NewChecklistService(repo, &logRepoStub{}, sequenceIDs("item-1", "item-2"), fixedClock(time.Date(2024, time.March, 4, 6, 0, 0, 0, time.UTC)))

		seeded, err := svc.Seed(context.Background(), template)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if seeded != 2 {
			t.Fatalf("expected two seeded items, got %d", seeded)
		}
		if len(repo.batch) != 2 {
			t.Fatalf("expected one batch of two records, got %d", len(repo.batch))
		}
	})

	t.Run("leaves a populated checklist alone", func(t *testing.T) {
		repo := &checklistRepoStub{}
		repo.list = append(repo.list, checklistItemToRecord(ChecklistItem{ID: "item-1", Category: ChecklistSafety, Task: "Existing", Priority: PriorityLow}))
		svc := NewChecklistService(repo, &logRepoStub{}, nil, nil)

		seeded, err := svc.Seed(context.Background(), template)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if seeded != 0 {
			t.Fatalf("expected no seeding, got %d", seeded)
		}
		if len(repo.batch) != 0 {
			t.Fatalf("expected no batch write, got %d records", len(repo.batch))
		}
	})
}
