package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/persistence"
	"github.com/example/gym-maintenance/internal/testfixtures"
)

func TestEquipmentRepository(t *testing.T) {
	t.Parallel()

	t.Run("creates, reads, updates, and deletes equipment", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		base := testfixtures.ReferenceTime()
		item := testfixtures.NewEquipmentFixture(
			testfixtures.WithEquipmentID("eq-1"),
			testfixtures.WithEquipmentName("Treadmill A"),
			testfixtures.WithEquipmentNotes("belt replaced in Jan"),
			testfixtures.WithEquipmentTimestamps(base, base),
		).Persistence()

		if err := harness.Equipment.CreateEquipment(ctx, item); err != nil {
			t.Fatalf("CreateEquipment failed: %v", err)
		}

		fetched, err := harness.Equipment.GetEquipment(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetEquipment failed: %v", err)
		}
		if fetched.Name != item.Name || fetched.Notes == nil || *fetched.Notes != "belt replaced in Jan" {
			t.Fatalf("unexpected equipment data: %#v", fetched)
		}

		fetched.Status = "maintenance"
		fetched.IssueCount = 2
		fetched.UpdatedAt = base.Add(time.Hour)
		if err := harness.Equipment.UpdateEquipment(ctx, fetched); err != nil {
			t.Fatalf("UpdateEquipment failed: %v", err)
		}

		updated, err := harness.Equipment.GetEquipment(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetEquipment after update failed: %v", err)
		}
		if updated.Status != "maintenance" || updated.IssueCount != 2 {
			t.Fatalf("unexpected updated equipment: %#v", updated)
		}

		if err := harness.Equipment.DeleteEquipment(ctx, item.ID); err != nil {
			t.Fatalf("DeleteEquipment failed: %v", err)
		}
		if _, err := harness.Equipment.GetEquipment(ctx, item.ID); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("batch insert is atomic", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		first := testfixtures.NewEquipmentFixture(testfixtures.WithEquipmentID("eq-1")).Persistence()
		if err := harness.Equipment.CreateEquipment(ctx, first); err != nil {
			t.Fatalf("CreateEquipment failed: %v", err)
		}

		batch := []persistence.Equipment{
			testfixtures.NewEquipmentFixture(testfixtures.WithEquipmentID("eq-2")).Persistence(),
			testfixtures.NewEquipmentFixture(testfixtures.WithEquipmentID("eq-1")).Persistence(),
		}
		if err := harness.Equipment.CreateEquipmentBatch(ctx, batch); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if _, err := harness.Equipment.GetEquipment(ctx, "eq-2"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected the batch rolled back, got %v", err)
		}
	})
}

func TestChecklistRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	base := testfixtures.ReferenceTime()
	open := testfixtures.NewChecklistItemFixture(
		testfixtures.WithChecklistID("item-1"),
		testfixtures.WithChecklistTask("Check emergency stops"),
		testfixtures.WithChecklistPriority(application.PriorityHigh),
	).Persistence()
	done := testfixtures.NewChecklistItemFixture(
		testfixtures.WithChecklistID("item-2"),
		testfixtures.WithChecklistCompleted("Jordan", base),
	).Persistence()

	if err := harness.Checklist.CreateChecklistItemBatch(ctx, []persistence.ChecklistItem{open, done}); err != nil {
		t.Fatalf("CreateChecklistItemBatch failed: %v", err)
	}

	items, err := harness.Checklist.ListChecklistItems(ctx)
	if err != nil {
		t.Fatalf("ListChecklistItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}

	fetched, err := harness.Checklist.GetChecklistItem(ctx, "item-2")
	if err != nil {
		t.Fatalf("GetChecklistItem failed: %v", err)
	}
	if !fetched.Completed || fetched.CompletedBy == nil || *fetched.CompletedBy != "Jordan" {
		t.Fatalf("unexpected completion state: %#v", fetched)
	}
}

func TestLogRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	base := testfixtures.ReferenceTime()
	entry := testfixtures.NewLogEntryFixture(
		testfixtures.WithLogID("log-1"),
		testfixtures.WithLogEquipment("eq-1", "Treadmill A"),
		testfixtures.WithLogType(application.LogTypeIssue),
		testfixtures.WithLogDescription("Belt is slipping"),
		testfixtures.WithLogStatus(application.LogStatusPending),
		testfixtures.WithLogPriority(application.PriorityHigh),
		testfixtures.WithLogPhotos("data:image/jpeg;base64,one"),
		testfixtures.WithLogTimestamp(base),
	).Persistence()

	if err := harness.Log.AppendLogEntry(ctx, entry); err != nil {
		t.Fatalf("AppendLogEntry failed: %v", err)
	}

	entries, err := harness.Log.ListLogEntries(ctx, persistence.LogFilter{Type: "issue"})
	if err != nil {
		t.Fatalf("ListLogEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "log-1" || len(entries[0].Photos) != 1 {
		t.Fatalf("unexpected ledger listing: %#v", entries)
	}

	if err := harness.Log.UpdateLogEntryStatus(ctx, "log-1", "in-progress", base.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateLogEntryStatus failed: %v", err)
	}
	fetched, err := harness.Log.GetLogEntry(ctx, "log-1")
	if err != nil {
		t.Fatalf("GetLogEntry failed: %v", err)
	}
	if fetched.Status != "in-progress" || fetched.Description != "Belt is slipping" {
		t.Fatalf("unexpected revised entry: %#v", fetched)
	}
}

func TestMaintenanceRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	base := testfixtures.ReferenceTime()
	task := testfixtures.NewMaintenanceFixture(
		testfixtures.WithMaintenanceID("mt-1"),
		testfixtures.WithMaintenanceEquipment("eq-1", "Treadmill A"),
		testfixtures.WithMaintenanceDate(base.Add(48*time.Hour)),
	).Persistence()

	if err := harness.Maintenance.CreateMaintenance(ctx, task); err != nil {
		t.Fatalf("CreateMaintenance failed: %v", err)
	}

	task.Status = "completed"
	task.UpdatedAt = base.Add(72 * time.Hour)
	if err := harness.Maintenance.UpdateMaintenance(ctx, task); err != nil {
		t.Fatalf("UpdateMaintenance failed: %v", err)
	}

	fetched, err := harness.Maintenance.GetMaintenance(ctx, "mt-1")
	if err != nil {
		t.Fatalf("GetMaintenance failed: %v", err)
	}
	if fetched.Status != "completed" || fetched.EquipmentName == nil || *fetched.EquipmentName != "Treadmill A" {
		t.Fatalf("unexpected task: %#v", fetched)
	}

	if err := harness.Maintenance.DeleteMaintenance(ctx, "mt-1"); err != nil {
		t.Fatalf("DeleteMaintenance failed: %v", err)
	}
	if _, err := harness.Maintenance.GetMaintenance(ctx, "mt-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStaffRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	member := testfixtures.NewStaffFixture(
		testfixtures.WithStaffID("staff-1"),
		testfixtures.WithStaffName("Jordan"),
		testfixtures.WithStaffEmail("jordan@example.com"),
	).Persistence()
	outsider := testfixtures.NewStaffFixture(
		testfixtures.WithStaffID("staff-2"),
		testfixtures.WithStaffOrganization("org-other"),
	).Persistence()

	if err := harness.Staff.CreateStaffMember(ctx, member); err != nil {
		t.Fatalf("CreateStaffMember failed: %v", err)
	}
	if err := harness.Staff.CreateStaffMember(ctx, outsider); err != nil {
		t.Fatalf("CreateStaffMember failed: %v", err)
	}

	members, err := harness.Staff.ListStaffMembers(ctx, testfixtures.OrganizationID)
	if err != nil {
		t.Fatalf("ListStaffMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].ID != "staff-1" {
		t.Fatalf("expected only the fixture organization's staff, got %#v", members)
	}
}

func TestIssueWriterAppliesAtomically(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	item := testfixtures.NewEquipmentFixture(testfixtures.WithEquipmentID("eq-1")).Persistence()
	if err := harness.Equipment.CreateEquipment(ctx, item); err != nil {
		t.Fatalf("CreateEquipment failed: %v", err)
	}

	item.IssueCount = 1
	item.Status = "maintenance"
	entry := testfixtures.NewLogEntryFixture(
		testfixtures.WithLogID("log-1"),
		testfixtures.WithLogEquipment("eq-1", item.Name),
		testfixtures.WithLogType(application.LogTypeIssue),
		testfixtures.WithLogStatus(application.LogStatusPending),
	).Persistence()

	if err := harness.Issues.ApplyIssueReport(ctx, item, entry); err != nil {
		t.Fatalf("ApplyIssueReport failed: %v", err)
	}

	updated, err := harness.Equipment.GetEquipment(ctx, "eq-1")
	if err != nil {
		t.Fatalf("GetEquipment failed: %v", err)
	}
	if updated.IssueCount != 1 || updated.Status != "maintenance" {
		t.Fatalf("unexpected equipment after issue: %#v", updated)
	}
	if _, err := harness.Log.GetLogEntry(ctx, "log-1"); err != nil {
		t.Fatalf("expected the ledger entry stored, got %v", err)
	}
}
