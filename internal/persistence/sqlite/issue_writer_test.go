package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/gym-maintenance/internal/persistence"
)

func TestIssueWriter_ApplyIssueReport(t *testing.T) {
	ctx := context.Background()

	t.Run("commits both writes together", func(t *testing.T) {
		pool := newTestPool(t)
		equipment := NewEquipmentRepository(pool)
		ledger := NewLogRepository(pool)
		writer := NewIssueWriter(pool)

		item := testEquipment("eq-1")
		if err := equipment.CreateEquipment(ctx, item); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		item.IssueCount = 1
		item.Status = "maintenance"
		item.UpdatedAt = testTime(1)
		entry := testLogEntry("log-1", 0)
		entry.Type = "issue"
		entry.Status = "pending"
		entry.EquipmentID = strp("eq-1")
		entry.EquipmentName = strp(item.Name)

		if err := writer.ApplyIssueReport(ctx, item, entry); err != nil {
			t.Fatalf("apply failed: %v", err)
		}

		got, err := equipment.GetEquipment(ctx, "eq-1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.IssueCount != 1 || got.Status != "maintenance" {
			t.Fatalf("expected equipment updated, got %+v", got)
		}
		if _, err := ledger.GetLogEntry(ctx, "log-1"); err != nil {
			t.Fatalf("expected ledger entry committed, got %v", err)
		}
	})

	t.Run("rolls back the equipment update when the entry fails", func(t *testing.T) {
		pool := newTestPool(t)
		equipment := NewEquipmentRepository(pool)
		ledger := NewLogRepository(pool)
		writer := NewIssueWriter(pool)

		item := testEquipment("eq-1")
		if err := equipment.CreateEquipment(ctx, item); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		existing := testLogEntry("log-1", 0)
		if err := ledger.AppendLogEntry(ctx, existing); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		item.IssueCount = 5
		duplicate := testLogEntry("log-1", 0)
		if err := writer.ApplyIssueReport(ctx, item, duplicate); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}

		got, err := equipment.GetEquipment(ctx, "eq-1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.IssueCount != 0 {
			t.Fatalf("expected the equipment update rolled back, got %d", got.IssueCount)
		}
	})

	t.Run("rejects a report against missing equipment", func(t *testing.T) {
		pool := newTestPool(t)
		writer := NewIssueWriter(pool)

		if err := writer.ApplyIssueReport(ctx, testEquipment("missing"), testLogEntry("log-1", 0)); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
