package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/gym-maintenance/internal/persistence"
)

func testEquipment(id string) persistence.Equipment {
	at := testTime(0)
	return persistence.Equipment{
		ID:        id,
		Name:      "Treadmill " + id,
		Category:  "cardio",
		Location:  "Cardio Zone",
		Status:    "operational",
		LastCheck: at,
		NextDue:   at.AddDate(0, 0, 7),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestEquipmentRepository_CreateAndGet(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))
	ctx := context.Background()

	item := testEquipment("eq-1")
	item.Notes = strp("front row")
	if err := repo.CreateEquipment(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetEquipment(ctx, "eq-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != item.Name || got.Category != item.Category {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Notes == nil || *got.Notes != "front row" {
		t.Fatalf("expected notes round trip, got %v", got.Notes)
	}
	if !got.LastCheck.Equal(item.LastCheck) || !got.NextDue.Equal(item.NextDue) {
		t.Fatalf("expected timestamps round trip, got %+v", got)
	}

	if err := repo.CreateEquipment(ctx, item); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on second create, got %v", err)
	}
}

func TestEquipmentRepository_GetMissing(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))

	if _, err := repo.GetEquipment(context.Background(), "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEquipmentRepository_Update(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))
	ctx := context.Background()

	item := testEquipment("eq-1")
	if err := repo.CreateEquipment(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	item.Status = "maintenance"
	item.IssueCount = 2
	item.UpdatedAt = testTime(1)
	if err := repo.UpdateEquipment(ctx, item); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.GetEquipment(ctx, "eq-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "maintenance" || got.IssueCount != 2 {
		t.Fatalf("expected updated record, got %+v", got)
	}

	missing := testEquipment("missing")
	if err := repo.UpdateEquipment(ctx, missing); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEquipmentRepository_Delete(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))
	ctx := context.Background()

	if err := repo.CreateEquipment(ctx, testEquipment("eq-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.DeleteEquipment(ctx, "eq-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetEquipment(ctx, "eq-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteEquipment(ctx, "eq-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEquipmentRepository_List(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))
	ctx := context.Background()

	second := testEquipment("eq-2")
	second.CreatedAt = testTime(2)
	first := testEquipment("eq-1")
	for _, item := range []persistence.Equipment{second, first} {
		if err := repo.CreateEquipment(ctx, item); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := repo.ListEquipment(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != "eq-1" || items[1].ID != "eq-2" {
		t.Fatalf("expected creation order, got %+v", items)
	}
}

func TestEquipmentRepository_BatchRollsBack(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))
	ctx := context.Background()

	existing := testEquipment("eq-1")
	if err := repo.CreateEquipment(ctx, existing); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fresh := testEquipment("eq-2")
	err := repo.CreateEquipmentBatch(ctx, []persistence.Equipment{fresh, existing})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := repo.GetEquipment(ctx, "eq-2"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected the batch rolled back, got %v", err)
	}
}

func TestEquipmentRepository_CategoryConstraint(t *testing.T) {
	repo := NewEquipmentRepository(newTestPool(t))

	bad := testEquipment("eq-1")
	bad.Category = "trampoline"
	err := repo.CreateEquipment(context.Background(), bad)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}
