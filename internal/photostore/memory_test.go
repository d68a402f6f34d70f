package photostore

import (
	"context"
	"testing"
	"time"
)

func testPhoto(id, equipmentID string) Photo {
	return Photo{
		ID:          id,
		EquipmentID: equipmentID,
		Reference:   "data:image/jpeg;base64,xyz",
		Caption:     "Issue report: Handrail is loose",
		UploadedBy:  "Jordan",
		UploadedAt:  time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC),
	}
}

func TestMemoryStoreAppendAndList(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := testPhoto("photo-1", "eq-1")
	second := testPhoto("photo-2", "eq-1")
	if err := store.Append(ctx, "eq-1", []Photo{first}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append(ctx, "eq-1", []Photo{second}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	photos, err := store.List(ctx, "eq-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected two photos, got %d", len(photos))
	}
	if photos[0].ID != "photo-1" || photos[1].ID != "photo-2" {
		t.Fatalf("expected append order, got %q then %q", photos[0].ID, photos[1].ID)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Append(ctx, "eq-1", []Photo{testPhoto("photo-1", "eq-1")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	photos, err := store.List(ctx, "eq-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	photos[0].Caption = "mutated"

	again, err := store.List(ctx, "eq-1")
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if again[0].Caption != "Issue report: Handrail is loose" {
		t.Fatalf("expected stored record untouched, got %q", again[0].Caption)
	}
}

func TestMemoryStoreListUnknownEquipment(t *testing.T) {
	store := NewMemoryStore()

	photos, err := store.List(context.Background(), "eq-unknown")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(photos) != 0 {
		t.Fatalf("expected no photos, got %d", len(photos))
	}
}
