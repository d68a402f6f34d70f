package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequenceIDs(ids ...string) func() string {
	index := 0
	return func() string {
		if index >= len(ids) {
			return ""
		}
		id := ids[index]
		index++
		return id
	}
}

func TestEquipmentService_Add(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		svc := NewEquipmentService(&equipmentRepoStub{}, &logRepoStub{}, nil, nil, 0)

		_, err := svc.Add(context.Background(), EquipmentInput{
			Name:     "  ",
			Category: "rowing",
			Location: "",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "category", "location"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("persists with generated id and check schedule", func(t *testing.T) {
		repo := &equipmentRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewEquipmentService(repo, &logRepoStub{}, sequenceIDs("eq-1"), fixedClock(now), 0)

		item, err := svc.Add(context.Background(), EquipmentInput{
			Name:     "  Treadmill A  ",
			Category: CategoryCardio,
			Location: " Cardio Zone ",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if item.ID != "eq-1" {
			t.Fatalf("expected generated id, got %q", item.ID)
		}
		if item.Name != "Treadmill A" || item.Location != "Cardio Zone" {
			t.Fatalf("expected trimmed fields, got %q / %q", item.Name, item.Location)
		}
		if item.Status != StatusOperational {
			t.Fatalf("expected status to default to operational, got %q", item.Status)
		}
		if !item.LastCheck.Equal(now) {
			t.Fatalf("expected last check at creation time, got %v", item.LastCheck)
		}
		if !item.NextDue.Equal(now.Add(DefaultCheckInterval)) {
			t.Fatalf("expected next due one interval later, got %v", item.NextDue)
		}
		if repo.created.ID != "eq-1" {
			t.Fatalf("expected repository to receive the record, got %q", repo.created.ID)
		}
	})

	t.Run("honours a configured check interval", func(t *testing.T) {
		repo := &equipmentRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewEquipmentService(repo, &logRepoStub{}, sequenceIDs("eq-1"), fixedClock(now), 24*time.Hour)

		item, err := svc.Add(context.Background(), EquipmentInput{
			Name:     "Bench",
			Category: CategoryFreeWeights,
			Location: "Free Weights Area",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !item.NextDue.Equal(now.Add(24 * time.Hour)) {
			t.Fatalf("expected next due a day later, got %v", item.NextDue)
		}
	})
}

func TestEquipmentService_Update(t *testing.T) {
	t.Run("returns not found for missing equipment", func(t *testing.T) {
		svc := NewEquipmentService(&equipmentRepoStub{}, &logRepoStub{}, nil, nil, 0)

		_, err := svc.Update(context.Background(), "missing", EquipmentInput{
			Name:     "Treadmill",
			Category: CategoryCardio,
			Location: "Cardio Zone",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("preserves counters and check schedule", func(t *testing.T) {
		lastCheck := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
		repo := &equipmentRepoStub{}
		repo.getItem = equipmentToRecord(Equipment{
			ID:         "eq-1",
			Name:       "Treadmill A",
			Category:   CategoryCardio,
			Location:   "Cardio Zone",
			Status:     StatusMaintenance,
			LastCheck:  lastCheck,
			NextDue:    lastCheck.Add(DefaultCheckInterval),
			IssueCount: 3,
			PhotoCount: 2,
			CreatedAt:  lastCheck,
			UpdatedAt:  lastCheck,
		})
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewEquipmentService(repo, &logRepoStub{}, nil, fixedClock(now), 0)

		item, err := svc.Update(context.Background(), "eq-1", EquipmentInput{
			Name:     "Treadmill B",
			Category: CategoryCardio,
			Location: "Cardio Zone",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if item.Name != "Treadmill B" {
			t.Fatalf("expected renamed equipment, got %q", item.Name)
		}
		if item.Status != StatusMaintenance {
			t.Fatalf("expected empty status to keep the stored value, got %q", item.Status)
		}
		if item.IssueCount != 3 || item.PhotoCount != 2 {
			t.Fatalf("expected counters preserved, got %d / %d", item.IssueCount, item.PhotoCount)
		}
		if !item.LastCheck.Equal(lastCheck) {
			t.Fatalf("expected check schedule untouched, got %v", item.LastCheck)
		}
		if !item.UpdatedAt.Equal(now) {
			t.Fatalf("expected updated timestamp refreshed, got %v", item.UpdatedAt)
		}
	})
}

func TestEquipmentService_CompleteCheck(t *testing.T) {
	t.Run("requires a staff name", func(t *testing.T) {
		svc := NewEquipmentService(&equipmentRepoStub{}, &logRepoStub{}, nil, nil, 0)

		_, err := svc.CompleteCheck(context.Background(), "eq-1", "   ")
		if !errors.Is(err, ErrStaffRequired) {
			t.Fatalf("expected ErrStaffRequired, got %v", err)
		}
	})

	t.Run("advances the schedule and logs the check", func(t *testing.T) {
		lastCheck := time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC)
		repo := &equipmentRepoStub{}
		repo.getItem = equipmentToRecord(Equipment{
			ID:        "eq-1",
			Name:      "Treadmill A",
			Category:  CategoryCardio,
			Location:  "Cardio Zone",
			Status:    StatusOperational,
			LastCheck: lastCheck,
			NextDue:   lastCheck.Add(DefaultCheckInterval),
			CreatedAt: lastCheck,
			UpdatedAt: lastCheck,
		})
		ledger := &logRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewEquipmentService(repo, ledger, sequenceIDs("log-1"), fixedClock(now), 0)

		item, err := svc.CompleteCheck(context.Background(), "eq-1", "Jordan")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if !item.LastCheck.Equal(now) {
			t.Fatalf("expected last check moved to now, got %v", item.LastCheck)
		}
		if !item.NextDue.Equal(now.Add(DefaultCheckInterval)) {
			t.Fatalf("expected next due one interval later, got %v", item.NextDue)
		}

		if len(ledger.appended) != 1 {
			t.Fatalf("expected one ledger entry, got %d", len(ledger.appended))
		}
		entry := ledger.appended[0]
		if entry.Type != string(LogTypeCheck) {
			t.Fatalf("expected check entry, got %q", entry.Type)
		}
		if entry.Description != "Treadmill A check completed by Jordan" {
			t.Fatalf("unexpected description %q", entry.Description)
		}
		if entry.EquipmentID == nil || *entry.EquipmentID != "eq-1" {
			t.Fatalf("expected equipment snapshot on the entry, got %v", entry.EquipmentID)
		}
		if entry.Status != string(LogStatusCompleted) {
			t.Fatalf("expected completed entry, got %q", entry.Status)
		}
	})
}

func TestEquipmentService_ImportCSV(t *testing.T) {
	t.Run("persists every row as one batch", func(t *testing.T) {
		repo := &equipmentRepoStub{}
		now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		svc := NewEquipmentService(repo, &logRepoStub{}, sequenceIDs("eq-1", "eq-2"), fixedClock(now), 0)

		doc := strings.Join([]string{
			"name,category,location,status,notes",
			"Treadmill A,cardio,Cardio Zone,operational,front row",
			"Squat Rack,free-weights,Free Weights Area,,",
		}, "\n")

		items, err := svc.ImportCSV(context.Background(), strings.NewReader(doc))
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected two imported items, got %d", len(items))
		}
		if len(repo.batch) != 2 {
			t.Fatalf("expected one batch of two records, got %d", len(repo.batch))
		}
		if items[1].Status != StatusOperational {
			t.Fatalf("expected blank status to default to operational, got %q", items[1].Status)
		}
		if items[0].Notes == nil || *items[0].Notes != "front row" {
			t.Fatalf("expected notes carried through, got %v", items[0].Notes)
		}
	})

	t.Run("rejects the whole import on a bad row", func(t *testing.T) {
		repo := &equipmentRepoStub{}
		svc := NewEquipmentService(repo, &logRepoStub{}, nil, nil, 0)

		doc := strings.Join([]string{
			"name,category,location",
			"Treadmill A,cardio,Cardio Zone",
			"Mystery Machine,teleporter,Basement",
		}, "\n")

		_, err := svc.ImportCSV(context.Background(), strings.NewReader(doc))

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["row 3"]; !ok {
			t.Fatalf("expected the failing row number, got %v", vErr.FieldErrors)
		}
		if len(repo.batch) != 0 {
			t.Fatalf("expected nothing persisted, got %d records", len(repo.batch))
		}
	})

	t.Run("rejects a document without the required header", func(t *testing.T) {
		svc := NewEquipmentService(&equipmentRepoStub{}, &logRepoStub{}, nil, nil, 0)

		_, err := svc.ImportCSV(context.Background(), strings.NewReader("id,label\n1,Thing"))

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["file"]; !ok {
			t.Fatalf("expected a file level error, got %v", vErr.FieldErrors)
		}
	})
}

func TestEquipmentService_Delete(t *testing.T) {
	repo := &equipmentRepoStub{}
	svc := NewEquipmentService(repo, &logRepoStub{}, nil, nil, 0)

	if err := svc.Delete(context.Background(), "eq-1"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if repo.deletedID != "eq-1" {
		t.Fatalf("expected delete forwarded to repository, got %q", repo.deletedID)
	}
}
