package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gym-maintenance/internal/application"
)

type equipmentListerStub struct {
	items   []application.Equipment
	listErr error
}

func (s *equipmentListerStub) List(ctx context.Context) ([]application.Equipment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.items, nil
}

type logListerStub struct {
	entries []application.LogEntry
	listErr error
}

func (s *logListerStub) List(ctx context.Context, query application.LogQuery) ([]application.LogEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.entries, nil
}

func reportEntry(id string, ts time.Time) application.LogEntry {
	name := "Treadmill A"
	return application.LogEntry{
		ID:            id,
		EquipmentName: &name,
		Type:          application.LogTypeCheck,
		Description:   "Routine check",
		Staff:         "Jordan",
		Timestamp:     ts,
		Status:        application.LogStatusCompleted,
	}
}

func TestGenerateProducesPDFPerType(t *testing.T) {
	base := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	priority := application.PriorityUrgent
	issue := reportEntry("log-2", base.Add(time.Hour))
	issue.Type = application.LogTypeIssue
	issue.Priority = &priority
	issue.Status = application.LogStatusPending

	equipment := &equipmentListerStub{items: []application.Equipment{{
		ID:         "eq-1",
		Name:       "Treadmill A",
		Category:   application.CategoryCardio,
		Location:   "Cardio floor",
		Status:     application.StatusOperational,
		LastCheck:  base,
		NextDue:    base.Add(7 * 24 * time.Hour),
		IssueCount: 1,
	}}}
	ledger := &logListerStub{entries: []application.LogEntry{issue, reportEntry("log-1", base)}}

	generator := NewGenerator(equipment, ledger, func() time.Time { return base })

	for _, reportType := range []Type{TypeEquipmentStatus, TypeIssues, TypeActivityLog, TypeSummary} {
		t.Run(string(reportType), func(t *testing.T) {
			output, err := generator.Generate(context.Background(), Params{
				Type: reportType,
				From: base.Add(-24 * time.Hour),
				To:   base.Add(24 * time.Hour),
			})
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if !bytes.HasPrefix(output, []byte("%PDF")) {
				t.Fatalf("expected a PDF document, got prefix %q", output[:min(8, len(output))])
			}
		})
	}
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	generator := NewGenerator(&equipmentListerStub{}, &logListerStub{}, nil)

	_, err := generator.Generate(context.Background(), Params{Type: "spreadsheet"})
	if err == nil {
		t.Fatal("expected an error for an unknown report type")
	}
}

func TestGeneratePropagatesListerErrors(t *testing.T) {
	base := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	boom := errors.New("ledger unavailable")

	generator := NewGenerator(&equipmentListerStub{}, &logListerStub{listErr: boom}, func() time.Time { return base })
	if _, err := generator.Generate(context.Background(), Params{Type: TypeActivityLog}); !errors.Is(err, boom) {
		t.Fatalf("expected ledger error, got %v", err)
	}

	generator = NewGenerator(&equipmentListerStub{listErr: boom}, &logListerStub{}, func() time.Time { return base })
	if _, err := generator.Generate(context.Background(), Params{Type: TypeEquipmentStatus}); !errors.Is(err, boom) {
		t.Fatalf("expected equipment error, got %v", err)
	}
}

func TestFilterByRange(t *testing.T) {
	base := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	entries := []application.LogEntry{
		reportEntry("before", base.Add(-48*time.Hour)),
		reportEntry("inside", base),
		reportEntry("after", base.Add(48*time.Hour)),
	}

	filtered := filterByRange(entries, base.Add(-time.Hour), base.Add(time.Hour))
	if len(filtered) != 1 || filtered[0].ID != "inside" {
		t.Fatalf("expected only the in-range entry, got %+v", filtered)
	}

	open := filterByRange(entries, time.Time{}, time.Time{})
	if len(open) != 3 {
		t.Fatalf("expected zero bounds to keep everything, got %d", len(open))
	}
}
