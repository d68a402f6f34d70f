// Package report renders PDF maintenance reports over the equipment and
// ledger collections. Generation is read-only; nothing here mutates state.
package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/gym-maintenance/internal/application"
)

// Type selects which report is rendered.
type Type string

const (
	TypeEquipmentStatus Type = "equipment-status"
	TypeIssues          Type = "issues"
	TypeActivityLog     Type = "activity-log"
	TypeSummary         Type = "summary"
)

// Valid reports whether the report type is one of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeEquipmentStatus, TypeIssues, TypeActivityLog, TypeSummary:
		return true
	}
	return false
}

// Params selects the report type and the inclusive date range applied to
// ledger entries.
type Params struct {
	Type Type
	From time.Time
	To   time.Time
}

// EquipmentLister is the slice of the equipment service the generator needs.
type EquipmentLister interface {
	List(ctx context.Context) ([]application.Equipment, error)
}

// LogLister is the slice of the log service the generator needs.
type LogLister interface {
	List(ctx context.Context, query application.LogQuery) ([]application.LogEntry, error)
}

// Generator renders PDF reports.
type Generator struct {
	equipment EquipmentLister
	ledger    LogLister
	now       func() time.Time
}

// NewGenerator constructs a report generator.
func NewGenerator(equipment EquipmentLister, ledger LogLister, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{equipment: equipment, ledger: ledger, now: now}
}

// Generate renders the requested report and returns the PDF bytes.
func (g *Generator) Generate(ctx context.Context, params Params) ([]byte, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("unknown report type %q", params.Type)
	}

	entries, err := g.ledger.List(ctx, application.LogQuery{})
	if err != nil {
		return nil, err
	}
	entries = filterByRange(entries, params.From, params.To)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Gym Maintenance Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Report Type: %s", strings.ToUpper(strings.ReplaceAll(string(params.Type), "-", " "))))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date Range: %s - %s", params.From.Format("2006-01-02"), params.To.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", g.now().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	switch params.Type {
	case TypeEquipmentStatus:
		err = g.writeEquipmentStatus(ctx, pdf)
	case TypeIssues:
		g.writeIssues(pdf, entries)
	case TypeActivityLog:
		g.writeActivityLog(pdf, entries)
	case TypeSummary:
		if err = g.writeEquipmentStatus(ctx, pdf); err == nil {
			pdf.Ln(6)
			g.writeActivitySummary(pdf, entries)
		}
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeEquipmentStatus(ctx context.Context, pdf *gofpdf.Fpdf) error {
	items, err := g.equipment.List(ctx)
	if err != nil {
		return err
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "Equipment Status Summary")
	pdf.Ln(11)

	counts := map[application.EquipmentStatus]int{}
	for _, item := range items {
		counts[item.Status]++
	}

	pdf.SetFont("Helvetica", "", 12)
	for _, status := range []application.EquipmentStatus{
		application.StatusOperational,
		application.StatusMaintenance,
		application.StatusBroken,
	} {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d equipment", strings.ToUpper(string(status)), counts[status]))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		g.ensureRoom(pdf, 12)
		pdf.Cell(0, 6, fmt.Sprintf("%s (%s) - %s | issues: %d | next due: %s",
			item.Name, item.Location, item.Status, item.IssueCount, item.NextDue.Format("2006-01-02")))
		pdf.Ln(6)
	}
	return nil
}

func (g *Generator) writeIssues(pdf *gofpdf.Fpdf, entries []application.LogEntry) {
	issues := make([]application.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == application.LogTypeIssue || entry.Priority != nil {
			issues = append(issues, entry)
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "Issues Report")
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Total Issues: %d", len(issues)))
	pdf.Ln(10)

	for i, issue := range issues {
		g.ensureRoom(pdf, 24)

		name := "General"
		if issue.EquipmentName != nil {
			name = *issue.EquipmentName
		}
		priority := "N/A"
		if issue.Priority != nil {
			priority = string(*issue.Priority)
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s", i+1, name))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Priority: %s | Status: %s", priority, issue.Status))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Staff: %s | Date: %s", issue.Staff, issue.Timestamp.Format("2006-01-02")))
		pdf.Ln(6)
		pdf.MultiCell(0, 5, issue.Description, "", "L", false)
		pdf.Ln(3)
	}
}

func (g *Generator) writeActivityLog(pdf *gofpdf.Fpdf, entries []application.LogEntry) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "Activity Log")
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Total Activities: %d", len(entries)))
	pdf.Ln(10)

	for _, entry := range entries {
		g.ensureRoom(pdf, 18)

		name := "N/A"
		if entry.EquipmentName != nil {
			name = *entry.EquipmentName
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%s - %s", entry.Timestamp.Format("2006-01-02"), strings.ToUpper(string(entry.Type))))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Equipment: %s | Staff: %s", name, entry.Staff))
		pdf.Ln(6)
		pdf.MultiCell(0, 5, entry.Description, "", "L", false)
		pdf.Ln(2)
	}
}

func (g *Generator) writeActivitySummary(pdf *gofpdf.Fpdf, entries []application.LogEntry) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "Activity Summary")
	pdf.Ln(11)

	counts := map[application.LogType]int{}
	for _, entry := range entries {
		counts[entry.Type]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	pdf.SetFont("Helvetica", "", 12)
	for _, t := range types {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d activities", strings.ToUpper(strings.ReplaceAll(t, "-", " ")), counts[application.LogType(t)]))
		pdf.Ln(7)
	}
}

// ensureRoom starts a new page when fewer than need millimeters remain.
func (g *Generator) ensureRoom(pdf *gofpdf.Fpdf, need float64) {
	_, height := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+need > height-bottom {
		pdf.AddPage()
	}
}

func filterByRange(entries []application.LogEntry, from, to time.Time) []application.LogEntry {
	out := make([]application.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if !from.IsZero() && entry.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && entry.Timestamp.After(to) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
