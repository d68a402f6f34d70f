// Package importer parses equipment CSV documents. The format is a header
// row naming at least name, category, and location, with optional status and
// notes columns. Parsing is all-or-nothing: the first invalid row aborts the
// whole document with its row number.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one validated equipment row. Line is the 1-based position in the
// document, header included.
type Row struct {
	Line     int
	Name     string
	Category string
	Location string
	Status   string
	Notes    *string
}

// RowError reports the first row that failed validation.
type RowError struct {
	Line    int
	Field   string
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

var requiredColumns = []string{"name", "category", "location"}

var allowedCategories = map[string]bool{
	"cardio":          true,
	"weight-machines": true,
	"free-weights":    true,
}

var allowedStatuses = map[string]bool{
	"operational": true,
	"maintenance": true,
	"broken":      true,
}

// Parse reads a CSV document and returns its validated rows. A missing
// status defaults to operational.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("document is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Field: "", Message: fmt.Sprintf("malformed row: %v", err)}
		}

		row, rowErr := buildRow(line, record, columns)
		if rowErr != nil {
			return nil, rowErr
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("document has no data rows")
	}
	return rows, nil
}

func buildRow(line int, record []string, columns map[string]int) (Row, *RowError) {
	field := func(name string) string {
		index, ok := columns[name]
		if !ok || index >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[index])
	}

	row := Row{
		Line:     line,
		Name:     field("name"),
		Category: strings.ToLower(field("category")),
		Location: field("location"),
		Status:   strings.ToLower(field("status")),
	}
	if notes := field("notes"); notes != "" {
		row.Notes = &notes
	}

	if row.Name == "" {
		return Row{}, &RowError{Line: line, Field: "name", Message: "name is required"}
	}
	if !allowedCategories[row.Category] {
		return Row{}, &RowError{Line: line, Field: "category", Message: fmt.Sprintf("category %q must be one of cardio, weight-machines, free-weights", row.Category)}
	}
	if row.Location == "" {
		return Row{}, &RowError{Line: line, Field: "location", Message: "location is required"}
	}
	if row.Status == "" {
		row.Status = "operational"
	} else if !allowedStatuses[row.Status] {
		return Row{}, &RowError{Line: line, Field: "status", Message: fmt.Sprintf("status %q must be one of operational, maintenance, broken", row.Status)}
	}

	return row, nil
}
