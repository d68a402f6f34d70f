package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// LogRepository implements persistence.LogRepository using SQLite. Entries
// are append-only; UpdateLogEntryStatus touches the status column and
// nothing else.
type LogRepository struct {
	pool *ConnectionPool
}

// NewLogRepository creates a new SQLite log repository.
func NewLogRepository(pool *ConnectionPool) *LogRepository {
	return &LogRepository{pool: pool}
}

// AppendLogEntry inserts a fully formed ledger entry with its photos.
func (r *LogRepository) AppendLogEntry(ctx context.Context, entry persistence.LogEntry) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return insertLogEntryTx(tx, entry)
	})
}

func insertLogEntryTx(tx *sql.Tx, entry persistence.LogEntry) error {
	_, err := tx.Exec(`INSERT INTO log_entries
		(id, equipment_id, equipment_name, type, description, staff, timestamp, priority, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullString(entry.EquipmentID),
		nullString(entry.EquipmentName),
		entry.Type,
		entry.Description,
		entry.Staff,
		formatTime(entry.Timestamp),
		nullString(entry.Priority),
		entry.Status,
	)
	if err != nil {
		return mapError(err)
	}

	for i, reference := range entry.Photos {
		if _, err := tx.Exec(`INSERT INTO log_entry_photos (log_id, position, reference) VALUES (?, ?, ?)`,
			entry.ID, i, reference); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// UpdateLogEntryStatus revises the status of an existing entry. Every other
// field is immutable after creation.
func (r *LogRepository) UpdateLogEntryStatus(ctx context.Context, id, status string, _ time.Time) error {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE log_entries SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

const logColumns = `id, equipment_id, equipment_name, type, description, staff, timestamp, priority, status`

// GetLogEntry retrieves a single entry with its photos.
func (r *LogRepository) GetLogEntry(ctx context.Context, id string) (persistence.LogEntry, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM log_entries WHERE id = ?`, id)
	entry, err := scanLogEntry(row)
	if err != nil {
		return persistence.LogEntry{}, err
	}
	entry.Photos, err = r.photosFor(ctx, id)
	if err != nil {
		return persistence.LogEntry{}, err
	}
	return entry, nil
}

// ListLogEntries returns entries matching the filter, newest first. The
// free-text search matches description, equipment name, and staff.
func (r *LogRepository) ListLogEntries(ctx context.Context, filter persistence.LogFilter) ([]persistence.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses,
			`(description LIKE ? OR equipment_name LIKE ? OR staff LIKE ?)`)
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Type != "" {
		clauses = append(clauses, `type = ?`)
		args = append(args, filter.Type)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]persistence.LogEntry, 0)
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Photos, err = r.photosFor(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (r *LogRepository) photosFor(ctx context.Context, logID string) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT reference FROM log_entry_photos WHERE log_id = ? ORDER BY position`, logID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var photos []string
	for rows.Next() {
		var reference string
		if err := rows.Scan(&reference); err != nil {
			return nil, err
		}
		photos = append(photos, reference)
	}
	return photos, rows.Err()
}

func scanLogEntry(row rowScanner) (persistence.LogEntry, error) {
	var (
		entry                                persistence.LogEntry
		equipmentID, equipmentName, priority sql.NullString
		timestamp                            string
	)
	err := row.Scan(
		&entry.ID,
		&equipmentID,
		&equipmentName,
		&entry.Type,
		&entry.Description,
		&entry.Staff,
		&timestamp,
		&priority,
		&entry.Status,
	)
	if err != nil {
		return persistence.LogEntry{}, mapError(err)
	}

	entry.EquipmentID = stringPtr(equipmentID)
	entry.EquipmentName = stringPtr(equipmentName)
	entry.Priority = stringPtr(priority)
	if entry.Timestamp, err = parseTime(timestamp); err != nil {
		return persistence.LogEntry{}, err
	}

	return entry, nil
}
