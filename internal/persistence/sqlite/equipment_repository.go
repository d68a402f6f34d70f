package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/gym-maintenance/internal/persistence"
)

// EquipmentRepository implements persistence.EquipmentRepository using SQLite.
type EquipmentRepository struct {
	pool *ConnectionPool
}

// NewEquipmentRepository creates a new SQLite equipment repository.
func NewEquipmentRepository(pool *ConnectionPool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

const equipmentColumns = `id, name, category, location, status, last_check, next_due, issue_count, photo_count, notes, created_at, updated_at`

// CreateEquipment inserts a new equipment record.
func (r *EquipmentRepository) CreateEquipment(ctx context.Context, item persistence.Equipment) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return insertEquipmentTx(tx, item)
	})
}

// CreateEquipmentBatch inserts all records in one transaction; any failure
// rolls back the whole batch.
func (r *EquipmentRepository) CreateEquipmentBatch(ctx context.Context, items []persistence.Equipment) error {
	if len(items) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := insertEquipmentTx(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertEquipmentTx(tx *sql.Tx, item persistence.Equipment) error {
	_, err := tx.Exec(`INSERT INTO equipment (`+equipmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Category,
		item.Location,
		item.Status,
		formatTime(item.LastCheck),
		formatTime(item.NextDue),
		item.IssueCount,
		item.PhotoCount,
		nullString(item.Notes),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	return mapError(err)
}

// UpdateEquipment replaces the record whose identifier matches.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, item persistence.Equipment) error {
	result, err := r.pool.db.ExecContext(ctx, `UPDATE equipment
		SET name = ?, category = ?, location = ?, status = ?, last_check = ?, next_due = ?,
			issue_count = ?, photo_count = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		item.Name,
		item.Category,
		item.Location,
		item.Status,
		formatTime(item.LastCheck),
		formatTime(item.NextDue),
		item.IssueCount,
		item.PhotoCount,
		nullString(item.Notes),
		formatTime(item.UpdatedAt),
		item.ID,
	)
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

// GetEquipment retrieves an equipment record by id.
func (r *EquipmentRepository) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = ?`, id)
	return scanEquipment(row)
}

// ListEquipment returns all equipment ordered by creation time.
func (r *EquipmentRepository) ListEquipment(ctx context.Context) ([]persistence.Equipment, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]persistence.Equipment, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteEquipment removes an equipment record by id.
func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row rowScanner) (persistence.Equipment, error) {
	var (
		item                                     persistence.Equipment
		lastCheck, nextDue, createdAt, updatedAt string
		notes                                    sql.NullString
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Location,
		&item.Status,
		&lastCheck,
		&nextDue,
		&item.IssueCount,
		&item.PhotoCount,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Equipment{}, mapError(err)
	}

	if item.LastCheck, err = parseTime(lastCheck); err != nil {
		return persistence.Equipment{}, err
	}
	if item.NextDue, err = parseTime(nextDue); err != nil {
		return persistence.Equipment{}, err
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Equipment{}, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Equipment{}, err
	}
	item.Notes = stringPtr(notes)

	return item, nil
}
