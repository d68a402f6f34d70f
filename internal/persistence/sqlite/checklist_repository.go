package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/gym-maintenance/internal/persistence"
)

// ChecklistRepository implements persistence.ChecklistRepository using SQLite.
type ChecklistRepository struct {
	pool *ConnectionPool
}

// NewChecklistRepository creates a new SQLite checklist repository.
func NewChecklistRepository(pool *ConnectionPool) *ChecklistRepository {
	return &ChecklistRepository{pool: pool}
}

const checklistColumns = `id, category, task, priority, completed, completed_by, completed_at, assigned_to, notes, created_at, updated_at`

// CreateChecklistItem inserts a new checklist item.
func (r *ChecklistRepository) CreateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return insertChecklistItemTx(tx, item)
	})
}

// CreateChecklistItemBatch inserts all items in one transaction.
func (r *ChecklistRepository) CreateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := insertChecklistItemTx(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertChecklistItemTx(tx *sql.Tx, item persistence.ChecklistItem) error {
	_, err := tx.Exec(`INSERT INTO checklist_items (`+checklistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Category,
		item.Task,
		item.Priority,
		boolToInt(item.Completed),
		nullString(item.CompletedBy),
		nullTime(item.CompletedAt),
		nullString(item.AssignedTo),
		nullString(item.Notes),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	return mapError(err)
}

// UpdateChecklistItem replaces the item whose identifier matches.
func (r *ChecklistRepository) UpdateChecklistItem(ctx context.Context, item persistence.ChecklistItem) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return updateChecklistItemTx(tx, item)
	})
}

// UpdateChecklistItemBatch replaces every supplied item in one transaction,
// used by the complete-all flow so the batch persists as a unit.
func (r *ChecklistRepository) UpdateChecklistItemBatch(ctx context.Context, items []persistence.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := updateChecklistItemTx(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func updateChecklistItemTx(tx *sql.Tx, item persistence.ChecklistItem) error {
	result, err := tx.Exec(`UPDATE checklist_items
		SET category = ?, task = ?, priority = ?, completed = ?, completed_by = ?,
			completed_at = ?, assigned_to = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		item.Category,
		item.Task,
		item.Priority,
		boolToInt(item.Completed),
		nullString(item.CompletedBy),
		nullTime(item.CompletedAt),
		nullString(item.AssignedTo),
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

// GetChecklistItem retrieves a checklist item by id.
func (r *ChecklistRepository) GetChecklistItem(ctx context.Context, id string) (persistence.ChecklistItem, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+checklistColumns+` FROM checklist_items WHERE id = ?`, id)
	return scanChecklistItem(row)
}

// ListChecklistItems returns all checklist items ordered by creation time.
func (r *ChecklistRepository) ListChecklistItems(ctx context.Context) ([]persistence.ChecklistItem, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+checklistColumns+` FROM checklist_items ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	items := make([]persistence.ChecklistItem, 0)
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanChecklistItem(row rowScanner) (persistence.ChecklistItem, error) {
	var (
		item                           persistence.ChecklistItem
		completed                      int
		completedBy, assignedTo, notes sql.NullString
		completedAt                    sql.NullString
		createdAt, updatedAt           string
	)
	err := row.Scan(
		&item.ID,
		&item.Category,
		&item.Task,
		&item.Priority,
		&completed,
		&completedBy,
		&completedAt,
		&assignedTo,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.ChecklistItem{}, mapError(err)
	}

	item.Completed = completed != 0
	item.CompletedBy = stringPtr(completedBy)
	if item.CompletedAt, err = timePtr(completedAt); err != nil {
		return persistence.ChecklistItem{}, err
	}
	item.AssignedTo = stringPtr(assignedTo)
	item.Notes = stringPtr(notes)
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.ChecklistItem{}, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.ChecklistItem{}, err
	}

	return item, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
