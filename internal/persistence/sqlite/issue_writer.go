package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/gym-maintenance/internal/persistence"
)

// IssueWriter implements persistence.IssueWriter using a single SQLite
// transaction: the equipment update and the ledger append commit together
// or roll back together.
type IssueWriter struct {
	pool *ConnectionPool
}

// NewIssueWriter creates a new SQLite issue writer.
func NewIssueWriter(pool *ConnectionPool) *IssueWriter {
	return &IssueWriter{pool: pool}
}

// ApplyIssueReport persists the updated equipment record and the new ledger
// entry atomically.
func (w *IssueWriter) ApplyIssueReport(ctx context.Context, item persistence.Equipment, entry persistence.LogEntry) error {
	return w.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`UPDATE equipment
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

		return insertLogEntryTx(tx, entry)
	})
}
