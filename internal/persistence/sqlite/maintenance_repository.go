package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/gym-maintenance/internal/persistence"
)

// MaintenanceRepository implements persistence.MaintenanceRepository using SQLite.
type MaintenanceRepository struct {
	pool *ConnectionPool
}

// NewMaintenanceRepository creates a new SQLite maintenance repository.
func NewMaintenanceRepository(pool *ConnectionPool) *MaintenanceRepository {
	return &MaintenanceRepository{pool: pool}
}

const maintenanceColumns = `id, target_type, equipment_id, equipment_name, zone, title, description, scheduled_date, priority, assigned_to, status, created_at, updated_at`

// CreateMaintenance inserts a new scheduled maintenance task.
func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	_, err := r.pool.db.ExecContext(ctx, `INSERT INTO scheduled_maintenance (`+maintenanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.TargetType,
		nullString(task.EquipmentID),
		nullString(task.EquipmentName),
		nullString(task.Zone),
		task.Title,
		task.Description,
		formatTime(task.ScheduledDate),
		task.Priority,
		nullString(task.AssignedTo),
		task.Status,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	return mapError(err)
}

// UpdateMaintenance replaces the task whose identifier matches.
func (r *MaintenanceRepository) UpdateMaintenance(ctx context.Context, task persistence.ScheduledMaintenance) error {
	result, err := r.pool.db.ExecContext(ctx, `UPDATE scheduled_maintenance
		SET target_type = ?, equipment_id = ?, equipment_name = ?, zone = ?, title = ?,
			description = ?, scheduled_date = ?, priority = ?, assigned_to = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		task.TargetType,
		nullString(task.EquipmentID),
		nullString(task.EquipmentName),
		nullString(task.Zone),
		task.Title,
		task.Description,
		formatTime(task.ScheduledDate),
		task.Priority,
		nullString(task.AssignedTo),
		task.Status,
		formatTime(task.UpdatedAt),
		task.ID,
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

// GetMaintenance retrieves a scheduled maintenance task by id.
func (r *MaintenanceRepository) GetMaintenance(ctx context.Context, id string) (persistence.ScheduledMaintenance, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM scheduled_maintenance WHERE id = ?`, id)
	return scanMaintenance(row)
}

// ListMaintenance returns all tasks ordered by scheduled date.
func (r *MaintenanceRepository) ListMaintenance(ctx context.Context) ([]persistence.ScheduledMaintenance, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+maintenanceColumns+` FROM scheduled_maintenance ORDER BY scheduled_date, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	tasks := make([]persistence.ScheduledMaintenance, 0)
	for rows.Next() {
		task, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// DeleteMaintenance removes a task by id.
func (r *MaintenanceRepository) DeleteMaintenance(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM scheduled_maintenance WHERE id = ?`, id)
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

func scanMaintenance(row rowScanner) (persistence.ScheduledMaintenance, error) {
	var (
		task                                         persistence.ScheduledMaintenance
		equipmentID, equipmentName, zone, assignedTo sql.NullString
		scheduledDate, createdAt, updatedAt          string
	)
	err := row.Scan(
		&task.ID,
		&task.TargetType,
		&equipmentID,
		&equipmentName,
		&zone,
		&task.Title,
		&task.Description,
		&scheduledDate,
		&task.Priority,
		&assignedTo,
		&task.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.ScheduledMaintenance{}, mapError(err)
	}

	task.EquipmentID = stringPtr(equipmentID)
	task.EquipmentName = stringPtr(equipmentName)
	task.Zone = stringPtr(zone)
	task.AssignedTo = stringPtr(assignedTo)
	if task.ScheduledDate, err = parseTime(scheduledDate); err != nil {
		return persistence.ScheduledMaintenance{}, err
	}
	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.ScheduledMaintenance{}, err
	}
	if task.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.ScheduledMaintenance{}, err
	}

	return task, nil
}
