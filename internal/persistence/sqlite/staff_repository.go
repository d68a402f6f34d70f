package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/gym-maintenance/internal/persistence"
)

// StaffRepository implements persistence.StaffRepository using SQLite.
type StaffRepository struct {
	pool *ConnectionPool
}

// NewStaffRepository creates a new SQLite staff repository.
func NewStaffRepository(pool *ConnectionPool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

const staffColumns = `id, organization_id, name, position, email, phone, status, created_at, updated_at`

// CreateStaffMember inserts a new staff record.
func (r *StaffRepository) CreateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	_, err := r.pool.db.ExecContext(ctx, `INSERT INTO staff_members (`+staffColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID,
		member.OrganizationID,
		member.Name,
		member.Position,
		nullString(member.Email),
		nullString(member.Phone),
		member.Status,
		formatTime(member.CreatedAt),
		formatTime(member.UpdatedAt),
	)
	return mapError(err)
}

// UpdateStaffMember replaces the record whose identifier matches.
func (r *StaffRepository) UpdateStaffMember(ctx context.Context, member persistence.StaffMember) error {
	result, err := r.pool.db.ExecContext(ctx, `UPDATE staff_members
		SET name = ?, position = ?, email = ?, phone = ?, status = ?, updated_at = ?
		WHERE id = ? AND organization_id = ?`,
		member.Name,
		member.Position,
		nullString(member.Email),
		nullString(member.Phone),
		member.Status,
		formatTime(member.UpdatedAt),
		member.ID,
		member.OrganizationID,
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

// GetStaffMember retrieves a staff record by id.
func (r *StaffRepository) GetStaffMember(ctx context.Context, id string) (persistence.StaffMember, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE id = ?`, id)
	return scanStaffMember(row)
}

// ListStaffMembers returns the organization's staff ordered by name.
func (r *StaffRepository) ListStaffMembers(ctx context.Context, organizationID string) ([]persistence.StaffMember, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE organization_id = ? ORDER BY name, id`,
		organizationID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	members := make([]persistence.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaffMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// DeleteStaffMember removes a staff record by id.
func (r *StaffRepository) DeleteStaffMember(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = ?`, id)
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

func scanStaffMember(row rowScanner) (persistence.StaffMember, error) {
	var (
		member               persistence.StaffMember
		email, phone         sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&member.ID,
		&member.OrganizationID,
		&member.Name,
		&member.Position,
		&email,
		&phone,
		&member.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.StaffMember{}, mapError(err)
	}

	member.Email = stringPtr(email)
	member.Phone = stringPtr(phone)
	if member.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.StaffMember{}, err
	}
	if member.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.StaffMember{}, err
	}

	return member, nil
}
