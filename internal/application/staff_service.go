package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/gym-maintenance/internal/persistence"
)

// StaffService manages the staff roster of one organization.
type StaffService struct {
	staff          persistence.StaffRepository
	organizationID string
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewStaffService constructs a staff service for the given organization.
func NewStaffService(staff persistence.StaffRepository, organizationID string, idGenerator func() string, now func() time.Time) *StaffService {
	return NewStaffServiceWithLogger(staff, organizationID, idGenerator, now, nil)
}

// NewStaffServiceWithLogger constructs a staff service with a specified logger.
func NewStaffServiceWithLogger(staff persistence.StaffRepository, organizationID string, idGenerator func() string, now func() time.Time, logger *slog.Logger) *StaffService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &StaffService{
		staff:          staff,
		organizationID: organizationID,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *StaffService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StaffService", operation, attrs...)
}

// Add validates input and persists a new staff member. Status defaults to
// active.
func (s *StaffService) Add(ctx context.Context, input StaffInput) (member StaffMember, err error) {
	if s == nil {
		err = fmt.Errorf("StaffService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Add")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add staff member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("staff_id", member.ID).InfoContext(ctx, "staff member added")
	}()

	if input.Status == "" {
		input.Status = StaffActive
	}
	vErr := validateStaffInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	at := s.now()
	member = StaffMember{
		ID:             s.idGenerator(),
		OrganizationID: s.organizationID,
		Name:           strings.TrimSpace(input.Name),
		Position:       strings.TrimSpace(input.Position),
		Email:          normalizeOptionalString(input.Email),
		Phone:          normalizeOptionalString(input.Phone),
		Status:         input.Status,
		CreatedAt:      at,
		UpdatedAt:      at,
	}

	if err = s.staff.CreateStaffMember(ctx, staffMemberToRecord(member)); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// Update validates input and updates an existing staff member within the
// organization.
func (s *StaffService) Update(ctx context.Context, id string, input StaffInput) (member StaffMember, err error) {
	if s == nil {
		err = fmt.Errorf("StaffService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Update", "staff_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update staff member", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "staff member updated")
	}()

	var existing persistence.StaffMember
	existing, err = s.staff.GetStaffMember(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if existing.OrganizationID != s.organizationID {
		err = ErrNotFound
		return
	}

	if input.Status == "" {
		input.Status = StaffStatus(existing.Status)
	}
	vErr := validateStaffInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := staffMemberFromRecord(existing)
	updated.Name = strings.TrimSpace(input.Name)
	updated.Position = strings.TrimSpace(input.Position)
	updated.Email = normalizeOptionalString(input.Email)
	updated.Phone = normalizeOptionalString(input.Phone)
	updated.Status = input.Status
	updated.UpdatedAt = s.now()

	if err = s.staff.UpdateStaffMember(ctx, staffMemberToRecord(updated)); err != nil {
		err = mapRepoError(err)
		return
	}

	member = updated
	return
}

// Delete removes a staff member within the organization.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("StaffService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "staff_id", id)

	existing, err := s.staff.GetStaffMember(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete staff member", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	if existing.OrganizationID != s.organizationID {
		logger.ErrorContext(ctx, "failed to delete staff member", "error", ErrNotFound, "error_kind", ErrorKind(ErrNotFound))
		return ErrNotFound
	}

	if err := s.staff.DeleteStaffMember(ctx, id); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete staff member", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "staff member deleted")
	return nil
}

// List returns the organization's staff roster ordered by name.
func (s *StaffService) List(ctx context.Context) ([]StaffMember, error) {
	if s == nil {
		return nil, fmt.Errorf("StaffService is nil")
	}

	records, err := s.staff.ListStaffMembers(ctx, s.organizationID)
	if err != nil {
		return nil, err
	}

	members := make([]StaffMember, 0, len(records))
	for _, record := range records {
		members = append(members, staffMemberFromRecord(record))
	}
	return members, nil
}

func validateStaffInput(input StaffInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !input.Status.Valid() {
		vErr.add("status", "status must be active or inactive")
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != "" && !looksLikeEmail(email) {
			vErr.add("email", "email is not valid")
		}
	}

	return vErr
}

// looksLikeEmail is a deliberately loose check; the address is contact info,
// not an account identifier.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.Contains(s, " ")
}
