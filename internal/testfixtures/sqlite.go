package testfixtures

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/example/gym-maintenance/internal/persistence"
	"github.com/example/gym-maintenance/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Equipment   persistence.EquipmentRepository
	Checklist   persistence.ChecklistRepository
	Log         persistence.LogRepository
	Maintenance persistence.MaintenanceRepository
	Staff       persistence.StaffRepository
	Issues      persistence.IssueWriter

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary database file
// that is migrated automatically. A cleanup callback is registered with the
// provided testing.TB, so calling Close is optional.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", filepath.Join(dir, "gymtrack.db"))

	pool, err := sqlite.NewConnectionPool(dsn)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Equipment:   sqlite.NewEquipmentRepository(pool),
		Checklist:   sqlite.NewChecklistRepository(pool),
		Log:         sqlite.NewLogRepository(pool),
		Maintenance: sqlite.NewMaintenanceRepository(pool),
		Staff:       sqlite.NewStaffRepository(pool),
		Issues:      sqlite.NewIssueWriter(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
