package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

// TestDatabaseSetup holds a migrated test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
func NewTestDatabase(ctx context.Context, dsn string) (*TestDatabaseSetup, error) {
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := database.Migrate(ctx, db, "up"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes every row from the application tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"course_feedback",
		"requests",
		"course_reads",
		"employee_emails",
		"module_completions",
		"modules",
		"courses",
		"refresh_tokens",
		"users",
	}

	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

// testDSN returns the configured test database or "" when integration tests
// should be skipped.
func testDSN() string {
	return os.Getenv("TEST_DATABASE_URL")
}
