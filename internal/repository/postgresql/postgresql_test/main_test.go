package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
	"github.com/samriddhi-018/infosys-LGD/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testSetup *TestDatabaseSetup
	testDB    *database.DB
)

func TestMain(m *testing.M) {
	dsn := testDSN()
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgresql integration tests")
		os.Exit(0)
	}

	var err error
	testSetup, err = NewTestDatabase(context.Background(), dsn)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	testDB = testSetup.DB

	code := m.Run()
	testSetup.Close()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

func createTestUser(t *testing.T, ctx context.Context, username, email string, role user.Role) user.User {
	t.Helper()
	hash := "$2a$10$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ012"
	created, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
	})
	require.NoError(t, err)
	return created
}
