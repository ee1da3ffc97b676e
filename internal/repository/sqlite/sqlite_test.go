package sqlite

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/kitcraft/internal/model"
)

// newTestDB returns a DB backed by an in-memory SQLite database.
// Each test gets its own database; t.Cleanup closes it.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := New(":memory:", logger)
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser creates a user row and fails the test if it errors.
// Kits and cart items carry foreign keys to users, so most tests need one.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "$2a$04$notarealhashbutlongenough",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrate again must not error — every statement is IF NOT EXISTS.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}
