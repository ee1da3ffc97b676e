// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single
// file. No separate database server to install, configure, or manage. That
// matches this app's deployment model: a single server owning all user data.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — no C compiler needed, works
// everywhere Go works.
//
// STORAGE LAYOUT (mirrors the per-user key/value layout described in the data
// model, adapted to rows):
//   - users:      the global registry of accounts
//   - kits:       one row per generated kit; the materials/tools/instructions
//                 sequences are stored as JSON documents in TEXT columns
//   - cart_items: one row per cart entry, UNIQUE(user_id, name, buy_link)
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only"
	// import. The sqlite package's init() function registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// It implements repository.UserRepository, repository.KitRepository and
// repository.CartRepository (compile-time checks in the per-entity files).
// The logger is used for degraded-read warnings: a kit row whose JSON columns
// fail to decode is skipped, not fatal.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/kitcraft.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (great for tests, lost on close)
func New(dbPath string, logger *slog.Logger) (*DB, error) {
	// sql.Open does NOT actually open a connection — it just creates a pool
	// manager. Ping forces an immediate connection so a bad path or
	// permissions issue surfaces here, not on the first query.
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening — important
	// for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// We need them for users → kits and users → cart_items.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn, logger: logger}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
// Wherever you call New(), immediately defer Close().
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs all database migrations.
// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// The three ordered sequences (materials, tools, instructions) are stored
	// as JSON documents. They are only ever read and written as whole kits —
	// never queried by field — so document columns beat a 3-table join.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kits (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL REFERENCES users(id),
			project_name   TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			prompt         TEXT NOT NULL DEFAULT '',
			skill_level    TEXT NOT NULL,
			estimated_time TEXT NOT NULL DEFAULT '',
			materials      TEXT NOT NULL DEFAULT '[]',
			tools          TEXT NOT NULL DEFAULT '[]',
			instructions   TEXT NOT NULL DEFAULT '[]',
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_kits_user_created ON kits(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating kits table: %w", err)
	}

	// The UNIQUE constraint is the cart's dedupe rule: no two entries may
	// share the same (name, buyLink) pair within one user's cart. position
	// is a per-user monotonic counter preserving first-addition order.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS cart_items (
			user_id         TEXT NOT NULL REFERENCES users(id),
			position        INTEGER NOT NULL,
			name            TEXT NOT NULL,
			quantity        TEXT NOT NULL DEFAULT '',
			estimated_price TEXT NOT NULL DEFAULT '',
			buy_link        TEXT NOT NULL DEFAULT '',
			UNIQUE(user_id, name, buy_link)
		);
		CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id, position);
	`)
	if err != nil {
		return fmt.Errorf("creating cart_items table: %w", err)
	}

	return nil
}
