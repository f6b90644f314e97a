package changelog

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// migrationsFS embeds the schema files so they ship inside the binary, the
// same go:embed shape tarsy's pkg/database/client.go uses for its Postgres
// migrations — generalized here to a hand-rolled sequential runner because
// golang-migrate's sqlite3 database driver is built against mattn/go-sqlite3
// (cgo) and cannot drive the pure-Go modernc.org/sqlite connection this
// package uses (see DESIGN.md).
//
//go:embed migrations
var migrationsFS embed.FS

// runMigrations applies every embedded *.sql file in filename order exactly
// once, tracked in a schema_version table. Grounded on the sequential
// version-tracked runner in m0n0x41d-crucible-code's src/mcp/db/migrations.go.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version    TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("changelog: create schema_version: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("changelog: read embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		err := db.QueryRow(`SELECT 1 FROM schema_version WHERE version = ?`, name).Scan(&applied)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("changelog: check migration %s: %w", name, err)
		}

		sqlBytes, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("changelog: read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("changelog: apply migration %s: %w", name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, name); err != nil {
			return fmt.Errorf("changelog: record migration %s: %w", name, err)
		}
	}

	return nil
}
