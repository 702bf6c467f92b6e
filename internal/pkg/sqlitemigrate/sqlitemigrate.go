// Package sqlitemigrate applies embedded SQL migrations to a SQLite database
package sqlitemigrate

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// Apply runs every *.sql file under root in name order, each at most once.
// Applied file names are recorded in the schema_migrations table.
func Apply(ctx context.Context, db *sql.DB, migrations fs.FS, root string) error {
	if db == nil {
		return errors.InvalidArgument("sql db is required")
	}

	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}

	files, err := listSQLFiles(migrations, root)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return errors.Wrap(err, "failed to ensure migration table")
	}

	for _, name := range files {
		if err := applyFile(ctx, db, migrations, root, name); err != nil {
			return err
		}
	}

	return nil
}

func listSQLFiles(migrations fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations dir")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func applyFile(ctx context.Context, db *sql.DB, migrations fs.FS, root, name string) error {
	key := name
	if root != "." {
		key = path.Join(root, name)
	}

	applied, err := isApplied(ctx, db, key)
	if err != nil {
		return errors.Wrapf(err, "failed to check migration %s", key)
	}
	if applied {
		return nil
	}

	content, err := fs.ReadFile(migrations, path.Join(root, name))
	if err != nil {
		return errors.Wrapf(err, "failed to read migration %s", key)
	}

	up := UpSection(string(content))
	if strings.TrimSpace(up) == "" {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to begin migration %s", key)
	}

	if _, err := tx.ExecContext(ctx, up); err != nil && !IsAlreadyExists(err) {
		_ = tx.Rollback()
		return errors.Wrapf(err, "failed to exec migration %s", key)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
		key, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "failed to record migration %s", key)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit migration %s", key)
	}

	slog.InfoContext(ctx, "applied migration", "name", key)
	return nil
}

// UpSection returns the SQL between the Up and Down markers. Content without
// markers is returned whole.
func UpSection(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// IsAlreadyExists reports whether err came from DDL that was already applied.
func IsAlreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
