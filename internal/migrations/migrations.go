// Package migrations applies the embedded, versioned schema for each supported dialect.
//
// Files follow the pattern <dialect>/NNNN_name.up.sql and NNNN_name.down.sql.
// Only migrations missing from schema_migrations are applied, each in its own transaction.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"

	"github.com/jmoiron/sqlx"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var fileRe = regexp.MustCompile(`^(\d{4})_(.+)\.(up|down)\.sql$`)

type migration struct {
	version int
	name    string
	up      string
	down    string
}

// Dialect maps a sqlx driver name to the migration directory.
func Dialect(driverName string) (string, error) {
	switch driverName {
	case "postgres":
		return "postgres", nil
	case "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driverName)
	}
}

func load(dialect string) ([]migration, error) {
	entries, err := fs.ReadDir(files, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s migrations: %w", dialect, err)
	}

	byVersion := make(map[int]*migration)
	for _, e := range entries {
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		mig, ok := byVersion[version]
		if !ok {
			mig = &migration{version: version, name: m[2]}
			byVersion[version] = mig
		}
		file := path.Join(dialect, e.Name())
		if m[3] == "up" {
			mig.up = file
		} else {
			mig.down = file
		}
	}

	out := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" {
			return nil, fmt.Errorf("migration %04d_%s has no up script", m.version, m.name)
		}
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })
	return out, nil
}

// Up applies every pending migration for the driver of db.
func Up(ctx context.Context, db *sqlx.DB) error {
	dialect, err := Dialect(db.DriverName())
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var applied []int
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	migs, err := load(dialect)
	if err != nil {
		return err
	}

	for _, m := range migs {
		if slices.Contains(applied, m.version) {
			continue
		}
		if err := apply(ctx, db, m.version, m.up, false); err != nil {
			return fmt.Errorf("failed to apply migration %04d_%s: %w", m.version, m.name, err)
		}
	}
	return nil
}

// Down rolls back the most recently applied migration, if any.
func Down(ctx context.Context, db *sqlx.DB) error {
	dialect, err := Dialect(db.DriverName())
	if err != nil {
		return err
	}

	var version int
	err = db.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	if version == 0 {
		return nil
	}

	migs, err := load(dialect)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(migs, func(m migration) bool { return m.version == version })
	if idx < 0 || migs[idx].down == "" {
		return fmt.Errorf("no down migration for version %d", version)
	}
	return apply(ctx, db, version, migs[idx].down, true)
}

func apply(ctx context.Context, db *sqlx.DB, version int, file string, down bool) error {
	script, err := files.ReadFile(file)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return err
	}

	bookkeeping := `INSERT INTO schema_migrations (version) VALUES (?)`
	if down {
		bookkeeping = `DELETE FROM schema_migrations WHERE version = ?`
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(bookkeeping), version); err != nil {
		return err
	}
	return tx.Commit()
}
