package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

// FS contains the SQL migrations for every supported dialect.
//
// The layout is the one go-persistence-bun's dialect loader expects:
//   - Root files (data/sql/*.sql) contain PostgreSQL migrations
//   - SQLite overrides are in data/sql/sqlite/*.sql
//
//go:embed data/sql
var FS embed.FS

const sourceRoot = "data/sql"

// Source returns FS rooted at the migrations directory, ready to be passed
// to RegisterDialectMigrations.
func Source() (fs.FS, error) {
	return fs.Sub(FS, sourceRoot)
}

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect normalizes driver aliases (sqlite3, postgresql, pgx) into a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %q", name)
	}
}

// Dir returns the directory inside Source holding the dialect's own files.
// PostgreSQL files live at the root.
func (d Dialect) Dir() string {
	if d == DialectPostgres {
		return "."
	}
	return string(d)
}
