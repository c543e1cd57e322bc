package bookstore

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDSN is the store used when no connection string is given.
const DefaultDSN = "example.db"

// dialect captures what differs between the supported engines.
type dialect struct {
	driver   string // database/sql driver name
	numbered bool   // $1-style placeholders instead of ?
	schema   []string
	pragmas  []string
}

var sqliteDialect = dialect{
	driver: "sqlite3",
	pragmas: []string{
		// WAL keeps readers from blocking the single writer.
		"PRAGMA journal_mode=WAL;",
	},
	schema: []string{
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`,
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            genre TEXT,
            price INTEGER NOT NULL DEFAULT 0,
            availability INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            contact_details TEXT,
            preferences TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            quantity INTEGER NOT NULL,
            total_price INTEGER NOT NULL,
            book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE RESTRICT,
            customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE RESTRICT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);`,
		`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);`,
	},
}

var postgresDialect = dialect{
	driver:   "postgres",
	numbered: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`,
		`CREATE TABLE IF NOT EXISTS books (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            genre TEXT,
            price BIGINT NOT NULL DEFAULT 0,
            availability INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS customers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            contact_details TEXT,
            preferences TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            quantity INTEGER NOT NULL,
            total_price BIGINT NOT NULL,
            book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE RESTRICT,
            customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);`,
		`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);`,
	},
}

// parseDSN picks the engine for a connection string and returns the
// driver-specific data source name.
//
// PostgreSQL is selected by a postgres:// or postgresql:// URL or a libpq
// key=value string. Everything else is treated as a SQLite file, with an
// optional sqlite:// prefix.
func parseDSN(dsn string) (dialect, string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = DefaultDSN
	}

	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect, dsn, nil
	case isKeyValueDSN(dsn):
		return postgresDialect, dsn, nil
	}

	if strings.Contains(dsn, "://") && !strings.HasPrefix(dsn, "sqlite://") {
		return dialect{}, "", fmt.Errorf("unsupported connection string %q", dsn)
	}

	// sqlite:///relative.db and sqlite:////abs/path.db, as in SQLAlchemy URLs.
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(dsn, "sqlite:///") {
		path = strings.TrimPrefix(dsn, "sqlite:///")
	}
	if path == "" {
		return dialect{}, "", fmt.Errorf("connection string %q has no database path", dsn)
	}
	if strings.HasPrefix(path, "file:") {
		return sqliteDialect, path, nil
	}
	return sqliteDialect, fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path), nil
}

// keyValueToken matches the first token of a libpq "host=... dbname=..." string.
var keyValueToken = regexp.MustCompile(`^[A-Za-z_]+=[^/]*$`)

func isKeyValueDSN(dsn string) bool {
	fields := strings.Fields(dsn)
	return len(fields) > 0 && keyValueToken.MatchString(fields[0])
}

// ErrNotSQLite is returned by SQLitePath for connection strings that name a
// server database.
var ErrNotSQLite = errors.New("not a SQLite connection string")

// SQLitePath resolves a connection string to the SQLite file it opens. It
// returns "" for in-memory databases.
func SQLitePath(dsn string) (string, error) {
	d, source, err := parseDSN(dsn)
	if err != nil {
		return "", err
	}
	if d.driver != sqliteDialect.driver {
		return "", fmt.Errorf("%q: %w", dsn, ErrNotSQLite)
	}
	return sqlitePath(source), nil
}

// sqlitePath returns the on-disk path behind a SQLite data source name, or
// "" for in-memory and URI forms that manage their own location.
func sqlitePath(source string) string {
	path := strings.TrimPrefix(source, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.HasPrefix(source, "file::memory:") {
		return ""
	}
	return path
}

// rebind rewrites ? placeholders for engines that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}
