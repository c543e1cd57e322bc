package bookstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn        string
		wantDriver string
		wantSource string
	}{
		{"", "sqlite3", "file:example.db?_busy_timeout=5000&_foreign_keys=1"},
		{"example.db", "sqlite3", "file:example.db?_busy_timeout=5000&_foreign_keys=1"},
		{"data/shop.db", "sqlite3", "file:data/shop.db?_busy_timeout=5000&_foreign_keys=1"},
		{"sqlite:///example.db", "sqlite3", "file:example.db?_busy_timeout=5000&_foreign_keys=1"},
		{"sqlite:////var/lib/shop.db", "sqlite3", "file:/var/lib/shop.db?_busy_timeout=5000&_foreign_keys=1"},
		{"file:custom.db?mode=ro", "sqlite3", "file:custom.db?mode=ro"},
		{"postgres://u:p@localhost:5432/shop?sslmode=disable", "postgres", "postgres://u:p@localhost:5432/shop?sslmode=disable"},
		{"postgresql://localhost/shop", "postgres", "postgresql://localhost/shop"},
		{"host=localhost dbname=shop sslmode=disable", "postgres", "host=localhost dbname=shop sslmode=disable"},
		{"dbname=shop", "postgres", "dbname=shop"},
		{"data/host=1.db", "sqlite3", "file:data/host=1.db?_busy_timeout=5000&_foreign_keys=1"},
		{"backup dbname=old.db", "sqlite3", "file:backup dbname=old.db?_busy_timeout=5000&_foreign_keys=1"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			d, source, err := parseDSN(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, d.driver)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestParseDSN_Errors(t *testing.T) {
	for _, dsn := range []string{"mysql://localhost/shop", "sqlite://"} {
		_, _, err := parseDSN(dsn)
		assert.Error(t, err, dsn)
	}
}

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, "data/shop.db", sqlitePath("file:data/shop.db?_foreign_keys=1"))
	assert.Equal(t, "", sqlitePath("file::memory:?_foreign_keys=1"))
	assert.Equal(t, "", sqlitePath(":memory:"))
}

func TestRebind(t *testing.T) {
	q := `UPDATE books SET title=?, price=? WHERE id=?`
	assert.Equal(t, q, sqliteDialect.rebind(q))
	assert.Equal(t, `UPDATE books SET title=$1, price=$2 WHERE id=$3`, postgresDialect.rebind(q))
}

func TestSQLitePath_ResolvesConnectionString(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"example.db", "example.db"},
		{"sqlite:///shop.db", "shop.db"},
		{"sqlite:////var/lib/shop.db", "/var/lib/shop.db"},
		{"file:data/shop.db?mode=rwc", "data/shop.db"},
		{":memory:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := SQLitePath(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := SQLitePath("postgres://localhost/shop")
	assert.ErrorIs(t, err, ErrNotSQLite)
	_, err = SQLitePath("host=localhost dbname=shop")
	assert.ErrorIs(t, err, ErrNotSQLite)
}
