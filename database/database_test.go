package database

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationsFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)
	return sub
}

func TestNewAppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, migrationsFS(t))
	require.NoError(t, err)
	defer db.Close()

	// Şemadaki ana tablolar oluşmuş olmalı.
	for _, table := range []string{"users", "sessions", "password_resets", "products", "ratings", "blogs", "blog_reactions", "coupons", "images"} {
		var count int
		err := db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s missing", table)
	}

	// foreign_keys pragma'sı açık olmalı — cascade'ler buna dayanır.
	var fk int
	require.NoError(t, db.Conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestNewIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, migrationsFS(t))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Aynı dosyaya ikinci açılış — migration'lar tekrar uygulanmaz, hata yok.
	db, err = New(dbPath, migrationsFS(t))
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Greater(t, applied, 0)
}

func TestSplitStatements(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want []string
	}{
		{
			"two statements",
			"CREATE TABLE a (id TEXT); CREATE TABLE b (id TEXT);",
			[]string{"CREATE TABLE a (id TEXT)", "CREATE TABLE b (id TEXT)"},
		},
		{
			"semicolon inside string literal",
			"INSERT INTO t VALUES ('a;b'); SELECT 1;",
			[]string{"INSERT INTO t VALUES ('a;b')", "SELECT 1"},
		},
		{
			"escaped quote inside string",
			"INSERT INTO t VALUES ('it''s;ok');",
			[]string{"INSERT INTO t VALUES ('it''s;ok')"},
		},
		{
			"trailing statement without semicolon",
			"SELECT 1",
			[]string{"SELECT 1"},
		},
		{
			"empty input",
			"  \n ",
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitStatements(tc.sql))
		})
	}
}
