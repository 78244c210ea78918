package entitlement

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entitlements.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_DefaultsToNotPremium(t *testing.T) {
	s, _ := openTestStore(t)
	premium, err := s.Premium(context.Background(), "local")
	require.NoError(t, err)
	assert.False(t, premium)
}

func TestStore_GrantIsOneWayAndDurable(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.GrantPremium(ctx, "local", first))
	require.NoError(t, s.GrantPremium(ctx, "local", first.Add(time.Hour)))

	premium, err := s.Premium(ctx, "local")
	require.NoError(t, err)
	assert.True(t, premium)

	at, err := s.GrantedAt(ctx, "local")
	require.NoError(t, err)
	assert.True(t, first.Equal(at), "re-grant keeps the original time, got %v", at)

	other, err := s.Premium(ctx, "someone-else")
	require.NoError(t, err)
	assert.False(t, other)

	require.NoError(t, s.Close())
	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	premium, err = reopened.Premium(ctx, "local")
	require.NoError(t, err)
	assert.True(t, premium)
}

func TestStore_PlayerRequired(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.Premium(ctx, "  ")
	assert.ErrorIs(t, err, ErrPlayerRequired)
	assert.ErrorIs(t, s.GrantPremium(ctx, "", time.Now()), ErrPlayerRequired)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	require.Error(t, err)
}

func TestStore_NilClose(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}
	require.NoError(t, applyMigrations(ctx, db, fsys))
	require.NoError(t, applyMigrations(ctx, db, fsys))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+migrationTable).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestApplyMigrations_FailureNotRecorded(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")},
	}
	require.Error(t, applyMigrations(ctx, db, bad))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+migrationTable).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nA\n", upSection("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "plain", upSection("plain"))
	assert.Equal(t, "\nA", upSection("-- +migrate Up\nA"))
}
