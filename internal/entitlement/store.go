// Package entitlement persists the one-way premium upgrade in SQLite.
package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Jabulani101/GHO57-RACING/internal/entitlement/migrations"
	_ "modernc.org/sqlite"
)

var ErrPlayerRequired = errors.New("player id is required")

// Store persists premium entitlements.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Premium reports whether player holds the premium entitlement.
func (s *Store) Premium(ctx context.Context, player string) (bool, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return false, ErrPlayerRequired
	}
	var premium int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT premium FROM entitlements WHERE player_id = ?`, player,
	).Scan(&premium)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query entitlement: %w", err)
	}
	return premium != 0, nil
}

// GrantPremium records the upgrade. Granting twice keeps the first grant
// time; there is no revoke.
func (s *Store) GrantPremium(ctx context.Context, player string, at time.Time) error {
	player = strings.TrimSpace(player)
	if player == "" {
		return ErrPlayerRequired
	}
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO entitlements (player_id, premium, granted_at) VALUES (?, 1, ?)
		 ON CONFLICT(player_id) DO UPDATE SET premium = 1`,
		player, at.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("grant premium: %w", err)
	}
	return nil
}

// GrantedAt returns when premium was first granted, or the zero time.
func (s *Store) GrantedAt(ctx context.Context, player string) (time.Time, error) {
	var ms int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT granted_at FROM entitlements WHERE player_id = ? AND premium = 1`, strings.TrimSpace(player),
	).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query grant time: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
