package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps credentials in the dashboard_sessions table:
//
//	CREATE TABLE dashboard_sessions (
//	    namespace  TEXT NOT NULL,
//	    key        TEXT NOT NULL,
//	    value      BYTEA NOT NULL,
//	    expires_at TIMESTAMPTZ,
//	    PRIMARY KEY (namespace, key)
//	);
type PostgresStore struct {
	db        *pgxpool.Pool
	namespace string
	ttl       time.Duration
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool, namespace string, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace, ttl: ttl}
}

// Migrate creates the sessions table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS dashboard_sessions (
        namespace  TEXT NOT NULL,
        key        TEXT NOT NULL,
        value      BYTEA NOT NULL,
        expires_at TIMESTAMPTZ,
        PRIMARY KEY (namespace, key))`)
	return err
}

// Token returns the stored bearer token.
func (s *PostgresStore) Token(ctx context.Context) (string, error) {
	v, err := s.get(ctx, TokenKey)
	return string(v), err
}

// SetToken stores the bearer token.
func (s *PostgresStore) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, TokenKey, []byte(token))
}

// User returns the cached user record.
func (s *PostgresStore) User(ctx context.Context) ([]byte, error) {
	return s.get(ctx, UserKey)
}

// SetUser caches the user record.
func (s *PostgresStore) SetUser(ctx context.Context, user []byte) error {
	return s.set(ctx, UserKey, user)
}

// Clear removes all credentials of the namespace.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM dashboard_sessions WHERE namespace = $1`, s.namespace); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRow(ctx, `SELECT value FROM dashboard_sessions
        WHERE namespace = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > NOW())`, s.namespace, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) set(ctx context.Context, key string, value []byte) error {
	var expiresAt *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl).UTC()
		expiresAt = &t
	}
	_, err := s.db.Exec(ctx, `INSERT INTO dashboard_sessions (namespace, key, value, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		s.namespace, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("write session %s: %w", key, err)
	}
	return nil
}
