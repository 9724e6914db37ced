package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospiflow/internal/repository"
)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS sessions (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)
`

var _ repository.SessionRepository = (*SessionRepository)(nil)

type SessionRepository struct {
	BaseRepository
	now func() time.Time
}

// NewSessionRepository creates the sessions table if it is missing.
func NewSessionRepository(ctx context.Context, db *sqlx.DB) (*SessionRepository, error) {
	r := &SessionRepository{BaseRepository: NewBaseRepository(db), now: time.Now}
	if err := r.migrate(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SessionRepository) migrate(ctx context.Context) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, sessionSchema); err != nil {
			return fmt.Errorf("failed to create sessions table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, r.now()); err != nil {
			return fmt.Errorf("failed to purge expired sessions: %w", err)
		}
		return nil
	})
}

func (r *SessionRepository) Save(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO sessions (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.GetDB().ExecContext(ctx, query, key, value, r.now().Add(ttl)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM sessions
		WHERE key = $1
		AND expires_at > $2
	`

	var value []byte
	err := r.GetDB().GetContext(ctx, &value, query, key, r.now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", key, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return value, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) (bool, error) {
	res, err := r.GetDB().ExecContext(ctx, `DELETE FROM sessions WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return n > 0, nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.GetDB().PingContext(ctx)
}

func (r *SessionRepository) Close() error {
	return r.GetDB().Close()
}
