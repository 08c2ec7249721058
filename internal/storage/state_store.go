package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pions/internal/domain"
)

// StateKey is the key of the single saved-state record.
const StateKey = "pionBoardState"

// StateStore implements domain.StateStore on the local SQLite file.
type StateStore struct {
	db *DB
}

var _ domain.StateStore = (*StateStore)(nil)

func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) LoadState(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, StateKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return []byte(value), nil
}

func (s *StateStore) SaveState(ctx context.Context, data []byte) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Close is a no-op; the DB is owned by the caller of New.
func (s *StateStore) Close() error { return nil }
