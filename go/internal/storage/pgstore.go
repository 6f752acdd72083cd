package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sqlc-dev/pqtype"
)

const createUserDocuments = `
CREATE TABLE IF NOT EXISTS user_documents (
    id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    doc JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGStore keeps the document in a single-row JSONB table. The CHECK
// constraint pins the row count at one; every save is an upsert of that row.
type PGStore struct {
	db *sql.DB
}

// NewPGStore creates a PGStore on an open database handle
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the document table if it does not exist
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createUserDocuments); err != nil {
		return fmt.Errorf("failed to ensure user_documents schema: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context) ([]byte, bool, error) {
	var doc pqtype.NullRawMessage
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM user_documents WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !doc.Valid {
		return nil, false, nil
	}
	return doc.RawMessage, true, nil
}

func (s *PGStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO user_documents (id, doc, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		pqtype.NullRawMessage{RawMessage: data, Valid: true})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	return nil
}

func (s *PGStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_documents WHERE id = 1`); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	return nil
}
