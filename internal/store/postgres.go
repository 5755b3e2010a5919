package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS pizzahub_documents (
	name TEXT PRIMARY KEY,
	doc  JSONB NOT NULL
)`

const selectDocument = `SELECT doc FROM pizzahub_documents WHERE name = $1`

const upsertDocument = `INSERT INTO pizzahub_documents (name, doc) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc`

// PostgresBackend keeps the document as one JSONB row keyed by name.
type PostgresBackend struct {
	db   *sql.DB
	name string
}

// NewPostgresBackend returns a backend for the row called name.
func NewPostgresBackend(db *sql.DB, name string) *PostgresBackend {
	return &PostgresBackend{db: db, name: name}
}

// Migrate creates the documents table when it is missing.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("create pizzahub_documents: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context) (State, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, selectDocument, b.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("%w: select %s: %v", ErrLoad, b.name, err)
	}
	return decodeState(data)
}

func (b *PostgresBackend) Save(ctx context.Context, s State) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	// jsonb takes the text form; a []byte argument would be sent as bytea.
	if _, err := b.db.ExecContext(ctx, upsertDocument, b.name, string(data)); err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrSave, b.name, err)
	}
	return nil
}
