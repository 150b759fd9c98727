// Package postgres implements shard.Store using PostgreSQL.
//
// Store accepts an externally-owned *pgxpool.Pool via constructor injection.
// The caller creates and closes the pool.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nevindra/shard"
)

// Store implements shard.Store backed by PostgreSQL. Each emission replaces
// every row previously written for its document inside one transaction, so
// re-processing a document is idempotent and readers never observe a mix of
// old and new chunk sets.
type Store struct {
	pool *pgxpool.Pool
	cfg  pgConfig
}

// pgConfig holds store configuration set via Option functions.
type pgConfig struct {
	schema string // "" = default search_path
}

// Option configures a PostgreSQL Store.
type Option func(*pgConfig)

// WithSchema qualifies all table names with the given schema.
// The schema must already exist; Init does not create it.
func WithSchema(schema string) Option {
	return func(c *pgConfig) { c.schema = schema }
}

var _ shard.Store = (*Store)(nil)

// New creates a Store using an existing pgxpool.Pool.
// The caller owns the pool and is responsible for closing it.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	var cfg pgConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Store{pool: pool, cfg: cfg}
}

func (s *Store) table(name string) string {
	if s.cfg.schema != "" {
		return s.cfg.schema + "." + name
	}
	return name
}

// Init creates all required tables and indexes.
// Safe to call multiple times (all statements are idempotent).
func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			emission_id TEXT NOT NULL,
			source TEXT NOT NULL,
			max_size INTEGER NOT NULL,
			overlap INTEGER NOT NULL,
			separators JSONB NOT NULL,
			diagnostics JSONB NOT NULL,
			emitted_at BIGINT NOT NULL
		)`, s.table("documents")),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			content TEXT NOT NULL,
			redacted TEXT,
			spans JSONB
		)`, s.table("chunks")),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_chunks_document ON %s (document_id)`, s.table("chunks")),
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: init: %w", err)
		}
	}
	return nil
}

// Emit replaces the stored chunk set for the emission's document in a single
// transaction.
func (s *Store) Emit(ctx context.Context, e shard.Emission) error {
	seps, err := json.Marshal(e.Separators)
	if err != nil {
		return fmt.Errorf("postgres: marshal separators: %w", err)
	}
	diag, err := json.Marshal(e.Diagnostics)
	if err != nil {
		return fmt.Errorf("postgres: marshal diagnostics: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, s.table("chunks")), e.DocumentID); err != nil {
		return fmt.Errorf("postgres: delete prior chunks: %w", err)
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, emission_id, source, max_size, overlap, separators, diagnostics, emitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   emission_id = EXCLUDED.emission_id,
		   source = EXCLUDED.source,
		   max_size = EXCLUDED.max_size,
		   overlap = EXCLUDED.overlap,
		   separators = EXCLUDED.separators,
		   diagnostics = EXCLUDED.diagnostics,
		   emitted_at = EXCLUDED.emitted_at`, s.table("documents")),
		e.DocumentID, e.EmissionID, e.Source, e.MaxSize, e.Overlap, string(seps), string(diag), e.EmittedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert document: %w", err)
	}

	for _, r := range e.Records {
		var spansJSON *string
		if len(r.Spans) > 0 {
			data, _ := json.Marshal(r.Spans)
			v := string(data)
			spansJSON = &v
		}
		var redacted *string
		if r.Redacted != "" {
			redacted = &r.Redacted
		}
		_, err = tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (id, document_id, chunk_index, start_offset, end_offset, content, redacted, spans)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)`, s.table("chunks")),
			r.ID, r.Chunk.DocumentID, r.Chunk.Index, r.Chunk.Start, r.Chunk.End, r.Chunk.Text, redacted, spansJSON)
		if err != nil {
			return fmt.Errorf("postgres: insert chunk %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit tx: %w", err)
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (s *Store) Close() error { return nil }
