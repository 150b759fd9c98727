// Package sqlite implements shard.Store using pure-Go SQLite.
// Zero CGO required.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nevindra/shard"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// StoreOption configures a SQLite Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store.
// When set, the store emits debug logs for every emission including timing
// and record counts. If not set, no logs are emitted.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// Store implements shard.Store backed by a local SQLite file. Each emission
// replaces every row previously written for its document, so re-processing a
// document is idempotent.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ shard.Store = (*Store)(nil)

// nopLogger is a logger that discards all output.
var nopLogger = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// New creates a Store using a local SQLite file at dbPath.
// It opens a single shared connection pool with SetMaxOpenConns(1) so that
// all goroutines serialize through one connection, eliminating SQLITE_BUSY
// errors caused by concurrent writers opening independent connections.
func New(dbPath string, opts ...StoreOption) *Store {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		// sql.Open only fails when the driver is not registered; with the
		// blank import above that never happens.
		panic(fmt.Sprintf("sqlite: open driver: %v", err))
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, logger: nopLogger}
	for _, o := range opts {
		o(s)
	}
	s.logger.Debug("sqlite: store opened", "path", dbPath)
	return s
}

// Init creates all required tables.
func (s *Store) Init(ctx context.Context) error {
	start := time.Now()
	s.logger.Debug("sqlite: init started")
	tables := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			emission_id TEXT NOT NULL,
			source TEXT NOT NULL,
			max_size INTEGER NOT NULL,
			overlap INTEGER NOT NULL,
			separators TEXT NOT NULL,
			diagnostics TEXT NOT NULL,
			emitted_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			start INTEGER NOT NULL,
			"end" INTEGER NOT NULL,
			content TEXT NOT NULL,
			redacted TEXT,
			spans TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks (document_id)`,
	}
	for _, ddl := range tables {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	s.logger.Debug("sqlite: init ok", "duration", time.Since(start))
	return nil
}

// Emit replaces the stored chunk set for the emission's document in a single
// transaction. Prior rows for the same document are deleted first, so partial
// older state never mixes with the new emission.
func (s *Store) Emit(ctx context.Context, e shard.Emission) error {
	start := time.Now()
	s.logger.Debug("sqlite: emit", "document", e.DocumentID, "records", len(e.Records))

	seps, err := json.Marshal(e.Separators)
	if err != nil {
		return fmt.Errorf("marshal separators: %w", err)
	}
	diag, err := json.Marshal(e.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, e.DocumentID); err != nil {
		return fmt.Errorf("delete prior chunks: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, emission_id, source, max_size, overlap, separators, diagnostics, emitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.DocumentID, e.EmissionID, e.Source, e.MaxSize, e.Overlap, string(seps), string(diag), e.EmittedAt,
	)
	if err != nil {
		s.logger.Error("sqlite: insert document failed", "id", e.DocumentID, "error", err)
		return fmt.Errorf("insert document: %w", err)
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
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chunks (id, document_id, chunk_index, start, "end", content, redacted, spans)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Chunk.DocumentID, r.Chunk.Index, r.Chunk.Start, r.Chunk.End, r.Chunk.Text, redacted, spansJSON,
		)
		if err != nil {
			s.logger.Error("sqlite: insert chunk failed", "chunk_id", r.ID, "doc_id", e.DocumentID, "error", err)
			return fmt.Errorf("insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("sqlite: emit commit failed", "id", e.DocumentID, "error", err)
		return fmt.Errorf("commit tx: %w", err)
	}
	s.logger.Debug("sqlite: emit ok", "document", e.DocumentID, "records", len(e.Records), "duration", time.Since(start))
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
