// Package fsjson implements shard.Store as one JSON file per document on the
// local filesystem. It is the zero-infrastructure backend: the output
// directory is the whole database.
package fsjson

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nevindra/shard"
)

// StoreOption configures a filesystem Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store.
// If not set, no logs are emitted.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// Store writes each emission to <dir>/<document>_chunks.json. A re-emitted
// document overwrites its file wholesale; the write goes through a temp file
// and rename so readers never observe a partially written emission.
type Store struct {
	dir    string
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

// New creates a Store writing under dir.
func New(dir string, opts ...StoreOption) *Store {
	s := &Store{dir: dir, logger: nopLogger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init creates the output directory.
func (s *Store) Init(context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("fsjson: create dir: %w", err)
	}
	return nil
}

// Path returns the file an emission for documentID is written to.
func (s *Store) Path(documentID string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_").Replace(documentID)
	return filepath.Join(s.dir, safe+"_chunks.json")
}

// Emit writes the emission to its document file atomically.
func (s *Store) Emit(ctx context.Context, e shard.Emission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("fsjson: marshal emission: %w", err)
	}

	dst := s.Path(e.DocumentID)
	tmp, err := os.CreateTemp(s.dir, ".emit-*")
	if err != nil {
		return fmt.Errorf("fsjson: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("fsjson: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("fsjson: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("fsjson: rename: %w", err)
	}
	s.logger.Debug("fsjson: emit ok", "document", e.DocumentID, "path", dst, "records", len(e.Records))
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
