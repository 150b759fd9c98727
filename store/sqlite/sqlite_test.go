package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nevindra/shard"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "test.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEmission(docID string, n int) shard.Emission {
	e := shard.Emission{
		EmissionID: shard.NewID(),
		DocumentID: docID,
		Source:     docID + ".txt",
		MaxSize:    490,
		Overlap:    88,
		Separators: []string{"\n\n", "\n", " ", ""},
		Diagnostics: shard.Diagnostics{
			ChunkCount:    n,
			AttachedSpans: 1,
		},
		EmittedAt: shard.NowUnix(),
	}
	for i := 0; i < n; i++ {
		e.Records = append(e.Records, shard.ChunkRecord{
			ID: shard.ChunkID(docID, i),
			Chunk: shard.Chunk{
				DocumentID: docID,
				Index:      i,
				Start:      i * 10,
				End:        i*10 + 10,
				Text:       "chunk text",
			},
			Spans: []shard.Span{{Category: "person", Start: 0, End: 5, Confidence: 0.6}},
		})
	}
	return e
}

func TestInitIdempotent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "init.db"))
	defer s.Close()
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := s.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}
}

func TestEmitStoresRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Emit(ctx, testEmission("doc-1", 3)); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE document_id = ?`, "doc-1").Scan(&count); err != nil {
		t.Fatalf("count chunks: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 chunks, got %d", count)
	}

	var emissionID, source string
	if err := s.db.QueryRowContext(ctx, `SELECT emission_id, source FROM documents WHERE id = ?`, "doc-1").Scan(&emissionID, &source); err != nil {
		t.Fatalf("select document: %v", err)
	}
	if source != "doc-1.txt" {
		t.Fatalf("source = %q", source)
	}
	if emissionID == "" {
		t.Fatal("emission_id not stored")
	}
}

func TestEmitReplacesPriorRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Emit(ctx, testEmission("doc-1", 5)); err != nil {
		t.Fatalf("first Emit: %v", err)
	}
	if err := s.Emit(ctx, testEmission("doc-1", 2)); err != nil {
		t.Fatalf("second Emit: %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE document_id = ?`, "doc-1").Scan(&count); err != nil {
		t.Fatalf("count chunks: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected replacement to leave 2 chunks, got %d", count)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 document row, got %d", count)
	}
}

func TestEmitKeepsOtherDocuments(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Emit(ctx, testEmission("doc-a", 2)); err != nil {
		t.Fatalf("Emit doc-a: %v", err)
	}
	if err := s.Emit(ctx, testEmission("doc-b", 4)); err != nil {
		t.Fatalf("Emit doc-b: %v", err)
	}
	if err := s.Emit(ctx, testEmission("doc-a", 1)); err != nil {
		t.Fatalf("re-Emit doc-a: %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE document_id = ?`, "doc-b").Scan(&count); err != nil {
		t.Fatalf("count doc-b chunks: %v", err)
	}
	if count != 4 {
		t.Fatalf("doc-b chunks disturbed, got %d", count)
	}
}
