package shard

import (
	"fmt"
	"strings"
)

// --- Domain types (pipeline records) ---

// Document is one unit of work for the pipeline: an identifier plus the
// extracted plain text. Immutable after extraction.
type Document struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

// Length is the document's total size in bytes; span and chunk offsets are
// valid in the range [0, Length].
func (d Document) Length() int { return len(d.Text) }

// Chunk is a bounded slice of a document's text. Start and End are byte
// offsets into the original document text, inclusive of overlap, so that
// doc.Text[Start:End] == Text. Consecutive chunks of the same document may
// share up to the configured overlap bytes.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"chunk_index"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
}

// Span is a labeled character range over the original document text, as
// produced by an annotation collaborator (entity recognition, PII detection).
type Span struct {
	Category   string  `json:"category"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// ChunkRecord pairs a chunk with the spans that intersect it, re-based to
// chunk-local offsets. Records are owned wholesale by their document: a
// reprocessed document replaces its full record set, never part of it.
type ChunkRecord struct {
	ID       string `json:"chunk_id"`
	Chunk    Chunk  `json:"chunk"`
	Spans    []Span `json:"spans"`
	Redacted string `json:"redacted,omitempty"`
}

// Diagnostics counts everything the pipeline declined to carry forward, so
// nothing is lost silently.
type Diagnostics struct {
	ChunkCount     int `json:"chunk_count"`
	AttachedSpans  int `json:"attached_spans"`
	DroppedSpans   int `json:"dropped_spans"`
	OversizeChunks int `json:"oversize_chunks"`
}

// ChunkID derives the stable record identifier for a document's chunk:
// the document key with spaces and slashes replaced, plus a zero-padded
// sequence index.
func ChunkID(documentID string, index int) string {
	key := strings.NewReplacer(" ", "_", "/", "_").Replace(documentID)
	return fmt.Sprintf("%s_chunk_%03d", key, index)
}
