// Package annotate merges chunk text with document-level annotation spans,
// producing chunk records with positional provenance.
//
// Spans arrive in original-document byte coordinates. For every chunk, the
// annotator selects the spans intersecting it (half-open interval test),
// clips them to the chunk boundary, and re-bases their offsets to be relative
// to the chunk start. A span falling inside the overlap region of two
// consecutive chunks attaches to both; that duplication is expected. Spans
// that intersect no chunk are dropped and counted, never lost silently.
package annotate

import (
	"sort"

	"github.com/nevindra/shard"
)

// Annotate builds one ChunkRecord per chunk from the document's spans.
// docLen is the length of the original document text in bytes; a span with
// offsets outside [0, docLen] fails the document with ErrInvalidSpan.
// Chunks must be ordered by sequence index. Spans may arrive in any order;
// per-record span lists come out sorted by start offset.
func Annotate(chunks []shard.Chunk, spans []shard.Span, docLen int) ([]shard.ChunkRecord, shard.Diagnostics, error) {
	diag := shard.Diagnostics{ChunkCount: len(chunks)}

	for _, s := range spans {
		if s.Start < 0 || s.Start > s.End || s.End > docLen {
			return nil, diag, &shard.ErrInvalidSpan{Span: s, DocLen: docLen}
		}
	}

	records := make([]shard.ChunkRecord, len(chunks))
	attached := make([]bool, len(spans))

	for i, c := range chunks {
		var local []shard.Span
		for j, s := range spans {
			// A zero-length span has zero-length overlap with every chunk,
			// including one it sits inside, so it is never attached.
			if s.Start == s.End || s.Start >= c.End || s.End <= c.Start {
				continue
			}
			attached[j] = true
			local = append(local, clip(s, c))
		}
		sort.Slice(local, func(a, b int) bool {
			if local[a].Start != local[b].Start {
				return local[a].Start < local[b].Start
			}
			return local[a].End < local[b].End
		})
		diag.AttachedSpans += len(local)
		records[i] = shard.ChunkRecord{
			ID:    shard.ChunkID(c.DocumentID, c.Index),
			Chunk: c,
			Spans: local,
		}
	}

	for _, ok := range attached {
		if !ok {
			diag.DroppedSpans++
		}
	}
	return records, diag, nil
}

// clip bounds s to the chunk's range and re-bases it to chunk-local offsets.
func clip(s shard.Span, c shard.Chunk) shard.Span {
	start, end := s.Start, s.End
	if start < c.Start {
		start = c.Start
	}
	if end > c.End {
		end = c.End
	}
	return shard.Span{
		Category:   s.Category,
		Start:      start - c.Start,
		End:        end - c.Start,
		Confidence: s.Confidence,
	}
}
