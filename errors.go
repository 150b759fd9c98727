package shard

import "fmt"

// ErrConfig reports an invalid chunking configuration. It is fatal: a bad
// max size, overlap, or separator hierarchy indicates systemic
// misconfiguration, never a per-document condition.
type ErrConfig struct {
	Field  string
	Reason string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// ErrInvalidSpan reports an annotation span whose offsets fall outside the
// document. It fails only the affected document; sibling documents are
// unaffected.
type ErrInvalidSpan struct {
	Span   Span
	DocLen int
}

func (e *ErrInvalidSpan) Error() string {
	return fmt.Sprintf("span %s [%d,%d) outside document of length %d",
		e.Span.Category, e.Span.Start, e.Span.End, e.DocLen)
}
