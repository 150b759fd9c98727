package shard

import "context"

// Emission is everything a document produces: its full ordered record set
// plus the configuration and diagnostics that describe how it was produced.
//
// EmissionID and EmittedAt are run provenance: they identify which pipeline
// run produced the emission, not what it contains. Records, configuration,
// and diagnostics are a pure function of the inputs; the provenance fields
// are the only part of the payload that changes between identical runs.
type Emission struct {
	EmissionID  string        `json:"emission_id"`
	DocumentID  string        `json:"document_id"`
	Source      string        `json:"source"`
	MaxSize     int           `json:"max_size"`
	Overlap     int           `json:"overlap"`
	Separators  []string      `json:"separators"`
	Records     []ChunkRecord `json:"records"`
	Diagnostics Diagnostics   `json:"diagnostics"`
	EmittedAt   int64         `json:"emitted_at"`
}

// Store abstracts the output destination. Emit receives one Emission per
// document and must make it visible atomically: a reader sees either the
// whole record set or nothing. Re-emitting the same document ID replaces the
// prior record set wholesale; with identical inputs the replacement record
// set is byte-for-byte identical, only the provenance fields differ.
type Store interface {
	Emit(ctx context.Context, e Emission) error

	// --- Lifecycle ---
	Init(ctx context.Context) error
	Close() error
}
