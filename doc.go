// Package shard turns extracted document text into bounded, overlapping,
// annotated chunk records suitable for retrieval indexing.
//
// It provides modular, interface-driven building blocks: a recursive splitter
// driven by a separator hierarchy, a chunk annotator that projects
// document-level entity spans onto chunk-local coordinates, pluggable text
// extractors, span recognizers, and storage backends, and an orchestrator
// that drives documents through the pipeline with per-document isolation.
//
// # Quick Start
//
//	st := fsjson.New("processed")
//	orc, err := pipeline.New(st, pipeline.Config{
//		MaxSize:   490,
//		Overlap:   88,
//		Hierarchy: split.Default(),
//	})
//	if err != nil {
//		// invalid chunking configuration, fatal
//	}
//	results := orc.Run(ctx, inputs)
//
// # Core Interfaces
//
// The root package defines the contracts that all components implement:
//
//   - [Store] — per-document atomic emission of chunk records
//   - recognize.Recognizer — entity/PII span detection
//   - extract.Extractor — raw content to plain text
//
// Offsets throughout the module are byte offsets into the original document
// text. Every chunk satisfies doc.Text[c.Start:c.End] == c.Text, which keeps
// chunk and span coordinates convertible in both directions.
package shard
