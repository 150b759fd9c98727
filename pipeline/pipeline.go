// Package pipeline drives documents through splitting, annotation, and
// emission with per-document failure isolation.
//
// Each document moves through Ingested → Split → Annotated → Emitted, with a
// terminal Failed state reachable from any non-terminal state. Documents are
// independent: a batch run processes them on a bounded worker pool, and one
// document's failure never cancels or corrupts its siblings. Emission is a
// single store call at the final stage boundary, so a document cancelled or
// failed mid-pipeline leaves nothing externally visible.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nevindra/shard"
	"github.com/nevindra/shard/annotate"
	"github.com/nevindra/shard/observer"
	"github.com/nevindra/shard/split"
)

// Stage identifies a pipeline state for one document.
type Stage string

const (
	StageIngested  Stage = "ingested"
	StageSplit     Stage = "split"
	StageAnnotated Stage = "annotated"
	StageEmitted   Stage = "emitted"
	StageFailed    Stage = "failed"
)

// Config is the chunking configuration shared by every document in a run.
// It is validated once at construction: a bad configuration is systemic and
// aborts the run, never a per-document condition.
type Config struct {
	MaxSize   int
	Overlap   int
	Hierarchy split.Hierarchy

	// Redact fills each record's Redacted field with the chunk text after
	// span ranges are replaced by category placeholders.
	Redact bool
}

// Input pairs one document with its annotation spans, both produced by the
// external collaborators before the pipeline starts.
type Input struct {
	Document shard.Document
	Spans    []shard.Span
}

// Result is the terminal outcome for one document. Stage is StageEmitted or
// StageFailed; FailedAt names the stage that was running when Err occurred.
type Result struct {
	DocumentID  string
	Stage       Stage
	FailedAt    Stage
	Records     []shard.ChunkRecord
	Diagnostics shard.Diagnostics
	Err         error
}

// Failed reports whether the document ended in the Failed state.
func (r Result) Failed() bool { return r.Stage == StageFailed }

// Orchestrator runs the chunk/metadata pipeline. Safe for concurrent use:
// configuration is fixed at construction and no state is shared between
// documents.
type Orchestrator struct {
	store   shard.Store
	cfg     Config
	workers int
	logger  *slog.Logger
	inst    *observer.Instruments
}

// New validates cfg and creates an Orchestrator writing to store.
func New(store shard.Store, cfg Config, opts ...Option) (*Orchestrator, error) {
	if cfg.MaxSize <= 0 {
		return nil, &shard.ErrConfig{Field: "max_size", Reason: "must be positive"}
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxSize {
		return nil, &shard.ErrConfig{Field: "overlap", Reason: "must be non-negative and less than max_size"}
	}
	if cfg.Hierarchy.Len() == 0 {
		return nil, &shard.ErrConfig{Field: "separators", Reason: "hierarchy must be built with split.New"}
	}
	o := &Orchestrator{
		store:   store,
		cfg:     cfg,
		workers: 4,
		logger:  nopLogger,
		inst:    observer.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o, nil
}

// Run processes every input on a bounded worker pool and returns one Result
// per input, in input order. Per-document failures are captured in their
// Result; they never abort the batch. Cancelling ctx stops scheduling and
// fails in-flight documents at their next stage boundary.
func (o *Orchestrator) Run(ctx context.Context, inputs []Input) []Result {
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = o.Process(ctx, in.Document, in.Spans)
			// Failures stay in the result; returning them would cancel siblings.
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Process runs one document through all stages sequentially.
func (o *Orchestrator) Process(ctx context.Context, doc shard.Document, spans []shard.Span) Result {
	start := time.Now()
	ctx, span := o.inst.Tracer.Start(ctx, "pipeline.document",
		trace.WithAttributes(attribute.String("document.id", doc.ID)))
	defer span.End()

	res := o.process(ctx, doc, spans)

	o.inst.DocumentDuration.Record(ctx, time.Since(start).Seconds())
	if res.Failed() {
		span.RecordError(res.Err)
		o.inst.DocumentsFailed.Add(ctx, 1)
		o.inst.LogFailure(ctx, doc.ID, string(res.FailedAt), res.Err)
		o.logger.Error("pipeline: document failed",
			"document", doc.ID, "stage", res.FailedAt, "err", res.Err)
	} else {
		o.inst.DocumentsProcessed.Add(ctx, 1)
		o.inst.ChunksProduced.Add(ctx, int64(res.Diagnostics.ChunkCount))
		o.inst.SpansAttached.Add(ctx, int64(res.Diagnostics.AttachedSpans))
		o.inst.SpansDropped.Add(ctx, int64(res.Diagnostics.DroppedSpans))
		o.logger.Debug("pipeline: document emitted",
			"document", doc.ID,
			"chunks", res.Diagnostics.ChunkCount,
			"dropped_spans", res.Diagnostics.DroppedSpans)
	}
	return res
}

func (o *Orchestrator) process(ctx context.Context, doc shard.Document, spans []shard.Span) Result {
	res := Result{DocumentID: doc.ID, Stage: StageIngested}
	span := trace.SpanFromContext(ctx)

	fail := func(at Stage, err error) Result {
		res.Stage = StageFailed
		res.FailedAt = at
		res.Err = fmt.Errorf("%s %s: %w", at, doc.ID, err)
		return res
	}

	// Ingested → Split
	if err := ctx.Err(); err != nil {
		return fail(StageSplit, err)
	}
	pieces, err := split.Split(doc.Text, o.cfg.Hierarchy, o.cfg.MaxSize, o.cfg.Overlap)
	if err != nil {
		return fail(StageSplit, err)
	}
	chunks := make([]shard.Chunk, len(pieces))
	oversize := 0
	for i, p := range pieces {
		if p.End-p.Start > o.cfg.MaxSize {
			oversize++
		}
		chunks[i] = shard.Chunk{
			DocumentID: doc.ID,
			Index:      i,
			Start:      p.Start,
			End:        p.End,
			Text:       p.Text,
		}
	}
	res.Stage = StageSplit
	span.AddEvent("split", trace.WithAttributes(attribute.Int("chunks", len(chunks))))

	// Split → Annotated. Zero chunks is a valid empty document, not a failure.
	if err := ctx.Err(); err != nil {
		return fail(StageAnnotated, err)
	}
	records, diag, err := annotate.Annotate(chunks, spans, doc.Length())
	if err != nil {
		return fail(StageAnnotated, err)
	}
	diag.OversizeChunks = oversize
	if o.cfg.Redact {
		for i := range records {
			records[i].Redacted = annotate.Redact(records[i].Chunk.Text, records[i].Spans)
		}
	}
	res.Stage = StageAnnotated
	res.Records = records
	res.Diagnostics = diag
	span.AddEvent("annotated", trace.WithAttributes(
		attribute.Int("spans.attached", diag.AttachedSpans),
		attribute.Int("spans.dropped", diag.DroppedSpans)))

	// Annotated → Emitted. One atomic store call; the cancellation check sits
	// at the boundary so a cancelled document leaves nothing visible.
	if err := ctx.Err(); err != nil {
		return fail(StageEmitted, err)
	}
	emission := shard.Emission{
		EmissionID:  shard.NewID(),
		DocumentID:  doc.ID,
		Source:      doc.Source,
		MaxSize:     o.cfg.MaxSize,
		Overlap:     o.cfg.Overlap,
		Separators:  o.cfg.Hierarchy.Separators(),
		Records:     records,
		Diagnostics: diag,
		EmittedAt:   shard.NowUnix(),
	}
	if err := o.store.Emit(ctx, emission); err != nil {
		return fail(StageEmitted, err)
	}
	res.Stage = StageEmitted
	span.AddEvent("emitted")
	return res
}
