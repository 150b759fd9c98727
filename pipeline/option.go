package pipeline

import (
	"context"
	"log/slog"

	"github.com/nevindra/shard/observer"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers sets the worker pool size for Run. Values below 1 are clamped
// to 1. The default is 4.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) { o.workers = n }
}

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInstruments sets the telemetry instruments. The default records nothing.
func WithInstruments(in *observer.Instruments) Option {
	return func(o *Orchestrator) {
		if in != nil {
			o.inst = in
		}
	}
}

// nopLogger is a logger that discards all output. Used when WithLogger is not set.
var nopLogger = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
