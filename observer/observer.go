// Package observer provides OTEL-based observability for pipeline runs.
//
// It exposes traces, metrics, and logs via OpenTelemetry. Users export to any
// OTEL-compatible backend by setting standard OTEL env vars
// (OTEL_EXPORTER_OTLP_ENDPOINT, etc.). When observability is disabled, Nop()
// returns instruments backed by no-op providers so callers never branch.
package observer

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const scopeName = "github.com/nevindra/shard/observer"

// Instruments holds all OTEL instruments used by the pipeline.
type Instruments struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger otellog.Logger

	// Counters
	DocumentsProcessed metric.Int64Counter
	DocumentsFailed    metric.Int64Counter
	ChunksProduced     metric.Int64Counter
	SpansAttached      metric.Int64Counter
	SpansDropped       metric.Int64Counter

	// Histograms
	DocumentDuration metric.Float64Histogram
}

// Init sets up OTEL trace, metric, and log providers with OTLP HTTP exporters.
// Configuration comes from standard OTEL env vars.
// Returns a shutdown function that must be called on application exit.
func Init(ctx context.Context) (*Instruments, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("shard")),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, nil, err
	}

	// Trace provider
	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// Metric provider
	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Log provider
	logExp, err := otlploghttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	inst, err := newInstruments(
		otel.Tracer(scopeName),
		otel.Meter(scopeName),
		global.GetLoggerProvider().Logger(scopeName),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = lp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}

	return inst, shutdown, nil
}

// Nop returns Instruments backed by no-op providers. Recording through them
// costs almost nothing and exports nowhere.
func Nop() *Instruments {
	inst, err := newInstruments(
		tracenoop.NewTracerProvider().Tracer(scopeName),
		metricnoop.NewMeterProvider().Meter(scopeName),
		lognoop.NewLoggerProvider().Logger(scopeName),
	)
	if err != nil {
		// No-op instrument creation cannot fail.
		panic(err)
	}
	return inst
}

func newInstruments(tracer trace.Tracer, meter metric.Meter, logger otellog.Logger) (*Instruments, error) {
	docsProcessed, err := meter.Int64Counter("pipeline.documents.processed",
		metric.WithDescription("Documents that reached the Emitted state"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, err
	}

	docsFailed, err := meter.Int64Counter("pipeline.documents.failed",
		metric.WithDescription("Documents that reached the Failed state"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, err
	}

	chunksProduced, err := meter.Int64Counter("pipeline.chunks.produced",
		metric.WithDescription("Chunks produced across all documents"),
		metric.WithUnit("{chunk}"))
	if err != nil {
		return nil, err
	}

	spansAttached, err := meter.Int64Counter("pipeline.spans.attached",
		metric.WithDescription("Annotation spans attached to chunk records"),
		metric.WithUnit("{span}"))
	if err != nil {
		return nil, err
	}

	spansDropped, err := meter.Int64Counter("pipeline.spans.dropped",
		metric.WithDescription("Annotation spans intersecting no chunk"),
		metric.WithUnit("{span}"))
	if err != nil {
		return nil, err
	}

	docDuration, err := meter.Float64Histogram("pipeline.document.duration",
		metric.WithDescription("Wall time to process one document"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:             tracer,
		Meter:              meter,
		Logger:             logger,
		DocumentsProcessed: docsProcessed,
		DocumentsFailed:    docsFailed,
		ChunksProduced:     chunksProduced,
		SpansAttached:      spansAttached,
		SpansDropped:       spansDropped,
		DocumentDuration:   docDuration,
	}, nil
}

// LogFailure emits one structured log record for a failed document.
func (in *Instruments) LogFailure(ctx context.Context, documentID, stage string, err error) {
	var rec otellog.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(otellog.SeverityError)
	rec.SetBody(otellog.StringValue(err.Error()))
	rec.AddAttributes(
		otellog.String("document.id", documentID),
		otellog.String("pipeline.stage", stage),
	)
	in.Logger.Emit(ctx, rec)
}
