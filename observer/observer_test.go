package observer

import (
	"context"
	"errors"
	"testing"
)

func TestNopInstruments(t *testing.T) {
	inst := Nop()
	if inst.Tracer == nil || inst.Meter == nil || inst.Logger == nil {
		t.Fatal("nop instruments should be fully populated")
	}

	// Recording through no-op instruments must not panic.
	ctx := context.Background()
	inst.DocumentsProcessed.Add(ctx, 1)
	inst.DocumentDuration.Record(ctx, 0.5)
	inst.LogFailure(ctx, "doc-1", "split", errors.New("boom"))

	_, span := inst.Tracer.Start(ctx, "pipeline.document")
	span.End()
}
