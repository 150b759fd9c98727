package shard

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrConfigMessage(t *testing.T) {
	err := &ErrConfig{Field: "overlap", Reason: "must be less than max size"}
	if !strings.Contains(err.Error(), "overlap") {
		t.Errorf("message should name the field: %s", err.Error())
	}
}

func TestErrInvalidSpanUnwrap(t *testing.T) {
	inner := &ErrInvalidSpan{Span: Span{Category: "ssn", Start: 10, End: 4}, DocLen: 8}
	wrapped := fmt.Errorf("annotate: %w", inner)

	var target *ErrInvalidSpan
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find ErrInvalidSpan through wrapping")
	}
	if target.DocLen != 8 {
		t.Errorf("doc length lost in wrapping: %d", target.DocLen)
	}
}
