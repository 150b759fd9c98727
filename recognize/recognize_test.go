package recognize

import (
	"context"
	"strings"
	"testing"

	"github.com/nevindra/shard"
)

func find(spans []shard.Span, category string) []shard.Span {
	var out []shard.Span
	for _, s := range spans {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func TestRecognizeSSN(t *testing.T) {
	r := NewPatternRecognizer()
	text := "Patient SSN: 123-45-6789 on file."
	spans, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	got := find(spans, CategorySSN)
	if len(got) != 1 {
		t.Fatalf("expected one SSN span, got %d", len(got))
	}
	if text[got[0].Start:got[0].End] != "123-45-6789" {
		t.Errorf("wrong range: %q", text[got[0].Start:got[0].End])
	}
	// The SSN range must not also surface as a phone number.
	if len(find(spans, CategoryPhone)) != 0 {
		t.Error("SSN should claim the range before the phone pattern")
	}
}

func TestRecognizePhoneAndDate(t *testing.T) {
	r := NewPatternRecognizer()
	text := "Reached at (555) 867-5309 on 12/03/2024."
	spans, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if len(find(spans, CategoryPhone)) != 1 {
		t.Errorf("expected one phone span: %+v", spans)
	}
	if len(find(spans, CategoryDate)) != 1 {
		t.Errorf("expected one date span: %+v", spans)
	}
}

func TestRecognizeAddressAndPerson(t *testing.T) {
	r := NewPatternRecognizer()
	text := "Dr. Alice Carter lives at 42 Wallaby Lane since last year."
	spans, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if len(find(spans, CategoryAddress)) != 1 {
		t.Errorf("expected one address span: %+v", spans)
	}
	if len(find(spans, CategoryPerson)) == 0 {
		t.Errorf("expected a person span: %+v", spans)
	}
}

func TestRecognizeOrderedByStart(t *testing.T) {
	r := NewPatternRecognizer()
	text := "SSN 123-45-6789, call 555-123-4567, seen 2024-01-15."
	spans, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].Start {
			t.Errorf("spans out of order at %d: %+v", i, spans)
		}
	}
}

func TestRecognizeOffsetsValid(t *testing.T) {
	r := NewPatternRecognizer()
	text := strings.Repeat("Mrs. Betty Nolan, 1 Elm St, 555-222-3333. ", 3)
	spans, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) == 0 {
		t.Fatal("expected spans")
	}
	for _, s := range spans {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			t.Errorf("invalid span offsets: %+v", s)
		}
	}
}

func TestRecognizeCancelledContext(t *testing.T) {
	r := NewPatternRecognizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Recognize(ctx, "text"); err == nil {
		t.Error("expected context error")
	}
}
