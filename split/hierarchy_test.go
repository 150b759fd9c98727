package split

import (
	"errors"
	"testing"

	"github.com/nevindra/shard"
)

func TestNewHierarchy(t *testing.T) {
	h, err := New("\n\n", "\n", "")
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 3 {
		t.Errorf("expected 3 separators, got %d", h.Len())
	}
	if h.At(0) != "\n\n" {
		t.Errorf("coarsest separator wrong: %q", h.At(0))
	}
}

func TestNewHierarchyRejectsInvalid(t *testing.T) {
	cases := [][]string{
		{},               // empty
		{"\n\n", "\n"},   // missing terminator
		{"\n", "\n", ""}, // duplicate
		{"", "\n", ""},   // duplicate terminator
	}
	for _, seps := range cases {
		_, err := New(seps...)
		var cfgErr *shard.ErrConfig
		if !errors.As(err, &cfgErr) {
			t.Errorf("separators %q: expected ErrConfig, got %v", seps, err)
		}
	}
}

func TestHierarchyNext(t *testing.T) {
	h := Default()
	sep, ok := h.Next(0)
	if !ok || sep != "\n\n" {
		t.Errorf("Next(0) = %q, %v", sep, ok)
	}
	if _, ok := h.Next(h.Len() - 1); ok {
		t.Error("Next at the terminator should signal exhaustion")
	}
}

func TestHierarchyImmutable(t *testing.T) {
	seps := []string{"\n\n", "\n", ""}
	h, err := New(seps...)
	if err != nil {
		t.Fatal(err)
	}
	seps[0] = "mutated"
	if h.At(0) != "\n\n" {
		t.Error("hierarchy shares memory with caller slice")
	}
	got := h.Separators()
	got[1] = "mutated"
	if h.At(1) != "\n" {
		t.Error("Separators should return a copy")
	}
}
