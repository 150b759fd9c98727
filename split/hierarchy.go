package split

import (
	"strconv"

	"github.com/nevindra/shard"
)

// Hierarchy is an ordered list of separator strings, coarsest first, ending
// in the empty string. The empty-string terminator stands for hard
// character-boundary slicing and guarantees that splitting always terminates.
// A Hierarchy is immutable after construction.
type Hierarchy struct {
	seps []string
}

// New validates and builds a Hierarchy. The sequence must be non-empty,
// duplicate-free, and its last element must be "".
func New(seps ...string) (Hierarchy, error) {
	if len(seps) == 0 {
		return Hierarchy{}, &shard.ErrConfig{Field: "separators", Reason: "must not be empty"}
	}
	if seps[len(seps)-1] != "" {
		return Hierarchy{}, &shard.ErrConfig{Field: "separators", Reason: `must end with the "" terminator`}
	}
	seen := make(map[string]bool, len(seps))
	for _, s := range seps {
		if seen[s] {
			return Hierarchy{}, &shard.ErrConfig{Field: "separators", Reason: "duplicate separator " + strconv.Quote(s)}
		}
		seen[s] = true
	}
	h := Hierarchy{seps: make([]string, len(seps))}
	copy(h.seps, seps)
	return h, nil
}

// Default returns the standard ladder: triple newline, paragraph, line,
// word, then hard character fallback.
func Default() Hierarchy {
	h, err := New("\n\n\n", "\n\n", "\n", " ", "")
	if err != nil {
		panic(err)
	}
	return h
}

// Len returns the number of separators including the terminator.
func (h Hierarchy) Len() int { return len(h.seps) }

// At returns the separator at index i.
func (h Hierarchy) At(i int) string { return h.seps[i] }

// Next returns the separator at the next, finer index, or ok=false when i is
// already the last (the terminator).
func (h Hierarchy) Next(i int) (sep string, ok bool) {
	if i+1 >= len(h.seps) {
		return "", false
	}
	return h.seps[i+1], true
}

// Separators returns a copy of the separator sequence.
func (h Hierarchy) Separators() []string {
	out := make([]string, len(h.seps))
	copy(out, h.seps)
	return out
}
