// Package split implements recursive separator-hierarchy text splitting with
// byte-offset provenance.
//
// The splitter walks a Hierarchy from coarsest to finest separator: text is
// split on the current separator, fragments that still exceed the size limit
// descend to the next finer separator, and the empty-string terminator slices
// at hard character boundaries, so splitting always terminates. Fragments are
// then greedily packed into chunks of at most maxSize bytes, each new chunk
// seeded with the trailing overlap bytes of its predecessor.
//
// Separator retention policy: a separator's bytes stay attached as a suffix
// of the preceding fragment (strings.SplitAfter). Nothing is trimmed, so
// every piece is a contiguous slice of the input and concatenating the
// non-overlapping portions of consecutive pieces reproduces the input
// byte-for-byte.
package split

import (
	"strings"
	"unicode/utf8"

	"github.com/nevindra/shard"
)

// Piece is one chunk of text with its byte range in the source coordinate
// space: text[Start:End] == Text for the input it was produced from.
type Piece struct {
	Start int
	End   int
	Text  string
}

// Split splits text into ordered pieces of at most maxSize bytes, with
// consecutive pieces sharing up to overlap bytes. It is a pure function of
// its inputs: identical inputs always yield the identical piece sequence.
//
// Empty text yields zero pieces. Text no longer than maxSize yields exactly
// one piece spanning the whole text. The size bound has a single exception:
// one atomic unit (a rune wider than maxSize bytes) is kept whole rather
// than broken mid-encoding.
func Split(text string, h Hierarchy, maxSize, overlap int) ([]Piece, error) {
	if maxSize <= 0 {
		return nil, &shard.ErrConfig{Field: "max_size", Reason: "must be positive"}
	}
	if overlap < 0 || overlap >= maxSize {
		return nil, &shard.ErrConfig{Field: "overlap", Reason: "must be non-negative and less than max_size"}
	}
	if h.Len() == 0 {
		return nil, &shard.ErrConfig{Field: "separators", Reason: "hierarchy must be built with split.New"}
	}
	if text == "" {
		return nil, nil
	}

	frags := fragment(text, 0, h, 0, maxSize, nil)
	return pack(text, frags, maxSize, overlap), nil
}

// frag is a contiguous byte range over the source text. The fragment pass
// produces an ordered, gap-free cover of the whole input.
type frag struct {
	start, end int
}

// fragment appends the fragment ranges covering seg (whose first byte sits at
// absolute offset lo) to out. Every produced fragment is at most maxSize
// bytes, except a single rune wider than maxSize. Recursion depth is bounded
// by the hierarchy length: each level moves to a strictly finer separator and
// the terminator level never recurses.
func fragment(seg string, lo int, h Hierarchy, level, maxSize int, out []frag) []frag {
	sep := h.At(level)
	if sep == "" {
		return hardSlice(seg, lo, maxSize, out)
	}

	off := lo
	for _, p := range strings.SplitAfter(seg, sep) {
		if p == "" {
			continue
		}
		if len(p) <= maxSize {
			out = append(out, frag{off, off + len(p)})
		} else if _, ok := h.Next(level); ok {
			out = fragment(p, off, h, level+1, maxSize, out)
		} else {
			// Unreachable with a valid hierarchy ("" is last), kept as the
			// exhaustion contract: finer separators run out, slice hard.
			out = hardSlice(p, off, maxSize, out)
		}
		off += len(p)
	}
	return out
}

// hardSlice cuts seg into ranges of at most maxSize bytes at rune boundaries.
// A single rune wider than maxSize is emitted whole.
func hardSlice(seg string, lo, maxSize int, out []frag) []frag {
	start, cur := 0, 0
	for cur < len(seg) {
		_, size := utf8.DecodeRuneInString(seg[cur:])
		if cur > start && cur-start+size > maxSize {
			out = append(out, frag{lo + start, lo + cur})
			start = cur
		}
		cur += size
	}
	if cur > start {
		out = append(out, frag{lo + start, lo + cur})
	}
	return out
}

// pack greedily merges consecutive fragments into pieces of at most maxSize
// bytes. When a piece is flushed, the next buffer is seeded with the trailing
// overlap bytes of the flushed piece, shrunk so the incoming fragment still
// fits and aligned forward to a rune boundary.
func pack(text string, frags []frag, maxSize, overlap int) []Piece {
	var pieces []Piece
	bufStart, bufEnd := -1, -1

	for _, f := range frags {
		flen := f.end - f.start
		if bufStart < 0 {
			bufStart, bufEnd = f.start, f.end
			continue
		}
		if bufEnd-bufStart+flen <= maxSize {
			bufEnd = f.end
			continue
		}

		pieces = append(pieces, Piece{bufStart, bufEnd, text[bufStart:bufEnd]})

		seed := overlap
		if rem := maxSize - flen; seed > rem {
			seed = rem
		}
		if prev := bufEnd - bufStart; seed > prev {
			seed = prev
		}
		if seed < 0 {
			seed = 0
		}
		s := bufEnd - seed
		for s < bufEnd && !utf8.RuneStart(text[s]) {
			s++
		}
		bufStart, bufEnd = s, f.end
	}

	if bufStart >= 0 {
		pieces = append(pieces, Piece{bufStart, bufEnd, text[bufStart:bufEnd]})
	}
	return pieces
}
