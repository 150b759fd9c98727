package annotate

import (
	"sort"
	"strings"

	"github.com/nevindra/shard"
)

// Redact replaces each span's range in chunk-local text with an upper-cased
// category placeholder, e.g. "[PHONE]". Overlapping spans are merged into the
// placeholder of the earliest-starting span. Spans must already be clipped to
// the text (as Annotate produces them).
func Redact(text string, spans []shard.Span) string {
	if len(spans) == 0 {
		return text
	}

	ordered := make([]shard.Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].Start < ordered[b].Start })

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, s := range ordered {
		if s.Start < pos {
			// Overlaps the previous redaction; extend the covered range.
			if s.End > pos {
				pos = s.End
			}
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString("[" + strings.ToUpper(s.Category) + "]")
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
