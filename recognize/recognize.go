// Package recognize detects entity and PII spans in plain text.
//
// The built-in PatternRecognizer covers common PII shapes (person names with
// honorifics, dates, phone numbers, SSNs, street addresses) with regular
// expressions. It trades recall for zero external dependencies; a remote
// language-analysis service can be substituted behind the same interface.
package recognize

import (
	"context"
	"regexp"
	"sort"

	"github.com/nevindra/shard"
)

// Span categories produced by the built-in recognizer.
const (
	CategoryPerson  = "person"
	CategoryDate    = "date"
	CategoryPhone   = "phone"
	CategorySSN     = "ssn"
	CategoryAddress = "address"
)

// Recognizer produces annotation spans over original-document text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]shard.Span, error)
}

type pattern struct {
	category   string
	confidence float64
	re         *regexp.Regexp
}

// PatternRecognizer is a pure-regex Recognizer. Safe for concurrent use.
type PatternRecognizer struct {
	patterns []pattern
}

var _ Recognizer = (*PatternRecognizer)(nil)

// NewPatternRecognizer builds a recognizer with the default PII patterns.
func NewPatternRecognizer() *PatternRecognizer {
	return &PatternRecognizer{patterns: []pattern{
		// SSN before phone: both match digit triplets, SSN is more specific.
		{CategorySSN, 0.95, regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)},
		{CategoryPhone, 0.80, regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)},
		{CategoryDate, 0.85, regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s\d{1,2},\s\d{4}\b|\b\d{4}-\d{2}-\d{2}\b`)},
		{CategoryAddress, 0.70, regexp.MustCompile(`\b\d+\s[A-Za-z]+\s(?:Street|St|Road|Rd|Avenue|Ave|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b`)},
		{CategoryPerson, 0.60, regexp.MustCompile(`\b(?:Mr\.|Mrs\.|Ms\.|Dr\.)?\s?[A-Z][a-z]+\s[A-Z][a-z]+\b`)},
	}}
}

// Recognize scans text with every pattern and returns the matched spans in
// original-text byte coordinates, ordered by start offset. Ranges already
// claimed by an earlier (more specific) pattern are not matched again.
func (r *PatternRecognizer) Recognize(ctx context.Context, text string) ([]shard.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spans []shard.Span
	claimed := make([][2]int, 0, 8)

	for _, p := range r.patterns {
		for _, m := range p.re.FindAllStringIndex(text, -1) {
			if overlapsAny(claimed, m[0], m[1]) {
				continue
			}
			claimed = append(claimed, [2]int{m[0], m[1]})
			spans = append(spans, shard.Span{
				Category:   p.category,
				Start:      m[0],
				End:        m[1],
				Confidence: p.confidence,
			})
		}
	}

	sort.Slice(spans, func(a, b int) bool {
		if spans[a].Start != spans[b].Start {
			return spans[a].Start < spans[b].Start
		}
		return spans[a].End < spans[b].End
	})
	return spans, nil
}

func overlapsAny(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}
