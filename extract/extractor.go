// Package extract converts raw document content to normalized plain text.
//
// Extraction is a collaborator of the chunking pipeline: it runs before a
// Document enters the pipeline, and a document whose extraction fails is
// never submitted at all. Extractors return text ready for splitting —
// Unicode-normalized, LF line endings, no binary layout artifacts.
package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extractor converts raw content to plain text.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// ContentType identifies the MIME type of content for extraction.
type ContentType string

const (
	TypePlainText ContentType = "text/plain"
	TypeHTML      ContentType = "text/html"
	TypeMarkdown  ContentType = "text/markdown"
	TypePDF       ContentType = "application/pdf"
)

// ContentTypeFromExtension maps file extensions to content types.
// Unknown extensions return ok=false and are skipped before pipeline entry.
func ContentTypeFromExtension(ext string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "txt", "text":
		return TypePlainText, true
	case "md", "markdown":
		return TypeMarkdown, true
	case "html", "htm":
		return TypeHTML, true
	case "pdf":
		return TypePDF, true
	default:
		return "", false
	}
}

// DefaultExtractors returns the extractor registry keyed by content type.
func DefaultExtractors() map[ContentType]Extractor {
	return map[ContentType]Extractor{
		TypePlainText: PlainTextExtractor{},
		TypeHTML:      NewHTMLExtractor(),
		TypeMarkdown:  NewMarkdownExtractor(),
		TypePDF:       NewPDFExtractor(),
	}
}

// Compile-time interface check.
var _ Extractor = PlainTextExtractor{}

// PlainTextExtractor returns content as-is, normalized.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(content []byte) (string, error) {
	return Normalize(string(content)), nil
}

// Normalize canonicalizes extracted text: NFC Unicode normalization and LF
// line endings. Splitting and span offsets are computed over this form, so
// every extractor must route its output through here.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}
