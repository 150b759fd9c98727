package extract

import (
	"bytes"
	"fmt"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

// Compile-time interface check.
var _ Extractor = (*HTMLExtractor)(nil)

// HTMLExtractor implements Extractor for HTML documents using readability
// extraction, which drops boilerplate (navigation, scripts, chrome) and keeps
// the article body.
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTML extractor.
func NewHTMLExtractor() *HTMLExtractor { return &HTMLExtractor{} }

// Extract extracts readable plain text from HTML content.
func (e *HTMLExtractor) Extract(content []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(content), &url.URL{})
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return Normalize(article.TextContent), nil
}
