package extract

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Compile-time interface check.
var _ Extractor = (*MarkdownExtractor)(nil)

// MarkdownExtractor implements Extractor for Markdown documents. It parses
// the source and walks the AST, so formatting markers, link targets, and
// heading syntax never leak into the extracted text.
type MarkdownExtractor struct {
	md goldmark.Markdown
}

// NewMarkdownExtractor creates a Markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{md: goldmark.New()}
}

// Extract renders Markdown content to plain text with paragraph breaks
// preserved as blank lines.
func (e *MarkdownExtractor) Extract(content []byte) (string, error) {
	doc := e.md.Parser().Parse(text.NewReader(content))

	var b strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.Kind() {
			case ast.KindParagraph, ast.KindHeading, ast.KindListItem,
				ast.KindBlockquote, ast.KindCodeBlock, ast.KindFencedCodeBlock:
				b.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.AutoLink:
			b.Write(v.URL(content))
		case *ast.CodeBlock:
			writeLines(&b, n, content)
		case *ast.FencedCodeBlock:
			writeLines(&b, n, content)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walk markdown: %w", err)
	}
	return Normalize(collapseBlankLines(b.String())), nil
}

func writeLines(b *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(content))
	}
}

// collapseBlankLines reduces runs of three or more newlines to a paragraph
// break and trims the edges.
func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s)
}
