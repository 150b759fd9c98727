package extract

import (
	"strings"
	"testing"
)

func TestMarkdownStripsFormatting(t *testing.T) {
	md := "# Heading\n\nSome **bold** and *italic* text with a [link](https://example.com).\n"
	got, err := NewMarkdownExtractor().Extract([]byte(md))
	if err != nil {
		t.Fatal(err)
	}
	for _, marker := range []string{"#", "**", "](", "https://example.com"} {
		if strings.Contains(got, marker) {
			t.Errorf("marker %q left in output: %q", marker, got)
		}
	}
	if !strings.Contains(got, "Heading") || !strings.Contains(got, "bold") || !strings.Contains(got, "link") {
		t.Errorf("content lost: %q", got)
	}
}

func TestMarkdownKeepsParagraphBreaks(t *testing.T) {
	md := "Para one.\n\nPara two.\n\nPara three."
	got, err := NewMarkdownExtractor().Extract([]byte(md))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "\n\n") != 2 {
		t.Errorf("expected two paragraph breaks: %q", got)
	}
}

func TestMarkdownCodeBlockContentKept(t *testing.T) {
	md := "Before.\n\n```\ncode line\n```\n\nAfter."
	got, err := NewMarkdownExtractor().Extract([]byte(md))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "code line") {
		t.Errorf("code content lost: %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("fence left in output: %q", got)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	got, err := NewMarkdownExtractor().Extract(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
