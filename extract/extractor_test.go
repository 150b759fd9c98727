package extract

import (
	"strings"
	"testing"
)

func TestContentTypeFromExtension(t *testing.T) {
	cases := []struct {
		ext string
		ct  ContentType
		ok  bool
	}{
		{"txt", TypePlainText, true},
		{".md", TypeMarkdown, true},
		{"HTML", TypeHTML, true},
		{"pdf", TypePDF, true},
		{"exe", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		ct, ok := ContentTypeFromExtension(c.ext)
		if ct != c.ct || ok != c.ok {
			t.Errorf("%q: got (%q, %v), want (%q, %v)", c.ext, ct, ok, c.ct, c.ok)
		}
	}
}

func TestPlainTextNormalizesLineEndings(t *testing.T) {
	got, err := PlainTextExtractor{}.Extract([]byte("a\r\nb\rc\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\nb\nc\n" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeNFC(t *testing.T) {
	// e + combining acute accent should normalize to the precomposed form.
	decomposed := "é"
	got := Normalize(decomposed)
	if got != "é" {
		t.Errorf("got %q, want %q", got, "é")
	}
}

func TestDefaultExtractorsCoverAllTypes(t *testing.T) {
	reg := DefaultExtractors()
	for _, ct := range []ContentType{TypePlainText, TypeHTML, TypeMarkdown, TypePDF} {
		if _, ok := reg[ct]; !ok {
			t.Errorf("no extractor registered for %s", ct)
		}
	}
}

func TestPDFExtractorRejectsEmpty(t *testing.T) {
	if _, err := NewPDFExtractor().Extract(nil); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	if _, err := NewPDFExtractor().Extract([]byte("not a pdf")); err == nil {
		t.Error("expected error for non-PDF content")
	}
}

func TestHTMLExtractorStripsMarkup(t *testing.T) {
	html := `<html><head><title>t</title></head><body>
		<article><p>First paragraph of the piece.</p>
		<p>Second paragraph with <b>bold</b> words.</p></article>
	</body></html>`
	got, err := NewHTMLExtractor().Extract([]byte(html))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<") {
		t.Errorf("markup left in output: %q", got)
	}
	if !strings.Contains(got, "First paragraph") || !strings.Contains(got, "bold") {
		t.Errorf("content lost: %q", got)
	}
}
