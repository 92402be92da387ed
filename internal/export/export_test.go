package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderDocumentHTML(t *testing.T) {
	html, err := RenderDocumentHTML(TemplateData{
		Title:     "Getting Started",
		Subtitle:  "First steps",
		Author:    "Ada Lovelace",
		Category:  "Guides",
		UpdatedAt: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		Content:   "<h2>Install</h2><p>Run the installer.</p>",
	})
	if err != nil {
		t.Fatalf("RenderDocumentHTML: %v", err)
	}

	for _, want := range []string{
		"<h1>Getting Started</h1>",
		`<div class="subtitle">First steps</div>`,
		"Author: Ada Lovelace",
		"Category: Guides",
		"Last Updated: 3/9/2024",
		"<h2>Install</h2><p>Run the installer.</p>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html missing %q", want)
		}
	}
}

func TestRenderDocumentHTMLDefaults(t *testing.T) {
	html, err := RenderDocumentHTML(TemplateData{
		Title:     "Orphan",
		UpdatedAt: time.Now(),
		Content:   "<p>body</p>",
	})
	if err != nil {
		t.Fatalf("RenderDocumentHTML: %v", err)
	}

	if !strings.Contains(html, "Category: Uncategorized") {
		t.Error("missing category should render as Uncategorized")
	}
	if strings.Contains(html, `class="subtitle"`) {
		t.Error("empty subtitle should not render a subtitle block")
	}
}

func TestRenderDocumentHTMLKeepsContentVerbatim(t *testing.T) {
	content := `<pre><code>curl -X POST &amp; echo</code></pre>`
	html, err := RenderDocumentHTML(TemplateData{Title: "t", UpdatedAt: time.Now(), Content: content})
	if err != nil {
		t.Fatalf("RenderDocumentHTML: %v", err)
	}
	if !strings.Contains(html, content) {
		t.Error("stored content should pass through without re-escaping")
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello world", "hello%20world"},
		{"a-b_c.d~e", "a-b_c.d~e"},
		{"<p>x</p>", "%3Cp%3Ex%3C%2Fp%3E"},
		{"100%", "100%25"},
	}
	for _, tt := range tests {
		if got := percentEncodeForDataURL(tt.input); got != tt.expected {
			t.Errorf("percentEncodeForDataURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

type stubStore struct {
	doc DocumentInfo
	err error
}

func (s stubStore) GetExportDocument(ctx context.Context, id string) (DocumentInfo, error) {
	return s.doc, s.err
}

func TestExportPDFPropagatesStoreError(t *testing.T) {
	svc := NewService(stubStore{err: ErrNotFound}, nil)
	_, err := svc.ExportPDF(context.Background(), Request{DocumentID: "doc_missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
