package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls searchable plain text out of an attached file.
type TextExtractor interface {
	// ExtractText returns the text content of data. Unsupported mime types
	// return ("", nil); extraction enriches search but is never required.
	ExtractText(ctx context.Context, mimeType string, data []byte) (string, error)
}

// DefaultExtractor handles PDF and plain-text attachments.
type DefaultExtractor struct{}

var _ TextExtractor = (*DefaultExtractor)(nil)

// NewDefaultExtractor creates the standard extractor.
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// ExtractText dispatches on mime type. PDFs are parsed page by page;
// text/* payloads are returned as-is; anything else yields no text.
func (e *DefaultExtractor) ExtractText(ctx context.Context, mimeType string, data []byte) (string, error) {
	switch {
	case mimeType == "application/pdf":
		return extractPDFText(data)
	case strings.HasPrefix(mimeType, "text/"):
		return string(data), nil
	default:
		return "", nil
	}
}

// extractPDFText concatenates the plain text of every page. Pages that fail
// to render are skipped so one bad page doesn't discard the rest.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var pages []string
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n"), nil
}
