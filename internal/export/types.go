// Package export renders a document as a downloadable PDF via
// headless Chrome.
package export

import (
	"errors"
	"time"
)

// Request contains parameters for an export operation.
type Request struct {
	DocumentID string
}

// DocumentInfo holds the document fields rendered into the export.
type DocumentInfo struct {
	ID           string
	Title        string
	Subtitle     string
	Slug         string
	Content      string
	AuthorName   string
	CategoryName string // empty means uncategorized
	UpdatedAt    time.Time
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrNotFound indicates the document does not exist.
	ErrNotFound = errors.New("export document not found")
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)
