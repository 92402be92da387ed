package export

import (
	"context"
	"fmt"
)

// DataStore loads the document fields needed for rendering.
type DataStore interface {
	GetExportDocument(ctx context.Context, id string) (DocumentInfo, error)
}

// Archiver keeps a copy of each generated export, if configured.
type Archiver interface {
	ArchivePDF(slug string, data []byte)
}

// Service renders documents to PDF.
type Service struct {
	store   DataStore
	archive Archiver
}

// NewService creates an export service. archive may be nil.
func NewService(store DataStore, archive Archiver) *Service {
	return &Service{store: store, archive: archive}
}

// ExportPDF renders the document as an A4 PDF named {slug}.pdf and
// archives a copy when an archiver is configured.
func (s *Service) ExportPDF(ctx context.Context, req Request) (*Result, error) {
	info, err := s.store.GetExportDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	html, err := RenderDocumentHTML(TemplateData{
		Title:     info.Title,
		Subtitle:  info.Subtitle,
		Author:    info.AuthorName,
		Category:  info.CategoryName,
		UpdatedAt: info.UpdatedAt,
		Content:   info.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	result, err := exportPDF(html, info.Slug)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		s.archive.ArchivePDF(info.Slug, result.Data)
	}
	return result, nil
}
