package export

import (
	"context"
	"io"
)

// Exporter renders a Document in one of the supported formats.
type Exporter interface {
	// Render writes the document to w.
	Render(ctx context.Context, w io.Writer, format Format, doc Document) error
	// WriteFile renders into dir under Filename(doc.Title, format) and
	// returns the written path.
	WriteFile(ctx context.Context, dir string, format Format, doc Document) (string, error)
}
