package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

func (e *implExporter) Render(ctx context.Context, w io.Writer, format Format, doc Document) error {
	var err error
	switch format {
	case FormatText:
		err = writeText(w, doc, e.dateOf(doc))
	case FormatPDF:
		err = writePDF(w, doc, e.now())
	case FormatDoc:
		err = writeWordHTML(w, doc, e.dateOf(doc))
	case FormatDocx:
		err = writeDocx(w, doc, e.dateOf(doc))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

func (e *implExporter) WriteFile(ctx context.Context, dir string, format Format, doc Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, Filename(doc.Title, format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := e.Render(ctx, f, format, doc); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	e.logger.Info(ctx, "Exported %s: %s", format, path)
	return path, nil
}

func (e *implExporter) dateOf(doc Document) time.Time {
	if doc.Date.IsZero() {
		return e.now()
	}
	return doc.Date
}
