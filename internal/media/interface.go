package media

import (
	"context"
	"io"
)

// Intake turns user-supplied sources into validated Descriptors.
type Intake interface {
	FromFile(ctx context.Context, path string) (Descriptor, error)
	FromUpload(name, mimeType string, r io.Reader) (Descriptor, error)
	FromURL(ctx context.Context, rawURL string) (Descriptor, error)
}
