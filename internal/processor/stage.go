package processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nguyentantai21042004/mediascribe/internal/analyzer"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/pkg/storage"
)

// stage prepares the MediaRef for the configured encoding. Reference
// encoding reuses the source URL when the bytes are unchanged, otherwise it
// uploads to object storage and presigns a read URL.
func (p *implProcessor) stage(ctx context.Context, d media.Descriptor) (analyzer.MediaRef, error) {
	if p.encoding != analyzer.EncodingReference {
		return analyzer.MediaRef{Data: d.Data}, nil
	}
	if d.SourceURL != "" {
		return analyzer.MediaRef{URI: d.SourceURL}, nil
	}
	if p.store == nil {
		return analyzer.MediaRef{}, ErrNoStorage
	}

	key := storage.MediaKey(d.Name)
	if err := p.store.Upload(ctx, key, d.MIMEType, bytes.NewReader(d.Data)); err != nil {
		return analyzer.MediaRef{}, fmt.Errorf("upload media: %w", err)
	}
	url, err := p.store.PresignGet(ctx, key)
	if err != nil {
		return analyzer.MediaRef{}, fmt.Errorf("presign media: %w", err)
	}
	p.logger.Debug(ctx, "Staged %s as %s", d.Name, key)
	return analyzer.MediaRef{URI: url}, nil
}
