package analyzer

import (
	"context"

	"github.com/nguyentantai21042004/mediascribe/internal/normalizer"
)

// Analyzer sends one media source to the model and normalizes the reply.
type Analyzer interface {
	Analyze(ctx context.Context, ref MediaRef, mimeType, language string) (normalizer.Outcome, error)
}

// MediaRef carries the media either as bytes or as a URI the model can read.
// Which field is used depends on the configured Encoding.
type MediaRef struct {
	Data []byte
	URI  string
}
