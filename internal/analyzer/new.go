package analyzer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

// generator is the slice of *genai.Models the analyzer needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type implAnalyzer struct {
	gen      generator
	model    string
	encoding Encoding
	language string
	logger   logger.Logger
}

// New creates a Gemini-backed Analyzer. A missing API key is not an error
// here: the analyzer is still returned and every Analyze call fails fast
// with ErrMissingCredentials, so the rest of the service stays usable.
func New(ctx context.Context, cfg config.GeminiConfig, log logger.Logger) (Analyzer, error) {
	a := &implAnalyzer{
		model:    cfg.Model,
		encoding: ParseEncoding(cfg.Encoding),
		language: cfg.Language,
		logger:   log,
	}
	if cfg.APIKey == "" {
		log.Warn(ctx, "Gemini API key not set; analysis requests will be rejected")
		return a, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	a.gen = client.Models
	return a, nil
}
