package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/mediascribe/internal/normalizer"
)

// Analyze makes a single best-effort model call. Malformed replies are not
// errors; they come back as a degraded Outcome.
func (a *implAnalyzer) Analyze(ctx context.Context, ref MediaRef, mimeType, language string) (normalizer.Outcome, error) {
	if a.gen == nil {
		return normalizer.Outcome{}, ErrMissingCredentials
	}
	if mimeType == "" {
		return normalizer.Outcome{}, ErrNoMIMEType
	}
	if language == "" {
		language = a.language
	}
	if language == "" {
		language = "English"
	}

	part, err := a.encoding.mediaPart(ref, mimeType)
	if err != nil {
		return normalizer.Outcome{}, err
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{part, {Text: buildPrompt(language)}},
	}}

	a.logger.Info(ctx, "Requesting %s analysis from %s (%s, %s encoding)", language, a.model, mimeType, a.encoding)
	start := time.Now()

	resp, err := a.gen.GenerateContent(ctx, a.model, contents, generateConfig())
	if err != nil {
		return normalizer.Outcome{}, classify(err)
	}

	text := responseText(resp)
	if text == "" {
		return normalizer.Outcome{}, ErrEmptyResponse
	}

	out := normalizer.Decode(text)
	if out.Degraded() {
		a.logger.Warn(ctx, "Model reply could not be parsed (%s): %v", out.Kind, out.Err)
	}
	a.logger.Info(ctx, "Analysis finished in %s (%s)", time.Since(start).Round(time.Millisecond), out.Kind)
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text += part.Text
		}
	}
	return text
}

// classify maps SDK errors onto the package's error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}

	return fmt.Errorf("%w: %w", ErrTransport, err)
}
