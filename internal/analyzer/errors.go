package analyzer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("gemini API key is not configured")
	ErrEmptyResponse      = errors.New("no response generated")
	ErrTransport          = errors.New("gemini request failed")
	ErrAPI                = errors.New("gemini API error")
	ErrNoMedia            = errors.New("media reference is empty")
	ErrNoMIMEType         = errors.New("media MIME type is required")
)

// UpstreamError is a non-success response from the model API.
type UpstreamError struct {
	Code    int
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini API error %d (%s): %s", e.Code, e.Status, e.Message)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrAPI }
