// Package media validates audio/video sources and exposes them as in-memory
// descriptors.
package media

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor is the in-memory handle to one media source.
type Descriptor struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
	// PreviewURL is set for sources that can be played back from their origin.
	PreviewURL string
	// SourceURL is the remote URL the bytes were fetched from, if any.
	SourceURL string
}

func (d Descriptor) IsAudio() bool { return strings.HasPrefix(d.MIMEType, "audio/") }

func (d Descriptor) IsVideo() bool { return strings.HasPrefix(d.MIMEType, "video/") }

var (
	ErrUnsupportedType   = errors.New("unsupported media type")
	ErrTooLarge          = errors.New("media file too large")
	ErrEmpty             = errors.New("media file is empty")
	ErrUnsupportedSource = errors.New("unsupported media source")
	ErrFetchFailed       = errors.New("could not fetch remote media")
)

// ValidationError is returned for sources rejected before any analysis.
type ValidationError struct {
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// Validate checks a MIME type and size against the intake rules.
func Validate(mimeType string, size, maxSize int64) error {
	if !strings.HasPrefix(mimeType, "audio/") && !strings.HasPrefix(mimeType, "video/") {
		return &ValidationError{Reason: ErrUnsupportedType, Detail: fmt.Sprintf("%q is not audio or video", mimeType)}
	}
	if size == 0 {
		return &ValidationError{Reason: ErrEmpty}
	}
	if maxSize > 0 && size > maxSize {
		return &ValidationError{
			Reason: ErrTooLarge,
			Detail: fmt.Sprintf("%.1fMB exceeds the %dMB limit", float64(size)/1024/1024, maxSize/1024/1024),
		}
	}
	return nil
}
