package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/models"
	"github.com/nguyentantai21042004/mediascribe/internal/normalizer"
)

var (
	// ErrBusy is returned by TryAnalyze when every analysis slot is taken.
	ErrBusy        = errors.New("an analysis is already in progress")
	// ErrNoStorage means reference encoding needs an upload but no object
	// store is configured.
	ErrNoStorage   = errors.New("reference encoding requires object storage")
	// ErrNotArchived wraps an archive failure after a successful analysis;
	// the Response still carries the outcome.
	ErrNotArchived = errors.New("result was not archived")
)

// Processor runs media through analysis and, optionally, into the archive.
type Processor interface {
	// Analyze waits for a free slot.
	Analyze(ctx context.Context, req Request) (Response, error)
	// TryAnalyze fails with ErrBusy instead of waiting.
	TryAnalyze(ctx context.Context, req Request) (Response, error)
	// Process handles one file dropped into the inbox: analyze, archive,
	// export txt and docx, then move the source aside.
	Process(ctx context.Context, path string) error
}

type Request struct {
	Media    media.Descriptor
	Language string
	// Title defaults to the media name.
	Title    string
	FolderID string
	Save     bool
}

// Response always carries the outcome when the model answered. Record is
// nil unless the result was archived.
type Response struct {
	Outcome normalizer.Outcome
	Record  *models.ArchiveRecord
}
