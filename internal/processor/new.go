package processor

import (
	"context"
	"io"
	"time"

	"github.com/nguyentantai21042004/mediascribe/internal/analyzer"
	"github.com/nguyentantai21042004/mediascribe/internal/archive"
	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/metrics"
	"github.com/nguyentantai21042004/mediascribe/pkg/executor"
)

// MediaStore is the subset of *storage.S3 used to hand media to the model
// by URL.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// Deps are the collaborators a Processor drives. Store may be nil when
// reference encoding is not used.
type Deps struct {
	Intake   media.Intake
	Analyzer analyzer.Analyzer
	Archive  archive.Store
	Exporter export.Exporter
	Store    MediaStore
	Executor executor.Executor
	Metrics  *metrics.Metrics
	Logger   logger.Logger
}

type implProcessor struct {
	cfg      *config.Config
	encoding analyzer.Encoding
	intake   media.Intake
	analyzer analyzer.Analyzer
	archive  archive.Store
	exporter export.Exporter
	store    MediaStore
	executor executor.Executor
	metrics  *metrics.Metrics
	logger   logger.Logger
	sem      *semaphore
	now      func() time.Time
}

// New creates a Processor admitting at most cfg.Performance.MaxConcurrent
// analyses at once.
func New(cfg *config.Config, deps Deps) Processor {
	return &implProcessor{
		cfg:      cfg,
		encoding: analyzer.ParseEncoding(cfg.Gemini.Encoding),
		intake:   deps.Intake,
		analyzer: deps.Analyzer,
		archive:  deps.Archive,
		exporter: deps.Exporter,
		store:    deps.Store,
		executor: deps.Executor,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		sem:      newSemaphore(cfg.Performance.MaxConcurrent),
		now:      time.Now,
	}
}
