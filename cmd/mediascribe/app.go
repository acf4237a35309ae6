package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/mediascribe/internal/analyzer"
	"github.com/nguyentantai21042004/mediascribe/internal/archive"
	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/kv"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/metrics"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
	"github.com/nguyentantai21042004/mediascribe/pkg/executor"
	"github.com/nguyentantai21042004/mediascribe/pkg/storage"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	intake    media.Intake
	archive   archive.Store
	exporter  export.Exporter
	metrics   *metrics.Metrics
	processor processor.Processor
	blob      kv.Blob
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	var s3 *storage.S3
	if cfg.Storage.Bucket != "" {
		var err error
		s3, err = storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.Storage.Region,
			Bucket:               cfg.Storage.Bucket,
			AccessKeyID:          cfg.Storage.AccessKeyID,
			SecretAccessKey:      cfg.Storage.SecretAccessKey,
			PresignExpireMinutes: cfg.Storage.PresignExpireMinutes,
		})
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		log.Info(ctx, "Object storage: s3://%s (%s)", cfg.Storage.Bucket, cfg.Storage.Region)
	}

	blob, err := kv.Open(ctx, cfg.Archive, s3)
	if err != nil {
		return nil, fmt.Errorf("archive backend: %w", err)
	}
	store, err := archive.Open(ctx, blob, cfg.Archive.Key, log)
	if err != nil {
		blob.Close()
		return nil, fmt.Errorf("archive: %w", err)
	}

	an, err := analyzer.New(ctx, cfg.Gemini, log)
	if err != nil {
		blob.Close()
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		intake:   media.New(cfg.Intake, nil, log),
		archive:  store,
		exporter: export.New(log),
		metrics:  metrics.New(),
		blob:     blob,
	}
	deps := processor.Deps{
		Intake:   a.intake,
		Analyzer: an,
		Archive:  a.archive,
		Exporter: a.exporter,
		Executor: executor.New(),
		Metrics:  a.metrics,
		Logger:   log,
	}
	if s3 != nil {
		deps.Store = s3
	}
	a.processor = processor.New(cfg, deps)

	log.Info(ctx, "Archive driver: %s, model: %s, encoding: %s", cfg.Archive.Driver, cfg.Gemini.Model, cfg.Gemini.Encoding)
	return a, nil
}

func (a *app) Close() error {
	return a.blob.Close()
}

// ensureDirectories creates the inbox folders used by watch mode.
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
