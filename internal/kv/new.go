package kv

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/pkg/storage"
)

// Open returns the Blob selected by cfg.Driver. store is only required for
// the s3 driver.
func Open(ctx context.Context, cfg config.ArchiveConfig, store *storage.S3) (Blob, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.DSN)
	case "sqlite":
		return NewSQLite(cfg.DSN)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN)
	case "redis":
		return NewRedis(ctx, cfg.DSN)
	case "mongo":
		return NewMongo(ctx, cfg.DSN, cfg.Database)
	case "s3":
		if store == nil {
			return nil, fmt.Errorf("s3 archive driver needs object storage")
		}
		return NewS3(store), nil
	default:
		return nil, fmt.Errorf("unsupported archive driver %q", cfg.Driver)
	}
}
