package kv

import (
	"context"
	"errors"
	"path"

	"github.com/nguyentantai21042004/mediascribe/pkg/storage"
)

const s3Prefix = "archive"

type s3Blob struct {
	store *storage.S3
}

// NewS3 stores each key as the object archive/<key>.json.
func NewS3(store *storage.S3) Blob {
	return &s3Blob{store: store}
}

func (b *s3Blob) objectKey(key string) string {
	return path.Join(s3Prefix, key+".json")
}

func (b *s3Blob) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.store.GetObject(ctx, b.objectKey(key))
	if errors.Is(err, storage.ErrNoSuchKey) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *s3Blob) Put(ctx context.Context, key string, data []byte) error {
	return b.store.PutObject(ctx, b.objectKey(key), "application/json", data)
}

func (b *s3Blob) Close() error { return nil }
