package archive

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/mediascribe/internal/kv"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
)

type implStore struct {
	blob   kv.Blob
	key    string
	logger logger.Logger

	// mu serializes read-modify-write cycles made through this Store. Writers
	// in other processes are not coordinated; the last write wins.
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Open loads the archive document stored under key, seeding it with the
// default folders on first use.
func Open(ctx context.Context, blob kv.Blob, key string, log logger.Logger) (Store, error) {
	s := &implStore{
		blob:   blob,
		key:    key,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, seeded, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if seeded {
		if err := s.flush(ctx, doc); err != nil {
			return nil, err
		}
		log.Info(ctx, "Initialized archive %q with %d default folders", key, len(doc.Folders))
	} else {
		log.Info(ctx, "Opened archive %q: %d records, %d folders", key, len(doc.Records), len(doc.Folders))
	}
	return s, nil
}
