package archive

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nguyentantai21042004/mediascribe/internal/kv"
	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// document is the whole persisted archive. Records are kept newest first.
type document struct {
	Records []models.ArchiveRecord `json:"records"`
	Folders []models.Folder        `json:"folders"`
}

func newDocument() document {
	return document{
		Records: []models.ArchiveRecord{},
		Folders: models.DefaultFolders(),
	}
}

// load reads the document; seeded is true when the key did not exist yet.
func (s *implStore) load(ctx context.Context) (doc document, seeded bool, err error) {
	data, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return newDocument(), true, nil
	}
	if err != nil {
		return document{}, false, &StorageError{Op: "read", Err: err}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, false, &StorageError{Op: "decode", Err: err}
	}
	if doc.Records == nil {
		doc.Records = []models.ArchiveRecord{}
	}
	if doc.Folders == nil {
		doc.Folders = models.DefaultFolders()
	}
	return doc, false, nil
}

func (s *implStore) flush(ctx context.Context, doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.blob.Put(ctx, s.key, data); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// mutate runs fn on a freshly loaded document and flushes it when fn
// reports a change.
func (s *implStore) mutate(ctx context.Context, fn func(doc *document) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(&doc)
	if err != nil || !changed {
		return err
	}
	return s.flush(ctx, doc)
}

func (s *implStore) read(ctx context.Context) (document, error) {
	doc, _, err := s.load(ctx)
	return doc, err
}

func (d *document) recordIndex(id string) int {
	for i := range d.Records {
		if d.Records[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *document) folderIndex(id string) int {
	for i := range d.Folders {
		if d.Folders[i].ID == id {
			return i
		}
	}
	return -1
}
