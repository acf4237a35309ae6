package archive

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// Save stores a new record at the front of the list. An empty folderID means
// the default folder.
func (s *implStore) Save(ctx context.Context, title string, result models.AnalysisResult, mimeType, folderID string) (models.ArchiveRecord, error) {
	if folderID == "" {
		folderID = models.DefaultFolderID
	}
	rec := models.ArchiveRecord{
		ID:       s.newID(),
		Title:    title,
		Date:     s.now(),
		FolderID: folderID,
		Result:   result.Clone(),
		MIMEType: mimeType,
	}

	err := s.mutate(ctx, func(doc *document) (bool, error) {
		doc.Records = append([]models.ArchiveRecord{rec}, doc.Records...)
		return true, nil
	})
	if err != nil {
		return models.ArchiveRecord{}, err
	}
	s.logger.Info(ctx, "Archived %q as %s in folder %s", title, rec.ID, folderID)
	return rec, nil
}

func (s *implStore) Get(ctx context.Context, id string) (models.ArchiveRecord, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return models.ArchiveRecord{}, err
	}
	i := doc.recordIndex(id)
	if i < 0 {
		return models.ArchiveRecord{}, ErrRecordNotFound
	}
	return doc.Records[i], nil
}

// List returns every record, newest first.
func (s *implStore) List(ctx context.Context) ([]models.ArchiveRecord, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}

func (s *implStore) ListInFolder(ctx context.Context, folderID string) ([]models.ArchiveRecord, error) {
	return s.filter(ctx, func(r models.ArchiveRecord) bool { return r.FolderID == folderID })
}

// Search matches query case-insensitively as a substring of the title,
// summary, transcription or any key point. An empty query matches all.
func (s *implStore) Search(ctx context.Context, query string) ([]models.ArchiveRecord, error) {
	q := strings.ToLower(query)
	return s.filter(ctx, func(r models.ArchiveRecord) bool { return matches(r, q) })
}

func matches(r models.ArchiveRecord, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(r.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Result.Summary), lowerQuery) ||
		strings.Contains(strings.ToLower(r.Result.Transcription), lowerQuery) {
		return true
	}
	for _, p := range r.Result.KeyPoints {
		if strings.Contains(strings.ToLower(p), lowerQuery) {
			return true
		}
	}
	return false
}

func (s *implStore) filter(ctx context.Context, keep func(models.ArchiveRecord) bool) ([]models.ArchiveRecord, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.ArchiveRecord{}
	for _, r := range doc.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateResult replaces a record's result, typically after segment edits.
func (s *implStore) UpdateResult(ctx context.Context, id string, result models.AnalysisResult) (models.ArchiveRecord, error) {
	var updated models.ArchiveRecord
	err := s.mutate(ctx, func(doc *document) (bool, error) {
		i := doc.recordIndex(id)
		if i < 0 {
			return false, ErrRecordNotFound
		}
		doc.Records[i].Result = result.Clone()
		updated = doc.Records[i]
		return true, nil
	})
	return updated, err
}

// DeleteRecord removes the record with id. Unknown ids are a no-op.
func (s *implStore) DeleteRecord(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *document) (bool, error) {
		i := doc.recordIndex(id)
		if i < 0 {
			return false, nil
		}
		doc.Records = append(doc.Records[:i], doc.Records[i+1:]...)
		return true, nil
	})
}

// MoveRecord reassigns a record's folder. Unknown record ids are a no-op and
// folderID is not checked against existing folders.
func (s *implStore) MoveRecord(ctx context.Context, id, folderID string) error {
	return s.mutate(ctx, func(doc *document) (bool, error) {
		i := doc.recordIndex(id)
		if i < 0 {
			return false, nil
		}
		doc.Records[i].FolderID = folderID
		return true, nil
	})
}
