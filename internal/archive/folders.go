package archive

import (
	"context"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// ListFolders returns folders in creation order, defaults first.
func (s *implStore) ListFolders(ctx context.Context) ([]models.Folder, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Folders, nil
}

// CreateFolder appends a folder. Names are not required to be unique.
func (s *implStore) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	f := models.Folder{ID: s.newID(), Name: name}
	err := s.mutate(ctx, func(doc *document) (bool, error) {
		doc.Folders = append(doc.Folders, f)
		return true, nil
	})
	if err != nil {
		return models.Folder{}, err
	}
	return f, nil
}

// DeleteFolder removes an empty, non-default folder.
func (s *implStore) DeleteFolder(ctx context.Context, id string) error {
	if id == models.DefaultFolderID {
		return ErrDefaultFolder
	}
	return s.mutate(ctx, func(doc *document) (bool, error) {
		i := doc.folderIndex(id)
		if i < 0 {
			return false, ErrFolderNotFound
		}
		for _, r := range doc.Records {
			if r.FolderID == id {
				return false, ErrFolderNotEmpty
			}
		}
		doc.Folders = append(doc.Folders[:i], doc.Folders[i+1:]...)
		return true, nil
	})
}
