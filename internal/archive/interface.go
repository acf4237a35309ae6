package archive

import (
	"context"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
)

// Store persists analysis records and the folders that group them.
type Store interface {
	Save(ctx context.Context, title string, result models.AnalysisResult, mimeType, folderID string) (models.ArchiveRecord, error)
	Get(ctx context.Context, id string) (models.ArchiveRecord, error)
	List(ctx context.Context) ([]models.ArchiveRecord, error)
	ListInFolder(ctx context.Context, folderID string) ([]models.ArchiveRecord, error)
	Search(ctx context.Context, query string) ([]models.ArchiveRecord, error)
	UpdateResult(ctx context.Context, id string, result models.AnalysisResult) (models.ArchiveRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	MoveRecord(ctx context.Context, id, folderID string) error

	ListFolders(ctx context.Context) ([]models.Folder, error)
	CreateFolder(ctx context.Context, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}
