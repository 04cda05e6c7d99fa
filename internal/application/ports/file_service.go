package ports

import (
	"context"

	"file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, ownerID user.ID, in file.UploadInput) (*file.File, error)
	FindByID(ctx context.Context, ownerID user.ID, fileID file.ID) (*file.File, error)
	List(ctx context.Context, ownerID user.ID, parentID string, page int) (file.Files, error)
	SetVisibility(ctx context.Context, ownerID user.ID, fileID file.ID, isPublic bool) (*file.File, error)
	// Content returns the raw bytes and MIME type of a file or of one of
	// its thumbnail variants when size is "100", "250" or "500".
	// requestorID may be empty for anonymous access to public files.
	Content(ctx context.Context, fileID file.ID, requestorID string, size string) ([]byte, string, error)
	Count(ctx context.Context) (int64, error)
}
