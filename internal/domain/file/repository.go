package file

import (
	"context"

	"file-manager-api/internal/domain/user"
)

type Repository interface {
	FetchByID(ctx context.Context, id ID) (*File, error)
	FetchByIDAndOwner(ctx context.Context, id ID, ownerID user.ID) (*File, error)
	FetchByOwner(ctx context.Context, ownerID user.ID, parentID string, page int) (Files, error)
	Create(ctx context.Context, req File) (*File, error)
	SetVisibility(ctx context.Context, id ID, ownerID user.ID, isPublic bool) (*File, error)
	Count(ctx context.Context) (int64, error)
}
