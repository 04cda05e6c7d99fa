package ports

import (
	"context"

	"file-manager-api/internal/domain/user"
)

type UserService interface {
	Create(ctx context.Context, email, password string) (*user.User, error)
	FindByID(ctx context.Context, id user.ID) (*user.User, error)
	Count(ctx context.Context) (int64, error)
}
