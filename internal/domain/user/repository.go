package user

import (
	"context"
)

type Repository interface {
	FetchByID(ctx context.Context, id ID) (*User, error)
	FetchByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, req User) (*User, error)
	Count(ctx context.Context) (int64, error)
}
