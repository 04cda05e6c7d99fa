package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	domain "file-manager-api/internal/domain/user"
)

type fakeUserRepo struct {
	FetchByIDFunc    func(ctx context.Context, id domain.ID) (*domain.User, error)
	FetchByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc       func(ctx context.Context, req domain.User) (*domain.User, error)
	CountFunc        func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepo) FetchByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return f.FetchByIDFunc(ctx, id)
}
func (f *fakeUserRepo) FetchByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.FetchByEmailFunc(ctx, email)
}
func (f *fakeUserRepo) Create(ctx context.Context, req domain.User) (*domain.User, error) {
	return f.CreateFunc(ctx, req)
}
func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return f.CountFunc(ctx)
}

type fakeSessions struct {
	data map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[string]string)}
}

func (f *fakeSessions) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.data[token] = userID
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (string, error) {
	return f.data[token], nil
}

func (f *fakeSessions) Del(_ context.Context, token string) error {
	delete(f.data, token)
	return nil
}

func (f *fakeSessions) Ping(_ context.Context) error { return nil }

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func TestAuthService_Connect(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	owner := &domain.User{
		ID:           primitive.NewObjectID(),
		Email:        "a@b.com",
		PasswordHash: string(hash),
	}

	repo := &fakeUserRepo{
		FetchByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == owner.Email {
				return owner, nil
			}
			return nil, nil
		},
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "missing header", header: "", wantErr: ErrUnauthorized},
		{name: "wrong scheme", header: "Bearer abc", wantErr: ErrUnauthorized},
		{name: "not base64", header: "Basic %%%", wantErr: ErrUnauthorized},
		{name: "no colon", header: "Basic " + base64.StdEncoding.EncodeToString([]byte("nocolon")), wantErr: ErrUnauthorized},
		{name: "unknown user", header: basicHeader("x@y.com", "pw"), wantErr: ErrUnauthorized},
		{name: "wrong password", header: basicHeader("a@b.com", "nope"), wantErr: ErrUnauthorized},
		{name: "success", header: basicHeader("a@b.com", "pw")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sessions := newFakeSessions()
			as := NewAuthService(repo, sessions)

			token, err := as.Connect(ctx, tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Empty(t, sessions.data)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)
			assert.Equal(t, owner.ID.Hex(), sessions.data[token])
		})
	}
}

func TestAuthService_Connect_RepoError(t *testing.T) {
	repo := &fakeUserRepo{
		FetchByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}
	as := NewAuthService(repo, newFakeSessions())

	_, err := as.Connect(context.Background(), basicHeader("a@b.com", "pw"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	owner := &domain.User{ID: primitive.NewObjectID(), Email: "a@b.com", PasswordHash: string(hash)}

	repo := &fakeUserRepo{
		FetchByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return owner, nil
		},
	}
	sessions := newFakeSessions()
	as := NewAuthService(repo, sessions)

	token, err := as.Connect(ctx, basicHeader("a@b.com", "pw"))
	require.NoError(t, err)

	got, err := as.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, owner.ID.Hex(), got)

	require.NoError(t, as.Disconnect(ctx, token))

	got, err = as.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, got)

	// logout is idempotent
	require.NoError(t, as.Disconnect(ctx, token))
}

func TestAuthService_Disconnect_MissingToken(t *testing.T) {
	as := NewAuthService(&fakeUserRepo{}, newFakeSessions())
	require.ErrorIs(t, as.Disconnect(context.Background(), ""), ErrUnauthorized)
}

func TestAuthService_Resolve_EmptyToken(t *testing.T) {
	as := NewAuthService(&fakeUserRepo{}, newFakeSessions())

	got, err := as.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
