package services

import (
	"context"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/infrastructure/storage"
)

type fakeFileRepo struct {
	FetchByIDFunc         func(ctx context.Context, id domain.ID) (*domain.File, error)
	FetchByIDAndOwnerFunc func(ctx context.Context, id domain.ID, ownerID user.ID) (*domain.File, error)
	FetchByOwnerFunc      func(ctx context.Context, ownerID user.ID, parentID string, page int) (domain.Files, error)
	CreateFunc            func(ctx context.Context, req domain.File) (*domain.File, error)
	SetVisibilityFunc     func(ctx context.Context, id domain.ID, ownerID user.ID, isPublic bool) (*domain.File, error)
	CountFunc             func(ctx context.Context) (int64, error)
}

func (f *fakeFileRepo) FetchByID(ctx context.Context, id domain.ID) (*domain.File, error) {
	return f.FetchByIDFunc(ctx, id)
}
func (f *fakeFileRepo) FetchByIDAndOwner(ctx context.Context, id domain.ID, ownerID user.ID) (*domain.File, error) {
	return f.FetchByIDAndOwnerFunc(ctx, id, ownerID)
}
func (f *fakeFileRepo) FetchByOwner(ctx context.Context, ownerID user.ID, parentID string, page int) (domain.Files, error) {
	return f.FetchByOwnerFunc(ctx, ownerID, parentID, page)
}
func (f *fakeFileRepo) Create(ctx context.Context, req domain.File) (*domain.File, error) {
	return f.CreateFunc(ctx, req)
}
func (f *fakeFileRepo) SetVisibility(ctx context.Context, id domain.ID, ownerID user.ID, isPublic bool) (*domain.File, error) {
	return f.SetVisibilityFunc(ctx, id, ownerID, isPublic)
}
func (f *fakeFileRepo) Count(ctx context.Context) (int64, error) {
	return f.CountFunc(ctx)
}

func passthroughCreate(ctx context.Context, req domain.File) (*domain.File, error) {
	req.ID = primitive.NewObjectID()
	return &req, nil
}

func TestFileService_Upload_ValidationOrder(t *testing.T) {
	ownerID := primitive.NewObjectID()
	folderID := primitive.NewObjectID()
	plainID := primitive.NewObjectID()

	repo := &fakeFileRepo{
		FetchByIDAndOwnerFunc: func(ctx context.Context, id domain.ID, owner user.ID) (*domain.File, error) {
			switch id {
			case folderID:
				return &domain.File{ID: folderID, UserID: owner, Type: domain.TypeFolder}, nil
			case plainID:
				return &domain.File{ID: plainID, UserID: owner, Type: domain.TypeFile}, nil
			}
			return nil, nil
		},
		CreateFunc: passthroughCreate,
	}

	tests := []struct {
		name    string
		in      domain.UploadInput
		wantErr error
	}{
		{
			name:    "missing name",
			in:      domain.UploadInput{Type: domain.TypeFile, Data: "aGk="},
			wantErr: ErrMissingName,
		},
		{
			name:    "missing type",
			in:      domain.UploadInput{Name: "f.txt", Data: "aGk="},
			wantErr: ErrMissingType,
		},
		{
			name:    "invalid type",
			in:      domain.UploadInput{Name: "f.txt", Type: "archive", Data: "aGk="},
			wantErr: ErrMissingType,
		},
		{
			name:    "name checked before type",
			in:      domain.UploadInput{},
			wantErr: ErrMissingName,
		},
		{
			name:    "missing data for file",
			in:      domain.UploadInput{Name: "f.txt", Type: domain.TypeFile},
			wantErr: ErrMissingData,
		},
		{
			name:    "folder needs no data",
			in:      domain.UploadInput{Name: "docs", Type: domain.TypeFolder},
			wantErr: nil,
		},
		{
			name:    "unknown parent",
			in:      domain.UploadInput{Name: "f.txt", Type: domain.TypeFile, Data: "aGk=", ParentID: primitive.NewObjectID().Hex()},
			wantErr: ErrParentNotFound,
		},
		{
			name:    "parent id not hex",
			in:      domain.UploadInput{Name: "f.txt", Type: domain.TypeFile, Data: "aGk=", ParentID: "not-hex"},
			wantErr: ErrParentNotFound,
		},
		{
			name:    "parent is not a folder",
			in:      domain.UploadInput{Name: "f.txt", Type: domain.TypeFile, Data: "aGk=", ParentID: plainID.Hex()},
			wantErr: ErrParentNotFolder,
		},
		{
			name:    "parent folder accepted",
			in:      domain.UploadInput{Name: "f.txt", Type: domain.TypeFile, Data: "aGk=", ParentID: folderID.Hex()},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileService(repo, storage.NewLocal(t.TempDir()), newFakeQueue(), testCounter())

			f, err := fs.Upload(context.Background(), ownerID, tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
		})
	}
}

func TestFileService_Upload_FolderHasNoContent(t *testing.T) {
	root := t.TempDir()
	repo := &fakeFileRepo{CreateFunc: passthroughCreate}
	fs := NewFileService(repo, storage.NewLocal(root), newFakeQueue(), testCounter())

	f, err := fs.Upload(context.Background(), primitive.NewObjectID(), domain.UploadInput{
		Name: "docs",
		Type: domain.TypeFolder,
	})
	require.NoError(t, err)
	assert.Empty(t, f.LocalPath)
	assert.Equal(t, domain.RootParentID, f.ParentID)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileService_Upload_WritesDecodedContent(t *testing.T) {
	repo := &fakeFileRepo{CreateFunc: passthroughCreate}
	q := newFakeQueue()
	fs := NewFileService(repo, storage.NewLocal(t.TempDir()), q, testCounter())

	f, err := fs.Upload(context.Background(), primitive.NewObjectID(), domain.UploadInput{
		Name: "f.txt",
		Type: domain.TypeFile,
		Data: base64.StdEncoding.EncodeToString([]byte("hello")),
	})
	require.NoError(t, err)
	require.NotEmpty(t, f.LocalPath)

	got, err := os.ReadFile(f.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	// plain files never reach the thumbnail queue
	assert.Empty(t, q.drain())
}

func TestFileService_Upload_ImageEnqueuesThumbnailJob(t *testing.T) {
	ownerID := primitive.NewObjectID()
	repo := &fakeFileRepo{CreateFunc: passthroughCreate}
	q := newFakeQueue()
	fs := NewFileService(repo, storage.NewLocal(t.TempDir()), q, testCounter())

	f, err := fs.Upload(context.Background(), ownerID, domain.UploadInput{
		Name: "pic.png",
		Type: domain.TypeImage,
		Data: base64.StdEncoding.EncodeToString([]byte("not-a-real-png")),
	})
	require.NoError(t, err)

	jobs := q.drain()
	require.Len(t, jobs, 1)
	assert.Equal(t, mq.KindThumbnail, jobs[0].Kind)
	assert.Equal(t, f.ID.Hex(), jobs[0].FileID)
	assert.Equal(t, ownerID.Hex(), jobs[0].UserID)
}

func TestFileService_Content_Authorization(t *testing.T) {
	ownerID := primitive.NewObjectID()
	root := t.TempDir()
	store := storage.NewLocal(root)

	path, err := store.Save([]byte("hello"))
	require.NoError(t, err)

	private := &domain.File{
		ID:        primitive.NewObjectID(),
		UserID:    ownerID,
		Name:      "f.txt",
		Type:      domain.TypeFile,
		LocalPath: path,
	}
	public := &domain.File{
		ID:        primitive.NewObjectID(),
		UserID:    ownerID,
		Name:      "p.txt",
		Type:      domain.TypeFile,
		IsPublic:  true,
		LocalPath: path,
	}
	folder := &domain.File{
		ID:     primitive.NewObjectID(),
		UserID: ownerID,
		Name:   "docs",
		Type:   domain.TypeFolder,
	}

	repo := &fakeFileRepo{
		FetchByIDFunc: func(ctx context.Context, id domain.ID) (*domain.File, error) {
			switch id {
			case private.ID:
				return private, nil
			case public.ID:
				return public, nil
			case folder.ID:
				return folder, nil
			}
			return nil, nil
		},
	}
	fs := NewFileService(repo, store, newFakeQueue(), testCounter())
	ctx := context.Background()

	tests := []struct {
		name      string
		fileID    domain.ID
		requestor string
		wantErr   error
	}{
		{name: "unknown id", fileID: primitive.NewObjectID(), wantErr: ErrNotFound},
		{name: "folder", fileID: folder.ID, requestor: ownerID.Hex(), wantErr: ErrIsFolder},
		{name: "private anonymous", fileID: private.ID, wantErr: ErrNotFound},
		{name: "private wrong user", fileID: private.ID, requestor: primitive.NewObjectID().Hex(), wantErr: ErrNotFound},
		{name: "private owner", fileID: private.ID, requestor: ownerID.Hex()},
		{name: "public anonymous", fileID: public.ID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			data, mimeType, err := fs.Content(ctx, tt.fileID, tt.requestor, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("hello"), data)
			assert.Contains(t, mimeType, "text/plain")
		})
	}
}

func TestFileService_Content_Variants(t *testing.T) {
	ownerID := primitive.NewObjectID()
	root := t.TempDir()
	store := storage.NewLocal(root)

	path, err := store.Save([]byte("original"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path+"_250", []byte("resized"), 0o644))

	img := &domain.File{
		ID:        primitive.NewObjectID(),
		UserID:    ownerID,
		Name:      "pic.png",
		Type:      domain.TypeImage,
		IsPublic:  true,
		LocalPath: path,
	}
	repo := &fakeFileRepo{
		FetchByIDFunc: func(ctx context.Context, id domain.ID) (*domain.File, error) {
			return img, nil
		},
	}
	fs := NewFileService(repo, store, newFakeQueue(), testCounter())
	ctx := context.Background()

	data, mimeType, err := fs.Content(ctx, img.ID, "", "250")
	require.NoError(t, err)
	assert.Equal(t, []byte("resized"), data)
	assert.Equal(t, "image/png", mimeType)

	// generated yet? absent variants are a plain not-found
	_, _, err = fs.Content(ctx, img.ID, "", "500")
	require.ErrorIs(t, err, ErrNotFound)

	// only the three fixed widths resolve
	_, _, err = fs.Content(ctx, img.ID, "", "42")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileService_SetVisibility(t *testing.T) {
	ownerID := primitive.NewObjectID()
	fileID := primitive.NewObjectID()

	current := &domain.File{ID: fileID, UserID: ownerID, Name: "f.txt", Type: domain.TypeFile}
	repo := &fakeFileRepo{
		SetVisibilityFunc: func(ctx context.Context, id domain.ID, owner user.ID, isPublic bool) (*domain.File, error) {
			if id != fileID || owner != ownerID {
				return nil, nil
			}
			out := *current
			out.IsPublic = isPublic
			current = &out
			return &out, nil
		},
	}
	fs := NewFileService(repo, storage.NewLocal(t.TempDir()), newFakeQueue(), testCounter())
	ctx := context.Background()

	f, err := fs.SetVisibility(ctx, ownerID, fileID, true)
	require.NoError(t, err)
	assert.True(t, f.IsPublic)

	// the final state reflects only the last call
	f, err = fs.SetVisibility(ctx, ownerID, fileID, false)
	require.NoError(t, err)
	assert.False(t, f.IsPublic)

	_, err = fs.SetVisibility(ctx, primitive.NewObjectID(), fileID, true)
	require.ErrorIs(t, err, ErrNotFound)
}
