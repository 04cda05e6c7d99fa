package services

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"file-manager-api/internal/application/ports"
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/infrastructure/thumbnail"
)

var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing or invalid type")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrNotFound        = errors.New("file not found")
	ErrIsFolder        = errors.New("a folder has no content")
)

const fallbackMime = "application/octet-stream"

type FileService struct {
	fileRepository domain.Repository
	storage        ports.Storage
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	fileRepository domain.Repository,
	storage ports.Storage,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		fileRepository: fileRepository,
		storage:        storage,
		mq:             mq,
		mCounter:       mCounter,
	}
}

// Upload validates in a fixed order (name, type, data, parent), persists
// metadata and, for non-folders, decoded content on disk. Image uploads
// enqueue a thumbnail job after the record is persisted; enqueue never
// rolls the record back.
func (fs *FileService) Upload(ctx context.Context, ownerID user.ID, in domain.UploadInput) (*domain.File, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	if !domain.ValidType(in.Type) {
		return nil, ErrMissingType
	}
	if in.Type != domain.TypeFolder && in.Data == "" {
		return nil, ErrMissingData
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = domain.RootParentID
	}
	if parentID != domain.RootParentID {
		pid, err := primitive.ObjectIDFromHex(parentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		parent, err := fs.fileRepository.FetchByIDAndOwner(ctx, pid, ownerID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.Type != domain.TypeFolder {
			return nil, ErrParentNotFolder
		}
	}

	f := domain.File{
		UserID:   ownerID,
		Name:     in.Name,
		Type:     in.Type,
		ParentID: parentID,
		IsPublic: in.IsPublic,
	}

	if in.Type != domain.TypeFolder {
		data, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, ErrMissingData
		}
		path, err := fs.storage.Save(data)
		if err != nil {
			return nil, err
		}
		f.LocalPath = path
	}

	out, err := fs.fileRepository.Create(ctx, f)
	if err != nil {
		return nil, err
	}

	if out.Type == domain.TypeImage {
		fs.mq.GetInputChan() <- mq.Job{
			ID:     uuid.New(),
			TS:     time.Now(),
			Kind:   mq.KindThumbnail,
			FileID: out.ID.Hex(),
			UserID: out.UserID.Hex(),
		}
	}

	fs.mCounter.WithLabelValues("file_created_total").Inc()

	return out, nil
}

func (fs *FileService) FindByID(ctx context.Context, ownerID user.ID, fileID domain.ID) (*domain.File, error) {
	return fs.fileRepository.FetchByIDAndOwner(ctx, fileID, ownerID)
}

func (fs *FileService) List(ctx context.Context, ownerID user.ID, parentID string, page int) (domain.Files, error) {
	if parentID == "" {
		parentID = domain.RootParentID
	}

	return fs.fileRepository.FetchByOwner(ctx, ownerID, parentID, page)
}

func (fs *FileService) SetVisibility(ctx context.Context, ownerID user.ID, fileID domain.ID, isPublic bool) (*domain.File, error) {
	f, err := fs.fileRepository.SetVisibility(ctx, fileID, ownerID, isPublic)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}

	return f, nil
}

// Content serves the original bytes or a thumbnail variant. A private
// file is reported as not found to anyone but its owner; existence and
// authorization are indistinguishable on purpose.
func (fs *FileService) Content(ctx context.Context, fileID domain.ID, requestorID string, size string) ([]byte, string, error) {
	f, err := fs.fileRepository.FetchByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	if f == nil {
		return nil, "", ErrNotFound
	}
	if f.Type == domain.TypeFolder {
		return nil, "", ErrIsFolder
	}
	if !f.IsPublic && (requestorID == "" || requestorID != f.UserID.Hex()) {
		return nil, "", ErrNotFound
	}

	path := f.LocalPath
	if size != "" {
		width, ok := variantWidth(size)
		if !ok {
			return nil, "", ErrNotFound
		}
		path = thumbnail.VariantPath(f.LocalPath, width)
	}

	data, err := fs.storage.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	return data, mimeByName(f.Name), nil
}

func (fs *FileService) Count(ctx context.Context) (int64, error) {
	return fs.fileRepository.Count(ctx)
}

func variantWidth(size string) (int, bool) {
	for _, w := range thumbnail.Widths {
		if size == strconv.Itoa(w) {
			return w, true
		}
	}
	return 0, false
}

func mimeByName(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return fallbackMime
}
