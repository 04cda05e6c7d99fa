package file

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"file-manager-api/internal/domain/user"
)

const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"

	// RootParentID marks a file attached directly to the root of the
	// owner's tree rather than to a folder.
	RootParentID = "0"
)

type (
	ID = primitive.ObjectID
	// File is a node in a user's tree: a folder, a plain file or an
	// image. LocalPath points at the on-disk content and is empty for
	// folders.
	File struct {
		ID        ID
		UserID    user.ID
		Name      string
		Type      string
		ParentID  string
		IsPublic  bool
		LocalPath string
	}
	Files []*File

	// UploadInput is the validated-by-the-service shape of an upload
	// request. Data carries base64-encoded content for non-folders.
	UploadInput struct {
		Name     string
		Type     string
		ParentID string
		IsPublic bool
		Data     string
	}
)

func ValidType(t string) bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}
