package file

import (
	domain "file-manager-api/internal/domain/file"
)

// ToResponseFile deliberately omits localPath; on-disk layout is not
// part of the API surface.
func ToResponseFile(fDomain domain.File) File {
	return File{
		ID:       fDomain.ID.Hex(),
		UserID:   fDomain.UserID.Hex(),
		Name:     fDomain.Name,
		Type:     fDomain.Type,
		IsPublic: fDomain.IsPublic,
		ParentID: fDomain.ParentID,
	}
}

func ToResponseFiles(fsDomain domain.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToUploadInput(r Request) domain.UploadInput {
	return domain.UploadInput{
		Name:     r.Name,
		Type:     r.Type,
		ParentID: r.ParentID,
		IsPublic: r.IsPublic,
		Data:     r.Data,
	}
}
