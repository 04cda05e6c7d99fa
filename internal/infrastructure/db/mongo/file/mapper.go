package file

import (
	domain "file-manager-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	return &domain.File{
		ID:        model.ID,
		UserID:    model.UserID,
		Name:      model.Name,
		Type:      model.Type,
		ParentID:  model.ParentID,
		IsPublic:  model.IsPublic,
		LocalPath: model.LocalPath,
	}
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

func toDBModel(f domain.File) *File {
	return &File{
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Type:      f.Type,
		ParentID:  f.ParentID,
		IsPublic:  f.IsPublic,
		LocalPath: f.LocalPath,
	}
}
