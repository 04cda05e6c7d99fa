package file

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	File struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		UserID    primitive.ObjectID `bson:"userId"`
		Name      string             `bson:"name"`
		Type      string             `bson:"type"`
		ParentID  string             `bson:"parentId"`
		IsPublic  bool               `bson:"isPublic"`
		LocalPath string             `bson:"localPath,omitempty"`
	}
	Files []*File
)
