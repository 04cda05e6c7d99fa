package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	User struct {
		ID           primitive.ObjectID `bson:"_id,omitempty"`
		Email        string             `bson:"email"`
		PasswordHash string             `bson:"password"`
	}
	Users []*User
)
