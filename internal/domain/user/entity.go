package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	ID = primitive.ObjectID
	// User carries credentials only. The password is stored as a one-way
	// bcrypt digest and must never leave the service layer.
	User struct {
		ID           ID
		Email        string
		PasswordHash string
	}
	Users []*User
)
