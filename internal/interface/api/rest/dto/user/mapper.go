package user

import (
	domain "file-manager-api/internal/domain/user"
)

// ToResponseUser exposes id and email only; the password digest never
// leaves the service layer.
func ToResponseUser(uDomain domain.User) User {
	return User{
		ID:    uDomain.ID.Hex(),
		Email: uDomain.Email,
	}
}
