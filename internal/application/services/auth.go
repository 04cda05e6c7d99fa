package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/user"
)

// SessionTTL is the fixed lifetime of a session token.
const SessionTTL = 24 * time.Hour

var ErrUnauthorized = errors.New("unauthorized")

type AuthService struct {
	userRepository user.Repository
	sessions       ports.Sessions
}

func NewAuthService(
	userRepository user.Repository,
	sessions ports.Sessions,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		sessions:       sessions,
	}
}

// Connect validates Basic credentials and mints an opaque session token
// mapped to the user for SessionTTL.
func (as *AuthService) Connect(ctx context.Context, authorization string) (string, error) {
	email, password, err := decodeBasic(authorization)
	if err != nil {
		return "", ErrUnauthorized
	}

	u, err := as.userRepository.FetchByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err = as.sessions.Set(ctx, token, u.ID.Hex(), SessionTTL); err != nil {
		return "", err
	}

	return token, nil
}

func (as *AuthService) Disconnect(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	// deleting an absent token is fine, logout is idempotent
	return as.sessions.Del(ctx, token)
}

func (as *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}

	return as.sessions.Get(ctx, token)
}

func decodeBasic(authorization string) (email, password string, err error) {
	scheme, payload, ok := strings.Cut(authorization, " ")
	if !ok || scheme != "Basic" {
		return "", "", errors.New("malformed Authorization header")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", err
	}

	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" {
		return "", "", errors.New("malformed Basic credentials")
	}

	return email, password, nil
}
