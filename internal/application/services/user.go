package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"file-manager-api/internal/application/ports"
	domain "file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/mq"
)

var (
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrAlreadyExists   = errors.New("email already registered")
)

type UserService struct {
	userRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) Create(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	existing, err := us.userRepository.FetchByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := us.userRepository.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	us.mq.GetInputChan() <- mq.Job{
		ID:     uuid.New(),
		TS:     time.Now(),
		Kind:   mq.KindUserCreated,
		UserID: u.ID.Hex(),
	}

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return u, nil
}

func (us *UserService) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchByID(ctx, id)
}

func (us *UserService) Count(ctx context.Context) (int64, error) {
	return us.userRepository.Count(ctx)
}
