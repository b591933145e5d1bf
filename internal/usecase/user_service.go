package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pickempool/pickem-api/internal/domain/user"
	"github.com/pickempool/pickem-api/internal/platform/id"
)

// UserService implements login-by-username. There are no credentials: an
// unknown username is reported as not found so the client can offer to
// create it.
type UserService struct {
	userRepo user.Repository
	ids      id.Generator
}

func NewUserService(userRepo user.Repository, ids id.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		ids:      ids,
	}
}

func (s *UserService) Login(ctx context.Context, username string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	u, found, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: username %s", ErrNotFound, username)
	}

	return u, nil
}

func (s *UserService) CreateUser(ctx context.Context, username string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.CreateUser")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	newID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	u := user.User{ID: newID, Username: username}
	if err := u.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, fmt.Errorf("%w: username %s", ErrConflict, username)
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.GetUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	u, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	return u, nil
}
