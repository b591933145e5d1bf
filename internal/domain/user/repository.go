package user

import (
	"context"
	"errors"
)

// ErrUsernameTaken is returned by Create when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// Repository persists users. Create must fail when the username already
// exists (case-sensitive); implementations report that as a conflict.
type Repository interface {
	Create(ctx context.Context, item User) error
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
}
