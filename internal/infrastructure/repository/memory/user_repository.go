package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pickempool/pickem-api/internal/domain/user"
)

type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]user.User
	byUsername map[string]string
}

func NewUserRepository(users []user.User) *UserRepository {
	r := &UserRepository{
		byID:       make(map[string]user.User, len(users)),
		byUsername: make(map[string]string, len(users)),
	}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byUsername[u.Username] = u.ID
	}

	return r
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[item.Username]; exists {
		return fmt.Errorf("%w: %s", user.ErrUsernameTaken, item.Username)
	}

	r.byID[item.ID] = item
	r.byUsername[item.Username] = item.ID

	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, false, nil
	}

	return u, true, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return user.User{}, false, nil
	}

	return r.byID[id], true, nil
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}
