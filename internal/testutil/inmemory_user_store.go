package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/roomledger/roomledger/internal/domain/user"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{InMemoryStore: NewInMemoryStore[*user.User]()}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users := s.InMemoryStore.List(ctx, func(u *user.User) bool {
		return u.Email == email
	})
	if len(users) == 0 {
		return nil, ierr.NewErrorf("user %s not found", email).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *user.Filter) ([]*user.User, error) {
	users := s.InMemoryStore.List(ctx, func(u *user.User) bool {
		if filter == nil {
			return true
		}
		if filter.Role != "" && u.Role != filter.Role {
			return false
		}
		return true
	})
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	if filter != nil {
		users = paginate(users, filter.Limit, filter.Offset)
	}
	return lo.Map(users, func(u *user.User, _ int) *user.User { return copyUser(u) }), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}
