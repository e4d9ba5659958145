package gorm

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/roomledger/roomledger/internal/domain/user"
	ierr "github.com/roomledger/roomledger/internal/errors"
)

type userRepository struct {
	client *Client
}

// NewUserRepository returns the Postgres-backed user repository.
func NewUserRepository(client *Client) user.Repository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, m *user.User) error {
	if err := r.client.handle(ctx).Create(userFromDomain(m)).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	err := r.client.scoped(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("user %s not found", id).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	err := r.client.scoped(ctx).First(&row, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("user %s not found", email).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *userRepository) List(ctx context.Context, filter *user.Filter) ([]*user.User, error) {
	query := r.client.scoped(ctx)
	if filter != nil {
		if filter.Role != "" {
			query = query.Where("role = ?", filter.Role)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit).Offset(filter.Offset)
		}
	}

	var rows []userRow
	if err := query.Order("email asc").Find(&rows).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}

	users := make([]*user.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, m *user.User) error {
	result := r.client.scoped(ctx).
		Where("id = ?", m.ID).
		Save(userFromDomain(m))
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
