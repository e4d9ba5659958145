// Package user provides the domain model for staff accounts and their roles.
package user

import (
	"context"

	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// User is a staff account. Authentication is delegated to the auth provider;
// this record carries the role used for authorization decisions.
type User struct {
	ID    string         `json:"id"`
	Email string         `json:"email"`
	Role  types.UserRole `json:"role"`

	// PasswordHash is only set when the local auth provider manages
	// credentials. Supabase-managed accounts leave it empty.
	PasswordHash string `json:"-"`

	types.BaseModel
}

// New creates a user with base model fields populated from context.
func New(ctx context.Context, email string, role types.UserRole) *User {
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     email,
		Role:      role,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	return u.Role.Validate()
}

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *Filter) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

// Filter defines query parameters for listing users.
type Filter struct {
	Role   types.UserRole `form:"role"`
	Limit  int            `form:"limit"`
	Offset int            `form:"offset"`
}
