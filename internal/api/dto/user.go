package dto

import (
	"github.com/roomledger/roomledger/internal/domain/user"
	"github.com/roomledger/roomledger/internal/types"
	"github.com/roomledger/roomledger/internal/validator"
)

// SignUpRequest carries no role on purpose. Self-registered accounts always
// start as staff; elevation goes through the admin-only role update.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`

	// Token is a provider-issued token, used when sign up happened through
	// an external identity provider.
	Token string `json:"token,omitempty"`
}

func (r *SignUpRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AuthResponse struct {
	Token    string         `json:"token"`
	UserID   string         `json:"user_id"`
	TenantID string         `json:"tenant_id"`
	Email    string         `json:"email"`
	Role     types.UserRole `json:"role"`
}

type UpdateUserRoleRequest struct {
	Role types.UserRole `json:"role" validate:"required"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Role.Validate()
}

type UserResponse struct {
	*user.User
}

// ListUsersResponse represents the response for listing users
type ListUsersResponse = types.ListResponse[*UserResponse]
