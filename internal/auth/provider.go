// Package auth abstracts credential verification behind a Provider so the
// HTTP layer does not care whether tokens come from Supabase or from the
// built-in HMAC signer.
package auth

import (
	"context"

	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/types"
)

// Claims carries the identity extracted from a verified token.
type Claims struct {
	UserID   string
	TenantID string
	Email    string
}

// AuthRequest is the input for sign up and login operations.
type AuthRequest struct {
	Email    string
	Password string
	TenantID string
	Token    string
}

// AuthResponse is the output of sign up and login operations. ProviderToken
// is provider-specific state the caller persists alongside the user, the
// local provider stores the bcrypt hash there.
type AuthResponse struct {
	ProviderToken string
	AuthToken     string
	ID            string
}

// Provider is the interface for authentication backends.
type Provider interface {
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userID, passwordHash string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// NewProvider picks the provider from configuration. Supabase is used when a
// base URL is configured, otherwise the local HMAC provider.
func NewProvider(cfg *config.Configuration) Provider {
	if cfg.Auth.Supabase.BaseURL != "" {
		return NewSupabaseAuth(cfg)
	}
	return NewLocalAuth(cfg)
}
