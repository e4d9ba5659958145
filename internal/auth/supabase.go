package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	supabase "github.com/nedpals/supabase-go"

	"github.com/roomledger/roomledger/internal/config"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

type supabaseAuth struct {
	AuthConfig config.AuthConfig
	client     *supabase.Client
}

// NewSupabaseAuth returns a provider backed by a Supabase project. Tokens are
// verified locally with the project's JWT secret.
func NewSupabaseAuth(cfg *config.Configuration) Provider {
	client := supabase.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)

	return &supabaseAuth{
		AuthConfig: cfg.Auth,
		client:     client,
	}
}

func (s *supabaseAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

// SignUp validates a token obtained from the Supabase UI. Users register
// through Supabase directly, so there is no account creation here.
func (s *supabaseAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	if req.Token == "" {
		return nil, ierr.NewError("token is required").
			WithHint("Token is required").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, err := s.ValidateToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if claims.Email != req.Email {
		return nil, ierr.NewError("email mismatch").
			WithHint("Token does not belong to this email").
			Mark(ierr.ErrPermissionDenied)
	}

	return &AuthResponse{
		ProviderToken: claims.UserID,
		AuthToken:     req.Token,
		ID:            claims.UserID,
	}, nil
}

func (s *supabaseAuth) Login(ctx context.Context, req AuthRequest, userID, passwordHash string) (*AuthResponse, error) {
	user, err := s.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to sign in").
			Mark(ierr.ErrPermissionDenied)
	}
	return &AuthResponse{
		ProviderToken: user.User.ID,
		AuthToken:     user.AccessToken,
		ID:            user.User.ID,
	}, nil
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint("Unexpected signing method").
				WithReportableDetails(map[string]interface{}{
					"signing_method": token.Method.Alg(),
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.AuthConfig.Secret), nil
	})

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["sub"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	// tenant_id travels in app_metadata when the project sets it
	var tenantID string
	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if tid, ok := appMetadata["tenant_id"].(string); ok {
			tenantID = tid
		}
	}
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}

	email, _ := claims["email"].(string)

	return &Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
	}, nil
}
