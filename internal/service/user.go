package service

import (
	"context"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/auth"
	"github.com/roomledger/roomledger/internal/domain/user"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/types"
)

// UserService manages staff accounts and delegates credential handling to
// the configured auth provider.
type UserService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter *user.Filter) (*dto.ListUsersResponse, error)
	UpdateUserRole(ctx context.Context, id string, req dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

func (s *userService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Signup serves an unauthenticated route; self-registered accounts land
	// in the default tenant.
	if types.GetTenantID(ctx) == "" {
		ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewErrorf("user %s already exists", req.Email).
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	resp, err := s.AuthProvider.SignUp(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: types.GetTenantID(ctx),
		Token:    req.Token,
	})
	if err != nil {
		return nil, err
	}

	// Every signup starts as staff regardless of what the caller asks for.
	// Roles are granted afterwards through the admin-only role update.
	u := user.New(ctx, req.Email, types.UserRoleStaff)
	u.ID = resp.ID
	if s.AuthProvider.GetProvider() == types.AuthProviderLocal {
		u.PasswordHash = resp.ProviderToken
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up",
		"user_id", u.ID,
		"role", u.Role,
	)

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   u.ID,
		TenantID: types.GetTenantID(ctx),
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Login is unauthenticated as well; look the account up in the default
	// tenant when no request scope is present.
	if types.GetTenantID(ctx) == "" {
		ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid email or password").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	resp, err := s.AuthProvider.Login(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: u.TenantID,
	}, u.ID, u.PasswordHash)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if id == "" {
		return nil, ierr.NewError("user id is required").
			WithHint("Please provide a valid user ID").
			Mark(ierr.ErrValidation)
	}

	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{User: u}, nil
}

func (s *userService) ListUsers(ctx context.Context, filter *user.Filter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = &user.Filter{}
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		items[i] = &dto.UserResponse{User: u}
	}

	return &dto.ListUsersResponse{
		Items:      items,
		Pagination: listPagination(len(items), filter.Limit, filter.Offset),
	}, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, id string, req dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Role = req.Role
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return &dto.UserResponse{User: u}, nil
}
