package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/roomledger/roomledger/internal/api/dto"
	"github.com/roomledger/roomledger/internal/auth"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/testutil"
	"github.com/roomledger/roomledger/internal/types"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
	params  ServiceParams
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	cfg := s.GetConfig()
	cfg.Auth.Secret = "test-secret"
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       cfg,
		AuthProvider: auth.NewLocalAuth(cfg),
		UserRepo:     s.GetStores().UserRepo,
	}
	s.service = NewUserService(s.params)
}

func (s *UserServiceSuite) TestSignUpAndLogin() {
	signedUp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "manager@example.com",
		Password: "s3cret-pass",
	})
	s.NoError(err)
	s.NotEmpty(signedUp.Token)
	s.Equal(types.UserRoleStaff, signedUp.Role)

	loggedIn, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "manager@example.com",
		Password: "s3cret-pass",
	})
	s.NoError(err)
	s.NotEmpty(loggedIn.Token)
	s.Equal(signedUp.UserID, loggedIn.UserID)

	// The issued token round-trips through the provider
	claims, err := s.params.AuthProvider.ValidateToken(s.GetContext(), loggedIn.Token)
	s.NoError(err)
	s.Equal(signedUp.UserID, claims.UserID)
}

func (s *UserServiceSuite) TestSignUpDuplicateEmail() {
	_, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "staff@example.com",
		Password: "pass-one",
	})
	s.NoError(err)

	_, err = s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "staff@example.com",
		Password: "pass-two",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "staff@example.com",
		Password: "right-pass",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong-pass",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestSignUpAlwaysCreatesStaff() {
	// Public signup never grants an elevated role; the admin-only role
	// update is the single path to manager or admin.
	resp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "newhire@example.com",
		Password: "some-pass",
	})
	s.NoError(err)
	s.Equal(types.UserRoleStaff, resp.Role)

	stored, err := s.service.GetUser(s.GetContext(), resp.UserID)
	s.NoError(err)
	s.Equal(types.UserRoleStaff, stored.User.Role)
}

func (s *UserServiceSuite) TestSignUpWithoutTenantUsesDefaultTenant() {
	// Signup arrives on an unauthenticated route, so the context carries no
	// tenant. The account and its token must land in the default tenant.
	ctx := context.Background()

	resp, err := s.service.SignUp(ctx, dto.SignUpRequest{
		Email:    "walkin@example.com",
		Password: "some-pass",
	})
	s.NoError(err)
	s.Equal(types.DefaultTenantID, resp.TenantID)

	stored, err := s.service.GetUser(ctx, resp.UserID)
	s.NoError(err)
	s.Equal(types.DefaultTenantID, stored.User.TenantID)

	claims, err := s.params.AuthProvider.ValidateToken(ctx, resp.Token)
	s.NoError(err)
	s.Equal(types.DefaultTenantID, claims.TenantID)

	// Login on the same unauthenticated route finds the account
	loggedIn, err := s.service.Login(ctx, dto.LoginRequest{
		Email:    "walkin@example.com",
		Password: "some-pass",
	})
	s.NoError(err)
	s.Equal(resp.UserID, loggedIn.UserID)
}

func (s *UserServiceSuite) TestUpdateUserRole() {
	signedUp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "staff@example.com",
		Password: "some-pass",
	})
	s.NoError(err)

	updated, err := s.service.UpdateUserRole(s.GetContext(), signedUp.UserID, dto.UpdateUserRoleRequest{
		Role: types.UserRoleAdmin,
	})
	s.NoError(err)
	s.Equal(types.UserRoleAdmin, updated.User.Role)
}
