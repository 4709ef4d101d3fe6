package handler

import (
	"context"
	"time"

	"authportal/internal/model"
	"authportal/internal/service"
)

type stubAuthService struct {
	login func(ctx context.Context, email, password string) (*model.User, string, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.login == nil {
		return nil, "", service.ErrInvalidCredentials
	}
	return s.login(ctx, email, password)
}

func (s *stubAuthService) EnsureInitialAdmin(ctx context.Context, email, password string) error {
	return nil
}

type stubRegistrationService struct {
	register func(ctx context.Context, tokenValue, email, password string) (*model.User, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, tokenValue, email, password string) (*model.User, error) {
	if s.register == nil {
		return nil, service.ErrInvalidRegToken
	}
	return s.register(ctx, tokenValue, email, password)
}

type stubTokenService struct {
	issue   func(ctx context.Context, issuerID, expiresInDays int) (*model.RegistrationToken, error)
	lookup  func(ctx context.Context, value string) (*model.RegistrationToken, error)
	consume func(ctx context.Context, value string, userID int) error
	revoke  func(ctx context.Context, id int) (bool, error)
	list    func(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error)
}

func (s *stubTokenService) Issue(ctx context.Context, issuerID, expiresInDays int) (*model.RegistrationToken, error) {
	if s.issue == nil {
		return nil, service.ErrInvalidExpiry
	}
	return s.issue(ctx, issuerID, expiresInDays)
}

func (s *stubTokenService) Lookup(ctx context.Context, value string) (*model.RegistrationToken, error) {
	if s.lookup == nil {
		return nil, service.ErrTokenNotFound
	}
	return s.lookup(ctx, value)
}

func (s *stubTokenService) IsValid(token *model.RegistrationToken) bool {
	return !token.Used && time.Now().Before(token.ExpiresAt)
}

func (s *stubTokenService) Consume(ctx context.Context, value string, userID int) error {
	if s.consume == nil {
		return nil
	}
	return s.consume(ctx, value, userID)
}

func (s *stubTokenService) Revoke(ctx context.Context, id int) (bool, error) {
	if s.revoke == nil {
		return false, nil
	}
	return s.revoke(ctx, id)
}

func (s *stubTokenService) List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error) {
	if !model.ValidTokenFilter(filter) {
		return nil, service.ErrInvalidFilter
	}
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx, filter)
}

type stubUserService struct {
	listUsers  func(ctx context.Context) ([]model.SafeUser, error)
	updateRole func(ctx context.Context, actor *model.Identity, targetID int, role string) (*model.SafeUser, error)
	deleteUser func(ctx context.Context, actor *model.Identity, targetID int) error
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]model.SafeUser, error) {
	if s.listUsers == nil {
		return nil, nil
	}
	return s.listUsers(ctx)
}

func (s *stubUserService) UpdateRole(ctx context.Context, actor *model.Identity, targetID int, role string) (*model.SafeUser, error) {
	if s.updateRole == nil {
		return nil, service.ErrUserNotFound
	}
	return s.updateRole(ctx, actor, targetID, role)
}

func (s *stubUserService) DeleteUser(ctx context.Context, actor *model.Identity, targetID int) error {
	if s.deleteUser == nil {
		return service.ErrUserNotFound
	}
	return s.deleteUser(ctx, actor, targetID)
}
