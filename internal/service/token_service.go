package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authportal/internal/model"
	"authportal/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTokenNotFound = errors.New("registration token not found")
	ErrInvalidExpiry = errors.New("token expiry must be between 1 and 365 days")
	ErrInvalidFilter = errors.New("invalid filter, must be: all, active, used, or expired")
)

// Bounds on the invitation lifetime an admin may request.
const (
	MinExpiryDays = 1
	MaxExpiryDays = 365
)

// RegistrationTokenService manages the invitation token lifecycle:
// Active -> Used on consumption, Active -> Revoked via deletion, and
// Active -> Expired purely by the clock (nothing writes an expired state).
type RegistrationTokenService interface {
	// Issue creates a token on behalf of issuerID. expiresInDays == 0 means
	// "use the configured default"; an explicit value always wins.
	Issue(ctx context.Context, issuerID, expiresInDays int) (*model.RegistrationToken, error)
	Lookup(ctx context.Context, value string) (*model.RegistrationToken, error)
	IsValid(token *model.RegistrationToken) bool
	Consume(ctx context.Context, value string, userID int) error
	Revoke(ctx context.Context, id int) (bool, error)
	List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error)
}

type tokenService struct {
	tokenRepo         repository.RegistrationTokenRepository
	defaultExpiryDays int
}

// NewRegistrationTokenService creates a new RegistrationTokenService
func NewRegistrationTokenService(tokenRepo repository.RegistrationTokenRepository, defaultExpiryDays int) RegistrationTokenService {
	return &tokenService{tokenRepo: tokenRepo, defaultExpiryDays: defaultExpiryDays}
}

// Issue generates a random token value and persists it as unused.
func (s *tokenService) Issue(ctx context.Context, issuerID, expiresInDays int) (*model.RegistrationToken, error) {
	if expiresInDays == 0 {
		expiresInDays = s.defaultExpiryDays
	}
	if expiresInDays < MinExpiryDays || expiresInDays > MaxExpiryDays {
		return nil, ErrInvalidExpiry
	}

	token := &model.RegistrationToken{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().AddDate(0, 0, expiresInDays),
		CreatedBy: issuerID,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to issue registration token: %w", err)
	}
	return token, nil
}

// Lookup finds a token by its opaque value.
func (s *tokenService) Lookup(ctx context.Context, value string) (*model.RegistrationToken, error) {
	token, err := s.tokenRepo.FindByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrTokenNotFound
	}
	return token, nil
}

// IsValid reports whether the token can still be consumed: never used and
// not yet past its expiry. Pure; no I/O.
func (s *tokenService) IsValid(token *model.RegistrationToken) bool {
	return !token.Used && time.Now().Before(token.ExpiresAt)
}

// Consume marks the token used by userID. Callers are expected to have
// checked IsValid first; the storage-layer conditional update is what
// guarantees a token is consumed at most once under concurrency.
func (s *tokenService) Consume(ctx context.Context, value string, userID int) error {
	ok, err := s.tokenRepo.Consume(ctx, value, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenNotFound
	}
	return nil
}

// Revoke deletes a token while it is still unused. Returns false when there
// is nothing to revoke: the token is missing or already consumed.
func (s *tokenService) Revoke(ctx context.Context, id int) (bool, error) {
	return s.tokenRepo.Delete(ctx, id)
}

// List returns token summaries for the admin panel, newest first.
func (s *tokenService) List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error) {
	if !model.ValidTokenFilter(filter) {
		return nil, ErrInvalidFilter
	}
	return s.tokenRepo.List(ctx, filter)
}
