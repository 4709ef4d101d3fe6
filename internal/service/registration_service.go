package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"authportal/internal/model"
	"authportal/internal/repository"
	"authportal/internal/utils"
	"authportal/internal/validation"
)

// ValidationError marks a registration failure the caller can fix: bad
// input, a dead token, a taken email. Handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a caller-facing validation failure.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

var (
	ErrMissingFields   = NewValidationError("Token, email, and password are required")
	ErrInvalidEmail    = NewValidationError("Invalid email format")
	ErrInvalidRegToken = NewValidationError("Invalid registration token")
	ErrRegTokenUsed    = NewValidationError("Registration token has already been used")
	ErrRegTokenExpired = NewValidationError("Registration token has expired")
	ErrEmailTaken      = NewValidationError("Email already registered")
)

// RegistrationService composes token validation, credential hashing, and
// user creation into the public registration flow.
type RegistrationService interface {
	Register(ctx context.Context, tokenValue, email, password string) (*model.User, error)
}

type registrationService struct {
	userRepo repository.UserRepository
	tokens   RegistrationTokenService
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(userRepo repository.UserRepository, tokens RegistrationTokenService) RegistrationService {
	return &registrationService{userRepo: userRepo, tokens: tokens}
}

// Register validates input in a fixed order (first failure wins), creates
// the user, and consumes the invitation token. Registration never creates an
// admin and never issues a session; the new user authenticates separately.
func (s *registrationService) Register(ctx context.Context, tokenValue, email, password string) (*model.User, error) {
	if tokenValue == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !validation.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if valid, violations := validation.ValidatePassword(password); !valid {
		return nil, NewValidationError(strings.Join(violations, ", "))
	}

	token, err := s.tokens.Lookup(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrInvalidRegToken
		}
		return nil, fmt.Errorf("failed to look up registration token: %w", err)
	}
	if !s.tokens.IsValid(token) {
		if token.Used {
			return nil, ErrRegTokenUsed
		}
		return nil, ErrRegTokenExpired
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// A concurrent registration may have consumed the token between the
	// validity check and here; the conditional update in the store decides
	// the winner. The loser's account row stays, which is a valid state.
	if err := s.tokens.Consume(ctx, tokenValue, user.ID); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrRegTokenUsed
		}
		return nil, fmt.Errorf("failed to consume registration token: %w", err)
	}

	return user, nil
}
