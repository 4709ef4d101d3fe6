package service

import (
	"context"
	"errors"

	"authportal/internal/model"
	"authportal/internal/repository"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidRole     = errors.New("invalid role, must be \"admin\" or \"user\"")
	ErrSelfRoleChange  = errors.New("cannot change your own role")
	ErrSelfDelete      = errors.New("cannot delete your own account")
	ErrLastAdminDemote = errors.New("cannot change the last admin to user")
	ErrLastAdminDelete = errors.New("cannot delete the last admin user")
)

// UserService provides the admin-side user management operations,
// enforcing the self-action and last-admin safeguards.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.SafeUser, error)
	UpdateRole(ctx context.Context, actor *model.Identity, targetID int, role string) (*model.SafeUser, error)
	DeleteUser(ctx context.Context, actor *model.Identity, targetID int) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListUsers returns all users with password hashes stripped.
func (s *userService) ListUsers(ctx context.Context) ([]model.SafeUser, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	safe := make([]model.SafeUser, 0, len(users))
	for i := range users {
		safe = append(safe, users[i].Safe())
	}
	return safe, nil
}

// UpdateRole changes the target user's role. The self-action check runs
// first (it is an identity comparison, no I/O); the last-admin check runs
// when a demotion would otherwise leave zero admins.
func (s *userService) UpdateRole(ctx context.Context, actor *model.Identity, targetID int, role string) (*model.SafeUser, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if actor.ID == targetID {
		return nil, ErrSelfRoleChange
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if target.Role == model.RoleAdmin && role == model.RoleUser {
		count, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, ErrLastAdminDemote
		}
	}

	updated, err := s.userRepo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	safe := updated.Safe()
	return &safe, nil
}

// DeleteUser removes the target account, refusing self-deletion and the
// removal of the last remaining admin.
func (s *userService) DeleteUser(ctx context.Context, actor *model.Identity, targetID int) error {
	if actor.ID == targetID {
		return ErrSelfDelete
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if target.Role == model.RoleAdmin {
		count, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdminDelete
		}
	}

	deleted, err := s.userRepo.Delete(ctx, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
