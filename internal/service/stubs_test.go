package service

import (
	"context"

	"authportal/internal/model"
)

// Function-field stubs for the repository interfaces; nil fields answer
// "nothing found" so each test only wires what it needs.

type stubUserRepo struct {
	create      func(ctx context.Context, user *model.User) error
	findByEmail func(ctx context.Context, email string) (*model.User, error)
	findByID    func(ctx context.Context, id int) (*model.User, error)
	findAll     func(ctx context.Context) ([]model.User, error)
	updateRole  func(ctx context.Context, id int, role string) (*model.User, error)
	delete      func(ctx context.Context, id int) (bool, error)
	countAdmins func(ctx context.Context) (int, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	if s.create == nil {
		user.ID = 1
		return nil
	}
	return s.create(ctx, user)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.findByEmail == nil {
		return nil, nil
	}
	return s.findByEmail(ctx, email)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	if s.findByID == nil {
		return nil, nil
	}
	return s.findByID(ctx, id)
}

func (s *stubUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	if s.findAll == nil {
		return nil, nil
	}
	return s.findAll(ctx)
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id int, role string) (*model.User, error) {
	if s.updateRole == nil {
		return nil, nil
	}
	return s.updateRole(ctx, id, role)
}

func (s *stubUserRepo) Delete(ctx context.Context, id int) (bool, error) {
	if s.delete == nil {
		return false, nil
	}
	return s.delete(ctx, id)
}

func (s *stubUserRepo) CountAdmins(ctx context.Context) (int, error) {
	if s.countAdmins == nil {
		return 0, nil
	}
	return s.countAdmins(ctx)
}

type stubTokenRepo struct {
	create      func(ctx context.Context, token *model.RegistrationToken) error
	findByValue func(ctx context.Context, value string) (*model.RegistrationToken, error)
	consume     func(ctx context.Context, value string, userID int) (bool, error)
	delete      func(ctx context.Context, id int) (bool, error)
	list        func(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error)
}

func (s *stubTokenRepo) Create(ctx context.Context, token *model.RegistrationToken) error {
	if s.create == nil {
		token.ID = 1
		return nil
	}
	return s.create(ctx, token)
}

func (s *stubTokenRepo) FindByValue(ctx context.Context, value string) (*model.RegistrationToken, error) {
	if s.findByValue == nil {
		return nil, nil
	}
	return s.findByValue(ctx, value)
}

func (s *stubTokenRepo) Consume(ctx context.Context, value string, userID int) (bool, error) {
	if s.consume == nil {
		return false, nil
	}
	return s.consume(ctx, value, userID)
}

func (s *stubTokenRepo) Delete(ctx context.Context, id int) (bool, error) {
	if s.delete == nil {
		return false, nil
	}
	return s.delete(ctx, id)
}

func (s *stubTokenRepo) List(ctx context.Context, filter string) ([]model.RegistrationTokenSummary, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx, filter)
}
