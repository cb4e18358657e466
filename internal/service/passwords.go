package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/repository"
)

// PasswordService defines operations over an account's saved passwords.
type PasswordService interface {
	// List returns the account's saved passwords in insertion order.
	List(ctx context.Context, accountID uuid.UUID) ([]model.SavedPassword, error)
	// Save inserts (ID 0) or rewrites a saved password and returns its ID.
	Save(ctx context.Context, p model.SavedPassword) (int64, error)
	// Delete removes the saved password with p's ID owned by p's account.
	Delete(ctx context.Context, p model.SavedPassword) error
}

type PasswordServiceImpl struct {
	repo repository.PasswordRepository
}

// NewPasswordService constructs PasswordService.
func NewPasswordService(repo repository.PasswordRepository) *PasswordServiceImpl {
	return &PasswordServiceImpl{repo: repo}
}

// List validates the owner and delegates to the repository.
func (s *PasswordServiceImpl) List(ctx context.Context, accountID uuid.UUID) ([]model.SavedPassword, error) {
	if accountID == uuid.Nil {
		return nil, errors.New("validation: empty account id")
	}
	return s.repo.ListByAccount(ctx, accountID)
}

// Save validates the record and upserts it.
// Validation rules:
// - AccountID != uuid.Nil
// - ID >= 0
func (s *PasswordServiceImpl) Save(ctx context.Context, p model.SavedPassword) (int64, error) {
	if p.AccountID == uuid.Nil {
		return 0, errors.New("validation: empty account id")
	}
	if p.ID < 0 {
		return 0, errors.New("validation: negative id")
	}
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Delete removes a stored record by its key.
func (s *PasswordServiceImpl) Delete(ctx context.Context, p model.SavedPassword) error {
	if p.AccountID == uuid.Nil {
		return errors.New("validation: empty account id")
	}
	if p.ID <= 0 {
		return errors.New("validation: unsaved record")
	}
	return s.repo.Delete(ctx, p)
}
