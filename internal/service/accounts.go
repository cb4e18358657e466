// Package service contains application services for accounts and saved passwords.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/repository"
)

// AccountService defines registration, login and unregistration.
type AccountService interface {
	// Register creates an account whose id is derived from name.
	Register(ctx context.Context, name, password string) (uuid.UUID, error)
	// Login matches credentials exactly and loads the account's saved passwords.
	Login(ctx context.Context, name, password string) (model.Account, []model.SavedPassword, error)
	// Unregister deletes the account and all its saved passwords atomically.
	Unregister(ctx context.Context, id uuid.UUID) error
}

type AccountServiceImpl struct {
	accounts repository.AccountRepository
}

// NewAccountService constructs AccountService over an account repository.
func NewAccountService(accounts repository.AccountRepository) *AccountServiceImpl {
	return &AccountServiceImpl{accounts: accounts}
}

// Register validates input and stores a new account.
func (s *AccountServiceImpl) Register(ctx context.Context, name, password string) (uuid.UUID, error) {
	if isBlank(name) || isBlank(password) {
		return uuid.Nil, errors.New("validation: blank name/password")
	}
	a := &model.Account{ID: model.AccountID(name), Name: name, Password: password}
	if err := s.accounts.Create(ctx, a); err != nil {
		return uuid.Nil, err
	}
	return a.ID, nil
}

// Login returns the account matching both name and password together with its saved passwords.
// A mismatch on either field yields errs.ErrNotFound.
func (s *AccountServiceImpl) Login(ctx context.Context, name, password string) (model.Account, []model.SavedPassword, error) {
	if isBlank(name) || isBlank(password) {
		return model.Account{}, nil, errors.New("validation: blank name/password")
	}
	found, err := s.accounts.FindByCredentials(ctx, name, password)
	if err != nil {
		return model.Account{}, nil, err
	}
	acc, ps, err := s.accounts.GetWithPasswords(ctx, found.ID)
	if err != nil {
		return model.Account{}, nil, err
	}
	return *acc, ps, nil
}

// Unregister removes the account with everything it owns.
func (s *AccountServiceImpl) Unregister(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("validation: empty account id")
	}
	return s.accounts.DeleteWithPasswords(ctx, id)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
