// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepository provides access to accounts and their saved passwords as a unit.
type AccountRepository interface {
	// Create inserts a new account; errs.ErrAlreadyExists if the id is taken.
	Create(ctx context.Context, a *model.Account) error
	// Delete removes the account row only. Saved passwords must be gone first.
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByCredentials matches name and password exactly.
	FindByCredentials(ctx context.Context, name, password string) (*model.Account, error)
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetWithPasswords loads an account and its saved passwords in insertion order.
	GetWithPasswords(ctx context.Context, id uuid.UUID) (*model.Account, []model.SavedPassword, error)
	// DeleteWithPasswords removes all saved passwords and then the account in one transaction.
	DeleteWithPasswords(ctx context.Context, id uuid.UUID) error
}
