package repository

import (
	"context"

	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
)

// PasswordRepository provides access to saved passwords.
type PasswordRepository interface {
	// Upsert inserts p when p.ID is zero and writes the assigned id back,
	// otherwise replaces the row with that id owned by p.AccountID.
	Upsert(ctx context.Context, p *model.SavedPassword) error
	// Delete removes the row by primary key, scoped to its owner.
	Delete(ctx context.Context, p model.SavedPassword) error
	// ListByAccount returns the account's saved passwords in insertion order.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.SavedPassword, error)
}
