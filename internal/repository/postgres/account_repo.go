package postgres

import (
	"context"
	"errors"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `INSERT INTO accounts (id, name, password) VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, a.ID, a.Name, a.Password)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return errs.Store("create account", err)
}

// Delete removes the account row.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM accounts WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return errs.Store("delete account", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindByCredentials selects the account whose name and password both match.
func (r *AccountRepo) FindByCredentials(ctx context.Context, name, password string) (*model.Account, error) {
	const q = `SELECT id, name, password FROM accounts WHERE name=$1 AND password=$2`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, name, password), "find account")
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `SELECT id, name, password FROM accounts WHERE id=$1`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, id), "get account")
}

// GetWithPasswords reads the account and its saved passwords from one snapshot.
func (r *AccountRepo) GetWithPasswords(ctx context.Context, id uuid.UUID) (*model.Account, []model.SavedPassword, error) {
	const q = `SELECT id, name, password FROM accounts WHERE id=$1`
	var (
		acc *model.Account
		ps  []model.SavedPassword
	)
	err := r.db.inTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		var err error
		if acc, err = scanAccount(tx.QueryRow(ctx, q, id), "get account"); err != nil {
			return err
		}
		ps, err = listPasswords(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, nil, errs.Store("get account with passwords", err)
	}
	return acc, ps, nil
}

// DeleteWithPasswords removes the saved passwords first, then the account, atomically.
func (r *AccountRepo) DeleteWithPasswords(ctx context.Context, id uuid.UUID) error {
	const delPasswords = `DELETE FROM saved_passwords WHERE account_id=$1`
	const delAccount = `DELETE FROM accounts WHERE id=$1`
	err := r.db.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, delPasswords, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, delAccount, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	return errs.Store("unregister account", err)
}

func scanAccount(row pgx.Row, op string) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(op, err)
	}
	return &a, nil
}
