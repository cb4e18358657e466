package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepo implements AccountRepository on SQLite.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `INSERT INTO accounts (id, name, password) VALUES (?, ?, ?)`
	_, err := r.db.SQL.ExecContext(ctx, q, a.ID, a.Name, a.Password)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return errs.Store("create account", err)
}

// Delete removes the account row. Fails with a store error while saved passwords still reference it.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM accounts WHERE id = ?`
	res, err := r.db.SQL.ExecContext(ctx, q, id)
	return affectedOne(res, err, "delete account")
}

// FindByCredentials selects the account whose name and password both match exactly.
func (r *AccountRepo) FindByCredentials(ctx context.Context, name, password string) (*model.Account, error) {
	const q = `SELECT id, name, password FROM accounts WHERE name = ? AND password = ?`
	return scanAccount(r.db.SQL.QueryRowContext(ctx, q, name, password), "find account")
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `SELECT id, name, password FROM accounts WHERE id = ?`
	return scanAccount(r.db.SQL.QueryRowContext(ctx, q, id), "get account")
}

// GetWithPasswords reads the account and its saved passwords in one transaction.
func (r *AccountRepo) GetWithPasswords(ctx context.Context, id uuid.UUID) (*model.Account, []model.SavedPassword, error) {
	const q = `SELECT id, name, password FROM accounts WHERE id = ?`
	var (
		acc *model.Account
		ps  []model.SavedPassword
	)
	err := r.db.inTx(ctx, &sql.TxOptions{ReadOnly: true}, func(tx *sql.Tx) error {
		var err error
		if acc, err = scanAccount(tx.QueryRowContext(ctx, q, id), "get account"); err != nil {
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
	const delPasswords = `DELETE FROM saved_passwords WHERE account_id = ?`
	const delAccount = `DELETE FROM accounts WHERE id = ?`
	err := r.db.inTx(ctx, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, delPasswords, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, delAccount, id)
		return affectedOne(res, err, "delete account")
	})
	return errs.Store("unregister account", err)
}

func scanAccount(row *sql.Row, op string) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(op, err)
	}
	return &a, nil
}

// affectedOne maps an exec result touching no rows to ErrNotFound.
func affectedOne(res sql.Result, err error, op string) error {
	if err != nil {
		return errs.Store(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Store(op, err)
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
