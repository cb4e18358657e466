package postgres

import (
	"context"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// PasswordRepo implements PasswordRepository using PostgreSQL.
type PasswordRepo struct{ db *DB }

// NewPasswordRepo constructs a saved password repository.
func NewPasswordRepo(db *DB) *PasswordRepo { return &PasswordRepo{db: db} }

// Upsert inserts a new row (id assigned by the sequence) or replaces an existing one.
func (r *PasswordRepo) Upsert(ctx context.Context, p *model.SavedPassword) error {
	if p.ID == 0 {
		const ins = `
INSERT INTO saved_passwords (account_id, title, note, secret)
VALUES ($1, $2, $3, $4)
RETURNING id`
		var id int64
		if err := r.db.Pool.QueryRow(ctx, ins, p.AccountID, p.Title, p.Note, p.Secret).Scan(&id); err != nil {
			return errs.Store("insert saved password", err)
		}
		p.ID = id
		return nil
	}

	const ups = `
INSERT INTO saved_passwords (id, account_id, title, note, secret)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title, note = EXCLUDED.note, secret = EXCLUDED.secret
WHERE saved_passwords.account_id = EXCLUDED.account_id`
	tag, err := r.db.Pool.Exec(ctx, ups, p.ID, p.AccountID, p.Title, p.Note, p.Secret)
	if err != nil {
		return errs.Store("upsert saved password", err)
	}
	if tag.RowsAffected() == 0 {
		// id is taken by another account
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the saved password by id within its owner's rows.
func (r *PasswordRepo) Delete(ctx context.Context, p model.SavedPassword) error {
	const q = `DELETE FROM saved_passwords WHERE id=$1 AND account_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, p.ID, p.AccountID)
	if err != nil {
		return errs.Store("delete saved password", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByAccount returns saved passwords ordered by id.
func (r *PasswordRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.SavedPassword, error) {
	return listPasswords(ctx, r.db.Pool, accountID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listPasswords(ctx context.Context, q querier, accountID uuid.UUID) ([]model.SavedPassword, error) {
	const sel = `
SELECT id, account_id, title, note, secret
FROM saved_passwords
WHERE account_id=$1
ORDER BY id ASC`
	rows, err := q.Query(ctx, sel, accountID)
	if err != nil {
		return nil, errs.Store("list saved passwords", err)
	}
	defer rows.Close()

	out := []model.SavedPassword{}
	for rows.Next() {
		var p model.SavedPassword
		if err = rows.Scan(&p.ID, &p.AccountID, &p.Title, &p.Note, &p.Secret); err != nil {
			return nil, errs.Store("scan saved password", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list saved passwords", err)
	}
	return out, nil
}
