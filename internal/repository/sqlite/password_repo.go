package sqlite

import (
	"context"
	"database/sql"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/gofrs/uuid/v5"
)

// PasswordRepo implements PasswordRepository on SQLite.
type PasswordRepo struct{ db *DB }

// NewPasswordRepo constructs a saved password repository.
func NewPasswordRepo(db *DB) *PasswordRepo { return &PasswordRepo{db: db} }

// Upsert inserts p when p.ID is 0 and writes the assigned ID back,
// otherwise replaces title, note and secret of the row with that ID
// owned by p.AccountID.
func (r *PasswordRepo) Upsert(ctx context.Context, p *model.SavedPassword) error {
	if p.ID == 0 {
		const q = `INSERT INTO saved_passwords (account_id, title, note, secret) VALUES (?, ?, ?, ?)`
		res, err := r.db.SQL.ExecContext(ctx, q, p.AccountID, p.Title, p.Note, p.Secret)
		if err != nil {
			return errs.Store("insert saved password", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errs.Store("insert saved password", err)
		}
		p.ID = id
		return nil
	}

	const q = `INSERT INTO saved_passwords (id, account_id, title, note, secret) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET title = excluded.title, note = excluded.note, secret = excluded.secret
WHERE saved_passwords.account_id = excluded.account_id`
	res, err := r.db.SQL.ExecContext(ctx, q, p.ID, p.AccountID, p.Title, p.Note, p.Secret)
	return affectedOne(res, err, "update saved password")
}

// Delete removes the row keyed by p.ID and p.AccountID; other fields are ignored.
func (r *PasswordRepo) Delete(ctx context.Context, p model.SavedPassword) error {
	const q = `DELETE FROM saved_passwords WHERE id = ? AND account_id = ?`
	res, err := r.db.SQL.ExecContext(ctx, q, p.ID, p.AccountID)
	return affectedOne(res, err, "delete saved password")
}

// ListByAccount returns the account's saved passwords in insertion order.
func (r *PasswordRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.SavedPassword, error) {
	return listPasswords(ctx, r.db.SQL, accountID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listPasswords(ctx context.Context, q querier, accountID uuid.UUID) ([]model.SavedPassword, error) {
	const sel = `SELECT id, account_id, title, note, secret FROM saved_passwords WHERE account_id = ? ORDER BY id ASC`
	rows, err := q.QueryContext(ctx, sel, accountID)
	if err != nil {
		return nil, errs.Store("list saved passwords", err)
	}
	defer rows.Close()

	out := make([]model.SavedPassword, 0)
	for rows.Next() {
		var p model.SavedPassword
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Title, &p.Note, &p.Secret); err != nil {
			return nil, errs.Store("scan saved password", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list saved passwords", err)
	}
	return out, nil
}
