package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var accountCols = []string{"id", "name", "password"}

func TestAccountRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	a := &model.Account{ID: model.AccountID("alice"), Name: "alice", Password: "pw1"}

	mock.ExpectExec(`INSERT INTO accounts \(id, name, password\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs(a.ID, a.Name, a.Password).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, a))

	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs(a.ID, a.Name, a.Password).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, a), errs.ErrAlreadyExists)

	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs(a.ID, a.Name, a.Password).
		WillReturnError(errors.New("conn reset"))
	require.ErrorIs(t, r.Create(ctx, a), errs.ErrStore)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	id := model.AccountID("alice")

	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, id))

	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, id), errs.ErrNotFound)

	// foreign key violation while saved passwords remain
	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Delete(ctx, id), errs.ErrStore)
}

func TestAccountRepo_FindByCredentials(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	id := model.AccountID("alice")

	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE name=\$1 AND password=\$2`).
		WithArgs("alice", "pw1").
		WillReturnRows(pgxmock.NewRows(accountCols).AddRow(id, "alice", "pw1"))
	a, err := r.FindByCredentials(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, id, a.ID)

	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE name=\$1 AND password=\$2`).
		WithArgs("alice", "Pw1").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.FindByCredentials(ctx, "alice", "Pw1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAccountRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	id := model.AccountID("bob")

	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(accountCols).AddRow(id, "bob", "x"))
	a, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bob", a.Name)

	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(errors.New("timeout"))
	_, err = r.GetByID(ctx, id)
	require.ErrorIs(t, err, errs.ErrStore)
}

func TestAccountRepo_GetWithPasswords(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	ctx := context.Background()
	id := model.AccountID("alice")

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(accountCols).AddRow(id, "alice", "pw1"))
	mock.ExpectQuery(`SELECT id, account_id, title, note, secret FROM saved_passwords WHERE account_id=\$1 ORDER BY id ASC`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(passwordCols).
			AddRow(int64(1), id, "mail", "", "s1").
			AddRow(int64(4), id, "", "", "s2"))
	mock.ExpectCommit()

	a, ps, err := r.GetWithPasswords(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", a.Name)
	require.Len(t, ps, 2)
	require.Equal(t, int64(1), ps[0].ID)
	require.Equal(t, "s2", ps[1].Secret)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetWithPasswords_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := model.AccountID("ghost")

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(`SELECT id, name, password FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := r.GetWithPasswords(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_DeleteWithPasswords_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := model.AccountID("alice")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM saved_passwords WHERE account_id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.DeleteWithPasswords(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_DeleteWithPasswords_RollsBackOnFailure(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := model.AccountID("alice")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM saved_passwords WHERE account_id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := r.DeleteWithPasswords(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_DeleteWithPasswords_MissingAccount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAccountRepo(db)
	id := model.AccountID("ghost")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM saved_passwords WHERE account_id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM accounts WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	require.ErrorIs(t, r.DeleteWithPasswords(context.Background(), id), errs.ErrNotFound)
}
