package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, db *DB, name string) model.Account {
	t.Helper()
	a := model.Account{ID: model.AccountID(name), Name: name, Password: name + "-pw"}
	require.NoError(t, NewAccountRepo(db).Create(context.Background(), &a))
	return a
}

func TestPasswordRepo_UpsertInsertThenUpdate(t *testing.T) {
	db := newStore(t)
	r := NewPasswordRepo(db)
	ctx := context.Background()
	alice := seedAccount(t, db, "alice")

	p := &model.SavedPassword{AccountID: alice.ID, Secret: "first"}
	require.NoError(t, r.Upsert(ctx, p))
	require.NotZero(t, p.ID)
	id := p.ID

	p.Title, p.Note, p.Secret = "mail", "work", "second"
	require.NoError(t, r.Upsert(ctx, p))
	require.Equal(t, id, p.ID)

	ps, err := r.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []model.SavedPassword{{ID: id, AccountID: alice.ID, Title: "mail", Note: "work", Secret: "second"}}, ps)
}

func TestPasswordRepo_Upsert_ForeignOwnerRejected(t *testing.T) {
	db := newStore(t)
	r := NewPasswordRepo(db)
	ctx := context.Background()
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")

	p := &model.SavedPassword{AccountID: alice.ID, Secret: "mine"}
	require.NoError(t, r.Upsert(ctx, p))

	hijack := &model.SavedPassword{ID: p.ID, AccountID: bob.ID, Secret: "theirs"}
	require.ErrorIs(t, r.Upsert(ctx, hijack), errs.ErrNotFound)

	ps, err := r.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", ps[0].Secret)
}

func TestPasswordRepo_Upsert_UnknownOwner(t *testing.T) {
	db := newStore(t)
	r := NewPasswordRepo(db)
	err := r.Upsert(context.Background(), &model.SavedPassword{AccountID: model.AccountID("ghost"), Secret: "x"})
	require.ErrorIs(t, err, errs.ErrStore)
}

func TestPasswordRepo_DeleteByKey(t *testing.T) {
	db := newStore(t)
	r := NewPasswordRepo(db)
	ctx := context.Background()
	alice := seedAccount(t, db, "alice")

	p := &model.SavedPassword{AccountID: alice.ID, Title: "t", Secret: "s"}
	require.NoError(t, r.Upsert(ctx, p))

	stale := *p
	stale.Title = "edited but unsaved"
	require.NoError(t, r.Delete(ctx, stale))
	require.ErrorIs(t, r.Delete(ctx, stale), errs.ErrNotFound)

	ps, err := r.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, ps)
}

func TestPasswordRepo_Delete_OtherOwnerNotFound(t *testing.T) {
	db := newStore(t)
	r := NewPasswordRepo(db)
	ctx := context.Background()
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")

	p := &model.SavedPassword{AccountID: alice.ID, Secret: "s"}
	require.NoError(t, r.Upsert(ctx, p))

	require.ErrorIs(t, r.Delete(ctx, model.SavedPassword{ID: p.ID, AccountID: bob.ID}), errs.ErrNotFound)
}

func TestPasswordRepo_Upsert_InsertFailure(t *testing.T) {
	db, mock := setupMock(t)
	r := NewPasswordRepo(db)
	owner := model.AccountID("alice")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO saved_passwords (account_id, title, note, secret) VALUES (?, ?, ?, ?)`)).
		WithArgs(owner, "", "", "s").
		WillReturnError(errors.New("disk full"))

	p := &model.SavedPassword{AccountID: owner, Secret: "s"}
	require.ErrorIs(t, r.Upsert(context.Background(), p), errs.ErrStore)
	require.Zero(t, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordRepo_Upsert_LastInsertID(t *testing.T) {
	db, mock := setupMock(t)
	r := NewPasswordRepo(db)
	owner := model.AccountID("alice")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO saved_passwords (account_id, title, note, secret)`)).
		WithArgs(owner, "t", "n", "s").
		WillReturnResult(sqlmock.NewResult(42, 1))

	p := &model.SavedPassword{AccountID: owner, Title: "t", Note: "n", Secret: "s"}
	require.NoError(t, r.Upsert(context.Background(), p))
	require.Equal(t, int64(42), p.ID)
}

func TestPasswordRepo_ListByAccount_QueryFailure(t *testing.T) {
	db, mock := setupMock(t)
	r := NewPasswordRepo(db)
	owner := model.AccountID("alice")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, title, note, secret FROM saved_passwords WHERE account_id = ? ORDER BY id ASC`)).
		WithArgs(owner).
		WillReturnError(errors.New("no such table: saved_passwords"))

	_, err := r.ListByAccount(context.Background(), owner)
	require.ErrorIs(t, err, errs.ErrStore)
	require.NoError(t, mock.ExpectationsWereMet())
}
