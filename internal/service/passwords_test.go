package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/repository"
)

type fakePasswords struct {
	upsertIn  model.SavedPassword
	upsertID  int64
	upsertErr error

	delIn  model.SavedPassword
	delErr error

	listIn  uuid.UUID
	listOut []model.SavedPassword
	listErr error
}

var _ repository.PasswordRepository = (*fakePasswords)(nil)

func (f *fakePasswords) Upsert(_ context.Context, p *model.SavedPassword) error {
	f.upsertIn = *p
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if p.ID == 0 {
		p.ID = f.upsertID
	}
	return nil
}
func (f *fakePasswords) Delete(_ context.Context, p model.SavedPassword) error {
	f.delIn = p
	return f.delErr
}
func (f *fakePasswords) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.SavedPassword, error) {
	f.listIn = accountID
	return append([]model.SavedPassword(nil), f.listOut...), f.listErr
}

func TestPasswordService_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakePasswords{upsertID: 5}
	s := NewPasswordService(repo)
	owner := model.AccountID("alice")

	if _, err := s.Save(ctx, model.SavedPassword{Secret: "x"}); err == nil {
		t.Fatalf("want validation error on empty owner")
	}
	if _, err := s.Save(ctx, model.SavedPassword{ID: -1, AccountID: owner}); err == nil {
		t.Fatalf("want validation error on negative id")
	}

	id, err := s.Save(ctx, model.SavedPassword{AccountID: owner, Secret: "x"})
	if err != nil || id != 5 {
		t.Fatalf("insert: id=%d err=%v", id, err)
	}

	id, err = s.Save(ctx, model.SavedPassword{ID: 9, AccountID: owner, Title: "t", Secret: "y"})
	if err != nil || id != 9 {
		t.Fatalf("update: id=%d err=%v", id, err)
	}
	if repo.upsertIn.Title != "t" || repo.upsertIn.Secret != "y" {
		t.Fatalf("repo args not forwarded: %+v", repo.upsertIn)
	}
}

func TestPasswordService_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakePasswords{}
	s := NewPasswordService(repo)
	owner := model.AccountID("alice")

	if err := s.Delete(ctx, model.SavedPassword{ID: 1}); err == nil {
		t.Fatalf("want validation error on empty owner")
	}
	if err := s.Delete(ctx, model.SavedPassword{AccountID: owner}); err == nil {
		t.Fatalf("want validation error on unsaved record")
	}

	p := model.SavedPassword{ID: 3, AccountID: owner}
	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.delIn != p {
		t.Fatalf("repo args not forwarded")
	}
}

func TestPasswordService_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	owner := model.AccountID("alice")
	repo := &fakePasswords{listOut: []model.SavedPassword{{ID: 1, AccountID: owner}}}
	s := NewPasswordService(repo)

	if _, err := s.List(ctx, uuid.Nil); err == nil {
		t.Fatalf("want validation error on empty owner")
	}
	out, err := s.List(ctx, owner)
	if err != nil || len(out) != 1 || repo.listIn != owner {
		t.Fatalf("List: out=%v err=%v", out, err)
	}
}

func TestPasswordService_RepoErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	owner := model.AccountID("alice")
	repo := &fakePasswords{
		upsertErr: errs.ErrNotFound,
		delErr:    errs.ErrNotFound,
		listErr:   errs.Store("list saved passwords", errors.New("io")),
	}
	s := NewPasswordService(repo)

	if _, err := s.Save(ctx, model.SavedPassword{ID: 2, AccountID: owner}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Save: want ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, model.SavedPassword{ID: 2, AccountID: owner}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Delete: want ErrNotFound, got %v", err)
	}
	if _, err := s.List(ctx, owner); !errors.Is(err, errs.ErrStore) {
		t.Fatalf("List: want ErrStore, got %v", err)
	}
}
