package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/service"
)

// PasswordGenerator produces a new random password.
type PasswordGenerator interface {
	Generate() (string, error)
}

// Result is what a finished task hands back to the control loop.
type Result struct {
	// Patch is applied to the latest state, not the one the task started from. Nil leaves state as is.
	Patch  func(State) State
	Notice string
	Err    error // for logs only
}

// Task is one asynchronous store interaction started by a transition.
type Task struct {
	Name string
	Run  func(ctx context.Context) Result
}

// Outcome of one transition.
type Outcome struct {
	State  State
	Copy   *string // text to place on the clipboard
	Notice string
	Task   *Task
}

// Reducer maps (State, Event) to the next state and the side effects to perform.
// Reduce itself never blocks on the store; store access happens inside Task.Run.
type Reducer struct {
	accounts  service.AccountService
	passwords service.PasswordService
	gen       PasswordGenerator
	log       *zap.Logger
}

// NewReducer constructs a Reducer.
func NewReducer(accounts service.AccountService, passwords service.PasswordService, gen PasswordGenerator, log *zap.Logger) *Reducer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reducer{accounts: accounts, passwords: passwords, gen: gen, log: log}
}

// Reduce computes the transition for e. s is not modified.
func (r *Reducer) Reduce(s State, e Event) Outcome {
	next := s.Clone()
	switch ev := e.(type) {
	case SetDraftName:
		next.DraftName = ev.Value
	case SetDraftPassword:
		next.DraftPassword = ev.Value
	case Register:
		return r.register(next)
	case Login:
		return r.login(next)
	case Logout:
		return Outcome{State: logout(next), Notice: MsgLoggedOut}
	case Unregister:
		return r.unregister(next)
	case GeneratePassword:
		return r.generate(next)
	case ShowDialog:
		next = hideDialog(next)
		next.Dialog = ev.Mode
		if ev.Record != nil {
			sel := *ev.Record
			next.Selected = &sel
		}
	case HideDialog:
		next = hideDialog(next)
	case SetSelectedTitle:
		if next.Selected != nil {
			next.Selected.Title = ev.Value
		}
	case SetSelectedNote:
		if next.Selected != nil {
			next.Selected.Note = ev.Value
		}
	case SetSelectedSecret:
		if next.Selected != nil {
			next.Selected.Secret = ev.Value
		}
	case ChangeSavedPassword:
		return r.change(next, ev.Record)
	case DeleteSavedPassword:
		return r.delete(next, ev.Record)
	case ToggleReveal:
		next.RevealSecret = !next.RevealSecret
	case CopyPassword:
		v := ev.Value
		return Outcome{State: next, Copy: &v}
	default:
		r.log.Warn("unknown event ignored", zap.String("type", typeName(e)))
	}
	return Outcome{State: next}
}

func (r *Reducer) register(s State) Outcome {
	name, pw := s.DraftName, s.DraftPassword
	if blank(name) || blank(pw) {
		return Outcome{State: s}
	}
	return Outcome{State: s, Task: &Task{Name: "register", Run: func(ctx context.Context) Result {
		if _, err := r.accounts.Register(ctx, name, pw); err != nil {
			if errors.Is(err, errs.ErrAlreadyExists) {
				return Result{Patch: hideDialog, Notice: MsgAccountExists, Err: err}
			}
			return storeFailed(err)
		}
		acc, ps, err := r.accounts.Login(ctx, name, pw)
		if err != nil {
			return storeFailed(err)
		}
		return Result{Patch: login(acc, ps), Notice: MsgRegistered}
	}}}
}

func (r *Reducer) login(s State) Outcome {
	name, pw := s.DraftName, s.DraftPassword
	if blank(name) || blank(pw) {
		return Outcome{State: s}
	}
	return Outcome{State: s, Task: &Task{Name: "login", Run: func(ctx context.Context) Result {
		acc, ps, err := r.accounts.Login(ctx, name, pw)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return Result{Patch: hideDialog, Notice: MsgWrongCredentials, Err: err}
			}
			return storeFailed(err)
		}
		return Result{Patch: login(acc, ps), Notice: MsgLoggedIn}
	}}}
}

func (r *Reducer) unregister(s State) Outcome {
	if !s.LoggedIn() {
		return Outcome{State: s}
	}
	id := s.ActiveAccountID
	return Outcome{State: s, Task: &Task{Name: "unregister", Run: func(ctx context.Context) Result {
		if err := r.accounts.Unregister(ctx, id); err != nil {
			return storeFailed(err)
		}
		return Result{
			Patch: func(s State) State {
				if s.ActiveAccountID != id {
					return s
				}
				return logout(s)
			},
			Notice: MsgUnregistered,
		}
	}}}
}

func (r *Reducer) generate(s State) Outcome {
	pw, err := r.gen.Generate()
	if err != nil {
		r.log.Error("generate password", zap.Error(err))
		return Outcome{State: s, Notice: MsgGenerateFailed}
	}
	s.LastGenerated = pw
	out := Outcome{State: s, Copy: &pw}
	if !s.LoggedIn() {
		return out
	}
	owner := s.ActiveAccountID
	out.Task = &Task{Name: "save generated", Run: func(ctx context.Context) Result {
		if _, err := r.passwords.Save(ctx, model.SavedPassword{AccountID: owner, Secret: pw}); err != nil {
			return Result{Notice: MsgStoreFailure, Err: err}
		}
		ps, err := r.passwords.List(ctx, owner)
		if err != nil {
			return Result{Notice: MsgStoreFailure, Err: err}
		}
		return Result{Patch: refresh(owner, ps)}
	}}
	return out
}

func (r *Reducer) change(s State, rec model.SavedPassword) Outcome {
	if s.Selected == nil {
		return Outcome{State: s}
	}
	merged := model.SavedPassword{
		ID:        rec.ID,
		AccountID: ownerOf(rec, s),
		Title:     s.Selected.Title,
		Note:      s.Selected.Note,
		Secret:    s.Selected.Secret,
	}
	return Outcome{State: s, Task: &Task{Name: "change saved password", Run: func(ctx context.Context) Result {
		if _, err := r.passwords.Save(ctx, merged); err != nil {
			return failed(err)
		}
		ps, err := r.passwords.List(ctx, merged.AccountID)
		if err != nil {
			return failed(err)
		}
		return Result{Patch: then(refresh(merged.AccountID, ps), hideDialog), Notice: MsgChanged}
	}}}
}

func (r *Reducer) delete(s State, rec model.SavedPassword) Outcome {
	rec.AccountID = ownerOf(rec, s)
	return Outcome{State: s, Task: &Task{Name: "delete saved password", Run: func(ctx context.Context) Result {
		if err := r.passwords.Delete(ctx, rec); err != nil {
			return failed(err)
		}
		ps, err := r.passwords.List(ctx, rec.AccountID)
		if err != nil {
			return Result{Patch: hideDialog, Notice: MsgDeleted, Err: err}
		}
		return Result{Patch: then(refresh(rec.AccountID, ps), hideDialog), Notice: MsgDeleted}
	}}}
}

// failed closes the dialog and reports a saved password operation error.
func failed(err error) Result {
	if errors.Is(err, errs.ErrNotFound) {
		return Result{Patch: hideDialog, Notice: MsgRecordMissing, Err: err}
	}
	return storeFailed(err)
}

func storeFailed(err error) Result {
	return Result{Patch: hideDialog, Notice: MsgStoreFailure, Err: err}
}

func ownerOf(rec model.SavedPassword, s State) uuid.UUID {
	if rec.AccountID != uuid.Nil {
		return rec.AccountID
	}
	return s.ActiveAccountID
}

func blank(v string) bool { return strings.TrimSpace(v) == "" }

func typeName(e Event) string { return fmt.Sprintf("%T", e) }
