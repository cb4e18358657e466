// Package session holds the account session state machine: the state snapshot,
// the closed event set, the reducer and the control loop that runs store tasks.
package session

import (
	"github.com/gofrs/uuid/v5"

	"github.com/and161185/passgen/internal/model"
)

// State is one immutable snapshot of the session.
type State struct {
	ActiveAccountID uuid.UUID // uuid.Nil when logged out
	Records         []model.SavedPassword
	DraftName       string
	DraftPassword   string
	Selected        *model.SavedPassword // editable copy of the record open in a dialog
	LastGenerated   string
	Dialog          DialogMode
	RevealSecret    bool
}

// Initial is the state at process start.
func Initial() State {
	return State{RevealSecret: true}
}

// LoggedIn reports whether an account is active.
func (s State) LoggedIn() bool { return s.ActiveAccountID != uuid.Nil }

// Clone returns a deep copy; the result shares no memory with s.
func (s State) Clone() State {
	c := s
	c.Records = model.ClonePasswords(s.Records)
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	return c
}

// hideDialog closes any dialog and drops the form drafts and the selected copy.
func hideDialog(s State) State {
	s.Dialog = DialogNone
	s.Selected = nil
	s.DraftName = ""
	s.DraftPassword = ""
	s.RevealSecret = true
	return s
}

// logout clears everything tied to the active account.
func logout(s State) State {
	s = hideDialog(s)
	s.ActiveAccountID = uuid.Nil
	s.Records = nil
	s.LastGenerated = ""
	return s
}

func login(acc model.Account, ps []model.SavedPassword) func(State) State {
	return func(s State) State {
		s = hideDialog(s)
		s.ActiveAccountID = acc.ID
		s.Records = model.ClonePasswords(ps)
		if s.Records == nil {
			s.Records = []model.SavedPassword{}
		}
		s.LastGenerated = ""
		return s
	}
}

// refresh replaces the records only while owner is still the active account.
func refresh(owner uuid.UUID, ps []model.SavedPassword) func(State) State {
	return func(s State) State {
		if s.ActiveAccountID == owner {
			s.Records = model.ClonePasswords(ps)
		}
		return s
	}
}

func then(fs ...func(State) State) func(State) State {
	return func(s State) State {
		for _, f := range fs {
			s = f(s)
		}
		return s
	}
}
