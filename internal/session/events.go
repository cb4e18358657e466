package session

import "github.com/and161185/passgen/internal/model"

// Event is the closed set of inputs the session accepts.
// Only types declared in this package implement it.
type Event interface {
	eventName() string
}

type (
	SetDraftName     struct{ Value string }
	SetDraftPassword struct{ Value string }

	Register   struct{}
	Login      struct{}
	Logout     struct{}
	Unregister struct{}

	GeneratePassword struct{}

	// ShowDialog opens Mode; Record, if set, is copied into State.Selected.
	ShowDialog struct {
		Mode   DialogMode
		Record *model.SavedPassword
	}
	HideDialog struct{}

	SetSelectedTitle  struct{ Value string }
	SetSelectedNote   struct{ Value string }
	SetSelectedSecret struct{ Value string }

	// ChangeSavedPassword stores the selected copy's title, note and secret
	// under Record's id and owner.
	ChangeSavedPassword struct{ Record model.SavedPassword }
	// DeleteSavedPassword removes the stored row with Record's id and owner.
	DeleteSavedPassword struct{ Record model.SavedPassword }

	ToggleReveal struct{}
	CopyPassword struct{ Value string }
)

func (SetDraftName) eventName() string        { return "SetDraftName" }
func (SetDraftPassword) eventName() string    { return "SetDraftPassword" }
func (Register) eventName() string            { return "Register" }
func (Login) eventName() string               { return "Login" }
func (Logout) eventName() string              { return "Logout" }
func (Unregister) eventName() string          { return "Unregister" }
func (GeneratePassword) eventName() string    { return "GeneratePassword" }
func (ShowDialog) eventName() string          { return "ShowDialog" }
func (HideDialog) eventName() string          { return "HideDialog" }
func (SetSelectedTitle) eventName() string    { return "SetSelectedTitle" }
func (SetSelectedNote) eventName() string     { return "SetSelectedNote" }
func (SetSelectedSecret) eventName() string   { return "SetSelectedSecret" }
func (ChangeSavedPassword) eventName() string { return "ChangeSavedPassword" }
func (DeleteSavedPassword) eventName() string { return "DeleteSavedPassword" }
func (ToggleReveal) eventName() string        { return "ToggleReveal" }
func (CopyPassword) eventName() string        { return "CopyPassword" }
