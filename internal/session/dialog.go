package session

// DialogMode is the dialog currently open over the main screen.
type DialogMode int

const (
	DialogNone DialogMode = iota
	DialogRegister
	DialogLogin
	DialogView
	DialogEdit
	DialogDeleteConfirm
	DialogUnregisterConfirm
	DialogLogoutConfirm
)

var dialogNames = [...]string{
	DialogNone:              "NONE",
	DialogRegister:          "REGISTER",
	DialogLogin:             "LOGIN",
	DialogView:              "VIEW",
	DialogEdit:              "EDIT",
	DialogDeleteConfirm:     "DELETE_CONFIRM",
	DialogUnregisterConfirm: "UNREGISTER_CONFIRM",
	DialogLogoutConfirm:     "LOGOUT_CONFIRM",
}

var dialogTitles = [...]string{
	DialogNone:              "",
	DialogRegister:          "Register",
	DialogLogin:             "Login",
	DialogView:              "Information",
	DialogEdit:              "Change",
	DialogDeleteConfirm:     "Confirm delete",
	DialogUnregisterConfirm: "Confirm unregister",
	DialogLogoutConfirm:     "Confirm logout",
}

func (d DialogMode) valid() bool { return d >= DialogNone && int(d) < len(dialogNames) }

// String returns the mode name, e.g. "DELETE_CONFIRM".
func (d DialogMode) String() string {
	if !d.valid() {
		return "UNKNOWN"
	}
	return dialogNames[d]
}

// Title is the heading a renderer shows for the dialog.
func (d DialogMode) Title() string {
	if !d.valid() {
		return ""
	}
	return dialogTitles[d]
}
