package session

// User-facing notices.
const (
	MsgRegistered       = "Successfully registered and logged in to this account!"
	MsgAccountExists    = "This account already exists!"
	MsgLoggedIn         = "Logged In!"
	MsgWrongCredentials = "Wrong name and/or password!"
	MsgLoggedOut        = "Logged Out!"
	MsgUnregistered     = "Successfully unregistered and logged off from this account!"
	MsgChanged          = "Successfully changed this saved password!"
	MsgDeleted          = "Successfully deleted this saved password!"
	MsgCopied           = "Copied this password to clipboard!"
	MsgCopyFailed       = "Could not copy this password to clipboard!"
	MsgGenerateFailed   = "Could not generate a password!"
	MsgStoreFailure     = "Something went wrong with the password storage!"
	MsgRecordMissing    = "This saved password no longer exists!"
)
