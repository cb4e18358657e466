package session

// Clipboard receives text to copy.
type Clipboard interface {
	SetText(text string) error
}

// Notifier shows a transient message. Notify must not block.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
