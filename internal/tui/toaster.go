package tui

// Toaster queues notifications for the UI. It implements session.Notifier.
type Toaster struct {
	ch chan string
}

// NewToaster returns a Toaster that holds up to n pending messages.
func NewToaster(n int) *Toaster {
	if n < 1 {
		n = 1
	}
	return &Toaster{ch: make(chan string, n)}
}

// Notify queues message, dropping it when the queue is full.
func (t *Toaster) Notify(message string) {
	select {
	case t.ch <- message:
	default:
	}
}

// C is the channel the UI reads notifications from.
func (t *Toaster) C() <-chan string { return t.ch }
