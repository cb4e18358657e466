// Package clipboard copies text to the user's clipboard from a terminal program.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Mode selects how the OSC 52 sequence is wrapped.
type Mode string

const (
	ModeOSC52  Mode = "osc52"
	ModeTmux   Mode = "tmux"
	ModeScreen Mode = "screen"
	ModeOff    Mode = "off"
)

// ErrDisabled is returned by SetText in ModeOff.
var ErrDisabled = errors.New("clipboard disabled")

// ParseMode validates a configured mode name. Empty means ModeOSC52.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeOSC52, nil
	case ModeOSC52, ModeTmux, ModeScreen, ModeOff:
		return m, nil
	default:
		return "", fmt.Errorf("clipboard: unknown mode %q", s)
	}
}

// Terminal writes OSC 52 escape sequences to a terminal.
type Terminal struct {
	mu   sync.Mutex
	w    io.Writer
	mode Mode
}

// NewTerminal returns a clipboard writing to w, usually the controlling terminal.
func NewTerminal(w io.Writer, mode Mode) *Terminal {
	return &Terminal{w: w, mode: mode}
}

// SetText asks the terminal to place text on the system clipboard.
func (t *Terminal) SetText(text string) error {
	if t.mode == ModeOff {
		return ErrDisabled
	}
	seq := osc52.New(text)
	switch t.mode {
	case ModeTmux:
		seq = seq.Tmux()
	case ModeScreen:
		seq = seq.Screen()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := seq.WriteTo(t.w); err != nil {
		return fmt.Errorf("clipboard: write: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

// SetText stores text unless a failure was injected with Fail.
func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Text returns the last stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Fail makes subsequent SetText calls return err; nil restores normal behaviour.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
