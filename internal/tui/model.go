// Package tui renders the session in a terminal with bubbletea and turns key
// presses into session events.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/session"
)

const toastTTL = 3 * time.Second

// Dispatcher accepts session events.
type Dispatcher interface {
	Dispatch(e session.Event)
}

type (
	stateMsg      session.State
	toastMsg      string
	toastTimeout  struct{ seq int }
)

// Model is the bubbletea model. The session state it shows is a read-only
// snapshot; every change goes through the Dispatcher.
type Model struct {
	d      Dispatcher
	states <-chan session.State
	toasts <-chan string

	state  session.State
	dialog session.DialogMode
	cursor int

	inputs []textinput.Model
	focus  int

	toast    string
	toastSeq int
	width    int
}

// New builds a Model fed by states and toasts.
func New(d Dispatcher, states <-chan session.State, toasts <-chan string) Model {
	return Model{d: d, states: states, toasts: toasts, state: session.Initial()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitState(m.states), waitToast(m.toasts))
}

func waitState(ch <-chan session.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func waitToast(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.setState(session.State(msg))
		return m, waitState(m.states)
	case toastMsg:
		m.toast = string(msg)
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Batch(
			waitToast(m.toasts),
			tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastTimeout{seq: seq} }),
		)
	case toastTimeout:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state.Dialog {
		case session.DialogNone:
			return m.updateMain(msg)
		case session.DialogRegister, session.DialogLogin, session.DialogEdit:
			return m.updateForm(msg)
		case session.DialogView:
			return m.updateView(msg)
		default:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m *Model) setState(s session.State) {
	m.state = s
	if m.cursor >= len(s.Records) {
		m.cursor = len(s.Records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if s.Dialog != m.dialog {
		m.dialog = s.Dialog
		m.openInputs()
	}
}

// openInputs builds the form fields for the dialog that just opened.
func (m *Model) openInputs() {
	m.inputs = nil
	m.focus = 0
	switch m.dialog {
	case session.DialogRegister, session.DialogLogin:
		name := newInput("name", m.state.DraftName, false)
		pw := newInput("password", m.state.DraftPassword, true)
		m.inputs = []textinput.Model{name, pw}
	case session.DialogEdit:
		var sel model.SavedPassword
		if m.state.Selected != nil {
			sel = *m.state.Selected
		}
		m.inputs = []textinput.Model{
			newInput("title", sel.Title, false),
			newInput("note", sel.Note, false),
			newInput("password", sel.Secret, false),
		}
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func newInput(placeholder, value string, masked bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 40
	in.SetValue(value)
	if masked {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func (m Model) current() (model.SavedPassword, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Records) {
		return model.SavedPassword{}, false
	}
	return m.state.Records[m.cursor], true
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "g":
		m.d.Dispatch(session.GeneratePassword{})
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Records)-1 {
			m.cursor++
		}
	case "c":
		if rec, ok := m.current(); ok {
			m.d.Dispatch(session.CopyPassword{Value: rec.Secret})
		} else if m.state.LastGenerated != "" {
			m.d.Dispatch(session.CopyPassword{Value: m.state.LastGenerated})
		}
	}

	if !m.state.LoggedIn() {
		switch msg.String() {
		case "r":
			m.d.Dispatch(session.ShowDialog{Mode: session.DialogRegister})
		case "l":
			m.d.Dispatch(session.ShowDialog{Mode: session.DialogLogin})
		}
		return m, nil
	}

	switch msg.String() {
	case "o":
		m.d.Dispatch(session.ShowDialog{Mode: session.DialogLogoutConfirm})
	case "u":
		m.d.Dispatch(session.ShowDialog{Mode: session.DialogUnregisterConfirm})
	case "enter", "e", "d":
		rec, ok := m.current()
		if !ok {
			return m, nil
		}
		mode := map[string]session.DialogMode{
			"enter": session.DialogView,
			"e":     session.DialogEdit,
			"d":     session.DialogDeleteConfirm,
		}[msg.String()]
		m.d.Dispatch(session.ShowDialog{Mode: mode, Record: &rec})
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.d.Dispatch(session.HideDialog{})
		return m, nil
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		switch m.state.Dialog {
		case session.DialogRegister:
			m.d.Dispatch(session.Register{})
		case session.DialogLogin:
			m.d.Dispatch(session.Login{})
		case session.DialogEdit:
			if m.state.Selected != nil {
				m.d.Dispatch(session.ChangeSavedPassword{Record: *m.state.Selected})
			}
		}
		return m, nil
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if v := m.inputs[m.focus].Value(); v != before {
		m.d.Dispatch(m.fieldEvent(m.focus, v))
	}
	return m, cmd
}

func (m Model) fieldEvent(field int, v string) session.Event {
	if m.state.Dialog == session.DialogEdit {
		switch field {
		case 0:
			return session.SetSelectedTitle{Value: v}
		case 1:
			return session.SetSelectedNote{Value: v}
		default:
			return session.SetSelectedSecret{Value: v}
		}
	}
	if field == 0 {
		return session.SetDraftName{Value: v}
	}
	return session.SetDraftPassword{Value: v}
}

func (m *Model) moveFocus(step int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.state.Selected
	switch msg.String() {
	case "esc", "q":
		m.d.Dispatch(session.HideDialog{})
	case "v":
		m.d.Dispatch(session.ToggleReveal{})
	case "c":
		if sel != nil {
			m.d.Dispatch(session.CopyPassword{Value: sel.Secret})
		}
	case "e":
		if sel != nil {
			rec := *sel
			m.d.Dispatch(session.ShowDialog{Mode: session.DialogEdit, Record: &rec})
		}
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.d.Dispatch(session.HideDialog{})
	case "y", "enter":
		switch m.state.Dialog {
		case session.DialogLogoutConfirm:
			m.d.Dispatch(session.Logout{})
		case session.DialogUnregisterConfirm:
			m.d.Dispatch(session.Unregister{})
		case session.DialogDeleteConfirm:
			if m.state.Selected != nil {
				m.d.Dispatch(session.DeleteSavedPassword{Record: *m.state.Selected})
			}
		}
	}
	return m, nil
}
