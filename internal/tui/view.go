package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/and161185/passgen/internal/generator"
	"github.com/and161185/passgen/internal/model"
	"github.com/and161185/passgen/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	secretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
	toastStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	listBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	untitledLabel = "(untitled)"
)

const mask = "••••••••••••••••"

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("passgen"))
	b.WriteString("\n\n")

	if m.state.Dialog == session.DialogNone {
		b.WriteString(m.mainView())
	} else {
		b.WriteString(modalStyle.Render(m.dialogView()))
	}
	b.WriteString("\n")

	if m.toast != "" {
		b.WriteString(toastStyle.Render(m.toast))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(m.help()))
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) mainView() string {
	var b strings.Builder
	if gen := m.state.LastGenerated; gen != "" {
		fmt.Fprintf(&b, "Generated: %s  %s\n\n", secretStyle.Render(gen), dimStyle.Render(bits(gen)))
	} else {
		b.WriteString(dimStyle.Render("Press g to generate a password.") + "\n\n")
	}

	if !m.state.LoggedIn() {
		b.WriteString(dimStyle.Render("Not logged in. Generated passwords are not saved."))
		return b.String()
	}

	if len(m.state.Records) == 0 {
		b.WriteString(listBoxStyle.Render(dimStyle.Render("No saved passwords")))
		return b.String()
	}

	rows := make([]string, 0, len(m.state.Records))
	for i, rec := range m.state.Records {
		line := fmt.Sprintf("%-24s %s", fit(title(rec), 24), fit(rec.Note, 30))
		if i == m.cursor {
			rows = append(rows, cursorStyle.Render("> "+line))
			continue
		}
		rows = append(rows, "  "+line)
	}
	b.WriteString(listBoxStyle.Render(strings.Join(rows, "\n")))
	return b.String()
}

func (m Model) dialogView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.state.Dialog.Title()))
	b.WriteString("\n\n")

	sel := m.state.Selected
	switch m.state.Dialog {
	case session.DialogRegister, session.DialogLogin:
		labels := []string{"Name    ", "Password"}
		for i, in := range m.inputs {
			fmt.Fprintf(&b, "%s %s\n", labels[i], in.View())
		}
	case session.DialogEdit:
		labels := []string{"Title   ", "Note    ", "Password"}
		for i, in := range m.inputs {
			fmt.Fprintf(&b, "%s %s\n", labels[i], in.View())
		}
		if sel != nil {
			b.WriteString(dimStyle.Render(bits(sel.Secret)) + "\n")
		}
	case session.DialogView:
		if sel == nil {
			break
		}
		secret := mask
		if m.state.RevealSecret {
			secret = sel.Secret
		}
		fmt.Fprintf(&b, "Title    %s\n", title(*sel))
		fmt.Fprintf(&b, "Note     %s\n", sel.Note)
		fmt.Fprintf(&b, "Password %s  %s\n", secretStyle.Render(secret), dimStyle.Render(bits(sel.Secret)))
	case session.DialogDeleteConfirm:
		if sel != nil {
			fmt.Fprintf(&b, "Delete %q?\n", title(*sel))
		}
	case session.DialogUnregisterConfirm:
		b.WriteString("Delete this account and all its saved passwords?\n")
	case session.DialogLogoutConfirm:
		b.WriteString("Log out of this account?\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) help() string {
	switch m.state.Dialog {
	case session.DialogNone:
		if !m.state.LoggedIn() {
			return "g: generate │ c: copy │ r: register │ l: login │ q: quit"
		}
		return "g: generate │ ↑/↓: move │ enter: open │ e: edit │ d: delete │ c: copy │ o: logout │ u: unregister │ q: quit"
	case session.DialogRegister, session.DialogLogin, session.DialogEdit:
		return "tab: next field │ enter: submit │ esc: cancel"
	case session.DialogView:
		return "v: show/hide │ c: copy │ e: edit │ esc: close"
	default:
		return "y: confirm │ n: cancel"
	}
}

func title(p model.SavedPassword) string {
	if p.Title == "" {
		return untitledLabel
	}
	return p.Title
}

func bits(pw string) string {
	return fmt.Sprintf("%.0f bits", generator.Entropy(pw))
}

func fit(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
