package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockdeck/stockdeck/internal/session"
)

// loginView collects credentials and exchanges them for a session.
type loginView struct {
	username textinput.Model
	password textinput.Model
	focusPwd bool
	busy     bool
	errMsg   string
}

func newLoginView() loginView {
	username := textinput.New()
	username.Placeholder = "email or username"
	username.CharLimit = 128
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginView{username: username, password: password}
}

func (v *loginView) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) update(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		v.focusPwd = !v.focusPwd
		if v.focusPwd {
			v.username.Blur()
			return v.password.Focus()
		}
		v.password.Blur()
		return v.username.Focus()
	case "enter":
		if v.busy {
			return nil
		}
		username := strings.TrimSpace(v.username.Value())
		password := v.password.Value()
		if username == "" || password == "" {
			v.errMsg = "Username and password are required"
			return nil
		}
		v.busy = true
		v.errMsg = ""
		backend := a.backend
		return func() tea.Msg {
			grant, err := backend.Login(context.Background(), username, password)
			if err != nil {
				return loginResultMsg{err: err}
			}
			identity, err := session.IdentityFromToken(grant.AccessToken, username)
			if err != nil {
				return loginResultMsg{err: err}
			}
			return loginResultMsg{identity: identity, token: grant.AccessToken}
		}
	}

	var cmd tea.Cmd
	if v.focusPwd {
		v.password, cmd = v.password.Update(msg)
	} else {
		v.username, cmd = v.username.Update(msg)
	}
	return cmd
}

func (v *loginView) view(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("▣ STOCKDECK")
	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render("Sign in to manage your inventory")

	lines := []string{
		title,
		subtitle,
		"",
		"Username: " + v.username.View(),
		"Password: " + v.password.View(),
	}
	if v.busy {
		lines = append(lines, "", "Signing in...")
	}
	if v.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(v.errMsg))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("Enter → sign in    Tab → switch field    Ctrl+C → quit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
