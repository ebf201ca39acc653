package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authModel is the sign-in / sign-up form. On success the root model takes
// the user from the completion message and returns to the feed.
type authModel struct {
	auth Auth
	mode authMode

	email    textinput.Model
	password textinput.Model
	focus    int

	isSaving bool
	err      string
	submitID uuid.UUID
}

func newAuthModel(auth Auth, mode authMode) authModel {
	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "you@example.com"
	email.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authModel{auth: auth, mode: mode, email: email, password: password}
}

func (m *authModel) setFocus(focus int) {
	m.focus = focus
	if focus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

func (m authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		if msg.id != m.submitID {
			return m, nil
		}
		m.isSaving = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focus + 1) % 2)
			return m, nil

		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focus + 1) % 2)
			return m, nil

		case tea.KeyEnter:
			if m.focus == 0 {
				m.setFocus(1)
				return m, nil
			}
			if m.isSaving {
				return m, nil
			}
			m.submitID = uuid.New()
			m.isSaving = true
			return m, submitAuthCmd(m.auth, m.mode, m.email.Value(), m.password.Value(), m.submitID)

		default:
			var cmd tea.Cmd
			if m.focus == 0 {
				m.email, cmd = m.email.Update(msg)
			} else {
				m.password, cmd = m.password.Update(msg)
			}
			return m, cmd
		}
	}

	return m, nil
}

func (m authModel) view() string {
	var b strings.Builder

	if m.mode == modeRegister {
		b.WriteString("Create an account\n\n")
	} else {
		b.WriteString("Sign in\n\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString("Email\n" + m.email.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n\n")

	label := "tab switch field • enter submit • esc cancel"
	if m.isSaving {
		label = "Signing in..."
		if m.mode == modeRegister {
			label = "Creating account..."
		}
	}
	b.WriteString(helpStyle.Render(label))
	return b.String()
}
