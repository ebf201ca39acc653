package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
)

// newPostModel is the creation form: caption + image URL.
type newPostModel struct {
	api API

	caption  textinput.Model
	imageURL textinput.Model
	focus    int

	isSaving bool
	err      string
	saveID   uuid.UUID
}

func newNewPostModel(api API) newPostModel {
	caption := textinput.New()
	caption.Prompt = "> "
	caption.Placeholder = "A cool caption here"
	caption.CharLimit = 280
	caption.Focus()

	imageURL := textinput.New()
	imageURL.Prompt = "> "
	imageURL.Placeholder = "The image URL for your workstation"

	return newPostModel{api: api, caption: caption, imageURL: imageURL}
}

func (m *newPostModel) setFocus(focus int) {
	m.focus = focus
	if focus == 0 {
		m.caption.Focus()
		m.imageURL.Blur()
	} else {
		m.caption.Blur()
		m.imageURL.Focus()
	}
}

func (m *newPostModel) reset() {
	m.caption.SetValue("")
	m.imageURL.SetValue("")
	m.err = ""
	m.setFocus(0)
}

func (m newPostModel) update(msg tea.Msg) (newPostModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postCreatedMsg:
		if msg.id != m.saveID {
			return m, nil
		}
		m.isSaving = false
		if msg.err != nil {
			// Form contents are preserved for retry.
			m.err = msg.err.Error()
			return m, nil
		}
		m.reset()
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
			m.saveID = uuid.New()
			m.isSaving = true
			in := models.PostInput{Caption: m.caption.Value(), ImageURL: m.imageURL.Value()}
			return m, createPostCmd(m.api, in, m.saveID)

		default:
			var cmd tea.Cmd
			if m.focus == 0 {
				m.caption, cmd = m.caption.Update(msg)
			} else {
				m.imageURL, cmd = m.imageURL.Update(msg)
			}
			return m, cmd
		}
	}

	return m, nil
}

func (m newPostModel) view(loggedIn bool) string {
	if !loggedIn {
		return panelStyle.Render("Not allowed\nSign in to share your setup.") +
			"\n\n" + helpStyle.Render("esc back")
	}

	var b strings.Builder
	b.WriteString("Create a new post\n\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString("Caption\n" + m.caption.View() + "\n\n")
	b.WriteString("Image URL\n" + m.imageURL.View() + "\n\n")

	label := "tab switch field • enter submit • esc cancel"
	if m.isSaving {
		label = "Saving..."
	}
	b.WriteString(helpStyle.Render(label))
	return b.String()
}
