package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
)

// detailModel is the single-post view. The initial fetch, caption saving and
// rating saving each track their own in-flight flag and request id.
type detailModel struct {
	api    API
	user   models.User
	postID int64

	post        *models.Post
	caption     textinput.Model
	ratingInput textinput.Model

	isFetching     bool
	isUpdating     bool
	isSavingRating bool
	err            string

	fetchID  uuid.UUID
	updateID uuid.UUID
	ratingID uuid.UUID
}

func newDetailModel(api API, user models.User, postID int64) (detailModel, tea.Cmd) {
	caption := textinput.New()
	caption.Prompt = "> "
	caption.CharLimit = 280

	rating := textinput.New()
	rating.Prompt = "> "
	rating.Placeholder = "0-10"
	rating.CharLimit = 2

	m := detailModel{
		api:         api,
		user:        user,
		postID:      postID,
		caption:     caption,
		ratingInput: rating,
		isFetching:  true,
		fetchID:     uuid.New(),
	}
	return m, fetchPostCmd(api, postID, m.fetchID)
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postFetchedMsg:
		if msg.id != m.fetchID {
			return m, nil
		}
		m.isFetching = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		post := msg.post
		m.post = &post
		m.err = ""
		// Seed the editable caption from the fetched post.
		m.caption.SetValue(post.Caption)
		if m.user.Owns(post) {
			m.caption.Focus()
		} else if m.user.LoggedIn() {
			m.ratingInput.Focus()
		}
		return m, nil

	case postUpdatedMsg:
		if msg.id != m.updateID {
			return m, nil
		}
		m.isUpdating = false
		if msg.err != nil {
			// The typed caption is kept for retry.
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		if m.post != nil {
			m.post.Caption = msg.post.Caption
			m.caption.SetValue(msg.post.Caption)
		}
		return m, nil

	case ratingSavedMsg:
		if msg.id != m.ratingID {
			return m, nil
		}
		m.isSavingRating = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.ratingInput.SetValue("")
		// The aggregate is server-owned: re-fetch the post rather than
		// guessing the new value locally.
		m.fetchID = uuid.New()
		m.isFetching = true
		return m, fetchPostCmd(m.api, m.postID, m.fetchID)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.post == nil {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if m.user.Owns(*m.post) {
			if m.isUpdating {
				return m, nil
			}
			m.updateID = uuid.New()
			m.isUpdating = true
			// The form does not allow editing the image URL; it is carried
			// through unchanged.
			in := models.PostInput{Caption: m.caption.Value(), ImageURL: m.post.ImageURL}
			return m, updatePostCmd(m.api, m.postID, in, m.updateID)
		}

		if !m.user.LoggedIn() || m.isSavingRating {
			return m, nil
		}
		value, err := strconv.Atoi(strings.TrimSpace(m.ratingInput.Value()))
		if err != nil || value < 0 || value > 10 {
			m.err = "rating must be a whole number between 0 and 10"
			return m, nil
		}
		m.ratingID = uuid.New()
		m.isSavingRating = true
		return m, saveRatingCmd(m.api, m.postID, value, m.ratingID)
	}

	var cmd tea.Cmd
	switch {
	case m.user.Owns(*m.post):
		m.caption, cmd = m.caption.Update(msg)
	case m.user.LoggedIn():
		m.ratingInput, cmd = m.ratingInput.Update(msg)
	}
	return m, cmd
}

func (m detailModel) view(spin spinner.Model) string {
	// Nothing is rendered until the first fetch completes; no stale content.
	if m.post == nil {
		if m.isFetching {
			return spin.View() + " Loading...\n"
		}
		if m.err != "" {
			return errorStyle.Render("Error: "+m.err) + "\n"
		}
		return ""
	}

	var b strings.Builder

	b.WriteString(m.post.Caption + "\n")
	b.WriteString(starStyle.Render(renderStars(m.post.Rating)) + " " + formatRating(m.post.Rating) + "\n")
	b.WriteString(metaStyle.Render(m.post.ImageURL) + "\n")
	b.WriteString(metaStyle.Render(strings.TrimSpace(formatDate(m.post.CreatedAt)+"  "+m.post.UserEmail)) + "\n\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render("Error: "+m.err) + "\n\n")
	}

	switch {
	case m.user.Owns(*m.post):
		label := "Save with enter"
		if m.isUpdating {
			label = "Saving..."
		}
		b.WriteString(panelStyle.Render("Edit your post\n" + m.caption.View() + "\n" + helpStyle.Render(label)))

	default:
		label := "Save with enter"
		switch {
		case m.isSavingRating:
			label = "Saving..."
		case !m.user.LoggedIn():
			label = "Sign in to rate this setup"
		}
		b.WriteString(panelStyle.Render("Rate this setup\n" + m.ratingInput.View() + "\n" + helpStyle.Render(label)))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc back"))
	return b.String()
}
