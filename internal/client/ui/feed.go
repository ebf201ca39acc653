package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.posts)-1 {
			a.cursor++
		}

	case "enter":
		if len(a.posts) == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.detail, cmd = newDetailModel(a.api, a.user, a.posts[a.cursor].ID)
		a.screen = screenDetail
		return a, tea.Batch(a.spin.Tick, cmd)

	case "n":
		a.screen = screenNewPost
		return a, nil

	case "i":
		if !a.user.LoggedIn() {
			a.authUI = newAuthModel(a.auth, modeLogin)
			a.screen = screenAuth
		}

	case "r":
		if !a.user.LoggedIn() {
			a.authUI = newAuthModel(a.auth, modeRegister)
			a.screen = screenAuth
		}

	case "o":
		if a.user.LoggedIn() {
			return a, logoutCmd(a.auth)
		}

	case "g":
		return a, a.startFetchPosts()
	}

	return a, nil
}

func (a App) navbarView() string {
	left := titleStyle.Render("rate my setup")

	status := "signed out"
	if a.user.LoggedIn() {
		status = a.user.Email
	}
	right := metaStyle.Render(status)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return navbarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (a App) feedView() string {
	var b strings.Builder

	if a.err != "" {
		b.WriteString(errorStyle.Render("Error: " + a.err))
		b.WriteString("\n\n")
	}

	switch {
	case a.isFetching:
		b.WriteString(a.spin.View())
		b.WriteString(" Loading posts...\n")

	case len(a.posts) == 0:
		b.WriteString(metaStyle.Render("No posts yet."))
		b.WriteString("\n")

	default:
		for i, post := range a.posts {
			marker := "  "
			if i == a.cursor {
				marker = cursorStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s\n", marker, post.Caption))
			b.WriteString(fmt.Sprintf("   %s %s\n", starStyle.Render(renderStars(post.Rating)), formatRating(post.Rating)))
			b.WriteString("   " + metaStyle.Render(strings.TrimSpace(formatDate(post.CreatedAt)+"  "+post.UserEmail)) + "\n\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.feedHelp()))
	return b.String()
}

func (a App) feedHelp() string {
	if a.user.LoggedIn() {
		return "↑/↓ move • enter open • n new post • g refresh • o sign out • q quit"
	}
	return "↑/↓ move • enter open • i sign in • r register • g refresh • q quit"
}
