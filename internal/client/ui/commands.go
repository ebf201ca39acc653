package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
)

// Commands use a background context: per-request timeouts live in the API
// client's transport, and an abandoned request is handled by discarding its
// completion message rather than by cancellation.

func fetchPostsCmd(api API, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		posts, err := api.ListPosts(context.Background())
		return postsFetchedMsg{id: id, posts: posts, err: err}
	}
}

func resolveUserCmd(auth Auth, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		user, err := auth.Resolve(context.Background())
		return userResolvedMsg{id: id, user: user, err: err}
	}
}

func fetchPostCmd(api API, postID int64, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		post, err := api.FetchPostByID(context.Background(), postID)
		return postFetchedMsg{id: id, post: post, err: err}
	}
}

func createPostCmd(api API, in models.PostInput, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		post, err := api.CreatePost(context.Background(), in)
		return postCreatedMsg{id: id, post: post, err: err}
	}
}

func updatePostCmd(api API, postID int64, in models.PostInput, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		post, err := api.UpdatePost(context.Background(), postID, in)
		return postUpdatedMsg{id: id, post: post, err: err}
	}
}

func saveRatingCmd(api API, postID int64, rating int, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		_, err := api.CreateRatingForPost(context.Background(), postID, rating)
		return ratingSavedMsg{id: id, err: err}
	}
}

func submitAuthCmd(auth Auth, mode authMode, email, password string, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		var (
			user models.User
			err  error
		)
		if mode == modeRegister {
			user, err = auth.Register(context.Background(), email, password)
		} else {
			user, err = auth.Login(context.Background(), email, password)
		}
		return authResultMsg{id: id, user: user, err: err}
	}
}

func logoutCmd(auth Auth) tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(context.Background())}
	}
}
