package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

// API is the slice of the API client the post views call.
type API interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (models.Post, error)
	FetchPostByID(ctx context.Context, postID int64) (models.Post, error)
	UpdatePost(ctx context.Context, postID int64, in models.PostInput) (models.Post, error)
	CreateRatingForPost(ctx context.Context, postID int64, rating int) (models.Rating, error)
}

// Auth is the session surface the navbar and auth screen call.
type Auth interface {
	HasToken() bool
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password string) (models.User, error)
	Resolve(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
}

type screen int

const (
	screenFeed screen = iota
	screenDetail
	screenNewPost
	screenAuth
)

// App is the root model. It owns the shared session user and the in-memory
// post collection; sub-screens receive mutations through it (addPost,
// applyPatch) rather than holding copies of the list.
type App struct {
	api  API
	auth Auth
	log  logging.Logger

	width  int
	height int
	screen screen

	user       models.User
	posts      []models.Post
	err        string
	isFetching bool
	cursor     int
	spin       spinner.Model

	fetchID   uuid.UUID
	resolveID uuid.UUID

	detail detailModel
	form   newPostModel
	authUI authModel
}

func NewApp(api API, auth Auth, log logging.Logger) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		api:    api,
		auth:   auth,
		log:    log,
		spin:   sp,
		form:   newNewPostModel(api),
		authUI: newAuthModel(auth, modeLogin),
	}

	// The initial posts fetch always runs; the user is resolved only when a
	// persisted token exists. A resolve failure fills the shared error slot
	// but never blocks the feed.
	a.fetchID = uuid.New()
	a.isFetching = true
	if auth.HasToken() {
		a.resolveID = uuid.New()
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spin.Tick, fetchPostsCmd(a.api, a.fetchID)}
	if a.resolveID != uuid.Nil {
		cmds = append(cmds, resolveUserCmd(a.auth, a.resolveID))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case postsFetchedMsg:
		if msg.id != a.fetchID {
			return a, nil // stale fetch, a newer one is in flight
		}
		a.isFetching = false
		if msg.err != nil {
			a.err = msg.err.Error()
			return a, nil
		}
		a.posts = msg.posts
		if a.cursor >= len(a.posts) {
			a.cursor = 0
		}
		return a, nil

	case userResolvedMsg:
		if msg.id != a.resolveID {
			return a, nil
		}
		if msg.err != nil {
			a.err = msg.err.Error()
			return a, nil
		}
		a.user = msg.user
		return a, nil

	case loggedOutMsg:
		if msg.err != nil {
			a.err = msg.err.Error()
			return a, nil
		}
		a.user = models.User{}
		a.err = ""
		return a, a.startFetchPosts()

	case authResultMsg:
		accepted := msg.id == a.authUI.submitID
		var cmd tea.Cmd
		a.authUI, cmd = a.authUI.update(msg)
		if accepted && msg.err == nil {
			a.user = msg.user
			a.err = ""
			a.screen = screenFeed
		}
		return a, cmd

	case postCreatedMsg:
		accepted := msg.id == a.form.saveID
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		if accepted && msg.err == nil {
			a.addPost(msg.post)
			a.screen = screenFeed
			a.cursor = 0
		}
		return a, cmd

	case postFetchedMsg:
		accepted := msg.id == a.detail.fetchID
		var cmd tea.Cmd
		a.detail, cmd = a.detail.update(msg)
		if accepted && msg.err == nil {
			// Keep the feed's aggregate in sync with the re-fetched post;
			// the value is the server's, never computed here.
			rating := msg.post.Rating
			a.applyPatch(msg.post.ID, models.PostPatch{Rating: &rating})
		}
		return a, cmd

	case postUpdatedMsg:
		accepted := msg.id == a.detail.updateID
		var cmd tea.Cmd
		a.detail, cmd = a.detail.update(msg)
		if accepted && msg.err == nil {
			caption := msg.post.Caption
			a.applyPatch(msg.post.ID, models.PostPatch{Caption: &caption})
		}
		return a, cmd

	case ratingSavedMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.screen {
	case screenFeed:
		return a.handleFeedKey(msg)

	case screenDetail:
		if msg.Type == tea.KeyEsc {
			a.screen = screenFeed
			return a, nil
		}
		var cmd tea.Cmd
		a.detail, cmd = a.detail.update(msg)
		return a, cmd

	case screenNewPost:
		if msg.Type == tea.KeyEsc {
			a.screen = screenFeed
			return a, nil
		}
		if !a.user.LoggedIn() {
			// "Not allowed" placeholder: nothing to type into.
			return a, nil
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, cmd

	case screenAuth:
		if msg.Type == tea.KeyEsc {
			a.screen = screenFeed
			return a, nil
		}
		var cmd tea.Cmd
		a.authUI, cmd = a.authUI.update(msg)
		return a, cmd
	}

	return a, nil
}

// addPost prepends a server-returned post to the in-memory collection.
func (a *App) addPost(post models.Post) {
	a.posts = append([]models.Post{post}, a.posts...)
}

// applyPatch shallow-merges the patch into the post with a matching id,
// leaving order and all other posts untouched. No-op when nothing matches.
func (a *App) applyPatch(postID int64, patch models.PostPatch) {
	for i := range a.posts {
		if a.posts[i].ID == postID {
			patch.Apply(&a.posts[i])
			return
		}
	}
}

// startFetchPosts begins a fresh posts fetch, superseding any in-flight one.
func (a *App) startFetchPosts() tea.Cmd {
	a.fetchID = uuid.New()
	a.isFetching = true
	return tea.Batch(a.spin.Tick, fetchPostsCmd(a.api, a.fetchID))
}

func (a App) View() string {
	var body string
	switch a.screen {
	case screenFeed:
		body = a.feedView()
	case screenDetail:
		body = a.detail.view(a.spin)
	case screenNewPost:
		body = a.form.view(a.user.LoggedIn())
	case screenAuth:
		body = a.authUI.view()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.navbarView(), body)
}
