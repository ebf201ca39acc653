package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

type fakeAPI struct {
	posts []models.Post
	post  models.Post
	err   error

	createdInput models.PostInput
	updatedID    int64
	updatedInput models.PostInput
	ratedID      int64
	ratedValue   int
}

func (f *fakeAPI) ListPosts(ctx context.Context) ([]models.Post, error) {
	return f.posts, f.err
}

func (f *fakeAPI) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	f.createdInput = in
	return f.post, f.err
}

func (f *fakeAPI) FetchPostByID(ctx context.Context, postID int64) (models.Post, error) {
	return f.post, f.err
}

func (f *fakeAPI) UpdatePost(ctx context.Context, postID int64, in models.PostInput) (models.Post, error) {
	f.updatedID = postID
	f.updatedInput = in
	return f.post, f.err
}

func (f *fakeAPI) CreateRatingForPost(ctx context.Context, postID int64, rating int) (models.Rating, error) {
	f.ratedID = postID
	f.ratedValue = rating
	return models.Rating{PostID: postID, Rating: rating}, f.err
}

type fakeAuth struct {
	hasToken bool
	user     models.User
	err      error

	loggedOut bool
}

func (f *fakeAuth) HasToken() bool { return f.hasToken }

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Resolve(ctx context.Context) (models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.loggedOut = true
	return f.err
}

func newTestApp() (App, *fakeAPI, *fakeAuth) {
	api := &fakeAPI{}
	auth := &fakeAuth{}
	return NewApp(api, auth, logging.Nop()), api, auth
}

func applyMsg(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func samplePosts() []models.Post {
	return []models.Post{
		{ID: 2, Caption: "standing desk", ImageURL: "https://img.test/2.jpg", Rating: 7.5, UserEmail: "b@test.dev", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 1, Caption: "first setup", ImageURL: "https://img.test/1.jpg", Rating: 4, UserEmail: "a@test.dev", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
}
