package ui

import (
	"github.com/google/uuid"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
)

// Each completion message carries the id of the request that produced it so
// receivers can drop stale responses.

type postsFetchedMsg struct {
	id    uuid.UUID
	posts []models.Post
	err   error
}

type userResolvedMsg struct {
	id   uuid.UUID
	user models.User
	err  error
}

type postFetchedMsg struct {
	id   uuid.UUID
	post models.Post
	err  error
}

type postCreatedMsg struct {
	id   uuid.UUID
	post models.Post
	err  error
}

type postUpdatedMsg struct {
	id   uuid.UUID
	post models.Post
	err  error
}

type ratingSavedMsg struct {
	id  uuid.UUID
	err error
}

type authResultMsg struct {
	id   uuid.UUID
	user models.User
	err  error
}

type loggedOutMsg struct {
	err error
}
