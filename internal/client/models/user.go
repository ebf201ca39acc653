// Package models defines the wire-level entities exchanged with the
// rate-my-setup backend: users, posts and ratings. The structures mirror the
// JSON the server produces; the client never invents fields of its own.
package models

// User is the authenticated account as reported by the server. A zero User
// (empty email) means "not logged in". The email address is the identity key
// everywhere in the client.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoggedIn reports whether u represents an authenticated user.
func (u User) LoggedIn() bool {
	return u.Email != ""
}

// Owns reports whether u is the owner of p. A logged-out user owns nothing,
// regardless of any email match against the zero value.
func (u User) Owns(p Post) bool {
	return u.LoggedIn() && p.UserEmail == u.Email
}

// Credentials is the payload for the login and register endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
