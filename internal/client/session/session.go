// Package session owns the authentication lifecycle on behalf of the UI:
// logging in, registering, resolving the user from a persisted token at
// startup, and logging out. Views receive the resulting User value and never
// touch the token directly.
package session

import (
	"context"
	"errors"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

var ErrMissingCredentials = errors.New("email and password are required")

// API is the slice of the API client the session needs.
type API interface {
	LoginUser(ctx context.Context, creds models.Credentials) (models.User, error)
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	FetchUserFromToken(ctx context.Context) (models.User, error)
	LogoutUser(ctx context.Context) error
	Token() string
}

type Service struct {
	api API
	log logging.Logger
}

func NewService(api API, log logging.Logger) *Service {
	return &Service{api: api, log: log}
}

// HasToken reports whether a token is present, persisted or fresh. It says
// nothing about validity; the server judges that on each request.
func (s *Service) HasToken() bool {
	return s.api.Token() != ""
}

// Login authenticates with the server. The token ends up stored by the API
// client; the returned user is what views render.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	user, err := s.api.LoginUser(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return models.User{}, err
	}
	s.log.Info(ctx, "logged in", "email", user.Email)
	return user, nil
}

// Register creates an account and, on success, behaves like Login.
func (s *Service) Register(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	user, err := s.api.RegisterUser(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return models.User{}, err
	}
	s.log.Info(ctx, "registered", "email", user.Email)
	return user, nil
}

// Resolve turns a persisted token into the current user. Callers should only
// invoke it when HasToken reports true.
func (s *Service) Resolve(ctx context.Context) (models.User, error) {
	return s.api.FetchUserFromToken(ctx)
}

// Logout drops the session locally. Safe to call when already logged out.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.LogoutUser(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}
