package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/tokenstore"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

const defaultTimeout = 10 * time.Second

// Client holds the current session token and performs all server calls.
// Methods are safe for concurrent use: UI commands run on their own
// goroutines, so the token is guarded and read once per request.
type Client struct {
	baseURL string
	http    *http.Client
	store   *tokenstore.Store
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient builds a client for the server at baseURL. The persisted token,
// if any, is read synchronously from the store so the first request of the
// session is already authenticated. A nil store keeps the token in memory
// only.
func NewClient(ctx context.Context, baseURL string, store *tokenstore.Store, log logging.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}

	if store != nil {
		token, err := store.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("read persisted token: %w", err)
		}
		c.token = token
	}
	return c, nil
}

// Token returns the current in-memory token, "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken updates the in-memory token and persists it.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Set(ctx, token)
}

// LogoutUser clears the in-memory token and the persisted entry. No server
// call is made; calling it while already logged out is a no-op.
func (c *Client) LogoutUser(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Clear(ctx)
}

// request performs one HTTP call against baseURL/endpoint, sending body (when
// non-nil) as JSON and decoding the response into out (when non-nil). Every
// failure comes back as a normalized error whose Error() string is what the
// UI displays.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out any) error {
	url := c.baseURL + "/" + endpoint

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "api transport failure", "method", method, "endpoint", endpoint, "err", err)
		return &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(data, resp.Status)
		c.log.Error(ctx, "api error response", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "msg", msg)
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return nil
}

// errorMessage digs the display message out of a structured error body.
// The server conventionally nests it as {"error":{"message":...}}; a flat
// {"message":...} is accepted too. Anything else falls back to the HTTP
// status text.
func errorMessage(data []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error.Message != "" {
			return body.Error.Message
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallback
}

// ListPosts fetches all posts, newest first per server ordering.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var out struct {
		Posts *[]models.Post `json:"posts"`
	}
	if err := c.request(ctx, http.MethodGet, "posts", nil, &out); err != nil {
		return nil, err
	}
	if out.Posts == nil {
		return nil, missingField("posts")
	}
	return *out.Posts, nil
}

// CreatePost creates a new post owned by the authenticated user. The returned
// post is the server's version, including the assigned id and owner.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	var out struct {
		Post *models.Post `json:"post"`
	}
	if err := c.request(ctx, http.MethodPost, "posts", in, &out); err != nil {
		return models.Post{}, err
	}
	if out.Post == nil {
		return models.Post{}, missingField("post")
	}
	return *out.Post, nil
}

// FetchPostByID fetches a single post.
func (c *Client) FetchPostByID(ctx context.Context, postID int64) (models.Post, error) {
	var out struct {
		Post *models.Post `json:"post"`
	}
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("posts/%d", postID), nil, &out); err != nil {
		return models.Post{}, err
	}
	if out.Post == nil {
		return models.Post{}, missingField("post")
	}
	return *out.Post, nil
}

// UpdatePost updates the caption of an owned post. The image URL is carried
// through unchanged by callers; ownership is enforced server-side.
func (c *Client) UpdatePost(ctx context.Context, postID int64, in models.PostInput) (models.Post, error) {
	var out struct {
		Post *models.Post `json:"post"`
	}
	if err := c.request(ctx, http.MethodPatch, fmt.Sprintf("posts/%d", postID), in, &out); err != nil {
		return models.Post{}, err
	}
	if out.Post == nil {
		return models.Post{}, missingField("post")
	}
	return *out.Post, nil
}

// CreateRatingForPost submits a 0–10 rating for someone else's post. The
// aggregate on the post is recomputed by the server; callers re-fetch the
// post instead of computing it locally.
func (c *Client) CreateRatingForPost(ctx context.Context, postID int64, rating int) (models.Rating, error) {
	in := struct {
		Rating int `json:"rating"`
	}{Rating: rating}

	var out struct {
		Rating *models.Rating `json:"rating"`
	}
	if err := c.request(ctx, http.MethodPost, fmt.Sprintf("posts/%d/ratings", postID), in, &out); err != nil {
		return models.Rating{}, err
	}
	if out.Rating == nil {
		return models.Rating{}, missingField("rating")
	}
	return *out.Rating, nil
}

// FetchUserFromToken resolves the current session from the stored token.
func (c *Client) FetchUserFromToken(ctx context.Context) (models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.request(ctx, http.MethodGet, "auth/me", nil, &out); err != nil {
		return models.User{}, err
	}
	if out.User == nil {
		return models.User{}, missingField("user")
	}
	return *out.User, nil
}

// LoginUser authenticates and stores the returned token (memory + disk).
func (c *Client) LoginUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	return c.authenticate(ctx, "auth/login", creds)
}

// RegisterUser creates an account; on success it behaves like a login.
func (c *Client) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	return c.authenticate(ctx, "auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, endpoint string, creds models.Credentials) (models.User, error) {
	var out struct {
		User  *models.User `json:"user"`
		Token *string      `json:"token"`
	}
	if err := c.request(ctx, http.MethodPost, endpoint, creds, &out); err != nil {
		return models.User{}, err
	}
	if out.Token == nil || *out.Token == "" {
		return models.User{}, missingField("token")
	}
	if err := c.SetToken(ctx, *out.Token); err != nil {
		return models.User{}, err
	}

	// The login/register response shape is a loose contract; a server that
	// returns only the token still works because the session can be
	// resolved from it.
	if out.User == nil {
		return c.FetchUserFromToken(ctx)
	}
	return *out.User, nil
}
