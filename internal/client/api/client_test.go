package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/models"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/storage"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/tokenstore"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), srv.URL, nil, logging.Nop())
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T) *tokenstore.Store {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return tokenstore.New(storage.NewSQLiteKV(db))
}

func TestRequest_AttachesHeaders(t *testing.T) {
	ctx := context.Background()
	var gotAuth, gotContentType string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{"posts": []models.Post{}})
	}))

	// Without a token there is no Authorization header at all.
	_, err := c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	require.NoError(t, c.SetToken(ctx, "tok-123"))
	_, err = c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestListPosts_Success(t *testing.T) {
	posts := []models.Post{
		{ID: 2, Caption: "newer", UserEmail: "a@b.com", Rating: 7.5},
		{ID: 1, Caption: "older", UserEmail: "c@d.com"},
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"posts": posts})
	}))

	got, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, posts, got)
}

func TestCreatePost_SendsBodyAndDecodes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)

		var in models.PostInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hi", in.Caption)
		assert.Equal(t, "http://img", in.ImageURL)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"post": models.Post{ID: 7, Caption: "hi", ImageURL: "http://img", UserEmail: "a@b.com"},
		})
	}))

	post, err := c.CreatePost(context.Background(), models.PostInput{Caption: "hi", ImageURL: "http://img"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
	assert.Equal(t, "a@b.com", post.UserEmail)
}

func TestUpdatePost_PatchesByID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/posts/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"post": models.Post{ID: 42, Caption: "edited", ImageURL: "http://img"},
		})
	}))

	post, err := c.UpdatePost(context.Background(), 42, models.PostInput{Caption: "edited", ImageURL: "http://img"})
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Caption)
}

func TestCreateRatingForPost(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts/9/ratings", r.URL.Path)

		var in struct {
			Rating int `json:"rating"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 8, in.Rating)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"rating": models.Rating{ID: 1, PostID: 9, Rating: 8},
		})
	}))

	rating, err := c.CreateRatingForPost(context.Background(), 9, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(9), rating.PostID)
}

func TestRequest_ServerErrorFlatMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"message": "boom"})
	}))

	_, err := c.ListPosts(context.Background())
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestRequest_ServerErrorNestedMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "caption is required"},
		})
	}))

	_, err := c.CreatePost(context.Background(), models.PostInput{})
	require.Error(t, err)
	assert.Equal(t, "caption is required", err.Error())
}

func TestRequest_ServerErrorUnstructuredBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := c.ListPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRequest_UnauthorizedSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "token rejected"})
	}))

	_, err := c.FetchUserFromToken(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "token rejected", err.Error())
}

func TestRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing is listening anymore

	c, err := NewClient(context.Background(), url, nil, logging.Nop())
	require.NoError(t, err)

	_, err = c.ListPosts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestRequest_MissingExpectedField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
	}))

	_, err := c.ListPosts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestRequest_MalformedJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))

	_, err := c.ListPosts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestTokenLifecycle_PersistsAcrossClients(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	c1, err := NewClient(ctx, "http://localhost:3001", store, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, c1.SetToken(ctx, "durable"))
	assert.Equal(t, "durable", c1.Token())

	// Simulated reload: a second client over the same store starts
	// authenticated.
	c2, err := NewClient(ctx, "http://localhost:3001", store, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "durable", c2.Token())
}

func TestLogoutUser_ClearsEverythingAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	c, err := NewClient(ctx, "http://localhost:3001", store, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, c.SetToken(ctx, "tok"))

	require.NoError(t, c.LogoutUser(ctx))
	assert.Empty(t, c.Token())

	persisted, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// Logging out while logged out stays a no-op.
	require.NoError(t, c.LogoutUser(ctx))
	assert.Empty(t, c.Token())
}

func TestLoginUser_StoresTokenAndReturnsUser(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.com", creds.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"user":  models.User{Email: "a@b.com"},
			"token": "fresh-token",
		})
	}))

	user, err := c.LoginUser(ctx, models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "fresh-token", c.Token())
}

func TestLoginUser_TokenOnlyResponseResolvesUser(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"token": "only-token"})
		case "/auth/me":
			assert.Equal(t, "Bearer only-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"user": models.User{Email: "me@b.com"}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	user, err := c.LoginUser(ctx, models.Credentials{Email: "me@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "me@b.com", user.Email)
}

func TestLoginUser_MissingTokenIsMalformed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": models.User{Email: "a@b.com"}})
	}))

	_, err := c.LoginUser(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Empty(t, c.Token())
}
