// Package tokenstore persists the session token: a single opaque string under
// one well-known key, durable across restarts. No expiry logic lives here;
// token validity is judged entirely by the server on each request.
package tokenstore

import (
	"context"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/storage"
)

// Key is the well-known storage key the token lives under.
const Key = "rate_my_setup_token"

// Store wraps the durable KV store for the one token key.
type Store struct {
	kv storage.KV
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Get returns the persisted token, or "" when none is stored.
func (s *Store) Get(ctx context.Context) (string, error) {
	v, err := s.kv.Get(ctx, Key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Set overwrites the persisted token. An empty token removes the entry,
// mirroring Clear.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.kv.Set(ctx, Key, []byte(token))
}

// Clear removes the persisted entry. Clearing an absent entry is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, Key)
}
