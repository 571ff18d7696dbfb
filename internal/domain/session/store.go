// internal/domain/session/store.go
package session

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the server-side half of a session. The signed token is
// stateless; the store record is what logout revokes.
type TokenStore interface {
	Put(ctx context.Context, sessionID, username string, ttl time.Duration) error
	// Get returns the username bound to the session, or ok=false when the
	// session has been revoked or has expired.
	Get(ctx context.Context, sessionID string) (username string, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client) TokenStore {
	return &redisStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *redisStore) Put(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	err := s.client.Set(ctx, sessionKey(sessionID), username, ttl).Err()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to store session")
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	username, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, pkgerrors.Wrap(err, "failed to load session")
	}
	return username, true, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, sessionKey(sessionID)).Err()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to delete session")
	}
	return nil
}
