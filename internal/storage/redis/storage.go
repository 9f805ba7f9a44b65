package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/matrixgame/internal/dependencies/clock"
	"github.com/mcoot/matrixgame/internal/model"
	"github.com/mcoot/matrixgame/internal/storage"
)

// SessionStore is a Redis-backed implementation of storage.SessionStore.
// Each session is stored as JSON with a TTL matching its expiry.
type SessionStore struct {
	client *redis.Client
	clock  clock.Clock
}

// New creates a new Redis session store and verifies the connection
func New(cfg Config, clk clock.Clock) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &SessionStore{client: client, clock: clk}, nil
}

// NewWithClient creates a session store with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock) *SessionStore {
	return &SessionStore{client: client, clock: clk}
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	return s.client.Close()
}

var _ storage.SessionStore = (*SessionStore)(nil)

// SaveSession stores the session until its expiry. A session that has
// already expired is not stored.
func (s *SessionStore) SaveSession(ctx context.Context, session *model.Session) error {
	ttl := session.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return s.client.Del(ctx, sessionKey(session.Token)).Err()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
