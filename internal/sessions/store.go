package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	redisclient "github.com/HUNTSTAR747/referred-space-server/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

const sidBytes = 24

// CreatorSession is the per-browser state written by the OAuth callback and
// read by the success page.
type CreatorSession struct {
	CreatorID       uuid.UUID `json:"creator_id"`
	InstagramHandle string    `json:"instagram_handle"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	BrowserSessionKey(sid string) string
}

// Store keeps browser sessions in Redis so they survive restarts and are
// shared across instances.
type Store struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewStore constructs a session store backed by Redis.
func NewStore(client *redisclient.Client, cfg config.SessionConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// Put writes the session under the provided sid, refreshing its TTL.
func (s *Store) Put(ctx context.Context, sid string, sess CreatorSession) error {
	if strings.TrimSpace(sid) == "" {
		return fmt.Errorf("session id is required")
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.store.Set(ctx, s.keyer.BrowserSessionKey(sid), payload, s.ttl)
}

// Get loads the session for sid. A missing session returns (nil, nil).
func (s *Store) Get(ctx context.Context, sid string) (*CreatorSession, error) {
	if strings.TrimSpace(sid) == "" {
		return nil, nil
	}
	raw, err := s.store.Get(ctx, s.keyer.BrowserSessionKey(sid))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var sess CreatorSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session for sid.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return nil
	}
	return s.store.Del(ctx, s.keyer.BrowserSessionKey(sid))
}

// NewSID returns a random session identifier for the browser cookie.
func NewSID() (string, error) {
	bytes := make([]byte, sidBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
