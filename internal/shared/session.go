package shared

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session holds the authenticated state behind one bearer token. It is an
// explicit value passed through the request context; there is no ambient
// global holding the current user.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SessionManager issues and resolves bearer tokens backed by Redis.
type SessionManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{client: client, ttl: ttl}
}

// Create mints a fresh token for the user and stores the session under it.
func (sm *SessionManager) Create(ctx context.Context, userID int64, name string, roles []string) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("shared: generate token: %w", err)
	}
	sess := &Session{
		Token:     token,
		UserID:    userID,
		Name:      name,
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("shared: marshal session: %w", err)
	}
	if err := sm.client.Set(ctx, sm.redisKey(token), payload, sm.ttl).Err(); err != nil {
		return nil, fmt.Errorf("shared: store session: %w", err)
	}
	return sess, nil
}

// Load resolves a bearer token into a Session. Unknown or expired tokens
// yield ErrUnauthorized.
func (sm *SessionManager) Load(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	payload, err := sm.client.Get(ctx, sm.redisKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("shared: load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("shared: decode session: %w", err)
	}
	sess.Token = token
	return &sess, nil
}

// Revoke deletes the session behind a token. Revoking an unknown token is
// not an error.
func (sm *SessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := sm.client.Del(ctx, sm.redisKey(token)).Err(); err != nil {
		return fmt.Errorf("shared: revoke session: %w", err)
	}
	return nil
}

func (sm *SessionManager) redisKey(token string) string {
	return "session:" + token
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
