// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xerrors "llamacrm-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// Manager tracks issued dashboard sessions in Redis, keyed by jti. A
// token whose session is gone (logged out or expired) is rejected even
// if its signature is still valid.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// CreateSession stores a new session in Redis with a TTL matching the
// token expiry.
func (m *Manager) CreateSession(ctx context.Context, s *SessionData) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.client.Set(ctx, m.sessionKey(s.JTI), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

// GetSession retrieves a session by jti.
func (m *Manager) GetSession(ctx context.Context, jti string) (*SessionData, error) {
	data, err := m.client.Get(ctx, m.sessionKey(jti)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var s SessionData
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// DeleteSession drops a session, invalidating its token immediately.
func (m *Manager) DeleteSession(ctx context.Context, jti string) error {
	return m.client.Del(ctx, m.sessionKey(jti)).Err()
}

func (m *Manager) sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}
