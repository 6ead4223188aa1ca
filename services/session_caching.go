package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resourceshub/model"

	"github.com/redis/go-redis/v9"
)

const userSessionsTTL = 5 * time.Minute

// SessionCache keeps each user's active session list in Redis so the
// sessions endpoint does not hit MongoDB on every call. Writers must call
// Invalidate after changing a user's sessions.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type sessionCacheEntry struct {
	Sessions  []*model.Session `json:"sessions"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client, ttl: userSessionsTTL}
}

func userSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}

// CacheUserSessions stores the active session list for a user.
func (sc *SessionCache) CacheUserSessions(ctx context.Context, userID string, sessions []*model.Session) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	data, err := json.Marshal(sessionCacheEntry{Sessions: sessions, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := sc.client.Set(ctx, userSessionsKey(userID), data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user sessions: %w", err)
	}
	return nil
}

// GetUserSessions returns the cached list; ok is false on a miss.
func (sc *SessionCache) GetUserSessions(ctx context.Context, userID string) ([]*model.Session, bool, error) {
	data, err := sc.client.Get(ctx, userSessionsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user sessions from cache: %w", err)
	}

	var entry sessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	// Drop sessions that expired while cached.
	now := time.Now()
	live := make([]*model.Session, 0, len(entry.Sessions))
	for _, s := range entry.Sessions {
		if s.IsActive && s.ExpiresAt.After(now) {
			live = append(live, s)
		}
	}
	return live, true, nil
}

func (sc *SessionCache) Invalidate(ctx context.Context, userID string) error {
	if err := sc.client.Del(ctx, userSessionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate session cache: %w", err)
	}
	return nil
}
