package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogspace/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, sessionID string, userID uuid.UUID, email string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (userID uuid.UUID, email string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore handles storage and retrieval of sessions in Redis. A
// session that is absent from Redis is invalid regardless of the JWT's
// own expiry, which is what makes logout effective.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession stores a session in Redis with TTL.
func (s *SessionStore) StoreSession(ctx context.Context, sessionID string, userID uuid.UUID, email string, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID.String(),
		"email":   email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	key := sessionKeyPrefix + sessionID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetSession retrieves session data from Redis.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (userID uuid.UUID, email string, err error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return uuid.Nil, "", fmt.Errorf("session not found")
	}

	var sessionData map[string]interface{}
	if err := json.Unmarshal(data, &sessionData); err != nil {
		return uuid.Nil, "", fmt.Errorf("unmarshal session data: %w", err)
	}

	rawID, ok := sessionData["user_id"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid user_id in session data")
	}
	userID, err = uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid user_id in session data: %w", err)
	}

	email, ok = sessionData["email"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid email in session data")
	}

	return userID, email, nil
}

// DeleteSession removes a session from Redis.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.cache.Delete(ctx, key)
}
