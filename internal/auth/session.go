package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRecord tracks the liveness metadata for a logged-in user.
type SessionRecord struct {
	Email        string    `json:"email"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
}

// SessionStore is the server-side source of truth for "is this token's
// holder still logged in". A valid token alone never authorizes a request;
// deleting the session revokes access immediately regardless of token
// expiry. Exactly one session exists per user: last login wins.
type SessionStore interface {
	// Open inserts or replaces the session entry for userID.
	Open(ctx context.Context, userID int64, email string, now time.Time) error
	// IsLive reports whether a live session exists for userID. Stores with a
	// configured idle timeout lazily evict entries whose last activity is
	// older than the timeout; there is no background sweep.
	IsLive(ctx context.Context, userID int64, now time.Time) (bool, error)
	// Touch refreshes the last-activity timestamp for userID.
	Touch(ctx context.Context, userID int64, now time.Time) error
	// Close removes the entry. Closing an absent session is a no-op.
	Close(ctx context.Context, userID int64) error
}

// MemorySessionStore keeps sessions in a process-wide map guarded by a
// single mutex. Suitable for one-process deployments; swap in the Redis
// store when sessions must be shared.
type MemorySessionStore struct {
	mu          sync.Mutex
	idleTimeout time.Duration
	sessions    map[int64]SessionRecord
}

// NewMemorySessionStore constructs a MemorySessionStore. An idleTimeout of
// zero disables idle expiry: sessions then live until explicit logout.
func NewMemorySessionStore(idleTimeout time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		idleTimeout: idleTimeout,
		sessions:    make(map[int64]SessionRecord),
	}
}

// Open inserts or replaces the session entry for userID.
func (s *MemorySessionStore) Open(ctx context.Context, userID int64, email string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = SessionRecord{Email: email, LoginTime: now, LastActivity: now}
	return nil
}

// IsLive reports whether a live session exists for userID.
func (s *MemorySessionStore) IsLive(ctx context.Context, userID int64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessions[userID]
	if !ok {
		return false, nil
	}
	if s.idleTimeout > 0 && now.Sub(record.LastActivity) > s.idleTimeout {
		delete(s.sessions, userID)
		return false, nil
	}
	return true, nil
}

// Touch refreshes the last-activity timestamp for userID.
func (s *MemorySessionStore) Touch(ctx context.Context, userID int64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	record.LastActivity = now
	s.sessions[userID] = record
	return nil
}

// Close removes the entry for userID.
func (s *MemorySessionStore) Close(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// RedisSessionStore keeps sessions in Redis so multiple gateway processes
// share one registry. The idle timeout maps onto the key TTL, refreshed by
// Touch.
type RedisSessionStore struct {
	client      *redis.Client
	idleTimeout time.Duration
}

// NewRedisSessionStore constructs a RedisSessionStore.
func NewRedisSessionStore(client *redis.Client, idleTimeout time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, idleTimeout: idleTimeout}
}

func (s *RedisSessionStore) key(userID int64) string {
	return "session:" + strconv.FormatInt(userID, 10)
}

// Open inserts or replaces the session entry for userID.
func (s *RedisSessionStore) Open(ctx context.Context, userID int64, email string, now time.Time) error {
	payload, err := json.Marshal(SessionRecord{Email: email, LoginTime: now, LastActivity: now})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), payload, s.idleTimeout).Err()
}

// IsLive reports whether a live session exists for userID.
func (s *RedisSessionStore) IsLive(ctx context.Context, userID int64, now time.Time) (bool, error) {
	err := s.client.Get(ctx, s.key(userID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Touch refreshes the last-activity timestamp and resets the key TTL.
func (s *RedisSessionStore) Touch(ctx context.Context, userID int64, now time.Time) error {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	var record SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return err
	}
	record.LastActivity = now
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), payload, s.idleTimeout).Err()
}

// Close removes the entry for userID.
func (s *RedisSessionStore) Close(ctx context.Context, userID int64) error {
	err := s.client.Del(ctx, s.key(userID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

var (
	_ SessionStore = (*MemorySessionStore)(nil)
	_ SessionStore = (*RedisSessionStore)(nil)
)
