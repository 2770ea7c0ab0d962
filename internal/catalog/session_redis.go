// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tankobon/internal/platform/constants"
)

// RedisSessionStore keeps view sessions as JSON values with a Redis TTL, so
// several API replicas can serve the same visitor.
type RedisSessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionStore creates a Redis-backed [SessionStore].
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, now: time.Now}
}

// WithClock replaces the time source used to derive key TTLs.
func (store *RedisSessionStore) WithClock(now func() time.Time) *RedisSessionStore {
	store.now = now
	return store
}

func sessionKey(id string) string {
	return constants.RedisPrefixViewSession + id
}

/*
Get loads a session.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - Session: The stored view
  - error: ErrSessionNotFound when absent or expired, connectivity errors otherwise
*/
func (store *RedisSessionStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := store.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("redis_view_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("redis_view_session_decode_failed: %w", err)
	}
	return session, nil
}

/*
Save stores a session until its ExpiresAt.

Parameters:
  - ctx: context.Context
  - session: Session

Returns:
  - error: ErrSessionNotFound if the session already expired, storage failures otherwise
*/
func (store *RedisSessionStore) Save(ctx context.Context, session Session) error {
	ttl := session.ExpiresAt.Sub(store.now())
	if ttl <= 0 {
		return ErrSessionNotFound
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_view_session_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, sessionKey(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_view_session_set_failed: %w", err)
	}
	return nil
}

// Delete removes a session.
func (store *RedisSessionStore) Delete(ctx context.Context, id string) error {
	removed, err := store.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis_view_session_delete_failed: %w", err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}
