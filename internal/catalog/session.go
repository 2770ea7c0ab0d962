// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
)

// ErrSessionNotFound is returned for unknown or expired view sessions.
var ErrSessionNotFound = apperr.NotFound("View session")

// # View Sessions

// Session is one mounted catalogue view: its state plus the titles the
// visitor hearted and the comment votes cast while browsing. Sessions expire
// and are never persisted beyond their TTL.
type Session struct {
	ID        string              `json:"id"`
	State     ViewState           `json:"state"`
	Favorites []string            `json:"favorites"`
	Reactions map[string]Reaction `json:"reactions,omitempty"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// IsFavorite reports whether slug is in the session favourites.
func (session Session) IsFavorite(slug string) bool {
	return slices.Contains(session.Favorites, slug)
}

// Reaction returns the vote cast on a comment of the title slug.
func (session Session) Reaction(slug string, commentID int64) Reaction {
	return session.Reactions[reactionKey(slug, commentID)]
}

// clone detaches the favourites and votes from the stored copy.
func (session Session) clone() Session {
	session.Favorites = slices.Clone(session.Favorites)
	session.Reactions = maps.Clone(session.Reactions)
	return session
}

// SessionStore keeps view sessions between requests.
//
// Save replaces any previous value for session.ID and keeps it until
// session.ExpiresAt. Get and Delete return [ErrSessionNotFound] for missing
// or expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}

// # In-Memory Store

// MemorySessionStore keeps sessions in process memory. Safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemorySessionStore returns an empty store. A nil clock uses time.Now.
func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		now:      now,
	}
}

// Get implements [SessionStore].
func (store *MemorySessionStore) Get(_ context.Context, id string) (Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !store.now().Before(session.ExpiresAt) {
		delete(store.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	return session.clone(), nil
}

// Save implements [SessionStore].
func (store *MemorySessionStore) Save(_ context.Context, session Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[session.ID] = session.clone()
	return nil
}

// Delete implements [SessionStore].
func (store *MemorySessionStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(store.sessions, id)
	return nil
}

// Sweep evicts every expired session and returns how many were removed.
func (store *MemorySessionStore) Sweep() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	evicted := 0
	for id, session := range store.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(store.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions, expired ones included.
func (store *MemorySessionStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

// RunSweeper calls [MemorySessionStore.Sweep] every interval until ctx is done.
func (store *MemorySessionStore) RunSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := store.Sweep(); evicted > 0 {
				logger.Debug("view_sessions_swept", slog.Int("evicted", evicted))
			}
		case <-ctx.Done():
			return
		}
	}
}
