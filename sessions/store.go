// Package sessions keeps one quiz session per browser page load.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizdeck/clipboard"
	"quizdeck/quiz"
	"quizdeck/views"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Entry is the state behind one page load. Fields are only touched inside Store.Do.
type Entry struct {
	ID      string
	Session *quiz.Session
	Page    *views.Page
	Outbox  *clipboard.Outbox

	mu       sync.Mutex
	lastSeen time.Time
}

// Store maps session ids to entries.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry

	loader quiz.Loader
	opts   []quiz.Option
	ttl    time.Duration
	max    int // 0 means unbounded
	now    func() time.Time
	logger *log.Logger
}

// NewStore returns a Store that builds every session from loader.
// Entries idle for longer than ttl are dropped by Sweep.
func NewStore(loader quiz.Loader, ttl time.Duration, logger *log.Logger, opts ...quiz.Option) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		entries: make(map[string]*Entry),
		loader:  loader,
		opts:    opts,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// SetMaxEntries caps the number of live sessions. Once the cap is reached,
// Create drops the least recently used session to make room.
func (s *Store) SetMaxEntries(n int) {
	s.mu.Lock()
	s.max = n
	s.mu.Unlock()
}

// Create loads the deck and starts a fresh session.
func (s *Store) Create(ctx context.Context, deckName string) (*Entry, error) {
	page := views.NewPage(deckName)
	outbox := &clipboard.Outbox{}
	opts := append([]quiz.Option{quiz.WithClipboard(outbox), quiz.WithLogger(s.logger)}, s.opts...)
	session, err := quiz.Initialize(ctx, s.loader, page, opts...)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	e := &Entry{
		ID:       uuid.NewString(),
		Session:  session,
		Page:     page,
		Outbox:   outbox,
		lastSeen: s.now(),
	}
	s.mu.Lock()
	for s.max > 0 && len(s.entries) >= s.max {
		s.evictOldest()
	}
	s.entries[e.ID] = e
	s.mu.Unlock()
	return e, nil
}

// evictOldest drops the least recently used entry. s.mu must be held.
func (s *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.entries {
		e.mu.Lock()
		seen := e.lastSeen
		e.mu.Unlock()
		if oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	delete(s.entries, oldestID)
	s.logger.Printf("Session limit of %d reached, dropped session %s", s.max, oldestID)
}

// Do runs fn with exclusive access to the entry for id.
func (s *Store) Do(id string, fn func(*Entry) error) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	return fn(e)
}

// Sweep drops entries idle longer than the store's ttl and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		e.mu.Lock()
		idle := now.Sub(e.lastSeen)
		e.mu.Unlock()
		if idle > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
