package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/uploader"
)

// CookieName carries the page session id.
const CookieName = "ra_session"

type entry struct {
	controller *uploader.Controller
	lastSeen   time.Time
}

// Store keeps one upload controller per page session.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	ttl      time.Duration
	service  uploader.AnalysisService
	now      func() time.Time
}

func NewStore(service uploader.AnalysisService, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		service:  service,
		now:      time.Now,
	}
}

// Get returns the controller for id, creating a fresh session when id is
// unknown, malformed or expired. The returned id is the one to hand back to
// the browser.
func (s *Store) Get(id string) (string, *uploader.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if key, err := uuid.Parse(id); err == nil {
		if e, ok := s.sessions[key]; ok && !s.expired(e, now) {
			e.lastSeen = now
			return key.String(), e.controller
		}
	}

	key := uuid.New()
	e := &entry{
		controller: uploader.NewController(s.service),
		lastSeen:   now,
	}
	s.sessions[key] = e

	return key.String(), e.controller
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed. Sessions
// with an analysis in flight are kept.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.sessions {
		if s.expired(e, now) && !e.controller.State().Loading {
			delete(s.sessions, key)
			removed++
		}
	}

	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("🧹 Removed %d idle sessions\n", n)
			}
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
