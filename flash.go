package main

import (
	"sync"
	"time"
)

const flashSuccess = "success"

// FlashNotice is a message shown on the next page render only.
type FlashNotice struct {
	Message  string
	Category string
}

type pendingNotice struct {
	notice FlashNotice
	queued time.Time
}

// FlashStore holds at most one pending notice per session. A newer notice
// replaces an undrained one, and notices nobody drains expire after ttl.
type FlashStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	pending   map[string]pendingNotice
	lastSweep time.Time
}

func NewFlashStore(ttl time.Duration) *FlashStore {
	return &FlashStore{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]pendingNotice),
	}
}

// Enqueue queues n for the session's next render.
func (s *FlashStore) Enqueue(sessionID string, n FlashNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	s.pending[sessionID] = pendingNotice{notice: n, queued: now}
}

// Drain removes and returns the session's pending notices.
func (s *FlashStore) Drain(sessionID string) []FlashNotice {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[sessionID]
	if !ok {
		return nil
	}
	delete(s.pending, sessionID)

	if s.expired(p, s.now()) {
		return nil
	}
	return []FlashNotice{p.notice}
}

// Len reports how many sessions have a notice waiting.
func (s *FlashStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *FlashStore) expired(p pendingNotice, now time.Time) bool {
	return now.Sub(p.queued) > s.ttl
}

// sweepLocked drops expired notices, at most once per ttl.
func (s *FlashStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, p := range s.pending {
		if s.expired(p, now) {
			delete(s.pending, id)
		}
	}
	s.lastSweep = now
}
