package store

import (
	"sync"

	"GuardHer/internal/models"
	"GuardHer/pkg/errors"
)

// SessionStore holds SOS sessions in memory, keyed by session id. It is pure
// data access: lifecycle rules live in the workflow service. All accessors
// return deep copies so callers can never mutate store internals. There is no
// persistence across restarts; a durable store would sit behind this same
// surface.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	order    []string // insertion order for stable listing
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// Add inserts a session. The workflow generates UUIDs so duplicates should
// never happen in practice, but the contract is explicit about it.
func (s *SessionStore) Add(id string, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return errors.Duplicate("session %s already exists", id)
	}
	s.sessions[id] = session.Clone()
	s.order = append(s.order, id)
	return nil
}

// Update merges non-nil patch fields into the session and returns the
// result, or nil when the id is unknown. Not-found is a normal outcome for
// callers to branch on, never an error. Resolved is terminal: a patch on an
// already resolved session is rejected here, under the same lock that made
// it resolved, so a racing resolve can never let one slip through.
func (s *SessionStore) Update(id string, patch models.SessionPatch) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil
	}
	if session.Status == models.StatusResolved {
		return nil
	}
	if patch.Status != nil {
		session.Status = *patch.Status
	}
	if patch.Severity != nil {
		session.Severity = *patch.Severity
	}
	if patch.Location != nil {
		loc := *patch.Location
		session.Location = &loc
	}
	return session.Clone()
}

// Get returns the session or nil.
func (s *SessionStore) Get(id string) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[id].Clone()
}

// List returns every session regardless of status, in insertion order.
func (s *SessionStore) List() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

// AddHelper adds helperID to the session's helper set. Adding an
// already-present helper is a no-op. Returns the updated session or nil.
func (s *SessionStore) AddHelper(id, helperID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil
	}
	if !session.HasHelper(helperID) {
		session.Helpers = append(session.Helpers, helperID)
	}
	return session.Clone()
}

// RemoveHelper removes helperID from the session's helper set. Removing an
// absent helper is a no-op. Returns the updated session or nil.
func (s *SessionStore) RemoveHelper(id, helperID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil
	}
	for i, h := range session.Helpers {
		if h == helperID {
			session.Helpers = append(session.Helpers[:i], session.Helpers[i+1:]...)
			break
		}
	}
	return session.Clone()
}
