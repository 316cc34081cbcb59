package models

import "time"

type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusResolved SessionStatus = "resolved"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is one of the known severity tiers.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Location 位置坐标
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Session is a tracked SOS event. Status only ever moves active -> resolved;
// a resolved session keeps its helpers and severity unchanged.
type Session struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Status    SessionStatus `json:"status"`
	Severity  Severity      `json:"severity"`
	Location  *Location     `json:"location,omitempty"`
	Helpers   []string      `json:"helpers"`
	CreatedAt time.Time     `json:"createdAt"`
}

// HasHelper reports whether helperID is already assigned.
func (s *Session) HasHelper(helperID string) bool {
	for _, h := range s.Helpers {
		if h == helperID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so store internals never escape to callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	out.Helpers = make([]string, len(s.Helpers))
	copy(out.Helpers, s.Helpers)
	return &out
}

// SessionPatch carries the fields a partial update may merge into a session.
// Nil fields are left untouched.
type SessionPatch struct {
	Status   *SessionStatus `json:"status,omitempty"`
	Severity *Severity      `json:"severity,omitempty"`
	Location *Location      `json:"location,omitempty"`
}

// LiveLocation is the latest reported position for a user, retained for a
// bounded TTL window.
type LiveLocation struct {
	UserID    string    `json:"userId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}
