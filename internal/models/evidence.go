package models

import "time"

type EvidenceType string

const (
	EvidenceImage EvidenceType = "image"
	EvidenceText  EvidenceType = "text"
	EvidenceAudio EvidenceType = "audio"
)

// Valid reports whether t is one of the supported evidence types.
func (t EvidenceType) Valid() bool {
	switch t {
	case EvidenceImage, EvidenceText, EvidenceAudio:
		return true
	}
	return false
}

// Evidence is a captured artifact. Immutable once created except for
// explicit deletion by id. SessionID is optional and supplied by the caller
// at capture time; analytics joins on it when present.
type Evidence struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	SessionID string       `json:"sessionId,omitempty"`
	Type      EvidenceType `json:"type"`
	Data      string       `json:"data"` // file path, URL or opaque reference
	Timestamp time.Time    `json:"timestamp"`
}
