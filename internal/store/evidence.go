package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"GuardHer/internal/models"
)

// EvidenceStore holds evidence records in arrival order. Records are
// immutable once created except for explicit deletion by id. Validation of
// type and payload belongs to the caller, not the store.
type EvidenceStore struct {
	mu      sync.RWMutex
	records []*models.Evidence
	byID    map[string]*models.Evidence
}

func NewEvidenceStore() *EvidenceStore {
	return &EvidenceStore{
		byID: make(map[string]*models.Evidence),
	}
}

// Add appends a record and returns it. A zero timestamp defaults to now.
// SessionID may be empty when the capture is not tied to a session.
func (s *EvidenceStore) Add(userID string, evidenceType models.EvidenceType, data, sessionID string, timestamp time.Time) *models.Evidence {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	record := &models.Evidence{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Type:      evidenceType,
		Data:      data,
		Timestamp: timestamp,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	s.byID[record.ID] = record
	return copyOf(record)
}

// ByUser returns the user's records in arrival order.
func (s *EvidenceStore) ByUser(userID string) []*models.Evidence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Evidence, 0)
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, copyOf(r))
		}
	}
	return out
}

// All returns every record in arrival order.
func (s *EvidenceStore) All() []*models.Evidence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Evidence, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, copyOf(r))
	}
	return out
}

// Delete removes a record by id, returning the deleted record or nil.
func (s *EvidenceStore) Delete(id string) *models.Evidence {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.byID[id]
	if !exists {
		return nil
	}
	delete(s.byID, id)
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return copyOf(record)
}

func copyOf(r *models.Evidence) *models.Evidence {
	out := *r
	return &out
}
