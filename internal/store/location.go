package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"GuardHer/internal/models"
)

// LiveLocationStore keeps the latest reported position per user with a
// bounded retention window. Expiry is lazy: entries past the TTL stop being
// returned on read. A zero cleanup interval means no background sweeper runs.
type LiveLocationStore struct {
	ttl   time.Duration
	cache *gocache.Cache
}

func NewLiveLocationStore(ttl time.Duration) *LiveLocationStore {
	return &LiveLocationStore{
		ttl:   ttl,
		cache: gocache.New(ttl, 0),
	}
}

// Update creates or overwrites the entry for userID and restarts its TTL.
func (s *LiveLocationStore) Update(userID string, lat, lng float64) *models.LiveLocation {
	loc := &models.LiveLocation{
		UserID:    userID,
		Lat:       lat,
		Lng:       lng,
		Timestamp: time.Now(),
	}
	s.cache.Set(userID, loc, s.ttl)
	return loc
}

// Get returns the entry for userID, or nil when absent or expired.
func (s *LiveLocationStore) Get(userID string) *models.LiveLocation {
	v, ok := s.cache.Get(userID)
	if !ok {
		return nil
	}
	return v.(*models.LiveLocation)
}

// Delete removes the entry for userID. Deleting an absent entry is a no-op.
func (s *LiveLocationStore) Delete(userID string) {
	s.cache.Delete(userID)
}
