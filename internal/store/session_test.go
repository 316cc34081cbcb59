package store

import (
	"sync"
	"testing"
	"time"

	"GuardHer/internal/models"
	"GuardHer/pkg/errors"
)

func newSession(id, userID string) *models.Session {
	return &models.Session{
		ID:        id,
		UserID:    userID,
		Status:    models.StatusActive,
		Severity:  models.SeverityLow,
		Helpers:   []string{},
		CreatedAt: time.Now(),
	}
}

func TestSessionStore(t *testing.T) {
	t.Run("Add and Get", func(t *testing.T) {
		s := NewSessionStore()
		if err := s.Add("s1", newSession("s1", "u1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := s.Get("s1")
		if got == nil || got.UserID != "u1" {
			t.Fatalf("expected session for u1, got %+v", got)
		}
		if s.Get("missing") != nil {
			t.Error("expected nil for unknown id")
		}
	})

	t.Run("Add duplicate", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))
		err := s.Add("s1", newSession("s1", "u2"))
		if err == nil {
			t.Fatal("expected duplicate error")
		}
		if !errors.IsDuplicate(err) {
			t.Errorf("expected duplicate code, got %d", errors.GetCode(err))
		}
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))

		got := s.Get("s1")
		got.Status = models.StatusResolved
		got.Helpers = append(got.Helpers, "intruder")

		fresh := s.Get("s1")
		if fresh.Status != models.StatusActive {
			t.Error("caller mutation leaked into store")
		}
		if len(fresh.Helpers) != 0 {
			t.Error("helper mutation leaked into store")
		}
	})

	t.Run("Update merges fields", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))

		sev := models.SeverityHigh
		loc := models.Location{Lat: 1, Lng: 2}
		updated := s.Update("s1", models.SessionPatch{Severity: &sev, Location: &loc})
		if updated == nil {
			t.Fatal("expected updated session")
		}
		if updated.Severity != models.SeverityHigh {
			t.Errorf("severity not merged: %s", updated.Severity)
		}
		if updated.Location == nil || updated.Location.Lat != 1 {
			t.Errorf("location not merged: %+v", updated.Location)
		}
		if updated.Status != models.StatusActive {
			t.Errorf("status should be untouched, got %s", updated.Status)
		}
	})

	t.Run("Update rejects resolved sessions", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))
		resolved := models.StatusResolved
		if s.Update("s1", models.SessionPatch{Status: &resolved}) == nil {
			t.Fatal("resolve transition should succeed")
		}

		sev := models.SeverityHigh
		if got := s.Update("s1", models.SessionPatch{Severity: &sev}); got != nil {
			t.Fatalf("patch landed on a resolved session: %+v", got)
		}
		active := models.StatusActive
		if s.Update("s1", models.SessionPatch{Status: &active}) != nil {
			t.Error("resolved session was reopened")
		}
		if got := s.Get("s1"); got.Severity != models.SeverityLow {
			t.Errorf("history changed after resolve: %s", got.Severity)
		}
	})

	t.Run("Update racing a resolve never merges late", func(t *testing.T) {
		resolved := models.StatusResolved
		sev := models.SeverityHigh
		for i := 0; i < 500; i++ {
			s := NewSessionStore()
			_ = s.Add("s1", newSession("s1", "u1"))

			var wg sync.WaitGroup
			var fromUpdate *models.Session
			wg.Add(2)
			go func() {
				defer wg.Done()
				s.Update("s1", models.SessionPatch{Status: &resolved})
			}()
			go func() {
				defer wg.Done()
				fromUpdate = s.Update("s1", models.SessionPatch{Severity: &sev})
			}()
			wg.Wait()

			if fromUpdate != nil && fromUpdate.Status == models.StatusResolved {
				t.Fatalf("patch merged into an already-resolved session: %+v", fromUpdate)
			}
		}
	})

	t.Run("Update unknown id", func(t *testing.T) {
		s := NewSessionStore()
		if s.Update("missing", models.SessionPatch{}) != nil {
			t.Error("expected nil for unknown id")
		}
	})

	t.Run("AddHelper and RemoveHelper round trip", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))

		if got := s.AddHelper("s1", "h1"); len(got.Helpers) != 1 {
			t.Fatalf("expected one helper, got %v", got.Helpers)
		}
		// adding the same helper again is a no-op
		if got := s.AddHelper("s1", "h1"); len(got.Helpers) != 1 {
			t.Errorf("duplicate helper added: %v", got.Helpers)
		}
		if got := s.RemoveHelper("s1", "h1"); len(got.Helpers) != 0 {
			t.Errorf("helper not removed: %v", got.Helpers)
		}
		// removing an absent helper is a no-op
		if got := s.RemoveHelper("s1", "h1"); got == nil || len(got.Helpers) != 0 {
			t.Errorf("remove of absent helper misbehaved: %+v", got)
		}

		if s.AddHelper("missing", "h1") != nil {
			t.Error("expected nil for unknown session")
		}
		if s.RemoveHelper("missing", "h1") != nil {
			t.Error("expected nil for unknown session")
		}
	})

	t.Run("List returns all statuses in insertion order", func(t *testing.T) {
		s := NewSessionStore()
		_ = s.Add("s1", newSession("s1", "u1"))
		_ = s.Add("s2", newSession("s2", "u2"))
		resolved := models.StatusResolved
		s.Update("s1", models.SessionPatch{Status: &resolved})

		list := s.List()
		if len(list) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(list))
		}
		if list[0].ID != "s1" || list[1].ID != "s2" {
			t.Errorf("unexpected order: %s, %s", list[0].ID, list[1].ID)
		}
	})
}
