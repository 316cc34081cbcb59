package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"GuardHer/internal/models"
	"GuardHer/internal/store"
	"GuardHer/pkg/errors"
	"GuardHer/pkg/logger"
	"GuardHer/pkg/metrics"
	"GuardHer/pkg/notification"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// SOSService drives the session lifecycle: create/update/resolve, helper
// assignment and severity-based notification routing. It owns no state of
// its own; everything lives in the stores it is handed.
type SOSService struct {
	sessions  *store.SessionStore
	locations *store.LiveLocationStore
	notifier  notification.Notifier
}

func NewSOSService(sessions *store.SessionStore, locations *store.LiveLocationStore, notifier notification.Notifier) *SOSService {
	return &SOSService{
		sessions:  sessions,
		locations: locations,
		notifier:  notifier,
	}
}

// Create opens a new active session and triggers severity routing. An
// initial location also starts live tracking for the user. Notification
// failures never fail the create.
func (s *SOSService) Create(ctx context.Context, userID string, location *models.Location, severity models.Severity) (*models.Session, error) {
	if userID == "" {
		return nil, errors.Validation("userId is required")
	}
	if !severity.Valid() {
		return nil, errors.Validation("invalid severity: %s", severity)
	}

	session := &models.Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Status:   models.StatusActive,
		Severity: severity,
		Location: location,
		Helpers:  []string{},
	}
	session.CreatedAt = timeNow()

	if err := s.sessions.Add(session.ID, session); err != nil {
		return nil, errors.Internal(err, "failed to store session")
	}
	if location != nil {
		s.locations.Update(userID, location.Lat, location.Lng)
	}

	metrics.SessionsCreated.WithLabelValues(string(severity)).Inc()
	s.routeSeverity(ctx, session)

	return session, nil
}

// Update merges fields into an active session. Unknown ids and already
// resolved sessions both yield nil, a normal outcome for callers to branch
// on. A location update refreshes live tracking; a resolved status carried
// in the patch goes through the full resolve path.
func (s *SOSService) Update(ctx context.Context, sessionID string, patch models.SessionPatch) (*models.Session, error) {
	if patch.Severity != nil && !patch.Severity.Valid() {
		return nil, errors.Validation("invalid severity: %s", *patch.Severity)
	}
	if patch.Status != nil && *patch.Status != models.StatusActive && *patch.Status != models.StatusResolved {
		return nil, errors.Validation("invalid status: %s", *patch.Status)
	}

	// fast path; the store re-checks resolved status under its own lock
	current := s.sessions.Get(sessionID)
	if current == nil || current.Status == models.StatusResolved {
		return nil, nil
	}

	resolving := patch.Status != nil && *patch.Status == models.StatusResolved

	session := s.sessions.Update(sessionID, patch)
	if session == nil {
		return nil, nil
	}
	if patch.Location != nil {
		s.locations.Update(session.UserID, patch.Location.Lat, patch.Location.Lng)
	}
	if resolving {
		s.locations.Delete(session.UserID)
		metrics.SessionsResolved.Inc()
		logger.Info("sos session resolved",
			zap.String("sessionId", sessionID),
			zap.String("userId", session.UserID))
	}
	return session, nil
}

// Resolve transitions a session to resolved and drops live tracking.
// Resolving an already resolved session returns it unchanged, so the call is
// idempotent and never errors.
func (s *SOSService) Resolve(ctx context.Context, sessionID string) *models.Session {
	current := s.sessions.Get(sessionID)
	if current == nil {
		return nil
	}
	if current.Status == models.StatusResolved {
		return current
	}

	resolved := models.StatusResolved
	session := s.sessions.Update(sessionID, models.SessionPatch{Status: &resolved})
	if session == nil {
		// lost the race against a concurrent resolve
		return s.sessions.Get(sessionID)
	}
	s.locations.Delete(session.UserID)

	metrics.SessionsResolved.Inc()
	logger.Info("sos session resolved",
		zap.String("sessionId", sessionID),
		zap.String("userId", session.UserID))
	return session
}

// AssignHelper adds a trusted helper and pages them. Nil when the session is
// unknown.
func (s *SOSService) AssignHelper(ctx context.Context, sessionID, helperID string) (*models.Session, error) {
	if helperID == "" {
		return nil, errors.Validation("helperId is required")
	}
	session := s.sessions.AddHelper(sessionID, helperID)
	if session == nil {
		return nil, nil
	}
	s.notify(ctx, notification.KindHelper, map[string]interface{}{
		"helperId":  helperID,
		"sessionId": session.ID,
		"userId":    session.UserID,
	})
	return session, nil
}

// RemoveHelper is symmetric with AssignHelper but sends no notification.
func (s *SOSService) RemoveHelper(ctx context.Context, sessionID, helperID string) *models.Session {
	return s.sessions.RemoveHelper(sessionID, helperID)
}

// ActiveSessions returns every session not yet resolved.
func (s *SOSService) ActiveSessions() []*models.Session {
	all := s.sessions.List()
	out := make([]*models.Session, 0, len(all))
	for _, session := range all {
		if session.Status != models.StatusResolved {
			out = append(out, session)
		}
	}
	return out
}

// Track returns the user's live location, nil once expired or deleted.
func (s *SOSService) Track(userID string) *models.LiveLocation {
	return s.locations.Get(userID)
}

// routeSeverity dispatches the severity-tiered side effects. Every branch is
// best-effort; a dead notifier cannot fail session creation.
func (s *SOSService) routeSeverity(ctx context.Context, session *models.Session) {
	payload := map[string]interface{}{
		"sessionId": session.ID,
		"userId":    session.UserID,
		"severity":  string(session.Severity),
	}
	switch session.Severity {
	case models.SeverityLow:
		logger.Info("low severity sos, user notified only", zap.String("sessionId", session.ID))
	case models.SeverityMedium:
		logger.Info("medium severity sos, calling helpline", zap.String("sessionId", session.ID))
		s.notify(ctx, notification.KindHelpline, payload)
	case models.SeverityHigh:
		logger.Info("high severity sos, calling helpline and notifying authorities", zap.String("sessionId", session.ID))
		s.notify(ctx, notification.KindHelpline, payload)
		s.notify(ctx, notification.KindAuthorities, payload)
	default:
		// unreachable after validation, kept so a bad value can never
		// fail a create
		logger.Warn("unknown severity level", zap.String("severity", string(session.Severity)))
	}
}

func (s *SOSService) notify(ctx context.Context, kind notification.Kind, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, kind, payload); err != nil {
		logger.Warn("notification failed", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	metrics.NotificationsSent.WithLabelValues(string(kind)).Inc()
}
