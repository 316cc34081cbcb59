package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"GuardHer/internal/models"
	"GuardHer/internal/store"
	"GuardHer/pkg/errors"
)

// DashboardFilters narrows the session set for dashboard and CSV queries.
// Zero values mean "no filter".
type DashboardFilters struct {
	From     *time.Time
	To       *time.Time
	Severity models.Severity
	Status   models.SessionStatus
	Page     int
	Limit    int
}

// SessionWithEvidence decorates a session with its evidence count.
type SessionWithEvidence struct {
	models.Session
	EvidenceCount int `json:"evidenceCount"`
}

// DashboardSummary is computed over the date-filtered set only, so severity
// and status filters never skew the headline numbers.
type DashboardSummary struct {
	TotalSessions int `json:"totalSessions"`
	Active        int `json:"active"`
	Resolved      int `json:"resolved"`
	HighSeverity  int `json:"highSeverity"`
}

// DashboardData is the admin dashboard payload.
type DashboardData struct {
	TotalSessions int                     `json:"totalSessions"`
	SeverityCount map[models.Severity]int `json:"severityCount"`
	TotalEvidence int                     `json:"totalEvidence"`
	Summary       DashboardSummary        `json:"summary"`
	Sessions      []*SessionWithEvidence  `json:"sessions"`
}

// csvColumns is a compatibility contract for downstream parsers; order is
// fixed.
var csvColumns = []string{
	"sessionId", "userId", "severity", "status", "createdAt",
	"helpers", "locationLat", "locationLng", "evidenceCount",
}

// AnalyticsService derives dashboard aggregates and CSV exports from the
// session and evidence stores. Read-only: it holds no state of its own.
type AnalyticsService struct {
	sessions *store.SessionStore
	evidence *store.EvidenceStore
}

func NewAnalyticsService(sessions *store.SessionStore, evidence *store.EvidenceStore) *AnalyticsService {
	return &AnalyticsService{sessions: sessions, evidence: evidence}
}

// Dashboard filters sessions by date range, severity and status, joins
// evidence counts by session id, paginates, and computes summary statistics
// over the date-filtered set.
func (a *AnalyticsService) Dashboard(filters DashboardFilters) *DashboardData {
	all := a.sessions.List()

	dateFiltered := make([]*models.Session, 0, len(all))
	for _, s := range all {
		if inDateRange(s.CreatedAt, filters.From, filters.To) {
			dateFiltered = append(dateFiltered, s)
		}
	}

	filtered := make([]*models.Session, 0, len(dateFiltered))
	for _, s := range dateFiltered {
		if filters.Severity != "" && s.Severity != filters.Severity {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		filtered = append(filtered, s)
	}

	// Evidence counts join on the explicit SessionID association; records
	// without one belong to no session.
	allEvidence := a.evidence.All()
	evidenceBySession := make(map[string]int)
	for _, e := range allEvidence {
		if e.SessionID != "" {
			evidenceBySession[e.SessionID]++
		}
	}

	withEvidence := make([]*SessionWithEvidence, 0, len(filtered))
	severityCount := make(map[models.Severity]int)
	for _, s := range filtered {
		withEvidence = append(withEvidence, &SessionWithEvidence{
			Session:       *s,
			EvidenceCount: evidenceBySession[s.ID],
		})
		severityCount[s.Severity]++
	}

	summary := DashboardSummary{TotalSessions: len(dateFiltered)}
	for _, s := range dateFiltered {
		switch s.Status {
		case models.StatusActive:
			summary.Active++
		case models.StatusResolved:
			summary.Resolved++
		}
		if s.Severity == models.SeverityHigh {
			summary.HighSeverity++
		}
	}

	return &DashboardData{
		TotalSessions: len(withEvidence),
		SeverityCount: severityCount,
		TotalEvidence: len(allEvidence),
		Summary:       summary,
		Sessions:      paginate(withEvidence, filters.Page, filters.Limit),
	}
}

// ExportCSV flattens the dashboard's session rows to the fixed column set.
// Helpers are pipe-joined; missing coordinates render as empty strings.
func (a *AnalyticsService) ExportCSV(filters DashboardFilters) (string, error) {
	data := a.Dashboard(filters)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return "", errors.Internal(err, "csv write failed")
	}
	for _, s := range data.Sessions {
		lat, lng := "", ""
		if s.Location != nil {
			lat = strconv.FormatFloat(s.Location.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(s.Location.Lng, 'f', -1, 64)
		}
		row := []string{
			s.ID,
			s.UserID,
			string(s.Severity),
			string(s.Status),
			s.CreatedAt.Format(time.RFC3339),
			strings.Join(s.Helpers, "|"),
			lat,
			lng,
			strconv.Itoa(s.EvidenceCount),
		}
		if err := w.Write(row); err != nil {
			return "", errors.Internal(err, "csv write failed")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Internal(err, "csv write failed")
	}
	return buf.String(), nil
}

func inDateRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate(sessions []*SessionWithEvidence, page, limit int) []*SessionWithEvidence {
	if limit <= 0 {
		return sessions
	}
	if page <= 0 {
		if limit < len(sessions) {
			return sessions[:limit]
		}
		return sessions
	}
	start := (page - 1) * limit
	if start >= len(sessions) {
		return []*SessionWithEvidence{}
	}
	end := start + limit
	if end > len(sessions) {
		end = len(sessions)
	}
	return sessions[start:end]
}
