package service

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"GuardHer/internal/models"
	"GuardHer/internal/store"
	"GuardHer/pkg/errors"
	"GuardHer/pkg/logger"
	"GuardHer/pkg/metrics"
)

// EvidenceAnalysis is the outcome of analyzing one evidence item: the stored
// record's id plus the classifier verdict.
type EvidenceAnalysis struct {
	EvidenceID string              `json:"evidenceId"`
	UserID     string              `json:"userId"`
	Type       models.EvidenceType `json:"type"`
	RiskLevel  RiskLabel           `json:"riskLevel"`
	RiskScore  int                 `json:"riskScore"`
	Rationale  []string            `json:"rationale,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// AnalysisService validates evidence, stores it and runs the configured
// classifier strategy over it.
type AnalysisService struct {
	evidence   *store.EvidenceStore
	classifier Classifier

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnalysisService(evidence *store.EvidenceStore, classifier Classifier, rng *rand.Rand) *AnalysisService {
	return &AnalysisService{
		evidence:   evidence,
		classifier: classifier,
		rng:        rng,
	}
}

// AnalyzeEvidence validates, stores and classifies a single evidence item.
// Structurally invalid evidence is rejected before anything is stored.
func (s *AnalysisService) AnalyzeEvidence(req models.AnalyzeRequest) (*EvidenceAnalysis, error) {
	candidate := &models.Evidence{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Type:      req.Type,
		Data:      req.Data,
	}
	if err := validateEvidence(candidate); err != nil {
		return nil, err
	}

	stored := s.evidence.Add(req.UserID, req.Type, req.Data, req.SessionID, time.Time{})

	analysis, err := s.classifier.Classify(stored)
	if err != nil {
		return nil, errors.Internal(err, "classification failed")
	}

	metrics.EvidenceAnalyzed.WithLabelValues(string(req.Type), string(analysis.Label)).Inc()
	logger.Info("evidence analyzed",
		zap.String("evidenceId", stored.ID),
		zap.String("userId", req.UserID),
		zap.String("riskLevel", string(analysis.Label)))

	return &EvidenceAnalysis{
		EvidenceID: stored.ID,
		UserID:     stored.UserID,
		Type:       stored.Type,
		RiskLevel:  analysis.Label,
		RiskScore:  analysis.Score,
		Rationale:  analysis.Rationale,
		Timestamp:  stored.Timestamp,
	}, nil
}

// AnalyzeBatch analyzes evidences in order, stopping on the first invalid
// item.
func (s *AnalysisService) AnalyzeBatch(reqs []models.AnalyzeRequest) ([]*EvidenceAnalysis, error) {
	results := make([]*EvidenceAnalysis, 0, len(reqs))
	for _, req := range reqs {
		r, err := s.AnalyzeEvidence(req)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// PredictSeverity is a placeholder severity predictor: a tiered random draw
// standing in for a model over user history.
func (s *AnalysisService) PredictSeverity(userID string) models.Severity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var draw float64
	if s.rng != nil {
		draw = s.rng.Float64()
	} else {
		draw = rand.Float64()
	}
	switch {
	case draw < 0.2:
		return models.SeverityHigh
	case draw < 0.6:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
