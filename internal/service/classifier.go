package service

import (
	"math/rand"
	"strings"

	"GuardHer/internal/models"
	"GuardHer/pkg/errors"
)

// RiskLabel is a qualitative risk tier. The evidence path uses
// low/medium/high; the message path uses safe/warning/high.
type RiskLabel string

const (
	RiskLow     RiskLabel = "low"
	RiskMedium  RiskLabel = "medium"
	RiskHigh    RiskLabel = "high"
	RiskSafe    RiskLabel = "safe"
	RiskWarning RiskLabel = "warning"
)

// Analysis is the result of classifying a single piece of evidence.
type Analysis struct {
	Label     RiskLabel `json:"riskLevel"`
	Score     int       `json:"riskScore"`
	Rationale []string  `json:"rationale,omitempty"`
}

// Classifier maps an evidence item to a risk label. Implementations are
// strategies behind one surface so the stub logic can be swapped for a real
// model without touching callers.
type Classifier interface {
	Classify(evidence *models.Evidence) (*Analysis, error)
}

// Classifier strategy names accepted by NewClassifier.
const (
	StrategyProbabilistic = "probabilistic"
	StrategyKeyword       = "keyword"
)

// NewClassifier selects a strategy by name. An empty name falls back to the
// probabilistic stub.
func NewClassifier(strategy string, cfg ProbabilisticConfig, rng *rand.Rand) (Classifier, error) {
	switch strategy {
	case StrategyProbabilistic, "":
		return NewProbabilisticClassifier(cfg, rng), nil
	case StrategyKeyword:
		return NewKeywordClassifier(rng), nil
	}
	return nil, errors.Validation("unknown classifier strategy: %s", strategy)
}

// validateEvidence rejects structurally invalid evidence. Malformed *content*
// never fails classification, only malformed structure does.
func validateEvidence(evidence *models.Evidence) error {
	if evidence == nil {
		return errors.Validation("evidence is required")
	}
	if !evidence.Type.Valid() {
		return errors.Validation("invalid evidence type: %s", evidence.Type)
	}
	if strings.TrimSpace(evidence.Data) == "" {
		return errors.Validation("evidence data must be a non-empty string")
	}
	if strings.TrimSpace(evidence.UserID) == "" {
		return errors.Validation("evidence userId must be a non-empty string")
	}
	return nil
}
