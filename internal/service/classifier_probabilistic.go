package service

import (
	"math/rand"
	"strings"
	"sync"

	"GuardHer/internal/models"
)

// ProbabilisticConfig mirrors the AI-stub thresholds from configuration.
type ProbabilisticConfig struct {
	ImageRiskThreshold float64
	AudioRiskThreshold float64
	HighRiskKeywords   []string
}

// ProbabilisticClassifier is the server-side stub: threshold draws for image
// and audio, keyword match for text. The random source is injected so tests
// pin a seed and get deterministic labels. It stands in for a model, it does
// not approximate one.
type ProbabilisticClassifier struct {
	cfg ProbabilisticConfig

	mu  sync.Mutex
	rng *rand.Rand
}

func NewProbabilisticClassifier(cfg ProbabilisticConfig, rng *rand.Rand) *ProbabilisticClassifier {
	if len(cfg.HighRiskKeywords) == 0 {
		cfg.HighRiskKeywords = []string{"help", "emergency", "attack"}
	}
	return &ProbabilisticClassifier{cfg: cfg, rng: rng}
}

func (c *ProbabilisticClassifier) Classify(evidence *models.Evidence) (*Analysis, error) {
	if err := validateEvidence(evidence); err != nil {
		return nil, err
	}

	switch evidence.Type {
	case models.EvidenceImage:
		if c.draw() < c.cfg.ImageRiskThreshold {
			return &Analysis{Label: RiskHigh, Score: 85, Rationale: []string{"image risk draw below threshold"}}, nil
		}
		return &Analysis{Label: RiskMedium, Score: 50, Rationale: []string{"image risk draw above threshold"}}, nil

	case models.EvidenceText:
		lower := strings.ToLower(evidence.Data)
		for _, kw := range c.cfg.HighRiskKeywords {
			if kw != "" && strings.Contains(lower, kw) {
				return &Analysis{Label: RiskHigh, Score: 85, Rationale: []string{"high risk keyword match: " + kw}}, nil
			}
		}
		return &Analysis{Label: RiskMedium, Score: 50, Rationale: []string{"no high risk keywords found"}}, nil

	case models.EvidenceAudio:
		if c.draw() < c.cfg.AudioRiskThreshold {
			return &Analysis{Label: RiskHigh, Score: 85, Rationale: []string{"audio risk draw below threshold"}}, nil
		}
		return &Analysis{Label: RiskLow, Score: 15, Rationale: []string{"audio risk draw above threshold"}}, nil
	}

	// validateEvidence already rejected anything else
	return &Analysis{Label: RiskLow, Score: 0}, nil
}

func (c *ProbabilisticClassifier) draw() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rng != nil {
		return c.rng.Float64()
	}
	return rand.Float64()
}
