package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GuardHer/internal/models"
	guarderrors "GuardHer/pkg/errors"
)

func textEvidence(data string) *models.Evidence {
	return &models.Evidence{UserID: "u1", Type: models.EvidenceText, Data: data}
}

func TestProbabilisticClassifierText(t *testing.T) {
	c := NewProbabilisticClassifier(ProbabilisticConfig{}, rand.New(rand.NewSource(1)))

	result, err := c.Classify(textEvidence("please send help"))
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, result.Label)

	result, err = c.Classify(textEvidence("nice weather"))
	require.NoError(t, err)
	assert.Equal(t, RiskMedium, result.Label)

	// keyword match is case-insensitive
	result, err = c.Classify(textEvidence("EMERGENCY right now"))
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, result.Label)
}

func TestProbabilisticClassifierThresholds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("image", func(t *testing.T) {
		always := NewProbabilisticClassifier(ProbabilisticConfig{ImageRiskThreshold: 1.0}, rng)
		result, err := always.Classify(&models.Evidence{UserID: "u1", Type: models.EvidenceImage, Data: "img.jpg"})
		require.NoError(t, err)
		assert.Equal(t, RiskHigh, result.Label)
		assert.Contains(t, result.Rationale, "image risk draw below threshold")

		never := NewProbabilisticClassifier(ProbabilisticConfig{ImageRiskThreshold: 0}, rng)
		result, err = never.Classify(&models.Evidence{UserID: "u1", Type: models.EvidenceImage, Data: "img.jpg"})
		require.NoError(t, err)
		assert.Equal(t, RiskMedium, result.Label)
		assert.Contains(t, result.Rationale, "image risk draw above threshold")
	})

	t.Run("audio falls to low below threshold", func(t *testing.T) {
		never := NewProbabilisticClassifier(ProbabilisticConfig{AudioRiskThreshold: 0}, rng)
		result, err := never.Classify(&models.Evidence{UserID: "u1", Type: models.EvidenceAudio, Data: "clip.wav"})
		require.NoError(t, err)
		assert.Equal(t, RiskLow, result.Label)
		assert.Contains(t, result.Rationale, "audio risk draw above threshold")
	})
}

func TestClassifierValidation(t *testing.T) {
	c := NewProbabilisticClassifier(ProbabilisticConfig{}, rand.New(rand.NewSource(1)))

	cases := []struct {
		name     string
		evidence *models.Evidence
	}{
		{"nil evidence", nil},
		{"bad type", &models.Evidence{UserID: "u1", Type: "video", Data: "x"}},
		{"empty data", &models.Evidence{UserID: "u1", Type: models.EvidenceText, Data: "   "}},
		{"empty user", &models.Evidence{UserID: "", Type: models.EvidenceText, Data: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Classify(tc.evidence)
			require.Error(t, err)
			assert.True(t, guarderrors.IsValidation(err))
		})
	}
}

func TestNewClassifier(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	c, err := NewClassifier(StrategyKeyword, ProbabilisticConfig{}, rng)
	require.NoError(t, err)
	assert.IsType(t, &KeywordClassifier{}, c)

	// empty strategy falls back to the probabilistic stub
	c, err = NewClassifier("", ProbabilisticConfig{}, rng)
	require.NoError(t, err)
	assert.IsType(t, &ProbabilisticClassifier{}, c)

	_, err = NewClassifier("neural", ProbabilisticConfig{}, rng)
	require.Error(t, err)
	assert.True(t, guarderrors.IsValidation(err))
}

func TestKeywordClassifierPriorities(t *testing.T) {
	c := NewKeywordClassifier(rand.New(rand.NewSource(42)))

	t.Run("high risk pattern wins", func(t *testing.T) {
		result, err := c.Classify(textEvidence("I know where you live"))
		require.NoError(t, err)
		assert.Equal(t, RiskHigh, result.Label)
		assert.GreaterOrEqual(t, result.Score, 85)
		assert.Less(t, result.Score, 95)
	})

	t.Run("manipulation is high", func(t *testing.T) {
		result, err := c.Classify(textEvidence("after everything I did for you"))
		require.NoError(t, err)
		assert.Equal(t, RiskHigh, result.Label)
		assert.GreaterOrEqual(t, result.Score, 70)
	})

	t.Run("warning pattern", func(t *testing.T) {
		result, err := c.Classify(textEvidence("why are you ignoring me"))
		require.NoError(t, err)
		assert.Equal(t, RiskWarning, result.Label)
	})

	t.Run("aggressive punctuation", func(t *testing.T) {
		result, err := c.Classify(textEvidence("pick up the phone right now!!!"))
		require.NoError(t, err)
		// "pick up" is a warning keyword, checked before punctuation
		assert.Equal(t, RiskWarning, result.Label)

		result, err = c.Classify(textEvidence("STOP TEXTING THIS NUMBER"))
		require.NoError(t, err)
		assert.Equal(t, RiskWarning, result.Label)
	})

	t.Run("vague short greeting", func(t *testing.T) {
		result, err := c.Classify(textEvidence("hey..."))
		require.NoError(t, err)
		assert.Equal(t, RiskWarning, result.Label)
		assert.Equal(t, 35, result.Score)
	})

	t.Run("safe indicator", func(t *testing.T) {
		result, err := c.Classify(textEvidence("thank you for the lovely evening"))
		require.NoError(t, err)
		assert.Equal(t, RiskSafe, result.Label)
		assert.Less(t, result.Score, 20)
	})

	t.Run("neutral default", func(t *testing.T) {
		result, err := c.Classify(textEvidence("the meeting moved to 4pm"))
		require.NoError(t, err)
		assert.Equal(t, RiskSafe, result.Label)
		assert.GreaterOrEqual(t, result.Score, 20)
	})
}

func TestKeywordClassifierMemoization(t *testing.T) {
	c := NewKeywordClassifier(rand.New(rand.NewSource(7)))

	first, err := c.Classify(textEvidence("I know where you live"))
	require.NoError(t, err)
	second, err := c.Classify(textEvidence("I know where you live"))
	require.NoError(t, err)

	// jittered score must be stable for identical messages
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Label, second.Label)
}
