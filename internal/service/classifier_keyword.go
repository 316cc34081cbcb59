package service

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"GuardHer/internal/models"
)

// keywordGroup is one priority tier of the message classifier. Groups are
// checked in a fixed order; the first match wins and fixes both the label
// and the score range.
type keywordGroup struct {
	name      string
	label     RiskLabel
	baseScore int
	jitter    int
	keywords  []string
	rationale []string
}

var keywordGroups = []keywordGroup{
	{
		name:      "highRisk",
		label:     RiskHigh,
		baseScore: 85,
		jitter:    10,
		keywords: []string{
			"meet up", "meet me", "private", "know where you live", "know where you work",
			"alone", "secret", "don't tell", "send nudes", "send pics", "picture of you",
			"threatening", "hurt you", "kill you", "regret", "or else", "watch out",
			"following you", "stalking", "obsessed", "belong to me", "mine forever",
		},
		rationale: []string{
			"Potential manipulation or coercion detected",
			"Request for private meeting or location sharing",
			"Pattern matches known harassment tactics",
		},
	},
	{
		name:      "manipulation",
		label:     RiskHigh,
		baseScore: 70,
		jitter:    10,
		keywords: []string{
			"you owe me", "after everything", "ungrateful", "nobody else", "lucky to have",
			"without me", "you'll regret", "you're overreacting", "too sensitive",
			"crazy", "you're imagining", "never happened", "gaslighting",
		},
		rationale: []string{
			"Emotional manipulation detected",
			"Gaslighting or blame-shifting language",
		},
	},
	{
		name:      "intrusive",
		label:     RiskHigh,
		baseScore: 75,
		jitter:    10,
		keywords: []string{
			"send me", "share your location", "password", "pin code", "bank",
			"credit card", "social security", "home address", "work address",
			"live alone", "when will you be home", "schedule", "routine",
		},
		rationale: []string{
			"Request for sensitive personal information",
			"Privacy invasion attempt detected",
		},
	},
	{
		name:      "warning",
		label:     RiskWarning,
		baseScore: 55,
		jitter:    10,
		keywords: []string{
			"why aren't you", "ignoring me", "saw you online", "need to talk", "urgent",
			"answer me", "respond", "pick up", "call me back", "where are you",
			"who are you with", "prove it", "show me", "suspicious", "don't believe",
			"controlling", "jealous", "upset with you", "disappointed",
		},
		rationale: []string{
			"Potential boundary violation detected",
			"Demanding or pressuring language used",
		},
	},
}

var safeIndicators = []string{
	"thank", "appreciate", "hope you", "how are you", "nice to",
	"loved", "enjoyed", "great to", "wonderful", "happy",
	"question about", "wondering if", "would you like",
}

var excessivePunctuation = regexp.MustCompile(`[!?]{2,}`)
var excessiveCaps = regexp.MustCompile(`[A-Z]{5,}`)

// KeywordClassifier is the message-path strategy: ordered keyword groups,
// then punctuation/caps heuristics, then safe indicators, then a neutral
// default. Labels are safe/warning/high with a 0-100 score. Results are
// memoized per message in a bounded LRU so repeated analyses of the same
// text stay stable despite the score jitter.
type KeywordClassifier struct {
	mu    sync.Mutex
	rng   *rand.Rand
	cache *lru.Cache[string, *Analysis]
}

func NewKeywordClassifier(rng *rand.Rand) *KeywordClassifier {
	cache, _ := lru.New[string, *Analysis](1024)
	return &KeywordClassifier{rng: rng, cache: cache}
}

func (c *KeywordClassifier) Classify(evidence *models.Evidence) (*Analysis, error) {
	if err := validateEvidence(evidence); err != nil {
		return nil, err
	}

	message := evidence.Data
	if cached, ok := c.cache.Get(message); ok {
		return cached, nil
	}

	result := c.analyze(message)
	c.cache.Add(message, result)
	return result, nil
}

func (c *KeywordClassifier) analyze(message string) *Analysis {
	lower := strings.ToLower(message)

	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return &Analysis{
					Label:     group.label,
					Score:     group.baseScore + c.jitter(group.jitter),
					Rationale: append([]string{"matched " + group.name + " pattern: " + kw}, group.rationale...),
				}
			}
		}
	}

	// Aggressive communication style: shouting or stacked punctuation.
	if excessivePunctuation.MatchString(message) || excessiveCaps.MatchString(message) {
		return &Analysis{
			Label: RiskWarning,
			Score: 45 + c.jitter(15),
			Rationale: []string{
				"Aggressive communication style detected",
				"Excessive punctuation or capitalization",
			},
		}
	}

	// Suspiciously vague short greeting, possibly testing responsiveness.
	isShort := len(message) < 20
	if isShort && strings.Contains(message, "...") &&
		(strings.Contains(lower, "hey") || strings.Contains(lower, "hi") || strings.Contains(lower, "hello")) {
		return &Analysis{
			Label: RiskWarning,
			Score: 35,
			Rationale: []string{
				"Vague or non-specific message",
				"May be testing your responsiveness",
			},
		}
	}

	for _, indicator := range safeIndicators {
		if strings.Contains(lower, indicator) {
			return &Analysis{
				Label:     RiskSafe,
				Score:     10 + c.jitter(10),
				Rationale: []string{"Message appears to be safe and respectful"},
			}
		}
	}

	return &Analysis{
		Label:     RiskSafe,
		Score:     20 + c.jitter(15),
		Rationale: []string{"No obvious red flags detected"},
	}
}

func (c *KeywordClassifier) jitter(n int) int {
	if n <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rng != nil {
		return c.rng.Intn(n)
	}
	return rand.Intn(n)
}
