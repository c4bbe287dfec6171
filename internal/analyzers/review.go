package analyzers

import (
	"strings"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// reviewRule maps a sentiment phrase to its score. Rules are matched by
// case-sensitive substring containment, most specific phrase first:
// "Very Positive" must never fall through to the bare "Positive" rule.
// The order of this table is load-bearing; do not sort it.
type reviewRule struct {
	phrase string
	score  float64
}

var reviewRules = []reviewRule{
	{"Overwhelmingly Positive", 95},
	{"Very Positive", 85},
	{"Mostly Positive", 78},
	{"Overwhelmingly Negative", 5},
	{"Very Negative", 15},
	{"Mostly Negative", 25},
	{"Positive", 75},
	{"Negative", 20},
	{"Mixed", 50},
}

// AnalyzeReview maps a qualitative review label onto a numeric score.
// Unrecognized or empty labels default to Mixed/50.
func AnalyzeReview(label string) domain.ReviewScore {
	for _, rule := range reviewRules {
		if strings.Contains(label, rule.phrase) {
			return domain.ReviewScore{Category: rule.phrase, Score: rule.score}
		}
	}
	return domain.ReviewScore{Category: "Mixed", Score: 50}
}
