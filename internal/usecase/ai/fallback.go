package ai

import (
	"strings"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

// maxFallbackItems caps each category of the keyword fallback
const maxFallbackItems = 5

var (
	actionKeywords   = []string{"will", "need to", "should", "must", "coordinate", "provide", "implement"}
	riskKeywords     = []string{"risk", "issue", "concern", "problem", "challenge", "delay"}
	decisionKeywords = []string{"decided", "decision", "agreed", "approved", "confirmed"}
)

// FallbackInsights classifies transcript lines by keyword. A line may land in
// several categories; each category keeps its first five lines in transcript order.
func FallbackInsights(transcript string) entities.InsightSet {
	actions := make([]string, 0, maxFallbackItems)
	risks := make([]string, 0, maxFallbackItems)
	decisions := make([]string, 0, maxFallbackItems)

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if len(actions) < maxFallbackItems && containsAny(lower, actionKeywords) {
			actions = append(actions, line)
		}
		if len(risks) < maxFallbackItems && containsAny(lower, riskKeywords) {
			risks = append(risks, line)
		}
		if len(decisions) < maxFallbackItems && containsAny(lower, decisionKeywords) {
			decisions = append(decisions, line)
		}
	}

	return entities.NewInsightSet(actions, risks, decisions)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
