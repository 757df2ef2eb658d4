package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

var insightKeys = []string{"action_items", "risks", "decisions"}

// ParseInsightResponse validates a provider reply and converts it into an insight set.
// Every key must be present and hold an array of strings; blank entries are dropped.
func ParseInsightResponse(content string) (entities.InsightSet, error) {
	content = extractJSON(content)
	if content == "" {
		return entities.InsightSet{}, fmt.Errorf("empty response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return entities.InsightSet{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	lists := make(map[string][]string, len(insightKeys))
	for _, key := range insightKeys {
		raw, ok := fields[key]
		if !ok {
			return entities.InsightSet{}, fmt.Errorf("missing %s in response", key)
		}
		items, err := decodeStringList(raw)
		if err != nil {
			return entities.InsightSet{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		lists[key] = items
	}

	return entities.NewInsightSet(lists["action_items"], lists["risks"], lists["decisions"]), nil
}

func decodeStringList(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected an array of strings")
	}

	var items []string
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("expected an array of strings: %w", err)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// extractJSON extracts JSON content from markdown code blocks or surrounding prose
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}
