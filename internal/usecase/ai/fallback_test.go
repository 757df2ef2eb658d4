package ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackInsights_ClassifiesLines(t *testing.T) {
	transcript := "Alice: will finish the report.\nThere is a risk of delay.\nWe decided to proceed."

	set := FallbackInsights(transcript)

	assert.Equal(t, []string{"Alice: will finish the report."}, set.ActionItems)
	assert.Equal(t, []string{"There is a risk of delay."}, set.Risks)
	assert.Equal(t, []string{"We decided to proceed."}, set.Decisions)
}

func TestFallbackInsights_NonExclusive(t *testing.T) {
	set := FallbackInsights("Bob: we agreed we must fix the ISSUE today")

	assert.Len(t, set.ActionItems, 1)
	assert.Len(t, set.Risks, 1)
	assert.Len(t, set.Decisions, 1)
}

func TestFallbackInsights_CapsAtFiveInOrder(t *testing.T) {
	var lines []string
	for i := 1; i <= 8; i++ {
		lines = append(lines, fmt.Sprintf("  item %d: we should do it  ", i))
	}

	set := FallbackInsights(strings.Join(lines, "\r\n"))

	assert.Len(t, set.ActionItems, 5)
	assert.Equal(t, "item 1: we should do it", set.ActionItems[0])
	assert.Equal(t, "item 5: we should do it", set.ActionItems[4])
}

func TestFallbackInsights_EmptyTranscript(t *testing.T) {
	set := FallbackInsights("\n\n   \n")

	assert.NotNil(t, set.ActionItems)
	assert.NotNil(t, set.Risks)
	assert.NotNil(t, set.Decisions)
	assert.Empty(t, set.ActionItems)
}
