package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	pkgai "github.com/johnquangdev/smart-insights/pkg/ai"
)

const insightPrompt = `Analyze this meeting transcript and extract:
1. Action items (format: "Person: Task")
2. Risks/Issues identified
3. Decisions made

Return only a JSON object with exactly these keys, each an array of strings:
{"action_items": [], "risks": [], "decisions": []}

Transcript:
%s`

// Extractor derives the insight set of a transcript. It never fails: any
// problem with the generative-text provider routes to the keyword fallback.
type Extractor struct {
	generator pkgai.TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExtractor creates an extractor. A nil generator means fallback-only extraction.
func NewExtractor(generator pkgai.TextGenerator, timeout time.Duration, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Extract returns the action items, risks and decisions of the transcript
func (e *Extractor) Extract(ctx context.Context, transcript string) entities.InsightSet {
	if e.generator == nil {
		return FallbackInsights(transcript)
	}

	set, err := e.generate(ctx, transcript)
	if err != nil {
		e.logger.Warn("insight extraction fell back to keyword classification",
			zap.String("provider", e.generator.Name()),
			zap.Error(err),
		)
		return FallbackInsights(transcript)
	}

	e.logger.Debug("insights extracted",
		zap.String("provider", e.generator.Name()),
		zap.Int("action_items", len(set.ActionItems)),
		zap.Int("risks", len(set.Risks)),
		zap.Int("decisions", len(set.Decisions)),
	)
	return set
}

func (e *Extractor) generate(ctx context.Context, transcript string) (entities.InsightSet, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.generator.Generate(ctx, fmt.Sprintf(insightPrompt, transcript))
	if err != nil {
		return entities.InsightSet{}, &entities.ExternalServiceError{Service: e.generator.Name(), Err: err}
	}

	set, err := ParseInsightResponse(raw)
	if err != nil {
		return entities.InsightSet{}, &entities.ExternalServiceError{Service: e.generator.Name(), Err: err}
	}
	return set, nil
}
