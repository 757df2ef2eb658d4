package repositories

import (
	"context"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting and insight data access
type MeetingRepository interface {
	// CreateWithInsight stores a meeting and its insight set atomically
	CreateWithInsight(ctx context.Context, meeting *entities.Meeting, set entities.InsightSet) error

	// SearchTranscripts returns meetings whose transcript contains text, case-insensitively
	SearchTranscripts(ctx context.Context, text string) ([]*entities.Meeting, error)

	// SearchParticipants returns meetings whose participants contain text, case-insensitively
	SearchParticipants(ctx context.Context, text string) ([]*entities.Meeting, error)

	// FindInsightByMeetingID returns entities.ErrInsightNotFound when the meeting has no insight
	FindInsightByMeetingID(ctx context.Context, meetingID uint) (*entities.Insight, error)

	// ListInsights returns every stored insight ordered by meeting id
	ListInsights(ctx context.Context) ([]*entities.Insight, error)

	// CountMeetings returns the number of stored meetings
	CountMeetings(ctx context.Context) (int64, error)
}
