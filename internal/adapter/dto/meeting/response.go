package meeting

import "time"

// InsightsResponse is the three-list insight set
type InsightsResponse struct {
	ActionItems []string `json:"action_items"`
	Risks       []string `json:"risks"`
	Decisions   []string `json:"decisions"`
}

// UploadResponse is returned after a transcript upload
type UploadResponse struct {
	MeetingID    uint             `json:"meeting_id"`
	Participants string           `json:"participants"`
	Insights     InsightsResponse `json:"insights"`
	ArchiveKey   string           `json:"archive_key,omitempty"`
}

// MeetingBriefResponse is one search hit
type MeetingBriefResponse struct {
	ID           uint      `json:"id"`
	Date         time.Time `json:"date"`
	Participants string    `json:"participants"`
}

// AnalyticsResponse aggregates insights across meetings
type AnalyticsResponse struct {
	TotalMeetings       int64                      `json:"total_meetings"`
	DecisionsPerMeeting []DecisionCountResponse    `json:"decisions_per_meeting"`
	TopParticipants     []ParticipantCountResponse `json:"top_participants"`
	Chart               string                     `json:"chart,omitempty"`
}

// DecisionCountResponse is the number of decisions of one meeting
type DecisionCountResponse struct {
	MeetingID uint `json:"meeting_id"`
	Decisions int  `json:"decisions"`
}

// ParticipantCountResponse is the number of action items owned by one participant
type ParticipantCountResponse struct {
	Participant string `json:"participant"`
	Count       int    `json:"count"`
}
