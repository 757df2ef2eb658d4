package presenter

import (
	meetingDTO "github.com/johnquangdev/smart-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/smart-insights/internal/usecase/meeting"
)

// ToInsightsResponse converts an insight set, never emitting null lists
func ToInsightsResponse(set entities.InsightSet) meetingDTO.InsightsResponse {
	set = entities.NewInsightSet(set.ActionItems, set.Risks, set.Decisions)
	return meetingDTO.InsightsResponse{
		ActionItems: set.ActionItems,
		Risks:       set.Risks,
		Decisions:   set.Decisions,
	}
}

// ToMeetingUploadResponse converts a transcript upload result
func ToMeetingUploadResponse(out *meetingUsecase.UploadOutput) *meetingDTO.UploadResponse {
	return &meetingDTO.UploadResponse{
		MeetingID:    out.MeetingID,
		Participants: out.Participants,
		Insights:     ToInsightsResponse(out.Insights),
		ArchiveKey:   out.ArchiveKey,
	}
}

// ToMeetingBriefs converts search hits
func ToMeetingBriefs(briefs []entities.MeetingBrief) []meetingDTO.MeetingBriefResponse {
	items := make([]meetingDTO.MeetingBriefResponse, len(briefs))
	for i, b := range briefs {
		items[i] = meetingDTO.MeetingBriefResponse{
			ID:           b.ID,
			Date:         b.Date,
			Participants: b.Participants,
		}
	}
	return items
}

// ToMeetingAnalyticsResponse converts meeting analytics
func ToMeetingAnalyticsResponse(a *entities.MeetingAnalytics) *meetingDTO.AnalyticsResponse {
	resp := &meetingDTO.AnalyticsResponse{
		TotalMeetings:       a.TotalMeetings,
		DecisionsPerMeeting: make([]meetingDTO.DecisionCountResponse, len(a.DecisionsPerMeeting)),
		TopParticipants:     make([]meetingDTO.ParticipantCountResponse, len(a.TopParticipants)),
		Chart:               PNGDataURI(a.Chart),
	}
	for i, d := range a.DecisionsPerMeeting {
		resp.DecisionsPerMeeting[i] = meetingDTO.DecisionCountResponse{MeetingID: d.MeetingID, Decisions: d.Decisions}
	}
	for i, p := range a.TopParticipants {
		resp.TopParticipants[i] = meetingDTO.ParticipantCountResponse{Participant: p.Participant, Count: p.Count}
	}
	return resp
}
