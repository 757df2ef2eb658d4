package meeting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
	"github.com/johnquangdev/smart-insights/pkg/chart"
)

const (
	topParticipantLimit = 5
	maxSpeakerLabelLen  = 40
	archiveCategory     = "meetings"
)

// InsightExtractor derives an insight set from transcript text without failing
type InsightExtractor interface {
	Extract(ctx context.Context, transcript string) entities.InsightSet
}

// Service defines the interface for meeting use case
type Service interface {
	// Upload stores a transcript together with its extracted insights
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)

	// SearchByKeyword finds meetings whose transcript contains the text
	SearchByKeyword(ctx context.Context, text string) ([]entities.MeetingBrief, error)

	// SearchByParticipant finds meetings whose participants contain the text
	SearchByParticipant(ctx context.Context, text string) ([]entities.MeetingBrief, error)

	// GetInsights returns the insight set of a meeting
	GetInsights(ctx context.Context, meetingID uint) (entities.InsightSet, error)

	// Analytics aggregates decisions and action-item owners across meetings
	Analytics(ctx context.Context) (*entities.MeetingAnalytics, error)
}

// UploadInput is one uploaded transcript
type UploadInput struct {
	Filename     string
	Content      []byte
	Participants string
	// Date defaults to the upload time when nil
	Date *time.Time
}

// UploadOutput is the stored meeting id and its insights
type UploadOutput struct {
	MeetingID    uint                `json:"meeting_id"`
	Participants string              `json:"participants"`
	Insights     entities.InsightSet `json:"insights"`
	ArchiveKey   string              `json:"archive_key,omitempty"`
}

type service struct {
	repo        repositories.MeetingRepository
	extractor   InsightExtractor
	archive     repositories.UploadArchive
	logger      *zap.Logger
	renderChart func(...chart.Series) ([]byte, error)
	now         func() time.Time
}

// NewService creates the meeting service. archive may be nil.
func NewService(repo repositories.MeetingRepository, extractor InsightExtractor, archive repositories.UploadArchive, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:        repo,
		extractor:   extractor,
		archive:     archive,
		logger:      logger,
		renderChart: chart.BarPanelsPNG,
		now:         time.Now,
	}
}

// Upload implements Service
func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if !utf8.Valid(input.Content) || strings.TrimSpace(string(input.Content)) == "" {
		return nil, usecaseErrors.ErrInvalidTranscript
	}
	transcript := string(input.Content)

	participants := strings.TrimSpace(input.Participants)
	if participants == "" {
		participants = strings.Join(SpeakerLabels(transcript), ", ")
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	insights := s.extractor.Extract(ctx, transcript)

	m := &entities.Meeting{
		Date:          date,
		Participants:  participants,
		RawTranscript: transcript,
	}
	if err := s.repo.CreateWithInsight(ctx, m, insights); err != nil {
		return nil, err
	}

	out := &UploadOutput{
		MeetingID:    m.ID,
		Participants: participants,
		Insights:     insights,
	}

	if s.archive != nil {
		key, err := s.archive.Archive(ctx, archiveCategory, input.Filename, input.Content)
		if err != nil {
			s.logger.Warn("failed to archive transcript", zap.Uint("meeting_id", m.ID), zap.Error(err))
		} else {
			out.ArchiveKey = key
		}
	}

	s.logger.Info("meeting uploaded",
		zap.Uint("meeting_id", m.ID),
		zap.Int("action_items", len(insights.ActionItems)),
		zap.Int("risks", len(insights.Risks)),
		zap.Int("decisions", len(insights.Decisions)),
	)
	return out, nil
}

// SearchByKeyword implements Service
func (s *service) SearchByKeyword(ctx context.Context, text string) ([]entities.MeetingBrief, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, usecaseErrors.ErrEmptySearch
	}
	meetings, err := s.repo.SearchTranscripts(ctx, text)
	if err != nil {
		return nil, err
	}
	return toBriefs(meetings), nil
}

// SearchByParticipant implements Service
func (s *service) SearchByParticipant(ctx context.Context, text string) ([]entities.MeetingBrief, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, usecaseErrors.ErrEmptySearch
	}
	meetings, err := s.repo.SearchParticipants(ctx, text)
	if err != nil {
		return nil, err
	}
	return toBriefs(meetings), nil
}

func toBriefs(meetings []*entities.Meeting) []entities.MeetingBrief {
	briefs := make([]entities.MeetingBrief, len(meetings))
	for i, m := range meetings {
		briefs[i] = entities.MeetingBrief{ID: m.ID, Date: m.Date, Participants: m.Participants}
	}
	return briefs
}

// GetInsights implements Service
func (s *service) GetInsights(ctx context.Context, meetingID uint) (entities.InsightSet, error) {
	insight, err := s.repo.FindInsightByMeetingID(ctx, meetingID)
	if err != nil {
		return entities.InsightSet{}, err
	}
	return insight.Set(), nil
}

// Analytics implements Service
func (s *service) Analytics(ctx context.Context) (*entities.MeetingAnalytics, error) {
	total, err := s.repo.CountMeetings(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := s.repo.ListInsights(ctx)
	if err != nil {
		return nil, err
	}

	result := &entities.MeetingAnalytics{
		TotalMeetings:       total,
		DecisionsPerMeeting: make([]entities.MeetingDecisionCount, 0, len(insights)),
		TopParticipants:     TopActionOwners(insights, topParticipantLimit),
	}
	for _, in := range insights {
		result.DecisionsPerMeeting = append(result.DecisionsPerMeeting, entities.MeetingDecisionCount{
			MeetingID: in.MeetingID,
			Decisions: len(in.Decisions),
		})
	}

	panels := analyticsPanels(result)
	if len(panels) == 0 {
		return result, nil
	}
	png, err := s.renderChart(panels...)
	if err != nil {
		s.logger.Warn("failed to render meeting analytics chart", zap.Error(err))
		return result, nil
	}
	result.Chart = png

	return result, nil
}

// analyticsPanels builds the decisions panel and, when any action item has an owner, the owners panel
func analyticsPanels(a *entities.MeetingAnalytics) []chart.Series {
	var panels []chart.Series

	if len(a.DecisionsPerMeeting) > 0 {
		decisions := chart.Series{
			Title:  "Decisions per Meeting",
			XLabel: "Meeting",
			YLabel: "Decisions",
			Labels: make([]string, len(a.DecisionsPerMeeting)),
			Values: make([]float64, len(a.DecisionsPerMeeting)),
		}
		for i, d := range a.DecisionsPerMeeting {
			decisions.Labels[i] = fmt.Sprintf("Meeting %d", d.MeetingID)
			decisions.Values[i] = float64(d.Decisions)
		}
		panels = append(panels, decisions)
	}

	if len(a.TopParticipants) > 0 {
		owners := chart.Series{
			Title:  "Action Items per Participant",
			XLabel: "Participant",
			YLabel: "Action items",
			Labels: make([]string, len(a.TopParticipants)),
			Values: make([]float64, len(a.TopParticipants)),
		}
		for i, p := range a.TopParticipants {
			owners.Labels[i] = p.Participant
			owners.Values[i] = float64(p.Count)
		}
		panels = append(panels, owners)
	}

	return panels
}

// TopActionOwners counts action items by owner (the text before the first ':').
// Items without an owner are ignored; ties keep first appearance.
func TopActionOwners(insights []*entities.Insight, limit int) []entities.ParticipantCount {
	counts := make([]entities.ParticipantCount, 0)
	idx := make(map[string]int)

	for _, in := range insights {
		for _, item := range in.ActionItems {
			owner, _, found := strings.Cut(item, ":")
			owner = strings.TrimSpace(owner)
			if !found || owner == "" {
				continue
			}
			if i, ok := idx[owner]; ok {
				counts[i].Count++
				continue
			}
			idx[owner] = len(counts)
			counts = append(counts, entities.ParticipantCount{Participant: owner, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// SpeakerLabels returns the distinct "Name:" line prefixes of a transcript in order of first appearance
func SpeakerLabels(transcript string) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)

	for _, line := range strings.Split(transcript, "\n") {
		label, rest, found := strings.Cut(strings.TrimSpace(line), ":")
		label = strings.TrimSpace(label)
		if !found || !isSpeakerLabel(label) {
			continue
		}
		// "https://..." and "12:30" style prefixes are not speakers
		if rest != "" && !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		labels = append(labels, label)
	}
	return labels
}

func isSpeakerLabel(label string) bool {
	if label == "" || len(label) > maxSpeakerLabelLen {
		return false
	}
	if len(strings.Fields(label)) > 3 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(label)
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range label {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '.' && r != '-' && r != '\'' && r != '_' {
			return false
		}
	}
	return true
}
