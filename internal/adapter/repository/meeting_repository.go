package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
)

// meetingBriefColumns keeps search results free of the raw transcript
var meetingBriefColumns = []string{"id", "date", "participants"}

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// CreateWithInsight stores the meeting, then its insight, in one transaction
func (r *meetingRepository) CreateWithInsight(ctx context.Context, meeting *entities.Meeting, set entities.InsightSet) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Insight").Create(meeting).Error; err != nil {
			return fmt.Errorf("insert meeting: %w", err)
		}

		insight := entities.NewInsight(meeting.ID, set)
		if err := tx.Create(insight).Error; err != nil {
			return fmt.Errorf("insert insight: %w", err)
		}

		meeting.Insight = insight
		return nil
	})
	if err != nil {
		return &entities.PersistenceError{Op: "store meeting", Err: err}
	}
	return nil
}

// SearchTranscripts matches the search text anywhere in the transcript
func (r *meetingRepository) SearchTranscripts(ctx context.Context, text string) ([]*entities.Meeting, error) {
	return r.searchColumn(ctx, "raw_transcript", text)
}

// SearchParticipants matches the search text anywhere in the participants field
func (r *meetingRepository) SearchParticipants(ctx context.Context, text string) ([]*entities.Meeting, error) {
	return r.searchColumn(ctx, "participants", text)
}

func (r *meetingRepository) searchColumn(ctx context.Context, column, text string) ([]*entities.Meeting, error) {
	query := r.db.WithContext(ctx).Order("date DESC").Order("id DESC")

	var meetings []*entities.Meeting
	var err error
	switch {
	case r.db.Dialector.Name() == "postgres":
		err = query.Select(meetingBriefColumns).
			Where(fmt.Sprintf(`%s ILIKE ? ESCAPE '\'`, column), containsPattern(text)).
			Find(&meetings).Error
	case isASCII(text):
		err = query.Select(meetingBriefColumns).
			Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), containsPattern(strings.ToLower(text))).
			Find(&meetings).Error
	default:
		meetings, err = r.searchFolded(query, column, text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search meetings by %s: %w", column, err)
	}
	return meetings, nil
}

// searchFolded handles non-ASCII search text on SQLite, whose LOWER and LIKE
// only fold ASCII. Each non-ASCII rune becomes a single-character wildcard in
// the SQL filter, and the candidates are then matched with Unicode folding.
func (r *meetingRepository) searchFolded(query *gorm.DB, column, text string) ([]*entities.Meeting, error) {
	columns := meetingBriefColumns
	if !slices.Contains(columns, column) {
		columns = append(slices.Clone(columns), column)
	}

	var candidates []*entities.Meeting
	err := query.Select(columns).
		Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), asciiFoldPattern(text)).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	meetings := make([]*entities.Meeting, 0, len(candidates))
	for _, m := range candidates {
		value := m.Participants
		if column == "raw_transcript" {
			value = m.RawTranscript
		}
		if !strings.Contains(strings.ToLower(value), needle) {
			continue
		}
		m.RawTranscript = ""
		meetings = append(meetings, m)
	}
	return meetings, nil
}

// FindInsightByMeetingID retrieves the insight of a meeting
func (r *meetingRepository) FindInsightByMeetingID(ctx context.Context, meetingID uint) (*entities.Insight, error) {
	var insight entities.Insight
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrInsightNotFound
		}
		return nil, fmt.Errorf("failed to find insight: %w", err)
	}
	return &insight, nil
}

// ListInsights returns all insights ordered by meeting
func (r *meetingRepository) ListInsights(ctx context.Context) ([]*entities.Insight, error) {
	var insights []*entities.Insight
	if err := r.db.WithContext(ctx).Order("meeting_id ASC").Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return insights, nil
}

// CountMeetings returns the number of stored meetings
func (r *meetingRepository) CountMeetings(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Meeting{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern escapes LIKE wildcards so the text matches literally
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// asciiFoldPattern lowercases ASCII letters and turns every other rune into "_"
func asciiFoldPattern(text string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range text {
		switch {
		case r >= utf8.RuneSelf:
			b.WriteByte('_')
		case r == '\\' || r == '%' || r == '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	b.WriteByte('%')
	return b.String()
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
