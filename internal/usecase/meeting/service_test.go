package meeting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/smart-insights/internal/adapter/repository"
	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
	"github.com/johnquangdev/smart-insights/pkg/chart"
)

type fixedExtractor struct {
	set        entities.InsightSet
	transcript string
}

func (f *fixedExtractor) Extract(_ context.Context, transcript string) entities.InsightSet {
	f.transcript = transcript
	return f.set
}

type fakeArchive struct {
	category string
	filename string
	err      error
}

func (f *fakeArchive) Archive(_ context.Context, category, filename string, _ []byte) (string, error) {
	f.category, f.filename = category, filename
	if f.err != nil {
		return "", f.err
	}
	return "uploads/" + category + "/" + filename, nil
}

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, ex InsightExtractor, archive *fakeArchive) *service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Meeting{}, &entities.Insight{}))

	var a repositories.UploadArchive
	if archive != nil {
		a = archive
	}
	svc := NewService(repository.NewMeetingRepository(db), ex, a, nil).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestUpload_StoresMeetingAndDerivesParticipants(t *testing.T) {
	ex := &fixedExtractor{set: entities.NewInsightSet([]string{"Alice: send notes"}, nil, []string{"Ship v2"})}
	archive := &fakeArchive{}
	svc := newTestService(t, ex, archive)
	ctx := context.Background()

	transcript := "Alice: hello\nBob: hi there\n10:30 break\nalice: one more thing\n"
	out, err := svc.Upload(ctx, UploadInput{Filename: "standup.txt", Content: []byte(transcript)})
	require.NoError(t, err)

	assert.NotZero(t, out.MeetingID)
	assert.Equal(t, "Alice, Bob", out.Participants)
	assert.Equal(t, []string{"Ship v2"}, out.Insights.Decisions)
	assert.Equal(t, transcript, ex.transcript)
	assert.Equal(t, "meetings", archive.category)
	assert.Equal(t, "uploads/meetings/standup.txt", out.ArchiveKey)

	got, err := svc.GetInsights(ctx, out.MeetingID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice: send notes"}, got.ActionItems)
	assert.Empty(t, got.Risks)

	found, err := svc.SearchByParticipant(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, out.MeetingID, found[0].ID)
	assert.True(t, found[0].Date.Equal(fixedNow))
}

func TestUpload_ExplicitParticipantsAndDate(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{set: entities.NewInsightSet(nil, nil, nil)}, nil)
	date := time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)

	out, err := svc.Upload(context.Background(), UploadInput{
		Filename:     "x.txt",
		Content:      []byte("Alice: hi"),
		Participants: "  Carol, Dan ",
		Date:         &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol, Dan", out.Participants)
	assert.Empty(t, out.ArchiveKey)

	found, err := svc.SearchByKeyword(context.Background(), "HI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].Date.Equal(date))
}

func TestUpload_RejectsInvalidTranscript(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{}, nil)

	for name, content := range map[string][]byte{
		"empty":    nil,
		"blank":    []byte(" \n\t "),
		"not utf8": {0xff, 0xfe, 0x00},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), UploadInput{Filename: "a.txt", Content: content})
			assert.ErrorIs(t, err, usecaseErrors.ErrInvalidTranscript)
		})
	}
}

func TestUpload_ArchiveFailureIsNotFatal(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{set: entities.NewInsightSet(nil, nil, nil)}, &fakeArchive{err: errors.New("bucket gone")})

	out, err := svc.Upload(context.Background(), UploadInput{Filename: "a.txt", Content: []byte("notes")})
	require.NoError(t, err)
	assert.NotZero(t, out.MeetingID)
	assert.Empty(t, out.ArchiveKey)
}

func TestSearch_EmptyText(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{}, nil)

	_, err := svc.SearchByKeyword(context.Background(), "  ")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptySearch)
	_, err = svc.SearchByParticipant(context.Background(), "")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptySearch)
}

func TestGetInsights_NotFound(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{}, nil)

	_, err := svc.GetInsights(context.Background(), 42)
	assert.ErrorIs(t, err, entities.ErrInsightNotFound)
}

func TestAnalytics(t *testing.T) {
	ex := &fixedExtractor{}
	svc := newTestService(t, ex, nil)
	ctx := context.Background()

	ex.set = entities.NewInsightSet([]string{"Alice: a", "Bob: b", "no owner"}, nil, []string{"d1", "d2"})
	first, err := svc.Upload(ctx, UploadInput{Filename: "1.txt", Content: []byte("one")})
	require.NoError(t, err)
	ex.set = entities.NewInsightSet([]string{"Bob: c"}, nil, nil)
	second, err := svc.Upload(ctx, UploadInput{Filename: "2.txt", Content: []byte("two")})
	require.NoError(t, err)

	got, err := svc.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalMeetings)
	assert.Equal(t, []entities.MeetingDecisionCount{
		{MeetingID: first.MeetingID, Decisions: 2},
		{MeetingID: second.MeetingID, Decisions: 0},
	}, got.DecisionsPerMeeting)
	assert.Equal(t, []entities.ParticipantCount{
		{Participant: "Bob", Count: 2},
		{Participant: "Alice", Count: 1},
	}, got.TopParticipants)
	assert.True(t, bytes.HasPrefix(got.Chart, []byte("\x89PNG")))
}

func TestAnalytics_ChartPanels(t *testing.T) {
	ex := &fixedExtractor{}
	svc := newTestService(t, ex, nil)
	ctx := context.Background()

	var panels []chart.Series
	svc.renderChart = func(series ...chart.Series) ([]byte, error) {
		panels = series
		return []byte("png"), nil
	}

	ex.set = entities.NewInsightSet([]string{"follow up later"}, nil, []string{"d1", "d2", "d3"})
	first, err := svc.Upload(ctx, UploadInput{Filename: "1.txt", Content: []byte("one")})
	require.NoError(t, err)

	got, err := svc.Analytics(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.TopParticipants)
	assert.Equal(t, []byte("png"), got.Chart)
	require.Len(t, panels, 1)
	assert.Equal(t, "Decisions per Meeting", panels[0].Title)
	assert.Equal(t, []string{fmt.Sprintf("Meeting %d", first.MeetingID)}, panels[0].Labels)
	assert.Equal(t, []float64{3}, panels[0].Values)

	ex.set = entities.NewInsightSet([]string{"Carol: book room"}, nil, nil)
	_, err = svc.Upload(ctx, UploadInput{Filename: "2.txt", Content: []byte("two")})
	require.NoError(t, err)

	_, err = svc.Analytics(ctx)
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.Equal(t, []float64{3, 0}, panels[0].Values)
	assert.Equal(t, "Action Items per Participant", panels[1].Title)
	assert.Equal(t, []string{"Carol"}, panels[1].Labels)
}

func TestAnalytics_NoMeetings(t *testing.T) {
	svc := newTestService(t, &fixedExtractor{}, nil)
	svc.renderChart = func(...chart.Series) ([]byte, error) {
		t.Fatal("chart should not be rendered without meetings")
		return nil, nil
	}

	got, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalMeetings)
	assert.Empty(t, got.DecisionsPerMeeting)
	assert.Empty(t, got.TopParticipants)
	assert.Nil(t, got.Chart)
}

func TestTopActionOwners_LimitAndTies(t *testing.T) {
	insights := []*entities.Insight{
		{ActionItems: []string{"E: 1", "D: 1", "C: 1", "B: 1", "A: 1", "F: 1", "F: 2"}},
	}

	got := TopActionOwners(insights, 5)
	require.Len(t, got, 5)
	assert.Equal(t, "F", got[0].Participant)
	assert.Equal(t, []string{"E", "D", "C", "B"}, []string{got[1].Participant, got[2].Participant, got[3].Participant, got[4].Participant})
}

func TestSpeakerLabels(t *testing.T) {
	transcript := "Dr. Smith: welcome\n  Jane Doe: thanks\nNote: this is a long note with many words: ignored?\n" +
		"[00:01] noise\nDR. SMITH: again\nhttps://example.com\n"

	assert.Equal(t, []string{"Dr. Smith", "Jane Doe", "Note"}, SpeakerLabels(transcript))
	assert.Empty(t, SpeakerLabels("no labels here"))
}
