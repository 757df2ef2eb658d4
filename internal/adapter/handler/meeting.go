package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/errors"
	meetingDTO "github.com/johnquangdev/smart-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/smart-insights/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/smart-insights/internal/usecase/meeting"
)

// Meeting handles transcript and insight HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Upload handles POST /meetings/upload
// @Summary      Upload a meeting transcript
// @Description  Stores the transcript and extracts action items, risks and decisions
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "UTF-8 transcript"
// @Param        participants  formData  string  false  "Comma separated participants; derived from speaker labels when empty"
// @Param        date          formData  string  false  "Meeting date (YYYY-MM-DD); defaults to now"
// @Success      200           {object}  meeting.UploadResponse
// @Failure      400           {object}  map[string]interface{}  "Invalid transcript"
// @Router       /meetings/upload [post]
func (h *Meeting) Upload(c echo.Context) error {
	var form meetingDTO.UploadTranscriptForm
	if err := c.Bind(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	filename, content, err := readUpload(c, "file")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UploadInput{
		Filename:     filename,
		Content:      content,
		Participants: form.Participants,
	}
	if form.Date != "" {
		date, err := time.Parse("2006-01-02", form.Date)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid date format, use YYYY-MM-DD"))
		}
		input.Date = &date
	}

	out, err := h.meetingService.Upload(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingUploadResponse(out))
}

// SearchByKeyword handles GET /meetings/search/keyword
// @Summary      Search transcripts
// @Tags         Meetings
// @Produce      json
// @Param        keyword  query     string  true  "Case-insensitive substring"
// @Success      200      {array}   meeting.MeetingBriefResponse
// @Router       /meetings/search/keyword [get]
func (h *Meeting) SearchByKeyword(c echo.Context) error {
	var req meetingDTO.KeywordSearchRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("keyword is required"))
	}

	briefs, err := h.meetingService.SearchByKeyword(c.Request().Context(), req.Keyword)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingBriefs(briefs))
}

// SearchByParticipant handles GET /meetings/search/participant
// @Summary      Search participants
// @Tags         Meetings
// @Produce      json
// @Param        participant  query     string  true  "Case-insensitive substring"
// @Success      200          {array}   meeting.MeetingBriefResponse
// @Router       /meetings/search/participant [get]
func (h *Meeting) SearchByParticipant(c echo.Context) error {
	var req meetingDTO.ParticipantSearchRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("participant is required"))
	}

	briefs, err := h.meetingService.SearchByParticipant(c.Request().Context(), req.Participant)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingBriefs(briefs))
}

// GetInsights handles GET /meetings/:id/insights
// @Summary      Meeting insights
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.InsightsResponse
// @Failure      404  {object}  map[string]interface{}  "Insights not found"
// @Router       /meetings/{id}/insights [get]
func (h *Meeting) GetInsights(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	set, err := h.meetingService.GetInsights(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToInsightsResponse(set))
}

// Analytics handles GET /meetings/analytics
// @Summary      Meeting analytics
// @Description  Decisions per meeting and the participants owning the most action items
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  meeting.AnalyticsResponse
// @Router       /meetings/analytics [get]
func (h *Meeting) Analytics(c echo.Context) error {
	result, err := h.meetingService.Analytics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAnalyticsFailed(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingAnalyticsResponse(result))
}
