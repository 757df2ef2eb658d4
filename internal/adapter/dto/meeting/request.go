package meeting

// UploadTranscriptForm holds the optional form fields sent with a transcript file
type UploadTranscriptForm struct {
	Participants string `form:"participants" validate:"max=2000"`
	Date         string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// KeywordSearchRequest represents GET /meetings/search/keyword query parameters
type KeywordSearchRequest struct {
	Keyword string `query:"keyword" validate:"required"`
}

// ParticipantSearchRequest represents GET /meetings/search/participant query parameters
type ParticipantSearchRequest struct {
	Participant string `query:"participant" validate:"required"`
}
