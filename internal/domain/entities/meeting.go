package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Meeting is one uploaded transcript
type Meeting struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date          time.Time `json:"date" gorm:"not null;index"`
	Participants  string    `json:"participants" gorm:"type:text"`
	RawTranscript string    `json:"raw_transcript" gorm:"type:text"`

	Insight *Insight `json:"insight,omitempty" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// Insight is the stored insight set of a meeting. MeetingID is unique, so a
// meeting owns at most one insight row.
type Insight struct {
	ID          uint                        `json:"id" gorm:"primaryKey;autoIncrement"`
	MeetingID   uint                        `json:"meeting_id" gorm:"not null;uniqueIndex"`
	ActionItems datatypes.JSONSlice[string] `json:"action_items" gorm:"not null"`
	Risks       datatypes.JSONSlice[string] `json:"risks" gorm:"not null"`
	Decisions   datatypes.JSONSlice[string] `json:"decisions" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Insight) TableName() string {
	return "insights"
}

// InsightSet is the three derived lists of a transcript
type InsightSet struct {
	ActionItems []string `json:"action_items"`
	Risks       []string `json:"risks"`
	Decisions   []string `json:"decisions"`
}

// NewInsightSet returns an insight set with all lists non-nil
func NewInsightSet(actionItems, risks, decisions []string) InsightSet {
	return InsightSet{
		ActionItems: nonNil(actionItems),
		Risks:       nonNil(risks),
		Decisions:   nonNil(decisions),
	}
}

// NewInsight converts an insight set into its stored form
func NewInsight(meetingID uint, set InsightSet) *Insight {
	return &Insight{
		MeetingID:   meetingID,
		ActionItems: datatypes.JSONSlice[string](nonNil(set.ActionItems)),
		Risks:       datatypes.JSONSlice[string](nonNil(set.Risks)),
		Decisions:   datatypes.JSONSlice[string](nonNil(set.Decisions)),
	}
}

// Set returns the insight lists as plain string slices
func (i *Insight) Set() InsightSet {
	return NewInsightSet(i.ActionItems, i.Risks, i.Decisions)
}

// MeetingBrief is the search result shape
type MeetingBrief struct {
	ID           uint      `json:"id"`
	Date         time.Time `json:"date"`
	Participants string    `json:"participants"`
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
