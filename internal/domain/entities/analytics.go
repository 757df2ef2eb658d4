package entities

// VendorTotal is the summed spend of one vendor
type VendorTotal struct {
	Vendor string  `json:"vendor"`
	Total  float64 `json:"total"`
}

// MonthTotal is the summed spend of one calendar month (YYYY-MM)
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// InvoiceAnalytics is the aggregate view over the invoice store
type InvoiceAnalytics struct {
	Message         string           `json:"message,omitempty"`
	TopVendors      []VendorTotal    `json:"top_vendors"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
	MonthlyTrend    []MonthTotal     `json:"monthly_trends"`
	TotalInvoices   int64            `json:"total_invoices"`
	TotalAmount     float64          `json:"total_amount"`
	Chart           []byte           `json:"-"`
}

// SummaryKind classifies the rule-based summary
type SummaryKind string

const (
	SummaryKindNoData           SummaryKind = "no_data"
	SummaryKindHighOverdue      SummaryKind = "high_overdue"
	SummaryKindStrongSpending   SummaryKind = "strong_spending"
	SummaryKindModerateActivity SummaryKind = "moderate_activity"
)

// Summary is the rule-based textual summary of recent invoices
type Summary struct {
	Kind          SummaryKind `json:"kind"`
	Text          string      `json:"summary"`
	InvoiceCount  int         `json:"invoice_count"`
	TotalAmount   float64     `json:"total_amount"`
	AverageAmount float64     `json:"average_amount"`
	TopVendor     string      `json:"top_vendor,omitempty"`
	OverdueCount  int         `json:"overdue_count"`
}

// ParticipantCount is the number of action items attributed to a person
type ParticipantCount struct {
	Participant string `json:"participant"`
	Count       int    `json:"count"`
}

// MeetingDecisionCount is the number of decisions recorded for a meeting
type MeetingDecisionCount struct {
	MeetingID uint `json:"meeting_id"`
	Decisions int  `json:"decisions"`
}

// MeetingAnalytics is the aggregate view over meetings and their insights
type MeetingAnalytics struct {
	TotalMeetings       int64                  `json:"total_meetings"`
	DecisionsPerMeeting []MeetingDecisionCount `json:"decisions_per_meeting"`
	TopParticipants     []ParticipantCount     `json:"top_participants"`
	Chart               []byte                 `json:"-"`
}
