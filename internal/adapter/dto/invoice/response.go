package invoice

import "github.com/johnquangdev/smart-insights/internal/domain/entities"

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID     uint    `json:"id"`
	Date   string  `json:"date"`
	Vendor string  `json:"vendor"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// InvoiceListResponse wraps the recent invoice listing
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Count    int               `json:"count"`
}

// CreateInvoiceResponse is returned after a manual submission
type CreateInvoiceResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// MessageResponse carries a single human-readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse reports a batch upload
type UploadResponse struct {
	Message    string   `json:"message"`
	SavedCount int      `json:"saved_count"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
	ArchiveKey string   `json:"archive_key,omitempty"`
}

// AnalyticsResponse is the analytics payload with the trend chart inlined as a data URI
type AnalyticsResponse struct {
	Message         string                 `json:"message,omitempty"`
	TopVendors      []entities.VendorTotal `json:"top_vendors"`
	StatusBreakdown map[string]int64       `json:"status_breakdown"`
	MonthlyTrends   []entities.MonthTotal  `json:"monthly_trends"`
	TotalInvoices   int64                  `json:"total_invoices"`
	TotalAmount     float64                `json:"total_amount"`
	Chart           string                 `json:"chart,omitempty"`
}

// SummaryResponse is the rule-based summary
type SummaryResponse struct {
	Summary       string  `json:"summary"`
	Kind          string  `json:"kind"`
	InvoiceCount  int     `json:"invoice_count"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
	TopVendor     string  `json:"top_vendor,omitempty"`
	OverdueCount  int     `json:"overdue_count"`
}
