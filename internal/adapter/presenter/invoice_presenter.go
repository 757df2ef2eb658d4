package presenter

import (
	"encoding/base64"

	invoiceDTO "github.com/johnquangdev/smart-insights/internal/adapter/dto/invoice"
	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	invoiceUsecase "github.com/johnquangdev/smart-insights/internal/usecase/invoice"
)

const pngDataURIPrefix = "data:image/png;base64,"

// ToInvoiceResponse converts an Invoice entity to InvoiceResponse DTO
func ToInvoiceResponse(inv *entities.Invoice) invoiceDTO.InvoiceResponse {
	return invoiceDTO.InvoiceResponse{
		ID:     inv.ID,
		Date:   inv.Date.Format("2006-01-02"),
		Vendor: inv.Vendor,
		Amount: inv.Amount,
		Status: inv.Status,
	}
}

// ToInvoiceListResponse converts a slice of invoices
func ToInvoiceListResponse(invoices []*entities.Invoice) *invoiceDTO.InvoiceListResponse {
	items := make([]invoiceDTO.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = ToInvoiceResponse(inv)
	}
	return &invoiceDTO.InvoiceListResponse{Invoices: items, Count: len(items)}
}

// ToUploadResponse converts a batch ingestion result
func ToUploadResponse(r *invoiceUsecase.IngestResult) *invoiceDTO.UploadResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return &invoiceDTO.UploadResponse{
		Message:    r.Message,
		SavedCount: r.SavedCount,
		ErrorCount: r.ErrorCount,
		Errors:     errs,
		ArchiveKey: r.ArchiveKey,
	}
}

// ToAnalyticsResponse converts analytics and inlines the chart as a PNG data URI
func ToAnalyticsResponse(a *entities.InvoiceAnalytics) *invoiceDTO.AnalyticsResponse {
	return &invoiceDTO.AnalyticsResponse{
		Message:         a.Message,
		TopVendors:      a.TopVendors,
		StatusBreakdown: a.StatusBreakdown,
		MonthlyTrends:   a.MonthlyTrend,
		TotalInvoices:   a.TotalInvoices,
		TotalAmount:     a.TotalAmount,
		Chart:           PNGDataURI(a.Chart),
	}
}

// ToSummaryResponse converts a rule-based summary
func ToSummaryResponse(s *entities.Summary) *invoiceDTO.SummaryResponse {
	return &invoiceDTO.SummaryResponse{
		Summary:       s.Text,
		Kind:          string(s.Kind),
		InvoiceCount:  s.InvoiceCount,
		TotalAmount:   s.TotalAmount,
		AverageAmount: s.AverageAmount,
		TopVendor:     s.TopVendor,
		OverdueCount:  s.OverdueCount,
	}
}

// PNGDataURI encodes PNG bytes as a data URI; empty input yields ""
func PNGDataURI(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(png)
}
