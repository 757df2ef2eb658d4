package invoice

// CreateInvoiceRequest is a manual invoice submission (form or JSON)
type CreateInvoiceRequest struct {
	Date   string   `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Vendor string   `json:"vendor" form:"vendor" validate:"required,max=255"`
	Amount *float64 `json:"amount" form:"amount" validate:"required"`
	Status string   `json:"status" form:"status" validate:"required,max=50"`
}

// ListInvoicesRequest represents query parameters for listing invoices
type ListInvoicesRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// AnalyticsRequest represents query parameters of the analytics endpoints
type AnalyticsRequest struct {
	// Window such as "30d", "12m" or "1y"; empty means all invoices
	Window string `query:"window"`
}
