package entities

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Invoice status labels used by the statistics endpoint
const (
	InvoiceStatusPaid    = "paid"
	InvoiceStatusPending = "pending"
	InvoiceStatusOverdue = "overdue"
)

// Invoice is a single ingested or manually submitted invoice
type Invoice struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	Vendor    string    `json:"vendor" gorm:"type:varchar(255);not null;index"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice builds an invoice, enforcing the non-null and lowercase-status invariants
func NewInvoice(date time.Time, vendor string, amount float64, status string) (*Invoice, error) {
	vendor = strings.TrimSpace(vendor)
	status = strings.ToLower(strings.TrimSpace(status))

	if date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if vendor == "" {
		return nil, fmt.Errorf("vendor is required")
	}
	if status == "" {
		return nil, fmt.Errorf("status is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("amount must be a finite number")
	}

	return &Invoice{
		Date:   date.UTC(),
		Vendor: vendor,
		Amount: amount,
		Status: status,
	}, nil
}

// InvoiceStats holds the dashboard counters
type InvoiceStats struct {
	TotalInvoices int64   `json:"total_invoices"`
	TotalAmount   float64 `json:"total_amount"`
	PaidCount     int64   `json:"paid_count"`
	PendingCount  int64   `json:"pending_count"`
	OverdueCount  int64   `json:"overdue_count"`
	AvgAmount     float64 `json:"avg_amount"`
}
