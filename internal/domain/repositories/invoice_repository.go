package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

// InvoiceFilters narrows the invoices loaded for aggregation
type InvoiceFilters struct {
	// Since keeps invoices dated on or after this instant; zero means no lower bound
	Since time.Time
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	// CreateBatch inserts all invoices in a single transaction
	CreateBatch(ctx context.Context, invoices []*entities.Invoice) error

	// Create inserts a single invoice
	Create(ctx context.Context, invoice *entities.Invoice) error

	// ListRecent returns the newest invoices by date
	ListRecent(ctx context.Context, limit int) ([]*entities.Invoice, error)

	// ListForAnalytics returns invoices ordered by id (insertion order)
	ListForAnalytics(ctx context.Context, filters InvoiceFilters) ([]*entities.Invoice, error)

	// Delete removes an invoice, returning entities.ErrInvoiceNotFound when nothing matched
	Delete(ctx context.Context, id uint) error

	// Stats computes the dashboard counters in a single aggregate query
	Stats(ctx context.Context) (*entities.InvoiceStats, error)
}
