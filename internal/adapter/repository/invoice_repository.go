package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
)

const invoiceInsertBatchSize = 200

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) repositories.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateBatch inserts all invoices in one transaction; on any failure nothing is kept
func (r *invoiceRepository) CreateBatch(ctx context.Context, invoices []*entities.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(invoices, invoiceInsertBatchSize).Error
	})
	if err != nil {
		return &entities.PersistenceError{Op: "insert invoice batch", Err: err}
	}
	return nil
}

// Create inserts a single invoice
func (r *invoiceRepository) Create(ctx context.Context, invoice *entities.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return &entities.PersistenceError{Op: "insert invoice", Err: err}
	}
	return nil
}

// ListRecent returns the newest invoices by date
func (r *invoiceRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Invoice, error) {
	var invoices []*entities.Invoice
	query := r.db.WithContext(ctx).Order("date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// ListForAnalytics returns invoices in insertion order
func (r *invoiceRepository) ListForAnalytics(ctx context.Context, filters repositories.InvoiceFilters) ([]*entities.Invoice, error) {
	var invoices []*entities.Invoice
	query := r.db.WithContext(ctx).Model(&entities.Invoice{})
	if !filters.Since.IsZero() {
		query = query.Where("date >= ?", filters.Since.UTC())
	}

	if err := query.Order("id ASC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

// Delete removes an invoice by id
func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Invoice{}, id)
	if result.Error != nil {
		return &entities.PersistenceError{Op: "delete invoice", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return entities.ErrInvoiceNotFound
	}
	return nil
}

type invoiceStatsRow struct {
	TotalInvoices int64
	TotalAmount   float64
	PaidCount     int64
	PendingCount  int64
	OverdueCount  int64
}

// Stats computes the counters with a single aggregate query
func (r *invoiceRepository) Stats(ctx context.Context) (*entities.InvoiceStats, error) {
	var row invoiceStatsRow
	err := r.db.WithContext(ctx).
		Model(&entities.Invoice{}).
		Select(`COUNT(*) AS total_invoices,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS paid_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS overdue_count`,
			entities.InvoiceStatusPaid, entities.InvoiceStatusPending, entities.InvoiceStatusOverdue).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute invoice stats: %w", err)
	}

	stats := &entities.InvoiceStats{
		TotalInvoices: row.TotalInvoices,
		TotalAmount:   row.TotalAmount,
		PaidCount:     row.PaidCount,
		PendingCount:  row.PendingCount,
		OverdueCount:  row.OverdueCount,
	}
	if row.TotalInvoices > 0 {
		stats.AvgAmount = row.TotalAmount / float64(row.TotalInvoices)
	}
	return stats, nil
}
