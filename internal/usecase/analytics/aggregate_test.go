package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

func inv(date, vendor string, amount float64, status string) *entities.Invoice {
	d, _ := time.Parse("2006-01-02", date)
	return &entities.Invoice{Date: d, Vendor: vendor, Amount: amount, Status: status}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)

	assert.Equal(t, "No invoice data available", got.Message)
	assert.Equal(t, int64(0), got.TotalInvoices)
	assert.Equal(t, 0.0, got.TotalAmount)
	assert.NotNil(t, got.TopVendors)
	assert.Empty(t, got.TopVendors)
	assert.NotNil(t, got.StatusBreakdown)
	assert.Empty(t, got.StatusBreakdown)
	assert.NotNil(t, got.MonthlyTrend)
	assert.Empty(t, got.MonthlyTrend)
}

func TestAggregate_Groupings(t *testing.T) {
	invoices := []*entities.Invoice{
		inv("2024-02-10", "B", 50, "paid"),
		inv("2024-01-05", "A", 100, "paid"),
		inv("2024-01-20", "C", 50, "overdue"),
		inv("2024-03-01", "D", 10, "pending"),
		inv("2024-03-02", "E", 5, "pending"),
		inv("2024-03-03", "F", 1, "paid"),
		inv("2024-02-11", "A", 20, "paid"),
	}

	got := Aggregate(invoices)

	assert.Equal(t, int64(7), got.TotalInvoices)
	assert.InDelta(t, 236.0, got.TotalAmount, 1e-9)

	require.Len(t, got.TopVendors, 5)
	assert.Equal(t, entities.VendorTotal{Vendor: "A", Total: 120}, got.TopVendors[0])
	// B and C tie at 50; B appeared first
	assert.Equal(t, "B", got.TopVendors[1].Vendor)
	assert.Equal(t, "C", got.TopVendors[2].Vendor)
	assert.Equal(t, "D", got.TopVendors[3].Vendor)
	assert.Equal(t, "E", got.TopVendors[4].Vendor)

	assert.Equal(t, map[string]int64{"paid": 4, "overdue": 1, "pending": 2}, got.StatusBreakdown)

	assert.Equal(t, []entities.MonthTotal{
		{Month: "2024-01", Total: 150},
		{Month: "2024-02", Total: 70},
		{Month: "2024-03", Total: 16},
	}, got.MonthlyTrend)
}

func TestAggregate_Idempotent(t *testing.T) {
	invoices := []*entities.Invoice{
		inv("2024-01-01", "X", 5, "paid"),
		inv("2024-01-02", "Y", 5, "paid"),
		inv("2024-02-01", "Z", 5, "overdue"),
	}

	first := Aggregate(invoices)
	second := Aggregate(invoices)

	assert.Equal(t, first.TopVendors, second.TopVendors)
	assert.Equal(t, first.StatusBreakdown, second.StatusBreakdown)
	assert.Equal(t, first.MonthlyTrend, second.MonthlyTrend)
}

func TestSummarize(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, entities.SummaryKindNoData, s.Kind)
		assert.Equal(t, "No invoice data available for analysis", s.Text)
	})

	t.Run("high overdue", func(t *testing.T) {
		s := Summarize([]*entities.Invoice{
			inv("2024-01-01", "A", 10, "overdue"),
			inv("2024-01-02", "B", 10, "paid"),
			inv("2024-01-03", "C", 10, "paid"),
			inv("2024-01-04", "D", 10, "paid"),
		})
		assert.Equal(t, entities.SummaryKindHighOverdue, s.Kind)
		assert.Equal(t, "High overdue rate: 1/4 invoices are overdue. Consider improving payment processes.", s.Text)
	})

	t.Run("exactly twenty percent is not high", func(t *testing.T) {
		s := Summarize([]*entities.Invoice{
			inv("2024-01-01", "A", 10, "overdue"),
			inv("2024-01-02", "B", 10, "paid"),
			inv("2024-01-03", "C", 10, "paid"),
			inv("2024-01-04", "D", 10, "paid"),
			inv("2024-01-05", "E", 10, "paid"),
		})
		assert.Equal(t, entities.SummaryKindModerateActivity, s.Kind)
	})

	t.Run("strong spending", func(t *testing.T) {
		s := Summarize([]*entities.Invoice{
			inv("2024-01-01", "Acme", 40000, "paid"),
			inv("2024-01-02", "Globex", 12345.68, "paid"),
		})
		assert.Equal(t, entities.SummaryKindStrongSpending, s.Kind)
		assert.Equal(t, "Strong spending activity: $52,345.68 total. Top vendor Acme represents significant expense.", s.Text)
	})

	t.Run("moderate", func(t *testing.T) {
		s := Summarize([]*entities.Invoice{
			inv("2024-01-01", "Acme", 100, "paid"),
			inv("2024-01-02", "Globex", 250, "pending"),
		})
		assert.Equal(t, entities.SummaryKindModerateActivity, s.Kind)
		assert.Equal(t, "Moderate activity: 2 invoices totaling $350.00. Globex is your largest vendor.", s.Text)
		assert.Equal(t, 175.0, s.AverageAmount)
	})
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$999.50", FormatMoney(999.5))
	assert.Equal(t, "$1,000.00", FormatMoney(1000))
	assert.Equal(t, "$1,234,567.89", FormatMoney(1234567.891))
	assert.Equal(t, "-$12.30", FormatMoney(-12.3))
}
