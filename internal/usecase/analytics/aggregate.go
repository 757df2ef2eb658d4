package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
)

const (
	topVendorLimit = 5

	// overdueRateThreshold is the share of overdue invoices above which the summary flags collections
	overdueRateThreshold = 0.20
	// strongSpendingThreshold is the total spend above which the summary reports strong activity
	strongSpendingThreshold = 50000.0
)

// Aggregate computes the invoice aggregates. Input order decides vendor ties.
func Aggregate(invoices []*entities.Invoice) *entities.InvoiceAnalytics {
	result := &entities.InvoiceAnalytics{
		TopVendors:      []entities.VendorTotal{},
		StatusBreakdown: map[string]int64{},
		MonthlyTrend:    []entities.MonthTotal{},
	}
	if len(invoices) == 0 {
		result.Message = "No invoice data available"
		return result
	}

	vendors := make([]entities.VendorTotal, 0)
	vendorIdx := make(map[string]int)
	months := make(map[string]float64)

	for _, inv := range invoices {
		result.TotalInvoices++
		result.TotalAmount += inv.Amount
		result.StatusBreakdown[inv.Status]++

		if i, ok := vendorIdx[inv.Vendor]; ok {
			vendors[i].Total += inv.Amount
		} else {
			vendorIdx[inv.Vendor] = len(vendors)
			vendors = append(vendors, entities.VendorTotal{Vendor: inv.Vendor, Total: inv.Amount})
		}

		months[inv.Date.UTC().Format("2006-01")] += inv.Amount
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].Total > vendors[j].Total
	})
	if len(vendors) > topVendorLimit {
		vendors = vendors[:topVendorLimit]
	}
	result.TopVendors = vendors

	keys := make([]string, 0, len(months))
	for month := range months {
		keys = append(keys, month)
	}
	sort.Strings(keys)
	for _, month := range keys {
		result.MonthlyTrend = append(result.MonthlyTrend, entities.MonthTotal{Month: month, Total: months[month]})
	}

	return result
}

// Summarize applies the rule-based classification to a set of invoices
func Summarize(invoices []*entities.Invoice) *entities.Summary {
	if len(invoices) == 0 {
		return &entities.Summary{
			Kind: entities.SummaryKindNoData,
			Text: "No invoice data available for analysis",
		}
	}

	agg := Aggregate(invoices)
	overdue := int(agg.StatusBreakdown[entities.InvoiceStatusOverdue])
	count := len(invoices)

	summary := &entities.Summary{
		InvoiceCount:  count,
		TotalAmount:   agg.TotalAmount,
		AverageAmount: agg.TotalAmount / float64(count),
		TopVendor:     agg.TopVendors[0].Vendor,
		OverdueCount:  overdue,
	}

	switch {
	case float64(overdue) > overdueRateThreshold*float64(count):
		summary.Kind = entities.SummaryKindHighOverdue
		summary.Text = fmt.Sprintf("High overdue rate: %d/%d invoices are overdue. Consider improving payment processes.",
			overdue, count)
	case agg.TotalAmount > strongSpendingThreshold:
		summary.Kind = entities.SummaryKindStrongSpending
		summary.Text = fmt.Sprintf("Strong spending activity: %s total. Top vendor %s represents significant expense.",
			FormatMoney(agg.TotalAmount), summary.TopVendor)
	default:
		summary.Kind = entities.SummaryKindModerateActivity
		summary.Text = fmt.Sprintf("Moderate activity: %d invoices totaling %s. %s is your largest vendor.",
			count, FormatMoney(agg.TotalAmount), summary.TopVendor)
	}

	return summary
}

// FormatMoney renders an amount as $1,234.56
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := fmt.Sprintf("%d", cents/100)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents%100)
}
