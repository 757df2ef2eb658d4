package analytics

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
	"github.com/johnquangdev/smart-insights/pkg/chart"
	"github.com/johnquangdev/smart-insights/pkg/report"
)

// summarySampleSize is how many of the most recent invoices feed the summary
const summarySampleSize = 100

// Options narrows the invoices considered by the analytics
type Options struct {
	// Window keeps invoices dated within this duration of now; zero means all invoices
	Window time.Duration
}

// Service defines the interface for invoice analytics
type Service interface {
	// ComputeAnalytics returns aggregates and the rendered monthly trend chart
	ComputeAnalytics(ctx context.Context, opts Options) (*entities.InvoiceAnalytics, error)

	// ComputeSummary classifies the most recent invoices into a short message
	ComputeSummary(ctx context.Context) (*entities.Summary, error)

	// RenderReport produces a PDF report of the analytics and summary
	RenderReport(ctx context.Context, opts Options) ([]byte, error)
}

type service struct {
	repo        repositories.InvoiceRepository
	logger      *zap.Logger
	renderChart func(chart.Series) ([]byte, error)
	now         func() time.Time
}

// NewService creates the analytics service
func NewService(repo repositories.InvoiceRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:        repo,
		logger:      logger,
		renderChart: chart.LinePNG,
		now:         time.Now,
	}
}

// ComputeAnalytics implements Service
func (s *service) ComputeAnalytics(ctx context.Context, opts Options) (*entities.InvoiceAnalytics, error) {
	filters := repositories.InvoiceFilters{}
	if opts.Window > 0 {
		filters.Since = s.now().UTC().Add(-opts.Window)
	}

	invoices, err := s.repo.ListForAnalytics(ctx, filters)
	if err != nil {
		return nil, err
	}

	result := Aggregate(invoices)
	if len(result.MonthlyTrend) == 0 {
		return result, nil
	}

	png, err := s.renderChart(trendSeries(result.MonthlyTrend))
	if err != nil {
		s.logger.Warn("failed to render trend chart", zap.Error(err))
		return result, nil
	}
	result.Chart = png

	return result, nil
}

func trendSeries(trend []entities.MonthTotal) chart.Series {
	labels := make([]string, len(trend))
	values := make([]float64, len(trend))
	for i, m := range trend {
		labels[i] = m.Month
		values[i] = m.Total
	}
	return chart.Series{
		Title:  "Monthly Expense Trends",
		XLabel: "Month",
		YLabel: "Amount ($)",
		Labels: labels,
		Values: values,
	}
}

// ComputeSummary implements Service
func (s *service) ComputeSummary(ctx context.Context) (*entities.Summary, error) {
	recent, err := s.repo.ListRecent(ctx, summarySampleSize)
	if err != nil {
		return nil, err
	}
	return Summarize(recent), nil
}

// RenderReport implements Service
func (s *service) RenderReport(ctx context.Context, opts Options) ([]byte, error) {
	analytics, err := s.ComputeAnalytics(ctx, opts)
	if err != nil {
		return nil, err
	}
	summary, err := s.ComputeSummary(ctx)
	if err != nil {
		return nil, err
	}

	vendorRows := make([]report.Row, len(analytics.TopVendors))
	for i, v := range analytics.TopVendors {
		vendorRows[i] = report.Row{Label: v.Vendor, Value: FormatMoney(v.Total)}
	}
	trendRows := make([]report.Row, len(analytics.MonthlyTrend))
	for i, m := range analytics.MonthlyTrend {
		trendRows[i] = report.Row{Label: m.Month, Value: FormatMoney(m.Total)}
	}

	doc := report.Document{
		Title:       "Invoice Analytics Report",
		GeneratedAt: s.now(),
		Summary:     summary.Text,
		Sections: []report.Section{
			{
				Title:   "Totals",
				Headers: [2]string{"Metric", "Value"},
				Rows: []report.Row{
					{Label: "Invoices", Value: strconv.FormatInt(analytics.TotalInvoices, 10)},
					{Label: "Total amount", Value: FormatMoney(analytics.TotalAmount)},
				},
			},
			{Title: "Top Vendors", Headers: [2]string{"Vendor", "Total"}, Rows: vendorRows},
			{Title: "Status Breakdown", Headers: [2]string{"Status", "Invoices"}, Rows: report.CountRows(analytics.StatusBreakdown)},
			{Title: "Monthly Trend", Headers: [2]string{"Month", "Total"}, Rows: trendRows},
		},
		Chart:      analytics.Chart,
		ChartTitle: "Monthly Expense Trends",
	}

	out, err := report.RenderPDF(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("analytics report rendered", zap.Int("bytes", len(out)))
	return out, nil
}

// ParseWindow reads a window such as "30d", "12m", "1y" or a Go duration ("72h").
// An empty string means no window.
func ParseWindow(value string) (time.Duration, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "all" {
		return 0, nil
	}

	const day = 24 * time.Hour
	units := map[byte]time.Duration{'d': day, 'w': 7 * day, 'm': 30 * day, 'y': 365 * day}

	if unit, ok := units[value[len(value)-1]]; ok {
		n, err := strconv.ParseInt(value[:len(value)-1], 10, 64)
		if err == nil && n > 0 {
			if n > math.MaxInt64/int64(unit) {
				return 0, fmt.Errorf("%w: %q exceeds the longest supported window", usecaseErrors.ErrInvalidWindow, value)
			}
			return time.Duration(n) * unit, nil
		}
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidWindow, value)
	}
	return d, nil
}
