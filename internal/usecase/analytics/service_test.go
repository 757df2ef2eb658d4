package analytics

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/smart-insights/internal/adapter/repository"
	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
	"github.com/johnquangdev/smart-insights/pkg/chart"
)

func newTestService(t *testing.T, seed ...*entities.Invoice) (*service, repositories.InvoiceRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Invoice{}))

	repo := repository.NewInvoiceRepository(db)
	if len(seed) > 0 {
		require.NoError(t, repo.CreateBatch(context.Background(), seed))
	}

	svc := NewService(repo, nil).(*service)
	svc.now = func() time.Time { return time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestComputeAnalytics_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.ComputeAnalytics(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.TotalInvoices)
	assert.Empty(t, got.StatusBreakdown)
	assert.Nil(t, got.Chart)
}

func TestComputeAnalytics_RendersChartAndAppliesWindow(t *testing.T) {
	svc, _ := newTestService(t,
		inv("2023-01-15", "Old", 999, "paid"),
		inv("2024-05-01", "Acme", 100, "paid"),
		inv("2024-06-01", "Acme", 50, "overdue"),
	)
	ctx := context.Background()

	all, err := svc.ComputeAnalytics(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalInvoices)
	assert.Equal(t, "Old", all.TopVendors[0].Vendor)
	assert.True(t, bytes.HasPrefix(all.Chart, []byte("\x89PNG")))

	recent, err := svc.ComputeAnalytics(ctx, Options{Window: 90 * 24 * time.Hour})
	require.NoError(t, err)
	assert.Equal(t, int64(2), recent.TotalInvoices)
	assert.Len(t, recent.MonthlyTrend, 2)
}

func TestComputeAnalytics_ChartFailureIsNotFatal(t *testing.T) {
	svc, _ := newTestService(t, inv("2024-05-01", "Acme", 100, "paid"))
	svc.renderChart = func(chart.Series) ([]byte, error) { return nil, errors.New("no fonts") }

	got, err := svc.ComputeAnalytics(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalInvoices)
	assert.Nil(t, got.Chart)
}

func TestComputeSummary_UsesStore(t *testing.T) {
	svc, _ := newTestService(t,
		inv("2024-05-01", "A", 1, "overdue"),
		inv("2024-05-02", "B", 1, "paid"),
	)

	s, err := svc.ComputeSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.SummaryKindHighOverdue, s.Kind)
}

func TestRenderReport(t *testing.T) {
	svc, _ := newTestService(t,
		inv("2024-04-01", "Acme", 100, "paid"),
		inv("2024-05-01", "Globex", 50, "pending"),
	)

	out, err := svc.RenderReport(context.Background(), Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestParseWindow(t *testing.T) {
	day := 24 * time.Hour
	cases := map[string]time.Duration{
		"":      0,
		"all":   0,
		"30d":   30 * day,
		"2w":    14 * day,
		"12m":   360 * day,
		"1y":    365 * day,
		"290y":  290 * 365 * day,
		"72h":   72 * time.Hour,
		"1h30m": 90 * time.Minute,
	}
	for in, want := range cases {
		got, err := ParseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"soon", "-5d", "0d", "-1h", "300y", "1000000d", "9223372036854775807d"} {
		_, err := ParseWindow(bad)
		assert.ErrorIs(t, err, usecaseErrors.ErrInvalidWindow, bad)
	}
}
