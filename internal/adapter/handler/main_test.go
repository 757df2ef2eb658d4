package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	analyticsUsecase "github.com/johnquangdev/smart-insights/internal/usecase/analytics"
	invoiceUsecase "github.com/johnquangdev/smart-insights/internal/usecase/invoice"
	meetingUsecase "github.com/johnquangdev/smart-insights/internal/usecase/meeting"
	"github.com/johnquangdev/smart-insights/pkg/config"
	"github.com/johnquangdev/smart-insights/pkg/validator"
)

type fakeInvoiceService struct {
	ingestResult *invoiceUsecase.IngestResult
	ingestErr    error
	ingestedName string

	added    invoiceUsecase.AddInvoiceInput
	addErr   error
	listed   int
	invoices []*entities.Invoice
	deleted  uint
	delErr   error
	stats    *entities.InvoiceStats
}

func (f *fakeInvoiceService) IngestBatch(_ context.Context, filename string, _ []byte) (*invoiceUsecase.IngestResult, error) {
	f.ingestedName = filename
	return f.ingestResult, f.ingestErr
}

func (f *fakeInvoiceService) AddInvoice(_ context.Context, input invoiceUsecase.AddInvoiceInput) (*entities.Invoice, error) {
	f.added = input
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &entities.Invoice{ID: 7}, nil
}

func (f *fakeInvoiceService) ListRecent(_ context.Context, limit int) ([]*entities.Invoice, error) {
	f.listed = limit
	return f.invoices, nil
}

func (f *fakeInvoiceService) DeleteInvoice(_ context.Context, id uint) error {
	f.deleted = id
	return f.delErr
}

func (f *fakeInvoiceService) GetStats(context.Context) (*entities.InvoiceStats, error) {
	return f.stats, nil
}

type fakeAnalyticsService struct {
	analytics *entities.InvoiceAnalytics
	summary   *entities.Summary
	report    []byte
	opts      analyticsUsecase.Options
}

func (f *fakeAnalyticsService) ComputeAnalytics(_ context.Context, opts analyticsUsecase.Options) (*entities.InvoiceAnalytics, error) {
	f.opts = opts
	return f.analytics, nil
}

func (f *fakeAnalyticsService) ComputeSummary(context.Context) (*entities.Summary, error) {
	return f.summary, nil
}

func (f *fakeAnalyticsService) RenderReport(_ context.Context, opts analyticsUsecase.Options) ([]byte, error) {
	f.opts = opts
	return f.report, nil
}

type fakeMeetingService struct {
	uploadIn  meetingUsecase.UploadInput
	uploadOut *meetingUsecase.UploadOutput
	uploadErr error
	searched  string
	briefs    []entities.MeetingBrief
	searchErr error
	insights  entities.InsightSet
	insErr    error
	analytics *entities.MeetingAnalytics
}

func (f *fakeMeetingService) Upload(_ context.Context, input meetingUsecase.UploadInput) (*meetingUsecase.UploadOutput, error) {
	f.uploadIn = input
	return f.uploadOut, f.uploadErr
}

func (f *fakeMeetingService) SearchByKeyword(_ context.Context, text string) ([]entities.MeetingBrief, error) {
	f.searched = text
	return f.briefs, f.searchErr
}

func (f *fakeMeetingService) SearchByParticipant(_ context.Context, text string) ([]entities.MeetingBrief, error) {
	f.searched = text
	return f.briefs, f.searchErr
}

func (f *fakeMeetingService) GetInsights(context.Context, uint) (entities.InsightSet, error) {
	return f.insights, f.insErr
}

func (f *fakeMeetingService) Analytics(context.Context) (*entities.MeetingAnalytics, error) {
	return f.analytics, nil
}

func newTestServer(inv *fakeInvoiceService, an *fakeAnalyticsService, mt *fakeMeetingService) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	var invoiceHandler *Invoice
	if inv != nil || an != nil {
		invoiceHandler = NewInvoiceHandler(inv, an, nil)
	}
	var meetingHandler *Meeting
	if mt != nil {
		meetingHandler = NewMeetingHandler(mt, nil)
	}

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	NewRouter(cfg, "test", nil, invoiceHandler, meetingHandler).Setup(e)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func multipartRequest(t *testing.T, target, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

type envelope struct {
	Code    interface{}       `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
