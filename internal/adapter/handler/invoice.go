package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/errors"
	invoiceDTO "github.com/johnquangdev/smart-insights/internal/adapter/dto/invoice"
	"github.com/johnquangdev/smart-insights/internal/adapter/presenter"
	analyticsUsecase "github.com/johnquangdev/smart-insights/internal/usecase/analytics"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
	invoiceUsecase "github.com/johnquangdev/smart-insights/internal/usecase/invoice"
)

// Invoice handles invoice and analytics HTTP requests
type Invoice struct {
	invoiceService   invoiceUsecase.Service
	analyticsService analyticsUsecase.Service
	logger           *zap.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService invoiceUsecase.Service, analyticsService analyticsUsecase.Service, logger *zap.Logger) *Invoice {
	return &Invoice{
		invoiceService:   invoiceService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Upload handles POST /invoices/upload
// @Summary      Upload invoices
// @Description  Ingests a CSV or XLSX file with date, vendor, amount and status columns
// @Tags         Invoices
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV or XLSX file"
// @Success      200   {object}  invoice.UploadResponse
// @Failure      400   {object}  map[string]interface{}  "Unsupported or malformed file"
// @Failure      500   {object}  map[string]interface{}  "Batch could not be stored"
// @Router       /invoices/upload [post]
func (h *Invoice) Upload(c echo.Context) error {
	filename, data, err := readUpload(c, "file")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.invoiceService.IngestBatch(c.Request().Context(), filename, data)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrUnsupportedFileType) {
			return HandleError(h.logger, c, errors.ErrUnsupportedFileType(filename, "CSV", "Excel"))
		}
		return HandleError(h.logger, c, toAppError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToUploadResponse(result))
}

// Create handles POST /invoices
// @Summary      Add an invoice
// @Tags         Invoices
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request  body      invoice.CreateInvoiceRequest  true  "Invoice"
// @Success      201      {object}  invoice.CreateInvoiceResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /invoices [post]
func (h *Invoice) Create(c echo.Context) error {
	var req invoiceDTO.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	inv, err := h.invoiceService.AddInvoice(c.Request().Context(), invoiceUsecase.AddInvoiceInput{
		Date:   req.Date,
		Vendor: req.Vendor,
		Amount: *req.Amount,
		Status: req.Status,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	return handleSuccessStatus(h.logger, c, http.StatusCreated, &invoiceDTO.CreateInvoiceResponse{
		ID:      inv.ID,
		Message: "Invoice added successfully",
	})
}

// List handles GET /invoices
// @Summary      List recent invoices
// @Tags         Invoices
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of invoices (default 50, max 500)"
// @Success      200    {object}  invoice.InvoiceListResponse
// @Router       /invoices [get]
func (h *Invoice) List(c echo.Context) error {
	var req invoiceDTO.ListInvoicesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	invoices, err := h.invoiceService.ListRecent(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list invoices", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToInvoiceListResponse(invoices))
}

// Delete handles DELETE /invoices/:id
// @Summary      Delete an invoice
// @Tags         Invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  invoice.MessageResponse
// @Failure      404  {object}  map[string]interface{}  "Invoice not found"
// @Router       /invoices/{id} [delete]
func (h *Invoice) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.invoiceService.DeleteInvoice(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	return HandleSuccess(h.logger, c, &invoiceDTO.MessageResponse{Message: "Invoice deleted successfully"})
}

// Stats handles GET /invoices/stats
// @Summary      Invoice counters
// @Tags         Invoices
// @Produce      json
// @Success      200  {object}  entities.InvoiceStats
// @Router       /invoices/stats [get]
func (h *Invoice) Stats(c echo.Context) error {
	stats, err := h.invoiceService.GetStats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("invoice stats", err))
	}
	return HandleSuccess(h.logger, c, stats)
}

// Analytics handles GET /analytics
// @Summary      Invoice analytics
// @Description  Top vendors, status breakdown and monthly trend with the trend chart as a PNG data URI
// @Tags         Analytics
// @Produce      json
// @Param        window  query     string  false  "Time window such as 30d, 12m or 1y"
// @Success      200     {object}  invoice.AnalyticsResponse
// @Router       /analytics [get]
func (h *Invoice) Analytics(c echo.Context) error {
	opts, err := h.analyticsOptions(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.analyticsService.ComputeAnalytics(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAnalyticsFailed(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalyticsResponse(result))
}

// AnalyticsChart handles GET /analytics/chart.png
// @Summary      Monthly trend chart
// @Tags         Analytics
// @Produce      png
// @Param        window  query  string  false  "Time window such as 30d, 12m or 1y"
// @Success      200
// @Failure      404  {object}  map[string]interface{}  "No chart available"
// @Router       /analytics/chart.png [get]
func (h *Invoice) AnalyticsChart(c echo.Context) error {
	opts, err := h.analyticsOptions(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.analyticsService.ComputeAnalytics(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAnalyticsFailed(err))
	}
	if len(result.Chart) == 0 {
		return HandleError(h.logger, c, errors.ErrNotFound("Chart"))
	}

	return c.Blob(http.StatusOK, "image/png", result.Chart)
}

// Summary handles GET /analytics/summary
// @Summary      Rule-based spending summary
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  invoice.SummaryResponse
// @Router       /analytics/summary [get]
func (h *Invoice) Summary(c echo.Context) error {
	summary, err := h.analyticsService.ComputeSummary(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAnalyticsFailed(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(summary))
}

// Report handles GET /reports/analytics.pdf
// @Summary      PDF analytics report
// @Tags         Reports
// @Produce      application/pdf
// @Param        window  query  string  false  "Time window such as 30d, 12m or 1y"
// @Success      200
// @Router       /reports/analytics.pdf [get]
func (h *Invoice) Report(c echo.Context) error {
	opts, err := h.analyticsOptions(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	pdf, err := h.analyticsService.RenderReport(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReportGenerationFailed(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="analytics.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (h *Invoice) analyticsOptions(c echo.Context) (analyticsUsecase.Options, error) {
	var req invoiceDTO.AnalyticsRequest
	if err := c.Bind(&req); err != nil {
		return analyticsUsecase.Options{}, errors.ErrInvalidPayload(err)
	}

	window, err := analyticsUsecase.ParseWindow(req.Window)
	if err != nil {
		return analyticsUsecase.Options{}, toAppError(err)
	}
	return analyticsUsecase.Options{Window: window}, nil
}
