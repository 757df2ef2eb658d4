package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	"github.com/johnquangdev/smart-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
)

const (
	// DefaultListLimit is the page size of the recent invoice listing
	DefaultListLimit = 50
	// MaxListLimit bounds caller-supplied limits
	MaxListLimit = 500

	maxReportedRowErrors = 3
	archiveCategory      = "invoices"
)

// Service defines the interface for invoice use case
type Service interface {
	// IngestBatch parses an uploaded file and stores every valid row in one transaction
	IngestBatch(ctx context.Context, filename string, data []byte) (*IngestResult, error)

	// AddInvoice stores a single manually submitted invoice
	AddInvoice(ctx context.Context, input AddInvoiceInput) (*entities.Invoice, error)

	// ListRecent returns the newest invoices by date
	ListRecent(ctx context.Context, limit int) ([]*entities.Invoice, error)

	// DeleteInvoice removes an invoice by id
	DeleteInvoice(ctx context.Context, id uint) error

	// GetStats returns the dashboard counters
	GetStats(ctx context.Context) (*entities.InvoiceStats, error)
}

// IngestResult reports the outcome of a batch upload
type IngestResult struct {
	SavedCount int      `json:"saved_count"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
	Message    string   `json:"message"`
	ArchiveKey string   `json:"archive_key,omitempty"`
}

// AddInvoiceInput is a manual invoice submission
type AddInvoiceInput struct {
	Date   string
	Vendor string
	Amount float64
	Status string
}

type service struct {
	repo    repositories.InvoiceRepository
	archive repositories.UploadArchive
	parser  *Parser
	logger  *zap.Logger
}

// NewService creates the invoice service. archive may be nil when uploads are not archived.
func NewService(repo repositories.InvoiceRepository, archive repositories.UploadArchive, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:    repo,
		archive: archive,
		parser:  NewParser(),
		logger:  logger,
	}
}

// IngestBatch implements Service
func (s *service) IngestBatch(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, usecaseErrors.ErrEmptyUpload
	}

	batch, err := s.parser.Parse(data, format)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateBatch(ctx, batch.Invoices); err != nil {
		s.logger.Error("invoice batch rolled back",
			zap.String("filename", filename),
			zap.Int("rows", len(batch.Invoices)),
			zap.Error(err),
		)
		return nil, err
	}

	result := buildIngestResult(len(batch.Invoices), batch.Errors)
	result.ArchiveKey = s.archiveUpload(ctx, filename, data)

	s.logger.Info("invoice batch ingested",
		zap.String("filename", filename),
		zap.Int("saved", result.SavedCount),
		zap.Int("row_errors", result.ErrorCount),
	)
	return result, nil
}

func buildIngestResult(saved int, rowErrors []*entities.RowParseError) *IngestResult {
	shown := make([]string, 0, maxReportedRowErrors)
	for i, rowErr := range rowErrors {
		if i == maxReportedRowErrors {
			break
		}
		shown = append(shown, rowErr.Error())
	}

	message := fmt.Sprintf("Successfully uploaded %d invoices", saved)
	if len(rowErrors) > 0 {
		message += fmt.Sprintf(". %d rows had errors: [%s]", len(rowErrors), strings.Join(shown, "; "))
	}

	return &IngestResult{
		SavedCount: saved,
		ErrorCount: len(rowErrors),
		Errors:     shown,
		Message:    message,
	}
}

// archiveUpload copies the raw file to object storage; failures never fail the batch
func (s *service) archiveUpload(ctx context.Context, filename string, data []byte) string {
	if s.archive == nil {
		return ""
	}

	key, err := s.archive.Archive(ctx, archiveCategory, filename, data)
	if err != nil {
		s.logger.Warn("failed to archive invoice upload",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return ""
	}
	return key
}

// AddInvoice implements Service
func (s *service) AddInvoice(ctx context.Context, input AddInvoiceInput) (*entities.Invoice, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		return nil, usecaseErrors.ErrInvalidDate
	}

	inv, err := entities.NewInvoice(date, input.Vendor, input.Amount, input.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListRecent implements Service
func (s *service) ListRecent(ctx context.Context, limit int) ([]*entities.Invoice, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// DeleteInvoice implements Service
func (s *service) DeleteInvoice(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// GetStats implements Service
func (s *service) GetStats(ctx context.Context) (*entities.InvoiceStats, error) {
	return s.repo.Stats(ctx)
}
