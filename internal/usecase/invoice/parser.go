package invoice

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/smart-insights/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/smart-insights/internal/usecase/errors"
)

// Format is the declared encoding of an uploaded invoice file
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// RequiredColumns must all be present in the header row
var RequiredColumns = []string{"date", "vendor", "amount", "status"}

// dateLayouts are tried in order for textual dates
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
}

// FormatFromFilename derives the format from the file extension
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", usecaseErrors.ErrUnsupportedFileType
	}
}

// ParsedBatch holds the valid invoices of an upload and the rows that were skipped
type ParsedBatch struct {
	Invoices []*entities.Invoice
	Errors   []*entities.RowParseError
}

// Parser turns uploaded CSV or XLSX bytes into invoices
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads all rows. A missing required column rejects the whole file with
// *entities.FormatError; a bad value only skips its row.
func (p *Parser) Parse(data []byte, format Format) (*ParsedBatch, error) {
	records, err := readRecords(data, format)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &entities.FormatError{Required: RequiredColumns, Found: []string{}}
	}

	header := normalizeHeader(records[0])
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, &entities.FormatError{Required: RequiredColumns, Found: header}
		}
	}

	batch := &ParsedBatch{
		Invoices: make([]*entities.Invoice, 0, len(records)-1),
		Errors:   make([]*entities.RowParseError, 0),
	}

	rowNum := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rowNum++

		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		inv, err := parseRow(cell("date"), cell("vendor"), cell("amount"), cell("status"), format)
		if err != nil {
			batch.Errors = append(batch.Errors, &entities.RowParseError{Row: rowNum, Err: err})
			continue
		}
		batch.Invoices = append(batch.Invoices, inv)
	}

	return batch, nil
}

func parseRow(date, vendor, amount, status string, format Format) (*entities.Invoice, error) {
	d, err := parseDate(date, format)
	if err != nil {
		return nil, err
	}
	a, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return entities.NewInvoice(d, vendor, a, status)
}

func readRecords(data []byte, format Format) ([][]string, error) {
	switch format {
	case FormatCSV:
		return readCSV(data)
	case FormatXLSX:
		return readXLSX(data)
	default:
		return nil, usecaseErrors.ErrUnsupportedFileType
	}
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read csv: %w", usecaseErrors.ErrUnreadableFile, err)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open spreadsheet: %w", usecaseErrors.ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no worksheets", usecaseErrors.ErrUnreadableFile)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read worksheet %q: %w", usecaseErrors.ErrUnreadableFile, sheets[0], err)
	}
	return rows, nil
}

func normalizeHeader(record []string) []string {
	header := make([]string, len(record))
	for i, name := range record {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return header
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseDate(value string, format Format) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	// Spreadsheets may store dates as serial day numbers
	if format == FormatXLSX {
		if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.UTC(), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// thousandsGrouped matches amounts whose commas sit every three digits, like 1,234,567.89
var thousandsGrouped = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

func parseAmount(value string) (float64, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(value), "$")
	if cleaned == "" {
		return 0, fmt.Errorf("amount is required")
	}

	if strings.Contains(cleaned, ",") {
		if !thousandsGrouped.MatchString(cleaned) {
			return 0, fmt.Errorf("%w: misplaced thousands separator in %q", usecaseErrors.ErrInvalidAmount, value)
		}
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidAmount, value)
	}
	return amount, nil
}
