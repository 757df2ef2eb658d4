package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
)

// Row is one label/value line of a report table
type Row struct {
	Label string
	Value string
}

// Section is a titled two-column table
type Section struct {
	Title   string
	Headers [2]string
	Rows    []Row
}

// Document is the content of a rendered analytics report
type Document struct {
	Title       string
	GeneratedAt time.Time
	Summary     string
	Sections    []Section
	Chart       []byte
	ChartTitle  string
}

// RenderPDF lays the document out on A4 pages
func RenderPDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated "+doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if doc.Summary != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, doc.Summary, "", "L", false)
		pdf.Ln(4)
	}

	for _, section := range doc.Sections {
		writeSection(pdf, section)
	}

	if len(doc.Chart) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, doc.ChartTitle, "", 1, "L", false, 0, "")

		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(doc.Chart))
		pdf.ImageOptions("chart", 15, pdf.GetY()+2, 180, 0, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, section Section) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, section.Title, "", 1, "L", false, 0, "")

	if len(section.Rows) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No data", "", 1, "L", false, 0, "")
		pdf.Ln(3)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(110, 7, section.Headers[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, section.Headers[1], "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range section.Rows {
		pdf.CellFormat(110, 6, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, row.Value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// CountRows turns a count map into rows sorted by count desc, then label
func CountRows(counts map[string]int64) []Row {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{Label: label, Value: fmt.Sprintf("%d", counts[label])}
	}
	return rows
}
