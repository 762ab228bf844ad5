package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 190.0
	lineHeight = 5.0
)

// PDFExporter renders datasets into a tabular A4 PDF. Cells wrap long text and UTF-8
// input is translated to the core font encoding.
type PDFExporter struct {
	// Widths optionally assigns relative column widths by header.
	Widths map[string]float64
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Widths: map[string]float64{"Date": 1, "Report": 4, "Attachments": 2}}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := e.columnWidths(data.Headers)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		cells := make([]string, len(data.Headers))
		lines := 1
		for i, header := range data.Headers {
			cells[i] = tr(row[header])
			if n := len(pdf.SplitLines([]byte(cells[i]), widths[i]-2)); n > lines {
				lines = n
			}
		}
		height := float64(lines) * lineHeight

		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		for i := range cells {
			pdf.Rect(x, y, widths[i], height, "D")
			pdf.SetXY(x, y)
			pdf.MultiCell(widths[i], lineHeight, cells[i], "", "L", false)
			x += widths[i]
		}
		pdf.SetXY(10, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) columnWidths(headers []string) []float64 {
	weights := make([]float64, len(headers))
	var total float64
	for i, header := range headers {
		w := 1.0
		if e.Widths != nil {
			if custom, ok := e.Widths[header]; ok && custom > 0 {
				w = custom
			}
		}
		weights[i] = w
		total += w
	}
	for i := range weights {
		weights[i] = pageWidth * weights[i] / total
	}
	return weights
}
