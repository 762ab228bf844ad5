package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/export"
)

var historyExportHeaders = []string{"Date", "Report", "Attachments"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// HistoryExporter renders a case history as a downloadable file.
type HistoryExporter struct {
	csv csvRenderer
	pdf pdfRenderer
}

// NewHistoryExporter constructs a HistoryExporter. Nil renderers use the defaults.
func NewHistoryExporter(csv csvRenderer, pdf pdfRenderer) *HistoryExporter {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &HistoryExporter{csv: csv, pdf: pdf}
}

// ParseExportFormat validates a requested export format, defaulting to CSV.
func ParseExportFormat(raw string) (models.ExportFormat, error) {
	switch models.ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", models.ExportCSV:
		return models.ExportCSV, nil
	case models.ExportPDF:
		return models.ExportPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// Render writes entries for person in the given format.
func (e *HistoryExporter) Render(person *models.Person, entries []models.HistoryEntry, format models.ExportFormat) (*models.ExportFile, error) {
	data := historyDataset(entries)
	base := fmt.Sprintf("history-%d", person.ID)

	switch format {
	case models.ExportPDF:
		title := fmt.Sprintf("Case history - %s", person.Name)
		body, err := e.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &models.ExportFile{Filename: base + ".pdf", ContentType: "application/pdf", Data: body}, nil
	case models.ExportCSV:
		body, err := e.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &models.ExportFile{Filename: base + ".csv", ContentType: "text/csv", Data: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func historyDataset(entries []models.HistoryEntry) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]string{
			"Date":        entry.ReportDate.String(),
			"Report":      entry.Text,
			"Attachments": strings.Join(entry.Attachments, "\n"),
		})
	}
	return export.Dataset{Headers: historyExportHeaders, Rows: rows}
}
