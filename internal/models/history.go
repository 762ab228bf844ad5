package models

// HistoryEntry is a citizen report attached to a case.
type HistoryEntry struct {
	ID          int64    `json:"id"`
	CaseID      int64    `json:"case_id"`
	ReportDate  Date     `json:"report_date"`
	Text        string   `json:"text"`
	Attachments []string `json:"attachments"`
}

// ExportFormat selects the rendering of a history export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to be downloaded.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
