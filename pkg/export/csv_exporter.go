package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dataset defines tabular export content. Rows are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct {
	// Comma is the field delimiter, ',' when zero.
	Comma rune
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet tools
	// detect accented text correctly.
	BOM bool
}

// NewCSVExporter builds a comma-separated exporter without BOM.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ','}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	if e.BOM {
		buf.Write(utf8BOM)
	}
	writer := csv.NewWriter(buf)
	if e.Comma != 0 {
		writer.Comma = e.Comma
	}
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(data.Headers))
	for i, row := range data.Rows {
		for j, header := range data.Headers {
			record[j] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
