package storage

import (
	"encoding/csv"
	"fmt"

	"swappa-scraper/models"
)

// CSVExporter writes one row per listing under a header of field names.
type CSVExporter struct {
	fields []string
}

// NewCSVExporter creates a CSVExporter with the given column order.
func NewCSVExporter(fields []string) *CSVExporter {
	return &CSVExporter{fields: fields}
}

func (c *CSVExporter) Format() string { return FormatCSV }

// Export creates (or truncates) path and writes the header and all rows.
// Intermediate directories are created automatically.
func (c *CSVExporter) Export(listings []*models.Listing, path string) (err error) {
	f, err := createFile("csv", path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(c.fields); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := w.Write(l.Values(c.fields)); err != nil {
			return fmt.Errorf("csv: write row %s: %w", l.Code, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}
