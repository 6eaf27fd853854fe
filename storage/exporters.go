package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"swappa-scraper/models"
)

// ErrUnsupportedFormat is returned by NewExporter for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export format names.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatDOCX = "docx"
)

// SupportedFormats lists every format NewExporter accepts.
func SupportedFormats() []string {
	return []string{FormatCSV, FormatJSON, FormatXLSX, FormatDOCX}
}

// NewExporter returns the exporter for format. fields sets the column order
// for tabular formats; nil means models.Fields.
func NewExporter(format string, fields []string) (Exporter, error) {
	if len(fields) == 0 {
		fields = models.Fields
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return NewCSVExporter(fields), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatXLSX:
		return NewXLSXExporter(fields), nil
	case FormatDOCX:
		return NewDOCXExporter(DefaultReportTitle), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// OutputPath returns "{base}.{format}".
func OutputPath(base, format string) string {
	return base + "." + strings.ToLower(strings.TrimSpace(format))
}

func ensureDir(component, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%s: create output dir: %w", component, err)
		}
	}
	return nil
}

func createFile(component, path string) (*os.File, error) {
	if err := ensureDir(component, path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%s: create file %q: %w", component, path, err)
	}
	return f, nil
}
