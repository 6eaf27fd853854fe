package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"swappa-scraper/models"
)

const xlsxSheet = "Listings"

// XLSXExporter writes the same shape as CSVExporter into a single sheet.
type XLSXExporter struct {
	fields []string
}

func NewXLSXExporter(fields []string) *XLSXExporter {
	return &XLSXExporter{fields: fields}
}

func (x *XLSXExporter) Format() string { return FormatXLSX }

func (x *XLSXExporter) Export(listings []*models.Listing, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return fmt.Errorf("xlsx: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toRow(x.fields)); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}
	for i, l := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := sw.SetRow(cell, toRow(l.Values(x.fields))); err != nil {
			return fmt.Errorf("xlsx: write row %s: %w", l.Code, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}

	if err := ensureDir("xlsx", path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", path, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
