package storage

import (
	"encoding/json"
	"fmt"

	"swappa-scraper/models"
)

// JSONExporter writes listings as a pretty-printed UTF-8 array. Non-ASCII
// text and characters like & and < are written literally.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

func (JSONExporter) Format() string { return FormatJSON }

func (JSONExporter) Export(listings []*models.Listing, path string) (err error) {
	f, err := createFile("json", path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("json: close: %w", cerr)
		}
	}()

	if listings == nil {
		listings = []*models.Listing{}
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}
	return nil
}
