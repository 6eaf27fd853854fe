package swappa

import (
	"errors"
	"fmt"
	"strings"

	"swappa-scraper/models"
)

var (
	// ErrRowTooShort marks a row with fewer cells than the column map needs.
	// Header, footer and promo rows inside the table body land here.
	ErrRowTooShort = errors.New("row has too few cells")
	// ErrRowPanic wraps a panic recovered while extracting a single row.
	ErrRowPanic = errors.New("row extraction panicked")
)

// ExtractRow builds a Listing from one row's cell texts. A row shorter than
// cm.RequiredWidth() returns ErrRowTooShort; any other failure, including a
// panic, is returned as an error so the caller can skip just this row.
func ExtractRow(cells []string, cm ColumnMap) (listing *models.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			listing = nil
			err = fmt.Errorf("%w: %v", ErrRowPanic, r)
		}
	}()

	if cm.RequiredWidth() == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidColumns)
	}
	if len(cells) < cm.RequiredWidth() {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrRowTooShort, len(cells), cm.RequiredWidth())
	}

	l := &models.Listing{}
	for _, c := range cm.columns {
		if !l.Set(c.Field, cellValue(c.Field, cells[c.Index])) {
			return nil, fmt.Errorf("%w %q", ErrUnknownField, c.Field)
		}
	}
	return l, nil
}

// cellValue trims the cell. The seller cell carries the rating on the lines
// after the name, so only its trimmed first line is kept.
func cellValue(field, raw string) string {
	v := strings.TrimSpace(raw)
	if field == models.FieldSeller {
		v, _, _ = strings.Cut(v, "\n")
		v = strings.TrimSpace(v)
	}
	return v
}
