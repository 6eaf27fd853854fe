package swappa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"swappa-scraper/models"
)

var (
	ErrUnknownField    = errors.New("unknown listing field")
	ErrInvalidColumns  = errors.New("invalid column map")
	errDuplicateField  = errors.New("field mapped twice")
	errMissingField    = errors.New("field not mapped")
	errNegativeIndex   = errors.New("negative cell index")
	errMalformedColumn = errors.New("expected field=index")
)

// Column binds one listing field to a zero-based cell position in a row.
type Column struct {
	Field string
	Index int
}

// ColumnMap is the ordered, read-only association of listing fields to cell
// positions. A change in the marketplace table layout is an edit here only.
type ColumnMap struct {
	columns []Column
	width   int
}

// DefaultColumns matches the current listings_table layout.
var DefaultColumns = MustColumnMap(
	Column{models.FieldPrice, 1},
	Column{models.FieldCarrier, 3},
	Column{models.FieldColor, 4},
	Column{models.FieldStorage, 5},
	Column{models.FieldModel, 6},
	Column{models.FieldCondition, 7},
	Column{models.FieldBattery, 8},
	Column{models.FieldSeller, 9},
	Column{models.FieldLocation, 10},
	Column{models.FieldShipping, 12},
	Column{models.FieldCode, 13},
)

// NewColumnMap validates cols and returns a ColumnMap. Every listing field
// must appear exactly once with a non-negative index.
func NewColumnMap(cols ...Column) (ColumnMap, error) {
	seen := make(map[string]bool, len(cols))
	width := 0
	for _, c := range cols {
		if _, ok := (&models.Listing{}).Get(c.Field); !ok {
			return ColumnMap{}, fmt.Errorf("%w: %w %q", ErrInvalidColumns, ErrUnknownField, c.Field)
		}
		if seen[c.Field] {
			return ColumnMap{}, fmt.Errorf("%w: %w %q", ErrInvalidColumns, errDuplicateField, c.Field)
		}
		if c.Index < 0 {
			return ColumnMap{}, fmt.Errorf("%w: %w for %q", ErrInvalidColumns, errNegativeIndex, c.Field)
		}
		seen[c.Field] = true
		if c.Index+1 > width {
			width = c.Index + 1
		}
	}
	for _, f := range models.Fields {
		if !seen[f] {
			return ColumnMap{}, fmt.Errorf("%w: %w %q", ErrInvalidColumns, errMissingField, f)
		}
	}

	out := make([]Column, len(cols))
	copy(out, cols)
	return ColumnMap{columns: out, width: width}, nil
}

// MustColumnMap is NewColumnMap that panics on an invalid map.
func MustColumnMap(cols ...Column) ColumnMap {
	cm, err := NewColumnMap(cols...)
	if err != nil {
		panic(err)
	}
	return cm
}

// ParseColumnMap reads a "field=index,field=index" list, e.g.
// "price=1,carrier=3,...,code=13". Order in the string is the map order.
func ParseColumnMap(s string) (ColumnMap, error) {
	var cols []Column
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, idx, ok := strings.Cut(part, "=")
		if !ok {
			return ColumnMap{}, fmt.Errorf("%w: %w, got %q", ErrInvalidColumns, errMalformedColumn, part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return ColumnMap{}, fmt.Errorf("%w: index for %q: %w", ErrInvalidColumns, field, err)
		}
		cols = append(cols, Column{Field: strings.TrimSpace(field), Index: n})
	}
	return NewColumnMap(cols...)
}

// Columns returns a copy of the mapping in order.
func (m ColumnMap) Columns() []Column {
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// Fields returns the field names in map order. Exporters use it as the header.
func (m ColumnMap) Fields() []string {
	out := make([]string, len(m.columns))
	for i, c := range m.columns {
		out[i] = c.Field
	}
	return out
}

// RequiredWidth is the minimum number of cells a row needs: max index + 1.
func (m ColumnMap) RequiredWidth() int {
	return m.width
}

// String renders the map in ParseColumnMap syntax.
func (m ColumnMap) String() string {
	parts := make([]string, len(m.columns))
	for i, c := range m.columns {
		parts[i] = c.Field + "=" + strconv.Itoa(c.Index)
	}
	return strings.Join(parts, ",")
}
