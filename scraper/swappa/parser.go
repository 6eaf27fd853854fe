package swappa

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"swappa-scraper/models"
	"swappa-scraper/utils"
)

// DefaultRowSelector isolates the body rows of the listings table.
const DefaultRowSelector = "table#listings_table tbody tr"

// SkipReason classifies why a row produced no listing.
type SkipReason string

const (
	SkipTooShort SkipReason = "too_short"
	SkipFailed   SkipReason = "failed"
)

// Skip describes one row that was filtered out. Ordinal is 1-based in
// document order.
type Skip struct {
	Ordinal int
	Cells   int
	Reason  SkipReason
	Err     error
}

// Outcome is the result for a single row: exactly one of Listing or Skip is set.
type Outcome struct {
	Ordinal int
	Listing *models.Listing
	Skip    *Skip
}

// Stats summarises one parse pass. RowsSeen == Accepted + Skipped always.
// StructureEmpty means the row selector matched nothing, which usually means
// the page layout changed rather than that there are no listings.
type Stats struct {
	RowsSeen       int
	Accepted       int
	Skipped        int
	StructureEmpty bool
	DuplicateCodes []string
}

// ParseResult holds the accepted listings in document order plus diagnostics.
type ParseResult struct {
	Stats
	Listings []*models.Listing
	Skips    []Skip
}

// Observer receives parse events. The parser itself never logs.
type Observer interface {
	RowSkipped(Skip)
	BatchParsed(Stats)
}

type nopObserver struct{}

func (nopObserver) RowSkipped(Skip)   {}
func (nopObserver) BatchParsed(Stats) {}

// Parser turns a listings page into Listing records.
type Parser struct {
	columns     ColumnMap
	rowSelector string
	observer    Observer
}

// Option configures a Parser.
type Option func(*Parser)

// WithColumns overrides DefaultColumns.
func WithColumns(cm ColumnMap) Option {
	return func(p *Parser) {
		if cm.RequiredWidth() > 0 {
			p.columns = cm
		}
	}
}

// WithRowSelector overrides DefaultRowSelector.
func WithRowSelector(sel string) Option {
	return func(p *Parser) {
		if strings.TrimSpace(sel) != "" {
			p.rowSelector = sel
		}
	}
}

// WithObserver registers o for skip and summary events.
func WithObserver(o Observer) Option {
	return func(p *Parser) {
		if o != nil {
			p.observer = o
		}
	}
}

// NewParser creates a Parser using the default layout unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		columns:     DefaultColumns,
		rowSelector: DefaultRowSelector,
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Columns returns the column map in use.
func (p *Parser) Columns() ColumnMap {
	return p.columns
}

// Parse parses raw HTML. An empty document is a structurally empty result,
// not an error.
func (p *Parser) Parse(html string) (*ParseResult, error) {
	if strings.TrimSpace(html) == "" {
		res := &ParseResult{Stats: Stats{StructureEmpty: true}}
		p.observer.BatchParsed(res.Stats)
		return res, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("swappa: parse html: %w", err)
	}
	return p.ParseDocument(doc), nil
}

// ParseDocument drains Outcomes for doc into a ParseResult.
func (p *Parser) ParseDocument(doc *goquery.Document) *ParseResult {
	rows := doc.Find(p.rowSelector)
	res := &ParseResult{Listings: make([]*models.Listing, 0, rows.Length())}

	if rows.Length() == 0 {
		res.StructureEmpty = true
		p.observer.BatchParsed(res.Stats)
		return res
	}

	codes := utils.NewStringSet()
	for o := range p.outcomes(rows) {
		res.RowsSeen++
		if o.Skip != nil {
			res.Skipped++
			res.Skips = append(res.Skips, *o.Skip)
			p.observer.RowSkipped(*o.Skip)
			continue
		}
		if !codes.Add(o.Listing.Code) {
			res.DuplicateCodes = append(res.DuplicateCodes, o.Listing.Code)
		}
		res.Accepted++
		res.Listings = append(res.Listings, o.Listing)
	}

	p.observer.BatchParsed(res.Stats)
	return res
}

// Outcomes lazily yields one Outcome per matched row, in document order.
// The sequence can be ranged over again to re-run the extraction.
func (p *Parser) Outcomes(doc *goquery.Document) iter.Seq[Outcome] {
	return p.outcomes(doc.Find(p.rowSelector))
}

func (p *Parser) outcomes(rows *goquery.Selection) iter.Seq[Outcome] {
	return func(yield func(Outcome) bool) {
		rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
			return yield(p.extract(i+1, row))
		})
	}
}

func (p *Parser) extract(ordinal int, row *goquery.Selection) Outcome {
	cells := rowCells(row)
	listing, err := ExtractRow(cells, p.columns)
	if err != nil {
		reason := SkipFailed
		if errors.Is(err, ErrRowTooShort) {
			reason = SkipTooShort
		}
		return Outcome{
			Ordinal: ordinal,
			Skip:    &Skip{Ordinal: ordinal, Cells: len(cells), Reason: reason, Err: err},
		}
	}
	return Outcome{Ordinal: ordinal, Listing: listing}
}

func rowCells(row *goquery.Selection) []string {
	tds := row.Find("td")
	cells := make([]string, 0, tds.Length())
	tds.Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, td.Text())
	})
	return cells
}
