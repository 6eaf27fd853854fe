package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"swappa-scraper/models"
	"swappa-scraper/scraper/swappa"
	"swappa-scraper/storage"
	"swappa-scraper/utils"
)

// RunOptions controls what a Runner does with parsed listings.
type RunOptions struct {
	URL           string
	OutputBase    string
	Formats       []string
	DebugHTMLPath string
}

// Runner drives one scrape: fetch, parse, export, then optionally persist.
type Runner struct {
	fetcher swappa.Fetcher
	parser  *swappa.Parser
	store   storage.ListingStore
	logger  *utils.Logger
	opts    RunOptions

	listings []*models.Listing
}

// NewRunner wires a run. store may be nil to skip persistence.
func NewRunner(fetcher swappa.Fetcher, parser *swappa.Parser, store storage.ListingStore, logger *utils.Logger, opts RunOptions) *Runner {
	return &Runner{
		fetcher: fetcher,
		parser:  parser,
		store:   store,
		logger:  logger,
		opts:    opts,
	}
}

// Listings returns the listings accepted by the last Run.
func (r *Runner) Listings() []*models.Listing {
	return r.listings
}

// Run executes the pipeline. Only fetch and parse failures are returned as
// errors; export and store failures are recorded on the report.
func (r *Runner) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:        uuid.NewString(),
		URL:          r.opts.URL,
		StartedAt:    time.Now(),
		Exported:     make(map[string]string),
		ExportErrors: make(map[string]string),
	}
	defer func() { report.Duration = time.Since(report.StartedAt) }()
	r.listings = nil

	r.logger.Info("[runner] Run %s: fetching %s", report.RunID, r.opts.URL)
	html, err := r.fetcher.Fetch(ctx, r.opts.URL)
	if err != nil {
		var fe *swappa.FetchError
		if errors.As(err, &fe) {
			r.logger.Error("[runner] Fetch returned status %d: %s", fe.StatusCode, fe.Body)
		}
		return report, fmt.Errorf("fetch %s: %w", r.opts.URL, err)
	}
	r.logger.Debug("[runner] Fetched %d bytes", len(html))

	res, err := r.parser.Parse(html)
	if err != nil {
		return report, err
	}
	report.RowsSeen = res.RowsSeen
	report.Accepted = res.Accepted
	report.Skipped = res.Skipped
	report.StructureEmpty = res.StructureEmpty
	report.DuplicateCodes = res.DuplicateCodes
	r.listings = res.Listings

	if len(res.Listings) == 0 {
		r.logger.Warn("[runner] No listings extracted; nothing will be exported or stored")
		if r.opts.DebugHTMLPath != "" {
			if err := storage.WriteDebugHTML(r.opts.DebugHTMLPath, html); err != nil {
				r.logger.Error("[runner] Could not save raw page: %v", err)
			} else {
				report.DebugDumpPath = r.opts.DebugHTMLPath
				r.logger.Info("[runner] Raw page saved to %s", r.opts.DebugHTMLPath)
			}
		}
		return report, nil
	}

	r.export(res.Listings, report)
	r.persist(ctx, res.Listings, report)
	return report, nil
}

func (r *Runner) export(listings []*models.Listing, report *models.RunReport) {
	fields := r.parser.Columns().Fields()
	for _, format := range r.opts.Formats {
		exp, err := storage.NewExporter(format, fields)
		if err != nil {
			r.logger.Warn("[runner] Skipping export: %v", err)
			report.ExportErrors[format] = err.Error()
			continue
		}
		path := storage.OutputPath(r.opts.OutputBase, exp.Format())
		if err := exp.Export(listings, path); err != nil {
			r.logger.Error("[runner] %s export failed: %v", exp.Format(), err)
			report.ExportErrors[exp.Format()] = err.Error()
			continue
		}
		report.Exported[exp.Format()] = path
		r.logger.Info("[runner] Wrote %d listings to %s", len(listings), path)
	}
}

func (r *Runner) persist(ctx context.Context, listings []*models.Listing, report *models.RunReport) {
	if r.store == nil {
		return
	}
	res, err := r.store.Save(ctx, listings)
	report.Persisted = &res
	if err != nil {
		report.PersistError = err.Error()
		r.logger.Error("[runner] Storing listings failed for %d rows: %v", res.Failed, err)
	}
	r.logger.Info("[runner] Stored listings: %d new, %d already known", res.Inserted, res.Ignored)
}
