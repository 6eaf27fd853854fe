package storage

import (
	"context"

	"swappa-scraper/models"
)

// Exporter writes a listing batch to one file format. Exporters never
// modify the listings they are given.
type Exporter interface {
	Format() string
	Export(listings []*models.Listing, path string) error
}

// ListingStore persists listings with insert-or-ignore semantics keyed on
// Listing.Code: a code already stored is left untouched.
type ListingStore interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, listings []*models.Listing) (models.SaveResult, error)
	FetchAll(ctx context.Context) ([]*models.Listing, error)
	Close() error
}
