package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"swappa-scraper/models"
)

// dialect carries the SQL that differs between backends.
type dialect struct {
	name        string
	createTable string
	insert      string
}

// sqlStore implements ListingStore over database/sql. Each listing is its
// own statement: a failing row does not undo rows stored before it.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

func quotedColumns() string {
	cols := make([]string, len(models.Fields))
	for i, f := range models.Fields {
		cols[i] = `"` + f + `"`
	}
	return strings.Join(cols, ", ")
}

func (s *sqlStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.createTable); err != nil {
		return fmt.Errorf("%s: migrate: %w", s.d.name, err)
	}
	return nil
}

// Save inserts every listing whose code is not stored yet. Listings with a
// known code are counted as ignored and never overwrite the stored row.
func (s *sqlStore) Save(ctx context.Context, listings []*models.Listing) (models.SaveResult, error) {
	var (
		res  models.SaveResult
		errs []error
	)
	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r, err := s.db.ExecContext(ctx, s.d.insert, anyValues(l)...)
		if err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("%s: insert %q: %w", s.d.name, l.Code, err))
			continue
		}
		n, err := r.RowsAffected()
		if err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("%s: rows affected %q: %w", s.d.name, l.Code, err))
			continue
		}
		if n > 0 {
			res.Inserted++
		} else {
			res.Ignored++
		}
	}
	return res, errors.Join(errs...)
}

// FetchAll returns every stored listing in insertion order.
func (s *sqlStore) FetchAll(ctx context.Context) ([]*models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+quotedColumns()+" FROM listings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", s.d.name, err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		if err := rows.Scan(
			&l.Price, &l.Carrier, &l.Color, &l.Storage, &l.Model, &l.Condition,
			&l.Battery, &l.Seller, &l.Location, &l.Shipping, &l.Code,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.d.name, err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func anyValues(l *models.Listing) []any {
	vals := l.Values(models.Fields)
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func textColumnsDDL() string {
	var b strings.Builder
	for _, f := range models.Fields {
		if f == models.FieldCode {
			continue
		}
		b.WriteString(`			"` + f + `" TEXT NOT NULL DEFAULT '',` + "\n")
	}
	return b.String()
}
