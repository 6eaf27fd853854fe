package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"swappa-scraper/models"
	"swappa-scraper/utils"
)

var postgresDialect = dialect{
	name: "postgres",
	createTable: `
		CREATE TABLE IF NOT EXISTS listings (
			id SERIAL PRIMARY KEY,
` + textColumnsDDL() + `			"code" TEXT NOT NULL UNIQUE
		)`,
	insert: "INSERT INTO listings (" + quotedColumns() + ") VALUES (" + postgresPlaceholders(len(models.Fields)) +
		") ON CONFLICT (code) DO NOTHING",
}

// NewPostgresStore connects to PostgreSQL, pinging through retry until the
// server answers. Call Init before saving.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (ListingStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return newPostgresStore(db), nil
}

func newPostgresStore(db *sql.DB) *sqlStore {
	return &sqlStore{db: db, d: postgresDialect}
}

func postgresPlaceholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}
