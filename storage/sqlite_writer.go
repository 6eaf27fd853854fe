package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"swappa-scraper/models"
)

var sqliteDialect = dialect{
	name: "sqlite",
	createTable: `
		CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
` + textColumnsDDL() + `			"code" TEXT NOT NULL UNIQUE
		)`,
	insert: "INSERT OR IGNORE INTO listings (" + quotedColumns() + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(models.Fields)), ", ") + ")",
}

// NewSQLiteStore opens (creating if needed) the SQLite file at path.
// Call Init before saving.
func NewSQLiteStore(path string) (ListingStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// Single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	return &sqlStore{db: db, d: sqliteDialect}, nil
}
