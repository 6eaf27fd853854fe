package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swappa-scraper/models"
)

func openSQLite(t *testing.T) ListingStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "listings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestSQLiteSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	first, err := store.Save(ctx, sampleListings())
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{Inserted: 2}, first)

	second, err := store.Save(ctx, sampleListings())
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{Ignored: 2}, second)

	stored, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleListings(), stored)
}

func TestSQLiteFirstSeenWins(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	a := sampleListings()[0]
	b := *a
	b.Price = "$550"
	fresh := &models.Listing{Code: "NEW1", Price: "$10"}

	_, err := store.Save(ctx, []*models.Listing{a})
	require.NoError(t, err)

	res, err := store.Save(ctx, []*models.Listing{&b, fresh})
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{Inserted: 1, Ignored: 1}, res)

	stored, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "$600", stored[0].Price)
	assert.Equal(t, "NEW1", stored[1].Code)
	assert.Equal(t, "$550", b.Price, "input listing must not be mutated")
}

func TestSQLiteDuplicateWithinBatch(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	a := sampleListings()[0]
	dup := *a
	dup.Price = "$1"

	res, err := store.Save(ctx, []*models.Listing{a, &dup})
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{Inserted: 1, Ignored: 1}, res)

	stored, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "$600", stored[0].Price)
}

func TestSQLiteInitTwice(t *testing.T) {
	store := openSQLite(t)
	require.NoError(t, store.Init(context.Background()))
}

func TestSQLiteSaveEmpty(t *testing.T) {
	store := openSQLite(t)
	res, err := store.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{}, res)
}
