package swappa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swappa-scraper/models"
)

func scenarioCells() []string {
	return []string{
		"", "$600", "", "AT&T", "Black", "128GB", "iPhone 13", "Used", "92%",
		"JaneDoe\n4.9★", "Denver, CO", "", "Free", "ABC123",
	}
}

func TestExtractRowScenario(t *testing.T) {
	got, err := ExtractRow(scenarioCells(), DefaultColumns)
	require.NoError(t, err)

	want := &models.Listing{
		Price: "$600", Carrier: "AT&T", Color: "Black", Storage: "128GB", Model: "iPhone 13",
		Condition: "Used", Battery: "92%", Seller: "JaneDoe", Location: "Denver, CO",
		Shipping: "Free", Code: "ABC123",
	}
	assert.Equal(t, want, got)
}

func TestExtractRowTrimsAndTruncatesSeller(t *testing.T) {
	cells := scenarioCells()
	cells[1] = "\n\t $1,050 \n"
	cells[9] = "\n   Mobile Kings  \n   4.8 (312 sales)\n  Verified"
	cells[10] = "  Kyiv, UA  "

	got, err := ExtractRow(cells, DefaultColumns)
	require.NoError(t, err)
	assert.Equal(t, "$1,050", got.Price)
	assert.Equal(t, "Mobile Kings", got.Seller)
	assert.Equal(t, "Kyiv, UA", got.Location)
}

func TestExtractRowOnlySellerIsTruncated(t *testing.T) {
	cells := scenarioCells()
	cells[10] = "Denver,\nCO"

	got, err := ExtractRow(cells, DefaultColumns)
	require.NoError(t, err)
	assert.Equal(t, "Denver,\nCO", got.Location)
}

func TestExtractRowEmptyCellsYieldEmptyFields(t *testing.T) {
	cells := make([]string, 14)
	got, err := ExtractRow(cells, DefaultColumns)
	require.NoError(t, err)
	for _, f := range models.Fields {
		v, ok := got.Get(f)
		assert.True(t, ok)
		assert.Empty(t, v, f)
	}
}

func TestExtractRowTooShort(t *testing.T) {
	for _, n := range []int{0, 1, 10, 13} {
		got, err := ExtractRow(make([]string, n), DefaultColumns)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrRowTooShort, "cells=%d", n)
	}
}

func TestExtractRowExtraCellsIgnored(t *testing.T) {
	cells := append(scenarioCells(), "extra", "more")
	got, err := ExtractRow(cells, DefaultColumns)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", got.Code)
}

func TestExtractRowCustomLayout(t *testing.T) {
	cm, err := ParseColumnMap("code=0,price=1,carrier=2,color=3,storage=4,model=5,condition=6,battery=7,seller=8,location=9,shipping=10")
	require.NoError(t, err)

	cells := strings.Split("Z9|$10|Verizon|Red|64GB|iPhone 12|Good|80%|Bob|Austin, TX|$5", "|")
	got, err := ExtractRow(cells, cm)
	require.NoError(t, err)
	assert.Equal(t, "Z9", got.Code)
	assert.Equal(t, "$5", got.Shipping)
	assert.Equal(t, "Bob", got.Seller)
}

func TestExtractRowZeroColumnMap(t *testing.T) {
	for _, cells := range [][]string{nil, scenarioCells()} {
		got, err := ExtractRow(cells, ColumnMap{})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidColumns)
	}
}
