package models

import "time"

// Field names of a Listing, in the order the marketplace table presents them.
const (
	FieldPrice     = "price"
	FieldCarrier   = "carrier"
	FieldColor     = "color"
	FieldStorage   = "storage"
	FieldModel     = "model"
	FieldCondition = "condition"
	FieldBattery   = "battery"
	FieldSeller    = "seller"
	FieldLocation  = "location"
	FieldShipping  = "shipping"
	FieldCode      = "code"
)

// Fields lists every Listing field name in table order.
var Fields = []string{
	FieldPrice, FieldCarrier, FieldColor, FieldStorage, FieldModel, FieldCondition,
	FieldBattery, FieldSeller, FieldLocation, FieldShipping, FieldCode,
}

// Listing is one normalised row of the marketplace listings table.
// Code identifies the listing across runs and is the persistence dedup key.
type Listing struct {
	Price     string `json:"price"`
	Carrier   string `json:"carrier"`
	Color     string `json:"color"`
	Storage   string `json:"storage"`
	Model     string `json:"model"`
	Condition string `json:"condition"`
	Battery   string `json:"battery"`
	Seller    string `json:"seller"`
	Location  string `json:"location"`
	Shipping  string `json:"shipping"`
	Code      string `json:"code"`
}

// Get returns the value of the named field. ok is false for unknown names.
func (l *Listing) Get(field string) (value string, ok bool) {
	if p := l.field(field); p != nil {
		return *p, true
	}
	return "", false
}

// Set assigns the named field. It reports false for unknown names.
func (l *Listing) Set(field, value string) bool {
	p := l.field(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Values returns the listing's values in the order of the given field names.
// Unknown names yield an empty string.
func (l *Listing) Values(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i], _ = l.Get(f)
	}
	return out
}

func (l *Listing) field(name string) *string {
	switch name {
	case FieldPrice:
		return &l.Price
	case FieldCarrier:
		return &l.Carrier
	case FieldColor:
		return &l.Color
	case FieldStorage:
		return &l.Storage
	case FieldModel:
		return &l.Model
	case FieldCondition:
		return &l.Condition
	case FieldBattery:
		return &l.Battery
	case FieldSeller:
		return &l.Seller
	case FieldLocation:
		return &l.Location
	case FieldShipping:
		return &l.Shipping
	case FieldCode:
		return &l.Code
	}
	return nil
}

// SaveResult counts the outcome of one persistence call.
type SaveResult struct {
	Inserted int
	Ignored  int
	Failed   int
}

// RunReport summarises one fetch → parse → export → persist run.
type RunReport struct {
	RunID          string
	URL            string
	StartedAt      time.Time
	Duration       time.Duration
	RowsSeen       int
	Accepted       int
	Skipped        int
	StructureEmpty bool
	DuplicateCodes []string
	Exported       map[string]string // format -> written path
	ExportErrors   map[string]string // format -> error text
	Persisted      *SaveResult
	PersistError   string
	DebugDumpPath  string
}

// InsightReport holds the computed breakdown over one run's listings.
type InsightReport struct {
	TotalListings int
	PricedCount   int
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	Cheapest      *Listing
	MostExpensive *Listing
	ByCarrier     map[string]int
	ByCondition   map[string]int
	AvgBattery    float64
}
