package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"swappa-scraper/models"
	"swappa-scraper/utils"
)

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{Price: "$600", Carrier: "AT&T", Condition: "Used", Battery: "92%", Model: "iPhone 13", Code: "A1"},
		{Price: "$450", Carrier: "Verizon", Condition: "Good", Battery: "85%", Model: "iPhone 13", Code: "A2"},
		{Price: "$1,050", Carrier: "Unlocked", Condition: "Mint", Battery: "100%", Model: "iPhone 13 Pro", Code: "A3"},
		{Price: "Call", Carrier: "AT&T", Condition: "Used", Battery: "", Model: "iPhone 13", Code: "A4"},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleListings())
	if r.TotalListings != 4 {
		t.Errorf("TotalListings: got %d, want 4", r.TotalListings)
	}
	if r.PricedCount != 3 {
		t.Errorf("PricedCount: got %d, want 3", r.PricedCount)
	}
	if r.ByCarrier["AT&T"] != 2 {
		t.Errorf("AT&T count: got %d, want 2", r.ByCarrier["AT&T"])
	}
	if r.ByCondition["Used"] != 2 {
		t.Errorf("Used count: got %d, want 2", r.ByCondition["Used"])
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleListings())
	if r.AveragePrice != 700 {
		t.Errorf("AveragePrice: got %.2f, want 700", r.AveragePrice)
	}
	if r.MinPrice != 450 || r.Cheapest.Code != "A2" {
		t.Errorf("Cheapest: got %.2f %s, want 450 A2", r.MinPrice, r.Cheapest.Code)
	}
	if r.MaxPrice != 1050 || r.MostExpensive.Code != "A3" {
		t.Errorf("MostExpensive: got %.2f %s, want 1050 A3", r.MaxPrice, r.MostExpensive.Code)
	}
	if r.AvgBattery != 92.33 {
		t.Errorf("AvgBattery: got %.2f, want 92.33", r.AvgBattery)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil)
	if r.TotalListings != 0 || r.MostExpensive != nil {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(utils.NewNopLogger()).WithOutput(&buf)

	run := &models.RunReport{
		RunID:     "run-1",
		URL:       "https://swappa.com/listings/apple-iphone-13",
		RowsSeen:  5,
		Accepted:  4,
		Skipped:   1,
		Duration:  1500 * time.Millisecond,
		Exported:  map[string]string{"csv": "swappa_report.csv"},
		Persisted: &models.SaveResult{Inserted: 3, Ignored: 1},
	}
	svc.Print(run, svc.Generate(sampleListings()))

	out := buf.String()
	for _, want := range []string{"run-1", "Rows seen", "swappa_report.csv", "3 new, 1 already known", "Verizon", "$700.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
