package services

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"swappa-scraper/models"
	"swappa-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

// WithOutput redirects Print.
func (s *InsightService) WithOutput(w io.Writer) *InsightService {
	s.out = w
	return s
}

// Generate computes price, battery, carrier and condition breakdowns.
// Listings whose price cell has no number are left out of price stats.
func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ByCarrier:   make(map[string]int),
		ByCondition: make(map[string]int),
	}
	if len(listings) == 0 {
		s.logger.Warn("[insights] No listings to analyse")
		return report
	}
	s.logger.Debug("[insights] Computing insights over %d listings", len(listings))
	report.TotalListings = len(listings)

	var total, batteryTotal float64
	var batteryCount int
	for _, l := range listings {
		if l.Carrier != "" {
			report.ByCarrier[l.Carrier]++
		}
		if l.Condition != "" {
			report.ByCondition[l.Condition]++
		}
		if b, ok := parseBattery(l.Battery); ok {
			batteryTotal += b
			batteryCount++
		}

		price, ok := parsePrice(l.Price)
		if !ok {
			continue
		}
		if report.PricedCount == 0 || price < report.MinPrice {
			report.MinPrice = price
			report.Cheapest = l
		}
		if report.PricedCount == 0 || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = l
		}
		total += price
		report.PricedCount++
	}

	if report.PricedCount > 0 {
		report.AveragePrice = round2(total / float64(report.PricedCount))
	}
	if batteryCount > 0 {
		report.AvgBattery = round2(batteryTotal / float64(batteryCount))
	}
	return report
}

// Print renders the run summary and, when there are listings, the insight tables.
func (s *InsightService) Print(run *models.RunReport, r *models.InsightReport) {
	summary := s.newTable("Run " + run.RunID)
	summary.AppendRows([]table.Row{
		{"URL", run.URL},
		{"Rows seen", run.RowsSeen},
		{"Accepted", run.Accepted},
		{"Skipped", run.Skipped},
		{"Duration", run.Duration.Round(1e6).String()},
	})
	if run.StructureEmpty {
		summary.AppendRow(table.Row{"Structure", "no listing rows found"})
	}
	if len(run.DuplicateCodes) > 0 {
		summary.AppendRow(table.Row{"Repeated codes", len(run.DuplicateCodes)})
	}
	for _, format := range sortedKeys(run.Exported) {
		summary.AppendRow(table.Row{"Exported " + format, run.Exported[format]})
	}
	for _, format := range sortedKeys(run.ExportErrors) {
		summary.AppendRow(table.Row{"Failed " + format, run.ExportErrors[format]})
	}
	if run.Persisted != nil {
		summary.AppendRow(table.Row{"Stored", fmt.Sprintf("%d new, %d already known, %d failed",
			run.Persisted.Inserted, run.Persisted.Ignored, run.Persisted.Failed)})
	}
	if run.DebugDumpPath != "" {
		summary.AppendRow(table.Row{"Raw HTML", run.DebugDumpPath})
	}
	summary.Render()

	if r == nil || r.TotalListings == 0 {
		return
	}

	prices := s.newTable("Prices")
	if r.PricedCount > 0 {
		prices.AppendRows([]table.Row{
			{"Average", fmt.Sprintf("$%.2f", r.AveragePrice)},
			{"Cheapest", fmt.Sprintf("$%.2f  %s", r.MinPrice, describe(r.Cheapest))},
			{"Most expensive", fmt.Sprintf("$%.2f  %s", r.MaxPrice, describe(r.MostExpensive))},
		})
	} else {
		prices.AppendRow(table.Row{"No price data available", ""})
	}
	if r.AvgBattery > 0 {
		prices.AppendRow(table.Row{"Average battery", fmt.Sprintf("%.1f%%", r.AvgBattery)})
	}
	prices.Render()

	s.renderCounts("By carrier", r.ByCarrier)
	s.renderCounts("By condition", r.ByCondition)
}

func (s *InsightService) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func (s *InsightService) renderCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	type kv struct {
		key   string
		count int
	}
	rows := make([]kv, 0, len(counts))
	for k, v := range counts {
		rows = append(rows, kv{k, v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})

	t := s.newTable(title)
	for _, row := range rows {
		t.AppendRow(table.Row{row.key, row.count})
	}
	t.Render()
}

func describe(l *models.Listing) string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s %s %s (%s)", l.Model, l.Storage, l.Color, l.Code)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
