package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// priceRegexp captures the first numeric amount, thousands separators included.
	priceRegexp = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	// percentRegexp captures a battery health figure such as "92%".
	percentRegexp = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
)

// parsePrice extracts a numeric amount from a price cell.
// Examples:
//
//	"$600"       → 600, true
//	"$1,049.99"  → 1049.99, true
//	"Free"       → 0, false
func parsePrice(raw string) (float64, bool) {
	match := priceRegexp.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseBattery extracts a 0–100 battery health percentage.
func parseBattery(raw string) (float64, bool) {
	m := percentRegexp.FindStringSubmatch(raw)
	if len(m) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}
