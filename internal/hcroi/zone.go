package hcroi

import "github.com/shopspring/decimal"

// Zone buckets an HCROI index for dashboard display.
type Zone string

const (
	ZoneRed       Zone = "red"
	ZoneWatch     Zone = "watch"
	ZoneNormal    Zone = "normal"
	ZoneExcellent Zone = "excellent"
)

// Thresholds that map an index to a zone.
var (
	redThreshold       = decimal.NewFromInt(1)
	watchThreshold     = decimal.RequireFromString("1.2")
	excellentThreshold = decimal.RequireFromString("1.5")
)

// Classify maps an HCROI index to its zone. Below 1.0 the labor cost is not
// earning itself back.
func Classify(index decimal.Decimal) Zone {
	switch {
	case index.LessThan(redThreshold):
		return ZoneRed
	case index.LessThan(watchThreshold):
		return ZoneWatch
	case index.GreaterThanOrEqual(excellentThreshold):
		return ZoneExcellent
	default:
		return ZoneNormal
	}
}
