package utils

import (
	"math"
	"time"
)

var operationTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
}

// ParseOperationTime parses the timestamp formats written by the sheet add-on
// and the Drive API. Values are taken as wall-clock time in loc.
func ParseOperationTime(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range operationTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HoursBetween returns elapsed hours from since to now rounded to two decimals
func HoursBetween(since, now time.Time) float64 {
	hours := now.Sub(since).Seconds() / 3600
	return math.Round(hours*100) / 100
}
