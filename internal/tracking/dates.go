package tracking

import (
	"strings"
	"time"
)

const (
	shortDate     = "2/1/2006"
	shortDateTime = "2/1/2006, 15:04:05"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseDate reads the date shapes the open-data API emits. Inputs without a
// zone are taken as local to loc.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// formatDate renders raw as d/m/yyyy. Unparseable input is returned as is.
func formatDate(raw string, loc *time.Location) string {
	t, ok := parseDate(raw, loc)
	if !ok {
		return raw
	}
	return t.Format(shortDate)
}

// formatDateTime renders raw as d/m/yyyy, HH:MM:SS.
func formatDateTime(raw string, loc *time.Location) string {
	t, ok := parseDate(raw, loc)
	if !ok {
		return raw
	}
	return t.Format(shortDateTime)
}
