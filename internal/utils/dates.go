package utils

import (
	"strings"
	"time"
)

// InvalidDate is what an unparsable, non-empty date displays as.
const InvalidDate = "Invalid Date"

// DisplayDateLayout renders dates as "Mon DD, YYYY".
const DisplayDateLayout = "Jan 02, 2006"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// epoch is where undated posts sort.
var epoch = time.Unix(0, 0).UTC()

// ParseDate tries the accepted layouts in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortDate is the ordering key of a post date; missing or unparsable dates
// sort as the Unix epoch.
func SortDate(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return epoch
}

// FormatDate renders s for display. Empty stays empty.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format(DisplayDateLayout)
}
