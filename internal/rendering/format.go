package rendering

import (
	"strings"
	"time"
)

// Fallback texts substituted for empty or unparseable fields
const (
	FallbackNotProvided  = "Not provided."
	FallbackNA           = "N/A"
	FallbackTBD          = "TBD"
	FallbackNotSpecified = "Not specified"
)

const (
	dateOnlyLayout = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// localLayouts are read as wall-clock time; zonedLayouts are converted to local time
var (
	localLayouts = []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		dateOnlyLayout,
	}
	zonedLayouts = []string{
		time.RFC3339,
		time.RFC3339Nano,
	}
)

// parseDate reads the date and date-time values produced by browser date inputs
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(time.Local), true
		}
	}
	return time.Time{}, false
}

// FormatDateTime formats a date-time as "2006-01-02 15:04" (24-hour),
// or "Not specified" when the value is empty or unparseable.
func FormatDateTime(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return FallbackNotSpecified
	}
	return t.Format(dateTimeLayout)
}

// FormatDateOnly formats a date as "2006-01-02", or "TBD" when the value is
// empty or unparseable. Any time of day is dropped.
func FormatDateOnly(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return FallbackTBD
	}
	return t.Format(dateOnlyLayout)
}

// orFallback returns value, or fallback when value is blank
func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// withUnit appends a unit suffix to a value that falls back to "N/A"
func withUnit(value, unit string) string {
	return orFallback(value, FallbackNA) + " " + unit
}
