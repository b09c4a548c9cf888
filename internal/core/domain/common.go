package domain

import (
	"strings"
	"time"
)

// TimestampLayout mirrors ISO-8601 with millisecond precision in UTC, e.g. 2024-05-01T10:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var timestampParseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatTimestamp renders t the way createdAt fields are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored createdAt value. Missing or malformed values
// yield the Unix epoch so that records still order deterministically.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range timestampParseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
