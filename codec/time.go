package codec

import (
	"fmt"
	"time"
)

// Layouts accepted for date-time fields, tried in order. Upstream payloads
// mostly use RFC 3339; some integrations drop the zone or the time part.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 date-time as sent by the API. Values without a
// zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date-time")
}

// FormatTime renders t the way date-time fields are sent on the wire.
// Decoded values that were not changed are re-encoded with the text they
// arrived in instead, so date-only values and trailing zeros survive.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// sameInstant reports whether wire still describes t, zone offset included.
func sameInstant(t time.Time, wire string) bool {
	parsed, err := ParseTime(wire)
	return err == nil && FormatTime(parsed) == FormatTime(t)
}
