package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate        = "2006-01-02"
	layoutDisplayDate = "02/01/2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDisplayDate turns a stored date into DD/MM/YYYY.
// Accepts YYYY-MM-DD, RFC3339 timestamps and epoch milliseconds.
// Empty input yields ""; unparsable input is returned trimmed.
func FormatDisplayDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := ParseDate(s); err == nil {
		return t.Format(layoutDisplayDate)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(layoutDisplayDate)
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).In(time.Local).Format(layoutDisplayDate)
	}
	return s
}

// To12Hour converts "HH:MM" or "HH:MM:SS" into "h:MM AM|PM".
// Empty input yields ""; unparsable input is returned trimmed.
func To12Hour(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return s
}
