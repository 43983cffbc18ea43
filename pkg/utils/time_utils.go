package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseTripDate accepts a calendar date (2025-07-14) or a full RFC3339 timestamp
// as sent by browser date pickers.
func ParseTripDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FormatUnixRFC3339 renders epoch seconds for API responses; zero renders empty.
func FormatUnixRFC3339(sec int64) string {
	if sec <= 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// TripDays lists the calendar date of every trip day starting at start.
func TripDays(start time.Time, duration int) []time.Time {
	days := make([]time.Time, 0, duration)
	for i := 0; i < duration; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
