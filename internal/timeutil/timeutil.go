// ABOUTME: Time utility functions for growth binning and CLI date parsing
// ABOUTME: Floors timestamps to day, week, or month boundaries

package timeutil

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight (00:00:00) of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the most recent Monday
// Note: Week starts on Monday
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// dateLayouts accepted by ParseDate, tried in order
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate converts a CLI date argument to a time.Time
// Supported layouts: "2006-01-02" and RFC3339
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD or RFC3339)", s)
}
