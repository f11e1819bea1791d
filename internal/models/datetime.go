// ABOUTME: Date and duration parsing for run and mood entries.
// ABOUTME: Timestamps are naive wall-clock values kept in the UTC location.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinuteLayout is the only accepted input shape for a run date.
	MinuteLayout = "2006-01-02T15:04"
	// SecondLayout is used for serialization and optional mood dates.
	SecondLayout = "2006-01-02T15:04:05"
)

// WallClock drops the zone from t, keeping the local wall-clock reading.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Now returns the current wall-clock time truncated to seconds.
func Now() time.Time {
	return WallClock(time.Now())
}

// FormatDate renders a stored timestamp for the API.
func FormatDate(t time.Time) string {
	return t.Format(SecondLayout)
}

// ParseRunDate parses a run date. Only YYYY-MM-DDTHH:MM is accepted:
// no seconds, no zone, every component zero-padded.
func ParseRunDate(s string) (time.Time, error) {
	if len(s) != len(MinuteLayout) {
		return time.Time{}, invalidDateTime("date")
	}
	t, err := time.Parse(MinuteLayout, s)
	if err != nil {
		return time.Time{}, invalidDateTime("date")
	}
	return t, nil
}

// ParseMoodDate parses an optional mood date with minute or second precision.
func ParseMoodDate(s string) (time.Time, error) {
	layout := ""
	switch len(s) {
	case len(MinuteLayout):
		layout = MinuteLayout
	case len(SecondLayout):
		layout = SecondLayout
	default:
		return time.Time{}, invalidDateTime("date")
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, invalidDateTime("date")
	}
	return t, nil
}

// ParseDuration parses HH:MM:SS. Each component must be exactly two digits;
// hours run 00-23, minutes and seconds 00-59.
func ParseDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, invalidTime("total_time")
	}

	limits := [3]int{23, 59, 59}
	var vals [3]int
	for i, p := range parts {
		if len(p) != 2 || !isDigits(p) {
			return 0, invalidTime("total_time")
		}
		n, _ := strconv.Atoi(p)
		if n > limits[i] {
			return 0, invalidTime("total_time")
		}
		vals[i] = n
	}

	return time.Duration(vals[0])*time.Hour +
		time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second, nil
}

// FormatDuration renders d as HH:MM:SS, rounded to the nearest second.
// Hours are not capped, so very slow paces stay readable.
func FormatDuration(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
