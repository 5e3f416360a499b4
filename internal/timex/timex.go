// Package timex holds the time conventions of the remote service: second
// precision timestamps with a numeric UTC offset, calendar dates, the
// Sunday-to-Saturday reporting week, and a JSON-friendly Duration.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/common"
)

const (
	// TimestampLayout always renders the offset numerically ("+00:00", never
	// "Z"), which is what the service returns.
	TimestampLayout = "2006-01-02T15:04:05-07:00"
	DateLayout      = "2006-01-02"
)

// accepted by ParseTimestamp, tried in order; layouts without an offset are
// interpreted in local time, and a bare date is local midnight
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	DateLayout,
}

// Now returns the current local time truncated to whole seconds.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp. Fractional seconds are
// dropped. The returned error wraps common.ErrInvalidTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp: %w", common.ErrInvalidTimestamp)
	}
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, common.ErrInvalidTimestamp)
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, common.ErrInvalidTimestamp)
	}
	return t, nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekWindow returns the Sunday and the Saturday of the week containing
// today, both at midnight. On a Sunday the window starts today.
func WeekWindow(today time.Time) (start, end time.Time) {
	day := StartOfDay(today)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// FormatDuration renders d as hours and minutes, e.g. "10h30m", "2h", "45m".
// Seconds are truncated; negative durations render as "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int64(d / time.Hour)
	m := int64((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// Duration wraps time.Duration so JSON configuration can spell intervals
// either as strings like "30s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}
