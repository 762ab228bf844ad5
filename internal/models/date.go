package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	brDateLayout  = "02/01/2006"
)

// Date is a calendar date without time-of-day or zone. It is stored as UTC midnight so
// comparisons never drift by a day because of the server's local offset.
type Date struct {
	time.Time
}

// NewDate builds a date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the year/month/day of t as written in its own location and drops the rest.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD, timestamps with a "T" separator (only the date part is
// read) and DD/MM/YYYY.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(isoDateLayout) && raw[4] == '-' {
		if len(raw) > len(isoDateLayout) && raw[len(isoDateLayout)] != 'T' {
			return Date{}, fmt.Errorf("parse date %q: unexpected text after date", raw)
		}
		t, err := time.Parse(isoDateLayout, raw[:len(isoDateLayout)])
		if err != nil {
			return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
		}
		return DateOf(t), nil
	}
	t, err := time.Parse(brDateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateOf(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(isoDateLayout)
}

// MarshalJSON encodes the date as YYYY-MM-DD, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes any layout accepted by ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive window of dates. A nil bound leaves that side open.
type DateRange struct {
	Start *Date
	End   *Date
}

// Unbounded reports whether neither side is set.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether d falls inside the range, bounds included.
func (r DateRange) Contains(d Date) bool {
	if r.Start != nil && d.Before(r.Start.Time) {
		return false
	}
	if r.End != nil && d.After(r.End.Time) {
		return false
	}
	return true
}

// Key fingerprints the range for page-reset detection.
func (r DateRange) Key() string {
	return fingerprint("start="+datePtrString(r.Start), "end="+datePtrString(r.End))
}

func datePtrString(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
