package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat = "2006-01-02"
	day       = 24 * time.Hour
)

// Date is a calendar day with no clock or time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// Today returns the calendar day of now. It exists so callers read naturally
// when they pass in an injected clock.
func Today(now time.Time) Date {
	return DateOf(now)
}

// ParseDate reads a day in YYYY-MM-DD form. Anything after the date, such as
// the "T00:00:00" suffix NOAA attaches, is ignored.
func ParseDate(s string) (Date, error) {
	if len(s) < len(dayFormat) {
		return Date{}, fmt.Errorf("date %q too short", s)
	}
	t, err := time.Parse(dayFormat, s[:len(dayFormat)])
	if err != nil {
		return Date{}, fmt.Errorf("date %q not in fmt %q: %w", s, dayFormat, err)
	}
	return DateOf(t), nil
}

// Midnight returns the first instant of d in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays moves d by n calendar days. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Midnight(time.UTC).AddDate(0, 0, n))
}

func (d Date) Before(d2 Date) bool {
	return d.Midnight(time.UTC).Before(d2.Midnight(time.UTC))
}

func (d Date) After(d2 Date) bool {
	return d2.Before(d)
}

// DaysUntil counts whole days from d to d2; negative if d2 comes first.
func (d Date) DaysUntil(d2 Date) int {
	return int(d2.Midnight(time.UTC).Sub(d.Midnight(time.UTC)) / day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Midnight(time.UTC).Format(dayFormat)
}

// MarshalText encodes the zero Date as an empty string.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(buf []byte) error {
	if len(buf) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(buf))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Window is an inclusive range of calendar days.
type Window struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// Lookback returns the window of days ending on (and including) today and
// starting the given number of days earlier.
func Lookback(today Date, days int) Window {
	return Window{
		From: today.AddDays(-days),
		To:   today,
	}
}

// Contains reports whether d falls inside the window, endpoints included.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.From, w.To)
}

// SameDay reports whether two instants share a calendar day, each judged in its
// own location.
func SameDay(t time.Time, t2 time.Time) bool {
	return DateOf(t) == DateOf(t2)
}

// TrimClock drops the wall clock component of t, leaving midnight of the same
// day in the same location.
func TrimClock(t time.Time) time.Time {
	return DateOf(t).Midnight(t.Location())
}
