package model

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Date is a calendar day with no time-of-day and no timezone. It is the
// "home day" of a task and the unit of navigation.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing out-of-range values the same way
// time.Date does (e.g. March 0 becomes the last day of February).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the wall-clock calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("model: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(o Date) bool {
	return d == o
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// Compare returns -1, 0 or +1 by comparing year, month and day.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// SameMonth reports whether both dates fall in the same year and month.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// Weekday returns the day of the week (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

// FirstOfMonth returns day 1 of d's month, shifted by the given number of
// months. Year rollover is handled.
func (d Date) FirstOfMonth(monthDelta int) Date {
	return NewDate(d.Year, d.Month+time.Month(monthDelta), 1)
}

// WithDay returns the date with the same year and month and the given day.
func (d Date) WithDay(day int) Date {
	return Date{Year: d.Year, Month: d.Month, Day: day}
}

// DaysInMonth returns the number of days in d's month.
func (d Date) DaysInMonth() int {
	return DaysIn(d.Year, d.Month)
}

// DaysIn returns the number of days of the given year/month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Format renders d with a time layout, e.g. "02/01/2006".
func (d Date) Format(layout string) string {
	return d.midnight().Format(layout)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateTime is a naive local wall-clock value: a Date plus hour and minute.
// It is never converted to an absolute instant.
type DateTime struct {
	Date
	Hour   int
	Minute int
}

// DateTimeOf returns the wall-clock date, hour and minute of t.
func DateTimeOf(t time.Time) DateTime {
	return DateTime{Date: DateOf(t), Hour: t.Hour(), Minute: t.Minute()}
}

// ParseDateTime parses a YYYY-MM-DDTHH:MM string.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("model: invalid date-time %q: %w", s, err)
	}
	return DateTimeOf(t), nil
}

// Compare orders by date, then hour, then minute.
func (dt DateTime) Compare(o DateTime) int {
	if c := dt.Date.Compare(o.Date); c != 0 {
		return c
	}
	if dt.Hour != o.Hour {
		return sign(dt.Hour - o.Hour)
	}
	return sign(dt.Minute - o.Minute)
}

// Before reports whether dt is earlier than o.
func (dt DateTime) Before(o DateTime) bool {
	return dt.Compare(o) < 0
}

// Time returns dt as a time.Time in loc, for formatting only.
func (dt DateTime) Time(loc *time.Location) time.Time {
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, 0, 0, loc)
}

func (dt DateTime) String() string {
	return dt.Time(time.UTC).Format(dateTimeLayout)
}

func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

func (dt *DateTime) UnmarshalText(b []byte) error {
	parsed, err := ParseDateTime(string(b))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
