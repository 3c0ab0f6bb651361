// Package codec converts between the 12-hour time labels shown in the task
// form ("08:30 AM"), 24-hour hour/minute pairs, and the naive date-times
// stored on a task. No timezone conversion is ever performed.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todocal/internal/model"
)

// ErrInvalidLabel is returned for anything that is not a quarter-hour
// "HH:MM AM|PM" label.
var ErrInvalidLabel = errors.New("invalid time label")

// MinuteStep is the granularity of selectable times.
const MinuteStep = 15

// TimeOfDay is a 24-hour wall-clock hour and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Valid reports whether t is a selectable quarter-hour time.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60 && t.Minute%MinuteStep == 0
}

func (t TimeOfDay) String() string {
	return FormatLabel(t)
}

// options is generated once and shared by the start and end selectors.
var options = generateOptions()

func generateOptions() []string {
	out := make([]string, 0, 24*60/MinuteStep)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += MinuteStep {
			out = append(out, FormatLabel(TimeOfDay{Hour: h, Minute: m}))
		}
	}
	return out
}

// Options returns the 96 selectable time labels, midnight first. The
// returned slice is a copy.
func Options() []string {
	return append([]string(nil), options...)
}

// ParseLabel decodes "HH:MM AM|PM". Both fields are two digits, so only
// the option labels decode. An hour label of 12 means hour 0
// before the PM offset is applied, so "12:00 AM" is midnight and
// "12:00 PM" is noon.
func ParseLabel(label string) (TimeOfDay, error) {
	clock, modifier, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	if hour == 12 {
		hour = 0
	}
	switch modifier {
	case "AM":
	case "PM":
		hour += 12
	default:
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return t, nil
}

// FormatLabel encodes t as "HH:MM AM|PM" with a zero-padded 12-hour clock.
func FormatLabel(t TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d %s", twelveHour(t.Hour), t.Minute, meridiem(t.Hour))
}

// HourLabel is the short row header of the day grid, e.g. "12 AM", "3 PM".
func HourLabel(hour int) string {
	return fmt.Sprintf("%d %s", twelveHour(hour), meridiem(hour))
}

func twelveHour(hour int) int {
	if h := hour % 12; h != 0 {
		return h
	}
	return 12
}

func meridiem(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}

// Compose joins a task date with a time of day into the stored value.
func Compose(d model.Date, t TimeOfDay) model.DateTime {
	return model.DateTime{Date: d, Hour: t.Hour, Minute: t.Minute}
}

// ComposeLabel decodes label and composes it with d.
func ComposeLabel(d model.Date, label string) (model.DateTime, error) {
	t, err := ParseLabel(label)
	if err != nil {
		return model.DateTime{}, err
	}
	return Compose(d, t), nil
}

// Decompose splits a stored date-time into its date and form label.
func Decompose(dt model.DateTime) (model.Date, string) {
	return dt.Date, FormatLabel(TimeOfDay{Hour: dt.Hour, Minute: dt.Minute})
}
