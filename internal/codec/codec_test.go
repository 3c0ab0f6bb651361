package codec

import (
	"errors"
	"testing"
	"time"

	"todocal/internal/model"
)

func TestParseLabelMidnightAndNoon(t *testing.T) {
	cases := map[string]TimeOfDay{
		"12:00 AM": {Hour: 0, Minute: 0},
		"12:00 PM": {Hour: 12, Minute: 0},
		"12:45 AM": {Hour: 0, Minute: 45},
		"01:15 PM": {Hour: 13, Minute: 15},
		"08:30 AM": {Hour: 8, Minute: 30},
		"11:45 PM": {Hour: 23, Minute: 45},
	}
	for label, want := range cases {
		got, err := ParseLabel(label)
		if err != nil {
			t.Fatalf("ParseLabel(%q) failed: %v", label, err)
		}
		if got != want {
			t.Errorf("ParseLabel(%q): expected %+v, got %+v", label, want, got)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	cases := map[TimeOfDay]string{
		{Hour: 0, Minute: 0}:   "12:00 AM",
		{Hour: 11, Minute: 45}: "11:45 AM",
		{Hour: 12, Minute: 0}:  "12:00 PM",
		{Hour: 13, Minute: 30}: "01:30 PM",
		{Hour: 23, Minute: 15}: "11:15 PM",
	}
	for in, want := range cases {
		if got := FormatLabel(in); got != want {
			t.Errorf("FormatLabel(%+v): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseLabelRejectsMalformed(t *testing.T) {
	for _, label := range []string{"", "08:00", "08:00 XM", "13:00 PM", "00:00 AM", "08:10 AM", "08:60 AM", "ab:cd PM", "8:0 AM", "9:00 AM", "012:00 PM"} {
		if _, err := ParseLabel(label); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("ParseLabel(%q): expected ErrInvalidLabel, got %v", label, err)
		}
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	opts := Options()
	if len(opts) != 96 {
		t.Fatalf("Expected 96 options, got %d", len(opts))
	}
	if opts[0] != "12:00 AM" || opts[95] != "11:45 PM" {
		t.Errorf("Unexpected bounds %q .. %q", opts[0], opts[95])
	}
	seen := make(map[string]bool, len(opts))
	for i, label := range opts {
		if seen[label] {
			t.Errorf("Duplicate option %q", label)
		}
		seen[label] = true

		tod, err := ParseLabel(label)
		if err != nil {
			t.Fatalf("ParseLabel(%q) failed: %v", label, err)
		}
		if tod.Hour*4+tod.Minute/15 != i {
			t.Errorf("Option %d (%q) decoded out of order: %+v", i, label, tod)
		}
		if got := FormatLabel(tod); got != label {
			t.Errorf("Round trip of %q produced %q", label, got)
		}
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	a := Options()
	a[0] = "mutated"
	if Options()[0] != "12:00 AM" {
		t.Errorf("Options shares its backing array with callers")
	}
}

func TestHourLabel(t *testing.T) {
	cases := map[int]string{0: "12 AM", 1: "1 AM", 11: "11 AM", 12: "12 PM", 13: "1 PM", 23: "11 PM"}
	for h, want := range cases {
		if got := HourLabel(h); got != want {
			t.Errorf("HourLabel(%d): expected %q, got %q", h, want, got)
		}
	}
}

func TestComposeDecompose(t *testing.T) {
	day := model.NewDate(2024, time.March, 1)
	dt, err := ComposeLabel(day, "09:30 PM")
	if err != nil {
		t.Fatalf("ComposeLabel failed: %v", err)
	}
	if dt.Date != day || dt.Hour != 21 || dt.Minute != 30 {
		t.Errorf("Unexpected composed value %s", dt)
	}
	gotDay, label := Decompose(dt)
	if gotDay != day || label != "09:30 PM" {
		t.Errorf("Decompose: expected (%s, 09:30 PM), got (%s, %s)", day, gotDay, label)
	}
}
