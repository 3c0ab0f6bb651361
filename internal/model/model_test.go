package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.March, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		if got := DaysIn(c.year, c.month); got != c.want {
			t.Errorf("DaysIn(%d, %s): expected %d, got %d", c.year, c.month, c.want, got)
		}
	}
}

func TestFirstOfMonthRollsOverYears(t *testing.T) {
	d := NewDate(2024, time.January, 17)
	if got := d.FirstOfMonth(-1); got != NewDate(2023, time.December, 1) {
		t.Errorf("Expected 2023-12-01, got %s", got)
	}
	d = NewDate(2024, time.December, 31)
	if got := d.FirstOfMonth(1); got != NewDate(2025, time.January, 1) {
		t.Errorf("Expected 2025-01-01, got %s", got)
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 5)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Fatalf("Expected %s before %s", a, b)
	}
	if !a.Equal(NewDate(2024, time.March, 1)) {
		t.Errorf("Expected equal dates")
	}
	if NewDate(2023, time.December, 31).Compare(a) != -1 {
		t.Errorf("Expected year to dominate comparison")
	}
}

func TestDateWeekday(t *testing.T) {
	if got := NewDate(2024, time.March, 1).Weekday(); got != time.Friday {
		t.Errorf("Expected Friday, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d != NewDate(2024, time.March, 5) {
		t.Errorf("Expected 2024-03-05, got %s", d)
	}
	if _, err := ParseDate("2024-13-40"); err == nil {
		t.Errorf("Expected error for out-of-range date")
	}
	if _, err := ParseDate("not a date"); err == nil {
		t.Errorf("Expected error for garbage input")
	}
}

func TestDateTimeOrdering(t *testing.T) {
	a := DateTime{Date: NewDate(2024, time.March, 1), Hour: 9, Minute: 0}
	b := DateTime{Date: NewDate(2024, time.March, 1), Hour: 9, Minute: 30}
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Expected %s before %s", a, b)
	}
	if a.String() != "2024-03-01T09:00" {
		t.Errorf("Expected 2024-03-01T09:00, got %s", a.String())
	}
}

func TestTaskJSON(t *testing.T) {
	start := DateTime{Date: NewDate(2024, time.March, 1), Hour: 9}
	end := DateTime{Date: NewDate(2024, time.March, 1), Hour: 9, Minute: 30}
	task := Task{
		ID:           "a",
		Title:        "Standup",
		Date:         NewDate(2024, time.March, 1),
		StartTime:    &start,
		EndTime:      &end,
		Repeat:       RepeatWeekly,
		Notification: Notify5Minutes,
	}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"date":"2024-03-01"`, `"start_time":"2024-03-01T09:00"`, `"repeat":"Every week"`, `"notification":"5 minutes before"`} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %s in %s", want, s)
		}
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.EndTime == nil || *back.EndTime != end {
		t.Errorf("Expected end %s, got %v", end, back.EndTime)
	}
}

func TestUnknownLabelsRejected(t *testing.T) {
	var r Repeat
	if err := r.UnmarshalText([]byte("Every fortnight")); err == nil {
		t.Errorf("Expected error for unknown repeat label")
	}
	var n Notification
	if err := n.UnmarshalText([]byte("2 days before")); err == nil {
		t.Errorf("Expected error for unknown notification label")
	}
}

func TestTaskValidate(t *testing.T) {
	day := NewDate(2024, time.March, 1)
	start := DateTime{Date: day, Hour: 10}
	end := DateTime{Date: day, Hour: 9}

	cases := map[string]struct {
		task Task
		want error
	}{
		"all-day ok":       {Task{ID: "1", Title: "x", Date: day, AllDay: true}, nil},
		"all-day w/ times": {Task{ID: "1", Title: "x", Date: day, AllDay: true, StartTime: &start}, ErrAllDayWithTime},
		"missing times":    {Task{ID: "1", Title: "x", Date: day}, ErrMissingTimes},
		"end before start": {Task{ID: "1", Title: "x", Date: day, StartTime: &start, EndTime: &end}, ErrEndBeforeStart},
		"no title":         {Task{ID: "1", Date: day, AllDay: true}, ErrMissingTitle},
	}
	for name, c := range cases {
		if got := c.task.Validate(); got != c.want {
			t.Errorf("%s: expected %v, got %v", name, c.want, got)
		}
	}
}
