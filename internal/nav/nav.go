// Package nav holds the navigation state of the calendar: which view is
// active, which date is selected, and the live clock value used for
// highlighting. Transitions are pure and return a new State.
package nav

import (
	"fmt"

	"todocal/internal/model"
)

// ViewMode selects the day grid or the month grid.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewMonth ViewMode = "month"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(s); v {
	case ViewDay, ViewMonth:
		return v, nil
	default:
		return "", fmt.Errorf("nav: unknown view mode %q", s)
	}
}

func (v *ViewMode) UnmarshalText(b []byte) error {
	parsed, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// headerLayout is the day/month/year order shown next to the picker.
const headerLayout = "02/01/2006"

// State is the navigation half of the application state.
type State struct {
	View     ViewMode       `json:"view"`
	Selected model.Date     `json:"selected"`
	Now      model.DateTime `json:"now"`
}

// New starts on the clock's current day.
func New(view ViewMode, now model.DateTime) State {
	return State{View: view, Selected: now.Date, Now: now}
}

// WithView switches view mode; either mode is reachable from either.
func (s State) WithView(v ViewMode) State {
	s.View = v
	return s
}

// Select moves the selection to d.
func (s State) Select(d model.Date) State {
	s.Selected = d
	return s
}

// PickDate applies raw date-picker input. Unparseable input leaves the
// state unchanged and reports false.
func (s State) PickDate(raw string) (State, bool) {
	d, err := model.ParseDate(raw)
	if err != nil {
		return s, false
	}
	return s.Select(d), true
}

// PrevMonth moves to day 1 of the month before the selected one.
func (s State) PrevMonth() State {
	return s.Select(s.Selected.FirstOfMonth(-1))
}

// NextMonth moves to day 1 of the month after the selected one.
func (s State) NextMonth() State {
	return s.Select(s.Selected.FirstOfMonth(1))
}

// Tick records a new live clock value. Selection and view are untouched.
func (s State) Tick(now model.DateTime) State {
	s.Now = now
	return s
}

// Header is the selected date as shown in the calendar header.
func (s State) Header() string {
	return s.Selected.Format(headerLayout)
}
