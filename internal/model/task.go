package model

import "errors"

var (
	ErrMissingID      = errors.New("task has no id")
	ErrMissingTitle   = errors.New("task has no title")
	ErrAllDayWithTime = errors.New("all-day task carries a start or end time")
	ErrMissingTimes   = errors.New("timed task needs both start and end time")
	ErrDateMismatch   = errors.New("task date differs from start date")
	ErrEndBeforeStart = errors.New("task ends before it starts")
)

// Task is the only persisted entity: a dated to-do item.
type Task struct {
	// ID is assigned once at creation and never changes.
	ID    string `json:"id"`
	Title string `json:"title"`

	// Date is the task's home day.
	Date   Date `json:"date"`
	AllDay bool `json:"all_day"`

	// StartTime / EndTime are nil for all-day tasks.
	StartTime *DateTime `json:"start_time"`
	EndTime   *DateTime `json:"end_time"`

	Description string `json:"description"`
	Location    string `json:"location"`

	Repeat       Repeat       `json:"repeat"`
	Notification Notification `json:"notification"`
}

// Validate checks the structural invariants of a task.
func (t Task) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.Title == "" {
		return ErrMissingTitle
	}
	if t.AllDay {
		if t.StartTime != nil || t.EndTime != nil {
			return ErrAllDayWithTime
		}
		return nil
	}
	if t.StartTime == nil || t.EndTime == nil {
		return ErrMissingTimes
	}
	if !t.StartTime.Date.Equal(t.Date) {
		return ErrDateMismatch
	}
	if t.EndTime.Before(*t.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}

// StartHour returns the hour-of-day of a timed task's start, or false for
// all-day tasks and tasks without a start time.
func (t Task) StartHour() (int, bool) {
	if t.AllDay || t.StartTime == nil {
		return 0, false
	}
	return t.StartTime.Hour, true
}
