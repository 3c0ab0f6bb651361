// Package form turns the task edit form into Task records and back.
package form

import (
	"strings"

	"todocal/internal/codec"
	"todocal/internal/model"
)

const (
	DefaultStartLabel = "08:00 AM"
	DefaultEndLabel   = "08:30 AM"
)

// Fields are the transient values of the edit form.
type Fields struct {
	Title string `json:"title"`

	StartDate  *model.Date `json:"start_date"`
	EndDate    *model.Date `json:"end_date"`
	StartLabel string      `json:"start_time"`
	EndLabel   string      `json:"end_time"`
	AllDay     bool        `json:"all_day"`

	Description string `json:"description"`
	Location    string `json:"location"`

	Repeat       model.Repeat       `json:"repeat"`
	Notification model.Notification `json:"notification"`
}

// Preset carries what a grid click knows about the task to create.
type Preset struct {
	Date *model.Date `json:"date,omitempty"`
	Hour *int        `json:"hour,omitempty"`
}

// Defaults returns an empty create form.
func Defaults() Fields {
	return Fields{
		StartLabel:   DefaultStartLabel,
		EndLabel:     DefaultEndLabel,
		Repeat:       model.RepeatNone,
		Notification: model.NotifyNone,
	}
}

// Hydrate fills the form from task, or from preset when creating.
func Hydrate(task *model.Task, preset Preset) Fields {
	f := Defaults()
	if task == nil {
		if preset.Date != nil {
			f.StartDate = clone(preset.Date)
			f.EndDate = clone(preset.Date)
		}
		if preset.Hour != nil && *preset.Hour >= 0 && *preset.Hour < 24 {
			f.StartLabel = codec.FormatLabel(codec.TimeOfDay{Hour: *preset.Hour})
			f.EndLabel = codec.FormatLabel(codec.TimeOfDay{Hour: *preset.Hour, Minute: 30})
		}
		return f
	}

	f.Title = task.Title
	f.StartDate = clone(&task.Date)
	f.EndDate = clone(&task.Date)
	if task.StartTime != nil && task.EndTime != nil {
		_, f.StartLabel = codec.Decompose(*task.StartTime)
		endDate, endLabel := codec.Decompose(*task.EndTime)
		f.EndDate = &endDate
		f.EndLabel = endLabel
	}
	f.Description = task.Description
	f.Location = task.Location
	f.AllDay = task.AllDay
	if task.Repeat.Valid() {
		f.Repeat = task.Repeat
	}
	if task.Notification.Valid() {
		f.Notification = task.Notification
	}
	return f
}

// Build validates f and produces the task record. The editing task's ID is
// kept; otherwise newID supplies a fresh one.
func Build(f Fields, editing *model.Task, newID func() string) (model.Task, error) {
	if strings.TrimSpace(f.Title) == "" {
		return model.Task{}, invalid("title", ErrTitleRequired)
	}
	if !f.AllDay && (f.StartLabel == "" || f.EndLabel == "") {
		return model.Task{}, invalid("time", ErrTimeRequired)
	}
	if f.StartDate == nil || f.StartDate.IsZero() {
		return model.Task{}, invalid("start_date", ErrStartDateRequired)
	}
	if f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return model.Task{}, invalid("end_date", ErrEndBeforeStart)
	}

	task := model.Task{
		Title:        f.Title,
		Date:         *f.StartDate,
		AllDay:       f.AllDay,
		Description:  f.Description,
		Location:     f.Location,
		Repeat:       f.Repeat,
		Notification: f.Notification,
	}

	if !f.AllDay {
		start, err := codec.ComposeLabel(*f.StartDate, f.StartLabel)
		if err != nil {
			return model.Task{}, invalid("start_time", ErrInvalidTime)
		}
		endDate := *f.StartDate
		if f.EndDate != nil {
			endDate = *f.EndDate
		}
		end, err := codec.ComposeLabel(endDate, f.EndLabel)
		if err != nil {
			return model.Task{}, invalid("end_time", ErrInvalidTime)
		}
		if end.Before(start) {
			return model.Task{}, invalid("end_time", ErrEndBeforeStart)
		}
		task.StartTime = &start
		task.EndTime = &end
	}

	if editing != nil {
		task.ID = editing.ID
	} else {
		task.ID = newID()
	}
	return task, nil
}

func clone(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func sameDate(a, b *model.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
