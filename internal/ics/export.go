package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"todocal/internal/model"
)

// ExportOptions controls calendar-level properties of an export.
type ExportOptions struct {
	// Name is written as X-WR-CALNAME when non-empty.
	Name string
	// ProductID defaults to "-//todocal//EN".
	ProductID string
	// Stamp is the DTSTAMP of every event; defaults to time.Now.
	Stamp time.Time
}

// Export serializes tasks into a VCALENDAR, one VEVENT per task, in
// collection order.
func Export(tasks []model.Task, opts ExportOptions) string {
	if opts.ProductID == "" {
		opts.ProductID = "-//todocal//EN"
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, t := range tasks {
		addEvent(cal, t, opts.Stamp)
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, t model.Task, stamp time.Time) {
	ev := cal.AddEvent(uidFor(t.ID))
	ev.SetDtStampTime(stamp)
	ev.SetSummary(t.Title)
	if t.Description != "" {
		ev.SetDescription(t.Description)
	}
	if t.Location != "" {
		ev.SetLocation(t.Location)
	}

	if t.AllDay || t.StartTime == nil || t.EndTime == nil {
		dateValue := ical.WithValue(string(ical.ValueDataTypeDate))
		next := model.NewDate(t.Date.Year, t.Date.Month, t.Date.Day+1)
		ev.SetProperty(ical.ComponentPropertyDtStart, t.Date.Format(dateLayout), dateValue)
		ev.SetProperty(ical.ComponentPropertyDtEnd, next.Format(dateLayout), dateValue)
	} else {
		ev.SetProperty(ical.ComponentPropertyDtStart, t.StartTime.Time(time.UTC).Format(floatingLayout))
		ev.SetProperty(ical.ComponentPropertyDtEnd, t.EndTime.Time(time.UTC).Format(floatingLayout))
	}

	if rule, ok := RRuleFor(t.Repeat); ok {
		ev.AddProperty(ical.ComponentPropertyRrule, rule)
	}

	if trigger, ok := triggerFor(t.Notification); ok {
		alarm := ev.AddAlarm()
		alarm.SetProperty(ical.ComponentPropertyAction, string(ical.ActionDisplay))
		alarm.SetProperty(ical.ComponentPropertyTrigger, trigger)
		alarm.SetProperty(ical.ComponentPropertyDescription, t.Title)
	}
}
