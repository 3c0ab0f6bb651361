package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"todocal/internal/codec"
	appLog "todocal/internal/log"
	"todocal/internal/model"
)

// Import parses an iCalendar payload into tasks. Events that cannot be
// turned into a valid task are logged and skipped; the error is only
// non-nil when the payload itself cannot be parsed.
//
// Timed events are converted to local wall-clock values and rounded down
// to the quarter hour so they can be edited with the form's time options.
// Recurrence rules are mapped to a repeat label but never expanded.
func Import(body []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	tasks := make([]model.Task, 0)
	for _, ve := range cal.Events() {
		t, err := parseVEvent(ve)
		if err != nil {
			appLog.Error("ics vevent skipped", err)
			continue
		}
		tasks = append(tasks, t)
	}

	appLog.Info("ics import completed", "task_count", len(tasks))
	return tasks, nil
}

func parseVEvent(ve *ical.VEvent) (model.Task, error) {
	var t model.Task

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return t, errors.New("missing UID")
	}
	t.ID = idFromUID(uidProp.Value)

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		t.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		t.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		t.Location = p.Value
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return t, fmt.Errorf("event %s: missing DTSTART", t.ID)
	}
	start, allDay, err := parseDateProp(startProp)
	if err != nil {
		return t, fmt.Errorf("event %s: DTSTART: %w", t.ID, err)
	}
	t.Date = start.Date
	t.AllDay = allDay

	if !allDay {
		end := start
		if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
			if parsed, _, err := parseDateProp(endProp); err == nil {
				end = parsed
			}
		}
		start = floorQuarter(start)
		end = floorQuarter(end)
		if end.Before(start) {
			end = start
		}
		t.StartTime = &start
		t.EndTime = &end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		r, err := RepeatFor(p.Value)
		if err != nil {
			appLog.Warn("ics: ignoring recurrence rule", "uid", uidProp.Value, "rrule", p.Value, "err", err)
		}
		t.Repeat = r
	}

	t.Notification = notificationFor(ve)

	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("event %s: %w", t.ID, err)
	}
	return t, nil
}

// parseDateProp reads a DTSTART/DTEND property. DATE values (VALUE=DATE
// or no 'T') are all-day. UTC and TZID values are converted to local wall
// clock; floating values are taken as-is.
func parseDateProp(p *ical.IANAProperty) (model.DateTime, bool, error) {
	v := strings.TrimSpace(p.Value)
	if v == "" {
		return model.DateTime{}, false, errors.New("empty time value")
	}

	isDate := !strings.Contains(v, "T")
	if vs, ok := p.ICalParameters[string(ical.ParameterValue)]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		isDate = true
	}
	if isDate {
		d, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return model.DateTime{}, false, err
		}
		return model.DateTime{Date: model.DateOf(d)}, true, nil
	}

	if strings.HasSuffix(v, "Z") {
		ts, err := time.Parse(floatingLayout+"Z", v)
		if err != nil {
			return model.DateTime{}, false, err
		}
		return model.DateTimeOf(ts.In(time.Local)), false, nil
	}

	if tzs, ok := p.ICalParameters[string(ical.ParameterTzid)]; ok && len(tzs) > 0 {
		if loc, err := time.LoadLocation(tzs[0]); err == nil {
			ts, err := time.ParseInLocation(floatingLayout, v, loc)
			if err != nil {
				return model.DateTime{}, false, err
			}
			return model.DateTimeOf(ts.In(time.Local)), false, nil
		}
		appLog.Warn("ics: unknown TZID, treating time as floating", "tzid", tzs[0])
	}

	ts, err := time.ParseInLocation(floatingLayout, v, time.Local)
	if err != nil {
		return model.DateTime{}, false, err
	}
	return model.DateTimeOf(ts), false, nil
}

func floorQuarter(dt model.DateTime) model.DateTime {
	dt.Minute -= dt.Minute % codec.MinuteStep
	return dt
}

// notificationFor picks the first alarm whose lead time matches a
// notification option.
func notificationFor(ve *ical.VEvent) model.Notification {
	for _, alarm := range ve.Alarms() {
		p := alarm.GetProperty(ical.ComponentPropertyTrigger)
		if p == nil {
			continue
		}
		lead, err := leadMinutes(p.Value)
		if err != nil {
			appLog.Debug("ics: skipping alarm", "trigger", p.Value, "err", err)
			continue
		}
		if n, ok := model.NotificationForLead(lead); ok {
			return n
		}
	}
	return model.NotifyNone
}
