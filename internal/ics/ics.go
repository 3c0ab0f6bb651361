// Package ics exports the task collection as an iCalendar feed and imports
// tasks from one. Task times are written as floating local times, so no
// timezone is attached on export.
package ics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"todocal/internal/model"
)

const (
	// uidSuffix is appended to task IDs to form globally unique UIDs.
	uidSuffix = "@todocal"

	floatingLayout = "20060102T150405"
	dateLayout     = "20060102"
)

var repeatFreq = map[model.Repeat]rrule.Frequency{
	model.RepeatDaily:   rrule.DAILY,
	model.RepeatWeekly:  rrule.WEEKLY,
	model.RepeatMonthly: rrule.MONTHLY,
	model.RepeatYearly:  rrule.YEARLY,
}

// RRuleFor renders the RRULE value recorded for a repeat label. The rule is
// informational: nothing in this program expands it.
func RRuleFor(r model.Repeat) (string, bool) {
	freq, ok := repeatFreq[r]
	if !ok {
		return "", false
	}
	opt := rrule.ROption{Freq: freq, Interval: 1}
	return opt.RRuleString(), true
}

// RepeatFor maps an RRULE value back onto the closest repeat label. Rules
// with an interval other than one, or a frequency finer than daily, have
// no label and map to RepeatNone.
func RepeatFor(rule string) (model.Repeat, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return model.RepeatNone, fmt.Errorf("ics: parse RRULE %q: %w", rule, err)
	}
	if opt.Interval > 1 {
		return model.RepeatNone, nil
	}
	for r, freq := range repeatFreq {
		if opt.Freq == freq {
			return r, nil
		}
	}
	return model.RepeatNone, nil
}

func uidFor(id string) string {
	return id + uidSuffix
}

func idFromUID(uid string) string {
	return strings.TrimSuffix(uid, uidSuffix)
}

// triggerFor renders a VALARM trigger such as "-PT15M".
func triggerFor(n model.Notification) (string, bool) {
	lead := n.LeadMinutes()
	if lead <= 0 {
		return "", false
	}
	if lead%60 == 0 {
		return fmt.Sprintf("-PT%dH", lead/60), true
	}
	return fmt.Sprintf("-PT%dM", lead), true
}

var errUnsupportedTrigger = errors.New("unsupported trigger")

// leadMinutes parses the negative durations produced by triggerFor and the
// common "-PnDTnHnMnS" forms written by other calendar apps.
func leadMinutes(trigger string) (int, error) {
	s := strings.TrimSpace(trigger)
	if !strings.HasPrefix(s, "-P") {
		return 0, fmt.Errorf("%w: %q", errUnsupportedTrigger, trigger)
	}
	s = s[2:]

	total := 0
	n := 0
	digits := false
	inTime := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int(r-'0')
			digits = true
			continue
		case r == 'T':
			inTime = true
			continue
		}
		if !digits {
			return 0, fmt.Errorf("%w: %q", errUnsupportedTrigger, trigger)
		}
		switch {
		case r == 'W' && !inTime:
			total += n * 7 * 24 * 60
		case r == 'D' && !inTime:
			total += n * 24 * 60
		case r == 'H' && inTime:
			total += n * 60
		case r == 'M' && inTime:
			total += n
		case r == 'S' && inTime:
			total += n / 60
		default:
			return 0, fmt.Errorf("%w: %q", errUnsupportedTrigger, trigger)
		}
		n = 0
		digits = false
	}
	if digits {
		return 0, fmt.Errorf("%w: %q", errUnsupportedTrigger, trigger)
	}
	return total, nil
}
