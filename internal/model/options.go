package model

import "fmt"

// Repeat is the recurrence label a user picked for a task. It is recorded
// and exported but never expanded into additional occurrences.
type Repeat int

const (
	RepeatNone Repeat = iota
	RepeatDaily
	RepeatWeekly
	RepeatMonthly
	RepeatYearly
)

var repeatLabels = [...]string{
	RepeatNone:    "Does not repeat",
	RepeatDaily:   "Every day",
	RepeatWeekly:  "Every week",
	RepeatMonthly: "Every month",
	RepeatYearly:  "Every year",
}

// Repeats lists every Repeat value in display order.
func Repeats() []Repeat {
	return []Repeat{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly}
}

// ParseRepeat maps a display label back to its Repeat value.
func ParseRepeat(label string) (Repeat, error) {
	for i, l := range repeatLabels {
		if l == label {
			return Repeat(i), nil
		}
	}
	return RepeatNone, fmt.Errorf("model: unknown repeat option %q", label)
}

func (r Repeat) Valid() bool {
	return r >= RepeatNone && r <= RepeatYearly
}

func (r Repeat) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Repeat(%d)", int(r))
	}
	return repeatLabels[r]
}

func (r Repeat) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("model: invalid repeat value %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Repeat) UnmarshalText(b []byte) error {
	v, err := ParseRepeat(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Notification is the reminder label a user picked for a task. No
// reminder is ever scheduled from it.
type Notification int

const (
	NotifyNone Notification = iota
	Notify5Minutes
	Notify10Minutes
	Notify15Minutes
	Notify1Hour
)

var notificationLabels = [...]string{
	NotifyNone:      "None",
	Notify5Minutes:  "5 minutes before",
	Notify10Minutes: "10 minutes before",
	Notify15Minutes: "15 minutes before",
	Notify1Hour:     "1 hours before",
}

var notificationLeadMinutes = [...]int{
	NotifyNone:      0,
	Notify5Minutes:  5,
	Notify10Minutes: 10,
	Notify15Minutes: 15,
	Notify1Hour:     60,
}

// Notifications lists every Notification value in display order.
func Notifications() []Notification {
	return []Notification{NotifyNone, Notify5Minutes, Notify10Minutes, Notify15Minutes, Notify1Hour}
}

// ParseNotification maps a display label back to its Notification value.
func ParseNotification(label string) (Notification, error) {
	for i, l := range notificationLabels {
		if l == label {
			return Notification(i), nil
		}
	}
	return NotifyNone, fmt.Errorf("model: unknown notification option %q", label)
}

// NotificationForLead returns the option whose lead time is exactly
// minutes, or false if there is none.
func NotificationForLead(minutes int) (Notification, bool) {
	for _, n := range Notifications() {
		if n != NotifyNone && notificationLeadMinutes[n] == minutes {
			return n, true
		}
	}
	return NotifyNone, false
}

func (n Notification) Valid() bool {
	return n >= NotifyNone && n <= Notify1Hour
}

// LeadMinutes is how long before the start the reminder would fire; zero
// for NotifyNone.
func (n Notification) LeadMinutes() int {
	if !n.Valid() {
		return 0
	}
	return notificationLeadMinutes[n]
}

func (n Notification) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Notification(%d)", int(n))
	}
	return notificationLabels[n]
}

func (n Notification) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("model: invalid notification value %d", int(n))
	}
	return []byte(n.String()), nil
}

func (n *Notification) UnmarshalText(b []byte) error {
	v, err := ParseNotification(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
