package calendar

import (
	"todocal/internal/codec"
	"todocal/internal/model"
)

// HoursPerDay is the number of buckets in a day grid.
const HoursPerDay = 24

// HourSlot is one hour bucket of the day grid.
type HourSlot struct {
	Hour  int          `json:"hour"`
	Label string       `json:"label"`
	Tasks []model.Task `json:"tasks"`

	// Current marks the live clock's hour on the live clock's day. The
	// current slot is highlighted and does not accept new tasks, but the
	// tasks inside it stay selectable.
	Current bool `json:"current"`
}

// CanCreate reports whether clicking the empty slot should open a create
// form preset to this hour.
func (s HourSlot) CanCreate() bool {
	return !s.Current
}

// DayGrid is the composed day view.
type DayGrid struct {
	Date   model.Date            `json:"date"`
	AllDay []model.Task          `json:"all_day"`
	Hours  [HoursPerDay]HourSlot `json:"hours"`
}

// ComposeDay builds the 24 hour buckets and the all-day lane for selected.
// now is the live clock value used for the current-hour flag.
func ComposeDay(all []model.Task, selected model.Date, now model.DateTime) DayGrid {
	dayTasks := TasksForDate(all, selected)

	grid := DayGrid{
		Date:   selected,
		AllDay: AllDayTasks(dayTasks),
	}
	for h := range grid.Hours {
		grid.Hours[h] = HourSlot{
			Hour:    h,
			Label:   codec.HourLabel(h),
			Tasks:   make([]model.Task, 0),
			Current: selected.Equal(now.Date) && h == now.Hour,
		}
	}

	for _, t := range TimedTasks(dayTasks) {
		h, ok := t.StartHour()
		if !ok || h < 0 || h >= HoursPerDay {
			continue
		}
		grid.Hours[h].Tasks = append(grid.Hours[h].Tasks, t)
	}
	return grid
}

// CurrentHour returns the index of the highlighted slot, or -1.
func (g DayGrid) CurrentHour() int {
	for _, s := range g.Hours {
		if s.Current {
			return s.Hour
		}
	}
	return -1
}
