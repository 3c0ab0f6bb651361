package calendar

import (
	"fmt"
	"time"

	"todocal/internal/model"
)

// DaysPerWeek is the column count of the month grid. Column 0 is Sunday.
const DaysPerWeek = 7

// WeekdayHeaders are the month grid column titles.
var WeekdayHeaders = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one square of the month grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`

	// Day is the day-of-month the cell position maps to. For padding cells
	// it is outside 1..DaysInMonth and Date is zero.
	Day     int         `json:"day"`
	Date    *model.Date `json:"date,omitempty"`
	Padding bool        `json:"padding"`
	Today   bool        `json:"today"`

	AllDay  []model.Task `json:"all_day,omitempty"`
	Regular []model.Task `json:"regular,omitempty"`
}

// CanCreate reports whether clicking the cell opens a create form.
func (c Cell) CanCreate() bool {
	return !c.Padding
}

// MonthGrid is the composed month view.
type MonthGrid struct {
	Year               int      `json:"year"`
	Month              int      `json:"month"`
	DaysInMonth        int      `json:"days_in_month"`
	FirstWeekdayOffset int      `json:"first_weekday_offset"`
	Weeks              [][]Cell `json:"weeks"`
}

// Title renders e.g. "March 2024".
func (g MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", time.Month(g.Month), g.Year)
}

// Rows returns the number of week rows.
func (g MonthGrid) Rows() int {
	return len(g.Weeks)
}

// Cell returns the cell holding the given day of month, if any.
func (g MonthGrid) Cell(day int) (Cell, bool) {
	if day < 1 || day > g.DaysInMonth {
		return Cell{}, false
	}
	idx := day - 1 + g.FirstWeekdayOffset
	return g.Weeks[idx/DaysPerWeek][idx%DaysPerWeek], true
}

// ComposeMonth builds the week-major grid for the month containing
// selected. now is the live clock value used for the today flag.
func ComposeMonth(all []model.Task, selected model.Date, now model.DateTime) MonthGrid {
	first := selected.FirstOfMonth(0)
	days := first.DaysInMonth()
	offset := int(first.Weekday())
	rows := (days + offset + DaysPerWeek - 1) / DaysPerWeek
	sameMonthAsNow := selected.SameMonth(now.Date)

	grid := MonthGrid{
		Year:               first.Year,
		Month:              int(first.Month),
		DaysInMonth:        days,
		FirstWeekdayOffset: offset,
		Weeks:              make([][]Cell, rows),
	}

	for row := 0; row < rows; row++ {
		week := make([]Cell, DaysPerWeek)
		for col := 0; col < DaysPerWeek; col++ {
			day := row*DaysPerWeek + col - offset + 1
			cell := Cell{Row: row, Col: col, Day: day}
			if day <= 0 || day > days {
				cell.Padding = true
				week[col] = cell
				continue
			}

			date := first.WithDay(day)
			dayTasks := TasksForDate(all, date)
			cell.Date = &date
			cell.Today = sameMonthAsNow && day == now.Day
			cell.AllDay = AllDayTasks(dayTasks)
			cell.Regular = TimedTasks(dayTasks)
			week[col] = cell
		}
		grid.Weeks[row] = week
	}
	return grid
}
