// Package calendar projects a task collection onto the day and month
// grids. Everything here is a pure function of its inputs.
package calendar

import "todocal/internal/model"

// TasksForDate returns the tasks whose home day is d, in input order.
func TasksForDate(all []model.Task, d model.Date) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range all {
		if t.Date.Equal(d) {
			out = append(out, t)
		}
	}
	return out
}

// AllDayTasks keeps only all-day tasks, preserving order.
func AllDayTasks(tasks []model.Task) []model.Task {
	return partition(tasks, true)
}

// TimedTasks keeps only tasks with a time of day, preserving order.
func TimedTasks(tasks []model.Task) []model.Task {
	return partition(tasks, false)
}

func partition(tasks []model.Task, allDay bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AllDay == allDay {
			out = append(out, t)
		}
	}
	return out
}
