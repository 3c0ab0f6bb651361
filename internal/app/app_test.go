package app

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"todocal/internal/form"
	"todocal/internal/model"
	"todocal/internal/nav"
	"todocal/internal/store"
)

func newController(t *testing.T) (*Controller, *store.Store) {
	t.Helper()
	s := store.New()
	n := 0
	ids := func() string {
		n++
		return "task-" + strconv.Itoa(n)
	}
	now := model.DateTime{Date: model.NewDate(2024, time.March, 1), Hour: 10}
	return New(s, nav.ViewDay, now, ids), s
}

func createStandup(t *testing.T, c *Controller) model.Task {
	t.Helper()
	d := model.NewDate(2024, time.March, 1)
	if _, err := c.Select("", form.Preset{Date: &d}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	f := c.State().Form.Fields
	f.Title = "Standup"
	f.StartLabel = "09:00 AM"
	f.EndLabel = "09:30 AM"
	c.UpdateForm(f)
	task, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return task
}

func TestCreateShowsInDayGrid(t *testing.T) {
	c, s := newController(t)
	task := createStandup(t, c)

	if task.ID != "task-1" || s.Len() != 1 {
		t.Fatalf("Expected one stored task-1, got %q / %d", task.ID, s.Len())
	}
	if c.State().Form.Open {
		t.Errorf("Expected form closed after submit")
	}
	grid := c.Day(nil)
	if len(grid.Hours[9].Tasks) != 1 || grid.Hours[9].Tasks[0].ID != "task-1" {
		t.Errorf("Expected task in hour 9, got %+v", grid.Hours[9])
	}
	if grid.CurrentHour() != 10 {
		t.Errorf("Expected current hour 10, got %d", grid.CurrentHour())
	}
}

func TestEditReplacesInPlace(t *testing.T) {
	c, s := newController(t)
	first := createStandup(t, c)
	createStandup(t, c)

	if _, err := c.Select(first.ID, form.Preset{}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	f := c.State().Form.Fields
	f.Title = "Renamed"
	c.UpdateForm(f)
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	all := s.All()
	if len(all) != 2 || all[0].ID != first.ID || all[0].Title != "Renamed" {
		t.Errorf("Expected first task renamed in place, got %+v", all)
	}
}

func TestSubmitFailureDoesNotMutate(t *testing.T) {
	c, s := newController(t)
	c.AddForSelected()
	before := c.State()

	_, err := c.Submit()
	if !form.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Store mutated on failed submit")
	}
	after := c.State()
	if !after.Form.Open || after.Nav != before.Nav {
		t.Errorf("State changed on failed submit")
	}
}

func TestSelectUnknownTask(t *testing.T) {
	c, _ := newController(t)
	if _, err := c.Select("nope", form.Preset{}); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("Expected ErrUnknownTask, got %v", err)
	}
}

func TestDeleteEditing(t *testing.T) {
	c, s := newController(t)
	task := createStandup(t, c)
	c.Select(task.ID, form.Preset{})

	id, err := c.DeleteEditing()
	if err != nil || id != task.ID {
		t.Fatalf("DeleteEditing: got %q, %v", id, err)
	}
	if s.Len() != 0 || c.State().Form.Open {
		t.Errorf("Expected task removed and form closed")
	}
}

func TestDeleteByIDClosesMatchingForm(t *testing.T) {
	c, _ := newController(t)
	task := createStandup(t, c)
	c.Select(task.ID, form.Preset{})
	if err := c.Delete(task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if c.State().Form.Open {
		t.Errorf("Expected form closed after its task was deleted")
	}
	if err := c.Delete(task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNavigationAndClock(t *testing.T) {
	c, _ := newController(t)
	c.SetView(nav.ViewMonth)
	st := c.NextMonth()
	if st.Nav.View != nav.ViewMonth || st.Nav.Selected != model.NewDate(2024, time.April, 1) {
		t.Fatalf("Unexpected state %+v", st.Nav)
	}

	if _, ok := c.PickDate("bogus"); ok {
		t.Errorf("Expected bogus picker input to be ignored")
	}
	if c.State().Nav.Selected != model.NewDate(2024, time.April, 1) {
		t.Errorf("Selection changed on bogus input")
	}

	c.Tick(model.DateTime{Date: model.NewDate(2024, time.April, 2), Hour: 7})
	st = c.State()
	if st.Nav.Selected != model.NewDate(2024, time.April, 1) || st.Nav.View != nav.ViewMonth {
		t.Errorf("Tick altered navigation: %+v", st.Nav)
	}
	month := c.Month(nil)
	cell, _ := month.Cell(2)
	if !cell.Today {
		t.Errorf("Expected April 2 flagged today after tick")
	}
}

func TestImport(t *testing.T) {
	c, s := newController(t)
	tasks := []model.Task{
		{ID: "a", Title: "A", Date: model.NewDate(2024, time.March, 2), AllDay: true},
		{ID: "bad"},
	}
	if n := c.Import(tasks); n != 1 {
		t.Errorf("Expected 1 imported, got %d", n)
	}
	if _, ok := s.Get("a"); !ok {
		t.Errorf("Expected a stored")
	}
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b || len(a) != 36 {
		t.Errorf("Expected distinct UUIDs, got %q and %q", a, b)
	}
}

func TestSelectCurrentHourSlotRejected(t *testing.T) {
	c, _ := newController(t)
	today := model.NewDate(2024, time.March, 1)
	hour := 10
	if _, err := c.Select("", form.Preset{Date: &today, Hour: &hour}); !errors.Is(err, ErrCurrentHour) {
		t.Fatalf("Expected ErrCurrentHour, got %v", err)
	}
	if c.State().Form.Open {
		t.Errorf("Form must stay closed")
	}
	hour = 11
	st, err := c.Select("", form.Preset{Date: &today, Hour: &hour})
	if err != nil || !st.Form.Open || st.Form.Fields.StartLabel != "11:00 AM" {
		t.Errorf("Expected create form at 11:00 AM, got %+v (%v)", st.Form, err)
	}
}

// rejectingStore refuses every write.
type rejectingStore struct {
	*store.Store
}

func (rejectingStore) Upsert(model.Task) (bool, error) {
	return false, errors.New("disk full")
}

func TestSubmitStoreFailureKeepsForm(t *testing.T) {
	now := model.DateTime{Date: model.NewDate(2024, time.March, 1), Hour: 10}
	c := New(rejectingStore{store.New()}, nav.ViewDay, now, func() string { return "task-1" })

	d := model.NewDate(2024, time.March, 1)
	if _, err := c.Select("", form.Preset{Date: &d}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	f := c.State().Form.Fields
	f.Title = "Standup"
	c.UpdateForm(f)

	if _, err := c.Submit(); err == nil {
		t.Fatalf("Expected store error")
	}
	st := c.State()
	if !st.Form.Open || st.Form.Fields.Title != "Standup" {
		t.Errorf("Expected form kept open with its fields, got %+v", st.Form)
	}
	if len(c.Tasks()) != 0 {
		t.Errorf("Expected no stored tasks")
	}
}

func TestSelectDateThenAdd(t *testing.T) {
	c, _ := newController(t)
	d := model.NewDate(2024, time.March, 20)
	st := c.SelectDate(d)
	if st.Nav.Selected != d || st.Header != "20/03/2024" {
		t.Fatalf("Unexpected state after SelectDate: %+v", st)
	}
	if grid := c.Day(nil); grid.Date != d || grid.CurrentHour() != -1 {
		t.Errorf("Expected day grid for %v without a current hour, got %v / %d", d, grid.Date, grid.CurrentHour())
	}
	st = c.AddForSelected()
	if !st.Form.Open || st.Form.Fields.StartDate == nil || *st.Form.Fields.StartDate != d {
		t.Errorf("Expected create form preset to %v, got %+v", d, st.Form.Fields)
	}
}
