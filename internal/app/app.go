// Package app owns the application state: navigation, the edit form and
// the task collection. Every user event goes through Controller, which
// applies the pure transitions of nav and form under one lock.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"todocal/internal/calendar"
	"todocal/internal/form"
	appLog "todocal/internal/log"
	"todocal/internal/model"
	"todocal/internal/nav"
)

var (
	ErrUnknownTask = errors.New("unknown task")
	// ErrCurrentHour rejects creating a task from the highlighted slot.
	ErrCurrentHour = errors.New("the current hour slot does not accept new tasks")
)

// Store is the task collection the controller reads and writes.
type Store interface {
	Upsert(t model.Task) (replaced bool, err error)
	Remove(id string) error
	Get(id string) (model.Task, bool)
	All() []model.Task
}

// FormState is the externally visible state of the edit form.
type FormState struct {
	Open    bool        `json:"open"`
	Editing *model.Task `json:"editing,omitempty"`
	Fields  form.Fields `json:"fields"`
}

// State is a snapshot of everything the UI renders besides the grids.
type State struct {
	Nav    nav.State `json:"nav"`
	Header string    `json:"header"`
	Form   FormState `json:"form"`
}

// Controller serializes events against the application state.
type Controller struct {
	mu    sync.Mutex
	store Store
	nav   nav.State
	form  *form.Controller
}

// NewID returns a time-ordered (UUIDv7) task identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// New builds a controller starting on now's day. newID defaults to NewID.
func New(store Store, view nav.ViewMode, now model.DateTime, newID func() string) *Controller {
	if newID == nil {
		newID = NewID
	}
	return &Controller{
		store: store,
		nav:   nav.New(view, now),
		form:  form.NewController(newID),
	}
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	return State{
		Nav:    c.nav,
		Header: c.nav.Header(),
		Form: FormState{
			Open:    c.form.IsOpen(),
			Editing: c.form.Editing(),
			Fields:  c.form.Fields(),
		},
	}
}

// --- navigation ---

// SetView is the view-mode channel.
func (c *Controller) SetView(v nav.ViewMode) State {
	return c.apply(func(s nav.State) nav.State { return s.WithView(v) })
}

// SelectDate moves the selection directly.
func (c *Controller) SelectDate(d model.Date) State {
	return c.apply(func(s nav.State) nav.State { return s.Select(d) })
}

// PickDate applies raw date-picker input; garbage is ignored.
func (c *Controller) PickDate(raw string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := c.nav.PickDate(raw)
	if !ok {
		appLog.Debug("date picker input ignored", "input", raw)
	}
	c.nav = next
	return c.snapshot(), ok
}

func (c *Controller) PrevMonth() State {
	return c.apply(nav.State.PrevMonth)
}

func (c *Controller) NextMonth() State {
	return c.apply(nav.State.NextMonth)
}

// Tick receives live clock refreshes.
func (c *Controller) Tick(now model.DateTime) {
	c.apply(func(s nav.State) nav.State { return s.Tick(now) })
}

func (c *Controller) apply(fn func(nav.State) nav.State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = fn(c.nav)
	return c.snapshot()
}

// --- composition ---

// Day composes the day grid for d, or for the selected date when d is nil.
func (c *Controller) Day(d *model.Date) calendar.DayGrid {
	c.mu.Lock()
	s := c.nav
	c.mu.Unlock()
	if d != nil {
		s = s.Select(*d)
	}
	return calendar.ComposeDay(c.store.All(), s.Selected, s.Now)
}

// Month composes the month grid containing d, or the selected date.
func (c *Controller) Month(d *model.Date) calendar.MonthGrid {
	c.mu.Lock()
	s := c.nav
	c.mu.Unlock()
	if d != nil {
		s = s.Select(*d)
	}
	return calendar.ComposeMonth(c.store.All(), s.Selected, s.Now)
}

// Tasks returns the collection in insertion order.
func (c *Controller) Tasks() []model.Task {
	return c.store.All()
}

// --- selection / edit channel ---

// Select opens the form: for the task with the given ID, or for a new task
// when id is empty.
func (c *Controller) Select(id string, preset form.Preset) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == "" {
		if preset.Date != nil && preset.Hour != nil && preset.Date.Equal(c.nav.Now.Date) && *preset.Hour == c.nav.Now.Hour {
			return c.snapshot(), ErrCurrentHour
		}
		c.form.Open(nil, preset)
		return c.snapshot(), nil
	}
	t, ok := c.store.Get(id)
	if !ok {
		return c.snapshot(), fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	c.form.Open(&t, form.Preset{})
	return c.snapshot(), nil
}

// AddForSelected opens a create form preset to the selected date.
func (c *Controller) AddForSelected() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.nav.Selected
	c.form.Open(nil, form.Preset{Date: &d})
	return c.snapshot()
}

// UpdateForm replaces the form's field values.
func (c *Controller) UpdateForm(f form.Fields) State {
	return c.withForm(func(fc *form.Controller) { fc.Update(f) })
}

func (c *Controller) SetStartDate(d *model.Date) State {
	return c.withForm(func(fc *form.Controller) { fc.SetStartDate(d) })
}

func (c *Controller) SetEndDate(d *model.Date) State {
	return c.withForm(func(fc *form.Controller) { fc.SetEndDate(d) })
}

// Discard closes the form without saving.
func (c *Controller) Discard() State {
	return c.withForm(func(fc *form.Controller) { fc.Discard() })
}

func (c *Controller) withForm(fn func(*form.Controller)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.form)
	return c.snapshot()
}

// Submit validates the form and stores the resulting task. The form is
// only reset once the store accepted the task; on any failure it keeps
// its fields and a validation failure is a *form.ValidationError.
func (c *Controller) Submit() (model.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.form.Build()
	if err != nil {
		appLog.Debug("task form rejected", "err", err)
		return model.Task{}, err
	}
	replaced, err := c.store.Upsert(t)
	if err != nil {
		return model.Task{}, fmt.Errorf("app: store task %s: %w", t.ID, err)
	}
	c.form.Discard()
	appLog.Info("task saved", "id", t.ID, "date", t.Date, "all_day", t.AllDay, "replaced", replaced)
	return t, nil
}

// DeleteEditing removes the task open in the form and closes the form.
func (c *Controller) DeleteEditing() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.form.Delete()
	if err != nil {
		return "", err
	}
	if err := c.store.Remove(id); err != nil {
		return id, fmt.Errorf("app: remove task %s: %w", id, err)
	}
	appLog.Info("task deleted", "id", id)
	return id, nil
}

// Delete removes a task by ID. If it is open in the form the form closes.
func (c *Controller) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(id); err != nil {
		return fmt.Errorf("app: remove task %s: %w", id, err)
	}
	if e := c.form.Editing(); e != nil && e.ID == id {
		c.form.Discard()
	}
	appLog.Info("task deleted", "id", id)
	return nil
}

// Import adds or replaces tasks by ID. It returns how many were stored.
func (c *Controller) Import(tasks []model.Task) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range tasks {
		if _, err := c.store.Upsert(t); err != nil {
			appLog.Error("import: task rejected", err, "id", t.ID)
			continue
		}
		n++
	}
	return n
}
