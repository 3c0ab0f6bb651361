package form

import "todocal/internal/model"

// Controller holds the open/closed state of the edit form, the task being
// edited (if any) and the transient field values. It is not safe for
// concurrent use; the application controller serializes access.
type Controller struct {
	open    bool
	editing *model.Task
	fields  Fields
	newID   func() string
}

// NewController returns a closed form. newID assigns IDs to created tasks.
func NewController(newID func() string) *Controller {
	return &Controller{fields: Defaults(), newID: newID}
}

// Open shows the form, editing task when non-nil and creating otherwise.
func (c *Controller) Open(task *model.Task, preset Preset) {
	c.open = true
	c.editing = nil
	if task != nil {
		t := *task
		c.editing = &t
	}
	c.fields = Hydrate(task, preset)
}

func (c *Controller) IsOpen() bool { return c.open }

// Editing returns a copy of the task under edit, or nil when creating.
func (c *Controller) Editing() *model.Task {
	if c.editing == nil {
		return nil
	}
	t := *c.editing
	return &t
}

func (c *Controller) Fields() Fields { return c.fields }

// Update replaces the field values. Date changes go through SetStartDate
// and SetEndDate so the end date stays on or after the start date.
func (c *Controller) Update(f Fields) {
	prev := c.fields
	start, end := f.StartDate, f.EndDate
	f.StartDate, f.EndDate = prev.StartDate, prev.EndDate
	c.fields = f

	if !sameDate(start, prev.StartDate) {
		c.SetStartDate(start)
	}
	if !sameDate(end, prev.EndDate) {
		c.SetEndDate(end)
	}
}

// SetStartDate changes the start date, dragging the end date forward when
// it would otherwise precede the new start.
func (c *Controller) SetStartDate(d *model.Date) {
	c.fields.StartDate = clone(d)
	if d == nil {
		return
	}
	if c.fields.EndDate == nil || c.fields.EndDate.Before(*d) {
		c.fields.EndDate = clone(d)
	}
}

// SetEndDate changes the end date. An empty or earlier-than-start value
// snaps back to the start date.
func (c *Controller) SetEndDate(d *model.Date) {
	if d == nil || (c.fields.StartDate != nil && d.Before(*c.fields.StartDate)) {
		c.fields.EndDate = clone(c.fields.StartDate)
		return
	}
	c.fields.EndDate = clone(d)
}

// Submit validates the form. On failure nothing changes and the
// *ValidationError is returned. On success the form is reset and closed
// and the task is returned for the store to adopt.
func (c *Controller) Submit() (model.Task, error) {
	task, err := c.Build()
	if err != nil {
		return model.Task{}, err
	}
	c.Discard()
	return task, nil
}

// Build validates the form and returns the task it describes without
// touching the form state.
func (c *Controller) Build() (model.Task, error) {
	return Build(c.fields, c.editing, c.newID)
}

// Discard resets every field to its default and closes the form.
func (c *Controller) Discard() {
	c.open = false
	c.editing = nil
	c.fields = Defaults()
}

// Delete closes the form and returns the ID of the task being edited.
func (c *Controller) Delete() (string, error) {
	if c.editing == nil {
		return "", ErrNotEditing
	}
	id := c.editing.ID
	c.Discard()
	return id, nil
}
