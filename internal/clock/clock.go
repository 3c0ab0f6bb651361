// Package clock keeps the live "now" used for current-hour and today
// highlighting. The value is refreshed on a cron schedule (once a minute by
// default) and never drives task data or navigation.
package clock

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "todocal/internal/log"
	"todocal/internal/model"
)

// DefaultSchedule fires at the top of every minute.
const DefaultSchedule = "* * * * *"

// Clock is a periodically refreshed wall-clock value.
type Clock struct {
	now   func() time.Time
	sched *cron.Cron

	mu        sync.RWMutex
	current   model.DateTime
	listeners []func(model.DateTime)
}

// ValidateSchedule reports whether spec is a usable cron expression.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("clock: invalid refresh schedule %q: %w", spec, err)
	}
	return nil
}

// New builds a clock refreshed on spec. now defaults to time.Now.
func New(spec string, now func() time.Time) (*Clock, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if err := ValidateSchedule(spec); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	c := &Clock{
		now:     now,
		current: model.DateTimeOf(now()),
		sched:   cron.New(cron.WithLogger(cronLogger{})),
	}
	if _, err := c.sched.AddFunc(spec, c.Tick); err != nil {
		return nil, fmt.Errorf("clock: schedule refresh: %w", err)
	}
	return c, nil
}

// Now returns the last refreshed value.
func (c *Clock) Now() model.DateTime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// OnTick registers fn to receive every refreshed value.
func (c *Clock) OnTick(fn func(model.DateTime)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Tick refreshes the value immediately and notifies listeners.
func (c *Clock) Tick() {
	now := model.DateTimeOf(c.now())

	c.mu.Lock()
	c.current = now
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	appLog.Debug("clock tick", "now", now)
	for _, fn := range listeners {
		fn(now)
	}
}

// Run refreshes on schedule until ctx is canceled, then waits for a
// running tick to finish.
func (c *Clock) Run(ctx context.Context) {
	c.sched.Start()
	<-ctx.Done()
	<-c.sched.Stop().Done()
}

// cronLogger routes cron's own logging through the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	appLog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	appLog.Error("cron: "+msg, err, keysAndValues...)
}
