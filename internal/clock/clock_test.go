package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"todocal/internal/model"
)

type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

func TestTickPublishesWallClock(t *testing.T) {
	ft := &fakeTime{t: time.Date(2024, time.March, 1, 9, 59, 0, 0, time.Local)}
	c, err := New(DefaultSchedule, ft.Now)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := c.Now(); got.Hour != 9 || got.Minute != 59 {
		t.Fatalf("Expected 09:59 initially, got %s", got)
	}

	var seen []model.DateTime
	c.OnTick(func(dt model.DateTime) { seen = append(seen, dt) })

	ft.Set(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local))
	c.Tick()

	if got := c.Now(); got.Hour != 10 || got.Minute != 0 {
		t.Errorf("Expected 10:00 after tick, got %s", got)
	}
	if len(seen) != 1 || seen[0] != c.Now() {
		t.Errorf("Expected listener to see the new value, got %v", seen)
	}
}

func TestInvalidSchedule(t *testing.T) {
	if _, err := New("every minute please", nil); err == nil {
		t.Errorf("Expected error for invalid schedule")
	}
	if err := ValidateSchedule("@every 1m"); err != nil {
		t.Errorf("Expected @every 1m to be valid, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c, err := New("@every 1h", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
