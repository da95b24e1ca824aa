package clock

import (
	"math"
	"testing"
	"time"
)

type fakeTime struct {
	current time.Time
}

func (f *fakeTime) Now() time.Time          { return f.current }
func (f *fakeTime) Advance(d time.Duration) { f.current = f.current.Add(d) }

func newFakeTime() *fakeTime {
	return &fakeTime{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWallClockTick(t *testing.T) {
	ft := newFakeTime()
	c := NewWallClock(ft)

	ft.Advance(16 * time.Millisecond)
	if dt := c.Tick(); !approx(dt, 0.016) {
		t.Fatalf("first tick: expected 0.016, got %v", dt)
	}

	ft.Advance(250 * time.Millisecond)
	if dt := c.Tick(); !approx(dt, 0.25) {
		t.Fatalf("second tick: expected 0.25, got %v", dt)
	}
	if !approx(c.Delta(), 0.25) {
		t.Fatalf("Delta should repeat the last tick, got %v", c.Delta())
	}
	if c.Ticks() != 2 {
		t.Fatalf("expected 2 ticks counted, got %d", c.Ticks())
	}

	if dt := c.Tick(); dt != 0 {
		t.Fatalf("tick without time passing: expected 0, got %v", dt)
	}

	if !approx(c.Now(), 0.266) {
		t.Fatalf("Now: expected 0.266, got %v", c.Now())
	}
}

func TestWallClockNowHasNoSideEffects(t *testing.T) {
	ft := newFakeTime()
	c := NewWallClock(ft)

	ft.Advance(time.Second)
	_ = c.Now()
	_ = c.ElapsedFormatted()

	if dt := c.Tick(); !approx(dt, 1) {
		t.Fatalf("expected reads not to move tick markers, got dt=%v", dt)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "00:00:00:00.000"},
		{"millis_single_digit", 7 * time.Millisecond, "00:00:00:00.007"},
		{"millis_two_digits", 42 * time.Millisecond, "00:00:00:00.042"},
		{"exactly_one_second", time.Second, "00:00:00:01.000"},
		{"exactly_one_minute", time.Minute, "00:00:01:00.000"},
		{"exactly_one_hour", time.Hour, "00:01:00:00.000"},
		{"exactly_one_day", 24 * time.Hour, "01:00:00:00.000"},
		{"every_field", 90061500 * time.Millisecond, "01:01:01:01.500"},
		{"just_under_a_day", 24*time.Hour - time.Millisecond, "00:23:59:59.999"},
		{"negative", -time.Second, "00:00:00:00.000"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FormatElapsed(c.in); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestWallClockElapsedFormatted(t *testing.T) {
	ft := newFakeTime()
	c := NewWallClock(ft)
	ft.Advance(90061500 * time.Millisecond)

	if got := c.ElapsedFormatted(); got != "01:01:01:01.500" {
		t.Fatalf("expected 01:01:01:01.500, got %q", got)
	}
}
