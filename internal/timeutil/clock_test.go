package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}

	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("after Advance, Now() = %v", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Errorf("after Set, Now() = %v, want %v", got, later)
	}
}

func TestWallTime(t *testing.T) {
	origin := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := WallTime(origin, 61.5)
	want := origin.Add(61*time.Second + 500*time.Millisecond)
	if !got.Equal(want) {
		t.Errorf("WallTime() = %v, want %v", got, want)
	}
}

func TestSimClock(t *testing.T) {
	c := NewSimClock(2, 5)
	if c.Now() != 0 || !c.Running() {
		t.Fatalf("new clock: now=%v running=%v", c.Now(), c.Running())
	}

	var frames int
	for c.Running() {
		c.Tick()
		frames++
	}
	// 0, 2, 4 run; 6 is past the horizon
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if c.Now() != 6 {
		t.Errorf("Now() = %v, want 6", c.Now())
	}
}

func TestSimClock_NeverRewinds(t *testing.T) {
	c := NewSimClock(1, 10)
	c.Advance(3)
	c.Advance(-2)
	c.Advance(0)
	if c.Now() != 3 {
		t.Errorf("Now() = %v, want 3", c.Now())
	}
	if c.Minutes() != 0.05 {
		t.Errorf("Minutes() = %v, want 0.05", c.Minutes())
	}
}

func TestSimClock_HorizonInclusive(t *testing.T) {
	c := NewSimClock(1, 1)
	c.Tick()
	if !c.Running() {
		t.Error("clock at exactly the horizon should still run")
	}
	c.Tick()
	if c.Running() {
		t.Error("clock past the horizon should stop")
	}
}
