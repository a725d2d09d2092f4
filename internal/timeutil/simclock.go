package timeutil

// SimClock is the engine's simulated time in seconds. It only moves forward.
type SimClock struct {
	now     float64
	refresh float64
	horizon float64
}

// NewSimClock starts a clock at zero with the given frame length and run
// horizon, both in seconds.
func NewSimClock(refresh, horizon float64) *SimClock {
	return &SimClock{refresh: refresh, horizon: horizon}
}

// Now is the current simulated time.
func (c *SimClock) Now() float64 { return c.now }

// Refresh is the frame length.
func (c *SimClock) Refresh() float64 { return c.refresh }

// Horizon is the run length.
func (c *SimClock) Horizon() float64 { return c.horizon }

// Running reports whether the clock has not yet passed the horizon.
func (c *SimClock) Running() bool {
	return c.now <= c.horizon
}

// Advance moves the clock forward by dt. Negative steps are ignored.
func (c *SimClock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
}

// Tick advances by one frame.
func (c *SimClock) Tick() {
	c.Advance(c.refresh)
}

// Minutes is the current time in minutes, as printed in console logs.
func (c *SimClock) Minutes() float64 {
	return c.now / 60
}
