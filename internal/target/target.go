// Package target models the point targets flown through the simulation.
package target

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/geometry"
)

// Target is a point reflector moving under constant acceleration.
// Velocity and acceleration never change during a run.
type Target struct {
	ID           int
	Position     r3.Vec  // m
	Velocity     r3.Vec  // m/s
	Acceleration r3.Vec  // m/s²
	RCS          float64 // dBsm

	spherical geometry.Spherical
	saved     r3.Vec
}

// New creates a target and derives its spherical position.
func New(id int, pos, vel, acc r3.Vec, rcs float64) *Target {
	t := &Target{
		ID:           id,
		Position:     pos,
		Velocity:     vel,
		Acceleration: acc,
		RCS:          rcs,
	}
	t.spherical = geometry.ToSpherical(pos)
	return t
}

// Advance moves the target dt seconds along its trajectory:
// p += v·dt + ½·a·dt².
func (t *Target) Advance(dt float64) {
	step := r3.Add(r3.Scale(dt, t.Velocity), r3.Scale(0.5*dt*dt, t.Acceleration))
	t.Position = r3.Add(t.Position, step)
	t.spherical = geometry.ToSpherical(t.Position)
}

// Snapshot saves the current Cartesian position.
func (t *Target) Snapshot() {
	t.saved = t.Position
}

// Restore returns the target to the last snapshot.
func (t *Target) Restore() {
	t.Position = t.saved
	t.spherical = geometry.ToSpherical(t.Position)
}

// Spherical returns the radar-centred position derived at the last move.
func (t *Target) Spherical() geometry.Spherical {
	return t.spherical
}

// Pointing is the azimuth/elevation of the target as seen from the radar.
func (t *Target) Pointing() geometry.AzEl {
	return t.spherical.Pointing()
}

// Set is the engine's arena of targets. Index and ID coincide.
type Set []*Target

// Advance moves every target by dt.
func (s Set) Advance(dt float64) {
	for _, t := range s {
		t.Advance(dt)
	}
}

// Snapshot saves every target's position.
func (s Set) Snapshot() {
	for _, t := range s {
		t.Snapshot()
	}
}

// Restore returns every target to its snapshot.
func (s Set) Restore() {
	for _, t := range s {
		t.Restore()
	}
}
