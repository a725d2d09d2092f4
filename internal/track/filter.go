package track

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/geometry"
)

// Weights are the fixed α, β, γ gains of the filter, each in (0,1).
type Weights struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// Valid reports whether every gain lies strictly between 0 and 1.
func (w Weights) Valid() bool {
	in := func(v float64) bool { return v > 0 && v < 1 }
	return in(w.Alpha) && in(w.Beta) && in(w.Gamma)
}

// Filter is a constant-acceleration α-β-γ estimator in Cartesian space.
// Est* hold the latest corrected estimate, Pred* the projection one step
// ahead that the next measurement is compared against.
type Filter struct {
	Weights Weights

	EstPos r3.Vec
	EstVel r3.Vec
	EstAcc r3.Vec

	PredPos r3.Vec
	PredVel r3.Vec
	PredAcc r3.Vec

	step float64 // last projection interval (s)
}

// NewFilter returns an uninitialised filter with the given gains.
func NewFilter(w Weights) Filter {
	return Filter{Weights: w}
}

// Initialize seeds the filter from a confirmed measurement. The bootstrap
// velocity and acceleration are zero, so the first projection sits on the
// confirmed position regardless of elapsed.
func (f *Filter) Initialize(measured r3.Vec, elapsed float64) {
	f.EstPos = measured
	f.EstVel = r3.Vec{}
	f.EstAcc = r3.Vec{}
	f.step = elapsed
	f.project(elapsed)
}

// Update corrects the estimate with a measurement taken dt seconds after
// the previous one, then projects one step ahead. With dt <= 0 the rate
// terms cannot be formed, so velocity and acceleration carry over.
func (f *Filter) Update(measured r3.Vec, dt float64) {
	resid := r3.Sub(measured, f.PredPos)
	f.EstPos = r3.Add(f.PredPos, r3.Scale(f.Weights.Alpha, resid))
	if dt > 0 {
		f.EstVel = r3.Add(f.PredVel, r3.Scale(f.Weights.Beta/dt, resid))
		f.EstAcc = r3.Add(f.PredAcc, r3.Scale(f.Weights.Gamma/dt, resid))
		f.step = dt
	} else {
		f.EstVel = f.PredVel
		f.EstAcc = f.PredAcc
	}
	f.project(f.step)
}

// project applies the constant-acceleration law for h seconds.
func (f *Filter) project(h float64) {
	f.PredPos = r3.Add(f.EstPos, r3.Add(r3.Scale(h, f.EstVel), r3.Scale(0.5*h*h, f.EstAcc)))
	f.PredVel = r3.Add(f.EstVel, r3.Scale(h, f.EstAcc))
	f.PredAcc = f.EstAcc
}

// Pointing is the track-beam direction for the next scan.
func (f *Filter) Pointing() geometry.AzEl {
	return geometry.ToSpherical(f.PredPos).Pointing()
}
