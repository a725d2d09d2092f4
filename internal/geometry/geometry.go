// Package geometry holds the coordinate conversions and angular extent logic
// shared by targets, search sectors, faces and the tracker.
//
// The radar sits at the origin. Azimuth is measured counter-clockwise from +X
// in the XY plane and normalised to [0,360). Elevation is measured up from the
// XY plane. Angles are degrees, ranges metres.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/units"
)

// Spherical is a radar-centred spherical position.
type Spherical struct {
	Azimuth   float64 // degrees, [0,360)
	Elevation float64 // degrees
	Range     float64 // metres
}

// AzEl is a beam pointing direction.
type AzEl struct {
	Azimuth   float64
	Elevation float64
}

// Pointing drops the range component.
func (s Spherical) Pointing() AzEl {
	return AzEl{Azimuth: s.Azimuth, Elevation: s.Elevation}
}

// NormalizeAzimuth wraps any angle into [0,360).
func NormalizeAzimuth(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds up to exactly 360
	if a >= 360 {
		a = 0
	}
	return a
}

// ToSpherical converts a Cartesian position to spherical coordinates.
func ToSpherical(p r3.Vec) Spherical {
	az := units.RadToDeg(math.Atan2(p.Y, p.X))
	el := units.RadToDeg(math.Atan2(p.Z, math.Hypot(p.X, p.Y)))
	return Spherical{
		Azimuth:   NormalizeAzimuth(az),
		Elevation: el,
		Range:     r3.Norm(p),
	}
}

// FromSpherical converts a spherical position back to Cartesian.
func FromSpherical(s Spherical) r3.Vec {
	az := units.DegToRad(s.Azimuth)
	el := units.DegToRad(s.Elevation)
	horiz := s.Range * math.Cos(el)
	return r3.Vec{
		X: horiz * math.Cos(az),
		Y: horiz * math.Sin(az),
		Z: s.Range * math.Sin(el),
	}
}

// AngularDiff returns a-b wrapped into (-180,180].
func AngularDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// WithinBeam reports whether target lies inside a half-power window of the
// given full beamwidths centred on the pointing direction. Azimuth is compared
// through the 0/360 seam.
func WithinBeam(target, pointing AzEl, bw Beamwidth) bool {
	if math.Abs(AngularDiff(target.Azimuth, pointing.Azimuth)) > bw.Azimuth/2 {
		return false
	}
	return math.Abs(target.Elevation-pointing.Elevation) <= bw.Elevation/2
}

// Beamwidth is a full half-power beamwidth pair in degrees.
type Beamwidth struct {
	Azimuth   float64
	Elevation float64
}

// Positive reports whether both widths are finite and greater than zero.
func (b Beamwidth) Positive() bool {
	ok := func(v float64) bool { return v > 0 && !math.IsInf(v, 1) }
	return ok(b.Azimuth) && ok(b.Elevation)
}
