package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/track"
)

// Bounds on the radar layout.
const (
	MaxFaces   = 8
	MaxSectors = 10 // per face
)

var (
	ErrTooManyFaces   = errors.New("too many radar faces")
	ErrTooManySectors = errors.New("too many search sectors")
	ErrNoFaces        = errors.New("no radar faces")
	ErrNoSectors      = errors.New("face has no search sectors")
	ErrInvalidParams  = errors.New("invalid simulation parameters")

	// ErrNoTrack means a track was requested for a target that never had one.
	ErrNoTrack = errors.New("no track record for target")
)

// Params are the simulation-wide settings, SI units.
type Params struct {
	TrackPRF       float64 // Hz
	TrackMinSNR    float64 // dB
	TrackBeamwidth geometry.Beamwidth
	Weights        track.Weights
	RefreshRate    float64 // s, frame length
	RunLength      float64 // s, horizon
}

// FaceSetup is one face and its sectors.
type FaceSetup struct {
	face.Config
	Sectors []scan.Config
}

// TargetSetup is a target's initial state.
type TargetSetup struct {
	Position     r3.Vec  // m
	Velocity     r3.Vec  // m/s
	Acceleration r3.Vec  // m/s²
	RCS          float64 // dBsm
}

// Setup is everything the engine needs before it starts.
type Setup struct {
	Params  Params
	Faces   []FaceSetup
	Targets []TargetSetup
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParams)
}

// positive reports whether v is finite and greater than zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate checks layout bounds and that every derived quantity will be
// finite. Errors wrap one of the package sentinels.
func (s *Setup) Validate() error {
	if len(s.Faces) == 0 {
		return ErrNoFaces
	}
	if len(s.Faces) > MaxFaces {
		return fmt.Errorf("%d faces, limit %d: %w", len(s.Faces), MaxFaces, ErrTooManyFaces)
	}

	p := s.Params
	if !positive(p.TrackPRF) {
		return invalid("track PRF %g Hz", p.TrackPRF)
	}
	if !positive(p.RefreshRate) {
		return invalid("refresh rate %g s", p.RefreshRate)
	}
	if !(p.RunLength >= 0) || math.IsInf(p.RunLength, 0) {
		return invalid("run length %g s", p.RunLength)
	}
	if !p.TrackBeamwidth.Positive() {
		return invalid("track beamwidth %v", p.TrackBeamwidth)
	}
	if !finite(p.TrackMinSNR) {
		return invalid("track minimum SNR %g dB", p.TrackMinSNR)
	}
	if !p.Weights.Valid() {
		return invalid("filter weights %+v outside (0,1)", p.Weights)
	}

	for i, f := range s.Faces {
		if err := validateFace(f); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	for i, t := range s.Targets {
		if !finite(t.Position.X, t.Position.Y, t.Position.Z,
			t.Velocity.X, t.Velocity.Y, t.Velocity.Z,
			t.Acceleration.X, t.Acceleration.Y, t.Acceleration.Z, t.RCS) {
			return invalid("target %d: non-finite kinematics or RCS", i)
		}
	}
	return nil
}

func validateFace(f FaceSetup) error {
	if len(f.Sectors) == 0 {
		return ErrNoSectors
	}
	if len(f.Sectors) > MaxSectors {
		return fmt.Errorf("%d sectors, limit %d: %w", len(f.Sectors), MaxSectors, ErrTooManySectors)
	}
	if !f.Beamwidth.Positive() {
		return invalid("beamwidth %v", f.Beamwidth)
	}
	if !positive(f.Frequency) || !positive(f.Bandwidth) {
		return invalid("frequency %g Hz, bandwidth %g Hz", f.Frequency, f.Bandwidth)
	}
	if !positive(f.EffectiveArea) || !positive(f.PeakPower) {
		return invalid("effective area %g m², peak power %g W", f.EffectiveArea, f.PeakPower)
	}
	if !finite(f.MinSNR, f.NoiseFigure, f.SystemLoss, f.Boresight.Azimuth, f.Boresight.Elevation) {
		return invalid("non-finite RF settings or boresight")
	}
	if !finite(f.Azimuth.Start, f.Azimuth.End, f.Elevation.Min, f.Elevation.Max) || !f.Elevation.Ordered() {
		return invalid("FOV azimuth %v, elevation %v", f.Azimuth, f.Elevation)
	}
	for j, sc := range f.Sectors {
		if !finite(sc.Azimuth.Start, sc.Azimuth.End, sc.Elevation.Min, sc.Elevation.Max, sc.Range.Min, sc.Range.Max) {
			return invalid("sector %d: non-finite extent", j)
		}
		if sc.Azimuth.Width() <= 0 || sc.Elevation.Width() <= 0 {
			return invalid("sector %d: empty angular extent", j)
		}
		if !sc.Range.Ordered() {
			return invalid("sector %d: range extent %v", j, sc.Range)
		}
		if !positive(sc.RefreshRate) {
			return invalid("sector %d: refresh rate %g s", j, sc.RefreshRate)
		}
	}
	return nil
}
