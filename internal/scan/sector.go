// Package scan implements the search sector raster.
//
// Each sector owns its angular and range extents plus a scan position that a
// face steps through one beamwidth at a time: azimuth first, then elevation,
// wrapping back to the first raster cell once the sector has been covered.
package scan

import (
	"math/rand/v2"

	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/units"
)

// overshootTolerance absorbs float drift so the last cell on a row is
// still visited when the extent is an exact multiple of the step.
const overshootTolerance = 1e-9

// Config describes a sector in SI units.
type Config struct {
	Azimuth     geometry.AzExtent
	Elevation   geometry.Extent
	Range       geometry.Extent // m
	RefreshRate float64         // s to cover the whole sector once
}

// Sector is a search sector with its derived search volume and dwell time.
type Sector struct {
	Config

	SearchVolume float64 // deg²
	DwellTime    float64 // s per raster cell

	pos      geometry.AzEl
	azOffset float64 // degrees from Azimuth.Start along the extent
}

// NewSector derives the search volume and dwell time for a face with the
// given half-power beamwidth. The scan position starts at the first raster
// cell; call RandomizeStart to place it elsewhere.
func NewSector(cfg Config, bw geometry.Beamwidth) Sector {
	s := Sector{Config: cfg}
	s.SearchVolume = cfg.Azimuth.Width() * cfg.Elevation.Width()
	s.DwellTime = cfg.RefreshRate * bw.Azimuth * bw.Elevation / s.SearchVolume
	s.Reset()
	return s
}

// SearchVolumeSr is the search volume in steradians.
func (s *Sector) SearchVolumeSr() float64 {
	return units.DegSqToSteradian(s.SearchVolume)
}

// ScanPos returns the current beam pointing direction.
func (s *Sector) ScanPos() geometry.AzEl {
	return s.pos
}

// SetScanPos points the beam at p. The azimuth is taken relative to the
// sector start so subsequent steps continue the raster from there.
func (s *Sector) SetScanPos(p geometry.AzEl) {
	s.azOffset = geometry.NormalizeAzimuth(p.Azimuth - s.Azimuth.Start)
	s.pos = geometry.AzEl{Azimuth: geometry.NormalizeAzimuth(p.Azimuth), Elevation: p.Elevation}
}

// Reset moves the beam to the first raster cell.
func (s *Sector) Reset() {
	s.azOffset = 0
	s.pos = geometry.AzEl{
		Azimuth:   geometry.NormalizeAzimuth(s.Azimuth.Start),
		Elevation: s.Elevation.Min,
	}
}

// RandomizeStart places the beam uniformly inside the sector. A rolled over
// azimuth extent is sampled as one contiguous length and wrapped afterwards.
func (s *Sector) RandomizeStart(rng *rand.Rand) {
	s.azOffset = rng.Float64() * s.Azimuth.Width()
	s.pos = geometry.AzEl{
		Azimuth:   s.Azimuth.At(s.azOffset),
		Elevation: s.Elevation.Min + rng.Float64()*s.Elevation.Width(),
	}
}

// IncrementBeamPos steps the raster. Azimuth advances by azStep; past the
// end of the extent it returns to the start and elevation advances by elStep.
// Past the top of the elevation extent the raster starts over from the bottom.
func (s *Sector) IncrementBeamPos(azStep, elStep float64) {
	s.azOffset += azStep
	if s.azOffset <= s.Azimuth.Width()+overshootTolerance {
		s.pos.Azimuth = s.Azimuth.At(s.azOffset)
		return
	}

	s.azOffset = 0
	s.pos.Azimuth = geometry.NormalizeAzimuth(s.Azimuth.Start)
	s.pos.Elevation += elStep
	if s.pos.Elevation > s.Elevation.Max+overshootTolerance {
		s.pos.Elevation = s.Elevation.Min
	}
}

// InRange reports whether r (m) lies inside the sector's range extent.
func (s *Sector) InRange(r float64) bool {
	return s.Range.Contains(r)
}
