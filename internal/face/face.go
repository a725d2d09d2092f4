// Package face models one flat array face of the radar: its RF budget,
// field of view and the search sectors it round-robins between.
package face

import (
	"math/rand/v2"

	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/units"
)

// Config is a face's geometry and RF budget in SI units.
type Config struct {
	Boresight     geometry.AzEl      // array normal
	Azimuth       geometry.AzExtent  // azimuth field of view
	Elevation     geometry.Extent    // elevation field of view
	Beamwidth     geometry.Beamwidth // half-power beamwidth
	MinSNR        float64            // dB
	Frequency     float64            // Hz
	Bandwidth     float64            // Hz
	EffectiveArea float64            // m²
	PeakPower     float64            // W
	NoiseFigure   float64            // dB
	SystemLoss    float64            // dB
}

// Face owns its sectors by value; the cursor indexes into Sectors.
type Face struct {
	Config

	AvgPower float64 // W
	Sectors  []scan.Sector

	// ReceivedSNR is the last SNR computed against this face. Diagnostic only.
	ReceivedSNR float64

	cursor int
}

// New builds a face and its sectors. Average power uses the duty cycle
// approximation peak · (1/bandwidth) · trackPRF.
func New(cfg Config, sectors []scan.Config, trackPRF float64) *Face {
	f := &Face{
		Config:   cfg,
		AvgPower: cfg.PeakPower * (1 / cfg.Bandwidth) * trackPRF,
		Sectors:  make([]scan.Sector, 0, len(sectors)),
	}
	for _, sc := range sectors {
		f.Sectors = append(f.Sectors, scan.NewSector(sc, cfg.Beamwidth))
	}
	return f
}

// RandomizeStarts places every sector's beam at a random raster position.
func (f *Face) RandomizeStarts(rng *rand.Rand) {
	for i := range f.Sectors {
		f.Sectors[i].RandomizeStart(rng)
	}
}

// CurrentSector returns the sector whose turn it is.
func (f *Face) CurrentSector() *scan.Sector {
	return &f.Sectors[f.cursor]
}

// CurrentSectorIndex is the round-robin cursor.
func (f *Face) CurrentSectorIndex() int {
	return f.cursor
}

// AdvanceSector moves the cursor to the next sector, wrapping after the last.
func (f *Face) AdvanceSector() {
	f.cursor = (f.cursor + 1) % len(f.Sectors)
}

// Wavelength is c/f in metres.
func (f *Face) Wavelength() float64 {
	return units.Wavelength(f.Frequency)
}

// InFOV reports whether p lies inside the face's field of view. A rolled
// over azimuth FOV accepts either side of the 0/360 seam.
func (f *Face) InFOV(p geometry.AzEl) bool {
	return f.Elevation.Contains(p.Elevation) && f.Azimuth.Contains(p.Azimuth)
}
