// Package detect implements the radar range equation in decibels and the
// search and track detection tests built on it.
package detect

import (
	"math"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/units"
)

func db(x float64) float64 {
	return 10 * math.Log10(x)
}

// noiseFloor is 10·log10(k) + 10·log10(290).
var noiseFloor = db(units.Boltzmann) + db(units.NoiseTempK)

// SearchSNR estimates the SNR (dB) of a target with the given RCS (dBsm) at
// range r (m) seen by a search beam in sector s of face f.
func SearchSNR(f *face.Face, s *scan.Sector, rcs, r float64) float64 {
	return db(f.AvgPower) +
		db(f.EffectiveArea/units.SquareDegPerSr) +
		db(s.RefreshRate) +
		rcs -
		db(4*math.Pi) -
		db(s.SearchVolumeSr()) -
		40*math.Log10(r) -
		noiseFloor -
		f.SystemLoss -
		f.NoiseFigure
}

// TrackSNR estimates the SNR (dB) of a single track pulse from face f.
func TrackSNR(f *face.Face, rcs, r float64) float64 {
	return db(f.PeakPower) +
		20*math.Log10(f.EffectiveArea/units.SquareDegPerSr) +
		rcs -
		30*math.Log10(4*math.Pi) -
		40*math.Log10(r) -
		noiseFloor -
		f.SystemLoss -
		f.NoiseFigure -
		20*math.Log10(f.Wavelength())
}
