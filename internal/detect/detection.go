package detect

import (
	"math"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/target"
)

// TrackBeam holds the tracker-wide beam parameters.
type TrackBeam struct {
	MinSNR    float64 // dB
	Beamwidth geometry.Beamwidth
}

// SearchDetection tests target t against the current beam of sector s on
// face f. The face's ReceivedSNR is updated with the computed SNR, which is
// also returned. Sector extent membership is not checked: at raster wrap the
// beam may legally point outside the nominal sector.
func SearchDetection(f *face.Face, s *scan.Sector, t *target.Target) (bool, float64) {
	sp := t.Spherical()
	snr := SearchSNR(f, s, t.RCS, sp.Range)
	f.ReceivedSNR = snr

	if snr < f.MinSNR {
		return false, snr
	}
	if !geometry.WithinBeam(sp.Pointing(), s.ScanPos(), f.Beamwidth) {
		return false, snr
	}
	return s.InRange(sp.Range), snr
}

// TrackResult is the outcome of a track beam.
type TrackResult struct {
	Detected bool
	Face     int     // index of the detecting face, -1 if none
	SNR      float64 // SNR at the detecting face, or the best seen
}

// TrackDetection fires a track beam at pointing and reports the first face
// that sees target t. A face sees the target when its track SNR clears
// beam.MinSNR, the target lies inside the track beam window and the target
// lies inside the face's field of view.
func TrackDetection(faces []*face.Face, beam TrackBeam, pointing geometry.AzEl, t *target.Target) TrackResult {
	res := TrackResult{Face: -1, SNR: math.Inf(-1)}
	sp := t.Spherical()
	inBeam := geometry.WithinBeam(sp.Pointing(), pointing, beam.Beamwidth)

	for i, f := range faces {
		snr := TrackSNR(f, t.RCS, sp.Range)
		f.ReceivedSNR = snr
		if snr > res.SNR {
			res.SNR = snr
		}
		if snr < beam.MinSNR || !inBeam || !f.InFOV(sp.Pointing()) {
			continue
		}
		res.Detected = true
		res.Face = i
		res.SNR = snr
		return res
	}
	return res
}
