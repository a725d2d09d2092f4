// Package report turns a simulation setup and its results into console
// text, files and charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/units"
)

const rule = "--------------------------------------------------------------------------------"

// WriteScenario prints the simulation parameters, each target's initial
// state and each face with its sectors' derived dwell time and search
// volume. Positions and extents are printed in the units people configure
// them in.
func WriteScenario(w io.Writer, setup sim.Setup) error {
	var b strings.Builder
	p := setup.Params

	fmt.Fprintf(&b, "Simulated radar\n")
	fmt.Fprintf(&b, "Faces: %d\n", len(setup.Faces))
	fmt.Fprintf(&b, "Targets: %d\n", len(setup.Targets))
	fmt.Fprintf(&b, "Tracking PRF: %g Hz\n", p.TrackPRF)
	fmt.Fprintf(&b, "Tracking minimum SNR: %g dB\n", p.TrackMinSNR)
	fmt.Fprintf(&b, "Tracking beamwidth: (%g, %g) deg\n", p.TrackBeamwidth.Azimuth, p.TrackBeamwidth.Elevation)
	fmt.Fprintf(&b, "Filter weights: (%g, %g, %g)\n", p.Weights.Alpha, p.Weights.Beta, p.Weights.Gamma)
	fmt.Fprintf(&b, "Frame refresh rate: %g s\n", p.RefreshRate)
	fmt.Fprintf(&b, "Run length: %g s\n", p.RunLength)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "Targets\n")
	for i, t := range setup.Targets {
		fmt.Fprintf(&b, "Target #%d:\n", i+1)
		fmt.Fprintf(&b, "  RCS: %g dBsm\n", t.RCS)
		fmt.Fprintf(&b, "  Start position: (%g, %g, %g) m\n", t.Position.X, t.Position.Y, t.Position.Z)
		fmt.Fprintf(&b, "  Velocity: (%g, %g, %g) m/s\n", t.Velocity.X, t.Velocity.Y, t.Velocity.Z)
		fmt.Fprintf(&b, "  Acceleration: (%g, %g, %g) m/s²\n", t.Acceleration.X, t.Acceleration.Y, t.Acceleration.Z)
	}
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "Radar faces\n")
	for i, fs := range setup.Faces {
		f := face.New(fs.Config, fs.Sectors, p.TrackPRF)
		fmt.Fprintf(&b, "Face #%d:\n", i+1)
		fmt.Fprintf(&b, "  Boresight: (%g, %g) deg\n", f.Boresight.Azimuth, f.Boresight.Elevation)
		fmt.Fprintf(&b, "  FOV azimuth: (%g, %g) deg\n", f.Azimuth.Start, f.Azimuth.End)
		fmt.Fprintf(&b, "  FOV elevation: (%g, %g) deg\n", f.Elevation.Min, f.Elevation.Max)
		fmt.Fprintf(&b, "  3dB beamwidth: (%g, %g) deg\n", f.Beamwidth.Azimuth, f.Beamwidth.Elevation)
		fmt.Fprintf(&b, "  Minimum SNR: %g dB\n", f.MinSNR)
		fmt.Fprintf(&b, "  Frequency: %g GHz\n", units.HzToGHz(f.Frequency))
		fmt.Fprintf(&b, "  Bandwidth: %g Hz\n", f.Bandwidth)
		fmt.Fprintf(&b, "  Effective area: %g m²\n", f.EffectiveArea)
		fmt.Fprintf(&b, "  Peak power: %g kW\n", units.BaseToKilo(f.PeakPower))
		fmt.Fprintf(&b, "  Average power: %g kW\n", units.BaseToKilo(f.AvgPower))
		fmt.Fprintf(&b, "  Noise figure: %g dB\n", f.NoiseFigure)
		fmt.Fprintf(&b, "  System loss: %g dB\n", f.SystemLoss)
		fmt.Fprintf(&b, "  %d search sectors\n", len(f.Sectors))
		for j := range f.Sectors {
			s := &f.Sectors[j]
			pos := s.ScanPos()
			fmt.Fprintf(&b, "  Sector %d:\n", j+1)
			fmt.Fprintf(&b, "    Scan position: (%g, %g) deg\n", pos.Azimuth, pos.Elevation)
			fmt.Fprintf(&b, "    Azimuth extent: (%g, %g) deg\n", s.Azimuth.Start, s.Azimuth.End)
			fmt.Fprintf(&b, "    Elevation extent: (%g, %g) deg\n", s.Elevation.Min, s.Elevation.Max)
			fmt.Fprintf(&b, "    Range extent: (%g, %g) km\n", units.BaseToKilo(s.Range.Min), units.BaseToKilo(s.Range.Max))
			fmt.Fprintf(&b, "    Refresh rate: %g s\n", s.RefreshRate)
			fmt.Fprintf(&b, "    Search volume: %g deg²\n", s.SearchVolume)
			fmt.Fprintf(&b, "    Dwell time: %g s\n", s.DwellTime)
		}
	}
	fmt.Fprintf(&b, "%s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}
