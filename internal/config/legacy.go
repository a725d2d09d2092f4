package config

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/phasedarray/internal/fsutil"
	"github.com/banshee-data/phasedarray/internal/sim"
)

// Legacy scenario directories hold four positional text files.
const (
	LegacyRadarFile  = "RadarInfo.txt"
	LegacyFaceFile   = "FaceInfo.txt"
	LegacySectorFile = "SectorInfo.txt"
	LegacyTargetFile = "TargetInfo.txt"
)

// valueReader walks "Label: value" lines. Labels are ignored: values are
// read in a fixed order. Lines starting with '-' separate records and blank
// lines are skipped.
type valueReader struct {
	file  string
	lines []string
	pos   int
	line  int
}

func newValueReader(fsys fsutil.FileSystem, dir, name string) (*valueReader, error) {
	data, err := fsys.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	r := &valueReader{file: name}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		r.lines = append(r.lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	return r, nil
}

// next returns the text after the first ':' of the next value line.
func (r *valueReader) next(what string) (string, error) {
	for r.pos < len(r.lines) {
		raw := strings.TrimSpace(r.lines[r.pos])
		r.pos++
		r.line = r.pos
		if raw == "" || strings.HasPrefix(raw, "-") {
			continue
		}
		if i := strings.Index(raw, ":"); i >= 0 {
			raw = raw[i+1:]
		}
		return strings.TrimSpace(raw), nil
	}
	return "", fmt.Errorf("%s: unexpected end of file reading %s", r.file, what)
}

func (r *valueReader) floats(what string, n int) ([]float64, error) {
	text, err := r.next(what)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(text, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%s line %d: %s wants %d values, got %q", r.file, r.line, what, n, text)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %s: %w", r.file, r.line, what, err)
		}
		out[i] = v
	}
	return out, nil
}

func (r *valueReader) scalar(what string) (float64, error) {
	v, err := r.floats(what, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (r *valueReader) count(what string) (int, error) {
	v, err := r.scalar(what)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxInt32 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%s line %d: %s must be a whole number no larger than %d, got %g", r.file, r.line, what, math.MaxInt32, v)
	}
	return int(v), nil
}

func (r *valueReader) pair(what string) (Pair, error) {
	v, err := r.floats(what, 2)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Azimuth: v[0], Elevation: v[1]}, nil
}

func (r *valueReader) span(what string) (Span, error) {
	v, err := r.floats(what, 2)
	if err != nil {
		return Span{}, err
	}
	return Span{Start: v[0], End: v[1]}, nil
}

func (r *valueReader) vec3(what string) (Vec3, error) {
	v, err := r.floats(what, 3)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// LoadLegacy reads a scenario from the four-file text layout. In this layout
// the track PRF is given in kHz.
func LoadLegacy(fsys fsutil.FileSystem, dir string) (*Scenario, error) {
	s := &Scenario{Name: filepath.Base(filepath.Clean(dir)), Seed: DefaultSeed}

	nFaces, nTargets, err := s.readRadar(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := s.readFaces(fsys, dir, nFaces); err != nil {
		return nil, err
	}
	if err := s.readSectors(fsys, dir); err != nil {
		return nil, err
	}
	if err := s.readTargets(fsys, dir, nTargets); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

func (s *Scenario) readRadar(fsys fsutil.FileSystem, dir string) (faces, targets int, err error) {
	r, err := newValueReader(fsys, dir, LegacyRadarFile)
	if err != nil {
		return 0, 0, err
	}
	if faces, err = r.count("face count"); err != nil {
		return 0, 0, err
	}
	if faces > sim.MaxFaces {
		return 0, 0, fmt.Errorf("%s: %d faces, limit %d: %w", LegacyRadarFile, faces, sim.MaxFaces, sim.ErrTooManyFaces)
	}
	if targets, err = r.count("target count"); err != nil {
		return 0, 0, err
	}

	prfKHz, err := r.scalar("track PRF")
	if err != nil {
		return 0, 0, err
	}
	s.Radar.TrackPRFHz = prfKHz * 1e3
	if s.Radar.TrackMinSNRdB, err = r.scalar("track min SNR"); err != nil {
		return 0, 0, err
	}
	if s.Radar.TrackBeamwidthDeg, err = r.pair("track beamwidth"); err != nil {
		return 0, 0, err
	}
	w, err := r.vec3("filter weights")
	if err != nil {
		return 0, 0, err
	}
	s.Radar.Weights = Weights{Alpha: w.X, Beta: w.Y, Gamma: w.Z}
	if s.Radar.RefreshRateS, err = r.scalar("refresh rate"); err != nil {
		return 0, 0, err
	}
	if s.Radar.RunLengthMin, err = r.scalar("run length"); err != nil {
		return 0, 0, err
	}
	return faces, targets, nil
}

func (s *Scenario) readFaces(fsys fsutil.FileSystem, dir string, n int) error {
	r, err := newValueReader(fsys, dir, LegacyFaceFile)
	if err != nil {
		return err
	}
	s.Faces = make([]Face, n)
	for i := range s.Faces {
		f := &s.Faces[i]
		if f.BoresightDeg, err = r.pair("boresight"); err != nil {
			return err
		}
		if f.AzimuthFOVDeg, err = r.span("azimuth FOV"); err != nil {
			return err
		}
		if f.ElevationFOVDeg, err = r.span("elevation FOV"); err != nil {
			return err
		}
		if f.BeamwidthDeg, err = r.pair("3dB beamwidth"); err != nil {
			return err
		}
		scalars := []struct {
			what string
			dst  *float64
		}{
			{"min SNR", &f.MinSNRdB},
			{"frequency", &f.FrequencyGHz},
			{"bandwidth", &f.BandwidthKHz},
			{"effective area", &f.EffectiveAreaM2},
			{"peak power", &f.PeakPowerKW},
			{"noise figure", &f.NoiseFigureDB},
			{"system loss", &f.SystemLossDB},
		}
		for _, sc := range scalars {
			if *sc.dst, err = r.scalar(sc.what); err != nil {
				return err
			}
		}
		sectors, err := r.count("sector count")
		if err != nil {
			return err
		}
		if sectors > sim.MaxSectors {
			return fmt.Errorf("%s: face %d has %d sectors, limit %d: %w",
				LegacyFaceFile, i, sectors, sim.MaxSectors, sim.ErrTooManySectors)
		}
		f.Sectors = make([]Sector, sectors)
	}
	return nil
}

func (s *Scenario) readSectors(fsys fsutil.FileSystem, dir string) error {
	r, err := newValueReader(fsys, dir, LegacySectorFile)
	if err != nil {
		return err
	}
	for i := range s.Faces {
		for j := range s.Faces[i].Sectors {
			sc := &s.Faces[i].Sectors[j]
			if sc.AzimuthDeg, err = r.span("azimuth extent"); err != nil {
				return err
			}
			if sc.ElevationDeg, err = r.span("elevation extent"); err != nil {
				return err
			}
			if sc.RangeKm, err = r.span("range extent"); err != nil {
				return err
			}
			if sc.RefreshRateS, err = r.scalar("sector refresh rate"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scenario) readTargets(fsys fsutil.FileSystem, dir string, n int) error {
	r, err := newValueReader(fsys, dir, LegacyTargetFile)
	if err != nil {
		return err
	}
	// Targets are appended as read: the count comes from another file and
	// is not trusted for allocation.
	s.Targets = nil
	for range n {
		var t Target
		if t.PositionKm, err = r.vec3("position"); err != nil {
			return err
		}
		if t.VelocityMps, err = r.vec3("velocity"); err != nil {
			return err
		}
		if t.AccelerationMps, err = r.vec3("acceleration"); err != nil {
			return err
		}
		if t.RCSdB, err = r.scalar("RCS"); err != nil {
			return err
		}
		s.Targets = append(s.Targets, t)
	}
	return nil
}
