// Package config loads radar scenarios. Scenario files keep the units people
// write them in (km, GHz, kHz, kW, minutes); Resolve converts to the SI
// setup the engine runs on.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/track"
	"github.com/banshee-data/phasedarray/internal/units"
)

// Defaults applied when a scenario file leaves a value out.
const (
	DefaultSeed         = 1
	DefaultRefreshRateS = 1.0
	DefaultRunLengthMin = 1.0
	DefaultAlpha        = 0.5
	DefaultBeta         = 0.4
	DefaultGamma        = 0.1
)

// Pair is an azimuth/elevation pair in degrees.
type Pair struct {
	Azimuth   float64 `mapstructure:"azimuth" yaml:"azimuth"`
	Elevation float64 `mapstructure:"elevation" yaml:"elevation"`
}

// Span is an extent from Start to End. For azimuth, End < Start means the
// extent wraps through north.
type Span struct {
	Start float64 `mapstructure:"start" yaml:"start"`
	End   float64 `mapstructure:"end" yaml:"end"`
}

// Vec3 is a Cartesian triple.
type Vec3 struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

func (v Vec3) vec(scale float64) r3.Vec {
	return r3.Vec{X: v.X * scale, Y: v.Y * scale, Z: v.Z * scale}
}

// Weights are the α-β-γ filter gains.
type Weights struct {
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
	Beta  float64 `mapstructure:"beta" yaml:"beta"`
	Gamma float64 `mapstructure:"gamma" yaml:"gamma"`
}

// Radar holds the simulation-wide settings.
type Radar struct {
	TrackPRFHz        float64 `mapstructure:"track_prf_hz" yaml:"track_prf_hz"`
	TrackMinSNRdB     float64 `mapstructure:"track_min_snr_db" yaml:"track_min_snr_db"`
	TrackBeamwidthDeg Pair    `mapstructure:"track_beamwidth_deg" yaml:"track_beamwidth_deg"`
	Weights           Weights `mapstructure:"weights" yaml:"weights"`
	RefreshRateS      float64 `mapstructure:"refresh_rate_s" yaml:"refresh_rate_s"`
	RunLengthMin      float64 `mapstructure:"run_length_min" yaml:"run_length_min"`
}

// Sector is one search sector of a face.
type Sector struct {
	AzimuthDeg   Span    `mapstructure:"azimuth_deg" yaml:"azimuth_deg"`
	ElevationDeg Span    `mapstructure:"elevation_deg" yaml:"elevation_deg"`
	RangeKm      Span    `mapstructure:"range_km" yaml:"range_km"`
	RefreshRateS float64 `mapstructure:"refresh_rate_s" yaml:"refresh_rate_s"`
}

// Face is one array face.
type Face struct {
	BoresightDeg    Pair     `mapstructure:"boresight_deg" yaml:"boresight_deg"`
	AzimuthFOVDeg   Span     `mapstructure:"azimuth_fov_deg" yaml:"azimuth_fov_deg"`
	ElevationFOVDeg Span     `mapstructure:"elevation_fov_deg" yaml:"elevation_fov_deg"`
	BeamwidthDeg    Pair     `mapstructure:"beamwidth_deg" yaml:"beamwidth_deg"`
	MinSNRdB        float64  `mapstructure:"min_snr_db" yaml:"min_snr_db"`
	FrequencyGHz    float64  `mapstructure:"frequency_ghz" yaml:"frequency_ghz"`
	BandwidthKHz    float64  `mapstructure:"bandwidth_khz" yaml:"bandwidth_khz"`
	EffectiveAreaM2 float64  `mapstructure:"effective_area_m2" yaml:"effective_area_m2"`
	PeakPowerKW     float64  `mapstructure:"peak_power_kw" yaml:"peak_power_kw"`
	NoiseFigureDB   float64  `mapstructure:"noise_figure_db" yaml:"noise_figure_db"`
	SystemLossDB    float64  `mapstructure:"system_loss_db" yaml:"system_loss_db"`
	Sectors         []Sector `mapstructure:"sectors" yaml:"sectors"`
}

// Target is a target's initial state.
type Target struct {
	PositionKm      Vec3    `mapstructure:"position_km" yaml:"position_km"`
	VelocityMps     Vec3    `mapstructure:"velocity_mps" yaml:"velocity_mps"`
	AccelerationMps Vec3    `mapstructure:"acceleration_mps2" yaml:"acceleration_mps2"`
	RCSdB           float64 `mapstructure:"rcs_db" yaml:"rcs_db"`
}

// Scenario is a complete simulation input.
type Scenario struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Seed    uint64   `mapstructure:"seed" yaml:"seed"`
	Radar   Radar    `mapstructure:"radar" yaml:"radar"`
	Faces   []Face   `mapstructure:"faces" yaml:"faces"`
	Targets []Target `mapstructure:"targets" yaml:"targets"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", DefaultSeed)
	v.SetDefault("radar.refresh_rate_s", DefaultRefreshRateS)
	v.SetDefault("radar.run_length_min", DefaultRunLengthMin)
	v.SetDefault("radar.weights.alpha", DefaultAlpha)
	v.SetDefault("radar.weights.beta", DefaultBeta)
	v.SetDefault("radar.weights.gamma", DefaultGamma)
}

// Load reads a scenario file. The format follows the extension (yaml, json
// or toml). Missing optional values take the package defaults and the result
// is validated before it is returned.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filepath.Clean(path))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// Validate checks the scenario against the engine's bounds. Errors wrap the
// sim package sentinels.
func (s *Scenario) Validate() error {
	setup := s.Resolve()
	return setup.Validate()
}

// Resolve converts the scenario to SI units.
func (s *Scenario) Resolve() sim.Setup {
	r := s.Radar
	setup := sim.Setup{
		Params: sim.Params{
			TrackPRF:       r.TrackPRFHz,
			TrackMinSNR:    r.TrackMinSNRdB,
			TrackBeamwidth: geometry.Beamwidth(r.TrackBeamwidthDeg),
			Weights:        track.Weights(r.Weights),
			RefreshRate:    r.RefreshRateS,
			RunLength:      units.MinutesToSeconds(r.RunLengthMin),
		},
	}

	for _, f := range s.Faces {
		fs := sim.FaceSetup{
			Config: face.Config{
				Boresight:     geometry.AzEl(f.BoresightDeg),
				Azimuth:       geometry.AzExtent{Start: f.AzimuthFOVDeg.Start, End: f.AzimuthFOVDeg.End},
				Elevation:     geometry.Extent{Min: f.ElevationFOVDeg.Start, Max: f.ElevationFOVDeg.End},
				Beamwidth:     geometry.Beamwidth(f.BeamwidthDeg),
				MinSNR:        f.MinSNRdB,
				Frequency:     units.GHzToHz(f.FrequencyGHz),
				Bandwidth:     units.KiloToBase(f.BandwidthKHz),
				EffectiveArea: f.EffectiveAreaM2,
				PeakPower:     units.KiloToBase(f.PeakPowerKW),
				NoiseFigure:   f.NoiseFigureDB,
				SystemLoss:    f.SystemLossDB,
			},
		}
		for _, sc := range f.Sectors {
			fs.Sectors = append(fs.Sectors, scan.Config{
				Azimuth:   geometry.AzExtent{Start: sc.AzimuthDeg.Start, End: sc.AzimuthDeg.End},
				Elevation: geometry.Extent{Min: sc.ElevationDeg.Start, Max: sc.ElevationDeg.End},
				Range: geometry.Extent{
					Min: units.KiloToBase(sc.RangeKm.Start),
					Max: units.KiloToBase(sc.RangeKm.End),
				},
				RefreshRate: sc.RefreshRateS,
			})
		}
		setup.Faces = append(setup.Faces, fs)
	}

	for _, t := range s.Targets {
		setup.Targets = append(setup.Targets, sim.TargetSetup{
			Position:     t.PositionKm.vec(1e3),
			Velocity:     t.VelocityMps.vec(1),
			Acceleration: t.AccelerationMps.vec(1),
			RCS:          t.RCSdB,
		})
	}
	return setup
}

// WriteYAML dumps the scenario in the same layout Load reads.
func (s *Scenario) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	return enc.Close()
}
