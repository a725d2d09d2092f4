package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/units"
)

// SNRStats summarises search-hit SNRs in dB.
type SNRStats struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// Summary is the headline view of a run.
type Summary struct {
	EndTimeMin    float64  `yaml:"end_time_min"`
	Frames        int      `yaml:"frames"`
	SearchHits    int      `yaml:"search_hits"`
	Confirmations int      `yaml:"confirmations"`
	TrackUpdates  int      `yaml:"track_updates"`
	Losses        int      `yaml:"losses"`
	TracksOpened  int      `yaml:"tracks_opened"`
	HitsPerFace   []int    `yaml:"hits_per_face"`
	SearchSNR     SNRStats `yaml:"search_snr_db"`
	// HitsPerMinute is search hits per simulated minute.
	HitsPerMinute float64 `yaml:"hits_per_minute"`
	// ConfirmRatio is confirmations over search hits.
	ConfirmRatio float64 `yaml:"confirm_ratio"`
}

// Summarize derives a Summary from a run result.
func Summarize(res sim.Result) Summary {
	s := Summary{
		EndTimeMin:    units.SecondsToMinutes(res.Stats.EndTime),
		Frames:        res.Stats.Frames,
		SearchHits:    res.Stats.SearchHits,
		Confirmations: res.Stats.Confirmations,
		TrackUpdates:  res.Stats.TrackUpdates,
		Losses:        res.Stats.Losses,
		TracksOpened:  len(res.Tracks),
	}

	var snrs []float64
	for _, ev := range res.Events {
		if ev.Kind != sim.KindSearch {
			continue
		}
		snrs = append(snrs, ev.SNR)
		for len(s.HitsPerFace) <= ev.Face {
			s.HitsPerFace = append(s.HitsPerFace, 0)
		}
		s.HitsPerFace[ev.Face]++
	}

	if len(snrs) > 0 {
		s.SearchSNR.Mean, s.SearchSNR.StdDev = stat.MeanStdDev(snrs, nil)
		if math.IsNaN(s.SearchSNR.StdDev) {
			s.SearchSNR.StdDev = 0
		}
		s.SearchSNR.Min = floats.Min(snrs)
		s.SearchSNR.Max = floats.Max(snrs)
	}
	if s.EndTimeMin > 0 {
		s.HitsPerMinute = float64(s.SearchHits) / s.EndTimeMin
	}
	if s.SearchHits > 0 {
		s.ConfirmRatio = float64(s.Confirmations) / float64(s.SearchHits)
	}
	return s
}

// WriteText prints the summary the way the console run ends.
func (s Summary) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Simulation concluded at %.3f minutes.
%d frame(s)
%d search hit(s)
%d track initiation(s)
%d track update(s)
%d track loss(es)
%d track record(s) opened
search hits per face: %v
search SNR: mean %.2f dB, stddev %.2f dB, range [%.2f, %.2f] dB
%.3f search hits per minute, confirmation ratio %.3f
`,
		s.EndTimeMin, s.Frames, s.SearchHits, s.Confirmations, s.TrackUpdates, s.Losses, s.TracksOpened,
		s.HitsPerFace, s.SearchSNR.Mean, s.SearchSNR.StdDev, s.SearchSNR.Min, s.SearchSNR.Max,
		s.HitsPerMinute, s.ConfirmRatio)
	return err
}

// WriteYAML dumps the summary as YAML.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}
