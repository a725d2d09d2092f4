// Package sweep estimates detection rates by running one independent
// engine per seed. Engines share nothing, so seeds run in parallel.
package sweep

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/phasedarray/internal/monitoring"
	"github.com/banshee-data/phasedarray/internal/sim"
)

// Options control a sweep. Workers <= 0 uses GOMAXPROCS.
type Options struct {
	Seeds   []uint64
	Workers int
}

// SeedRange returns n consecutive seeds starting at first.
func SeedRange(first uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// NewRand is the generator an engine run with seed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample is the result of one seed.
type Sample struct {
	Seed  uint64
	Stats sim.Stats
}

// Run executes one engine per seed. Samples come back in seed order. The
// first failing run cancels the rest.
func Run(ctx context.Context, setup sim.Setup, o Options) ([]Sample, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]Sample, len(o.Seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range o.Seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			eng, err := sim.New(setup, NewRand(seed))
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			res := eng.Run()
			samples[i] = Sample{Seed: seed, Stats: res.Stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	monitoring.Logf("sweep finished: %d seeds on %d workers", len(o.Seeds), workers)
	return samples, nil
}

// Spread is the sample mean and standard deviation of one statistic.
type Spread struct {
	Mean   float64
	StdDev float64
}

// Aggregate summarises a sweep.
type Aggregate struct {
	Runs          int
	SearchHits    Spread
	Confirmations Spread
	Losses        Spread
	TrackUpdates  Spread
}

func spread(samples []Sample, pick func(sim.Stats) int) Spread {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(pick(s.Stats))
	}
	mean, sd := stat.MeanStdDev(xs, nil)
	if math.IsNaN(sd) {
		sd = 0
	}
	return Spread{Mean: mean, StdDev: sd}
}

// Summarize aggregates samples. An empty sweep gives a zero Aggregate.
func Summarize(samples []Sample) Aggregate {
	if len(samples) == 0 {
		return Aggregate{}
	}
	return Aggregate{
		Runs:          len(samples),
		SearchHits:    spread(samples, func(s sim.Stats) int { return s.SearchHits }),
		Confirmations: spread(samples, func(s sim.Stats) int { return s.Confirmations }),
		Losses:        spread(samples, func(s sim.Stats) int { return s.Losses }),
		TrackUpdates:  spread(samples, func(s sim.Stats) int { return s.TrackUpdates }),
	}
}

// WriteText prints the aggregate.
func (a Aggregate) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `%d run(s)
search hits:   mean %.2f, stddev %.2f
confirmations: mean %.2f, stddev %.2f
track updates: mean %.2f, stddev %.2f
losses:        mean %.2f, stddev %.2f
`,
		a.Runs,
		a.SearchHits.Mean, a.SearchHits.StdDev,
		a.Confirmations.Mean, a.Confirmations.StdDev,
		a.TrackUpdates.Mean, a.TrackUpdates.StdDev,
		a.Losses.Mean, a.Losses.StdDev)
	return err
}

// WriteCSV writes one row per seed.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seed", "search_hits", "confirmations", "track_updates", "losses", "frames", "end_time_s"}); err != nil {
		return err
	}
	for _, s := range samples {
		st := s.Stats
		if err := cw.Write([]string{
			strconv.FormatUint(s.Seed, 10),
			strconv.Itoa(st.SearchHits),
			strconv.Itoa(st.Confirmations),
			strconv.Itoa(st.TrackUpdates),
			strconv.Itoa(st.Losses),
			strconv.Itoa(st.Frames),
			strconv.FormatFloat(st.EndTime, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
