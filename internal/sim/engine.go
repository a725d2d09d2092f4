// Package sim runs the radar simulation: track beams for every active
// track, then one search frame per face, on a single simulated clock.
//
// Faces scan as if simultaneously. Before a face's frame every target
// position is snapshotted and afterwards restored, so no face sees drift
// caused by another face's scanning. The authoritative move for the frame
// happens once all faces are done.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/banshee-data/phasedarray/internal/detect"
	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/metrics"
	"github.com/banshee-data/phasedarray/internal/monitoring"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/target"
	"github.com/banshee-data/phasedarray/internal/timeutil"
	"github.com/banshee-data/phasedarray/internal/track"
	"github.com/banshee-data/phasedarray/internal/units"
)

// Result is what a finished run hands to reporting.
type Result struct {
	Events []Event
	Stats  Stats
	// Tracks lists every record ever opened, retired ones included, in
	// creation order.
	Tracks []*track.Record
}

// Option configures an Engine.
type Option func(*Engine)

// WithEventHandler streams events to h as they are emitted.
func WithEventHandler(h EventHandler) Option {
	return func(e *Engine) { e.handler = h }
}

// WithMetrics counts detections on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// Engine owns every face, target and track of one run. It is not safe for
// concurrent use; run independent engines for parallel work.
type Engine struct {
	params  Params
	beam    detect.TrackBeam
	pri     float64 // s between track pulses
	clock   *timeutil.SimClock
	faces   []*face.Face
	targets target.Set

	tracks  []*track.Record
	current map[int]*track.Record // by target ID

	events  []Event
	stats   Stats
	handler EventHandler
	metrics *metrics.Recorder
}

// New validates setup and builds the engine. Sector start positions are
// drawn from rng; a nil rng uses a fixed seed.
func New(setup Setup, rng *rand.Rand, opts ...Option) (*Engine, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}

	p := setup.Params
	e := &Engine{
		params: p,
		beam: detect.TrackBeam{
			MinSNR:    p.TrackMinSNR,
			Beamwidth: p.TrackBeamwidth,
		},
		pri:     1 / p.TrackPRF,
		clock:   timeutil.NewSimClock(p.RefreshRate, p.RunLength),
		current: make(map[int]*track.Record),
	}

	for _, fs := range setup.Faces {
		f := face.New(fs.Config, fs.Sectors, p.TrackPRF)
		f.RandomizeStarts(rng)
		e.faces = append(e.faces, f)
	}
	for i, ts := range setup.Targets {
		e.targets = append(e.targets, target.New(i, ts.Position, ts.Velocity, ts.Acceleration, ts.RCS))
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Faces exposes the engine's faces for inspection.
func (e *Engine) Faces() []*face.Face { return e.faces }

// Targets exposes the engine's targets for inspection.
func (e *Engine) Targets() target.Set { return e.targets }

// Now is the simulated time in seconds.
func (e *Engine) Now() float64 { return e.clock.Now() }

// TrackFor returns the current record for a target.
func (e *Engine) TrackFor(targetID int) (*track.Record, error) {
	rec, ok := e.current[targetID]
	if !ok {
		return nil, fmt.Errorf("target %d: %w", targetID, ErrNoTrack)
	}
	return rec, nil
}

// Run steps the simulation until the clock passes the horizon.
func (e *Engine) Run() Result {
	monitoring.Logf("simulation starting: %d face(s), %d target(s), %.3f s frames, %.3f min horizon",
		len(e.faces), len(e.targets), e.clock.Refresh(), units.SecondsToMinutes(e.clock.Horizon()))
	for e.clock.Running() {
		e.Step()
	}
	monitoring.Logf("simulation concluded at %.3f min", e.clock.Minutes())
	return e.Result()
}

// Step runs one outer iteration: the tracking pass, a search frame per
// face, the frame move for every target, then the clock tick.
func (e *Engine) Step() {
	e.trackingPass()
	for i := range e.faces {
		e.searchFrame(i)
	}
	e.targets.Advance(e.params.RefreshRate)
	e.clock.Tick()
	e.stats.Frames++
}

// Result snapshots the totals so far.
func (e *Engine) Result() Result {
	stats := e.stats
	stats.EndTime = e.clock.Now()
	return Result{
		Events: e.events,
		Stats:  stats,
		Tracks: e.tracks,
	}
}

// trackingPass fires one track beam per active record. Every target moves
// by one pulse interval per beam fired; the clock only moves on a hit.
func (e *Engine) trackingPass() {
	for _, rec := range e.tracks {
		if !rec.Active() {
			continue
		}
		tg := e.targets[rec.Target]
		now := e.clock.Now()
		res := detect.TrackDetection(e.faces, e.beam, rec.Pointing, tg)
		if res.Detected {
			rec.Update(now, tg.Position)
			e.stats.TrackUpdates++
			e.metrics.TrackUpdate(context.Background(), res.Face)
			sp := tg.Spherical()
			e.emit(Event{
				Kind:      KindUpdate,
				Time:      now,
				Azimuth:   sp.Azimuth,
				Elevation: sp.Elevation,
				Face:      res.Face,
				Sector:    -1,
				SNR:       res.SNR,
				Target:    tg.ID,
				Track:     rec.ID,
			})
			e.clock.Advance(e.pri)
		} else {
			e.lose(rec, tg, now, res.SNR)
		}
		e.targets.Advance(e.pri)
	}
}

func (e *Engine) lose(rec *track.Record, tg *target.Target, now, snr float64) {
	rec.MarkLost(now)
	e.stats.Losses++
	e.metrics.Loss(context.Background())
	monitoring.Logf("lost track %s on target %d at %.3f min, position (%.0f, %.0f, %.0f) m",
		rec.ID, tg.ID, e.clock.Minutes(), tg.Position.X, tg.Position.Y, tg.Position.Z)
	e.emit(Event{
		Kind:      KindLoss,
		Time:      now,
		Azimuth:   rec.Pointing.Azimuth,
		Elevation: rec.Pointing.Elevation,
		Face:      -1,
		Sector:    -1,
		SNR:       snr,
		Target:    tg.ID,
		Track:     rec.ID,
	})
}

// searchFrame scans face fi for one refresh interval against a snapshot of
// the targets. Each beam moves the targets by its dwell time plus any time
// spent on confirmation beams it triggered.
func (e *Engine) searchFrame(fi int) {
	f := e.faces[fi]
	e.targets.Snapshot()
	defer e.targets.Restore()

	beamTime := e.clock.Now()
	var elapsed float64
	for elapsed < e.params.RefreshRate {
		si := f.CurrentSectorIndex()
		s := f.CurrentSector()

		var extra float64
		for _, tg := range e.targets {
			ok, snr := detect.SearchDetection(f, s, tg)
			if !ok {
				continue
			}
			extra += e.searchHit(fi, si, s, tg, beamTime, snr)
		}

		step := s.DwellTime + extra
		e.targets.Advance(step)
		s.IncrementBeamPos(f.Beamwidth.Azimuth, f.Beamwidth.Elevation)
		beamTime += step
		elapsed += step
		f.AdvanceSector()
	}
}

// searchHit records a search detection and, unless the target already has
// an active track, opens a fresh record and fires a confirmation beam along
// the same pointing. It returns the extra beam time spent.
func (e *Engine) searchHit(fi, si int, s *scan.Sector, tg *target.Target, now, snr float64) float64 {
	pointing := s.ScanPos()
	e.stats.SearchHits++
	e.metrics.SearchHit(context.Background(), fi, si)

	ev := Event{
		Kind:      KindSearch,
		Time:      now,
		Azimuth:   pointing.Azimuth,
		Elevation: pointing.Elevation,
		Face:      fi,
		Sector:    si,
		SNR:       snr,
		Target:    tg.ID,
	}

	if rec, ok := e.current[tg.ID]; ok && rec.Active() {
		ev.Track = rec.ID
		e.emit(ev)
		return 0
	}

	rec := track.NewRecord(tg.ID, e.params.Weights, now, pointing)
	e.tracks = append(e.tracks, rec)
	e.current[tg.ID] = rec
	ev.Track = rec.ID
	e.emit(ev)

	monitoring.Logf("target %d detected at %.3f min, starting track at (%.0f, %.0f, %.0f) m",
		tg.ID, units.SecondsToMinutes(now), tg.Position.X, tg.Position.Y, tg.Position.Z)

	res := detect.TrackDetection(e.faces, e.beam, pointing, tg)
	if res.Detected {
		rec.Confirm(now, tg.Position)
		e.stats.Confirmations++
		e.metrics.Confirmation(context.Background(), res.Face)
		e.emit(Event{
			Kind:      KindConfirm,
			Time:      now,
			Azimuth:   pointing.Azimuth,
			Elevation: pointing.Elevation,
			Face:      res.Face,
			Sector:    si,
			SNR:       res.SNR,
			Target:    tg.ID,
			Track:     rec.ID,
		})
	}
	return e.pri
}

func (e *Engine) emit(ev Event) {
	ev.Seq = len(e.events)
	e.events = append(e.events, ev)
	if e.handler != nil {
		e.handler(ev)
	}
}
