// Package track holds the per-target track records and the α-β-γ filter
// that steers each record's track beam.
package track

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/geometry"
)

// State is the lifecycle state of a track record.
type State string

const (
	StateNone    State = "none"    // No record for the target
	StatePending State = "pending" // Search hit, awaiting confirmation beam
	StateActive  State = "active"  // Confirmed, filter running
	StateLost    State = "lost"    // Track beam missed, filter stopped
)

// Record is one track on one target. A lost record is retired rather than
// revived: re-detection of the target starts a fresh record.
type Record struct {
	ID     string
	Target int
	State  State
	Filter Filter

	// Pointing is the next track-beam direction.
	Pointing geometry.AzEl

	// LastDetect and PrevDetect are the two most recent detection times (s).
	LastDetect float64
	PrevDetect float64

	Created float64 // s
	Updates int
	Lost    float64 // s, valid when State == StateLost
}

// NewRecord opens a pending record for target at the time of its search hit.
func NewRecord(targetID int, w Weights, now float64, pointing geometry.AzEl) *Record {
	return &Record{
		ID:         uuid.NewString(),
		Target:     targetID,
		State:      StatePending,
		Filter:     NewFilter(w),
		Pointing:   pointing,
		LastDetect: now,
		PrevDetect: now,
		Created:    now,
	}
}

// Active reports whether the filter is running.
func (r *Record) Active() bool {
	return r.State == StateActive
}

func (r *Record) detected(now float64) {
	r.PrevDetect = r.LastDetect
	r.LastDetect = now
}

// Confirm marks the record active and initialises the filter from the
// confirmation measurement.
func (r *Record) Confirm(now float64, measured r3.Vec) {
	r.detected(now)
	r.State = StateActive
	r.Filter.Initialize(measured, r.LastDetect-r.PrevDetect)
	r.Pointing = r.Filter.Pointing()
}

// Update feeds a track-beam measurement through the filter and re-aims the
// track beam.
func (r *Record) Update(now float64, measured r3.Vec) {
	r.detected(now)
	r.Filter.Update(measured, r.LastDetect-r.PrevDetect)
	r.Pointing = r.Filter.Pointing()
	r.Updates++
}

// MarkLost stops the filter.
func (r *Record) MarkLost(now float64) {
	r.State = StateLost
	r.Lost = now
}
