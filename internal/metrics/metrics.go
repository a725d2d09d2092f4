// Package metrics exports engine counters through OpenTelemetry. Without an
// SDK installed the global meter is a no-op.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/banshee-data/phasedarray/internal/metrics"

// Recorder holds the engine counters. A nil *Recorder records nothing.
type Recorder struct {
	searchHits    metric.Int64Counter
	confirmations metric.Int64Counter
	updates       metric.Int64Counter
	losses        metric.Int64Counter
}

// Default builds a Recorder on the global meter provider.
func Default() (*Recorder, error) {
	return New(otel.Meter(instrumentationName))
}

// New creates the counters on m.
func New(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.searchHits, err = m.Int64Counter(
		"radar.search.hits",
		metric.WithDescription("Search beam detections"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating search hit counter: %w", err)
	}

	r.confirmations, err = m.Int64Counter(
		"radar.track.confirmations",
		metric.WithDescription("Confirmation beams that started a track"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating confirmation counter: %w", err)
	}

	r.updates, err = m.Int64Counter(
		"radar.track.updates",
		metric.WithDescription("Track beam detections fed to the filter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating track update counter: %w", err)
	}

	r.losses, err = m.Int64Counter(
		"radar.track.losses",
		metric.WithDescription("Tracks dropped after a missed track beam"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loss counter: %w", err)
	}

	return r, nil
}

// SearchHit counts a search detection on face/sector.
func (r *Recorder) SearchHit(ctx context.Context, face, sector int) {
	if r == nil {
		return
	}
	r.searchHits.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("face", face),
		attribute.Int("sector", sector),
	))
}

// Confirmation counts a confirmed track on face.
func (r *Recorder) Confirmation(ctx context.Context, face int) {
	if r == nil {
		return
	}
	r.confirmations.Add(ctx, 1, metric.WithAttributes(attribute.Int("face", face)))
}

// TrackUpdate counts a successful track beam on face.
func (r *Recorder) TrackUpdate(ctx context.Context, face int) {
	if r == nil {
		return
	}
	r.updates.Add(ctx, 1, metric.WithAttributes(attribute.Int("face", face)))
}

// Loss counts a dropped track.
func (r *Recorder) Loss(ctx context.Context) {
	if r == nil {
		return
	}
	r.losses.Add(ctx, 1)
}
