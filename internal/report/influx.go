package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/timeutil"
)

// Measurement is the InfluxDB measurement events are written to.
const Measurement = "radar_detection"

// InfluxOptions locate an InfluxDB v2 bucket.
type InfluxOptions struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxSink writes run events as points. Event timestamps are the run's
// start time plus the simulated time of the event.
type InfluxSink struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
	start  time.Time
}

// NewInfluxSink connects to InfluxDB and checks the server answers.
func NewInfluxSink(ctx context.Context, o InfluxOptions, start time.Time) (*InfluxSink, error) {
	client := influxdb2.NewClientWithOptions(o.URL, o.Token,
		influxdb2.DefaultOptions().SetBatchSize(2500))
	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		if err == nil {
			err = fmt.Errorf("server not running")
		}
		return nil, fmt.Errorf("failed to reach InfluxDB at %s: %w", o.URL, err)
	}
	return newInfluxSink(client, client.WriteAPIBlocking(o.Org, o.Bucket), start), nil
}

func newInfluxSink(client influxdb2.Client, w api.WriteAPIBlocking, start time.Time) *InfluxSink {
	return &InfluxSink{client: client, writer: w, start: start}
}

// EventPoint converts one event to a point tagged with the run id.
func EventPoint(runID string, start time.Time, ev sim.Event) *write.Point {
	return influxdb2.NewPointWithMeasurement(Measurement).
		AddTag("run_id", runID).
		AddTag("kind", string(ev.Kind)).
		AddTag("face", strconv.Itoa(ev.Face)).
		AddTag("sector", strconv.Itoa(ev.Sector)).
		AddField("seq", ev.Seq).
		AddField("azimuth", ev.Azimuth).
		AddField("elevation", ev.Elevation).
		AddField("snr", ev.SNR).
		AddField("target", ev.Target).
		AddField("track", ev.Track).
		SetTime(timeutil.WallTime(start, ev.Time))
}

// WriteEvents writes every event of a run.
func (s *InfluxSink) WriteEvents(ctx context.Context, runID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	points := make([]*write.Point, 0, len(events))
	for _, ev := range events {
		points = append(points, EventPoint(runID, s.start, ev))
	}
	if err := s.writer.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write %d points: %w", len(points), err)
	}
	return nil
}

// Close releases the client.
func (s *InfluxSink) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
