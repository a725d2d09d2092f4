package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/banshee-data/phasedarray/internal/face"
	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/track"
)

func testEvents() []sim.Event {
	return []sim.Event{
		{Seq: 0, Kind: sim.KindSearch, Time: 30, Azimuth: 12, Elevation: 3, Face: 0, Sector: 1, SNR: 14, Target: 0, Track: "a"},
		{Seq: 1, Kind: sim.KindConfirm, Time: 30, Azimuth: 12, Elevation: 3, Face: 0, Sector: 1, SNR: 20, Target: 0, Track: "a"},
		{Seq: 2, Kind: sim.KindSearch, Time: 90, Azimuth: 100.5, Elevation: 7, Face: 1, Sector: 0, SNR: 10, Target: 1, Track: "b"},
		{Seq: 3, Kind: sim.KindUpdate, Time: 61, Azimuth: 12.4, Elevation: 3.1, Face: 0, Sector: -1, SNR: 18, Target: 0, Track: "a"},
		{Seq: 4, Kind: sim.KindLoss, Time: 120, Azimuth: 13, Elevation: 3.2, Face: -1, Sector: -1, SNR: -2, Target: 0, Track: "a"},
	}
}

func testSetup() sim.Setup {
	return sim.Setup{
		Params: sim.Params{
			TrackPRF:       1000,
			TrackMinSNR:    5,
			TrackBeamwidth: geometry.Beamwidth{Azimuth: 2, Elevation: 2},
			Weights:        track.Weights{Alpha: 0.5, Beta: 0.4, Gamma: 0.1},
			RefreshRate:    1,
			RunLength:      120,
		},
		Faces: []sim.FaceSetup{{
			Config: face.Config{
				Boresight:     geometry.AzEl{Azimuth: 0, Elevation: 10},
				Azimuth:       geometry.AzExtent{Start: 315, End: 45},
				Elevation:     geometry.Extent{Min: 0, Max: 60},
				Beamwidth:     geometry.Beamwidth{Azimuth: 2, Elevation: 2},
				MinSNR:        10,
				Frequency:     3e9,
				Bandwidth:     1e6,
				EffectiveArea: 4,
				PeakPower:     100e3,
				NoiseFigure:   4,
				SystemLoss:    3,
			},
			Sectors: []scan.Config{{
				Azimuth:     geometry.AzExtent{Start: 315, End: 45},
				Elevation:   geometry.Extent{Min: 0, Max: 10},
				Range:       geometry.Extent{Min: 0, Max: 150e3},
				RefreshRate: 2,
			}},
		}},
		Targets: []sim.TargetSetup{{
			Position: r3.Vec{X: 20e3, Y: 15e3, Z: 3e3},
			Velocity: r3.Vec{X: -180, Y: -120},
			RCS:      10,
		}},
	}
}

func TestWriteScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScenario(&buf, testSetup()))
	out := buf.String()

	for _, want := range []string{
		"Faces: 1",
		"Tracking PRF: 1000 Hz",
		"Filter weights: (0.5, 0.4, 0.1)",
		"Start position: (20000, 15000, 3000) m",
		"FOV azimuth: (315, 45) deg",
		"Frequency: 3 GHz",
		"Peak power: 100 kW",
		"Range extent: (0, 150) km",
		// 90° x 10° sector
		"Search volume: 900 deg²",
		"Dwell time: 0.008888888888888889 s",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSummarize(t *testing.T) {
	res := sim.Result{
		Events: testEvents(),
		Stats: sim.Stats{
			SearchHits: 2, Confirmations: 1, TrackUpdates: 1, Losses: 1,
			Frames: 120, EndTime: 120,
		},
		Tracks: []*track.Record{{}, {}},
	}
	s := Summarize(res)

	assert.Equal(t, 2.0, s.EndTimeMin)
	assert.Equal(t, 2, s.TracksOpened)
	assert.Equal(t, []int{1, 1}, s.HitsPerFace)
	assert.InDelta(t, 12, s.SearchSNR.Mean, 1e-12)
	assert.InDelta(t, 2.8284271247, s.SearchSNR.StdDev, 1e-9)
	assert.Equal(t, 10.0, s.SearchSNR.Min)
	assert.Equal(t, 14.0, s.SearchSNR.Max)
	assert.Equal(t, 1.0, s.HitsPerMinute)
	assert.Equal(t, 0.5, s.ConfirmRatio)

	var text bytes.Buffer
	require.NoError(t, s.WriteText(&text))
	assert.Contains(t, text.String(), "Simulation concluded at 2.000 minutes.")
	assert.Contains(t, text.String(), "2 search hit(s)")
	assert.Contains(t, text.String(), "1 track initiation(s)")

	var y bytes.Buffer
	require.NoError(t, s.WriteYAML(&y))
	var back Summary
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &back))
	assert.Equal(t, s, back)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(sim.Result{})
	assert.Zero(t, s.SearchSNR)
	assert.Zero(t, s.HitsPerMinute)
	assert.Zero(t, s.ConfirmRatio)

	one := Summarize(sim.Result{
		Events: testEvents()[:1],
		Stats:  sim.Stats{SearchHits: 1, EndTime: 60},
	})
	assert.Equal(t, 14.0, one.SearchSNR.Mean)
	assert.Zero(t, one.SearchSNR.StdDev)
}

func TestWriteEventsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, testEvents()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2", "search", "90", "100.5", "7", "1", "0", "10", "1", "b"}, rows[3])
	assert.Equal(t, "-1", rows[5][5])
}

func TestWriteSearchLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchLog(&buf, testEvents()))

	assert.Equal(t,
		"Detection(12,3) at: 0.5mins on, face 0-> sector 1\n"+
			"Detection(100.5,7) at: 1.5mins on, face 1-> sector 0\n",
		buf.String())
}

func TestWritePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detections.png")
	require.NoError(t, WritePlot(path, "test run", testEvents()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "not a PNG")

	// An empty run still produces an image.
	empty := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, WritePlot(empty, "empty", nil))
	assert.FileExists(t, empty)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, "test run", testEvents()))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "test run")
	for _, kind := range []string{"search", "confirm", "update", "loss"} {
		assert.Contains(t, out, `"name":"`+kind+`"`)
	}
}

func TestEventPoint(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := testEvents()[2]
	line := write.PointToLineProtocol(EventPoint("run-1", start, ev), time.Second)

	assert.True(t, strings.HasPrefix(line, Measurement+","), line)
	assert.Contains(t, line, "kind=search")
	assert.Contains(t, line, "face=1")
	assert.Contains(t, line, "run_id=run-1")
	assert.Contains(t, line, "azimuth=100.5")
	assert.Contains(t, line, `track="b"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(line), " 1767323135"), line) // start + 90 s
}

func TestInfluxSinkWritesEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
		query  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			w.WriteHeader(http.StatusNoContent)
		case "/api/v2/write":
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			bodies = append(bodies, string(body))
			query = r.URL.RawQuery
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	sink, err := NewInfluxSink(ctx, InfluxOptions{URL: srv.URL, Token: "t", Org: "radar", Bucket: "runs"}, time.Unix(0, 0))
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.WriteEvents(ctx, "run-1", nil))
	require.NoError(t, sink.WriteEvents(ctx, "run-1", testEvents()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, 5, strings.Count(strings.TrimSpace(bodies[0]), "\n")+1)
	assert.Contains(t, query, "bucket=runs")
	assert.Contains(t, query, "org=radar")
}

func TestNewInfluxSinkUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewInfluxSink(context.Background(), InfluxOptions{URL: srv.URL}, time.Now())
	assert.Error(t, err)
}
