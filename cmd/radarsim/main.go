// Command radarsim runs a phased-array radar scenario and writes its
// detections to the console, files, SQLite or InfluxDB.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/banshee-data/phasedarray/internal/config"
	"github.com/banshee-data/phasedarray/internal/db"
	"github.com/banshee-data/phasedarray/internal/fsutil"
	"github.com/banshee-data/phasedarray/internal/metrics"
	"github.com/banshee-data/phasedarray/internal/monitoring"
	"github.com/banshee-data/phasedarray/internal/report"
	"github.com/banshee-data/phasedarray/internal/security"
	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/sweep"
	"github.com/banshee-data/phasedarray/internal/timeutil"
	"github.com/banshee-data/phasedarray/internal/version"
)

// wallClock stamps run start times.
var wallClock timeutil.Clock = timeutil.RealClock{}

var (
	configPath = flag.String("config", "", "Scenario file (yaml, json or toml)")
	legacyDir  = flag.String("legacy", "", "Directory holding RadarInfo.txt, FaceInfo.txt, SectorInfo.txt and TargetInfo.txt")
	seed       = flag.Uint64("seed", 0, "Random seed for sector start positions (0 keeps the scenario seed)")
	sweepN     = flag.Int("sweep", 0, "Run a Monte Carlo sweep over this many consecutive seeds")
	workers    = flag.Int("workers", 0, "Parallel engines during a sweep (0 uses all CPUs)")
	outDir     = flag.String("out", ".", "Directory for output files")
	writeCSV   = flag.Bool("csv", false, "Write events (or sweep samples) as CSV")
	writePlot  = flag.Bool("plot", false, "Write a PNG scatter of detections")
	writeHTML  = flag.Bool("html", false, "Write an interactive HTML chart of detections")
	writeYAML  = flag.Bool("yaml", false, "Write the resolved scenario and run summary as YAML")
	searchLog  = flag.Bool("search-log", false, "Write the plain-text search detection log")
	dbPath     = flag.String("db", "", "SQLite database to store the run in")
	migrateCmd = flag.String("migrate", "", "Apply a schema action to -db (up|down|status) and exit")

	influxURL    = flag.String("influx-url", "", "InfluxDB v2 URL; empty disables export")
	influxToken  = flag.String("influx-token", "", "InfluxDB token")
	influxOrg    = flag.String("influx-org", "", "InfluxDB organisation")
	influxBucket = flag.String("influx-bucket", "radar", "InfluxDB bucket")

	logLevel    = flag.String("log-level", "info", "Log level: trace|debug|info|warn|error")
	graylogAddr = flag.String("graylog", "", "GELF UDP address (host:port) to ship logs to")
	showInfo    = flag.Bool("info", false, "Print the scenario before running")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// options is everything a run needs from the command line.
type options struct {
	ConfigPath string
	LegacyDir  string
	Seed       uint64
	Sweep      int
	Workers    int
	OutDir     string
	CSV        bool
	Plot       bool
	HTML       bool
	YAML       bool
	SearchLog  bool
	DBPath     string
	Migrate    string
	Influx     report.InfluxOptions
	Info       bool
}

func optionsFromFlags() options {
	return options{
		ConfigPath: *configPath,
		LegacyDir:  *legacyDir,
		Seed:       *seed,
		Sweep:      *sweepN,
		Workers:    *workers,
		OutDir:     *outDir,
		CSV:        *writeCSV,
		Plot:       *writePlot,
		HTML:       *writeHTML,
		YAML:       *writeYAML,
		SearchLog:  *searchLog,
		DBPath:     *dbPath,
		Migrate:    *migrateCmd,
		Influx: report.InfluxOptions{
			URL:    *influxURL,
			Token:  *influxToken,
			Org:    *influxOrg,
			Bucket: *influxBucket,
		},
		Info: *showInfo,
	}
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("radarsim"))
		return
	}

	logger, closer, err := monitoring.Setup(monitoring.Options{Level: *logLevel, Graylog: *graylogAddr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "radarsim: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, optionsFromFlags(), os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("radarsim failed")
	}
}

func loadScenario(o options) (*config.Scenario, error) {
	switch {
	case o.ConfigPath != "" && o.LegacyDir != "":
		return nil, errors.New("-config and -legacy are mutually exclusive")
	case o.ConfigPath != "":
		return config.Load(o.ConfigPath)
	case o.LegacyDir != "":
		return config.LoadLegacy(fsutil.OSFileSystem{}, o.LegacyDir)
	default:
		return nil, errors.New("one of -config or -legacy is required")
	}
}

// outputs creates files in the output directory.
type outputs struct {
	fs   fsutil.FileSystem
	dir  string
	base string
}

func (o outputs) path(suffix string) (string, error) {
	return security.OutputPath(o.dir, o.base+suffix)
}

func (o outputs) write(suffix string, fn func(io.Writer) error) (string, error) {
	p, err := o.path(suffix)
	if err != nil {
		return "", err
	}
	f, err := o.fs.Create(p)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", p, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", p, err)
	}
	return p, f.Close()
}

func migrateDB(o options, stdout io.Writer) error {
	if o.DBPath == "" {
		return errors.New("-migrate needs -db")
	}
	store, err := db.Open(o.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()
	return store.RunMigrateCommand(o.Migrate, stdout)
}

func run(ctx context.Context, o options, stdout io.Writer, logger zerolog.Logger) error {
	if o.Migrate != "" {
		return migrateDB(o, stdout)
	}

	scn, err := loadScenario(o)
	if err != nil {
		return err
	}
	if o.Seed != 0 {
		scn.Seed = o.Seed
	}
	setup := scn.Resolve()

	out := outputs{fs: fsutil.OSFileSystem{}, dir: o.OutDir, base: scn.Name}
	if o.CSV || o.Plot || o.HTML || o.YAML || o.SearchLog {
		if err := out.fs.MkdirAll(o.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if o.Info {
		if err := report.WriteScenario(stdout, setup); err != nil {
			return err
		}
	}

	if o.Sweep > 0 {
		return runSweep(ctx, o, scn, setup, out, stdout, logger)
	}

	rec, err := metrics.Default()
	if err != nil {
		return err
	}
	eng, err := sim.New(setup, sweep.NewRand(scn.Seed), sim.WithMetrics(rec))
	if err != nil {
		return err
	}

	logger.Info().
		Str("scenario", scn.Name).
		Uint64("seed", scn.Seed).
		Int("faces", len(setup.Faces)).
		Int("targets", len(setup.Targets)).
		Msg("starting simulation")
	started := wallClock.Now()
	res := eng.Run()

	summary := report.Summarize(res)
	if err := summary.WriteText(stdout); err != nil {
		return err
	}
	return writeRunOutputs(ctx, o, scn, res, summary, started, out, logger)
}

func runSweep(ctx context.Context, o options, scn *config.Scenario, setup sim.Setup,
	out outputs, stdout io.Writer, logger zerolog.Logger) error {
	logger.Info().Str("scenario", scn.Name).Int("seeds", o.Sweep).Msg("starting sweep")

	samples, err := sweep.Run(ctx, setup, sweep.Options{
		Seeds:   sweep.SeedRange(scn.Seed, o.Sweep),
		Workers: o.Workers,
	})
	if err != nil {
		return err
	}
	if err := sweep.Summarize(samples).WriteText(stdout); err != nil {
		return err
	}
	if o.CSV {
		p, err := out.write("-sweep.csv", func(w io.Writer) error { return sweep.WriteCSV(w, samples) })
		if err != nil {
			return err
		}
		logger.Info().Str("path", p).Msg("wrote sweep samples")
	}
	return nil
}

func writeRunOutputs(ctx context.Context, o options, scn *config.Scenario, res sim.Result,
	summary report.Summary, started time.Time, out outputs, logger zerolog.Logger) error {
	files := []struct {
		enabled bool
		suffix  string
		fn      func(io.Writer) error
	}{
		{o.CSV, "-events.csv", func(w io.Writer) error { return report.WriteEventsCSV(w, res.Events) }},
		{o.SearchLog, "-search.txt", func(w io.Writer) error { return report.WriteSearchLog(w, res.Events) }},
		{o.HTML, "-detections.html", func(w io.Writer) error { return report.WriteHTML(w, scn.Name, res.Events) }},
		{o.YAML, "-scenario.yaml", scn.WriteYAML},
		{o.YAML, "-summary.yaml", summary.WriteYAML},
	}
	for _, f := range files {
		if !f.enabled {
			continue
		}
		p, err := out.write(f.suffix, f.fn)
		if err != nil {
			return err
		}
		logger.Info().Str("path", p).Msg("wrote output")
	}

	if o.Plot {
		p, err := out.path("-detections.png")
		if err != nil {
			return err
		}
		if err := report.WritePlot(p, scn.Name, res.Events); err != nil {
			return err
		}
		logger.Info().Str("path", p).Msg("wrote output")
	}

	runID := uuid.NewString()
	if o.DBPath != "" {
		counts, err := saveRun(ctx, o.DBPath, db.Run{
			ID:       runID,
			Scenario: scn.Name,
			Seed:     scn.Seed,
			Started:  started,
			Stats:    res.Stats,
		}, res.Events)
		if err != nil {
			return err
		}
		logger.Info().
			Str("run_id", runID).
			Str("db", o.DBPath).
			Int("search", counts[sim.KindSearch]).
			Int("confirm", counts[sim.KindConfirm]).
			Int("update", counts[sim.KindUpdate]).
			Int("loss", counts[sim.KindLoss]).
			Msg("stored run")
	}

	if o.Influx.URL != "" {
		sink, err := report.NewInfluxSink(ctx, o.Influx, started)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.WriteEvents(ctx, runID, res.Events); err != nil {
			return err
		}
		logger.Info().Str("run_id", runID).Int("points", len(res.Events)).Msg("exported events to InfluxDB")
	}
	return nil
}

// saveRun stores the run and returns its stored event counts by kind.
func saveRun(ctx context.Context, path string, run db.Run, events []sim.Event) (map[sim.Kind]int, error) {
	store, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.MigrateUp(); err != nil {
		return nil, err
	}
	if err := store.SaveRun(ctx, run, events); err != nil {
		return nil, err
	}
	return store.CountEvents(ctx, run.ID)
}
