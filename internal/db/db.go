// Package db stores finished simulation runs and their detection events in
// SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/phasedarray/internal/sim"
)

type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path. Call MigrateUp before use.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps the pragmas in force for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}
	return &DB{db}, nil
}

// Run is one stored simulation run.
type Run struct {
	ID       string
	Scenario string
	Seed     uint64
	Started  time.Time
	Stats    sim.Stats
}

// SaveRun writes the run row and all its events in one transaction.
func (db *DB) SaveRun(ctx context.Context, run Run, events []sim.Event) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s := run.Stats
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
			run_id, scenario, seed, started_unix_ns, end_time_s, frames,
			search_hits, confirmations, track_updates, losses
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Scenario, int64(run.Seed), run.Started.UnixNano(), s.EndTime, s.Frames,
		s.SearchHits, s.Confirmations, s.TrackUpdates, s.Losses,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO detection_events (
			run_id, seq, kind, time_s, azimuth_deg, elevation_deg,
			face, sector, snr_db, target_id, track_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			run.ID, ev.Seq, string(ev.Kind), ev.Time, ev.Azimuth, ev.Elevation,
			ev.Face, ev.Sector, ev.SNR, ev.Target, ev.Track,
		); err != nil {
			return fmt.Errorf("failed to insert event %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// Runs lists stored runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, scenario, seed, started_unix_ns, end_time_s, frames,
			search_hits, confirmations, track_updates, losses
		FROM runs ORDER BY started_unix_ns, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			seed    int64
			started int64
		)
		if err := rows.Scan(&r.ID, &r.Scenario, &seed, &started, &r.Stats.EndTime, &r.Stats.Frames,
			&r.Stats.SearchHits, &r.Stats.Confirmations, &r.Stats.TrackUpdates, &r.Stats.Losses); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Started = time.Unix(0, started).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Events returns the events of one run in emission order.
func (db *DB) Events(ctx context.Context, runID string) ([]sim.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT seq, kind, time_s, azimuth_deg, elevation_deg, face, sector, snr_db, target_id, track_id
		FROM detection_events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sim.Event
	for rows.Next() {
		var (
			ev   sim.Event
			kind string
		)
		if err := rows.Scan(&ev.Seq, &kind, &ev.Time, &ev.Azimuth, &ev.Elevation,
			&ev.Face, &ev.Sector, &ev.SNR, &ev.Target, &ev.Track); err != nil {
			return nil, err
		}
		ev.Kind = sim.Kind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountEvents counts a run's events by kind.
func (db *DB) CountEvents(ctx context.Context, runID string) (map[sim.Kind]int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM detection_events WHERE run_id = ? GROUP BY kind`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[sim.Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[sim.Kind(kind)] = n
	}
	return counts, rows.Err()
}
