package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/units"
)

var csvHeader = []string{
	"seq", "kind", "time_s", "azimuth_deg", "elevation_deg",
	"face", "sector", "snr_db", "target", "track",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteEventsCSV writes one row per event with a header row.
func WriteEventsCSV(w io.Writer, events []sim.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{
			strconv.Itoa(ev.Seq),
			string(ev.Kind),
			formatFloat(ev.Time),
			formatFloat(ev.Azimuth),
			formatFloat(ev.Elevation),
			strconv.Itoa(ev.Face),
			strconv.Itoa(ev.Sector),
			formatFloat(ev.SNR),
			strconv.Itoa(ev.Target),
			ev.Track,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write event %d: %w", ev.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSearchLog writes the search hits in the plain-text detection log
// format, one line per hit:
//
//	Detection(az,el) at: t mins on, face f-> sector s
func WriteSearchLog(w io.Writer, events []sim.Event) error {
	for _, ev := range events {
		if ev.Kind != sim.KindSearch {
			continue
		}
		if _, err := fmt.Fprintf(w, "Detection(%g,%g) at: %gmins on, face %d-> sector %d\n",
			ev.Azimuth, ev.Elevation, units.SecondsToMinutes(ev.Time), ev.Face, ev.Sector); err != nil {
			return err
		}
	}
	return nil
}
