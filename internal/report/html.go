package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/units"
)

// WriteHTML renders an interactive scatter of azimuth against simulated
// time with one series per event kind.
func WriteHTML(w io.Writer, title string, events []sim.Event) error {
	series := make(map[sim.Kind][]opts.ScatterData)
	for _, ev := range events {
		series[ev.Kind] = append(series[ev.Kind], opts.ScatterData{
			Value: []interface{}{units.SecondsToMinutes(ev.Time), ev.Azimuth, ev.Elevation, ev.SNR},
			Name:  fmt.Sprintf("target %d face %d", ev.Target, ev.Face),
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("events=%d", len(events))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (min)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 360, Name: "Azimuth (deg)", NameLocation: "middle", NameGap: 35}),
	)

	for _, ks := range kindStyles {
		data := series[ks.kind]
		if len(data) == 0 {
			continue
		}
		scatter.AddSeries(string(ks.kind), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
