package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/phasedarray/internal/sim"
	"github.com/banshee-data/phasedarray/internal/units"
)

var kindStyles = []struct {
	kind  sim.Kind
	color color.RGBA
	shape draw.GlyphDrawer
}{
	{sim.KindSearch, color.RGBA{R: 31, G: 119, B: 180, A: 255}, draw.CircleGlyph{}},
	{sim.KindConfirm, color.RGBA{R: 44, G: 160, B: 44, A: 255}, draw.TriangleGlyph{}},
	{sim.KindUpdate, color.RGBA{R: 255, G: 127, B: 14, A: 255}, draw.BoxGlyph{}},
	{sim.KindLoss, color.RGBA{R: 214, G: 39, B: 40, A: 255}, draw.CrossGlyph{}},
}

// eventPoints groups event time (minutes) against azimuth by kind.
func eventPoints(events []sim.Event) map[sim.Kind]plotter.XYs {
	pts := make(map[sim.Kind]plotter.XYs)
	for _, ev := range events {
		pts[ev.Kind] = append(pts[ev.Kind], plotter.XY{X: units.SecondsToMinutes(ev.Time), Y: ev.Azimuth})
	}
	return pts
}

// WritePlot saves a scatter of azimuth against simulated time, one series
// per event kind. The image format follows the file extension.
func WritePlot(path, title string, events []sim.Event) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (min)"
	p.Y.Label.Text = "Azimuth (deg)"
	p.Y.Min = 0
	p.Y.Max = 360
	p.Add(plotter.NewGrid())

	pts := eventPoints(events)
	for _, ks := range kindStyles {
		xys := pts[ks.kind]
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build %s series: %w", ks.kind, err)
		}
		sc.GlyphStyle.Color = ks.color
		sc.GlyphStyle.Shape = ks.shape
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(string(ks.kind), sc)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
