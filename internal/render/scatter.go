// Package render draws accident location maps.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/marioles/courserafars/internal/domain"
)

// Options controls plot geometry.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions is a square six-inch canvas.
func DefaultOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 6 * vg.Inch}
}

// StateScatter renders a base map scaled to the records' coordinate extent
// and overlays one marker per located record, PNG-encoded to w. Records
// without a reported location are skipped; at least one located record is
// required.
func StateScatter(w io.Writer, records []domain.AccidentRecord, title string, opts Options) error {
	pts := make(plotter.XYs, 0, len(records))
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	for _, rec := range records {
		if !rec.HasLocation() {
			continue
		}
		lon, lat := *rec.Lon, *rec.Lat
		pts = append(pts, plotter.XY{X: lon, Y: lat})
		minLon, maxLon = math.Min(minLon, lon), math.Max(maxLon, lon)
		minLat, maxLat = math.Min(minLat, lat), math.Max(maxLat, lat)
	}
	if len(pts) == 0 {
		return errors.New("no located records to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.X.Min, p.X.Max = pad(minLon, maxLon)
	p.Y.Min, p.Y.Max = pad(minLat, maxLat)
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(scatter)

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

// pad widens a coordinate range by 2% so edge points are not drawn on the
// frame. A degenerate range (single point) gets a half-degree pad.
func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 0.5, hi + 0.5
	}
	margin := span * 0.02
	return lo - margin, hi + margin
}
