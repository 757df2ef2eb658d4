package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default canvas size of rendered charts
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

var seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Series is a labelled sequence of values plotted against nominal X labels
type Series struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

func (s Series) validate() error {
	if len(s.Values) == 0 {
		return fmt.Errorf("chart %q has no data points", s.Title)
	}
	if len(s.Labels) != len(s.Values) {
		return fmt.Errorf("chart %q has %d labels for %d values", s.Title, len(s.Labels), len(s.Values))
	}
	return nil
}

func newPlot(s Series) *plot.Plot {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	p.NominalX(s.Labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p
}

// LinePNG renders the series as a line chart with point markers
func LinePNG(s Series) ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	p := newPlot(s)

	pts := make(plotter.XYs, len(s.Values))
	for i, v := range s.Values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build line series: %w", err)
	}
	line.Color = seriesColor
	points.Color = seriesColor
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	return encodePNG(p)
}

// BarPNG renders the series as a bar chart
func BarPNG(s Series) ([]byte, error) {
	p, err := barPlot(s)
	if err != nil {
		return nil, err
	}
	return encodePNG(p)
}

// BarPanelsPNG renders each series as a bar chart, side by side on one image
func BarPanelsPNG(series ...Series) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no chart panels to render")
	}

	row := make([]*plot.Plot, len(series))
	for i, s := range series {
		p, err := barPlot(s)
		if err != nil {
			return nil, err
		}
		row[i] = p
	}

	img := vgimg.New(Width*vg.Length(len(series))/2+Width/2, Height)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(series),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, draw.New(img))
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func barPlot(s Series) (*plot.Plot, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	p := newPlot(s)

	bars, err := plotter.NewBarChart(plotter.Values(s.Values), vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar series: %w", err)
	}
	bars.Color = seriesColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	return p, nil
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
