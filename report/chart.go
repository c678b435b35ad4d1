// Package report renders confidence intervals as an error-bar chart
// and prints terminal previews of the underlying samples.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jhnwu3/Sig-GMM/stats"
)

var (
	IntervalColor  = color.RGBA{R: 0x21, G: 0x87, B: 0xbb, A: 0xff}
	MeanColor      = color.RGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	ReferenceColor = color.RGBA{R: 0x01, G: 0x32, B: 0x20, A: 0xff}
)

const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

var ErrNoPoints = errors.New("no points to plot")

// PlotPoint is one parameter's column on the chart. Reference, when
// set, is the known true value drawn next to the estimate.
type PlotPoint struct {
	Position  float64
	Label     string
	Result    stats.IntervalResult
	Reference *float64
}

// Len, XY and YError let a slice of points feed plotter.YErrorBars.
type points []PlotPoint

func (p points) Len() int { return len(p) }

func (p points) XY(i int) (float64, float64) {
	return p[i].Position, p[i].Result.Center
}

func (p points) YError(i int) (float64, float64) {
	return p[i].Result.HalfWidth, p[i].Result.HalfWidth
}

// Chart owns its plot; nothing is drawn to shared state.
type Chart struct {
	p      *plot.Plot
	Width  vg.Length
	Height vg.Length

	ticks      []plot.Tick
	references bool
}

func NewChart(title string) *Chart {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "estimate"
	p.Legend.Top = true
	return &Chart{p: p, Width: DefaultWidth, Height: DefaultHeight}
}

// Add draws an interval with caps and a mean marker for each point,
// plus a diamond for each reference value.
func (c *Chart) Add(pts ...PlotPoint) error {
	if len(pts) == 0 {
		return ErrNoPoints
	}
	bars, err := plotter.NewYErrorBars(points(pts))
	if err != nil {
		return err
	}
	bars.LineStyle.Color = IntervalColor
	bars.LineStyle.Width = vg.Points(1.5)
	bars.CapWidth = vg.Points(24)

	means, err := plotter.NewScatter(points(pts))
	if err != nil {
		return err
	}
	means.GlyphStyle = draw.GlyphStyle{
		Color:  MeanColor,
		Radius: vg.Points(3.5),
		Shape:  draw.CircleGlyph{},
	}
	c.p.Add(bars, means)
	if len(c.ticks) == 0 {
		c.p.Legend.Add("estimate", means)
	}

	var refs plotter.XYs
	for _, pt := range pts {
		if pt.Reference != nil {
			refs = append(refs, plotter.XY{X: pt.Position, Y: *pt.Reference})
		}
		c.ticks = append(c.ticks, plot.Tick{Value: pt.Position, Label: pt.Label})
		c.p.X.Min = math.Min(c.p.X.Min, pt.Position-0.5)
		c.p.X.Max = math.Max(c.p.X.Max, pt.Position+0.5)
	}
	if len(refs) > 0 {
		truth, err := plotter.NewScatter(refs)
		if err != nil {
			return err
		}
		truth.GlyphStyle = draw.GlyphStyle{
			Color:  ReferenceColor,
			Radius: vg.Points(4),
			Shape:  DiamondGlyph{},
		}
		c.p.Add(truth)
		if !c.references {
			c.p.Legend.Add("true value", truth)
			c.references = true
		}
	}
	c.p.X.Tick.Marker = plot.ConstantTicks(c.ticks)
	log.Debug().Int("points", len(pts)).Int("references", len(refs)).Msg("chart-points-added")
	return nil
}

// WriteTo encodes the chart in the given format (png, svg, pdf, jpg,
// tif, eps).
func (c *Chart) WriteTo(w io.Writer, format string) (int64, error) {
	if len(c.ticks) == 0 {
		return 0, ErrNoPoints
	}
	wt, err := c.p.WriterTo(c.Width, c.Height, format)
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

// Save writes the chart to path, choosing the format from its extension.
func (c *Chart) Save(path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("no image format in file name %q", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	n, err := c.WriteTo(f, format)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int64("bytes", n).Msg("saved-chart")
	return nil
}

// Render draws points on a fresh chart and saves it to outputPath.
func Render(pts []PlotPoint, title, outputPath string) error {
	c := NewChart(title)
	if err := c.Add(pts...); err != nil {
		return err
	}
	return c.Save(outputPath)
}

// DiamondGlyph is a filled diamond.
type DiamondGlyph struct{}

func (DiamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.SetColor(sty.Color)
	c.Fill(p)
}
