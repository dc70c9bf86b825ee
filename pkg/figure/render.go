package figure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/yeonchae62/REU-Project/pkg/segment"
)

const (
	DefaultWidth  = 15 * vg.Inch
	DefaultHeight = 9 * vg.Inch

	tickFormat = "2006-01-02 15:04:05"
	timeOnly   = "15:04:05"
	titleSpace = 28
)

func plotFloat(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// Panels builds the three subplots of f with a shared time axis.
func Panels(f Figure) ([]*plot.Plot, error) {
	xmin, xmax, err := f.Span()
	if err != nil {
		return nil, err
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}

	raw := newPanel("Raw and Cleaned Signal")
	scr := newPanel("Skin Conductance Response (SCR)")
	scl := newPanel("Skin Conductance Level (SCL)")

	for _, tr := range f.Traces {
		a := tr.Analysis
		if a == nil || len(tr.X) == 0 {
			continue
		}
		if len(tr.X) != a.Len() {
			return nil, fmt.Errorf("trace has %d times for %d samples", len(tr.X), a.Len())
		}
		if err := raw.line(tr.X, a.Raw, colorRaw, vg.Points(1), "Raw"); err != nil {
			return nil, err
		}
		if err := raw.line(tr.X, a.Clean, colorClean, vg.Points(1.5), "Cleaned"); err != nil {
			return nil, err
		}
		if err := scr.line(tr.X, a.Phasic, colorPhasic, vg.Points(1.5), "Phasic Component"); err != nil {
			return nil, err
		}
		scr.Add(responseSegments(tr.X, a.Phasic, a.SCR.Onsets, a.SCR.Peaks, a.SCR.Recovery)...)
		if err := scr.markers(tr.X, a.Phasic, a.SCR.Onsets, colorOnset, "SCR - Onsets"); err != nil {
			return nil, err
		}
		if err := scr.markers(tr.X, a.Phasic, a.SCR.Peaks, colorPeak, "SCR - Peaks"); err != nil {
			return nil, err
		}
		if err := scr.markers(tr.X, a.Phasic, a.SCR.Recovery, colorRecovery, "SCR - Half recovery"); err != nil {
			return nil, err
		}
		if err := scl.line(tr.X, a.Tonic, colorTonic, vg.Points(1.5), "Tonic Component"); err != nil {
			return nil, err
		}
	}

	ticks := plot.TimeTicks{
		Format: tickFormat,
		Time:   func(t float64) time.Time { return segment.MicrosTime(t, loc) },
	}
	panels := []*panel{raw, scr, scl}
	for _, p := range panels {
		p.Y.Label.Text = "µS"
		if err := p.finish(xmin, xmax, f.Regions, ticks); err != nil {
			return nil, err
		}
	}
	scl.X.Label.Text = "Time"

	return []*plot.Plot{raw.Plot, scr.Plot, scl.Plot}, nil
}

// responseSegments draws rise time, amplitude and half recovery for each
// response.
func responseSegments(x, y []float64, onsets, peaks, recovery []int) []plot.Plotter {
	dashed := []vg.Length{vg.Points(4), vg.Points(2)}
	rise := &segments{LineStyle: draw.LineStyle{Color: colorOnset, Width: vg.Points(1), Dashes: dashed}}
	amp := &segments{LineStyle: draw.LineStyle{Color: colorPeak, Width: vg.Points(1)}}
	half := &segments{LineStyle: draw.LineStyle{Color: colorRecovery, Width: vg.Points(1), Dashes: dashed}}

	for i := range peaks {
		on, pk := onsets[i], peaks[i]
		rise.add(x[on], y[on], x[pk], y[on])
		amp.add(x[pk], y[on], x[pk], y[pk])
		if rec := recovery[i]; rec >= 0 {
			half.add(x[pk], y[rec], x[rec], y[rec])
		}
	}
	return []plot.Plotter{rise, amp, half}
}

// segments is a plotter for unconnected straight lines.
type segments struct {
	draw.LineStyle
	lines [][2]plotter.XY
}

func (s *segments) add(x0, y0, x1, y1 float64) {
	s.lines = append(s.lines, [2]plotter.XY{{X: x0, Y: y0}, {X: x1, Y: y1}})
}

// Plot implements plot.Plotter.
func (s *segments) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, l := range s.lines {
		pts := []vg.Point{
			{X: trX(l[0].X), Y: trY(l[0].Y)},
			{X: trX(l[1].X), Y: trY(l[1].Y)},
		}
		c.StrokeLines(s.LineStyle, c.ClipLinesXY(pts)...)
	}
}

// Render draws f into w in the given format: png, jpg, svg or pdf.
func Render(w io.Writer, format string, f Figure, width, height vg.Length) error {
	panels, err := Panels(f)
	if err != nil {
		return err
	}
	c, out, err := newCanvas(format, width, height)
	if err != nil {
		return err
	}

	dc := draw.New(c)
	body := dc
	if f.Title != "" {
		sty := panels[0].Title.TextStyle
		sty.Font.Size = vg.Points(16)
		sty.XAlign = text.XCenter
		sty.YAlign = text.YTop
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(6)}, f.Title)
		body = draw.Crop(dc, 0, 0, 0, -vg.Points(titleSpace))
	}

	grid := [][]*plot.Plot{{panels[0]}, {panels[1]}, {panels[2]}}
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      1,
		PadY:      vg.Points(14),
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(16),
	}
	canvases := plot.Align(grid, tiles, body)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	_, err = out.WriteTo(w)
	return err
}

// Save renders f to path, choosing the format from the file extension.
func Save(path string, f Figure, width, height vg.Length) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if !Supported(format) {
		return fmt.Errorf("unsupported image format %q", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(file, format, f, width, height); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return file.Close()
}

// Supported reports whether Render can write format.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg", "svg", "pdf":
		return true
	}
	return false
}

func newCanvas(format string, w, h vg.Length) (vg.CanvasSizer, io.WriterTo, error) {
	switch strings.ToLower(format) {
	case "png":
		c := vgimg.New(w, h)
		return c, vgimg.PngCanvas{Canvas: c}, nil
	case "jpg", "jpeg":
		c := vgimg.New(w, h)
		return c, vgimg.JpegCanvas{Canvas: c}, nil
	case "svg":
		c := vgsvg.New(w, h)
		return c, c, nil
	case "pdf":
		c := vgpdf.New(w, h)
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unsupported image format %q", format)
	}
}
