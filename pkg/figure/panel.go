package figure

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorRaw      = rgb(0xB0, 0xBE, 0xC5)
	colorClean    = rgb(0x9C, 0x27, 0xB0)
	colorPhasic   = rgb(0xE9, 0x1E, 0x63)
	colorOnset    = rgb(0xFF, 0xA7, 0x26)
	colorPeak     = rgb(0x19, 0x76, 0xD2)
	colorRecovery = rgb(0xFD, 0xD8, 0x35)
	colorTonic    = rgb(0x67, 0x3A, 0xB7)
	colorIgnored  = color.NRGBA{A: 166}
)

func rgb(r, g, b uint8) color.Color { return color.NRGBA{R: r, G: g, B: b, A: 0xff} }

// panel is one subplot that tracks the y extent of what it holds and only
// lists each legend name once.
type panel struct {
	*plot.Plot
	seen       map[string]bool
	ymin, ymax float64
}

func newPanel(title string) *panel {
	p := plot.New()
	p.Title.Text = title
	p.Legend.Top = true
	p.Legend.Left = false
	p.Add(plotter.NewGrid())
	return &panel{Plot: p, seen: map[string]bool{}, ymin: math.Inf(1), ymax: math.Inf(-1)}
}

func (p *panel) legend(name string, th plot.Thumbnailer) {
	if name == "" || p.seen[name] {
		return
	}
	p.seen[name] = true
	p.Legend.Add(name, th)
}

func (p *panel) extend(y []float64) {
	if len(y) == 0 {
		return
	}
	p.ymin = math.Min(p.ymin, floats.Min(y))
	p.ymax = math.Max(p.ymax, floats.Max(y))
}

func (p *panel) line(x, y []float64, c color.Color, width vg.Length, name string) error {
	if len(x) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	p.Add(l)
	p.legend(name, l)
	p.extend(y)
	return nil
}

func (p *panel) markers(x, y []float64, idx []int, c color.Color, name string) error {
	var pts plotter.XYs
	for _, i := range idx {
		if i >= 0 && i < len(x) {
			pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	p.legend(name, s)
	return nil
}

// finish fixes the axes to [xmin, xmax] and the padded y extent, then
// shades ignored spans and labels regions. It must run after every data
// plotter has been added.
func (p *panel) finish(xmin, xmax float64, regions []Region, tick plot.Ticker) error {
	ymin, ymax := p.ymin, p.ymax
	if math.IsInf(ymin, 0) || math.IsInf(ymax, 0) {
		ymin, ymax = 0, 1
	}
	if pad := (ymax - ymin) * 0.05; pad > 0 {
		ymin, ymax = ymin-pad, ymax+pad
	} else {
		ymin, ymax = ymin-0.5, ymax+0.5
	}

	p.X.Tick.Marker = tick
	p.X.Tick.Label.Rotation = 25 * math.Pi / 180
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	if len(regions) > 0 {
		for _, span := range IgnoredSpans(xmin, xmax, regions) {
			poly, err := plotter.NewPolygon(plotter.XYs{
				{X: span[0], Y: ymin}, {X: span[1], Y: ymin},
				{X: span[1], Y: ymax}, {X: span[0], Y: ymax},
			})
			if err != nil {
				return err
			}
			poly.Color = colorIgnored
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
		if err := p.regionLabels(regions, ymin); err != nil {
			return err
		}
	}

	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	return nil
}

func (p *panel) regionLabels(regions []Region, y float64) error {
	var (
		names     plotter.XYLabels
		edges     plotter.XYLabels
		edgeLabel = tickLocation(p.X.Tick.Marker)
	)
	for _, r := range regions {
		names.XYs = append(names.XYs, plotter.XY{X: (r.Start + r.End) / 2, Y: y})
		names.Labels = append(names.Labels, r.Label)
		for _, t := range []float64{r.Start, r.End} {
			edges.XYs = append(edges.XYs, plotter.XY{X: t, Y: y})
			edges.Labels = append(edges.Labels, edgeLabel(t))
		}
	}

	nl, err := plotter.NewLabels(names)
	if err != nil {
		return err
	}
	nl.Offset = vg.Point{Y: vg.Points(10)}
	for i := range nl.TextStyle {
		nl.TextStyle[i].XAlign = text.XCenter
		nl.TextStyle[i].YAlign = text.YBottom
		nl.TextStyle[i].Font.Size = vg.Points(10)
	}

	el, err := plotter.NewLabels(edges)
	if err != nil {
		return err
	}
	for i := range el.TextStyle {
		el.TextStyle[i].XAlign = text.XCenter
		el.TextStyle[i].YAlign = text.YBottom
		el.TextStyle[i].Font.Size = vg.Points(8)
	}

	p.Add(nl, el)
	return nil
}

// tickLocation formats edge labels the way the axis formats ticks.
func tickLocation(m plot.Ticker) func(float64) string {
	if tt, ok := m.(plot.TimeTicks); ok && tt.Time != nil {
		return func(v float64) string { return tt.Time(v).Format(timeOnly) }
	}
	return func(v float64) string { return plotFloat(v) }
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
