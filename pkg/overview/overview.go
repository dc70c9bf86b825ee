// Package overview renders a single-strip chart of a whole recording in
// seconds, with unlabelled time shaded and regions annotated.
package overview

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/yeonchae62/REU-Project/pkg/figure"
)

const (
	DefaultWidth  = 1500
	DefaultHeight = 500
)

// ErrTooShort is returned for a strip with fewer than two samples.
var ErrTooShort = errors.New("overview: need at least two samples")

var (
	colorSignal  = drawing.ColorFromHex("735a8f")
	colorIgnored = drawing.Color{A: 166}
)

// Overview is a strip chart. Seconds and Regions are seconds from the
// start of the recording.
type Overview struct {
	Title   string
	Seconds []float64
	Values  []float64
	Regions []figure.Region
	Width   int
	Height  int
}

// Chart builds the go-chart description of o.
func (o Overview) Chart() (chart.Chart, error) {
	if len(o.Seconds) < 2 || len(o.Seconds) != len(o.Values) {
		return chart.Chart{}, ErrTooShort
	}
	width, height := o.Width, o.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	ymin, ymax := floats.Min(o.Values), floats.Max(o.Values)
	if pad := (ymax - ymin) * 0.05; pad > 0 {
		ymin, ymax = ymin-pad, ymax+pad
	} else {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	start, end := o.Seconds[0], o.Seconds[len(o.Seconds)-1]

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "EDA",
			XValues: o.Seconds,
			YValues: o.Values,
			Style:   chart.Style{StrokeColor: colorSignal, StrokeWidth: 1},
		},
	}
	if len(o.Regions) > 0 {
		for _, span := range figure.IgnoredSpans(start, end, o.Regions) {
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{span[0], span[1]},
				YValues: []float64{ymax, ymax},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					FillColor:   colorIgnored,
				},
			})
		}
		labels := chart.AnnotationSeries{}
		for _, r := range o.Regions {
			labels.Annotations = append(labels.Annotations, chart.Value2{
				XValue: (r.Start + r.End) / 2,
				YValue: ymin,
				Label:  r.Label,
			})
		}
		series = append(series, labels)
	}

	return chart.Chart{
		Title:  o.Title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "Time (seconds)",
			Range: &chart.ContinuousRange{Min: start, Max: end},
		},
		YAxis: chart.YAxis{
			Name:  "Signal strength",
			Range: &chart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}, nil
}

// Render writes o as a PNG to w.
func Render(w io.Writer, o Overview) error {
	c, err := o.Chart()
	if err != nil {
		return err
	}
	return c.Render(chart.PNG, w)
}

// Save writes o as a PNG file at path.
func Save(path string, o Overview) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(file, o); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return file.Close()
}
