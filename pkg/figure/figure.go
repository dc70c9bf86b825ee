// Package figure draws the three-panel EDA figure: raw and cleaned signal,
// skin conductance response with its features, and skin conductance level.
package figure

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"github.com/yeonchae62/REU-Project/pkg/eda"
)

// ErrEmpty is returned when a figure has nothing to draw.
var ErrEmpty = errors.New("figure: no traces")

// Region marks a labelled time range. Times are microseconds since the
// Unix epoch, or seconds for overview strips.
type Region struct {
	Start float64
	End   float64
	Label string
}

// Trace is one analysed chunk and the sample times of its values.
type Trace struct {
	X        []float64
	Analysis *eda.Analysis
}

// Figure is everything drawn on one image.
type Figure struct {
	Title   string
	Traces  []Trace
	Regions []Region
	// Location is used for tick labels; nil means local time.
	Location *time.Location
}

// Span returns the first and last sample time over all traces.
func (f Figure) Span() (start, end float64, err error) {
	var n int
	for _, tr := range f.Traces {
		if len(tr.X) == 0 {
			continue
		}
		if n == 0 || tr.X[0] < start {
			start = tr.X[0]
		}
		if n == 0 || tr.X[len(tr.X)-1] > end {
			end = tr.X[len(tr.X)-1]
		}
		n++
	}
	if n == 0 {
		return 0, 0, ErrEmpty
	}
	return start, end, nil
}

// IgnoredSpans returns the parts of [start, end] that no region covers, in
// time order. Regions are clipped to [start, end] and may overlap.
func IgnoredSpans(start, end float64, regions []Region) [][2]float64 {
	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b Region) int { return cmp.Compare(a.Start, b.Start) })

	var out [][2]float64
	cursor := start
	for _, r := range sorted {
		if r.End < start || r.Start > end || r.End < r.Start {
			continue
		}
		lo, hi := max(r.Start, start), min(r.End, end)
		if lo > cursor {
			out = append(out, [2]float64{cursor, lo})
		}
		cursor = max(cursor, hi)
	}
	if cursor < end {
		out = append(out, [2]float64{cursor, end})
	}
	return out
}
