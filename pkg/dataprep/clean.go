package dataprep

import (
	"math"

	"github.com/yeonchae62/REU-Project/pkg/data"
)

// DropInvalid removes readings with a non-finite value or timestamp, and
// readings whose timestamp does not strictly increase (duplicates and
// out-of-order rows). It returns the kept readings and the number dropped.
// The input slice is not modified.
func DropInvalid(readings []data.Reading) ([]data.Reading, int) {
	out := make([]data.Reading, 0, len(readings))
	last := math.Inf(-1)
	for _, rd := range readings {
		if !finite(rd.Value) || !finite(rd.Micros) {
			continue
		}
		if rd.Micros <= last {
			continue
		}
		last = rd.Micros
		out = append(out, rd)
	}
	return out, len(readings) - len(out)
}

// FilterBounds returns the readings whose timestamp lies in [start, end].
func FilterBounds(readings []data.Reading, start, end float64) []data.Reading {
	var out []data.Reading
	for _, rd := range readings {
		if start <= rd.Micros && rd.Micros <= end {
			out = append(out, rd)
		}
	}
	return out
}

// Values returns the EDA values of readings.
func Values(readings []data.Reading) []float64 {
	out := make([]float64, len(readings))
	for i, rd := range readings {
		out[i] = rd.Value
	}
	return out
}

// Timestamps returns the timestamps of readings in microseconds.
func Timestamps(readings []data.Reading) []float64 {
	out := make([]float64, len(readings))
	for i, rd := range readings {
		out[i] = rd.Micros
	}
	return out
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
