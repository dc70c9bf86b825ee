package eda

import (
	"fmt"
	"math"
	"sort"
)

// Decompose splits a cleaned signal into its tonic and phasic parts.
func Decompose(clean []float64, rate float64, opts Options) (tonic, phasic []float64, err error) {
	if rate <= 0 {
		return nil, nil, ErrSamplingRate
	}
	opts = opts.WithDefaults()

	switch opts.Method {
	case MethodHighpass:
		tonic, err = filtfilt(clean, rate, opts.TonicCutoffHz, 1, lowPass2)
		if err != nil {
			return nil, nil, fmt.Errorf("tonic: %w", err)
		}
		phasic, err = filtfilt(clean, rate, opts.TonicCutoffHz, 1, highPass2)
		if err != nil {
			return nil, nil, fmt.Errorf("phasic: %w", err)
		}
		return tonic, phasic, nil

	case MethodMedian:
		width := int(math.Round(opts.MedianWindow * rate))
		tonic = RunningMedian(clean, width)
		phasic = make([]float64, len(clean))
		for i := range clean {
			phasic[i] = clean[i] - tonic[i]
		}
		return tonic, phasic, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrMethod, opts.Method)
}

// RunningMedian returns the median of a window of width samples centred on
// each sample. The window is truncated at both ends of x.
func RunningMedian(x []float64, width int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	half := width / 2
	if half < 0 {
		half = 0
	}

	// window holds x[lo:hi] in sorted order.
	window := make([]float64, 0, 2*half+1)
	lo, hi := 0, 0
	for i := range x {
		for hi < len(x) && hi <= i+half {
			v := x[hi]
			at := sort.SearchFloat64s(window, v)
			window = append(window, 0)
			copy(window[at+1:], window[at:])
			window[at] = v
			hi++
		}
		for lo < i-half {
			at := sort.SearchFloat64s(window, x[lo])
			window = append(window[:at], window[at+1:]...)
			lo++
		}
		out[i] = sortedMedian(window)
	}
	return out
}

func sortedMedian(s []float64) float64 {
	n := len(s)
	mid := n >> 1
	if n&1 == 0 {
		return (s[mid-1] + s[mid]) * 0.5
	}
	return s[mid]
}
