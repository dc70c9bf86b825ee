package eda

import (
	"fmt"
	"math"
	"slices"

	"github.com/jfcg/butter"
)

// butter accepts normalised cutoffs strictly inside (minWc, maxWc) rad/sample.
const (
	minWc = 1e-4
	maxWc = math.Pi
)

type stepper interface {
	Next(float64) float64
}

// section builds one second-order Butterworth section, or nil when wc is
// unusable.
type section func(wc float64) stepper

func lowPass2(wc float64) stepper {
	if f := butter.NewLowPass2(wc); f != nil {
		return f
	}
	return nil
}

func highPass2(wc float64) stepper {
	if f := butter.NewHighPass2(wc); f != nil {
		return f
	}
	return nil
}

// normalizedCutoff converts a cutoff in Hz to rad/sample.
func normalizedCutoff(cutoffHz, rate float64) float64 {
	return 2 * math.Pi * cutoffHz / rate
}

// filtfilt runs x through sections cascaded copies of design, forward and
// then backward, so the result has no phase lag. Each pass starts from the
// steady state of its first input sample.
func filtfilt(x []float64, rate, cutoffHz float64, sections int, design section) ([]float64, error) {
	wc := normalizedCutoff(cutoffHz, rate)
	if !(wc > minWc && wc < maxWc) {
		return nil, fmt.Errorf("%w: %g Hz at %g Hz", ErrCutoff, cutoffHz, rate)
	}

	out := slices.Clone(x)
	if len(out) == 0 {
		return out, nil
	}

	settle := int(math.Ceil(8 * math.Pi / wc))
	for pass := 0; pass < 2; pass++ {
		for s := 0; s < sections; s++ {
			f := design(wc)
			if f == nil {
				return nil, fmt.Errorf("%w: %g Hz at %g Hz", ErrCutoff, cutoffHz, rate)
			}
			for i := 0; i < settle; i++ {
				f.Next(out[0])
			}
			for i, v := range out {
				out[i] = f.Next(v)
			}
		}
		slices.Reverse(out)
	}
	return out, nil
}
