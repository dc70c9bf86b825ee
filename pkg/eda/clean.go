package eda

import "slices"

// Clean low-passes raw with a zero-phase fourth-order Butterworth filter
// (two cascaded second-order sections) at cutoffHz. When cutoffHz is at or
// above the Nyquist frequency the signal is returned unfiltered and
// filtered is false.
func Clean(raw []float64, rate, cutoffHz float64) (clean []float64, filtered bool, err error) {
	if rate <= 0 {
		return nil, false, ErrSamplingRate
	}
	if normalizedCutoff(cutoffHz, rate) >= maxWc {
		return slices.Clone(raw), false, nil
	}
	clean, err = filtfilt(raw, rate, cutoffHz, 2, lowPass2)
	if err != nil {
		return nil, false, err
	}
	return clean, true, nil
}
