package eda

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SCR lists the skin conductance responses found in a phasic signal. All
// slices are parallel and ordered by time. Indices refer to samples of the
// analysed chunk.
type SCR struct {
	Onsets []int
	Peaks  []int
	// Recovery is the half-recovery sample of each peak, or -1 when the
	// signal does not fall back to half amplitude before the next onset.
	Recovery []int
	// Height is the phasic value at the peak.
	Height []float64
	// Amplitude is the rise from onset to peak.
	Amplitude []float64
	// RiseTime is seconds from onset to peak.
	RiseTime []float64
	// RecoveryTime is seconds from peak to half recovery, NaN without one.
	RecoveryTime []float64
}

// Len returns the number of responses.
func (s SCR) Len() int { return len(s.Peaks) }

// FindPeaks locates SCRs in phasic. A response is a local maximum whose
// onset is the closest local minimum before it, never earlier than the
// previous maximum. Responses smaller than amplitudeMin times the largest
// amplitude are dropped.
func FindPeaks(phasic []float64, rate, amplitudeMin float64) SCR {
	var onsets, peaks []int
	var amps []float64

	n := len(phasic)
	prev := 0
	for i := 1; i < n-1; i++ {
		if !(phasic[i] > phasic[i-1] && phasic[i] >= phasic[i+1]) {
			continue
		}
		// the onset never reaches back past the previous local maximum
		j := i
		for j > prev && phasic[j-1] <= phasic[j] {
			j--
		}
		prev = i
		amp := phasic[i] - phasic[j]
		if amp <= 0 {
			continue
		}
		onsets = append(onsets, j)
		peaks = append(peaks, i)
		amps = append(amps, amp)
	}

	var out SCR
	if len(amps) == 0 {
		return out
	}
	limit := amplitudeMin * floats.Max(amps)
	for k := range peaks {
		if amps[k] < limit {
			continue
		}
		out.Onsets = append(out.Onsets, onsets[k])
		out.Peaks = append(out.Peaks, peaks[k])
		out.Amplitude = append(out.Amplitude, amps[k])
		out.Height = append(out.Height, phasic[peaks[k]])
		out.RiseTime = append(out.RiseTime, float64(peaks[k]-onsets[k])/rate)
	}

	out.Recovery = make([]int, len(out.Peaks))
	out.RecoveryTime = make([]float64, len(out.Peaks))
	for k, peak := range out.Peaks {
		end := n
		if k+1 < len(out.Onsets) {
			end = out.Onsets[k+1]
		}
		target := phasic[out.Onsets[k]] + out.Amplitude[k]/2

		out.Recovery[k] = -1
		out.RecoveryTime[k] = math.NaN()
		for i := peak + 1; i < end; i++ {
			if phasic[i] <= target {
				out.Recovery[k] = i
				out.RecoveryTime[k] = float64(i-peak) / rate
				break
			}
		}
	}
	return out
}
