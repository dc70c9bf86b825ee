package eda

import (
	"math"

	"github.com/yeonchae62/REU-Project/pkg/stats"
)

// Summary describes EDA over an interval.
type Summary struct {
	Samples  int
	Duration float64 // seconds
	SCRCount int
	// SCRPerMinute is SCRCount normalised by Duration.
	SCRPerMinute     float64
	AmplitudeMean    float64
	RiseTimeMean     float64
	RecoveryTimeMean float64
	SCLMean          float64
	SCLStd           float64
	SCLMedian        float64
	SCLMin, SCLMax   float64
}

// Window selects samples [From, To) of an analysis.
type Window struct {
	Analysis *Analysis
	From, To int
}

// Summarize summarises a whole analysis.
func Summarize(a *Analysis) Summary {
	return SummarizeWindows(Window{Analysis: a, From: 0, To: a.Len()})
}

// SummarizeWindows summarises several windows as one interval. An SCR
// belongs to the window that holds its peak. Means over no values are NaN.
func SummarizeWindows(windows ...Window) Summary {
	var (
		s                Summary
		amps, rises, rec []float64
		tonic            []float64
	)
	for _, w := range windows {
		a := w.Analysis
		from, to := max(w.From, 0), min(w.To, a.Len())
		if from >= to {
			continue
		}
		s.Samples += to - from
		s.Duration += float64(to-from) / a.SamplingRate
		tonic = append(tonic, a.Tonic[from:to]...)

		for k, peak := range a.SCR.Peaks {
			if peak < from || peak >= to {
				continue
			}
			s.SCRCount++
			amps = append(amps, a.SCR.Amplitude[k])
			rises = append(rises, a.SCR.RiseTime[k])
			if !math.IsNaN(a.SCR.RecoveryTime[k]) {
				rec = append(rec, a.SCR.RecoveryTime[k])
			}
		}
	}

	if s.Duration > 0 {
		s.SCRPerMinute = float64(s.SCRCount) / (s.Duration / 60)
	}
	s.AmplitudeMean = meanOrNaN(amps)
	s.RiseTimeMean = meanOrNaN(rises)
	s.RecoveryTimeMean = meanOrNaN(rec)
	s.SCLMean = meanOrNaN(tonic)
	s.SCLStd, s.SCLMedian = math.NaN(), math.NaN()
	s.SCLMin, s.SCLMax = math.NaN(), math.NaN()
	if len(tonic) > 0 {
		s.SCLStd = stats.Std(tonic)
		s.SCLMedian = stats.Median(tonic)
		s.SCLMin, s.SCLMax = stats.MinMax(tonic)
	}
	return s
}

func meanOrNaN(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stats.Mean(x)
}
