package eda

import (
	"fmt"

	"github.com/yeonchae62/REU-Project/pkg/pipeline"
	"github.com/yeonchae62/REU-Project/pkg/stats"
)

// Analysis is the result of processing one chunk of EDA.
type Analysis struct {
	SamplingRate float64
	Raw          []float64
	Clean        []float64
	Tonic        []float64
	Phasic       []float64
	SCR          SCR
	// Filtered is false when the sampling rate was too low to clean.
	Filtered bool
}

// Len returns the number of samples.
func (a *Analysis) Len() int { return len(a.Raw) }

// Steps returns the processing pipeline for opts.
func Steps(opts Options) *pipeline.Pipeline[*Analysis] {
	opts = opts.WithDefaults()
	p := pipeline.New[*Analysis]()
	if opts.Clipping() {
		// clipped samples go to Clean so Raw stays as recorded
		p = p.Then(pipeline.StepFunc[*Analysis]{Label: "clip", Fn: func(a *Analysis) error {
			a.Clean = stats.Clip(a.Raw, opts.ClipLower, opts.ClipUpper)
			return nil
		}})
	}
	return p.Then(
		pipeline.StepFunc[*Analysis]{Label: "clean", Fn: func(a *Analysis) (err error) {
			src := a.Raw
			if a.Clean != nil {
				src = a.Clean
			}
			a.Clean, a.Filtered, err = Clean(src, a.SamplingRate, opts.CleanCutoffHz)
			return err
		}},
		pipeline.StepFunc[*Analysis]{Label: "decompose", Fn: func(a *Analysis) (err error) {
			a.Tonic, a.Phasic, err = Decompose(a.Clean, a.SamplingRate, opts)
			return err
		}},
		pipeline.StepFunc[*Analysis]{Label: "peaks", Fn: func(a *Analysis) error {
			a.SCR = FindPeaks(a.Phasic, a.SamplingRate, opts.AmplitudeMin)
			return nil
		}},
	)
}

// Process cleans, decomposes and finds SCRs in raw sampled at rate Hz.
func Process(raw []float64, rate float64, opts Options) (*Analysis, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySignal
	}
	if rate <= 0 {
		return nil, ErrSamplingRate
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a := &Analysis{SamplingRate: rate, Raw: raw}
	if err := Steps(opts).Run(a); err != nil {
		return nil, fmt.Errorf("process %d samples at %.3g Hz: %w", len(raw), rate, err)
	}
	return a, nil
}
