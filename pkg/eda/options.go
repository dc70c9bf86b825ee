// Package eda analyses electrodermal activity: it cleans the raw skin
// conductance signal, separates the slow tonic level (SCL) from the phasic
// response (SCR), and locates SCR onsets, peaks and half-recovery points.
package eda

import (
	"errors"
	"fmt"
)

// Method selects how the cleaned signal is split into tonic and phasic parts.
type Method string

const (
	// MethodHighpass takes the tonic part from a low-pass filter and the
	// phasic part from the complementary high-pass filter.
	MethodHighpass Method = "highpass"
	// MethodMedian takes the tonic part as a running median and the phasic
	// part as the residual.
	MethodMedian Method = "median"
)

var (
	ErrEmptySignal  = errors.New("eda: empty signal")
	ErrSamplingRate = errors.New("eda: sampling rate must be positive")
	ErrCutoff       = errors.New("eda: cutoff frequency out of range for sampling rate")
	ErrMethod       = errors.New("eda: unknown decomposition method")
)

// Options tunes the analysis. The zero value of any field means "default".
type Options struct {
	// CleanCutoffHz is the low-pass cutoff applied to the raw signal.
	CleanCutoffHz float64 `yaml:"clean_cutoff_hz"`
	Method        Method  `yaml:"method"`
	// TonicCutoffHz separates tonic from phasic for MethodHighpass.
	TonicCutoffHz float64 `yaml:"tonic_cutoff_hz"`
	// MedianWindow is the running-median width in seconds for MethodMedian.
	MedianWindow float64 `yaml:"median_window"`
	// AmplitudeMin drops SCRs smaller than this fraction of the largest one.
	AmplitudeMin float64 `yaml:"amplitude_min"`
	// ClipLower and ClipUpper winsorise the raw signal to these percentiles
	// before cleaning. A zero ClipUpper disables clipping.
	ClipLower float64 `yaml:"clip_lower,omitempty"`
	ClipUpper float64 `yaml:"clip_upper,omitempty"`
}

// Clipping reports whether the raw signal is winsorised.
func (o Options) Clipping() bool { return o.ClipUpper > 0 }

// DefaultOptions returns the stock analysis settings.
func DefaultOptions() Options {
	return Options{
		CleanCutoffHz: 3,
		Method:        MethodHighpass,
		TonicCutoffHz: 0.05,
		MedianWindow:  4,
		AmplitudeMin:  0.1,
	}
}

// WithDefaults fills unset fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.CleanCutoffHz == 0 {
		o.CleanCutoffHz = d.CleanCutoffHz
	}
	if o.Method == "" {
		o.Method = d.Method
	}
	if o.TonicCutoffHz == 0 {
		o.TonicCutoffHz = d.TonicCutoffHz
	}
	if o.MedianWindow == 0 {
		o.MedianWindow = d.MedianWindow
	}
	if o.AmplitudeMin == 0 {
		o.AmplitudeMin = d.AmplitudeMin
	}
	return o
}

// Validate reports options that can never work.
func (o Options) Validate() error {
	var errs []error
	if o.CleanCutoffHz < 0 {
		errs = append(errs, fmt.Errorf("clean_cutoff_hz must be positive, got %g", o.CleanCutoffHz))
	}
	if o.TonicCutoffHz < 0 {
		errs = append(errs, fmt.Errorf("tonic_cutoff_hz must be positive, got %g", o.TonicCutoffHz))
	}
	if o.MedianWindow < 0 {
		errs = append(errs, fmt.Errorf("median_window must be positive, got %g", o.MedianWindow))
	}
	if o.AmplitudeMin < 0 || o.AmplitudeMin > 1 {
		errs = append(errs, fmt.Errorf("amplitude_min must be within [0, 1], got %g", o.AmplitudeMin))
	}
	if o.ClipLower < 0 || o.ClipUpper > 100 || (o.Clipping() && o.ClipLower >= o.ClipUpper) {
		errs = append(errs, fmt.Errorf("clip percentiles must satisfy 0 <= clip_lower < clip_upper <= 100, got %g and %g", o.ClipLower, o.ClipUpper))
	}
	switch o.Method {
	case "", MethodHighpass, MethodMedian:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrMethod, o.Method))
	}
	return errors.Join(errs...)
}
