package dataprep

import (
	"github.com/yeonchae62/REU-Project/pkg/data"
	"github.com/yeonchae62/REU-Project/pkg/stats"
)

// DefaultGapSigma is how many standard deviations above the mean gap a gap
// has to be to split the recording.
const DefaultGapSigma = 3.0

// Chunk is a run of readings without a large gap.
type Chunk struct {
	Readings []data.Reading
	// SamplingRate is in Hz, estimated from the mean gap between readings.
	SamplingRate float64
}

// Start returns the timestamp of the first reading.
func (c Chunk) Start() float64 { return c.Readings[0].Micros }

// End returns the timestamp of the last reading.
func (c Chunk) End() float64 { return c.Readings[len(c.Readings)-1].Micros }

// Gaps returns the time between consecutive readings in microseconds.
func Gaps(readings []data.Reading) []float64 {
	if len(readings) < 2 {
		return nil
	}
	gaps := make([]float64, len(readings)-1)
	for i := range gaps {
		gaps[i] = readings[i+1].Micros - readings[i].Micros
	}
	return gaps
}

// SamplingRate estimates the sampling rate in Hz from the mean gap. It
// returns 0 when there are fewer than two readings.
func SamplingRate(readings []data.Reading) float64 {
	gaps := Gaps(readings)
	if len(gaps) == 0 {
		return 0
	}
	mean := stats.Mean(gaps)
	if mean <= 0 {
		return 0
	}
	return 1e6 / mean
}

// SplitOnGaps breaks readings into chunks wherever the gap between two
// readings exceeds mean + sigma*std of all gaps. A non-positive sigma uses
// DefaultGapSigma.
func SplitOnGaps(readings []data.Reading, sigma float64) []Chunk {
	if len(readings) == 0 {
		return nil
	}
	if sigma <= 0 {
		sigma = DefaultGapSigma
	}

	overall := SamplingRate(readings)
	gaps := Gaps(readings)
	limit := stats.Mean(gaps) + sigma*stats.Std(gaps)

	var chunks []Chunk
	start := 0
	for i, gap := range gaps {
		if gap > limit {
			chunks = append(chunks, newChunk(readings[start:i+1], overall))
			start = i + 1
		}
	}
	return append(chunks, newChunk(readings[start:], overall))
}

func newChunk(readings []data.Reading, fallback float64) Chunk {
	rate := SamplingRate(readings)
	if rate == 0 {
		rate = fallback
	}
	return Chunk{Readings: readings, SamplingRate: rate}
}
