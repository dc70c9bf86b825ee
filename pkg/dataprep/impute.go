package dataprep

import "github.com/yeonchae62/REU-Project/pkg/data"

// Interpolate replaces non-finite EDA values with a linear interpolation in
// time between the nearest finite neighbours. Leading and trailing runs
// take the nearest finite value. Timestamps are left alone. It returns the
// filled readings and how many values were replaced; when no value is
// finite the readings are returned unchanged.
func Interpolate(readings []data.Reading) ([]data.Reading, int) {
	out := make([]data.Reading, len(readings))
	copy(out, readings)

	prev := -1
	filled := 0
	for i, rd := range out {
		if !finite(rd.Value) {
			continue
		}
		if i-prev > 1 {
			filled += fillGap(out, prev, i)
		}
		prev = i
	}
	if prev == -1 {
		return out, 0
	}
	if prev < len(out)-1 {
		filled += fillGap(out, prev, len(out))
	}
	return out, filled
}

// fillGap fills out[lo+1:hi] from the finite values at lo and hi. Either
// end may be out of range, in which case the other end is copied.
func fillGap(out []data.Reading, lo, hi int) int {
	for j := lo + 1; j < hi; j++ {
		switch {
		case lo < 0:
			out[j].Value = out[hi].Value
		case hi >= len(out):
			out[j].Value = out[lo].Value
		default:
			a, b := out[lo], out[hi]
			frac := 0.5
			if span := b.Micros - a.Micros; span > 0 {
				frac = (out[j].Micros - a.Micros) / span
			}
			out[j].Value = a.Value + frac*(b.Value-a.Value)
		}
	}
	return hi - lo - 1
}
