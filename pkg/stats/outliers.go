package stats

// Clip winsorises x: values below the lower percentile are raised to it and
// values above the upper percentile are lowered to it. Percentiles are in
// [0, 100]. x is not modified.
func Clip(x []float64, lower, upper float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	low, high := Percentile(x, lower), Percentile(x, upper)
	for i, v := range x {
		switch {
		case v < low:
			out[i] = low
		case v > high:
			out[i] = high
		default:
			out[i] = v
		}
	}
	return out
}
