package dsp

import "gonum.org/v1/gonum/stat"

// ThresholdMultiplier is the factor applied to the buffer's mean magnitude
// to obtain the preamble detection threshold. ADS-B pulses sit an order of
// magnitude above the noise floor, so a fixed multiple of the mean is cheap
// and robust against gain differences between captures.
const ThresholdMultiplier = 5.0

// EstimateThreshold returns 5 times the arithmetic mean of mag, computed
// with gonum's stat.Mean. Callers MAY substitute a more robust estimator
// (median, windowed running mean); this is the reference implementation.
func EstimateThreshold(mag Magnitude) float64 {
	if len(mag) == 0 {
		return 0
	}
	return ThresholdMultiplier * stat.Mean(mag, nil)
}
