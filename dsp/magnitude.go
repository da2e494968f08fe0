// Package dsp implements the signal-processing front end of the ADS-B
// decoder: turning raw interleaved IQ bytes into a magnitude sequence,
// finding Mode-S preambles in that sequence under a dynamic threshold, and
// slicing the following 112 data bits by pulse-position comparison.
package dsp

import (
	"math"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned by NewMagnitude when the byte source produced
// no samples at all.
var ErrEmptyInput = errors.New("dsp: empty IQ byte sequence")

// Sample is a single, nonnegative magnitude value derived from one (I, Q)
// pair. The sample rate is fixed at 2 MSPS: one sample is 0.5 microseconds.
type Sample = float64

// Magnitude is a finite, immutable, 0-indexed sequence of Samples owned by
// one decode session.
type Magnitude []Sample

// dcBias is the nominal center of an unsigned 8-bit IQ sample
// (RTL-SDR style captures are DC-biased around 127.5).
const dcBias = 127.5

// NewMagnitude converts interleaved unsigned 8-bit I/Q bytes into a
// Magnitude sequence of length len(raw)/2. A trailing unpaired byte is
// discarded. Returns ErrEmptyInput if raw is empty.
func NewMagnitude(raw []byte) (Magnitude, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(raw) / 2
	mag := make(Magnitude, n)
	for k := 0; k < n; k++ {
		i := float64(raw[2*k]) - dcBias
		q := float64(raw[2*k+1]) - dcBias
		mag[k] = math.Sqrt(i*i + q*q)
	}
	return mag, nil
}

// Len reports the number of samples in the buffer.
func (m Magnitude) Len() int { return len(m) }
