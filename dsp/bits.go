package dsp

import "github.com/pkg/errors"

// ErrTruncated is returned when a candidate sits too close to the end of
// the buffer to hold a full 112-bit frame.
var ErrTruncated = errors.New("dsp: truncated buffer, candidate dropped")

// DataBitBits is the number of data bits in a Mode-S long frame.
const DataBitBits = 112

// dataOffset is the number of samples between the start of the preamble
// and the start of bit data.
const dataOffset = PreambleLenSamples

// RawFrame is a 112-element ordered sequence of bits plus the candidate
// offset it was sliced from.
type RawFrame struct {
	Bits   [DataBitBits]byte
	Offset int
}

// SliceBits decides the 112 data bits following a Candidate by comparing
// paired half-samples (pulse-position modulation): bit=1 if the first half
// of the slot is louder, bit=0 if the second half is louder, and bit=0 by
// convention when the two halves are equal (an ambiguous, weak bit; this
// tie-break is kept to preserve CRC behavior on pathological samples).
//
// Returns ErrTruncated if mag does not extend to c.Offset+16+224 samples.
func SliceBits(mag Magnitude, c Candidate) (RawFrame, error) {
	start := c.Offset + dataOffset
	if start+2*DataBitBits > len(mag) {
		return RawFrame{}, ErrTruncated
	}

	var rf RawFrame
	rf.Offset = c.Offset
	for b := 0; b < DataBitBits; b++ {
		off := start + 2*b
		switch {
		case mag[off] > mag[off+1]:
			rf.Bits[b] = 1
		case mag[off] < mag[off+1]:
			rf.Bits[b] = 0
		default:
			rf.Bits[b] = 0
		}
	}
	return rf, nil
}
