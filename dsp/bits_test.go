package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceBits_DecodesHighLowPattern(t *testing.T) {
	mag := make(Magnitude, PreambleLenSamples+2*DataBitBits)
	for b := 0; b < DataBitBits; b++ {
		off := PreambleLenSamples + 2*b
		if b%2 == 0 {
			mag[off], mag[off+1] = 10, 1 // bit=1
		} else {
			mag[off], mag[off+1] = 1, 10 // bit=0
		}
	}

	rf, err := SliceBits(mag, Candidate{Offset: 0})
	require.NoError(t, err)
	assert.Len(t, rf.Bits, DataBitBits) // invariant 3: bit count
	for b := 0; b < DataBitBits; b++ {
		want := byte(0)
		if b%2 == 0 {
			want = 1
		}
		assert.Equalf(t, want, rf.Bits[b], "bit %d", b)
	}
}

func TestSliceBits_TieBreaksToZero(t *testing.T) {
	mag := make(Magnitude, PreambleLenSamples+2*DataBitBits)
	for i := range mag {
		mag[i] = 5
	}
	rf, err := SliceBits(mag, Candidate{Offset: 0})
	require.NoError(t, err)
	for _, bit := range rf.Bits {
		assert.Equal(t, byte(0), bit)
	}
}

func TestSliceBits_Truncated(t *testing.T) {
	mag := make(Magnitude, PreambleLenSamples+10)
	_, err := SliceBits(mag, Candidate{Offset: 0})
	assert.ErrorIs(t, err, ErrTruncated)
}
