package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMagnitude_EmptyInput(t *testing.T) {
	_, err := NewMagnitude(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNewMagnitude_DCBiasCancels(t *testing.T) {
	raw := []byte{127, 128, 128, 127, 227, 127}
	mag, err := NewMagnitude(raw)
	require.NoError(t, err)
	require.Len(t, mag, 3)

	assert.InDelta(t, 0.70710678, mag[0], 1e-6)
	assert.InDelta(t, 0.70710678, mag[1], 1e-6)
	assert.InDelta(t, 99.50125627, mag[2], 1e-6)
}

func TestNewMagnitude_OddLengthDropsTrailingByte(t *testing.T) {
	mag, err := NewMagnitude([]byte{127, 127, 200})
	require.NoError(t, err)
	assert.Len(t, mag, 1)
}
