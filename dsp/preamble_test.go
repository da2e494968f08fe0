package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestScan_S6 covers a 4000-byte IQ buffer of quiet samples with a single
// injected preamble at byte indices {1000,1004,1014,1018}, which land at
// magnitude-sample offset 500.
func TestScan_S6(t *testing.T) {
	raw := make([]byte, 4000)
	for i := range raw {
		raw[i] = 127
	}
	for _, byteIdx := range []int{1000, 1004, 1014, 1018} {
		raw[byteIdx] = 227 // I
		raw[byteIdx+1] = 127
	}

	mag, err := NewMagnitude(raw)
	require.NoError(t, err)
	require.Len(t, mag, 2000)

	threshold := EstimateThreshold(mag)
	det := NewPreambleDetector(false)
	candidates := det.Scan(mag, threshold)

	require.Len(t, candidates, 1)
	assert.Equal(t, 500, candidates[0].Offset)
}

// TestScan_CandidateMonotonicity checks that successive candidates never
// sit closer than one full frame apart.
func TestScan_CandidateMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(FrameLenSamples, FrameLenSamples*20).Draw(t, "n")
		mag := make(Magnitude, n)
		for i := range mag {
			mag[i] = 1
		}
		nSpikes := rapid.IntRange(0, n/20+1).Draw(t, "nSpikes")
		for i := 0; i < nSpikes; i++ {
			pos := rapid.IntRange(0, n-10).Draw(t, "pos")
			for _, off := range preambleHighOffsets {
				if pos+off < n {
					mag[pos+off] = 100
				}
			}
		}

		det := NewPreambleDetector(false)
		candidates := det.Scan(mag, 50)
		for i := 1; i < len(candidates); i++ {
			gap := candidates[i].Offset - candidates[i-1].Offset
			if gap < FrameLenSamples {
				t.Fatalf("candidates %d and %d only %d apart, want >= %d",
					i-1, i, gap, FrameLenSamples)
			}
		}
	})
}

func TestScan_StrictModeRejectsLoudQuietZone(t *testing.T) {
	mag := make(Magnitude, FrameLenSamples+10)
	for i := range mag {
		mag[i] = 1
	}
	for _, off := range preambleHighOffsets {
		mag[off] = 100
	}
	// violate strict mode by making a quiet-zone sample loud too
	mag[preambleQuietOffsets[0]] = 100

	lenient := NewPreambleDetector(false)
	assert.Len(t, lenient.Scan(mag, 10), 1)

	strict := NewPreambleDetector(true)
	assert.Len(t, strict.Scan(mag, 10), 0)
}

func TestScan_NoFalsePositiveOnFlatNoise(t *testing.T) {
	mag := make(Magnitude, 1000)
	for i := range mag {
		mag[i] = 5 + math.Mod(float64(i), 3)
	}
	det := NewPreambleDetector(false)
	candidates := det.Scan(mag, EstimateThreshold(mag))
	assert.Empty(t, candidates)
}
