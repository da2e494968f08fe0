package dsp

// FrameLenSamples is the number of samples spanned by one Mode-S long frame:
// the 16-sample (8 µs) preamble plus 112 data bits at 2 samples/bit
// (224 samples), for 240 samples (120 µs) total at 2 MSPS.
const FrameLenSamples = 240

// PreambleLenSamples is the number of samples occupied by the Mode-S
// preamble itself (8 µs at 2 MSPS).
const PreambleLenSamples = 16

// preambleHighOffsets are the relative sample offsets, within the first 10
// samples of a candidate preamble, that must exceed the threshold.
var preambleHighOffsets = [4]int{0, 2, 7, 9}

// preambleQuietOffsets are the relative offsets that strict mode requires
// to stay below half the threshold. This is an optional stricter mode,
// off by default so the lenient four-tap check is unaffected.
var preambleQuietOffsets = [6]int{1, 3, 4, 5, 6, 8}

// Candidate is a sample offset at which the PreambleDetector believes a
// Mode-S frame begins.
type Candidate struct {
	Offset int
}

// PreambleDetector scans a Magnitude buffer for Mode-S preamble signatures.
type PreambleDetector struct {
	strict bool
}

// NewPreambleDetector constructs a detector. When strict is true, the
// quiet-zone samples between pulses must also stay below threshold/2; the
// default (false) keeps the plain four-tap check.
func NewPreambleDetector(strict bool) *PreambleDetector {
	return &PreambleDetector{strict: strict}
}

// preambleCheckSamples is the number of samples the pulse-pattern check
// itself reads (offsets 0 through 9); a candidate only needs this much
// room, not a full FrameLenSamples; a preamble right at the buffer tail
// is still a Candidate, just one SliceBits will later reject it as
// Truncated.
const preambleCheckSamples = 10

// Scan walks mag once, emitting Candidates in strictly increasing offset
// order with a minimum spacing of FrameLenSamples between successive
// candidates. After accepting offset i the cursor jumps to i+FrameLenSamples
// (a full frame is assumed to follow); on rejection it advances by 1.
func (d *PreambleDetector) Scan(mag Magnitude, threshold float64) []Candidate {
	var out []Candidate
	n := len(mag)

	for i := 0; i+preambleCheckSamples <= n; {
		if d.matches(mag, i, threshold) {
			out = append(out, Candidate{Offset: i})
			i += FrameLenSamples
			continue
		}
		i++
	}
	return out
}

func (d *PreambleDetector) matches(mag Magnitude, i int, threshold float64) bool {
	for _, off := range preambleHighOffsets {
		if mag[i+off] <= threshold {
			return false
		}
	}
	if !d.strict {
		return true
	}
	half := threshold / 2
	for _, off := range preambleQuietOffsets {
		if mag[i+off] >= half {
			return false
		}
	}
	return true
}
