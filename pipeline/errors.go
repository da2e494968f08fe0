package pipeline

import "github.com/pkg/errors"

// Kind classifies the error conditions a decode session can hit. Only
// BadInput ever propagates out of Decode; every other kind is absorbed by
// the pipeline. Truncated, CrcFail, NotDF17, NotAirbornePos and NoFix each
// have a running count in Stats (ArithmeticDomain is counted as NoFix);
// Truncated, CrcFail and NoFix are also logged as debug events when a
// logger is configured, while NotDF17 and NotAirbornePos are not logged.
type Kind int

const (
	// BadInput: byte source unreadable or empty. Fatal to the session.
	BadInput Kind = iota
	// Truncated: a candidate near the buffer end lacks 224 data samples.
	// Local; the candidate is silently dropped.
	Truncated
	// CrcFail: frame parity nonzero. Local; frame dropped.
	CrcFail
	// NotDF17: frame is valid Mode-S but not DF17. Local; skipped.
	NotDF17
	// NotAirbornePos: DF17 frame outside TC [9,18]. Local; skipped.
	NotAirbornePos
	// NoFix: DF17 airborne position parsed but no valid even/odd pair
	// yet. Local; report still emitted with coordinates absent.
	NoFix
	// ArithmeticDomain: CPR math domain violation. Local; treated as
	// NoFix.
	ArithmeticDomain
)

func (k Kind) String() string {
	switch k {
	case BadInput:
		return "BadInput"
	case Truncated:
		return "Truncated"
	case CrcFail:
		return "CrcFail"
	case NotDF17:
		return "NotDF17"
	case NotAirbornePos:
		return "NotAirbornePos"
	case NoFix:
		return "NoFix"
	case ArithmeticDomain:
		return "ArithmeticDomain"
	default:
		return "Unknown"
	}
}

// wrapBadInput wraps err as the one error kind that surfaces to the
// caller, following ausocean-av's use of github.com/pkg/errors for
// contextual wrapping.
func wrapBadInput(err error, context string) error {
	return errors.Wrap(err, context)
}
