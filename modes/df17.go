package modes

import "fmt"

// DF17 is the Downlink Format value for Mode-S Extended Squitter.
const DF17 = 17

// Airborne position type codes (TC 9..18 inclusive).
const (
	tcAirbornePosMin = 9
	tcAirbornePosMax = 18
)

// DF17Fields is the parsed view of a DF17 airborne-position Message.
type DF17Fields struct {
	ICAO       uint32 // 24-bit aircraft address
	TypeCode   int    // 5-bit type code
	AltitudeFt int    // feet; best-effort for Gillham (Q=0), see decodeAltitude
	CPRFormat  int    // 0 = even, 1 = odd
	CPRLatEnc  uint32 // 17-bit raw latitude code
	CPRLonEnc  uint32 // 17-bit raw longitude code
}

// ErrNotDF17 and ErrNotAirbornePosition are local, silently skipped error
// kinds: a frame may be perfectly valid Mode-S and simply not of interest
// to this decoder.
var (
	ErrNotDF17             = fmt.Errorf("modes: not a DF17 frame")
	ErrNotAirbornePosition = fmt.Errorf("modes: DF17 type code not airborne position")
)

// bitsAt extracts an n-bit unsigned value starting at absolute bit index
// start (0-based from the MSB of the 112-bit frame).
func bitsAt(m Message, start, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		bitIdx := start + i
		byteIdx := bitIdx / 8
		bitInByte := 7 - uint(bitIdx%8)
		bit := (m[byteIdx] >> bitInByte) & 1
		v = (v << 1) | uint32(bit)
	}
	return v
}

// ParseDF17 extracts DF17 airborne-position fields from m. Returns
// ErrNotDF17 if m's DF isn't 17, or ErrNotAirbornePosition if the type
// code falls outside [9,18]. Both are local, non-fatal skip conditions,
// not decode failures.
func ParseDF17(m Message) (DF17Fields, error) {
	if m.DF() != DF17 {
		return DF17Fields{}, ErrNotDF17
	}

	tc := int(bitsAt(m, 32, 5))
	if tc < tcAirbornePosMin || tc > tcAirbornePosMax {
		return DF17Fields{}, ErrNotAirbornePosition
	}

	raw12 := bitsAt(m, 40, 12)

	return DF17Fields{
		ICAO:       m.ICAO(),
		TypeCode:   tc,
		AltitudeFt: decodeAltitude(raw12),
		CPRFormat:  int(bitsAt(m, 53, 1)),
		CPRLatEnc:  bitsAt(m, 54, 17),
		CPRLonEnc:  bitsAt(m, 71, 17),
	}, nil
}

// decodeAltitude decodes the 12-bit DF17 altitude field. Bit index 7 of
// the field (from its MSB, i.e. raw12>>4&1) is the Q-bit. When Q=1 the
// Q-bit is simply removed from the 12-bit value and the remaining 11-bit
// number is multiplied by 25 ft with a -1000 ft offset. When Q=0 this
// ships a best-effort approximation (val*100-1000); real Gillham
// (Mode-C) decoding is out of scope.
func decodeAltitude(raw12 uint32) int {
	q := (raw12 >> 4) & 1
	if q == 1 {
		val := ((raw12 >> 5) << 4) | (raw12 & 0xF)
		return int(val)*25 - 1000
	}
	return int(raw12)*100 - 1000
}
