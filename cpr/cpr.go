// Package cpr implements the airborne globally-unambiguous Compact Position
// Reporting (CPR) decoder: pairing an aircraft's most recent even and odd
// DF17 airborne-position frames and resolving them to a latitude/longitude,
// per ICAO Annex 10.
package cpr

import (
	"math"

	"github.com/golang/geo/s2"
)

// CPR global-decode constants.
const (
	NZ              = 15
	two17           = 131072.0 // 2^17
	dLatEven        = 360.0 / 60.0
	dLatOdd         = 360.0 / 59.0
	southernWrapLat = 270.0
)

// Frame is a single encoded CPR observation: 17-bit raw latitude/longitude
// codes as carried in a DF17 airborne-position message.
type Frame struct {
	LatEnc uint32
	LonEnc uint32
}

// Result is a resolved global position.
type Result struct {
	Lat float64
	Lon float64
}

// Point returns Result as an s2.LatLng, giving callers a spherical-distance
// primitive (s2.LatLng.Distance) instead of a hand-rolled haversine,
// useful for the CPR round-trip property test.
func (r Result) Point() s2.LatLng {
	return s2.LatLngFromDegrees(r.Lat, r.Lon)
}

// modFloor is the always-positive modulo used throughout CPR decoding.
func modFloor(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// nl is the number-of-longitude-zones step function of latitude,
// computed from its closed form rather than a lookup table. Guards the
// arccos argument against domain overflow by returning 1 when the inner
// value is not strictly inside (-1, 1).
func nl(lat float64) int {
	if math.Abs(lat) >= 87.0 {
		return 1
	}
	latRad := lat * math.Pi / 180.0
	cosLat := math.Cos(latRad)
	inner := 1 - (1-math.Cos(math.Pi/(2*NZ)))/(cosLat*cosLat)
	if inner >= 1 || inner <= -1 {
		return 1
	}
	return int(math.Floor(2 * math.Pi / math.Acos(inner)))
}

// nFunction returns the number of longitude zones for a frame of the
// given parity (0=even, 1=odd) at latitude lat, floored at 1.
func nFunction(lat float64, parityOdd int) int {
	n := nl(lat) - parityOdd
	if n < 1 {
		n = 1
	}
	return n
}

// Decode implements the CPR global-decode algorithm as a pure, stateless
// function of an even/odd frame pair: an externally-exposed verification
// entry point so reference decoders can be checked against this module on
// a per-frame-pair basis. ok is false when the two frames disagree about
// their latitude zone. This is the recommended validity check, adapted from the
// cprNLFunction(rlat0) != cprNLFunction(rlat1) guard dump1090-style
// decoders use.
func Decode(even, odd Frame) (Result, bool) {
	r, ok := decode(even, odd, false)
	return r, ok
}

// decode is the shared implementation; preferOdd selects which parity's
// latitude (and matching longitude branch) to report when both are valid.
// Decode (the stateless, pair-only entry point) has no recency signal, so
// it always prefers the even frame; Resolver has a seq-ordered notion of
// recency and uses it when built with WithPreferRecent.
func decode(even, odd Frame, preferOdd bool) (Result, bool) {
	ye := float64(even.LatEnc)
	yo := float64(odd.LatEnc)
	xe := float64(even.LonEnc)
	xo := float64(odd.LonEnc)

	j := math.Floor((59*ye-60*yo)/two17 + 0.5)

	latEven := dLatEven * (float64(modFloor(int(j), 60)) + ye/two17)
	latOdd := dLatOdd * (float64(modFloor(int(j), 59)) + yo/two17)
	if latEven >= southernWrapLat {
		latEven -= 360
	}
	if latOdd >= southernWrapLat {
		latOdd -= 360
	}

	if nl(latEven) != nl(latOdd) {
		return Result{}, false
	}

	var lat, lon float64
	if preferOdd {
		n := nFunction(latOdd, 1)
		m := math.Floor((xe*float64(nl(latOdd)-1)-xo*float64(nl(latOdd)))/two17 + 0.5)
		lon = (360.0 / float64(n)) * (float64(modFloor(int(m), n)) + xo/two17)
		lat = latOdd
	} else {
		n := nFunction(latEven, 0)
		m := math.Floor((xe*float64(nl(latEven)-1)-xo*float64(nl(latEven)))/two17 + 0.5)
		lon = (360.0 / float64(n)) * (float64(modFloor(int(m), n)) + xe/two17)
		lat = latEven
	}
	if lon >= 180 {
		lon -= 360
	}

	if lat < -90 || lat > 90 {
		return Result{}, false
	}
	return Result{Lat: lat, Lon: lon}, true
}
