package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsb1090/dsp"
)

func TestAssemble(t *testing.T) {
	var rf dsp.RawFrame
	rf.Bits[7] = 1 // byte 0 = 0x01
	rf.Bits[8] = 1 // byte 1 MSB = 0x80
	m := Assemble(rf)
	assert.Equal(t, byte(0x01), m[0])
	assert.Equal(t, byte(0x80), m[1])
}

func TestParseHexAndHexRoundTrip(t *testing.T) {
	const hex = "8D40621D58C382D690C8AC2863A7"
	m, err := ParseHex(hex)
	require.NoError(t, err)
	assert.Equal(t, hex, m.Hex())
}

func TestParseHex_WrongLength(t *testing.T) {
	_, err := ParseHex("8D40")
	assert.Error(t, err)
}

func TestDFAndICAO(t *testing.T) {
	m, err := ParseHex("8D40621D58C382D690C8AC2863A7")
	require.NoError(t, err)
	assert.Equal(t, 17, m.DF())
	assert.Equal(t, uint32(0x40621D), m.ICAO())
}
