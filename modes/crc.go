package modes

// Mode-S 24-bit parity.
//
// The check is a bitwise long division of the full 112-bit frame against
// a generator polynomial. The internally-consistent 25-bit generator is
// 0x1FFF409 (bit_length 25, leading one at bit 24), with 24-bit
// coefficient 0xFFF409, matching crcTable's last nonzero entry below.
// The table-XOR technique (crcTable, below) is the implementation used at
// runtime; the long-division form is kept as longDivisionChecksum and
// cross-checked against it in crc_test.go. This covers DF17 only; there
// is no ICAO-XOR overlay, since that applies only to DF11/DF4/DF5/DF20/DF21.
const (
	crcGenerator25   = 0x1FFF409
	crcGenerator24   = 0xFFF409
	crcGeneratorBit  = 1 << 24
	crcSyndromeMask  = 0xFFFFFF
	crcMessageBits   = MessageBytes * 8
	crcFirstCRCByte  = MessageBytes - 3
)

// crcTable contains 112 entries, one per bit of a long Mode-S message,
// starting at the first bit of data after the preamble. Checksum XORs
// together every entry whose corresponding message bit is 1; the last 24
// entries are zero since the parity field itself must not affect its own
// computation.
func crcTable() [crcMessageBits]uint32 {
	return [crcMessageBits]uint32{
		0x3935ea, 0x1c9af5, 0xf1b77e, 0x78dbbf, 0xc397db, 0x9e31e9, 0xb0e2f0, 0x587178,
		0x2c38bc, 0x161c5e, 0x0b0e2f, 0xfa7d13, 0x82c48d, 0xbe9842, 0x5f4c21, 0xd05c14,
		0x682e0a, 0x341705, 0xe5f186, 0x72f8c3, 0xc68665, 0x9cb936, 0x4e5c9b, 0xd8d449,
		0x939020, 0x49c810, 0x24e408, 0x127204, 0x093902, 0x049c81, 0xfdb444, 0x7eda22,
		0x3f6d11, 0xe04c8c, 0x702646, 0x381323, 0xe3f395, 0x8e03ce, 0x4701e7, 0xdc7af7,
		0x91c77f, 0xb719bb, 0xa476d9, 0xadc168, 0x56e0b4, 0x2b705a, 0x15b82d, 0xf52612,
		0x7a9309, 0xc2b380, 0x6159c0, 0x30ace0, 0x185670, 0x0c2b38, 0x06159c, 0x030ace,
		0x018567, 0xff38b7, 0x80665f, 0xbfc92b, 0xa01e91, 0xaff54c, 0x57faa6, 0x2bfd53,
		0xea04ad, 0x8af852, 0x457c29, 0xdd4410, 0x6ea208, 0x375104, 0x1ba882, 0x0dd441,
		0xf91024, 0x7c8812, 0x3e4409, 0xe0d800, 0x706c00, 0x383600, 0x1c1b00, 0x0e0d80,
		0x0706c0, 0x038360, 0x01c1b0, 0x00e0d8, 0x00706c, 0x003836, 0x001c1b, 0xfff409,
		0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
		0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
		0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
	}
}

// Checksum computes the 24-bit Mode-S parity syndrome over a full 112-bit
// Message using the precomputed XOR table.
func Checksum(m Message) uint32 {
	table := crcTable()
	var crc uint32
	for j := 0; j < crcMessageBits; j++ {
		byteIdx := j / 8
		bitMask := byte(1) << (7 - uint(j%8))
		if m[byteIdx]&bitMask != 0 {
			crc ^= table[j]
		}
	}
	return crc
}

// longDivisionChecksum implements the generator-polynomial bitwise long
// division directly, using the internally consistent 25-bit generator
// (see the doc comment above crcTable). Kept
// for documentation and as a cross-check in tests; Checksum is what the
// decoder actually calls.
func longDivisionChecksum(m Message) uint32 {
	var rem uint32
	for byteIdx := 0; byteIdx < MessageBytes; byteIdx++ {
		for bit := 7; bit >= 0; bit-- {
			b := uint32((m[byteIdx] >> uint(bit)) & 1)
			rem = (rem << 1) | b
			if rem&crcGeneratorBit != 0 {
				rem ^= crcGenerator25
			}
		}
	}
	return rem & crcSyndromeMask
}

// ParityField returns the 24 bits carried in the message's final 3 bytes
// (the PI field for DF17; there is no ICAO-XOR overlay for DF17, unlike
// DF11/DF4/DF5/DF20/DF21).
func (m Message) ParityField() uint32 {
	return uint32(m[crcFirstCRCByte])<<16 | uint32(m[crcFirstCRCByte+1])<<8 | uint32(m[crcFirstCRCByte+2])
}

// CRCValid reports whether m's parity (PI) field matches the checksum
// computed over its data bits. The crcTable's final 24 entries are zero,
// so Checksum(m) already depends only on the 88 data bits. The parity
// field carries the transmitted checksum value, not a trailer that makes
// a whole-frame division land on zero (that equivalent formulation is what
// longDivisionChecksum implements instead; see crc_test.go).
func CRCValid(m Message) bool {
	return Checksum(m) == m.ParityField()
}
