package ulz

// Varint ("Mod") encoding: groups of 7 bits, LSB-first. Each non-final
// byte has its high bit set; unlike a standard LEB128 varint, the
// continuation byte's low 7 bits are computed *after* biasing x down
// by 128, and the decoder adds (not ORs) each byte's full value into
// the running total. See decodeVarint for the matching half.

// putVarint appends the Mod-128 encoding of x to dst starting at op,
// and returns the new cursor position. The caller must have reserved
// enough room (5 bytes is always enough for a uint32).
func putVarint(dst []byte, op int, x uint32) int {
	for x >= 128 {
		x -= 128
		dst[op] = byte(128 + (x & 127))
		op++
		x >>= 7
	}
	dst[op] = byte(x)
	op++
	return op
}

// decodeVarint reads a Mod-128 varint from src starting at ip. It
// never reads past len(src): if the varint's continuation run reaches
// the end of src before a terminating byte (high bit clear) is seen,
// ok is false.
func decodeVarint(src []byte, ip int) (x uint32, newIP int, ok bool) {
	for i := uint(0); i <= 28; i += 7 {
		if ip >= len(src) {
			return 0, ip, false
		}
		c := src[ip]
		ip++
		x += uint32(c) << i
		if c < 128 {
			return x, ip, true
		}
	}
	return 0, ip, false
}
