package ulz

import "encoding/binary"

// DecompressBlock decompresses src into dst and returns the number of
// bytes written. It performs output-bounds, input-bounds, and
// distance-range checks at every token boundary and returns a non-nil
// error (satisfying errors.Is(err, ErrCorrupt)) on any malformed
// input, rather than a negative sentinel: DecompressBlock never writes
// past len(dst) and never reads past len(src), valid input or not.
//
// On error the contents written to dst so far are unspecified; this
// function makes no partial-success guarantee.
func DecompressBlock(dst, src []byte) (int, error) {
	ip := 0
	op := 0
	n := len(src)
	outLen := len(dst)

	for ip < n {
		tag := src[ip]
		ip++

		if tag >= 32 {
			run := int(tag >> 5)
			if run == 7 {
				extra, newIP, ok := decodeVarint(src, ip)
				if !ok {
					return 0, ErrTruncatedToken
				}
				ip = newIP
				run += int(extra)
			}

			if outLen-op < run {
				return 0, ErrOutputOverflow
			}
			if n-ip < run {
				return 0, ErrInputUnderflow
			}

			copy(dst[op:op+run], src[ip:ip+run])
			op += run
			ip += run

			if ip >= n {
				break
			}
		}

		if ip >= n {
			return 0, ErrTruncatedToken
		}

		length := int(tag&15) + MinMatch
		if tag&15 == 15 {
			extra, newIP, ok := decodeVarint(src, ip)
			if !ok {
				return 0, ErrTruncatedToken
			}
			ip = newIP
			length += int(extra)
		}

		if outLen-op < length {
			return 0, ErrOutputOverflow
		}
		if n-ip < 2 {
			return 0, ErrTruncatedToken
		}

		dist := int(tag&16) << 12
		dist |= int(binary.LittleEndian.Uint16(src[ip:]))
		ip += 2

		if op < dist {
			return 0, ErrDistanceOutOfRange
		}

		copyMatch(dst, op, dist, length)
		op += length
	}

	if ip != n {
		return 0, ErrTrailingGarbage
	}
	return op, nil
}

// copyMatch copies length bytes within dst from op-dist to op. For
// dist >= 4 it copies 4 bytes at a time: since source and destination
// only overlap when dist < 4, any 4-byte chunk with dist >= 4 reads
// bytes that are either outside the region being written or already
// finalized by an earlier chunk in this same forward pass, so the
// self-referential RLE behavior LZ77 depends on for dist < length
// still falls out correctly. For dist in {1,2,3} the copy must go
// byte by byte: a 4-byte chunk would read bytes this same call hasn't
// written yet.
func copyMatch(dst []byte, op, dist, length int) {
	src := op - dist
	if dist >= 4 {
		i := 0
		for ; i+4 <= length; i += 4 {
			copy(dst[op+i:op+i+4], dst[src+i:src+i+4])
		}
		for ; i < length; i++ {
			dst[op+i] = dst[src+i]
		}
		return
	}

	for i := 0; i < length; i++ {
		dst[op+i] = dst[src+i]
	}
}

// Decompress decompresses src into a newly allocated buffer of
// length outLen, then trims it to the number of bytes actually
// written.
func Decompress(src []byte, outLen int) ([]byte, error) {
	dst := make([]byte, outLen)
	n, err := DecompressBlock(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
