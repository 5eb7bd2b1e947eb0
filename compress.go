package ulz

import "encoding/binary"

// degenerateRunThreshold is the pending-literal-run length at which a
// minimum-length match stops paying for itself: a run-length varint
// continuation plus a 3-byte match token costs more than just
// extending the run by one more literal.
const degenerateRunThreshold = 7 + 128

// CompressBlock compresses src into dst at the given effort level
// (clamped to [1,9]) and returns the number of bytes written. dst must
// be at least MaxEncodedLen(len(src)) bytes long; otherwise
// CompressBlock returns ErrShortBuffer without writing anything.
//
// CompressBlock does no bounds checking once encoding starts: any
// input is valid, and an undersized dst (after the initial capacity
// check) is the caller's bug, not a runtime error. This mirrors the
// trusted-producer / trust-boundary split between this function and
// DecompressBlock.
func (c *Compressor) CompressBlock(dst, src []byte, level int) (int, error) {
	if len(dst) < MaxEncodedLen(len(src)) {
		return 0, ErrShortBuffer
	}

	level = clampLevel(level)
	maxChain := maxChainForLevel(level)

	c.reset()

	n := len(src)
	op := 0
	run := 0
	p := 0

	for p < n {
		bestLen, dist := c.findMatch(src, p, maxChain)

		if bestLen == MinMatch && run >= degenerateRunThreshold {
			bestLen = 0
		}

		maxMatch := n - p
		if level == 9 && bestLen >= MinMatch && bestLen < maxMatch {
			for i := 1; i <= 2 && bestLen != 0; i++ {
				targetLen := bestLen + i
				if c.lazyBeats(src, p+i, bestLen, targetLen, maxChain) {
					bestLen = 0
				}
			}
		}

		if bestLen >= MinMatch {
			lenCode := bestLen - MinMatch
			if lenCode > 15 {
				lenCode = 15
			}
			tag := byte((dist>>12)&16) + byte(lenCode)

			if run > 0 {
				if run >= 7 {
					dst[op] = (7 << 5) + tag
					op++
					op = putVarint(dst, op, uint32(run-7))
				} else {
					dst[op] = byte(run<<5) + tag
					op++
				}
				copy(dst[op:op+run], src[p-run:p])
				op += run
				run = 0
			} else {
				dst[op] = tag
				op++
			}

			if lenCode == 15 {
				op = putVarint(dst, op, uint32(bestLen-MinMatch-15))
			}
			binary.LittleEndian.PutUint16(dst[op:], uint16(dist))
			op += 2

			for i := 0; i < bestLen; i++ {
				c.insert(src, p)
				p++
			}
		} else {
			c.insert(src, p)
			run++
			p++
		}
	}

	if run > 0 {
		if run >= 7 {
			dst[op] = 7 << 5
			op++
			op = putVarint(dst, op, uint32(run-7))
		} else {
			dst[op] = byte(run << 5)
			op++
		}
		copy(dst[op:op+run], src[p-run:p])
		op += run
	}

	return op, nil
}

// CompressBlock compresses src into dst using a pooled Compressor. See
// (*Compressor).CompressBlock for the contract.
func CompressBlock(dst, src []byte, level int) (int, error) {
	c := acquireCompressor()
	n, err := c.CompressBlock(dst, src, level)
	releaseCompressor(c)
	return n, err
}

// Compress allocates and returns the compressed form of src. A nil
// opts uses DefaultCompressOptions.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	dst := make([]byte, MaxEncodedLen(len(src)))
	n, err := CompressBlock(dst, src, opts.level())
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
