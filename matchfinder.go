package ulz

import "encoding/binary"

// Compressor owns the hash-chain tables used to find matches during
// compression. Both tables are large enough (about 1.5 MB together)
// that a *Compressor is meant to be created once and reused across
// many CompressBlock calls rather than allocated per call; see
// NewCompressor and the package-level pool in pool.go.
//
// A *Compressor is not safe for concurrent use: each call to
// CompressBlock exclusively owns head and tail for its duration.
type Compressor struct {
	// head[h] is the most recent input position whose 4-byte prefix
	// hashed to h, or nilPos.
	head [HashSize]int32

	// tail[p&WindowMask] is the position that was in head for the same
	// hash immediately before p was inserted, or nilPos. Never reset
	// explicitly: stale entries are filtered by the window-distance
	// bound in findMatch.
	tail [WindowSize]int32
}

// NewCompressor allocates a Compressor with empty hash-chain tables.
func NewCompressor() *Compressor {
	return &Compressor{}
}

func (c *Compressor) reset() {
	for i := range c.head {
		c.head[i] = nilPos
	}
}

// hash returns the HashBits-wide hash of the 4-byte prefix at src[p:].
func hash(src []byte, p int) uint32 {
	return (binary.LittleEndian.Uint32(src[p:]) * hashMul) >> (32 - HashBits)
}

// insert threads position p into the hash chain for its own 4-byte
// prefix. It is a no-op near the end of src, where there aren't 4
// bytes left to hash: such a position could never be found as a valid
// match source later anyway, since a match needs MinMatch bytes from
// its candidate start.
func (c *Compressor) insert(src []byte, p int) {
	if p+4 > len(src) {
		return
	}
	h := hash(src, p)
	c.tail[p&WindowMask] = c.head[h]
	c.head[h] = int32(p)
}

// findMatch looks for the best match for the 4-byte prefix at p,
// walking the hash chain back through at most maxChain prior
// positions within the window. It returns bestLen < MinMatch if no
// usable match was found.
//
// Because the chain is walked in decreasing position order, the first
// match of the longest length found wins, so among equal-length
// matches the nearest one is preferred. This tie-break is load-bearing
// for the wire format's output, not just an optimization.
func (c *Compressor) findMatch(src []byte, p, maxChain int) (bestLen, dist int) {
	n := len(src)
	maxMatch := n - p
	if maxMatch < MinMatch {
		return MinMatch - 1, 0
	}

	bestLen = MinMatch - 1
	limit := p - WindowSize
	if limit < nilPos {
		limit = nilPos
	}
	chain := maxChain

	s := int(c.head[hash(src, p)])
	for s > limit {
		if src[s+bestLen] == src[p+bestLen] && binary.LittleEndian.Uint32(src[s:]) == binary.LittleEndian.Uint32(src[p:]) {
			length := MinMatch
			for length < maxMatch && src[s+length] == src[p+length] {
				length++
			}
			if length > bestLen {
				bestLen = length
				dist = p - s
				if length == maxMatch {
					break
				}
			}
		}

		chain--
		if chain == 0 {
			break
		}
		s = int(c.tail[s&WindowMask])
	}

	return bestLen, dist
}

// lazyBeats reports whether the hash chain at j holds a match at least
// targetLen bytes long. It is used only by the level-9 lookahead: it
// stops extending as soon as it confirms targetLen bytes match,
// rather than finding the longest match available, and spends its own
// maxChain budget independent of the caller's search at p.
//
// The extend loop is clamped to the bytes actually remaining in src,
// which can make it report false for a targetLen that would run past
// the end of input; the reference implementation does not clamp this
// (it relies on input padding past the logical end), but a false
// negative here only costs a little compression ratio in the last few
// bytes of the stream, never correctness.
func (c *Compressor) lazyBeats(src []byte, j, bestLen, targetLen, maxChain int) bool {
	n := len(src)
	if j+MinMatch > n {
		return false
	}
	maxExtend := targetLen
	if room := n - j; maxExtend > room {
		maxExtend = room
	}

	limit := j - WindowSize
	if limit < nilPos {
		limit = nilPos
	}
	chain := maxChain

	s := int(c.head[hash(src, j)])
	for s > limit {
		quick := true
		if s+bestLen < n && j+bestLen < n {
			quick = src[s+bestLen] == src[j+bestLen]
		}
		if quick && binary.LittleEndian.Uint32(src[s:]) == binary.LittleEndian.Uint32(src[j:]) {
			length := MinMatch
			for length < maxExtend && src[s+length] == src[j+length] {
				length++
			}
			if length == targetLen {
				return true
			}
		}

		chain--
		if chain == 0 {
			break
		}
		s = int(c.tail[s&WindowMask])
	}

	return false
}
