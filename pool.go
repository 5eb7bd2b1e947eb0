package ulz

import "sync"

// compressorPool pools *Compressor instances so package-level helpers
// like CompressBlock and Compress don't pay for a fresh ~1.5 MB pair
// of hash-chain tables on every call.
var compressorPool = sync.Pool{
	New: func() any {
		return NewCompressor()
	},
}

func acquireCompressor() *Compressor {
	return compressorPool.Get().(*Compressor)
}

func releaseCompressor(c *Compressor) {
	if c == nil {
		return
	}
	compressorPool.Put(c)
}
