/*
Package ulz implements an ultra-fast LZ77 byte-stream codec: a
hash-chain match finder paired with a branch-light, overcopy-safe
decoder, sharing one compact wire format.

The reference this package is ported from is ulz.hpp by Ilya Muravyov,
placed in the public domain. The wire format, constants, and level
semantics below are that reference, carried over byte-for-byte.

# Compress

Level is an effort knob from 1 (fastest, shortest hash chains) to 9
(slowest, unbounded chains plus a two-byte lazy lookahead). Values
outside that range are clamped.

	out, err := ulz.Compress(data, ulz.DefaultCompressOptions())
	out, err := ulz.Compress(data, &ulz.CompressOptions{Level: 9})

To reuse caller-managed output memory (no per-call allocation), size
dst with ulz.MaxEncodedLen and call CompressBlock directly:

	dst := make([]byte, ulz.MaxEncodedLen(len(data)))
	n, err := ulz.CompressBlock(dst, data, 4)
	dst = dst[:n]

A *Compressor owns its hash-chain tables and can be reused across many
CompressBlock calls to avoid allocating them repeatedly:

	c := ulz.NewCompressor()
	n, err := c.CompressBlock(dst, data, 4)

# Decompress

The decompressed size isn't stored in the stream, so the caller must
know it (or an upper bound for it) ahead of time:

	out, err := ulz.Decompress(compressed, expectedLen)

To reuse caller-managed output memory:

	dst := make([]byte, expectedLen)
	n, err := ulz.DecompressBlock(dst, compressed)
	dst = dst[:n]

DecompressBlock never writes past len(dst) and never reads past the
end of the compressed input; malformed input is reported through the
sentinel errors in errors.go rather than through a panic.
*/
package ulz
