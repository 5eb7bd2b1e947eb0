package ulz

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	for _, in := range testInputSet() {
		f.Add(in.data, 4)
	}
	f.Add([]byte("ABABABABAB"), 9)
	f.Add(bytes.Repeat([]byte("fuzz seed corpus entry"), 100), 1)

	f.Fuzz(func(t *testing.T, data []byte, level int) {
		cmp, err := Compress(data, &CompressOptions{Level: level})
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		out, err := Decompress(cmp, len(data))
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch for %d-byte input at level %d", len(data), level)
		}

		if len(cmp) > MaxEncodedLen(len(data)) {
			t.Fatalf("compressed output %d bytes exceeds MaxEncodedLen %d", len(cmp), MaxEncodedLen(len(data)))
		}
	})
}

func FuzzDecompressNeverPanics(f *testing.F) {
	seed, _ := Compress(bytes.Repeat([]byte("panic-safety seed"), 50), &CompressOptions{Level: 9})
	f.Add(seed, 1000)
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 64)
	f.Add([]byte{}, 0)

	f.Fuzz(func(t *testing.T, data []byte, outLen int) {
		if outLen < 0 || outLen > 1<<20 {
			return
		}
		dst := make([]byte, outLen)
		n, err := DecompressBlock(dst, data)
		if err == nil && n > outLen {
			t.Fatalf("reported writing %d bytes into a %d-byte buffer", n, outLen)
		}
	})
}
