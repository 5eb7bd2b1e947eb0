package ulz

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecompress_CanonicalStream(t *testing.T) {
	// A 512-byte run of zeroes compresses, at level 1, to a single
	// token: tag 0x2F (run=1, len_code=15), one literal zero byte, the
	// match-length varint, and distance 1, the match covering the other
	// 511 bytes as a self-referential run.
	src := make([]byte, 512)
	cmp, err := Compress(src, &CompressOptions{Level: 1})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	dec, err := Decompress(cmp, 512)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(dec, src) {
		t.Fatal("canonical stream round-trip mismatch")
	}
}

func TestDecompress_TrailingGarbage(t *testing.T) {
	src := bytes.Repeat([]byte("trailing garbage check"), 10)
	cmp, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	withGarbage := append(append([]byte{}, cmp...), 0xFF)
	if _, err := DecompressBlock(make([]byte, len(src)), withGarbage); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt-family error, got %v", err)
	}
}

func TestDecompress_DistanceOutOfRange(t *testing.T) {
	// A match token whose distance points before the start of output.
	bad := []byte{0x10, 0x00, 0x00} // tag: run=0, len_code=0 -> match of length 4; bit 4 set -> dist=65536 into an empty output.
	_, err := DecompressBlock(make([]byte, 16), bad)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt-family error, got %v", err)
	}
}

func TestDecompress_OutputOverflow(t *testing.T) {
	src := bytes.Repeat([]byte("output overflow probe"), 20)
	cmp, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	dst := make([]byte, len(src)-1)
	if _, err := DecompressBlock(dst, cmp); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt-family error, got %v", err)
	}
}

func TestDecompress_RobustToTruncationAtAnyOffset(t *testing.T) {
	for _, in := range testInputSet() {
		if len(in.data) == 0 {
			continue
		}
		cmp, err := Compress(in.data, &CompressOptions{Level: 6})
		if err != nil {
			t.Fatalf("%s: Compress failed: %v", in.name, err)
		}

		for cut := 0; cut < len(cmp); cut++ {
			dst := make([]byte, len(in.data))
			n, err := DecompressBlock(dst, cmp[:cut])
			if err != nil {
				// An error is an acceptable outcome at any truncation.
				continue
			}
			// If decoding reported success, it must have produced a
			// genuine prefix of the original data, and never claimed
			// more bytes than fit in dst.
			if n > len(dst) {
				t.Fatalf("%s: cut=%d: wrote %d bytes into a %d-byte buffer", in.name, cut, n, len(dst))
			}
			if !bytes.Equal(dst[:n], in.data[:n]) {
				t.Fatalf("%s: cut=%d: output is not a prefix of the original input", in.name, cut)
			}
		}
	}
}

func TestDecompress_NeverReadsPastInput(t *testing.T) {
	// A zero-length compressed stream with a non-zero out_len should
	// decode to an empty result: ip == ip_end immediately, so the loop
	// never executes, never reads anything.
	dst := make([]byte, 64)
	n, err := DecompressBlock(dst, nil)
	if err != nil {
		t.Fatalf("Decompress of empty stream failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes written, got %d", n)
	}
}
