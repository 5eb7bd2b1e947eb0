// Package frame implements a streaming archive format on top of ulz's
// fixed-size block codec: a magic number, a sequence of
// length-prefixed compressed blocks, and a trailing content checksum,
// in the manner of an LZ4 frame.
package frame

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"github.com/pierrec/xxHash/xxHash32"

	"github.com/jibsen/ulz"
)

// Magic identifies the start of a frame stream ("ulz0" as a
// little-endian uint32).
const Magic uint32 = 0x307A6c75

// BlockSize is the uncompressed size of each block fed to
// ulz.CompressBlock. Larger blocks find more distant matches; smaller
// blocks bound memory use and let a reader start decoding before the
// whole stream has arrived.
const BlockSize = 1 << 20

// endMarker is the zero-length block size that terminates the block
// sequence, the same sentinel the LZ4 frame format uses.
const endMarker uint32 = 0

// Writer compresses data written to it into a sequence of framed ulz
// blocks, followed by a running content checksum. The header is
// emitted lazily on the first Write or on Close, so creating a Writer
// and neither writing to it nor closing it produces no output.
type Writer struct {
	w      io.Writer
	level  int
	hasher hash.Hash32
	opened bool
	closed bool

	buf     []byte // accumulates up to BlockSize bytes of pending input
	scratch []byte // reused CompressBlock destination
}

// NewWriter returns a Writer that compresses at the given level (see
// ulz.CompressOptions) and writes the framed stream to w.
func NewWriter(w io.Writer, level int) *Writer {
	return &Writer{
		w:     w,
		level: level,
		buf:   make([]byte, 0, BlockSize),
	}
}

func (fw *Writer) open() error {
	if fw.opened {
		return nil
	}
	fw.opened = true
	fw.hasher = xxHash32.New(0)

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], Magic)
	_, err := fw.w.Write(hdr[:])
	return err
}

// Write buffers p and flushes full blocks to the underlying writer as
// they fill, compressing each one independently.
func (fw *Writer) Write(p []byte) (int, error) {
	if err := fw.open(); err != nil {
		return 0, err
	}

	total := len(p)
	for len(p) > 0 {
		room := BlockSize - len(fw.buf)
		n := room
		if n > len(p) {
			n = len(p)
		}
		fw.buf = append(fw.buf, p[:n]...)
		p = p[n:]

		if len(fw.buf) == BlockSize {
			if err := fw.flushBlock(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

func (fw *Writer) flushBlock() error {
	if len(fw.buf) == 0 {
		return nil
	}

	need := ulz.MaxEncodedLen(len(fw.buf))
	if cap(fw.scratch) < need {
		fw.scratch = make([]byte, need)
	}
	n, err := ulz.CompressBlock(fw.scratch[:need], fw.buf, fw.level)
	if err != nil {
		return fmt.Errorf("frame: compressing block: %w", err)
	}

	if err := fw.writeBlock(fw.scratch[:n], len(fw.buf)); err != nil {
		return err
	}

	fw.hasher.Write(fw.buf)
	fw.buf = fw.buf[:0]
	return nil
}

// writeBlock writes one block's wire representation: the compressed
// length, the uncompressed length, then the compressed payload. Both
// lengths are needed because the reader must size its destination
// buffer before calling ulz.DecompressBlock.
func (fw *Writer) writeBlock(compressed []byte, rawLen int) error {
	var lenPrefix [8]byte
	binary.LittleEndian.PutUint32(lenPrefix[0:4], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(lenPrefix[4:8], uint32(rawLen))
	if _, err := fw.w.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err := fw.w.Write(compressed)
	return err
}

// Close flushes any buffered data, writes the end-of-stream marker,
// and appends the content checksum. It does not close the underlying
// io.Writer.
func (fw *Writer) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	if err := fw.open(); err != nil {
		return err
	}
	if err := fw.flushBlock(); err != nil {
		return err
	}

	var end [4]byte
	binary.LittleEndian.PutUint32(end[:], endMarker)
	if _, err := fw.w.Write(end[:]); err != nil {
		return err
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], fw.hasher.Sum32())
	_, err := fw.w.Write(sum[:])
	return err
}
