package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/pierrec/xxHash/xxHash32"

	"github.com/jibsen/ulz"
)

// ErrBadMagic is returned when a stream does not begin with Magic.
var ErrBadMagic = errors.New("frame: bad magic number")

// ErrChecksumMismatch is returned when the trailing content checksum
// does not match the decompressed data.
var ErrChecksumMismatch = errors.New("frame: content checksum mismatch")

// Reader decompresses a stream written by Writer.
type Reader struct {
	r      io.Reader
	hasher hash.Hash32
	opened bool

	pending []byte // undelivered decompressed bytes from the current block
	done    bool
	err     error

	rawBuf []byte // reused DecompressBlock destination
	cmpBuf []byte // reused compressed-block read buffer
}

// NewReader returns a Reader that reads a framed ulz stream from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (fr *Reader) open() error {
	if fr.opened {
		return nil
	}
	fr.opened = true
	fr.hasher = xxHash32.New(0)

	var hdr [4]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		return err
	}
	if binary.LittleEndian.Uint32(hdr[:]) != Magic {
		return ErrBadMagic
	}
	return nil
}

// Read implements io.Reader, decompressing one block at a time as
// needed to satisfy the caller's buffer.
func (fr *Reader) Read(p []byte) (int, error) {
	if err := fr.open(); err != nil {
		return 0, err
	}
	if fr.err != nil {
		return 0, fr.err
	}

	for len(fr.pending) == 0 && !fr.done {
		if err := fr.readBlock(); err != nil {
			fr.err = err
			return 0, err
		}
	}
	if len(fr.pending) == 0 {
		return 0, io.EOF
	}

	n := copy(p, fr.pending)
	fr.pending = fr.pending[n:]
	return n, nil
}

func (fr *Reader) readBlock() error {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(fr.r, lenPrefix[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	compLen := binary.LittleEndian.Uint32(lenPrefix[:])

	if compLen == endMarker {
		return fr.finish()
	}

	var rawLenBuf [4]byte
	if _, err := io.ReadFull(fr.r, rawLenBuf[:]); err != nil {
		return io.ErrUnexpectedEOF
	}
	rawLen := binary.LittleEndian.Uint32(rawLenBuf[:])

	if cap(fr.cmpBuf) < int(compLen) {
		fr.cmpBuf = make([]byte, compLen)
	}
	compBuf := fr.cmpBuf[:compLen]
	if _, err := io.ReadFull(fr.r, compBuf); err != nil {
		return io.ErrUnexpectedEOF
	}

	if cap(fr.rawBuf) < int(rawLen) {
		fr.rawBuf = make([]byte, rawLen)
	}
	rawBuf := fr.rawBuf[:rawLen]
	n, err := ulz.DecompressBlock(rawBuf, compBuf)
	if err != nil {
		return fmt.Errorf("frame: decompressing block: %w", err)
	}

	fr.hasher.Write(rawBuf[:n])
	fr.pending = rawBuf[:n]
	return nil
}

func (fr *Reader) finish() error {
	fr.done = true

	var sum [4]byte
	if _, err := io.ReadFull(fr.r, sum[:]); err != nil {
		return io.ErrUnexpectedEOF
	}
	if binary.LittleEndian.Uint32(sum[:]) != fr.hasher.Sum32() {
		return ErrChecksumMismatch
	}
	return nil
}
