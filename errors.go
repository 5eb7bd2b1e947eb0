package ulz

import "errors"

// ErrCorrupt is the base sentinel for every decode failure. The
// decoder never returns a partial result on error. Specific failures
// are expressed as a family of errors.Is(err, ErrCorrupt)-compatible
// values so callers that want detail can get it, and callers that
// just want "did it fail" can check one thing.
var ErrCorrupt = errors.New("ulz: corrupt stream")

type corruptError struct {
	msg string
}

func (e *corruptError) Error() string { return "ulz: " + e.msg }
func (e *corruptError) Unwrap() error { return ErrCorrupt }

func corrupt(msg string) error { return &corruptError{msg: msg} }

// Specific decode failures. Each satisfies errors.Is(err, ErrCorrupt).
var (
	// ErrOutputOverflow is returned when a literal run or match would
	// write past the end of the destination buffer.
	ErrOutputOverflow = corrupt("output overflow")

	// ErrInputUnderflow is returned when a literal run declares more
	// bytes than remain in the compressed input.
	ErrInputUnderflow = corrupt("input underflow")

	// ErrDistanceOutOfRange is returned when a match distance points
	// before the start of the output buffer.
	ErrDistanceOutOfRange = corrupt("match distance out of range")

	// ErrTrailingGarbage is returned when the token loop exits with
	// unconsumed input remaining.
	ErrTrailingGarbage = corrupt("trailing garbage after last token")

	// ErrTruncatedToken is returned when a tag, varint, or distance
	// field is cut off by the end of input.
	ErrTruncatedToken = corrupt("truncated token")
)

// ErrShortBuffer is returned by CompressBlock when dst is too small to
// possibly hold the worst-case output for src. It is a precondition
// check, not a mid-encode bounds check: once compression starts, the
// encoder trusts the caller's sizing.
var ErrShortBuffer = errors.New("ulz: dst too small, see MaxEncodedLen")
