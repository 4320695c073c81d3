package av

import (
	"errors"
	"fmt"
	"syscall"
)

// Sentinel errors forming the closed failure taxonomy. Every fallible native
// call is converted through errorFromCode before it returns, so callers only
// ever see these (or *Error for codes outside the taxonomy) and can match
// with errors.Is.
var (
	ErrStreamNotFound   = errors.New("stream not found")
	ErrDecoderNotFound  = errors.New("decoder not found")
	ErrEncoderNotFound  = errors.New("encoder not found")
	ErrDemuxerNotFound  = errors.New("demuxer not found")
	ErrMuxerNotFound    = errors.New("muxer not found")
	ErrFilterNotFound   = errors.New("filter not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrProtocolNotFound = errors.New("protocol not found")

	// ErrWouldBlock means the operation needs more input (or output to be
	// drained) before it can make progress. Always retryable.
	ErrWouldBlock = errors.New("resource temporarily unavailable")

	// ErrEndOfStream means the resource is permanently exhausted. For a
	// demuxer this is end of file; for a codec context it is the end of the
	// drain sequence.
	ErrEndOfStream = errors.New("end of stream")

	ErrInvalidData = errors.New("invalid data found when processing input")

	// ErrInvalidState reports an operation used on the wrong lifecycle state
	// (e.g. sending to a drained codec context, writing to a finalized
	// muxer). Terminal for that resource instance.
	ErrInvalidState = errors.New("operation invalid in current state")

	ErrIO        = errors.New("I/O error")
	ErrCancelled = errors.New("operation cancelled")
	ErrNoMemory  = errors.New("cannot allocate memory")
)

// Error carries a native status code that falls outside the closed taxonomy.
// The code is preserved verbatim for diagnostics.
type Error struct {
	Code int32
}

func (e *Error) Error() string {
	if loaded() {
		if s := nav.Strerror(e.Code); s != "" {
			return s
		}
	}
	return fmt.Sprintf("ffmpeg error %d", e.Code)
}

// errTag builds an FFmpeg FFERRTAG error code from four tag bytes.
func errTag(a, b, c, d byte) int32 {
	return -(int32(a) | int32(b)<<8 | int32(c)<<16 | int32(d)<<24)
}

// Native status codes with dedicated taxonomy members. Errno-based codes use
// the platform errno, matching AVERROR(errno).
var (
	codeEOF              = errTag('E', 'O', 'F', ' ')
	codeExit             = errTag('E', 'X', 'T', ' ')
	codeInvalidData      = errTag('I', 'N', 'D', 'A')
	codeDecoderNotFound  = errTag(0xF8, 'D', 'E', 'C')
	codeEncoderNotFound  = errTag(0xF8, 'E', 'N', 'C')
	codeDemuxerNotFound  = errTag(0xF8, 'D', 'E', 'M')
	codeMuxerNotFound    = errTag(0xF8, 'M', 'U', 'X')
	codeStreamNotFound   = errTag(0xF8, 'S', 'T', 'R')
	codeFilterNotFound   = errTag(0xF8, 'F', 'I', 'L')
	codeOptionNotFound   = errTag(0xF8, 'O', 'P', 'T')
	codeProtocolNotFound = errTag(0xF8, 'P', 'R', 'O')

	codeAgain = -int32(syscall.EAGAIN)
	codeIO    = -int32(syscall.EIO)
	codeNoEnt = -int32(syscall.ENOENT)
	codeNoMem = -int32(syscall.ENOMEM)
	codeInval = -int32(syscall.EINVAL)
)

// errorFromCode maps a native status code to the taxonomy. Codes >= 0 are
// success and map to nil.
func errorFromCode(code int32) error {
	if code >= 0 {
		return nil
	}
	switch code {
	case codeAgain:
		return ErrWouldBlock
	case codeEOF:
		return ErrEndOfStream
	case codeExit:
		return ErrCancelled
	case codeInvalidData:
		return ErrInvalidData
	case codeDecoderNotFound:
		return ErrDecoderNotFound
	case codeEncoderNotFound:
		return ErrEncoderNotFound
	case codeDemuxerNotFound:
		return ErrDemuxerNotFound
	case codeMuxerNotFound:
		return ErrMuxerNotFound
	case codeStreamNotFound:
		return ErrStreamNotFound
	case codeFilterNotFound:
		return ErrFilterNotFound
	case codeOptionNotFound:
		return ErrOptionNotFound
	case codeProtocolNotFound:
		return ErrProtocolNotFound
	case codeIO:
		return ErrIO
	case codeNoEnt:
		return fmt.Errorf("%w: %w", ErrIO, syscall.ENOENT)
	case codeNoMem:
		return ErrNoMemory
	case codeInval:
		return ErrInvalidData
	default:
		return &Error{Code: code}
	}
}

// IsWouldBlock reports whether err is the retryable would-block condition.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

// IsEndOfStream reports whether err marks permanent exhaustion of a resource.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}
