package av

import "fmt"

// MediaType classifies a stream or codec.
type MediaType int32

const (
	MediaTypeUnknown    MediaType = -1
	MediaTypeVideo      MediaType = 0
	MediaTypeAudio      MediaType = 1
	MediaTypeData       MediaType = 2 // opaque, usually continuous
	MediaTypeSubtitle   MediaType = 3
	MediaTypeAttachment MediaType = 4 // opaque, usually sparse
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeVideo:
		return "video"
	case MediaTypeAudio:
		return "audio"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	case MediaTypeAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// PixelFormat is a native pixel format identifier. Only the formats this
// package's helpers deal in are named; any other value still round-trips.
type PixelFormat int32

const (
	PixelFormatNone    PixelFormat = -1
	PixelFormatYUV420P PixelFormat = 0
	PixelFormatYUYV422 PixelFormat = 1
	PixelFormatRGB24   PixelFormat = 2
	PixelFormatBGR24   PixelFormat = 3
	PixelFormatYUV422P PixelFormat = 4
	PixelFormatYUV444P PixelFormat = 5
	PixelFormatGray8   PixelFormat = 8
	PixelFormatNV12    PixelFormat = 23
	PixelFormatNV21    PixelFormat = 24
	PixelFormatRGBA    PixelFormat = 26
	PixelFormatBGRA    PixelFormat = 28
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatNone:
		return "none"
	case PixelFormatYUV420P:
		return "yuv420p"
	case PixelFormatYUYV422:
		return "yuyv422"
	case PixelFormatRGB24:
		return "rgb24"
	case PixelFormatBGR24:
		return "bgr24"
	case PixelFormatYUV422P:
		return "yuv422p"
	case PixelFormatYUV444P:
		return "yuv444p"
	case PixelFormatGray8:
		return "gray8"
	case PixelFormatNV12:
		return "nv12"
	case PixelFormatNV21:
		return "nv21"
	case PixelFormatRGBA:
		return "rgba"
	case PixelFormatBGRA:
		return "bgra"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int32(f))
	}
}

// SampleFormat is a native audio sample format identifier.
type SampleFormat int32

const (
	SampleFormatNone SampleFormat = -1
	SampleFormatU8   SampleFormat = 0
	SampleFormatS16  SampleFormat = 1
	SampleFormatS32  SampleFormat = 2
	SampleFormatFlt  SampleFormat = 3
	SampleFormatDbl  SampleFormat = 4
	SampleFormatU8P  SampleFormat = 5
	SampleFormatS16P SampleFormat = 6
	SampleFormatS32P SampleFormat = 7
	SampleFormatFltP SampleFormat = 8
	SampleFormatDblP SampleFormat = 9
	SampleFormatS64  SampleFormat = 10
	SampleFormatS64P SampleFormat = 11
)

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatNone:
		return "none"
	case SampleFormatU8:
		return "u8"
	case SampleFormatS16:
		return "s16"
	case SampleFormatS32:
		return "s32"
	case SampleFormatFlt:
		return "flt"
	case SampleFormatDbl:
		return "dbl"
	case SampleFormatU8P:
		return "u8p"
	case SampleFormatS16P:
		return "s16p"
	case SampleFormatS32P:
		return "s32p"
	case SampleFormatFltP:
		return "fltp"
	case SampleFormatDblP:
		return "dblp"
	case SampleFormatS64:
		return "s64"
	case SampleFormatS64P:
		return "s64p"
	default:
		return fmt.Sprintf("SampleFormat(%d)", int32(f))
	}
}

// IsPlanar reports whether each channel occupies its own data plane.
func (f SampleFormat) IsPlanar() bool {
	switch f {
	case SampleFormatU8P, SampleFormatS16P, SampleFormatS32P,
		SampleFormatFltP, SampleFormatDblP, SampleFormatS64P:
		return true
	}
	return false
}
