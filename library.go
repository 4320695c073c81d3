package av

import "fmt"

// Library identifies one of the linked native libraries.
type Library int

const (
	LibraryUtil Library = iota
	LibraryCodec
	LibraryFormat
	LibraryFilter
	LibraryScale
	LibraryResample
)

func (l Library) String() string {
	switch l {
	case LibraryUtil:
		return "avutil"
	case LibraryCodec:
		return "avcodec"
	case LibraryFormat:
		return "avformat"
	case LibraryFilter:
		return "avfilter"
	case LibraryScale:
		return "swscale"
	case LibraryResample:
		return "swresample"
	default:
		return fmt.Sprintf("Library(%d)", int(l))
	}
}

// Version returns the packed native version number (major<<16|minor<<8|micro).
func (l Library) Version() uint32 {
	switch l {
	case LibraryUtil:
		return nav.UtilVersion()
	case LibraryCodec:
		return nav.CodecVersion()
	case LibraryFormat:
		return nav.FormatVersion()
	case LibraryFilter:
		return nav.FilterVersion()
	case LibraryScale:
		return nav.ScaleVersion()
	case LibraryResample:
		return nav.ResampleVersion()
	default:
		return 0
	}
}

// VersionString returns the version as "major.minor.micro".
func (l Library) VersionString() string {
	return versionString(l.Version())
}

// Configuration returns the build-time configure flags of the library.
func (l Library) Configuration() string {
	switch l {
	case LibraryUtil:
		return nav.UtilConfiguration()
	case LibraryCodec:
		return nav.CodecConfiguration()
	case LibraryFormat:
		return nav.FormatConfiguration()
	case LibraryFilter:
		return nav.FilterConfiguration()
	case LibraryScale:
		return nav.ScaleConfiguration()
	case LibraryResample:
		return nav.ResampleConfiguration()
	default:
		return ""
	}
}

// License returns the license name the library was built under.
func (l Library) License() string {
	switch l {
	case LibraryUtil:
		return nav.UtilLicense()
	case LibraryCodec:
		return nav.CodecLicense()
	case LibraryFormat:
		return nav.FormatLicense()
	case LibraryFilter:
		return nav.FilterLicense()
	case LibraryScale:
		return nav.ScaleLicense()
	case LibraryResample:
		return nav.ResampleLicense()
	default:
		return ""
	}
}

// Libraries lists every library this package binds.
func Libraries() []Library {
	return []Library{
		LibraryUtil, LibraryCodec, LibraryFormat,
		LibraryFilter, LibraryScale, LibraryResample,
	}
}
