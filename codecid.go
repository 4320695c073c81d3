package av

import "fmt"

// CodecID is a native codec identifier. The constants below cover the codecs
// this package is commonly used with; any native value round-trips.
type CodecID int32

const (
	CodecIDNone CodecID = 0

	// Video.
	CodecIDMPEG1Video CodecID = 1
	CodecIDMPEG2Video CodecID = 2
	CodecIDMJPEG      CodecID = 7
	CodecIDMPEG4      CodecID = 12
	CodecIDH264       CodecID = 27
	CodecIDTheora     CodecID = 30
	CodecIDPNG        CodecID = 61
	CodecIDVP8        CodecID = 139
	CodecIDVP9        CodecID = 167
	CodecIDHEVC       CodecID = 173
	CodecIDAV1        CodecID = 32797

	// Audio.
	CodecIDMP3    CodecID = 86017
	CodecIDAAC    CodecID = 86018
	CodecIDAC3    CodecID = 86019
	CodecIDVorbis CodecID = 86021
	CodecIDFLAC   CodecID = 86028
	CodecIDOpus   CodecID = 86076

	// Subtitles.
	CodecIDDVDSubtitle CodecID = 94208
	CodecIDSubRip      CodecID = 94216
	CodecIDASS         CodecID = 94225
	CodecIDWebVTT      CodecID = 94221
)

// String returns the native short name when the libraries are loaded, and a
// numeric form otherwise.
func (id CodecID) String() string {
	if loaded() {
		if name := nav.CodecIDName(int32(id)); name != "" {
			return name
		}
	}
	return fmt.Sprintf("CodecID(%d)", int32(id))
}
