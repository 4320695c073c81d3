package av

// DetectVideoCodecID guesses the video codec of a raw bitstream sample.
// It recognizes H.264 in Annex-B and AVCC framing, VP8 keyframes, VP9
// frames, AV1 OBUs, and IVF file headers. CodecIDNone means the sample
// was not recognized.
func DetectVideoCodecID(data []byte) CodecID {
	if len(data) < 4 {
		return CodecIDNone
	}

	if isAnnexBStartCode(data) && isH264NALType(annexBNALType(data)) {
		return CodecIDH264
	}
	if isAVCCFormat(data) {
		return CodecIDH264
	}

	// IVF header carries its codec as a FourCC.
	if len(data) >= 32 && string(data[0:4]) == "DKIF" {
		switch string(data[8:12]) {
		case "VP80":
			return CodecIDVP8
		case "VP90":
			return CodecIDVP9
		case "AV01":
			return CodecIDAV1
		}
		return CodecIDNone
	}

	if isVP8Keyframe(data) {
		return CodecIDVP8
	}
	if isVP9Frame(data) {
		return CodecIDVP9
	}
	if isAV1OBU(data) {
		return CodecIDAV1
	}
	return CodecIDNone
}

// DetectAudioCodecID guesses the audio codec of a raw bitstream sample.
// It recognizes Opus in Ogg, FLAC, AAC ADTS frames, and MP3 frames.
func DetectAudioCodecID(data []byte) CodecID {
	if len(data) < 4 {
		return CodecIDNone
	}

	if string(data[0:4]) == "OggS" {
		if len(data) >= 36 && string(data[28:36]) == "OpusHead" {
			return CodecIDOpus
		}
		// Bare Ogg could hold Vorbis or anything else.
		return CodecIDNone
	}
	if string(data[0:4]) == "fLaC" {
		return CodecIDFLAC
	}
	if isAACAdts(data) {
		return CodecIDAAC
	}
	if isMP3Frame(data) {
		return CodecIDMP3
	}
	return CodecIDNone
}

func isAnnexBStartCode(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if data[0] == 0 && data[1] == 0 && data[2] == 0 && data[3] == 1 {
		return true
	}
	return data[0] == 0 && data[1] == 0 && data[2] == 1
}

// annexBNALType reads the NAL unit type after a 3- or 4-byte start code.
func annexBNALType(data []byte) byte {
	offset := 3
	if data[2] == 0 {
		offset = 4
	}
	if len(data) <= offset {
		return 0
	}
	return data[offset] & 0x1f
}

// isH264NALType accepts the NAL unit types ITU-T H.264 Table 7-1 defines.
func isH264NALType(nalType byte) bool {
	return (nalType >= 1 && nalType <= 12) || (nalType >= 19 && nalType <= 21)
}

// isAVCCFormat treats a plausible big-endian length prefix as AVCC framing.
func isAVCCFormat(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	length := int(data[0])<<24 | int(data[1])<<16 | int(data[2])<<8 | int(data[3])
	return length > 0 && length < len(data) && length < 10*1024*1024
}

// isVP8Keyframe matches the RFC 6386 keyframe start code after the frame tag.
func isVP8Keyframe(data []byte) bool {
	if len(data) < 10 {
		return false
	}
	if data[0]&0x01 != 0 {
		return false
	}
	return data[3] == 0x9d && data[4] == 0x01 && data[5] == 0x2a
}

// isVP9Frame checks the two-bit frame marker, 0b10 in the top of byte 0.
func isVP9Frame(data []byte) bool {
	if len(data) < 3 {
		return false
	}
	return (data[0]>>6)&0x03 == 0x02
}

// isAV1OBU accepts a header with the forbidden bit clear and a defined OBU
// type.
func isAV1OBU(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if (data[0]>>7)&0x01 != 0 {
		return false
	}
	obuType := (data[0] >> 3) & 0x0f
	return (obuType >= 1 && obuType <= 8) || obuType == 15
}

// isAACAdts matches the 12-bit ADTS syncword with layer 0.
func isAACAdts(data []byte) bool {
	if len(data) < 7 {
		return false
	}
	if data[0] != 0xff || data[1]&0xf0 != 0xf0 {
		return false
	}
	return (data[1]>>1)&0x03 == 0
}

// isMP3Frame matches the 11-bit MPEG audio syncword with layer III.
func isMP3Frame(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if data[0] != 0xff || data[1]&0xe0 != 0xe0 {
		return false
	}
	return (data[1]>>1)&0x03 == 1
}
