package av

// Codec describes a registered native codec implementation. A Codec is a
// read-only descriptor; open one through NewCodecContext to decode or
// encode with it.
type Codec struct {
	handle uintptr
}

// FindDecoder locates a decoder for the codec ID.
func FindDecoder(id CodecID) (*Codec, error) {
	h := nav.FindDecoder(int32(id))
	if h == 0 {
		return nil, ErrDecoderNotFound
	}
	return &Codec{handle: h}, nil
}

// FindDecoderByName locates a decoder by its short name, such as "h264" or
// "libvpx-vp9".
func FindDecoderByName(name string) (*Codec, error) {
	h := nav.FindDecoderByName(name)
	if h == 0 {
		return nil, ErrDecoderNotFound
	}
	return &Codec{handle: h}, nil
}

// FindEncoder locates an encoder for the codec ID.
func FindEncoder(id CodecID) (*Codec, error) {
	h := nav.FindEncoder(int32(id))
	if h == 0 {
		return nil, ErrEncoderNotFound
	}
	return &Codec{handle: h}, nil
}

// FindEncoderByName locates an encoder by its short name.
func FindEncoderByName(name string) (*Codec, error) {
	h := nav.FindEncoderByName(name)
	if h == 0 {
		return nil, ErrEncoderNotFound
	}
	return &Codec{handle: h}, nil
}

// Name returns the codec's short name.
func (c *Codec) Name() string { return nav.CodecName(c.handle) }

// LongName returns the codec's descriptive name.
func (c *Codec) LongName() string { return nav.CodecLongName(c.handle) }

// ID returns the codec identifier.
func (c *Codec) ID() CodecID { return CodecID(nav.CodecIDOf(c.handle)) }

// MediaType returns what kind of stream the codec handles.
func (c *Codec) MediaType() MediaType { return MediaType(nav.CodecMediaType(c.handle)) }

// IsVideo reports whether the codec handles video.
func (c *Codec) IsVideo() bool { return c.MediaType() == MediaTypeVideo }

// IsAudio reports whether the codec handles audio.
func (c *Codec) IsAudio() bool { return c.MediaType() == MediaTypeAudio }

// IsSubtitle reports whether the codec handles subtitles.
func (c *Codec) IsSubtitle() bool { return c.MediaType() == MediaTypeSubtitle }
