package av

// CodecParameters is a codec-independent description of a stream's
// essence, detached from any open decoder or encoder.
type CodecParameters struct {
	handle uintptr
	owned  bool
}

// NewCodecParameters allocates an empty, owned parameter set.
func NewCodecParameters() (*CodecParameters, error) {
	h := nav.ParametersAlloc()
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &CodecParameters{handle: h, owned: true}, nil
}

// borrowCodecParameters wraps parameters owned by a stream.
func borrowCodecParameters(handle uintptr) *CodecParameters {
	return &CodecParameters{handle: handle}
}

func (p *CodecParameters) MediaType() MediaType { return MediaType(nav.ParCodecType(p.handle)) }
func (p *CodecParameters) CodecID() CodecID     { return CodecID(nav.ParCodecID(p.handle)) }
func (p *CodecParameters) Width() int           { return int(nav.ParWidth(p.handle)) }
func (p *CodecParameters) Height() int          { return int(nav.ParHeight(p.handle)) }
func (p *CodecParameters) BitRate() int64       { return nav.ParBitRate(p.handle) }
func (p *CodecParameters) SampleRate() int      { return int(nav.ParSampleRate(p.handle)) }
func (p *CodecParameters) Channels() int        { return int(nav.ParChannels(p.handle)) }

func (p *CodecParameters) SetMediaType(v MediaType) { nav.ParSetCodecType(p.handle, int32(v)) }
func (p *CodecParameters) SetCodecID(v CodecID)     { nav.ParSetCodecID(p.handle, int32(v)) }
func (p *CodecParameters) SetWidth(v int)           { nav.ParSetWidth(p.handle, int32(v)) }
func (p *CodecParameters) SetHeight(v int)          { nav.ParSetHeight(p.handle, int32(v)) }

// PixelFormat returns the video format, or PixelFormatNone for audio.
func (p *CodecParameters) PixelFormat() PixelFormat {
	if p.MediaType() != MediaTypeVideo {
		return PixelFormatNone
	}
	return PixelFormat(nav.ParFormat(p.handle))
}

// SampleFormat returns the audio format, or SampleFormatNone for video.
func (p *CodecParameters) SampleFormat() SampleFormat {
	if p.MediaType() != MediaTypeAudio {
		return SampleFormatNone
	}
	return SampleFormat(nav.ParFormat(p.handle))
}

// CopyFrom overwrites p with src.
func (p *CodecParameters) CopyFrom(src *CodecParameters) error {
	return errorFromCode(nav.ParametersCopy(p.handle, src.handle))
}

// Free releases an owned parameter set. Borrowed views are left alone.
func (p *CodecParameters) Free() {
	if p == nil || !p.owned || p.handle == 0 {
		return
	}
	nav.ParametersFree(&p.handle)
	p.handle = 0
}

// CodecContext is an allocated but not yet opened codec instance. Configure
// it, then call OpenDecoder or OpenEncoder; both consume the context. After
// a successful open the context belongs to the returned decoder or encoder
// and must not be touched again; after a failed open it is already freed.
type CodecContext struct {
	handle uintptr
	codec  *Codec
}

// NewCodecContext allocates a context bound to the codec.
func NewCodecContext(codec *Codec) (*CodecContext, error) {
	h := nav.CodecAllocContext(codec.handle)
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &CodecContext{handle: h, codec: codec}, nil
}

// NewDecoderContextFor is shorthand for finding a decoder for the stream's
// codec, allocating a context, and loading the stream parameters into it.
func NewDecoderContextFor(stream *Stream) (*CodecContext, error) {
	par := stream.CodecParameters()
	codec, err := FindDecoder(par.CodecID())
	if err != nil {
		return nil, err
	}
	ctx, err := NewCodecContext(codec)
	if err != nil {
		return nil, err
	}
	if err := ctx.SetParameters(par); err != nil {
		ctx.Free()
		return nil, err
	}
	tb := stream.TimeBase()
	nav.CtxSetPktTimeBase(ctx.handle, tb.Num, tb.Den)
	return ctx, nil
}

// Codec returns the codec the context was allocated for.
func (c *CodecContext) Codec() *Codec { return c.codec }

// MediaType returns the kind of stream the context will process.
func (c *CodecContext) MediaType() MediaType { return MediaType(nav.CtxMediaType(c.handle)) }

// SetParameters loads stream parameters into the context.
func (c *CodecContext) SetParameters(par *CodecParameters) error {
	return errorFromCode(nav.ParametersToContext(c.handle, par.handle))
}

func (c *CodecContext) SetWidth(v int)         { nav.CtxSetWidth(c.handle, int32(v)) }
func (c *CodecContext) SetHeight(v int)        { nav.CtxSetHeight(c.handle, int32(v)) }
func (c *CodecContext) SetPixelFormat(v PixelFormat)   { nav.CtxSetPixelFormat(c.handle, int32(v)) }
func (c *CodecContext) SetSampleFormat(v SampleFormat) { nav.CtxSetSampleFormat(c.handle, int32(v)) }
func (c *CodecContext) SetSampleRate(v int)    { nav.CtxSetSampleRate(c.handle, int32(v)) }
func (c *CodecContext) SetBitRate(v int64)     { nav.CtxSetBitRate(c.handle, v) }
func (c *CodecContext) SetMaxBitRate(v int64)  { nav.CtxSetMaxBitRate(c.handle, v) }
func (c *CodecContext) SetBitRateTolerance(v int) { nav.CtxSetTolerance(c.handle, int32(v)) }
func (c *CodecContext) SetQuality(v int)       { nav.CtxSetQuality(c.handle, int32(v)) }
func (c *CodecContext) SetCompression(v int)   { nav.CtxSetCompression(c.handle, int32(v)) }
func (c *CodecContext) SetGOPSize(v int)       { nav.CtxSetGOPSize(c.handle, int32(v)) }
func (c *CodecContext) SetMaxBFrames(v int)    { nav.CtxSetMaxBFrames(c.handle, int32(v)) }
func (c *CodecContext) SetThreadCount(v int)   { nav.CtxSetThreadCount(c.handle, int32(v)) }

func (c *CodecContext) SetTimeBase(tb Rational) {
	nav.CtxSetTimeBase(c.handle, tb.Num, tb.Den)
}

func (c *CodecContext) SetFrameRate(fr Rational) {
	nav.CtxSetFrameRate(c.handle, fr.Num, fr.Den)
}

// SetChannels installs the default channel layout for the given count.
func (c *CodecContext) SetChannels(channels int) {
	nav.CtxSetChannelLayoutDefault(c.handle, int32(channels))
}

// FrameSkip selects which frames a decoder may discard.
type FrameSkip int32

const (
	SkipNone    FrameSkip = 0  // decode everything
	SkipDefault FrameSkip = 1  // skip useless frames like size-0 packets
	SkipNonRef  FrameSkip = 8  // skip non-reference frames
	SkipBidir   FrameSkip = 16 // skip bidirectionally predicted frames
	SkipNonKey  FrameSkip = 32 // decode keyframes only
	SkipAll     FrameSkip = 48 // decode nothing
)

// SetSkipFrame tells the decoder which frames it may drop.
func (c *CodecContext) SetSkipFrame(v FrameSkip) {
	nav.CtxSetSkipFrame(c.handle, int32(v))
}

// SetSkipLoopFilter trades deblocking quality for speed.
func (c *CodecContext) SetSkipLoopFilter(v FrameSkip) {
	nav.CtxSetSkipLoopFilter(c.handle, int32(v))
}

// OpenDecoder opens the context for decoding, consuming it. opts may be nil;
// entries the codec recognizes are removed from it.
func (c *CodecContext) OpenDecoder(opts *Dictionary) (*Decoder, error) {
	if err := c.open(opts); err != nil {
		return nil, err
	}
	d := &Decoder{session: session{handle: c.handle, codec: c.codec}}
	c.handle = 0
	return d, nil
}

// OpenEncoder opens the context for encoding, consuming it. opts may be nil.
func (c *CodecContext) OpenEncoder(opts *Dictionary) (*Encoder, error) {
	if err := c.open(opts); err != nil {
		return nil, err
	}
	e := &Encoder{session: session{handle: c.handle, codec: c.codec}}
	c.handle = 0
	return e, nil
}

func (c *CodecContext) open(opts *Dictionary) error {
	if c.handle == 0 {
		return ErrInvalidState
	}
	err := withOptions(opts, func(pm *uintptr) error {
		return errorFromCode(nav.CodecOpen(c.handle, c.codec.handle, pm))
	})
	if err != nil {
		nav.CodecFreeContext(&c.handle)
		c.handle = 0
		return err
	}
	return nil
}

// Free releases an unopened context. After a successful open this is a
// no-op; the opened decoder or encoder owns the native state.
func (c *CodecContext) Free() {
	if c == nil || c.handle == 0 {
		return
	}
	nav.CodecFreeContext(&c.handle)
	c.handle = 0
}
