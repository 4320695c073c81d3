package av

import "unsafe"

// session is the state shared by open decoders and encoders: the native
// context plus where it is in the send/receive drain protocol.
type session struct {
	handle uintptr
	codec  *Codec
	state  drainState
}

type drainState int

const (
	stateReady drainState = iota
	stateDraining
	stateDrained
)

// Codec returns the codec the session was opened with.
func (s *session) Codec() *Codec { return s.codec }

// CodecID returns the native codec identifier of the open context.
func (s *session) CodecID() CodecID { return CodecID(nav.CtxCodecID(s.handle)) }

// BitRate returns the configured or detected bit rate.
func (s *session) BitRate() int64 { return nav.CtxBitRate(s.handle) }

// IsDraining reports whether end-of-stream has been signaled.
func (s *session) IsDraining() bool { return s.state != stateReady }

// IsDrained reports whether every buffered output has been received.
func (s *session) IsDrained() bool { return s.state == stateDrained }

func (s *session) closed() bool { return s.handle == 0 }

func (s *session) free() {
	if s.handle == 0 {
		return
	}
	nav.CodecFreeContext(&s.handle)
	s.handle = 0
}

// Decoder is an open decoding session. Feed it with SendPacket, pull
// output with ReceiveFrame, and finish with Drain followed by ReceiveFrame
// until ErrEndOfStream.
type Decoder struct {
	session
}

// SendPacket submits a compressed packet. ErrWouldBlock means the decoder
// has output pending; receive frames and retry. Sending after Drain is an
// ErrInvalidState. A nil packet is rejected; Drain is the end-of-input
// signal.
func (d *Decoder) SendPacket(pkt *Packet) error {
	if d.closed() || d.state != stateReady {
		return ErrInvalidState
	}
	if pkt == nil {
		return ErrInvalidData
	}
	return errorFromCode(nav.SendPacket(d.handle, pkt.handle))
}

// Drain signals end of input. Calling it again while draining is a no-op.
func (d *Decoder) Drain() error {
	if d.closed() {
		return ErrInvalidState
	}
	if d.state != stateReady {
		return nil
	}
	if err := errorFromCode(nav.SendPacket(d.handle, 0)); err != nil {
		return err
	}
	d.state = stateDraining
	return nil
}

// ReceiveFrame fills frame with the next decoded output. ErrWouldBlock
// means more input is needed; ErrEndOfStream means the decoder is fully
// drained.
func (d *Decoder) ReceiveFrame(frame *Frame) error {
	if d.closed() {
		return ErrInvalidState
	}
	if d.state == stateDrained {
		return ErrEndOfStream
	}
	err := errorFromCode(nav.ReceiveFrame(d.handle, frame.handle))
	if IsEndOfStream(err) {
		d.state = stateDrained
	}
	return err
}

// Flush discards buffered state and returns the decoder to accepting
// input, as after a seek.
func (d *Decoder) Flush() {
	if d.closed() {
		return
	}
	nav.CodecFlushBuffers(d.handle)
	d.state = stateReady
}

// MediaType returns the kind of stream the decoder produces.
func (d *Decoder) MediaType() MediaType { return MediaType(nav.CtxMediaType(d.handle)) }

// Video narrows the decoder to its video-specific view.
func (d *Decoder) Video() (*VideoDecoder, error) {
	if d.MediaType() != MediaTypeVideo {
		return nil, ErrInvalidState
	}
	return &VideoDecoder{Decoder: d}, nil
}

// Audio narrows the decoder to its audio-specific view.
func (d *Decoder) Audio() (*AudioDecoder, error) {
	if d.MediaType() != MediaTypeAudio {
		return nil, ErrInvalidState
	}
	return &AudioDecoder{Decoder: d}, nil
}

// Subtitle narrows the decoder to its subtitle-specific view.
func (d *Decoder) Subtitle() (*SubtitleDecoder, error) {
	if d.MediaType() != MediaTypeSubtitle {
		return nil, ErrInvalidState
	}
	return &SubtitleDecoder{Decoder: d}, nil
}

// Close frees the decoder. Safe to call repeatedly.
func (d *Decoder) Close() error {
	d.free()
	return nil
}

// VideoDecoder is a decoder known to produce video frames.
type VideoDecoder struct {
	*Decoder
}

func (d *VideoDecoder) Width() int  { return int(nav.CtxWidth(d.handle)) }
func (d *VideoDecoder) Height() int { return int(nav.CtxHeight(d.handle)) }

func (d *VideoDecoder) PixelFormat() PixelFormat {
	return PixelFormat(nav.CtxPixelFormat(d.handle))
}

// AudioDecoder is a decoder known to produce audio frames.
type AudioDecoder struct {
	*Decoder
}

func (d *AudioDecoder) SampleRate() int { return int(nav.CtxSampleRate(d.handle)) }
func (d *AudioDecoder) Channels() int   { return int(nav.CtxChannels(d.handle)) }

func (d *AudioDecoder) SampleFormat() SampleFormat {
	return SampleFormat(nav.CtxSampleFormat(d.handle))
}

// SubtitleDecoder decodes subtitle packets. Subtitles use a one-shot call
// per packet rather than the send/receive protocol.
type SubtitleDecoder struct {
	*Decoder
}

// Subtitle is one decoded subtitle event. Display times are offsets in
// milliseconds from the packet timestamp.
type Subtitle struct {
	StartDisplayTime uint32
	EndDisplayTime   uint32
	Rects            int
	PTS              int64
}

// DecodePacket decodes one subtitle packet. ok is false when the packet
// held no displayable event.
func (d *SubtitleDecoder) DecodePacket(pkt *Packet) (sub Subtitle, ok bool, err error) {
	if d.closed() {
		return Subtitle{}, false, ErrInvalidState
	}
	// Native subtitle output struct, freed below once decoded fields are
	// copied out.
	var raw [48]byte
	rawPtr := uintptr(unsafe.Pointer(&raw[0]))
	var got int32
	if err := errorFromCode(nav.DecodeSubtitle(d.handle, rawPtr, &got, pkt.handle)); err != nil {
		return Subtitle{}, false, err
	}
	if got == 0 {
		return Subtitle{}, false, nil
	}
	sub = Subtitle{
		StartDisplayTime: *(*uint32)(unsafe.Pointer(&raw[4])),
		EndDisplayTime:   *(*uint32)(unsafe.Pointer(&raw[8])),
		Rects:            int(*(*uint32)(unsafe.Pointer(&raw[12]))),
		PTS:              *(*int64)(unsafe.Pointer(&raw[24])),
	}
	nav.SubtitleFree(rawPtr)
	return sub, true, nil
}
