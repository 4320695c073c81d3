package av

// Encoder is an open encoding session. Feed it with SendFrame, pull
// output with ReceivePacket, and finish with Drain followed by
// ReceivePacket until ErrEndOfStream.
type Encoder struct {
	session
}

// SendFrame submits an uncompressed frame. ErrWouldBlock means the encoder
// has output pending; receive packets and retry. Sending after Drain is an
// ErrInvalidState. A nil frame is rejected; Drain is the end-of-input
// signal.
func (e *Encoder) SendFrame(frame *Frame) error {
	if e.closed() || e.state != stateReady {
		return ErrInvalidState
	}
	if frame == nil {
		return ErrInvalidData
	}
	return errorFromCode(nav.SendFrame(e.handle, frame.handle))
}

// Drain signals end of input. Calling it again while draining is a no-op.
func (e *Encoder) Drain() error {
	if e.closed() {
		return ErrInvalidState
	}
	if e.state != stateReady {
		return nil
	}
	if err := errorFromCode(nav.SendFrame(e.handle, 0)); err != nil {
		return err
	}
	e.state = stateDraining
	return nil
}

// ReceivePacket fills pkt with the next encoded output. ErrWouldBlock
// means more input is needed; ErrEndOfStream means the encoder is fully
// drained.
func (e *Encoder) ReceivePacket(pkt *Packet) error {
	if e.closed() {
		return ErrInvalidState
	}
	if e.state == stateDrained {
		return ErrEndOfStream
	}
	err := errorFromCode(nav.ReceivePacket(e.handle, pkt.handle))
	if IsEndOfStream(err) {
		e.state = stateDrained
	}
	return err
}

// Flush discards buffered state and returns the encoder to accepting
// input.
func (e *Encoder) Flush() {
	if e.closed() {
		return
	}
	nav.CodecFlushBuffers(e.handle)
	e.state = stateReady
}

// MediaType returns the kind of stream the encoder consumes.
func (e *Encoder) MediaType() MediaType { return MediaType(nav.CtxMediaType(e.handle)) }

// TimeBase returns the time base encoded packets are stamped in.
func (e *Encoder) TimeBase() Rational {
	num, den := nav.CtxTimeBase(e.handle)
	return Rational{Num: num, Den: den}
}

// Parameters extracts the encoder's stream parameters, for wiring into a
// muxer stream.
func (e *Encoder) Parameters() (*CodecParameters, error) {
	par, err := NewCodecParameters()
	if err != nil {
		return nil, err
	}
	if err := errorFromCode(nav.ParametersFromContext(par.handle, e.handle)); err != nil {
		par.Free()
		return nil, err
	}
	return par, nil
}

// Video narrows the encoder to its video-specific view.
func (e *Encoder) Video() (*VideoEncoder, error) {
	if e.MediaType() != MediaTypeVideo {
		return nil, ErrInvalidState
	}
	return &VideoEncoder{Encoder: e}, nil
}

// Audio narrows the encoder to its audio-specific view.
func (e *Encoder) Audio() (*AudioEncoder, error) {
	if e.MediaType() != MediaTypeAudio {
		return nil, ErrInvalidState
	}
	return &AudioEncoder{Encoder: e}, nil
}

// Close frees the encoder. Safe to call repeatedly.
func (e *Encoder) Close() error {
	e.free()
	return nil
}

// VideoEncoder is an encoder known to consume video frames.
type VideoEncoder struct {
	*Encoder
}

func (e *VideoEncoder) Width() int  { return int(nav.CtxWidth(e.handle)) }
func (e *VideoEncoder) Height() int { return int(nav.CtxHeight(e.handle)) }

func (e *VideoEncoder) PixelFormat() PixelFormat {
	return PixelFormat(nav.CtxPixelFormat(e.handle))
}

// AudioEncoder is an encoder known to consume audio frames.
type AudioEncoder struct {
	*Encoder
}

func (e *AudioEncoder) SampleRate() int { return int(nav.CtxSampleRate(e.handle)) }
func (e *AudioEncoder) Channels() int   { return int(nav.CtxChannels(e.handle)) }

func (e *AudioEncoder) SampleFormat() SampleFormat {
	return SampleFormat(nav.CtxSampleFormat(e.handle))
}

// FrameSize returns the fixed samples-per-frame the codec requires, or 0
// when any frame size is accepted.
func (e *AudioEncoder) FrameSize() int { return int(nav.CtxFrameSize(e.handle)) }
