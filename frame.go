package av

import "unsafe"

// Frame wraps a native uncompressed video picture or audio buffer. Like
// packets, frames are reusable receive targets: Unref empties a frame
// without freeing it.
type Frame struct {
	handle uintptr
}

// NewFrame allocates an empty frame with no buffers attached.
func NewFrame() (*Frame, error) {
	h := nav.FrameAlloc()
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &Frame{handle: h}, nil
}

// NewVideoFrame allocates a frame with buffers for the given picture.
func NewVideoFrame(format PixelFormat, width, height int) (*Frame, error) {
	f, err := NewFrame()
	if err != nil {
		return nil, err
	}
	f.SetPixelFormat(format)
	f.SetWidth(width)
	f.SetHeight(height)
	if err := f.AllocBuffers(); err != nil {
		f.Free()
		return nil, err
	}
	return f, nil
}

// NewAudioFrame allocates a frame with buffers for the given sample block.
func NewAudioFrame(format SampleFormat, channels, sampleRate, nbSamples int) (*Frame, error) {
	f, err := NewFrame()
	if err != nil {
		return nil, err
	}
	f.SetSampleFormat(format)
	f.SetSampleRate(sampleRate)
	f.SetNbSamples(nbSamples)
	nav.FrameSetChannelLayoutDefault(f.handle, int32(channels))
	if err := f.AllocBuffers(); err != nil {
		f.Free()
		return nil, err
	}
	return f, nil
}

// AllocBuffers allocates data planes for the currently set geometry or
// sample parameters.
func (f *Frame) AllocBuffers() error {
	return errorFromCode(nav.FrameGetBuffer(f.handle, 0))
}

func (f *Frame) Width() int          { return int(nav.FrameWidth(f.handle)) }
func (f *Frame) SetWidth(v int)      { nav.FrameSetWidth(f.handle, int32(v)) }
func (f *Frame) Height() int         { return int(nav.FrameHeight(f.handle)) }
func (f *Frame) SetHeight(v int)     { nav.FrameSetHeight(f.handle, int32(v)) }
func (f *Frame) PTS() int64          { return nav.FramePTS(f.handle) }
func (f *Frame) SetPTS(v int64)      { nav.FrameSetPTS(f.handle, v) }
func (f *Frame) NbSamples() int      { return int(nav.FrameNbSamples(f.handle)) }
func (f *Frame) SetNbSamples(v int)  { nav.FrameSetNbSamples(f.handle, int32(v)) }
func (f *Frame) SampleRate() int     { return int(nav.FrameSampleRate(f.handle)) }
func (f *Frame) SetSampleRate(v int) { nav.FrameSetSampleRate(f.handle, int32(v)) }

// IsKey reports whether the frame was decoded from a keyframe.
func (f *Frame) IsKey() bool { return nav.FrameKeyFrame(f.handle) != 0 }

// PixelFormat returns the format of a video frame.
func (f *Frame) PixelFormat() PixelFormat {
	return PixelFormat(nav.FrameFormat(f.handle))
}

func (f *Frame) SetPixelFormat(v PixelFormat) {
	nav.FrameSetFormat(f.handle, int32(v))
}

// SampleFormat returns the format of an audio frame. The native field is
// shared with the pixel format, so this is only meaningful on audio frames.
func (f *Frame) SampleFormat() SampleFormat {
	return SampleFormat(nav.FrameFormat(f.handle))
}

func (f *Frame) SetSampleFormat(v SampleFormat) {
	nav.FrameSetFormat(f.handle, int32(v))
}

// SetChannels installs the default channel layout for the given count.
func (f *Frame) SetChannels(channels int) {
	nav.FrameSetChannelLayoutDefault(f.handle, int32(channels))
}

// Plane returns plane i of the frame data as a view into native memory,
// sized by linesize and plane height. The slice is valid until the frame
// is unreferenced or freed.
func (f *Frame) Plane(i int) []byte {
	if i < 0 || i >= 8 {
		return nil
	}
	data := nav.FrameDataPtr(f.handle, i)
	if data == 0 {
		return nil
	}
	stride := int(nav.FrameLinesize(f.handle, i))
	h := f.Height()
	if stride <= 0 || h <= 0 {
		return nil
	}
	if i > 0 {
		// Chroma planes of subsampled formats are half height. Rounding
		// up keeps odd sizes covered.
		h = (h + 1) / 2
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), stride*h)
}

// Linesize returns the byte stride of plane i.
func (f *Frame) Linesize(i int) int {
	if i < 0 || i >= 8 {
		return 0
	}
	return int(nav.FrameLinesize(f.handle, i))
}

// MakeWritable ensures the frame exclusively owns its buffers, copying if
// they are shared.
func (f *Frame) MakeWritable() error {
	return errorFromCode(nav.FrameMakeWritable(f.handle))
}

// Clone returns a new frame referencing the same buffers. The clone has
// its own lifetime; freeing one does not invalidate the other.
func (f *Frame) Clone() (*Frame, error) {
	h := nav.FrameClone(f.handle)
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &Frame{handle: h}, nil
}

// Ref makes f an additional reference to src's buffers.
func (f *Frame) Ref(src *Frame) error {
	return errorFromCode(nav.FrameRef(f.handle, src.handle))
}

// Unref drops the buffers, leaving the frame empty and reusable.
func (f *Frame) Unref() {
	nav.FrameUnref(f.handle)
}

// Free releases the frame and its buffers. Safe to call repeatedly.
func (f *Frame) Free() {
	if f == nil || f.handle == 0 {
		return
	}
	nav.FrameFree(&f.handle)
	f.handle = 0
}
