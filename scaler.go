package av

// ScaleFlag selects the software scaling algorithm.
type ScaleFlag int32

const (
	ScaleFastBilinear ScaleFlag = 0x0001
	ScaleBilinear     ScaleFlag = 0x0002
	ScaleBicubic      ScaleFlag = 0x0004
	ScaleArea         ScaleFlag = 0x0020
	ScaleLanczos      ScaleFlag = 0x0200
	ScaleSpline       ScaleFlag = 0x0400
)

// Scaler converts video frames between sizes and pixel formats using the
// software scaler. A scaler is bound to one fixed source and destination
// geometry.
type Scaler struct {
	handle    uintptr
	dstFormat PixelFormat
	dstWidth  int
	dstHeight int
}

// NewScaler builds a scaler for the given conversion. flags selects the
// algorithm; ScaleBilinear is a reasonable default.
func NewScaler(srcFormat PixelFormat, srcW, srcH int, dstFormat PixelFormat, dstW, dstH int, flags ScaleFlag) (*Scaler, error) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return nil, ErrInvalidData
	}
	h := nav.SwsGetContext(
		int32(srcW), int32(srcH), int32(srcFormat),
		int32(dstW), int32(dstH), int32(dstFormat),
		int32(flags))
	if h == 0 {
		return nil, ErrInvalidData
	}
	return &Scaler{handle: h, dstFormat: dstFormat, dstWidth: dstW, dstHeight: dstH}, nil
}

// Scale converts src into dst. dst's geometry is set to the scaler's
// destination before the conversion; its buffers are allocated by the
// native side as needed.
func (s *Scaler) Scale(dst, src *Frame) error {
	if s.handle == 0 {
		return ErrInvalidState
	}
	dst.SetPixelFormat(s.dstFormat)
	dst.SetWidth(s.dstWidth)
	dst.SetHeight(s.dstHeight)
	return errorFromCode(nav.SwsScaleFrame(s.handle, dst.handle, src.handle))
}

// Close releases the scaler. Safe to call repeatedly.
func (s *Scaler) Close() error {
	if s == nil || s.handle == 0 {
		return nil
	}
	nav.SwsFreeContext(s.handle)
	s.handle = 0
	return nil
}
