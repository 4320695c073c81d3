package av

// Resampler converts audio between sample formats, rates, and channel
// counts using the software resampler.
type Resampler struct {
	handle    uintptr
	outFormat SampleFormat
	outRate   int
	outCh     int
}

// NewResampler builds a resampler for the given conversion. Default
// channel layouts are assumed for both sides.
func NewResampler(outFormat SampleFormat, outChannels, outRate int, inFormat SampleFormat, inChannels, inRate int) (*Resampler, error) {
	if outChannels <= 0 || outRate <= 0 || inChannels <= 0 || inRate <= 0 {
		return nil, ErrInvalidData
	}
	var h uintptr
	err := errorFromCode(nav.SwrAlloc(&h,
		int32(outChannels), int32(outFormat), int32(outRate),
		int32(inChannels), int32(inFormat), int32(inRate)))
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, ErrNoMemory
	}
	if err := errorFromCode(nav.SwrInit(h)); err != nil {
		nav.SwrFree(&h)
		return nil, err
	}
	return &Resampler{handle: h, outFormat: outFormat, outRate: outRate, outCh: outChannels}, nil
}

// Convert resamples src into dst. dst's sample parameters are set to the
// resampler's output before the conversion. A nil src flushes buffered
// samples into dst.
func (r *Resampler) Convert(dst, src *Frame) error {
	if r.handle == 0 {
		return ErrInvalidState
	}
	dst.SetSampleFormat(r.outFormat)
	dst.SetSampleRate(r.outRate)
	dst.SetChannels(r.outCh)
	var sh uintptr
	if src != nil {
		sh = src.handle
	}
	return errorFromCode(nav.SwrConvertFrame(r.handle, dst.handle, sh))
}

// Delay returns how many units of buffered input remain, expressed in the
// given time base denominator. Passing the output sample rate yields the
// delay in output samples.
func (r *Resampler) Delay(base int64) int64 {
	if r.handle == 0 {
		return 0
	}
	return nav.SwrGetDelay(r.handle, base)
}

// Close releases the resampler. Safe to call repeatedly.
func (r *Resampler) Close() error {
	if r == nil || r.handle == 0 {
		return nil
	}
	nav.SwrFree(&r.handle)
	r.handle = 0
	return nil
}
