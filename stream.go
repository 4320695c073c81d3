package av

// Stream is a view of one elementary stream inside an open container. It
// stays valid for the life of the owning Input or Output; it holds no
// native resources of its own.
type Stream struct {
	handle uintptr
}

// Index returns the stream's position in the container.
func (s *Stream) Index() int { return int(nav.StreamIndexOf(s.handle)) }

// CodecParameters returns the stream's essence description. The returned
// view is borrowed; do not free it.
func (s *Stream) CodecParameters() *CodecParameters {
	return borrowCodecParameters(nav.StreamCodecPar(s.handle))
}

// MediaType is shorthand for CodecParameters().MediaType().
func (s *Stream) MediaType() MediaType { return s.CodecParameters().MediaType() }

// CodecID is shorthand for CodecParameters().CodecID().
func (s *Stream) CodecID() CodecID { return s.CodecParameters().CodecID() }

// TimeBase returns the unit all of this stream's timestamps are in.
func (s *Stream) TimeBase() Rational {
	num, den := nav.StreamTimeBase(s.handle)
	return Rational{Num: num, Den: den}
}

// AvgFrameRate returns the average frame rate, or a zero rational when
// unknown.
func (s *Stream) AvgFrameRate() Rational {
	num, den := nav.StreamAvgFrameRate(s.handle)
	return Rational{Num: num, Den: den}
}

// Metadata returns the stream's tags as a borrowed dictionary.
func (s *Stream) Metadata() *Dictionary {
	return borrowDictionary(nav.StreamMetadata(s.handle))
}
