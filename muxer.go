package av

import (
	"github.com/hashicorp/go-multierror"
)

// Output is an allocated muxing container before its header is written.
// Add streams, then call WriteHeader; that consumes the Output and returns
// a Muxer that accepts packets.
type Output struct {
	handle uintptr
	pb     bool // avio handle owned and must be closed
	url    string
}

// NewOutput allocates an output container for url, guessing the muxer from
// the filename. formatName forces a specific muxer by short name and may
// be empty.
func NewOutput(url, formatName string) (*Output, error) {
	var ctx uintptr
	var fname, oname *byte
	if url != "" {
		fname = cBytes(url)
	}
	if formatName != "" {
		oname = cBytes(formatName)
	}
	if err := errorFromCode(nav.FormatAllocOutput(&ctx, 0, oname, fname)); err != nil {
		return nil, err
	}
	if ctx == 0 {
		return nil, ErrMuxerNotFound
	}
	return &Output{handle: ctx, url: url}, nil
}

// FormatName returns the short name of the muxer chosen for this output.
func (o *Output) FormatName() string {
	if o.handle == 0 {
		return ""
	}
	return nav.OFmtName(nav.FmtOFormat(o.handle))
}

// AddStream appends a stream described by par and returns its view. Stream
// indexes are assigned in call order.
func (o *Output) AddStream(par *CodecParameters) (*Stream, error) {
	if o.handle == 0 {
		return nil, ErrInvalidState
	}
	st := nav.FormatNewStream(o.handle, 0)
	if st == 0 {
		return nil, ErrNoMemory
	}
	stream := &Stream{handle: st}
	if err := stream.CodecParameters().CopyFrom(par); err != nil {
		return nil, err
	}
	return stream, nil
}

// AddStreamFrom appends a stream configured from an open encoder, copying
// its parameters and time base.
func (o *Output) AddStreamFrom(enc *Encoder) (*Stream, error) {
	par, err := enc.Parameters()
	if err != nil {
		return nil, err
	}
	defer par.Free()
	st, err := o.AddStream(par)
	if err != nil {
		return nil, err
	}
	tb := enc.TimeBase()
	nav.StreamSetTimeBase(st.handle, tb.Num, tb.Den)
	return st, nil
}

// SetMetadata installs container-level tags, taking ownership of dict.
func (o *Output) SetMetadata(dict *Dictionary) error {
	if o.handle == 0 {
		return ErrInvalidState
	}
	if !dict.owned {
		return ErrInvalidState
	}
	old := nav.FmtMetadata(o.handle)
	if old != 0 {
		nav.DictFree(&old)
	}
	nav.FmtSetMetadata(o.handle, dict.handle)
	dict.handle = 0
	dict.owned = false
	return nil
}

// WriteHeader opens the underlying I/O if the muxer needs a file, writes
// the container header, and consumes the Output. opts may be nil; on
// failure the Output stays usable so options can be corrected and retried.
func (o *Output) WriteHeader(opts *Dictionary) (*Muxer, error) {
	if o.handle == 0 {
		return nil, ErrInvalidState
	}

	needsFile := nav.OFmtFlags(nav.FmtOFormat(o.handle))&ofmtNoFile == 0
	if needsFile && !o.pb && nav.FmtPB(o.handle) == 0 {
		var pb uintptr
		err := withOptions(opts, func(pm *uintptr) error {
			return errorFromCode(nav.IOOpen(&pb, o.url, ioFlagWrite, pm))
		})
		if err != nil {
			return nil, err
		}
		nav.FmtSetPB(o.handle, pb)
		o.pb = true
	}

	err := withOptions(opts, func(pm *uintptr) error {
		return errorFromCode(nav.FormatWriteHeader(o.handle, pm))
	})
	if err != nil {
		return nil, err
	}

	m := &Muxer{handle: o.handle, pb: o.pb}
	o.handle = 0
	return m, nil
}

// Free releases an output whose header was never written. After a
// successful WriteHeader this is a no-op.
func (o *Output) Free() {
	if o == nil || o.handle == 0 {
		return
	}
	if o.pb {
		pb := nav.FmtPB(o.handle)
		if pb != 0 {
			nav.IOClose(&pb)
			nav.FmtSetPB(o.handle, 0)
		}
	}
	nav.FormatFreeContext(o.handle)
	o.handle = 0
}

// Muxer is an output container with its header written. WritePacket
// interleaves packets; Close writes the trailer and releases everything.
type Muxer struct {
	handle  uintptr
	pb      bool
	trailer bool
}

// Stream returns output stream i.
func (m *Muxer) Stream(i int) (*Stream, error) {
	if m.handle == 0 {
		return nil, ErrInvalidState
	}
	if i < 0 || i >= int(nav.FmtNbStreams(m.handle)) {
		return nil, ErrStreamNotFound
	}
	st := nav.FmtStream(m.handle, i)
	if st == 0 {
		return nil, ErrStreamNotFound
	}
	return &Stream{handle: st}, nil
}

// WritePacket interleaves one packet into the output. The packet's
// timestamps must already be in the destination stream's time base; its
// payload is consumed.
func (m *Muxer) WritePacket(pkt *Packet) error {
	if m.handle == 0 || m.trailer {
		return ErrInvalidState
	}
	return errorFromCode(nav.InterleavedWrite(m.handle, pkt.handle))
}

// WriteRescaled rescales pkt from the source time base to stream's base,
// retargets it, and writes it. Convenience for remux and transcode loops.
func (m *Muxer) WriteRescaled(pkt *Packet, from Rational, stream *Stream) error {
	pkt.Rescale(from, stream.TimeBase())
	pkt.SetStreamIndex(stream.Index())
	return m.WritePacket(pkt)
}

// WriteTrailer finalizes the container index. Packets can no longer be
// written afterwards; Close remains necessary to release resources.
func (m *Muxer) WriteTrailer() error {
	if m.handle == 0 || m.trailer {
		return ErrInvalidState
	}
	m.trailer = true
	return errorFromCode(nav.FormatWriteTrailer(m.handle))
}

// Close writes the trailer if it is still pending, closes the I/O, and
// frees the container. Safe to call repeatedly; all teardown steps run
// even when earlier ones fail.
func (m *Muxer) Close() error {
	if m == nil || m.handle == 0 {
		return nil
	}
	var errs *multierror.Error
	if !m.trailer {
		if err := m.WriteTrailer(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if m.pb {
		pb := nav.FmtPB(m.handle)
		if pb != 0 {
			if err := errorFromCode(nav.IOClose(&pb)); err != nil {
				errs = multierror.Append(errs, err)
			}
			nav.FmtSetPB(m.handle, 0)
		}
	}
	nav.FormatFreeContext(m.handle)
	m.handle = 0
	if err := errs.ErrorOrNil(); err != nil {
		log().WithError(err).Warn("muxer teardown reported errors")
		return err
	}
	return nil
}

const (
	ofmtNoFile  = 0x0001
	ioFlagWrite = 2
)
