package av

import (
	"context"
	"time"
)

// Input is an open demuxing container. Open it with one of the OpenInput
// variants, read compressed data with ReadPacket, and Close it when done.
type Input struct {
	handle uintptr
	intr   *interruptBridge
}

// OpenInput opens a media file or URL for reading and probes its streams.
func OpenInput(url string) (*Input, error) {
	return openInput(url, "", nil, nil)
}

// OpenInputWithOptions opens url, passing opts to the demuxer and the
// protocol layer. Options the native side recognizes are consumed from
// opts; the rest remain for the caller to inspect.
func OpenInputWithOptions(url string, opts *Dictionary) (*Input, error) {
	return openInput(url, "", opts, nil)
}

// OpenInputWithFormat opens url forcing a specific demuxer by short name,
// such as "mpegts" or "mov". opts may be nil.
func OpenInputWithFormat(url, formatName string, opts *Dictionary) (*Input, error) {
	return openInput(url, formatName, opts, nil)
}

// OpenInputContext opens url with ctx governing every blocking operation
// on the returned Input: the open itself, ReadPacket, and Seek all return
// ErrCancelled once ctx is done.
func OpenInputContext(ctx context.Context, url string, opts *Dictionary) (*Input, error) {
	return openInput(url, "", opts, contextBridge(ctx))
}

func openInput(url, formatName string, opts *Dictionary, intr *interruptBridge) (*Input, error) {
	var ifmt uintptr
	if formatName != "" {
		ifmt = nav.FindInputFormat(formatName)
		if ifmt == 0 {
			intr.release()
			return nil, ErrDemuxerNotFound
		}
	}

	var ctx uintptr
	if intr != nil {
		// The interrupt hook must be in place before the open starts
		// probing, so the context is allocated up front.
		ctx = nav.FormatAllocContext()
		if ctx == 0 {
			intr.release()
			return nil, ErrNoMemory
		}
		intr.install(ctx)
	}

	err := withOptions(opts, func(pm *uintptr) error {
		return errorFromCode(nav.FormatOpenInput(&ctx, url, ifmt, pm))
	})
	if err != nil {
		// A failed open frees the context and nils the handle.
		intr.release()
		return nil, err
	}

	if err := errorFromCode(nav.FormatFindStreamInfo(ctx, nil)); err != nil {
		nav.FormatCloseInput(&ctx)
		intr.release()
		return nil, err
	}

	return &Input{handle: ctx, intr: intr}, nil
}

// NbStreams returns the number of streams in the container.
func (in *Input) NbStreams() int {
	if in.handle == 0 {
		return 0
	}
	return int(nav.FmtNbStreams(in.handle))
}

// Stream returns stream i, or ErrStreamNotFound when out of range.
func (in *Input) Stream(i int) (*Stream, error) {
	if in.handle == 0 {
		return nil, ErrInvalidState
	}
	if i < 0 || i >= in.NbStreams() {
		return nil, ErrStreamNotFound
	}
	st := nav.FmtStream(in.handle, i)
	if st == 0 {
		return nil, ErrStreamNotFound
	}
	return &Stream{handle: st}, nil
}

// Streams returns all streams in container order.
func (in *Input) Streams() []*Stream {
	n := in.NbStreams()
	out := make([]*Stream, 0, n)
	for i := 0; i < n; i++ {
		st, err := in.Stream(i)
		if err != nil {
			break
		}
		out = append(out, st)
	}
	return out
}

// BestStream picks the most suitable stream of the given type, preferring
// default-flagged, non-attached streams the way players do.
func (in *Input) BestStream(t MediaType) (*Stream, error) {
	if in.handle == 0 {
		return nil, ErrInvalidState
	}
	idx := nav.FindBestStream(in.handle, int32(t), -1, -1, nil, 0)
	if idx < 0 {
		if err := errorFromCode(idx); err != nil {
			return nil, err
		}
		return nil, ErrStreamNotFound
	}
	return in.Stream(int(idx))
}

// Duration returns the container duration, or 0 when unknown.
func (in *Input) Duration() time.Duration {
	if in.handle == 0 {
		return 0
	}
	d := nav.FmtDuration(in.handle)
	if d <= 0 || d == NoPTS {
		return 0
	}
	return time.Duration(d) * time.Microsecond
}

// BitRate returns the total container bit rate, or 0 when unknown.
func (in *Input) BitRate() int64 {
	if in.handle == 0 {
		return 0
	}
	return nav.FmtBitRate(in.handle)
}

// Metadata returns the container-level tags as a borrowed dictionary.
func (in *Input) Metadata() *Dictionary {
	if in.handle == 0 {
		return borrowDictionary(0)
	}
	return borrowDictionary(nav.FmtMetadata(in.handle))
}

// ReadPacket fills pkt with the next packet from any stream, dropping its
// previous payload first. ErrEndOfStream marks the end of the container.
func (in *Input) ReadPacket(pkt *Packet) error {
	if in.handle == 0 {
		return ErrInvalidState
	}
	pkt.Unref()
	return errorFromCode(nav.ReadPacket(in.handle, pkt.handle))
}

// SeekFlag adjusts how Seek picks its landing point.
type SeekFlag int32

const (
	SeekBackward SeekFlag = 1 // land at or before the target
	SeekByte     SeekFlag = 2 // target is a byte offset
	SeekAny      SeekFlag = 4 // allow landing on non-keyframes
	SeekFrame    SeekFlag = 8 // target is a frame number
)

// Seek repositions the demuxer. ts is in the stream's time base, or in the
// microsecond TimeBase when streamIndex is negative. Decoders fed from
// this input should be flushed afterwards.
func (in *Input) Seek(streamIndex int, ts int64, flags SeekFlag) error {
	if in.handle == 0 {
		return ErrInvalidState
	}
	return errorFromCode(nav.SeekFrame(in.handle, int32(streamIndex), ts, int32(flags)))
}

// SeekTime seeks all streams to the given offset from the start.
func (in *Input) SeekTime(offset time.Duration) error {
	return in.Seek(-1, offset.Microseconds(), SeekBackward)
}

// Close releases the container. Safe to call repeatedly.
func (in *Input) Close() error {
	if in == nil || in.handle == 0 {
		return nil
	}
	nav.FormatCloseInput(&in.handle)
	in.handle = 0
	in.intr.release()
	in.intr = nil
	return nil
}
