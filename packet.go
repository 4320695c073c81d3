package av

import "unsafe"

// Packet wraps a native compressed-data packet. Packets are reusable: a
// demuxer fills one per ReadPacket call, and Unref returns the payload
// buffer without freeing the packet itself.
type Packet struct {
	handle uintptr
}

// NewPacket allocates an empty packet.
func NewPacket() (*Packet, error) {
	h := nav.PacketAlloc()
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &Packet{handle: h}, nil
}

// PTS returns the presentation timestamp in the stream time base.
func (p *Packet) PTS() int64        { return nav.PacketPTS(p.handle) }
func (p *Packet) SetPTS(v int64)    { nav.PacketSetPTS(p.handle, v) }
func (p *Packet) DTS() int64        { return nav.PacketDTS(p.handle) }
func (p *Packet) SetDTS(v int64)    { nav.PacketSetDTS(p.handle, v) }
func (p *Packet) Duration() int64   { return nav.PacketDuration(p.handle) }
func (p *Packet) SetDuration(v int64) { nav.PacketSetDuration(p.handle, v) }

// StreamIndex returns the index of the stream this packet belongs to.
func (p *Packet) StreamIndex() int { return int(nav.PacketStreamIndex(p.handle)) }

// SetStreamIndex retargets the packet at another stream, as when remuxing.
func (p *Packet) SetStreamIndex(i int) { nav.PacketSetStreamIndex(p.handle, int32(i)) }

// IsKey reports whether the packet starts a decodable unit.
func (p *Packet) IsKey() bool { return nav.PacketFlags(p.handle)&pktFlagKey != 0 }

// IsCorrupt reports whether the demuxer flagged the payload as damaged.
func (p *Packet) IsCorrupt() bool { return nav.PacketFlags(p.handle)&pktFlagCorrupt != 0 }

// Size returns the payload length in bytes.
func (p *Packet) Size() int { return int(nav.PacketSize(p.handle)) }

// Data returns the payload as a view into native memory. The slice is only
// valid until the next Unref, ReadPacket, or Free on this packet.
func (p *Packet) Data() []byte {
	data := nav.PacketDataPtr(p.handle)
	size := nav.PacketSize(p.handle)
	if data == 0 || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), size)
}

// SetData replaces the payload with a copy of data, as when feeding
// externally received bitstream into a muxer.
func (p *Packet) SetData(data []byte) error {
	nav.PacketUnref(p.handle)
	if len(data) == 0 {
		return nil
	}
	if err := errorFromCode(nav.PacketNew(p.handle, int32(len(data)))); err != nil {
		return err
	}
	copy(p.Data(), data)
	return nil
}

// Rescale converts the packet timestamps between time bases in place.
func (p *Packet) Rescale(from, to Rational) {
	p.SetPTS(Rescale(p.PTS(), from, to))
	p.SetDTS(Rescale(p.DTS(), from, to))
	p.SetDuration(Rescale(p.Duration(), from, to))
}

// Ref makes p an additional reference to src's payload.
func (p *Packet) Ref(src *Packet) error {
	return errorFromCode(nav.PacketRef(p.handle, src.handle))
}

// Unref drops the payload, leaving the packet empty and reusable.
func (p *Packet) Unref() {
	nav.PacketUnref(p.handle)
}

// Free releases the packet and its payload. Safe to call repeatedly.
func (p *Packet) Free() {
	if p == nil || p.handle == 0 {
		return
	}
	nav.PacketFree(&p.handle)
	p.handle = 0
}

const (
	pktFlagKey     = 0x0001
	pktFlagCorrupt = 0x0002
)
