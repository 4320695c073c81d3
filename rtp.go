package av

import (
	"sync"

	"github.com/pion/rtp"
)

// RTPPacket is an alias to pion's rtp.Packet.
type RTPPacket = rtp.Packet

const (
	h264NALTypeIDR = 5
	h264NALTypeFUA = 28

	h264ClockRate = 90000
)

// H264Packetizer turns Annex-B H.264 packets, as read from a demuxer or
// received from an encoder, into RTP packets ready for a pion track.
type H264Packetizer struct {
	mu          sync.Mutex
	ssrc        uint32
	payloadType uint8
	mtu         int
	sequencer   rtp.Sequencer
}

// NewH264Packetizer builds a packetizer. mtu bounds the RTP packet size
// including the 12-byte header; values <= 0 default to 1200.
func NewH264Packetizer(ssrc uint32, payloadType uint8, mtu int) *H264Packetizer {
	if mtu <= 0 {
		mtu = 1200
	}
	return &H264Packetizer{
		ssrc:        ssrc,
		payloadType: payloadType,
		mtu:         mtu,
		sequencer:   rtp.NewRandomSequencer(),
	}
}

// Packetize converts one compressed packet into RTP packets. The packet's
// PTS is rescaled from timeBase to the 90 kHz RTP clock. NAL units larger
// than the MTU are fragmented with FU-A.
func (p *H264Packetizer) Packetize(pkt *Packet, timeBase Rational) ([]*rtp.Packet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data := pkt.Data()
	if len(data) == 0 {
		return nil, nil
	}
	nalus := splitAnnexB(data)
	if len(nalus) == 0 {
		return nil, ErrInvalidData
	}

	ts := uint32(Rescale(pkt.PTS(), timeBase, Rational{Num: 1, Den: h264ClockRate}))

	var out []*rtp.Packet
	for i, nalu := range nalus {
		last := i == len(nalus)-1
		if len(nalu) <= p.mtu-12 {
			out = append(out, p.packet(nalu, ts, last))
			continue
		}
		out = append(out, p.fragment(nalu, ts, last)...)
	}
	return out, nil
}

func (p *H264Packetizer) packet(payload []byte, ts uint32, marker bool) *rtp.Packet {
	return &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         marker,
			PayloadType:    p.payloadType,
			SequenceNumber: p.sequencer.NextSequenceNumber(),
			Timestamp:      ts,
			SSRC:           p.ssrc,
		},
		Payload: payload,
	}
}

func (p *H264Packetizer) fragment(nalu []byte, ts uint32, lastNALU bool) []*rtp.Packet {
	nalType := nalu[0] & 0x1f
	nri := nalu[0] & 0x60
	body := nalu[1:]
	// Room for the RTP header plus FU indicator and FU header.
	maxChunk := p.mtu - 14
	if maxChunk <= 0 {
		maxChunk = 1
	}

	var out []*rtp.Packet
	for off := 0; off < len(body); {
		end := off + maxChunk
		if end > len(body) {
			end = len(body)
		}
		fuHeader := nalType
		if off == 0 {
			fuHeader |= 0x80
		}
		if end == len(body) {
			fuHeader |= 0x40
		}
		payload := make([]byte, 2+end-off)
		payload[0] = nri | h264NALTypeFUA
		payload[1] = fuHeader
		copy(payload[2:], body[off:end])

		out = append(out, p.packet(payload, ts, end == len(body) && lastNALU))
		off = end
	}
	return out
}

// splitAnnexB slices data into NAL units, accepting both 3- and 4-byte
// start codes.
func splitAnnexB(data []byte) [][]byte {
	var units [][]byte
	start := -1
	for i := 0; i+2 < len(data); {
		if data[i] != 0 || data[i+1] != 0 {
			i++
			continue
		}
		codeLen := 0
		if data[i+2] == 1 {
			codeLen = 3
		} else if i+3 < len(data) && data[i+2] == 0 && data[i+3] == 1 {
			codeLen = 4
		}
		if codeLen == 0 {
			i++
			continue
		}
		if start >= 0 && i > start {
			units = append(units, data[start:i])
		}
		start = i + codeLen
		i = start
	}
	if start >= 0 && start < len(data) {
		units = append(units, data[start:])
	}
	return units
}
