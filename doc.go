// Package av wraps the FFmpeg libraries behind ownership-checked Go types.
//
// Every native object lives inside exactly one wrapper: Input and Muxer own
// containers, Decoder and Encoder own codec sessions, Frame and Packet own
// buffers. Close and Free are idempotent, and operations that hand a native
// object to another owner consume the wrapper, so a use-after-free surfaces
// as ErrInvalidState instead of a crash.
//
// # Lifecycle
//
//	Demux:      OpenInput -> ReadPacket -> Close
//	Decode:     FindDecoder -> NewCodecContext -> OpenDecoder ->
//	            SendPacket/ReceiveFrame -> Drain -> Close
//	Encode:     FindEncoder -> NewCodecContext -> OpenEncoder ->
//	            SendFrame/ReceivePacket -> Drain -> Close
//	Mux:        NewOutput -> AddStream -> WriteHeader ->
//	            WritePacket -> Close
//	Filter:     NewGraph -> Create/Link -> Configure -> AddFrame/GetFrame
//
// Send/receive calls follow the native drain protocol: ErrWouldBlock asks
// the caller to run the other half of the loop, ErrEndOfStream marks
// permanent exhaustion.
//
// # Native Libraries
//
// Init loads libavutil, libavcodec, libavformat, libavfilter, libswscale,
// and libswresample at runtime with purego; no cgo is involved. Set
// AV_LIB_PATH to the directory containing the shared libraries when they
// are not on the default search path.
//
// Blocking I/O can be tied to a context.Context through OpenInputContext;
// cancellation surfaces as ErrCancelled.
package av
