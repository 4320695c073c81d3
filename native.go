package av

import "fmt"

// nativeAPI is the capability surface consumed from the FFmpeg libraries.
// Every native call the package makes goes through one of these function
// values; nothing else in the package touches a shared library directly.
//
// The production surface is bound with purego in native_load.go. Struct-field
// reads and writes on native objects are exposed here as accessor functions
// too (bound to offset peeks at load time), so the whole surface can be
// swapped for an instrumented fake in tests.
//
// All native objects are referred to by opaque uintptr handles. A handle is
// only ever produced by a matching native allocation call and is owned by
// exactly one wrapper type.
type nativeAPI struct {
	// libavutil -------------------------------------------------------------

	UtilVersion       func() uint32
	UtilConfiguration func() string
	UtilLicense       func() string

	Strerror func(code int32) string

	LogSetLevel func(level int32)
	LogGetLevel func() int32

	// Dictionaries. The double-pointer calls mirror the native in/out
	// convention: the handle may be reallocated by the callee.
	DictSet   func(pm *uintptr, key, value string, flags int32) int32
	DictGet   func(m uintptr, key string, prev uintptr, flags int32) uintptr
	DictCount func(m uintptr) int32
	DictCopy  func(dst *uintptr, src uintptr, flags int32) int32
	DictFree  func(pm *uintptr)

	DictEntryKey   func(entry uintptr) string
	DictEntryValue func(entry uintptr) string

	// Frames.
	FrameAlloc        func() uintptr
	FrameFree         func(pf *uintptr)
	FrameUnref        func(f uintptr)
	FrameRef          func(dst, src uintptr) int32
	FrameClone        func(f uintptr) uintptr
	FrameGetBuffer    func(f uintptr, align int32) int32
	FrameMakeWritable func(f uintptr) int32

	FrameWidth        func(f uintptr) int32
	FrameSetWidth     func(f uintptr, v int32)
	FrameHeight       func(f uintptr) int32
	FrameSetHeight    func(f uintptr, v int32)
	FrameFormat       func(f uintptr) int32
	FrameSetFormat    func(f uintptr, v int32)
	FramePTS          func(f uintptr) int64
	FrameSetPTS       func(f uintptr, v int64)
	FrameNbSamples    func(f uintptr) int32
	FrameSetNbSamples func(f uintptr, v int32)
	FrameSampleRate   func(f uintptr) int32
	FrameSetSampleRate func(f uintptr, v int32)
	FrameKeyFrame     func(f uintptr) int32
	FrameDataPtr      func(f uintptr, plane int) uintptr
	FrameLinesize     func(f uintptr, plane int) int32
	FrameSetChannelLayoutDefault func(f uintptr, channels int32)

	// libavcodec ------------------------------------------------------------

	CodecVersion       func() uint32
	CodecConfiguration func() string
	CodecLicense       func() string

	FindDecoder       func(id int32) uintptr
	FindEncoder       func(id int32) uintptr
	FindDecoderByName func(name string) uintptr
	FindEncoderByName func(name string) uintptr

	CodecName      func(codec uintptr) string
	CodecLongName  func(codec uintptr) string
	CodecMediaType func(codec uintptr) int32
	CodecIDOf      func(codec uintptr) int32
	CodecIDName    func(id int32) string

	CodecAllocContext func(codec uintptr) uintptr
	CodecFreeContext  func(pctx *uintptr)
	CodecOpen         func(ctx, codec uintptr, opts *uintptr) int32
	CodecFlushBuffers func(ctx uintptr)

	SendPacket    func(ctx, pkt uintptr) int32
	ReceiveFrame  func(ctx, frame uintptr) int32
	SendFrame     func(ctx, frame uintptr) int32
	ReceivePacket func(ctx, pkt uintptr) int32

	DecodeSubtitle func(ctx, sub uintptr, got *int32, pkt uintptr) int32
	SubtitleFree   func(sub uintptr)

	ParametersAlloc       func() uintptr
	ParametersFree        func(ppar *uintptr)
	ParametersCopy        func(dst, src uintptr) int32
	ParametersToContext   func(ctx, par uintptr) int32
	ParametersFromContext func(par, ctx uintptr) int32

	ParCodecType  func(par uintptr) int32
	ParCodecID    func(par uintptr) int32
	ParWidth      func(par uintptr) int32
	ParHeight     func(par uintptr) int32
	ParFormat     func(par uintptr) int32
	ParBitRate    func(par uintptr) int64
	ParSampleRate func(par uintptr) int32
	ParChannels   func(par uintptr) int32

	ParSetCodecType func(par uintptr, v int32)
	ParSetCodecID   func(par uintptr, v int32)
	ParSetWidth     func(par uintptr, v int32)
	ParSetHeight    func(par uintptr, v int32)

	CtxMediaType        func(ctx uintptr) int32
	CtxCodecID          func(ctx uintptr) int32
	CtxWidth            func(ctx uintptr) int32
	CtxSetWidth         func(ctx uintptr, v int32)
	CtxHeight           func(ctx uintptr) int32
	CtxSetHeight        func(ctx uintptr, v int32)
	CtxPixelFormat      func(ctx uintptr) int32
	CtxSetPixelFormat   func(ctx uintptr, v int32)
	CtxTimeBase         func(ctx uintptr) (num, den int32)
	CtxSetTimeBase      func(ctx uintptr, num, den int32)
	CtxSetPktTimeBase   func(ctx uintptr, num, den int32)
	CtxSetFrameRate     func(ctx uintptr, num, den int32)
	CtxBitRate          func(ctx uintptr) int64
	CtxSetBitRate       func(ctx uintptr, v int64)
	CtxSetMaxBitRate    func(ctx uintptr, v int64)
	CtxSetTolerance     func(ctx uintptr, v int32)
	CtxSetQuality       func(ctx uintptr, v int32)
	CtxSetCompression   func(ctx uintptr, v int32)
	CtxSetGOPSize       func(ctx uintptr, v int32)
	CtxSetMaxBFrames    func(ctx uintptr, v int32)
	CtxSampleRate       func(ctx uintptr) int32
	CtxSetSampleRate    func(ctx uintptr, v int32)
	CtxSampleFormat     func(ctx uintptr) int32
	CtxSetSampleFormat  func(ctx uintptr, v int32)
	CtxFrameSize        func(ctx uintptr) int32
	CtxChannels         func(ctx uintptr) int32
	CtxSetChannelLayoutDefault func(ctx uintptr, channels int32)
	CtxSetThreadCount   func(ctx uintptr, v int32)
	CtxSetSkipFrame     func(ctx uintptr, v int32)
	CtxSetSkipLoopFilter func(ctx uintptr, v int32)

	// Packets.
	PacketAlloc func() uintptr
	PacketFree  func(ppkt *uintptr)
	PacketUnref func(pkt uintptr)
	PacketRef   func(dst, src uintptr) int32
	PacketNew   func(pkt uintptr, size int32) int32

	PacketPTS            func(pkt uintptr) int64
	PacketSetPTS         func(pkt uintptr, v int64)
	PacketDTS            func(pkt uintptr) int64
	PacketSetDTS         func(pkt uintptr, v int64)
	PacketDuration       func(pkt uintptr) int64
	PacketSetDuration    func(pkt uintptr, v int64)
	PacketStreamIndex    func(pkt uintptr) int32
	PacketSetStreamIndex func(pkt uintptr, v int32)
	PacketFlags          func(pkt uintptr) int32
	PacketSize           func(pkt uintptr) int32
	PacketDataPtr        func(pkt uintptr) uintptr

	// libavformat -----------------------------------------------------------

	FormatVersion       func() uint32
	FormatConfiguration func() string
	FormatLicense       func() string

	FormatAllocContext   func() uintptr
	FormatFreeContext    func(ctx uintptr)
	FormatOpenInput      func(ps *uintptr, url string, fmt uintptr, opts *uintptr) int32
	FormatCloseInput     func(ps *uintptr)
	FormatFindStreamInfo func(ctx uintptr, opts *uintptr) int32
	FindInputFormat      func(name string) uintptr
	FormatAllocOutput    func(ps *uintptr, ofmt uintptr, formatName, filename *byte) int32
	FormatNewStream      func(ctx, codec uintptr) uintptr
	FormatWriteHeader    func(ctx uintptr, opts *uintptr) int32
	FormatWriteTrailer   func(ctx uintptr) int32
	ReadPacket           func(ctx, pkt uintptr) int32
	InterleavedWrite     func(ctx, pkt uintptr) int32
	SeekFrame            func(ctx uintptr, streamIndex int32, ts int64, flags int32) int32
	FindBestStream       func(ctx uintptr, mediaType, wanted, related int32, decoder *uintptr, flags int32) int32

	IOOpen   func(pb *uintptr, url string, flags int32, opts *uintptr) int32
	IOClose  func(pb *uintptr) int32

	FmtOFormat     func(ctx uintptr) uintptr
	OFmtName       func(ofmt uintptr) string
	OFmtFlags      func(ofmt uintptr) int32
	FmtNbStreams   func(ctx uintptr) int32
	FmtStream      func(ctx uintptr, index int) uintptr
	FmtMetadata    func(ctx uintptr) uintptr
	FmtSetMetadata func(ctx uintptr, dict uintptr)
	FmtDuration    func(ctx uintptr) int64
	FmtBitRate     func(ctx uintptr) int64
	FmtPB          func(ctx uintptr) uintptr
	FmtSetPB       func(ctx uintptr, pb uintptr)
	FmtSetInterrupt func(ctx uintptr, callback, opaque uintptr)

	StreamIndexOf      func(st uintptr) int32
	StreamCodecPar     func(st uintptr) uintptr
	StreamTimeBase     func(st uintptr) (num, den int32)
	StreamSetTimeBase  func(st uintptr, num, den int32)
	StreamAvgFrameRate func(st uintptr) (num, den int32)
	StreamMetadata     func(st uintptr) uintptr

	// libavfilter -----------------------------------------------------------

	FilterVersion       func() uint32
	FilterConfiguration func() string
	FilterLicense       func() string

	FilterGetByName  func(name string) uintptr
	FilterName       func(f uintptr) string
	FilterDesc       func(f uintptr) string
	FilterNbInputs   func(f uintptr) int32
	FilterNbOutputs  func(f uintptr) int32
	FilterPadName    func(f uintptr, output bool, i int32) string
	FilterPadType    func(f uintptr, output bool, i int32) int32

	GraphAlloc        func() uintptr
	GraphFree         func(pg *uintptr)
	GraphCreateFilter func(pctx *uintptr, filter uintptr, name string, args *byte, opaque, graph uintptr) int32
	FilterLink        func(src uintptr, srcPad uint32, dst uintptr, dstPad uint32) int32
	GraphConfig       func(graph, logCtx uintptr) int32
	BuffersrcAddFrame func(ctx, frame uintptr) int32
	BuffersinkGetFrame func(ctx, frame uintptr) int32

	// libswscale ------------------------------------------------------------

	ScaleVersion       func() uint32
	ScaleConfiguration func() string
	ScaleLicense       func() string

	SwsGetContext  func(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags int32) uintptr
	SwsFreeContext func(ctx uintptr)
	SwsScaleFrame  func(ctx, dst, src uintptr) int32

	// libswresample ---------------------------------------------------------

	ResampleVersion       func() uint32
	ResampleConfiguration func() string
	ResampleLicense       func() string

	SwrAlloc        func(ps *uintptr, outChannels, outFmt, outRate, inChannels, inFmt, inRate int32) int32
	SwrInit         func(ctx uintptr) int32
	SwrFree         func(ps *uintptr)
	SwrConvertFrame func(ctx, out, in uintptr) int32
	SwrGetDelay     func(ctx uintptr, base int64) int64
}

// nav is the active capability surface. Production code installs the purego
// bindings via Init; tests install an instrumented fake.
var nav *nativeAPI

func loaded() bool { return nav != nil }

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>16, (v>>8)&0xff, v&0xff)
}

// cBytes returns s as a NUL-terminated byte buffer for calls that accept a
// nullable C string (pass nil for NULL).
func cBytes(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0]
}
