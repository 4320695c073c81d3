//go:build darwin || linux

package av

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	loadOnce    sync.Once
	loadErr     error
	libHandles  [libCount]uintptr
)

type nativeLib int

const (
	libAVUtil nativeLib = iota
	libAVCodec
	libAVFormat
	libAVFilter
	libSwScale
	libSwResample
	libCount
)

// Sonames for the FFmpeg 6.x ABI, with unversioned fallbacks for dev setups.
var libNames = [libCount][]string{
	libAVUtil:     {"libavutil.so.58", "libavutil.so", "libavutil.58.dylib", "libavutil.dylib"},
	libAVCodec:    {"libavcodec.so.60", "libavcodec.so", "libavcodec.60.dylib", "libavcodec.dylib"},
	libAVFormat:   {"libavformat.so.60", "libavformat.so", "libavformat.60.dylib", "libavformat.dylib"},
	libAVFilter:   {"libavfilter.so.9", "libavfilter.so", "libavfilter.9.dylib", "libavfilter.dylib"},
	libSwScale:    {"libswscale.so.7", "libswscale.so", "libswscale.7.dylib", "libswscale.dylib"},
	libSwResample: {"libswresample.so.4", "libswresample.so", "libswresample.4.dylib", "libswresample.dylib"},
}

// Init loads the FFmpeg shared libraries and binds the native call surface.
// It must be called before any other function in this package. It is safe to
// call multiple times; subsequent calls return the first result.
//
// Library locations checked (in order):
//   - AV_LIB_PATH environment variable (directory)
//   - System library paths (dlopen default search)
//   - Common install prefixes (/usr/local/lib, /opt/homebrew/lib)
func Init() error {
	loadOnce.Do(func() {
		loadErr = load()
		if loadErr == nil {
			log().WithField("avutil", versionString(nav.UtilVersion())).
				Debug("ffmpeg libraries loaded")
		}
	})
	return loadErr
}

func load() error {
	for lib := nativeLib(0); lib < libCount; lib++ {
		handle, err := dlopenFirst(libPaths(lib))
		if err != nil {
			return fmt.Errorf("load %s: %w", libNames[lib][0], err)
		}
		libHandles[lib] = handle
	}
	api, err := bindAll()
	if err != nil {
		return err
	}
	nav = api
	return nil
}

func dlopenFirst(paths []string) (uintptr, error) {
	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate paths")
	}
	return 0, lastErr
}

func libPaths(lib nativeLib) []string {
	var paths []string

	if dir := os.Getenv("AV_LIB_PATH"); dir != "" {
		for _, name := range libNames[lib] {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	// Bare names first so the system linker search order applies.
	paths = append(paths, libNames[lib]...)

	prefixes := []string{"/usr/local/lib", "/usr/lib"}
	if runtime.GOOS == "darwin" {
		prefixes = []string{"/usr/local/lib", "/opt/homebrew/lib"}
	}
	for _, prefix := range prefixes {
		for _, name := range libNames[lib] {
			paths = append(paths, filepath.Join(prefix, name))
		}
	}
	return paths
}

// goStringAt converts a NUL-terminated C string pointer to a Go string.
func goStringAt(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Pointer(ptr + uintptr(length))) != 0 {
		length++
	}
	if length == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// Struct field peeks. Offsets below are for the FFmpeg 6.x ABI and were
// checked with offsetof() against avutil 58 / avcodec 60 / avformat 60
// headers. They are private to the real binding; the fake surface used in
// tests never goes through them.

func peek32(base, off uintptr) int32    { return *(*int32)(unsafe.Pointer(base + off)) }
func poke32(base, off uintptr, v int32) { *(*int32)(unsafe.Pointer(base + off)) = v }
func peek64(base, off uintptr) int64    { return *(*int64)(unsafe.Pointer(base + off)) }
func poke64(base, off uintptr, v int64) { *(*int64)(unsafe.Pointer(base + off)) = v }
func peekPtr(base, off uintptr) uintptr { return *(*uintptr)(unsafe.Pointer(base + off)) }
func pokePtr(base, off uintptr, v uintptr) {
	*(*uintptr)(unsafe.Pointer(base + off)) = v
}

const (
	// AVPacket
	offPktPTS         = 8
	offPktDTS         = 16
	offPktData        = 24
	offPktSize        = 32
	offPktStreamIndex = 36
	offPktFlags       = 40
	offPktDuration    = 64
	offPktPos         = 72

	// AVFrame
	offFrameLinesize   = 64
	offFrameWidth      = 104
	offFrameHeight     = 108
	offFrameNbSamples  = 112
	offFrameFormat     = 116
	offFrameKeyFrame   = 120
	offFramePTS        = 136
	offFrameSampleRate = 176
	offFrameChLayout   = 488

	// AVCodecContext
	offCtxCodecType   = 12
	offCtxCodecID     = 24
	offCtxBitRate     = 56
	offCtxTolerance   = 64
	offCtxGlobalQuality = 68
	offCtxCompression = 72
	offCtxTimeBase    = 100
	offCtxWidth       = 116
	offCtxHeight      = 120
	offCtxGOPSize     = 132
	offCtxPixFmt      = 136
	offCtxMaxBFrames  = 160
	offCtxMaxBitRate  = 336
	offCtxSampleRate  = 352
	offCtxSampleFmt   = 360
	offCtxFrameSize   = 364
	offCtxSkipLoopFilter = 620
	offCtxSkipFrame   = 628
	offCtxThreadCount = 672
	offCtxPktTimeBase = 696
	offCtxFramerate   = 704
	offCtxChLayout    = 912

	// AVCodecParameters
	offParCodecType  = 0
	offParCodecID    = 4
	offParFormat     = 28
	offParBitRate    = 32
	offParWidth      = 56
	offParHeight     = 60
	offParChLayout   = 112
	offParSampleRate = 136

	// AVCodec
	offCodecType     = 0
	offCodecID       = 4
	offCodecName     = 8
	offCodecLongName = 16

	// AVFormatContext
	offFmtIFormat     = 8
	offFmtOFormat     = 16
	offFmtPB          = 32
	offFmtNbStreams   = 44
	offFmtStreams     = 48
	offFmtDuration    = 72
	offFmtBitRate     = 80
	offFmtMetadata    = 176
	offFmtInterruptCB = 200

	// AVStream
	offStreamIndex        = 8
	offStreamCodecPar     = 16
	offStreamTimeBase     = 32
	offStreamMetadata     = 80
	offStreamAvgFrameRate = 88

	// AVOutputFormat
	offOFmtName  = 0
	offOFmtFlags = 44

	// AVDictionaryEntry
	offDictEntryKey   = 0
	offDictEntryValue = 8

	// AVFilter
	offFilterName        = 0
	offFilterDescription = 8
	offFilterInputs      = 16
	offFilterOutputs     = 24

	// AVChannelLayout size in bytes (order, nb_channels, union, opaque).
	chLayoutSize = 24
)

// bindAll registers every native symbol and builds the accessor closures.
func bindAll() (*nativeAPI, error) {
	api := &nativeAPI{}

	util := libHandles[libAVUtil]
	codec := libHandles[libAVCodec]
	format := libHandles[libAVFormat]
	filter := libHandles[libAVFilter]
	scale := libHandles[libSwScale]
	resample := libHandles[libSwResample]

	// Raw bindings that need wrapping before they fit the surface.
	var (
		rawStrerror        func(code int32, buf *byte, size uint64) int32
		rawUtilConfig      func() uintptr
		rawUtilLicense     func() uintptr
		rawCodecConfig     func() uintptr
		rawCodecLicense    func() uintptr
		rawFormatConfig    func() uintptr
		rawFormatLicense   func() uintptr
		rawFilterConfig    func() uintptr
		rawFilterLicense   func() uintptr
		rawScaleConfig     func() uintptr
		rawScaleLicense    func() uintptr
		rawResampleConfig  func() uintptr
		rawResampleLicense func() uintptr
		rawCodecGetName    func(id int32) uintptr
		rawChLayoutDefault func(cl uintptr, nb int32)
		rawFilterPadCount  func(f uintptr, output int32) int32
		rawPadGetName      func(pads uintptr, i int32) uintptr
		rawPadGetType      func(pads uintptr, i int32) int32
		rawSwsGetContext   func(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags int32, srcFilter, dstFilter, param uintptr) uintptr
		rawSwrAllocSetOpts func(ps *uintptr, outCl uintptr, outFmt, outRate int32, inCl uintptr, inFmt, inRate int32, logOff int32, logCtx uintptr) int32
	)

	// libavutil
	purego.RegisterLibFunc(&api.UtilVersion, util, "avutil_version")
	purego.RegisterLibFunc(&rawUtilConfig, util, "avutil_configuration")
	purego.RegisterLibFunc(&rawUtilLicense, util, "avutil_license")
	purego.RegisterLibFunc(&rawStrerror, util, "av_strerror")
	purego.RegisterLibFunc(&api.LogSetLevel, util, "av_log_set_level")
	purego.RegisterLibFunc(&api.LogGetLevel, util, "av_log_get_level")
	purego.RegisterLibFunc(&api.DictSet, util, "av_dict_set")
	purego.RegisterLibFunc(&api.DictGet, util, "av_dict_get")
	purego.RegisterLibFunc(&api.DictCount, util, "av_dict_count")
	purego.RegisterLibFunc(&api.DictCopy, util, "av_dict_copy")
	purego.RegisterLibFunc(&api.DictFree, util, "av_dict_free")
	purego.RegisterLibFunc(&api.FrameAlloc, util, "av_frame_alloc")
	purego.RegisterLibFunc(&api.FrameFree, util, "av_frame_free")
	purego.RegisterLibFunc(&api.FrameUnref, util, "av_frame_unref")
	purego.RegisterLibFunc(&api.FrameRef, util, "av_frame_ref")
	purego.RegisterLibFunc(&api.FrameClone, util, "av_frame_clone")
	purego.RegisterLibFunc(&api.FrameGetBuffer, util, "av_frame_get_buffer")
	purego.RegisterLibFunc(&api.FrameMakeWritable, util, "av_frame_make_writable")
	purego.RegisterLibFunc(&rawChLayoutDefault, util, "av_channel_layout_default")

	// libavcodec
	purego.RegisterLibFunc(&api.CodecVersion, codec, "avcodec_version")
	purego.RegisterLibFunc(&rawCodecConfig, codec, "avcodec_configuration")
	purego.RegisterLibFunc(&rawCodecLicense, codec, "avcodec_license")
	purego.RegisterLibFunc(&api.FindDecoder, codec, "avcodec_find_decoder")
	purego.RegisterLibFunc(&api.FindEncoder, codec, "avcodec_find_encoder")
	purego.RegisterLibFunc(&api.FindDecoderByName, codec, "avcodec_find_decoder_by_name")
	purego.RegisterLibFunc(&api.FindEncoderByName, codec, "avcodec_find_encoder_by_name")
	purego.RegisterLibFunc(&rawCodecGetName, codec, "avcodec_get_name")
	purego.RegisterLibFunc(&api.CodecAllocContext, codec, "avcodec_alloc_context3")
	purego.RegisterLibFunc(&api.CodecFreeContext, codec, "avcodec_free_context")
	purego.RegisterLibFunc(&api.CodecOpen, codec, "avcodec_open2")
	purego.RegisterLibFunc(&api.CodecFlushBuffers, codec, "avcodec_flush_buffers")
	purego.RegisterLibFunc(&api.SendPacket, codec, "avcodec_send_packet")
	purego.RegisterLibFunc(&api.ReceiveFrame, codec, "avcodec_receive_frame")
	purego.RegisterLibFunc(&api.SendFrame, codec, "avcodec_send_frame")
	purego.RegisterLibFunc(&api.ReceivePacket, codec, "avcodec_receive_packet")
	purego.RegisterLibFunc(&api.DecodeSubtitle, codec, "avcodec_decode_subtitle2")
	purego.RegisterLibFunc(&api.SubtitleFree, codec, "avsubtitle_free")
	purego.RegisterLibFunc(&api.ParametersAlloc, codec, "avcodec_parameters_alloc")
	purego.RegisterLibFunc(&api.ParametersFree, codec, "avcodec_parameters_free")
	purego.RegisterLibFunc(&api.ParametersCopy, codec, "avcodec_parameters_copy")
	purego.RegisterLibFunc(&api.ParametersToContext, codec, "avcodec_parameters_to_context")
	purego.RegisterLibFunc(&api.ParametersFromContext, codec, "avcodec_parameters_from_context")
	purego.RegisterLibFunc(&api.PacketAlloc, codec, "av_packet_alloc")
	purego.RegisterLibFunc(&api.PacketFree, codec, "av_packet_free")
	purego.RegisterLibFunc(&api.PacketUnref, codec, "av_packet_unref")
	purego.RegisterLibFunc(&api.PacketRef, codec, "av_packet_ref")
	purego.RegisterLibFunc(&api.PacketNew, codec, "av_new_packet")

	// libavformat
	purego.RegisterLibFunc(&api.FormatVersion, format, "avformat_version")
	purego.RegisterLibFunc(&rawFormatConfig, format, "avformat_configuration")
	purego.RegisterLibFunc(&rawFormatLicense, format, "avformat_license")
	purego.RegisterLibFunc(&api.FormatAllocContext, format, "avformat_alloc_context")
	purego.RegisterLibFunc(&api.FormatFreeContext, format, "avformat_free_context")
	purego.RegisterLibFunc(&api.FormatOpenInput, format, "avformat_open_input")
	purego.RegisterLibFunc(&api.FormatCloseInput, format, "avformat_close_input")
	purego.RegisterLibFunc(&api.FormatFindStreamInfo, format, "avformat_find_stream_info")
	purego.RegisterLibFunc(&api.FindInputFormat, format, "av_find_input_format")
	purego.RegisterLibFunc(&api.FormatAllocOutput, format, "avformat_alloc_output_context2")
	purego.RegisterLibFunc(&api.FormatNewStream, format, "avformat_new_stream")
	purego.RegisterLibFunc(&api.FormatWriteHeader, format, "avformat_write_header")
	purego.RegisterLibFunc(&api.FormatWriteTrailer, format, "av_write_trailer")
	purego.RegisterLibFunc(&api.ReadPacket, format, "av_read_frame")
	purego.RegisterLibFunc(&api.InterleavedWrite, format, "av_interleaved_write_frame")
	purego.RegisterLibFunc(&api.SeekFrame, format, "av_seek_frame")
	purego.RegisterLibFunc(&api.FindBestStream, format, "av_find_best_stream")
	purego.RegisterLibFunc(&api.IOOpen, format, "avio_open2")
	purego.RegisterLibFunc(&api.IOClose, format, "avio_closep")

	// libavfilter
	purego.RegisterLibFunc(&api.FilterVersion, filter, "avfilter_version")
	purego.RegisterLibFunc(&rawFilterConfig, filter, "avfilter_configuration")
	purego.RegisterLibFunc(&rawFilterLicense, filter, "avfilter_license")
	purego.RegisterLibFunc(&api.FilterGetByName, filter, "avfilter_get_by_name")
	purego.RegisterLibFunc(&rawFilterPadCount, filter, "avfilter_filter_pad_count")
	purego.RegisterLibFunc(&rawPadGetName, filter, "avfilter_pad_get_name")
	purego.RegisterLibFunc(&rawPadGetType, filter, "avfilter_pad_get_type")
	purego.RegisterLibFunc(&api.GraphAlloc, filter, "avfilter_graph_alloc")
	purego.RegisterLibFunc(&api.GraphFree, filter, "avfilter_graph_free")
	purego.RegisterLibFunc(&api.GraphCreateFilter, filter, "avfilter_graph_create_filter")
	purego.RegisterLibFunc(&api.FilterLink, filter, "avfilter_link")
	purego.RegisterLibFunc(&api.GraphConfig, filter, "avfilter_graph_config")
	purego.RegisterLibFunc(&api.BuffersrcAddFrame, filter, "av_buffersrc_add_frame")
	purego.RegisterLibFunc(&api.BuffersinkGetFrame, filter, "av_buffersink_get_frame")

	// libswscale
	purego.RegisterLibFunc(&api.ScaleVersion, scale, "swscale_version")
	purego.RegisterLibFunc(&rawScaleConfig, scale, "swscale_configuration")
	purego.RegisterLibFunc(&rawScaleLicense, scale, "swscale_license")
	purego.RegisterLibFunc(&rawSwsGetContext, scale, "sws_getContext")
	purego.RegisterLibFunc(&api.SwsFreeContext, scale, "sws_freeContext")
	purego.RegisterLibFunc(&api.SwsScaleFrame, scale, "sws_scale_frame")

	// libswresample
	purego.RegisterLibFunc(&api.ResampleVersion, resample, "swresample_version")
	purego.RegisterLibFunc(&rawResampleConfig, resample, "swresample_configuration")
	purego.RegisterLibFunc(&rawResampleLicense, resample, "swresample_license")
	purego.RegisterLibFunc(&rawSwrAllocSetOpts, resample, "swr_alloc_set_opts2")
	purego.RegisterLibFunc(&api.SwrInit, resample, "swr_init")
	purego.RegisterLibFunc(&api.SwrFree, resample, "swr_free")
	purego.RegisterLibFunc(&api.SwrConvertFrame, resample, "swr_convert_frame")
	purego.RegisterLibFunc(&api.SwrGetDelay, resample, "swr_get_delay")

	// Wrapped string returns.
	api.UtilConfiguration = func() string { return goStringAt(rawUtilConfig()) }
	api.UtilLicense = func() string { return goStringAt(rawUtilLicense()) }
	api.CodecConfiguration = func() string { return goStringAt(rawCodecConfig()) }
	api.CodecLicense = func() string { return goStringAt(rawCodecLicense()) }
	api.FormatConfiguration = func() string { return goStringAt(rawFormatConfig()) }
	api.FormatLicense = func() string { return goStringAt(rawFormatLicense()) }
	api.FilterConfiguration = func() string { return goStringAt(rawFilterConfig()) }
	api.FilterLicense = func() string { return goStringAt(rawFilterLicense()) }
	api.ScaleConfiguration = func() string { return goStringAt(rawScaleConfig()) }
	api.ScaleLicense = func() string { return goStringAt(rawScaleLicense()) }
	api.ResampleConfiguration = func() string { return goStringAt(rawResampleConfig()) }
	api.ResampleLicense = func() string { return goStringAt(rawResampleLicense()) }
	api.CodecIDName = func(id int32) string { return goStringAt(rawCodecGetName(id)) }

	api.Strerror = func(code int32) string {
		buf := make([]byte, 128)
		if rawStrerror(code, &buf[0], uint64(len(buf))) < 0 {
			return ""
		}
		return goStringAt(uintptr(unsafe.Pointer(&buf[0])))
	}

	// Dictionary entry accessors.
	api.DictEntryKey = func(e uintptr) string { return goStringAt(peekPtr(e, offDictEntryKey)) }
	api.DictEntryValue = func(e uintptr) string { return goStringAt(peekPtr(e, offDictEntryValue)) }

	// Frame accessors.
	api.FrameWidth = func(f uintptr) int32 { return peek32(f, offFrameWidth) }
	api.FrameSetWidth = func(f uintptr, v int32) { poke32(f, offFrameWidth, v) }
	api.FrameHeight = func(f uintptr) int32 { return peek32(f, offFrameHeight) }
	api.FrameSetHeight = func(f uintptr, v int32) { poke32(f, offFrameHeight, v) }
	api.FrameFormat = func(f uintptr) int32 { return peek32(f, offFrameFormat) }
	api.FrameSetFormat = func(f uintptr, v int32) { poke32(f, offFrameFormat, v) }
	api.FramePTS = func(f uintptr) int64 { return peek64(f, offFramePTS) }
	api.FrameSetPTS = func(f uintptr, v int64) { poke64(f, offFramePTS, v) }
	api.FrameNbSamples = func(f uintptr) int32 { return peek32(f, offFrameNbSamples) }
	api.FrameSetNbSamples = func(f uintptr, v int32) { poke32(f, offFrameNbSamples, v) }
	api.FrameSampleRate = func(f uintptr) int32 { return peek32(f, offFrameSampleRate) }
	api.FrameSetSampleRate = func(f uintptr, v int32) { poke32(f, offFrameSampleRate, v) }
	api.FrameKeyFrame = func(f uintptr) int32 { return peek32(f, offFrameKeyFrame) }
	api.FrameDataPtr = func(f uintptr, plane int) uintptr {
		return peekPtr(f, uintptr(plane)*8)
	}
	api.FrameLinesize = func(f uintptr, plane int) int32 {
		return peek32(f, offFrameLinesize+uintptr(plane)*4)
	}
	api.FrameSetChannelLayoutDefault = func(f uintptr, channels int32) {
		rawChLayoutDefault(f+offFrameChLayout, channels)
	}

	// Codec accessors.
	api.CodecName = func(c uintptr) string { return goStringAt(peekPtr(c, offCodecName)) }
	api.CodecLongName = func(c uintptr) string { return goStringAt(peekPtr(c, offCodecLongName)) }
	api.CodecMediaType = func(c uintptr) int32 { return peek32(c, offCodecType) }
	api.CodecIDOf = func(c uintptr) int32 { return peek32(c, offCodecID) }

	// Codec context accessors.
	api.CtxMediaType = func(ctx uintptr) int32 { return peek32(ctx, offCtxCodecType) }
	api.CtxCodecID = func(ctx uintptr) int32 { return peek32(ctx, offCtxCodecID) }
	api.CtxWidth = func(ctx uintptr) int32 { return peek32(ctx, offCtxWidth) }
	api.CtxSetWidth = func(ctx uintptr, v int32) { poke32(ctx, offCtxWidth, v) }
	api.CtxHeight = func(ctx uintptr) int32 { return peek32(ctx, offCtxHeight) }
	api.CtxSetHeight = func(ctx uintptr, v int32) { poke32(ctx, offCtxHeight, v) }
	api.CtxPixelFormat = func(ctx uintptr) int32 { return peek32(ctx, offCtxPixFmt) }
	api.CtxSetPixelFormat = func(ctx uintptr, v int32) { poke32(ctx, offCtxPixFmt, v) }
	api.CtxTimeBase = func(ctx uintptr) (int32, int32) {
		return peek32(ctx, offCtxTimeBase), peek32(ctx, offCtxTimeBase+4)
	}
	api.CtxSetTimeBase = func(ctx uintptr, num, den int32) {
		poke32(ctx, offCtxTimeBase, num)
		poke32(ctx, offCtxTimeBase+4, den)
	}
	api.CtxSetPktTimeBase = func(ctx uintptr, num, den int32) {
		poke32(ctx, offCtxPktTimeBase, num)
		poke32(ctx, offCtxPktTimeBase+4, den)
	}
	api.CtxSetFrameRate = func(ctx uintptr, num, den int32) {
		poke32(ctx, offCtxFramerate, num)
		poke32(ctx, offCtxFramerate+4, den)
	}
	api.CtxBitRate = func(ctx uintptr) int64 { return peek64(ctx, offCtxBitRate) }
	api.CtxSetBitRate = func(ctx uintptr, v int64) { poke64(ctx, offCtxBitRate, v) }
	api.CtxSetMaxBitRate = func(ctx uintptr, v int64) { poke64(ctx, offCtxMaxBitRate, v) }
	api.CtxSetTolerance = func(ctx uintptr, v int32) { poke32(ctx, offCtxTolerance, v) }
	api.CtxSetQuality = func(ctx uintptr, v int32) { poke32(ctx, offCtxGlobalQuality, v) }
	api.CtxSetCompression = func(ctx uintptr, v int32) { poke32(ctx, offCtxCompression, v) }
	api.CtxSetGOPSize = func(ctx uintptr, v int32) { poke32(ctx, offCtxGOPSize, v) }
	api.CtxSetMaxBFrames = func(ctx uintptr, v int32) { poke32(ctx, offCtxMaxBFrames, v) }
	api.CtxSampleRate = func(ctx uintptr) int32 { return peek32(ctx, offCtxSampleRate) }
	api.CtxSetSampleRate = func(ctx uintptr, v int32) { poke32(ctx, offCtxSampleRate, v) }
	api.CtxSampleFormat = func(ctx uintptr) int32 { return peek32(ctx, offCtxSampleFmt) }
	api.CtxSetSampleFormat = func(ctx uintptr, v int32) { poke32(ctx, offCtxSampleFmt, v) }
	api.CtxFrameSize = func(ctx uintptr) int32 { return peek32(ctx, offCtxFrameSize) }
	api.CtxChannels = func(ctx uintptr) int32 { return peek32(ctx, offCtxChLayout+4) }
	api.CtxSetChannelLayoutDefault = func(ctx uintptr, channels int32) {
		rawChLayoutDefault(ctx+offCtxChLayout, channels)
	}
	api.CtxSetThreadCount = func(ctx uintptr, v int32) { poke32(ctx, offCtxThreadCount, v) }
	api.CtxSetSkipFrame = func(ctx uintptr, v int32) { poke32(ctx, offCtxSkipFrame, v) }
	api.CtxSetSkipLoopFilter = func(ctx uintptr, v int32) { poke32(ctx, offCtxSkipLoopFilter, v) }

	// Codec parameters accessors.
	api.ParCodecType = func(p uintptr) int32 { return peek32(p, offParCodecType) }
	api.ParCodecID = func(p uintptr) int32 { return peek32(p, offParCodecID) }
	api.ParWidth = func(p uintptr) int32 { return peek32(p, offParWidth) }
	api.ParHeight = func(p uintptr) int32 { return peek32(p, offParHeight) }
	api.ParFormat = func(p uintptr) int32 { return peek32(p, offParFormat) }
	api.ParBitRate = func(p uintptr) int64 { return peek64(p, offParBitRate) }
	api.ParSampleRate = func(p uintptr) int32 { return peek32(p, offParSampleRate) }
	api.ParChannels = func(p uintptr) int32 { return peek32(p, offParChLayout+4) }
	api.ParSetCodecType = func(p uintptr, v int32) { poke32(p, offParCodecType, v) }
	api.ParSetCodecID = func(p uintptr, v int32) { poke32(p, offParCodecID, v) }
	api.ParSetWidth = func(p uintptr, v int32) { poke32(p, offParWidth, v) }
	api.ParSetHeight = func(p uintptr, v int32) { poke32(p, offParHeight, v) }

	// Packet accessors.
	api.PacketPTS = func(p uintptr) int64 { return peek64(p, offPktPTS) }
	api.PacketSetPTS = func(p uintptr, v int64) { poke64(p, offPktPTS, v) }
	api.PacketDTS = func(p uintptr) int64 { return peek64(p, offPktDTS) }
	api.PacketSetDTS = func(p uintptr, v int64) { poke64(p, offPktDTS, v) }
	api.PacketDuration = func(p uintptr) int64 { return peek64(p, offPktDuration) }
	api.PacketSetDuration = func(p uintptr, v int64) { poke64(p, offPktDuration, v) }
	api.PacketStreamIndex = func(p uintptr) int32 { return peek32(p, offPktStreamIndex) }
	api.PacketSetStreamIndex = func(p uintptr, v int32) { poke32(p, offPktStreamIndex, v) }
	api.PacketFlags = func(p uintptr) int32 { return peek32(p, offPktFlags) }
	api.PacketSize = func(p uintptr) int32 { return peek32(p, offPktSize) }
	api.PacketDataPtr = func(p uintptr) uintptr { return peekPtr(p, offPktData) }

	// Format context accessors.
	api.FmtOFormat = func(ctx uintptr) uintptr { return peekPtr(ctx, offFmtOFormat) }
	api.OFmtName = func(ofmt uintptr) string { return goStringAt(peekPtr(ofmt, offOFmtName)) }
	api.OFmtFlags = func(ofmt uintptr) int32 { return peek32(ofmt, offOFmtFlags) }
	api.FmtNbStreams = func(ctx uintptr) int32 {
		return int32(*(*uint32)(unsafe.Pointer(ctx + offFmtNbStreams)))
	}
	api.FmtStream = func(ctx uintptr, index int) uintptr {
		streams := peekPtr(ctx, offFmtStreams)
		if streams == 0 {
			return 0
		}
		return peekPtr(streams, uintptr(index)*8)
	}
	api.FmtMetadata = func(ctx uintptr) uintptr { return peekPtr(ctx, offFmtMetadata) }
	api.FmtSetMetadata = func(ctx uintptr, dict uintptr) { pokePtr(ctx, offFmtMetadata, dict) }
	api.FmtDuration = func(ctx uintptr) int64 { return peek64(ctx, offFmtDuration) }
	api.FmtBitRate = func(ctx uintptr) int64 { return peek64(ctx, offFmtBitRate) }
	api.FmtPB = func(ctx uintptr) uintptr { return peekPtr(ctx, offFmtPB) }
	api.FmtSetPB = func(ctx uintptr, pb uintptr) { pokePtr(ctx, offFmtPB, pb) }
	api.FmtSetInterrupt = func(ctx uintptr, callback, opaque uintptr) {
		pokePtr(ctx, offFmtInterruptCB, callback)
		pokePtr(ctx, offFmtInterruptCB+8, opaque)
	}

	// Stream accessors.
	api.StreamIndexOf = func(st uintptr) int32 { return peek32(st, offStreamIndex) }
	api.StreamCodecPar = func(st uintptr) uintptr { return peekPtr(st, offStreamCodecPar) }
	api.StreamTimeBase = func(st uintptr) (int32, int32) {
		return peek32(st, offStreamTimeBase), peek32(st, offStreamTimeBase+4)
	}
	api.StreamSetTimeBase = func(st uintptr, num, den int32) {
		poke32(st, offStreamTimeBase, num)
		poke32(st, offStreamTimeBase+4, den)
	}
	api.StreamAvgFrameRate = func(st uintptr) (int32, int32) {
		return peek32(st, offStreamAvgFrameRate), peek32(st, offStreamAvgFrameRate+4)
	}
	api.StreamMetadata = func(st uintptr) uintptr { return peekPtr(st, offStreamMetadata) }

	// Filter accessors.
	api.FilterName = func(f uintptr) string { return goStringAt(peekPtr(f, offFilterName)) }
	api.FilterDesc = func(f uintptr) string { return goStringAt(peekPtr(f, offFilterDescription)) }
	api.FilterNbInputs = func(f uintptr) int32 { return rawFilterPadCount(f, 0) }
	api.FilterNbOutputs = func(f uintptr) int32 { return rawFilterPadCount(f, 1) }
	api.FilterPadName = func(f uintptr, output bool, i int32) string {
		off := uintptr(offFilterInputs)
		if output {
			off = offFilterOutputs
		}
		return goStringAt(rawPadGetName(peekPtr(f, off), i))
	}
	api.FilterPadType = func(f uintptr, output bool, i int32) int32 {
		off := uintptr(offFilterInputs)
		if output {
			off = offFilterOutputs
		}
		return rawPadGetType(peekPtr(f, off), i)
	}

	// Scaler and resampler wrappers.
	api.SwsGetContext = func(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags int32) uintptr {
		return rawSwsGetContext(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags, 0, 0, 0)
	}
	api.SwrAlloc = func(ps *uintptr, outChannels, outFmt, outRate, inChannels, inFmt, inRate int32) int32 {
		var outCl, inCl [chLayoutSize]byte
		rawChLayoutDefault(uintptr(unsafe.Pointer(&outCl[0])), outChannels)
		rawChLayoutDefault(uintptr(unsafe.Pointer(&inCl[0])), inChannels)
		ret := rawSwrAllocSetOpts(ps,
			uintptr(unsafe.Pointer(&outCl[0])), outFmt, outRate,
			uintptr(unsafe.Pointer(&inCl[0])), inFmt, inRate, 0, 0)
		runtime.KeepAlive(&outCl)
		runtime.KeepAlive(&inCl)
		return ret
	}

	return api, nil
}
