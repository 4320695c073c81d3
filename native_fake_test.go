package av

import (
	"strings"
	"sync"
	"testing"
	"unsafe"
)

// fakeNative is an instrumented in-memory stand-in for the FFmpeg surface.
// Every allocation and free is counted per kind, so tests can assert that
// wrappers release exactly what they acquire. Behavior mirrors the native
// contracts the wrappers depend on: the send/receive drain protocol,
// option-dictionary consumption with reallocation, and errno-style status
// codes.
type fakeNative struct {
	mu         sync.Mutex
	nextHandle uintptr

	allocs map[string]int
	frees  map[string]int

	packets    map[uintptr]*fakePacket
	frames     map[uintptr]*fakeFrame
	codecs     map[uintptr]*fakeCodec
	ctxs       map[uintptr]*fakeCodecCtx
	pars       map[uintptr]*fakeParams
	dicts      map[uintptr]*fakeDict
	fmts       map[uintptr]*fakeFmtCtx
	streams    map[uintptr]*fakeStream
	oformats   map[uintptr]*fakeOutputFormat
	iformats   map[uintptr]string
	ios        map[uintptr]bool
	filterDefs map[uintptr]*fakeFilterDef
	graphs     map[uintptr]*fakeGraph
	filterInst map[uintptr]*fakeFilterInst
	scalers    map[uintptr]*fakeScaler
	resamplers map[uintptr]*fakeResampler

	media    map[string]*fakeMedia
	logLevel int32

	// Injectable failures.
	ioCloseErr    int32
	writeHeadErr  int32
	codecOpenErr  map[string]int32 // codec name -> status
	sendQueueCap  int
}

type fakePacket struct {
	pts, dts, duration int64
	stream, flags      int32
	data               []byte
}

type fakeFrame struct {
	width, height, format int32
	nbSamples, sampleRate int32
	channels              int32
	keyFrame              int32
	pts                   int64
	buffered              bool
}

type fakeCodec struct {
	name, longName string
	mediaType      int32
	id             int32
	encoder        bool
}

type fakeCodecCtx struct {
	codec  *fakeCodec
	opened bool

	mediaType, width, height, pixFmt         int32
	sampleRate, sampleFmt, frameSize, chans  int32
	gopSize, maxB, threads, skipF, skipLF    int32
	tbNum, tbDen, pktTbNum, pktTbDen         int32
	frNum, frDen, tolerance, quality, compr  int32
	bitRate, maxBitRate                      int64

	pending  []int64 // output timestamps not yet received
	draining bool
}

type fakeParams struct {
	mediaType, codecID, format      int32
	width, height                   int32
	sampleRate, channels            int32
	bitRate                         int64
}

type fakeDict struct {
	keys []string
	vals []string
}

type fakeStream struct {
	index          int32
	par            uintptr
	tbNum, tbDen   int32
	frNum, frDen   int32
	metadata       uintptr
}

type fakeFmtCtx struct {
	url        string
	media      *fakeMedia
	pos        int
	streams    []uintptr
	metadata   uintptr
	pb         uintptr
	intrCB     uintptr
	intrOpaque uintptr

	// Output side.
	oformat       uintptr
	headerWritten bool
	trailerDone   bool
	written       []writtenPacket
}

type writtenPacket struct {
	stream int32
	pts    int64
	dts    int64
}

type fakeOutputFormat struct {
	name  string
	flags int32
}

type fakeMedia struct {
	streams  []fakeMediaStream
	packets  []fakeMediaPacket
	duration int64
	bitRate  int64
	metadata map[string]string
}

type fakeMediaStream struct {
	mediaType, codecID int32
	width, height      int32
	format             int32
	sampleRate, chans  int32
	tbNum, tbDen       int32
}

type fakeMediaPacket struct {
	stream int32
	pts    int64
	key    bool
	data   []byte
}

type fakeFilterDef struct {
	name, desc         string
	nbInputs, nbOutputs int32
	padType            int32
}

type fakeGraph struct {
	instances  []uintptr
	configured bool
	queue      []int64
	srcEOF     bool
}

type fakeFilterInst struct {
	def      *fakeFilterDef
	graph    uintptr
	name     string
	args     string
	inLinks  int32
	outLinks int32
}

type fakeScaler struct {
	srcW, srcH, srcFmt int32
	dstW, dstH, dstFmt int32
	flags              int32
	scaled             int
}

type fakeResampler struct {
	outCh, outFmt, outRate int32
	inCh, inFmt, inRate    int32
	inited                 bool
	converted              int
}

func newFakeNative() *fakeNative {
	f := &fakeNative{
		allocs:       make(map[string]int),
		frees:        make(map[string]int),
		packets:      make(map[uintptr]*fakePacket),
		frames:       make(map[uintptr]*fakeFrame),
		codecs:       make(map[uintptr]*fakeCodec),
		ctxs:         make(map[uintptr]*fakeCodecCtx),
		pars:         make(map[uintptr]*fakeParams),
		dicts:        make(map[uintptr]*fakeDict),
		fmts:         make(map[uintptr]*fakeFmtCtx),
		streams:      make(map[uintptr]*fakeStream),
		oformats:     make(map[uintptr]*fakeOutputFormat),
		iformats:     make(map[uintptr]string),
		ios:          make(map[uintptr]bool),
		filterDefs:   make(map[uintptr]*fakeFilterDef),
		graphs:       make(map[uintptr]*fakeGraph),
		filterInst:   make(map[uintptr]*fakeFilterInst),
		scalers:      make(map[uintptr]*fakeScaler),
		resamplers:   make(map[uintptr]*fakeResampler),
		media:        make(map[string]*fakeMedia),
		codecOpenErr: make(map[string]int32),
		logLevel:     int32(LogInfo),
		sendQueueCap: 4,
	}
	f.registerCodecs()
	f.registerFilters()
	f.registerOutputFormats()
	return f
}

// installFake swaps the package's native surface for a fresh fake and
// restores the previous one when the test ends.
func installFake(t *testing.T) *fakeNative {
	t.Helper()
	f := newFakeNative()
	prev := nav
	nav = f.api()
	t.Cleanup(func() { nav = prev })
	return f
}

func (f *fakeNative) handle() uintptr {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeNative) alloc(kind string) uintptr {
	f.allocs[kind]++
	return f.handle()
}

func (f *fakeNative) freed(kind string) {
	f.frees[kind]++
}

// leaks returns kinds whose alloc and free counts disagree.
func (f *fakeNative) leaks() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int)
	for kind, n := range f.allocs {
		if d := n - f.frees[kind]; d != 0 {
			out[kind] = d
		}
	}
	return out
}

func requireNoLeaks(t *testing.T, f *fakeNative) {
	t.Helper()
	if leaks := f.leaks(); len(leaks) != 0 {
		t.Fatalf("native handles leaked: %v", leaks)
	}
}

func (f *fakeNative) registerCodecs() {
	for _, c := range []*fakeCodec{
		{name: "h264", longName: "H.264 / AVC", mediaType: 0, id: 27},
		{name: "h264", longName: "H.264 / AVC encoder", mediaType: 0, id: 27, encoder: true},
		{name: "aac", longName: "AAC (Advanced Audio Coding)", mediaType: 1, id: 86018},
		{name: "opus", longName: "Opus", mediaType: 1, id: 86076, encoder: true},
		{name: "opus", longName: "Opus", mediaType: 1, id: 86076},
		{name: "subrip", longName: "SubRip subtitle", mediaType: 3, id: 94216},
	} {
		f.codecs[f.handle()] = c
	}
}

func (f *fakeNative) findCodec(id int32, encoder bool) uintptr {
	for h, c := range f.codecs {
		if c.id == id && c.encoder == encoder {
			return h
		}
	}
	return 0
}

func (f *fakeNative) findCodecByName(name string, encoder bool) uintptr {
	for h, c := range f.codecs {
		if c.name == name && c.encoder == encoder {
			return h
		}
	}
	return 0
}

func (f *fakeNative) registerFilters() {
	for _, d := range []*fakeFilterDef{
		{name: "buffer", desc: "Buffer video frames", nbInputs: 0, nbOutputs: 1},
		{name: "buffersink", desc: "Buffer video frames as sink", nbInputs: 1, nbOutputs: 0},
		{name: "scale", desc: "Scale the input video", nbInputs: 1, nbOutputs: 1},
		{name: "format", desc: "Convert the input video to one of the specified pixel formats", nbInputs: 1, nbOutputs: 1},
	} {
		f.filterDefs[f.handle()] = d
	}
}

func (f *fakeNative) registerOutputFormats() {
	for _, o := range []*fakeOutputFormat{
		{name: "mp4"},
		{name: "matroska"},
		{name: "mpegts"},
		{name: "null", flags: ofmtNoFile},
	} {
		f.oformats[f.handle()] = o
	}
}

func (f *fakeNative) findOutputFormat(name string) uintptr {
	for h, o := range f.oformats {
		if o.name == name {
			return h
		}
	}
	return 0
}

// addMedia registers a synthetic container at url with one video stream
// (h264, 1280x720, 1/90000) and one audio stream (aac, 48 kHz stereo),
// holding n interleaved video packets.
func (f *fakeNative) addMedia(url string, n int) *fakeMedia {
	m := &fakeMedia{
		streams: []fakeMediaStream{
			{mediaType: 0, codecID: 27, width: 1280, height: 720, format: 0, tbNum: 1, tbDen: 90000},
			{mediaType: 1, codecID: 86018, sampleRate: 48000, chans: 2, format: 8, tbNum: 1, tbDen: 48000},
		},
		duration: 2_000_000,
		bitRate:  4_000_000,
		metadata: map[string]string{"title": "synthetic"},
	}
	for i := 0; i < n; i++ {
		m.packets = append(m.packets, fakeMediaPacket{
			stream: 0,
			pts:    int64(i) * 3000,
			key:    i == 0,
			data:   []byte{0, 0, 0, 1, 0x65, byte(i)},
		})
	}
	f.media[url] = m
	return m
}

func goStrAt(b *byte) string {
	if b == nil {
		return ""
	}
	return goStringAt(uintptr(unsafe.Pointer(b)))
}

// dictConsume removes key from the dict at *pm, reallocating the map the
// way the native option parser does. Freeing the old handle and returning
// a new one is what forces callers into the disown/re-own dance.
func (f *fakeNative) dictConsume(pm *uintptr, key string) {
	if pm == nil || *pm == 0 {
		return
	}
	old, ok := f.dicts[*pm]
	if !ok {
		return
	}
	found := false
	for _, k := range old.keys {
		if k == key {
			found = true
		}
	}
	if !found {
		return
	}
	nh := f.alloc("dict")
	nd := &fakeDict{}
	for i, k := range old.keys {
		if k != key {
			nd.keys = append(nd.keys, k)
			nd.vals = append(nd.vals, old.vals[i])
		}
	}
	delete(f.dicts, *pm)
	f.freed("dict")
	f.dicts[nh] = nd
	*pm = nh
}

func (f *fakeNative) dictFromMap(m map[string]string) uintptr {
	if len(m) == 0 {
		return 0
	}
	h := f.alloc("dict")
	d := &fakeDict{}
	for k, v := range m {
		d.keys = append(d.keys, k)
		d.vals = append(d.vals, v)
	}
	f.dicts[h] = d
	return h
}

// interruptFired reports whether the predicate registered under opaque
// asks for cancellation.
func interruptFired(cb, opaque uintptr) bool {
	if cb == 0 {
		return false
	}
	interrupts.Lock()
	fn := interrupts.fns[opaque]
	interrupts.Unlock()
	return fn != nil && fn()
}

// api builds the nativeAPI view over the fake.
func (f *fakeNative) api() *nativeAPI {
	api := &nativeAPI{}

	lock := func(fn func()) {
		f.mu.Lock()
		defer f.mu.Unlock()
		fn()
	}

	// Versions and metadata.
	api.UtilVersion = func() uint32 { return 58<<16 | 29<<8 | 100 }
	api.CodecVersion = func() uint32 { return 60<<16 | 31<<8 | 102 }
	api.FormatVersion = func() uint32 { return 60<<16 | 16<<8 | 100 }
	api.FilterVersion = func() uint32 { return 9<<16 | 12<<8 | 100 }
	api.ScaleVersion = func() uint32 { return 7<<16 | 5<<8 | 100 }
	api.ResampleVersion = func() uint32 { return 4<<16 | 12<<8 | 100 }
	api.UtilConfiguration = func() string { return "--fake" }
	api.CodecConfiguration = func() string { return "--fake" }
	api.FormatConfiguration = func() string { return "--fake" }
	api.FilterConfiguration = func() string { return "--fake" }
	api.ScaleConfiguration = func() string { return "--fake" }
	api.ResampleConfiguration = func() string { return "--fake" }
	api.UtilLicense = func() string { return "LGPL version 2.1 or later" }
	api.CodecLicense = func() string { return "LGPL version 2.1 or later" }
	api.FormatLicense = func() string { return "LGPL version 2.1 or later" }
	api.FilterLicense = func() string { return "LGPL version 2.1 or later" }
	api.ScaleLicense = func() string { return "LGPL version 2.1 or later" }
	api.ResampleLicense = func() string { return "LGPL version 2.1 or later" }

	api.Strerror = func(code int32) string { return "fake native error" }
	api.LogSetLevel = func(level int32) { lock(func() { f.logLevel = level }) }
	api.LogGetLevel = func() (level int32) {
		lock(func() { level = f.logLevel })
		return
	}

	// Dictionaries.
	api.DictSet = func(pm *uintptr, key, value string, flags int32) (ret int32) {
		lock(func() {
			if *pm == 0 {
				*pm = f.alloc("dict")
				f.dicts[*pm] = &fakeDict{}
			}
			d := f.dicts[*pm]
			for i, k := range d.keys {
				if k == key {
					d.vals[i] = value
					return
				}
			}
			d.keys = append(d.keys, key)
			d.vals = append(d.vals, value)
		})
		return 0
	}
	// Entry handles encode dict handle and index; key lookup ignores
	// matching flags beyond exact match.
	api.DictGet = func(m uintptr, key string, prev uintptr, flags int32) (entry uintptr) {
		lock(func() {
			d := f.dicts[m]
			if d == nil {
				return
			}
			start := 0
			if prev != 0 {
				start = int(prev-m*1000) + 1
			}
			for i := start; i < len(d.keys); i++ {
				if key == "" || d.keys[i] == key {
					entry = m*1000 + uintptr(i)
					return
				}
			}
		})
		return
	}
	api.DictEntryKey = func(entry uintptr) (s string) {
		lock(func() {
			d := f.dicts[entry/1000]
			if d != nil {
				s = d.keys[int(entry%1000)]
			}
		})
		return
	}
	api.DictEntryValue = func(entry uintptr) (s string) {
		lock(func() {
			d := f.dicts[entry/1000]
			if d != nil {
				s = d.vals[int(entry%1000)]
			}
		})
		return
	}
	api.DictCount = func(m uintptr) (n int32) {
		lock(func() {
			if d := f.dicts[m]; d != nil {
				n = int32(len(d.keys))
			}
		})
		return
	}
	api.DictCopy = func(dst *uintptr, src uintptr, flags int32) int32 {
		lock(func() {
			sd := f.dicts[src]
			if sd == nil {
				return
			}
			if *dst == 0 {
				*dst = f.alloc("dict")
				f.dicts[*dst] = &fakeDict{}
			}
			dd := f.dicts[*dst]
			dd.keys = append(dd.keys, sd.keys...)
			dd.vals = append(dd.vals, sd.vals...)
		})
		return 0
	}
	api.DictFree = func(pm *uintptr) {
		lock(func() {
			if *pm == 0 {
				return
			}
			if _, ok := f.dicts[*pm]; ok {
				delete(f.dicts, *pm)
				f.freed("dict")
			}
			*pm = 0
		})
	}

	// Frames.
	api.FrameAlloc = func() (h uintptr) {
		lock(func() {
			h = f.alloc("frame")
			f.frames[h] = &fakeFrame{format: -1}
		})
		return
	}
	api.FrameFree = func(pf *uintptr) {
		lock(func() {
			if *pf == 0 {
				return
			}
			if _, ok := f.frames[*pf]; ok {
				delete(f.frames, *pf)
				f.freed("frame")
			}
			*pf = 0
		})
	}
	api.FrameUnref = func(h uintptr) {
		lock(func() {
			if fr := f.frames[h]; fr != nil {
				*fr = fakeFrame{format: -1}
			}
		})
	}
	api.FrameRef = func(dst, src uintptr) (ret int32) {
		lock(func() {
			d, s := f.frames[dst], f.frames[src]
			if d == nil || s == nil {
				ret = codeInval
				return
			}
			*d = *s
		})
		return
	}
	api.FrameClone = func(src uintptr) (h uintptr) {
		lock(func() {
			s := f.frames[src]
			if s == nil {
				return
			}
			h = f.alloc("frame")
			cp := *s
			f.frames[h] = &cp
		})
		return
	}
	api.FrameGetBuffer = func(h uintptr, align int32) (ret int32) {
		lock(func() {
			fr := f.frames[h]
			if fr == nil {
				ret = codeInval
				return
			}
			video := fr.width > 0 && fr.height > 0
			audio := fr.nbSamples > 0 && fr.channels > 0
			if !video && !audio {
				ret = codeInval
				return
			}
			fr.buffered = true
		})
		return
	}
	api.FrameMakeWritable = func(h uintptr) int32 { return 0 }
	api.FrameWidth = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].width }); return }
	api.FrameSetWidth = func(h uintptr, v int32) { lock(func() { f.frames[h].width = v }) }
	api.FrameHeight = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].height }); return }
	api.FrameSetHeight = func(h uintptr, v int32) { lock(func() { f.frames[h].height = v }) }
	api.FrameFormat = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].format }); return }
	api.FrameSetFormat = func(h uintptr, v int32) { lock(func() { f.frames[h].format = v }) }
	api.FramePTS = func(h uintptr) (v int64) { lock(func() { v = f.frames[h].pts }); return }
	api.FrameSetPTS = func(h uintptr, v int64) { lock(func() { f.frames[h].pts = v }) }
	api.FrameNbSamples = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].nbSamples }); return }
	api.FrameSetNbSamples = func(h uintptr, v int32) { lock(func() { f.frames[h].nbSamples = v }) }
	api.FrameSampleRate = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].sampleRate }); return }
	api.FrameSetSampleRate = func(h uintptr, v int32) { lock(func() { f.frames[h].sampleRate = v }) }
	api.FrameKeyFrame = func(h uintptr) (v int32) { lock(func() { v = f.frames[h].keyFrame }); return }
	api.FrameDataPtr = func(h uintptr, plane int) uintptr { return 0 }
	api.FrameLinesize = func(h uintptr, plane int) int32 { return 0 }
	api.FrameSetChannelLayoutDefault = func(h uintptr, channels int32) {
		lock(func() { f.frames[h].channels = channels })
	}

	// Codec lookup.
	api.FindDecoder = func(id int32) (h uintptr) {
		lock(func() { h = f.findCodec(id, false) })
		return
	}
	api.FindEncoder = func(id int32) (h uintptr) {
		lock(func() { h = f.findCodec(id, true) })
		return
	}
	api.FindDecoderByName = func(name string) (h uintptr) {
		lock(func() { h = f.findCodecByName(name, false) })
		return
	}
	api.FindEncoderByName = func(name string) (h uintptr) {
		lock(func() { h = f.findCodecByName(name, true) })
		return
	}
	api.CodecName = func(h uintptr) (s string) { lock(func() { s = f.codecs[h].name }); return }
	api.CodecLongName = func(h uintptr) (s string) { lock(func() { s = f.codecs[h].longName }); return }
	api.CodecMediaType = func(h uintptr) (v int32) { lock(func() { v = f.codecs[h].mediaType }); return }
	api.CodecIDOf = func(h uintptr) (v int32) { lock(func() { v = f.codecs[h].id }); return }
	api.CodecIDName = func(id int32) (s string) {
		lock(func() {
			for _, c := range f.codecs {
				if c.id == id {
					s = c.name
					return
				}
			}
		})
		return
	}

	// Codec contexts.
	api.CodecAllocContext = func(codec uintptr) (h uintptr) {
		lock(func() {
			c := f.codecs[codec]
			if c == nil {
				return
			}
			h = f.alloc("codecctx")
			f.ctxs[h] = &fakeCodecCtx{codec: c, mediaType: c.mediaType, pixFmt: -1, sampleFmt: -1}
		})
		return
	}
	api.CodecFreeContext = func(pctx *uintptr) {
		lock(func() {
			if *pctx == 0 {
				return
			}
			if _, ok := f.ctxs[*pctx]; ok {
				delete(f.ctxs, *pctx)
				f.freed("codecctx")
			}
			*pctx = 0
		})
	}
	api.CodecOpen = func(ctx, codec uintptr, opts *uintptr) (ret int32) {
		lock(func() {
			cc := f.ctxs[ctx]
			if cc == nil || cc.opened {
				ret = codeInval
				return
			}
			// The option parser consumes entries it recognizes even
			// when the open subsequently fails.
			f.dictConsume(opts, "threads")
			if code, ok := f.codecOpenErr[cc.codec.name]; ok {
				ret = code
				return
			}
			if cc.codec.encoder && cc.codec.mediaType == 0 && (cc.width <= 0 || cc.height <= 0) {
				ret = codeInval
				return
			}
			cc.opened = true
			if cc.codec.mediaType == 1 && cc.frameSize == 0 {
				cc.frameSize = 960
			}
		})
		return
	}
	api.CodecFlushBuffers = func(ctx uintptr) {
		lock(func() {
			if cc := f.ctxs[ctx]; cc != nil {
				cc.pending = nil
				cc.draining = false
			}
		})
	}

	// The drain protocol: each input queues one output timestamp; a nil
	// input starts draining; receives pop until empty, then EAGAIN or EOF.
	send := func(ctx, payload uintptr, pts int64) (ret int32) {
		cc := f.ctxs[ctx]
		if cc == nil || !cc.opened {
			return codeInval
		}
		if payload == 0 {
			cc.draining = true
			return 0
		}
		if cc.draining {
			return codeEOF
		}
		if len(cc.pending) >= f.sendQueueCap {
			return codeAgain
		}
		cc.pending = append(cc.pending, pts)
		return 0
	}
	receive := func(ctx uintptr) (pts int64, ret int32) {
		cc := f.ctxs[ctx]
		if cc == nil || !cc.opened {
			return 0, codeInval
		}
		if len(cc.pending) == 0 {
			if cc.draining {
				return 0, codeEOF
			}
			return 0, codeAgain
		}
		pts = cc.pending[0]
		cc.pending = cc.pending[1:]
		return pts, 0
	}

	api.SendPacket = func(ctx, pkt uintptr) (ret int32) {
		lock(func() {
			var pts int64
			if pkt != 0 {
				if p := f.packets[pkt]; p != nil {
					pts = p.pts
				}
			}
			ret = send(ctx, pkt, pts)
		})
		return
	}
	api.ReceiveFrame = func(ctx, frame uintptr) (ret int32) {
		lock(func() {
			pts, code := receive(ctx)
			if code != 0 {
				ret = code
				return
			}
			cc := f.ctxs[ctx]
			fr := f.frames[frame]
			*fr = fakeFrame{
				width: cc.width, height: cc.height, format: cc.pixFmt,
				sampleRate: cc.sampleRate, channels: cc.chans,
				pts: pts, buffered: true,
			}
			if cc.mediaType == 1 {
				fr.format = cc.sampleFmt
				fr.nbSamples = cc.frameSize
			}
		})
		return
	}
	api.SendFrame = func(ctx, frame uintptr) (ret int32) {
		lock(func() {
			var pts int64
			if frame != 0 {
				if fr := f.frames[frame]; fr != nil {
					pts = fr.pts
				}
			}
			ret = send(ctx, frame, pts)
		})
		return
	}
	api.ReceivePacket = func(ctx, pkt uintptr) (ret int32) {
		lock(func() {
			pts, code := receive(ctx)
			if code != 0 {
				ret = code
				return
			}
			p := f.packets[pkt]
			*p = fakePacket{pts: pts, dts: pts, data: []byte{0, 0, 0, 1, 0x41}}
		})
		return
	}
	api.DecodeSubtitle = func(ctx, sub uintptr, got *int32, pkt uintptr) (ret int32) {
		lock(func() {
			cc := f.ctxs[ctx]
			if cc == nil || !cc.opened || cc.codec.mediaType != 3 {
				ret = codeInval
				return
			}
			p := f.packets[pkt]
			if p == nil || len(p.data) == 0 {
				*got = 0
				return
			}
			*got = 1
			*(*uint32)(unsafe.Pointer(sub + 4)) = 0
			*(*uint32)(unsafe.Pointer(sub + 8)) = 2000
			*(*uint32)(unsafe.Pointer(sub + 12)) = 1
			*(*int64)(unsafe.Pointer(sub + 24)) = p.pts
		})
		return
	}
	api.SubtitleFree = func(sub uintptr) {}

	// Codec parameters.
	api.ParametersAlloc = func() (h uintptr) {
		lock(func() {
			h = f.alloc("codecpar")
			f.pars[h] = &fakeParams{format: -1}
		})
		return
	}
	api.ParametersFree = func(pp *uintptr) {
		lock(func() {
			if *pp == 0 {
				return
			}
			if _, ok := f.pars[*pp]; ok {
				delete(f.pars, *pp)
				f.freed("codecpar")
			}
			*pp = 0
		})
	}
	api.ParametersCopy = func(dst, src uintptr) (ret int32) {
		lock(func() {
			d, s := f.pars[dst], f.pars[src]
			if d == nil || s == nil {
				ret = codeInval
				return
			}
			*d = *s
		})
		return
	}
	api.ParametersToContext = func(ctx, par uintptr) (ret int32) {
		lock(func() {
			cc, p := f.ctxs[ctx], f.pars[par]
			if cc == nil || p == nil {
				ret = codeInval
				return
			}
			cc.mediaType = p.mediaType
			cc.width, cc.height = p.width, p.height
			cc.sampleRate, cc.chans = p.sampleRate, p.channels
			cc.bitRate = p.bitRate
			if p.mediaType == 1 {
				cc.sampleFmt = p.format
			} else {
				cc.pixFmt = p.format
			}
		})
		return
	}
	api.ParametersFromContext = func(par, ctx uintptr) (ret int32) {
		lock(func() {
			cc, p := f.ctxs[ctx], f.pars[par]
			if cc == nil || p == nil {
				ret = codeInval
				return
			}
			*p = fakeParams{
				mediaType: cc.mediaType, codecID: cc.codec.id,
				width: cc.width, height: cc.height,
				sampleRate: cc.sampleRate, channels: cc.chans,
				bitRate: cc.bitRate, format: cc.pixFmt,
			}
			if cc.mediaType == 1 {
				p.format = cc.sampleFmt
			}
		})
		return
	}
	api.ParCodecType = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].mediaType }); return }
	api.ParCodecID = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].codecID }); return }
	api.ParWidth = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].width }); return }
	api.ParHeight = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].height }); return }
	api.ParFormat = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].format }); return }
	api.ParBitRate = func(h uintptr) (v int64) { lock(func() { v = f.pars[h].bitRate }); return }
	api.ParSampleRate = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].sampleRate }); return }
	api.ParChannels = func(h uintptr) (v int32) { lock(func() { v = f.pars[h].channels }); return }
	api.ParSetCodecType = func(h uintptr, v int32) { lock(func() { f.pars[h].mediaType = v }) }
	api.ParSetCodecID = func(h uintptr, v int32) { lock(func() { f.pars[h].codecID = v }) }
	api.ParSetWidth = func(h uintptr, v int32) { lock(func() { f.pars[h].width = v }) }
	api.ParSetHeight = func(h uintptr, v int32) { lock(func() { f.pars[h].height = v }) }

	// Codec context accessors.
	ctxOf := func(h uintptr) *fakeCodecCtx { return f.ctxs[h] }
	api.CtxMediaType = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).mediaType }); return }
	api.CtxCodecID = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).codec.id }); return }
	api.CtxWidth = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).width }); return }
	api.CtxSetWidth = func(h uintptr, v int32) { lock(func() { ctxOf(h).width = v }) }
	api.CtxHeight = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).height }); return }
	api.CtxSetHeight = func(h uintptr, v int32) { lock(func() { ctxOf(h).height = v }) }
	api.CtxPixelFormat = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).pixFmt }); return }
	api.CtxSetPixelFormat = func(h uintptr, v int32) { lock(func() { ctxOf(h).pixFmt = v }) }
	api.CtxTimeBase = func(h uintptr) (num, den int32) {
		lock(func() { num, den = ctxOf(h).tbNum, ctxOf(h).tbDen })
		return
	}
	api.CtxSetTimeBase = func(h uintptr, num, den int32) {
		lock(func() { ctxOf(h).tbNum, ctxOf(h).tbDen = num, den })
	}
	api.CtxSetPktTimeBase = func(h uintptr, num, den int32) {
		lock(func() { ctxOf(h).pktTbNum, ctxOf(h).pktTbDen = num, den })
	}
	api.CtxSetFrameRate = func(h uintptr, num, den int32) {
		lock(func() { ctxOf(h).frNum, ctxOf(h).frDen = num, den })
	}
	api.CtxBitRate = func(h uintptr) (v int64) { lock(func() { v = ctxOf(h).bitRate }); return }
	api.CtxSetBitRate = func(h uintptr, v int64) { lock(func() { ctxOf(h).bitRate = v }) }
	api.CtxSetMaxBitRate = func(h uintptr, v int64) { lock(func() { ctxOf(h).maxBitRate = v }) }
	api.CtxSetTolerance = func(h uintptr, v int32) { lock(func() { ctxOf(h).tolerance = v }) }
	api.CtxSetQuality = func(h uintptr, v int32) { lock(func() { ctxOf(h).quality = v }) }
	api.CtxSetCompression = func(h uintptr, v int32) { lock(func() { ctxOf(h).compr = v }) }
	api.CtxSetGOPSize = func(h uintptr, v int32) { lock(func() { ctxOf(h).gopSize = v }) }
	api.CtxSetMaxBFrames = func(h uintptr, v int32) { lock(func() { ctxOf(h).maxB = v }) }
	api.CtxSampleRate = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).sampleRate }); return }
	api.CtxSetSampleRate = func(h uintptr, v int32) { lock(func() { ctxOf(h).sampleRate = v }) }
	api.CtxSampleFormat = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).sampleFmt }); return }
	api.CtxSetSampleFormat = func(h uintptr, v int32) { lock(func() { ctxOf(h).sampleFmt = v }) }
	api.CtxFrameSize = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).frameSize }); return }
	api.CtxChannels = func(h uintptr) (v int32) { lock(func() { v = ctxOf(h).chans }); return }
	api.CtxSetChannelLayoutDefault = func(h uintptr, channels int32) {
		lock(func() { ctxOf(h).chans = channels })
	}
	api.CtxSetThreadCount = func(h uintptr, v int32) { lock(func() { ctxOf(h).threads = v }) }
	api.CtxSetSkipFrame = func(h uintptr, v int32) { lock(func() { ctxOf(h).skipF = v }) }
	api.CtxSetSkipLoopFilter = func(h uintptr, v int32) { lock(func() { ctxOf(h).skipLF = v }) }

	// Packets.
	api.PacketAlloc = func() (h uintptr) {
		lock(func() {
			h = f.alloc("packet")
			f.packets[h] = &fakePacket{}
		})
		return
	}
	api.PacketFree = func(pp *uintptr) {
		lock(func() {
			if *pp == 0 {
				return
			}
			if _, ok := f.packets[*pp]; ok {
				delete(f.packets, *pp)
				f.freed("packet")
			}
			*pp = 0
		})
	}
	api.PacketUnref = func(h uintptr) {
		lock(func() {
			if p := f.packets[h]; p != nil {
				*p = fakePacket{}
			}
		})
	}
	api.PacketNew = func(h uintptr, size int32) (ret int32) {
		lock(func() {
			p := f.packets[h]
			if p == nil || size < 0 {
				ret = codeInval
				return
			}
			p.data = make([]byte, size)
		})
		return
	}
	api.PacketRef = func(dst, src uintptr) (ret int32) {
		lock(func() {
			d, s := f.packets[dst], f.packets[src]
			if d == nil || s == nil {
				ret = codeInval
				return
			}
			*d = *s
		})
		return
	}
	api.PacketPTS = func(h uintptr) (v int64) { lock(func() { v = f.packets[h].pts }); return }
	api.PacketSetPTS = func(h uintptr, v int64) { lock(func() { f.packets[h].pts = v }) }
	api.PacketDTS = func(h uintptr) (v int64) { lock(func() { v = f.packets[h].dts }); return }
	api.PacketSetDTS = func(h uintptr, v int64) { lock(func() { f.packets[h].dts = v }) }
	api.PacketDuration = func(h uintptr) (v int64) { lock(func() { v = f.packets[h].duration }); return }
	api.PacketSetDuration = func(h uintptr, v int64) { lock(func() { f.packets[h].duration = v }) }
	api.PacketStreamIndex = func(h uintptr) (v int32) { lock(func() { v = f.packets[h].stream }); return }
	api.PacketSetStreamIndex = func(h uintptr, v int32) { lock(func() { f.packets[h].stream = v }) }
	api.PacketFlags = func(h uintptr) (v int32) { lock(func() { v = f.packets[h].flags }); return }
	api.PacketSize = func(h uintptr) (v int32) {
		lock(func() { v = int32(len(f.packets[h].data)) })
		return
	}
	api.PacketDataPtr = func(h uintptr) (p uintptr) {
		lock(func() {
			d := f.packets[h].data
			if len(d) > 0 {
				p = uintptr(unsafe.Pointer(&d[0]))
			}
		})
		return
	}

	// Demuxing.
	api.FormatAllocContext = func() (h uintptr) {
		lock(func() {
			h = f.alloc("formatctx")
			f.fmts[h] = &fakeFmtCtx{}
		})
		return
	}
	api.FormatFreeContext = func(h uintptr) {
		lock(func() { f.freeFmtCtx(h) })
	}
	api.FindInputFormat = func(name string) (h uintptr) {
		lock(func() {
			switch name {
			case "mpegts", "mov", "matroska":
				h = f.handle()
				f.iformats[h] = name
			}
		})
		return
	}
	api.FormatOpenInput = func(ps *uintptr, url string, ifmt uintptr, opts *uintptr) (ret int32) {
		lock(func() {
			m := f.media[url]
			if m == nil {
				if *ps != 0 {
					f.freeFmtCtx(*ps)
					*ps = 0
				}
				ret = codeNoEnt
				return
			}
			f.dictConsume(opts, "probesize")
			if *ps == 0 {
				*ps = f.alloc("formatctx")
				f.fmts[*ps] = &fakeFmtCtx{}
			}
			fc := f.fmts[*ps]
			if interruptFired(fc.intrCB, fc.intrOpaque) {
				f.freeFmtCtx(*ps)
				*ps = 0
				ret = codeExit
				return
			}
			fc.url = url
			fc.media = m
			fc.metadata = f.dictFromMap(m.metadata)
			for i, ms := range m.streams {
				ph := f.alloc("codecpar")
				f.pars[ph] = &fakeParams{
					mediaType: ms.mediaType, codecID: ms.codecID,
					width: ms.width, height: ms.height, format: ms.format,
					sampleRate: ms.sampleRate, channels: ms.chans,
				}
				sh := f.alloc("stream")
				f.streams[sh] = &fakeStream{
					index: int32(i), par: ph,
					tbNum: ms.tbNum, tbDen: ms.tbDen,
					frNum: 30, frDen: 1,
				}
				fc.streams = append(fc.streams, sh)
			}
		})
		return
	}
	api.FormatCloseInput = func(ps *uintptr) {
		lock(func() {
			if *ps != 0 {
				f.freeFmtCtx(*ps)
				*ps = 0
			}
		})
	}
	api.FormatFindStreamInfo = func(ctx uintptr, opts *uintptr) int32 { return 0 }
	api.ReadPacket = func(ctx, pkt uintptr) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || fc.media == nil {
				ret = codeInval
				return
			}
			if interruptFired(fc.intrCB, fc.intrOpaque) {
				ret = codeExit
				return
			}
			if fc.pos >= len(fc.media.packets) {
				ret = codeEOF
				return
			}
			mp := fc.media.packets[fc.pos]
			fc.pos++
			p := f.packets[pkt]
			*p = fakePacket{pts: mp.pts, dts: mp.pts, stream: mp.stream, data: mp.data}
			if mp.key {
				p.flags = pktFlagKey
			}
		})
		return
	}
	api.SeekFrame = func(ctx uintptr, streamIndex int32, ts int64, flags int32) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || fc.media == nil {
				ret = codeInval
				return
			}
			if interruptFired(fc.intrCB, fc.intrOpaque) {
				ret = codeExit
				return
			}
			fc.pos = 0
		})
		return
	}
	api.FindBestStream = func(ctx uintptr, mediaType, wanted, related int32, decoder *uintptr, flags int32) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || fc.media == nil {
				ret = codeInval
				return
			}
			for i, ms := range fc.media.streams {
				if ms.mediaType == mediaType {
					ret = int32(i)
					return
				}
			}
			ret = codeStreamNotFound
		})
		return
	}
	api.FmtNbStreams = func(ctx uintptr) (n int32) {
		lock(func() { n = int32(len(f.fmts[ctx].streams)) })
		return
	}
	api.FmtStream = func(ctx uintptr, index int) (h uintptr) {
		lock(func() {
			fc := f.fmts[ctx]
			if index >= 0 && index < len(fc.streams) {
				h = fc.streams[index]
			}
		})
		return
	}
	api.FmtMetadata = func(ctx uintptr) (h uintptr) { lock(func() { h = f.fmts[ctx].metadata }); return }
	api.FmtSetMetadata = func(ctx uintptr, dict uintptr) { lock(func() { f.fmts[ctx].metadata = dict }) }
	api.FmtDuration = func(ctx uintptr) (v int64) {
		lock(func() {
			if m := f.fmts[ctx].media; m != nil {
				v = m.duration
			}
		})
		return
	}
	api.FmtBitRate = func(ctx uintptr) (v int64) {
		lock(func() {
			if m := f.fmts[ctx].media; m != nil {
				v = m.bitRate
			}
		})
		return
	}
	api.FmtPB = func(ctx uintptr) (h uintptr) { lock(func() { h = f.fmts[ctx].pb }); return }
	api.FmtSetPB = func(ctx uintptr, pb uintptr) { lock(func() { f.fmts[ctx].pb = pb }) }
	api.FmtSetInterrupt = func(ctx uintptr, callback, opaque uintptr) {
		lock(func() {
			fc := f.fmts[ctx]
			fc.intrCB = callback
			fc.intrOpaque = opaque
		})
	}

	// Streams.
	api.StreamIndexOf = func(h uintptr) (v int32) { lock(func() { v = f.streams[h].index }); return }
	api.StreamCodecPar = func(h uintptr) (p uintptr) { lock(func() { p = f.streams[h].par }); return }
	api.StreamTimeBase = func(h uintptr) (num, den int32) {
		lock(func() { num, den = f.streams[h].tbNum, f.streams[h].tbDen })
		return
	}
	api.StreamSetTimeBase = func(h uintptr, num, den int32) {
		lock(func() { f.streams[h].tbNum, f.streams[h].tbDen = num, den })
	}
	api.StreamAvgFrameRate = func(h uintptr) (num, den int32) {
		lock(func() { num, den = f.streams[h].frNum, f.streams[h].frDen })
		return
	}
	api.StreamMetadata = func(h uintptr) (m uintptr) { lock(func() { m = f.streams[h].metadata }); return }

	// Muxing.
	api.FormatAllocOutput = func(ps *uintptr, ofmt uintptr, formatName, filename *byte) (ret int32) {
		lock(func() {
			name := goStrAt(formatName)
			if name == "" {
				url := goStrAt(filename)
				switch {
				case strings.HasSuffix(url, ".mp4"):
					name = "mp4"
				case strings.HasSuffix(url, ".mkv"):
					name = "matroska"
				case strings.HasSuffix(url, ".ts"):
					name = "mpegts"
				}
			}
			oh := f.findOutputFormat(name)
			if oh == 0 {
				ret = codeInval
				return
			}
			*ps = f.alloc("formatctx")
			f.fmts[*ps] = &fakeFmtCtx{url: goStrAt(filename), oformat: oh}
		})
		return
	}
	api.FormatNewStream = func(ctx, codec uintptr) (h uintptr) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil {
				return
			}
			ph := f.alloc("codecpar")
			f.pars[ph] = &fakeParams{format: -1}
			h = f.alloc("stream")
			f.streams[h] = &fakeStream{index: int32(len(fc.streams)), par: ph, tbNum: 1, tbDen: 90000}
			fc.streams = append(fc.streams, h)
		})
		return
	}
	api.FormatWriteHeader = func(ctx uintptr, opts *uintptr) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || fc.headerWritten {
				ret = codeInval
				return
			}
			of := f.oformats[fc.oformat]
			if of.flags&ofmtNoFile == 0 && fc.pb == 0 {
				ret = codeInval
				return
			}
			f.dictConsume(opts, "movflags")
			if f.writeHeadErr != 0 {
				ret = f.writeHeadErr
				return
			}
			fc.headerWritten = true
		})
		return
	}
	api.InterleavedWrite = func(ctx, pkt uintptr) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || !fc.headerWritten || fc.trailerDone {
				ret = codeInval
				return
			}
			p := f.packets[pkt]
			fc.written = append(fc.written, writtenPacket{stream: p.stream, pts: p.pts, dts: p.dts})
			*p = fakePacket{}
		})
		return
	}
	api.FormatWriteTrailer = func(ctx uintptr) (ret int32) {
		lock(func() {
			fc := f.fmts[ctx]
			if fc == nil || !fc.headerWritten || fc.trailerDone {
				ret = codeInval
				return
			}
			fc.trailerDone = true
		})
		return
	}
	api.IOOpen = func(pb *uintptr, url string, flags int32, opts *uintptr) (ret int32) {
		lock(func() {
			if strings.HasPrefix(url, "/unwritable/") {
				ret = codeNoEnt
				return
			}
			*pb = f.alloc("io")
			f.ios[*pb] = true
		})
		return
	}
	api.IOClose = func(pb *uintptr) (ret int32) {
		lock(func() {
			if *pb != 0 {
				if f.ios[*pb] {
					delete(f.ios, *pb)
					f.freed("io")
				}
				*pb = 0
			}
			ret = f.ioCloseErr
		})
		return
	}
	api.FmtOFormat = func(ctx uintptr) (h uintptr) { lock(func() { h = f.fmts[ctx].oformat }); return }
	api.OFmtName = func(h uintptr) (s string) { lock(func() { s = f.oformats[h].name }); return }
	api.OFmtFlags = func(h uintptr) (v int32) { lock(func() { v = f.oformats[h].flags }); return }

	// Filters.
	api.FilterGetByName = func(name string) (h uintptr) {
		lock(func() {
			for fh, d := range f.filterDefs {
				if d.name == name {
					h = fh
					return
				}
			}
		})
		return
	}
	api.FilterName = func(h uintptr) (s string) { lock(func() { s = f.filterDefs[h].name }); return }
	api.FilterDesc = func(h uintptr) (s string) { lock(func() { s = f.filterDefs[h].desc }); return }
	api.FilterNbInputs = func(h uintptr) (v int32) { lock(func() { v = f.filterDefs[h].nbInputs }); return }
	api.FilterNbOutputs = func(h uintptr) (v int32) { lock(func() { v = f.filterDefs[h].nbOutputs }); return }
	api.FilterPadName = func(h uintptr, output bool, i int32) string { return "default" }
	api.FilterPadType = func(h uintptr, output bool, i int32) (v int32) {
		lock(func() { v = f.filterDefs[h].padType })
		return
	}
	api.GraphAlloc = func() (h uintptr) {
		lock(func() {
			h = f.alloc("graph")
			f.graphs[h] = &fakeGraph{}
		})
		return
	}
	api.GraphFree = func(pg *uintptr) {
		lock(func() {
			if *pg == 0 {
				return
			}
			if g, ok := f.graphs[*pg]; ok {
				for _, ih := range g.instances {
					delete(f.filterInst, ih)
				}
				delete(f.graphs, *pg)
				f.freed("graph")
			}
			*pg = 0
		})
	}
	api.GraphCreateFilter = func(pctx *uintptr, filter uintptr, name string, args *byte, opaque, graph uintptr) (ret int32) {
		lock(func() {
			g := f.graphs[graph]
			d := f.filterDefs[filter]
			if g == nil || d == nil || g.configured {
				ret = codeInval
				return
			}
			h := f.handle()
			f.filterInst[h] = &fakeFilterInst{def: d, graph: graph, name: name, args: goStrAt(args)}
			g.instances = append(g.instances, h)
			*pctx = h
		})
		return
	}
	api.FilterLink = func(src uintptr, srcPad uint32, dst uintptr, dstPad uint32) (ret int32) {
		lock(func() {
			s, d := f.filterInst[src], f.filterInst[dst]
			if s == nil || d == nil {
				ret = codeInval
				return
			}
			if int32(srcPad) >= s.def.nbOutputs || int32(dstPad) >= d.def.nbInputs {
				ret = codeInval
				return
			}
			s.outLinks++
			d.inLinks++
		})
		return
	}
	api.GraphConfig = func(graph, logCtx uintptr) (ret int32) {
		lock(func() {
			g := f.graphs[graph]
			if g == nil {
				ret = codeInval
				return
			}
			for _, ih := range g.instances {
				inst := f.filterInst[ih]
				if inst.inLinks != inst.def.nbInputs || inst.outLinks != inst.def.nbOutputs {
					ret = codeInval
					return
				}
			}
			g.configured = true
		})
		return
	}
	api.BuffersrcAddFrame = func(ctx, frame uintptr) (ret int32) {
		lock(func() {
			inst := f.filterInst[ctx]
			if inst == nil {
				ret = codeInval
				return
			}
			g := f.graphs[inst.graph]
			if !g.configured {
				ret = codeInval
				return
			}
			if frame == 0 {
				g.srcEOF = true
				return
			}
			g.queue = append(g.queue, f.frames[frame].pts)
		})
		return
	}
	api.BuffersinkGetFrame = func(ctx, frame uintptr) (ret int32) {
		lock(func() {
			inst := f.filterInst[ctx]
			if inst == nil {
				ret = codeInval
				return
			}
			g := f.graphs[inst.graph]
			if !g.configured {
				ret = codeInval
				return
			}
			if len(g.queue) == 0 {
				if g.srcEOF {
					ret = codeEOF
				} else {
					ret = codeAgain
				}
				return
			}
			f.frames[frame].pts = g.queue[0]
			f.frames[frame].buffered = true
			g.queue = g.queue[1:]
		})
		return
	}

	// Scaling.
	api.SwsGetContext = func(srcW, srcH, srcFmt, dstW, dstH, dstFmt, flags int32) (h uintptr) {
		lock(func() {
			if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
				return
			}
			h = f.alloc("sws")
			f.scalers[h] = &fakeScaler{
				srcW: srcW, srcH: srcH, srcFmt: srcFmt,
				dstW: dstW, dstH: dstH, dstFmt: dstFmt, flags: flags,
			}
		})
		return
	}
	api.SwsFreeContext = func(h uintptr) {
		lock(func() {
			if _, ok := f.scalers[h]; ok {
				delete(f.scalers, h)
				f.freed("sws")
			}
		})
	}
	api.SwsScaleFrame = func(ctx, dst, src uintptr) (ret int32) {
		lock(func() {
			s := f.scalers[ctx]
			d, sr := f.frames[dst], f.frames[src]
			if s == nil || d == nil || sr == nil {
				ret = codeInval
				return
			}
			if sr.width != s.srcW || sr.height != s.srcH {
				ret = codeInval
				return
			}
			d.pts = sr.pts
			d.buffered = true
			s.scaled++
		})
		return
	}

	// Resampling.
	api.SwrAlloc = func(ps *uintptr, outChannels, outFmt, outRate, inChannels, inFmt, inRate int32) (ret int32) {
		lock(func() {
			*ps = f.alloc("swr")
			f.resamplers[*ps] = &fakeResampler{
				outCh: outChannels, outFmt: outFmt, outRate: outRate,
				inCh: inChannels, inFmt: inFmt, inRate: inRate,
			}
		})
		return
	}
	api.SwrInit = func(h uintptr) (ret int32) {
		lock(func() {
			r := f.resamplers[h]
			if r == nil || r.outRate <= 0 || r.inRate <= 0 {
				ret = codeInval
				return
			}
			r.inited = true
		})
		return
	}
	api.SwrFree = func(ps *uintptr) {
		lock(func() {
			if *ps == 0 {
				return
			}
			if _, ok := f.resamplers[*ps]; ok {
				delete(f.resamplers, *ps)
				f.freed("swr")
			}
			*ps = 0
		})
	}
	api.SwrConvertFrame = func(ctx, out, in uintptr) (ret int32) {
		lock(func() {
			r := f.resamplers[ctx]
			o := f.frames[out]
			if r == nil || !r.inited || o == nil {
				ret = codeInval
				return
			}
			if in != 0 {
				src := f.frames[in]
				o.nbSamples = src.nbSamples * r.outRate / r.inRate
				o.pts = src.pts
			}
			o.buffered = true
			r.converted++
		})
		return
	}
	api.SwrGetDelay = func(ctx uintptr, base int64) int64 { return 0 }

	return api
}

// freeFmtCtx assumes f.mu is held.
func (f *fakeNative) freeFmtCtx(h uintptr) {
	fc, ok := f.fmts[h]
	if !ok {
		return
	}
	for _, sh := range fc.streams {
		st := f.streams[sh]
		if st != nil {
			if _, ok := f.pars[st.par]; ok {
				delete(f.pars, st.par)
				f.freed("codecpar")
			}
			delete(f.streams, sh)
			f.freed("stream")
		}
	}
	if fc.metadata != 0 {
		if _, ok := f.dicts[fc.metadata]; ok {
			delete(f.dicts, fc.metadata)
			f.freed("dict")
		}
	}
	delete(f.fmts, h)
	f.freed("formatctx")
}
