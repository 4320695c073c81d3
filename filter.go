package av

// Filter describes a registered filter implementation, such as "scale" or
// "aresample". It is a read-only descriptor; instantiate it in a Graph.
type Filter struct {
	handle uintptr
}

// FindFilter locates a filter by name.
func FindFilter(name string) (*Filter, error) {
	h := nav.FilterGetByName(name)
	if h == 0 {
		return nil, ErrFilterNotFound
	}
	return &Filter{handle: h}, nil
}

// Name returns the filter's registered name.
func (f *Filter) Name() string { return nav.FilterName(f.handle) }

// Description returns the filter's help text.
func (f *Filter) Description() string { return nav.FilterDesc(f.handle) }

// NbInputs returns the number of static input pads.
func (f *Filter) NbInputs() int { return int(nav.FilterNbInputs(f.handle)) }

// NbOutputs returns the number of static output pads.
func (f *Filter) NbOutputs() int { return int(nav.FilterNbOutputs(f.handle)) }

// Pad describes one connection point of a filter.
type Pad struct {
	Name string
	Type MediaType
}

// InputPad returns input pad i.
func (f *Filter) InputPad(i int) Pad {
	return Pad{
		Name: nav.FilterPadName(f.handle, false, int32(i)),
		Type: MediaType(nav.FilterPadType(f.handle, false, int32(i))),
	}
}

// OutputPad returns output pad i.
func (f *Filter) OutputPad(i int) Pad {
	return Pad{
		Name: nav.FilterPadName(f.handle, true, int32(i)),
		Type: MediaType(nav.FilterPadType(f.handle, true, int32(i))),
	}
}

// FilterContext is one filter instance inside a graph. The graph owns it;
// it holds no resources of its own.
type FilterContext struct {
	handle uintptr
}

// Graph is a filter graph under construction. Create filter instances,
// link them, then call Configure; that consumes the Graph and returns a
// ConfiguredGraph that processes frames.
type Graph struct {
	handle uintptr
}

// NewGraph allocates an empty filter graph.
func NewGraph() (*Graph, error) {
	h := nav.GraphAlloc()
	if h == 0 {
		return nil, ErrNoMemory
	}
	return &Graph{handle: h}, nil
}

// CreateFilter instantiates filter in the graph under instanceName, with
// filter arguments in key=value:key=value form. args may be empty.
func (g *Graph) CreateFilter(filter *Filter, instanceName, args string) (*FilterContext, error) {
	if g.handle == 0 {
		return nil, ErrInvalidState
	}
	var argp *byte
	if args != "" {
		argp = cBytes(args)
	}
	var ctx uintptr
	err := errorFromCode(nav.GraphCreateFilter(&ctx, filter.handle, instanceName, argp, 0, g.handle))
	if err != nil {
		return nil, err
	}
	return &FilterContext{handle: ctx}, nil
}

// Create is shorthand for FindFilter followed by CreateFilter.
func (g *Graph) Create(filterName, instanceName, args string) (*FilterContext, error) {
	f, err := FindFilter(filterName)
	if err != nil {
		return nil, err
	}
	return g.CreateFilter(f, instanceName, args)
}

// Link connects output pad srcPad of src to input pad dstPad of dst.
func (g *Graph) Link(src *FilterContext, srcPad int, dst *FilterContext, dstPad int) error {
	if g.handle == 0 {
		return ErrInvalidState
	}
	return errorFromCode(nav.FilterLink(src.handle, uint32(srcPad), dst.handle, uint32(dstPad)))
}

// Configure validates the graph and negotiates formats across every link,
// consuming the Graph. On failure the graph is freed; build a fresh one to
// retry.
func (g *Graph) Configure() (*ConfiguredGraph, error) {
	if g.handle == 0 {
		return nil, ErrInvalidState
	}
	if err := errorFromCode(nav.GraphConfig(g.handle, 0)); err != nil {
		nav.GraphFree(&g.handle)
		g.handle = 0
		return nil, err
	}
	cg := &ConfiguredGraph{handle: g.handle}
	g.handle = 0
	return cg, nil
}

// Free releases an unconfigured graph and every filter in it. After a
// successful Configure this is a no-op.
func (g *Graph) Free() {
	if g == nil || g.handle == 0 {
		return
	}
	nav.GraphFree(&g.handle)
	g.handle = 0
}

// ConfiguredGraph is a validated filter graph. Push frames into buffer
// sources with AddFrame and pull results from buffer sinks with GetFrame.
type ConfiguredGraph struct {
	handle uintptr
}

// AddFrame pushes frame into a buffersrc instance. A nil frame signals end
// of stream on that source.
func (cg *ConfiguredGraph) AddFrame(src *FilterContext, frame *Frame) error {
	if cg.handle == 0 {
		return ErrInvalidState
	}
	var fh uintptr
	if frame != nil {
		fh = frame.handle
	}
	return errorFromCode(nav.BuffersrcAddFrame(src.handle, fh))
}

// GetFrame pulls the next filtered frame from a buffersink instance.
// ErrWouldBlock means the sink needs more input; ErrEndOfStream means the
// sources are drained through.
func (cg *ConfiguredGraph) GetFrame(sink *FilterContext, frame *Frame) error {
	if cg.handle == 0 {
		return ErrInvalidState
	}
	return errorFromCode(nav.BuffersinkGetFrame(sink.handle, frame.handle))
}

// Close releases the graph and every filter in it. Safe to call
// repeatedly.
func (cg *ConfiguredGraph) Close() error {
	if cg == nil || cg.handle == 0 {
		return nil
	}
	nav.GraphFree(&cg.handle)
	cg.handle = 0
	return nil
}
