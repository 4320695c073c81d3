//go:build darwin || linux

package av

import (
	"context"
	"sync"

	"github.com/ebitengine/purego"
)

// The native layer polls an interrupt callback during blocking I/O. A
// single shared native callback dispatches through a registry, since
// callback slots are a finite process-wide resource.
var interrupts struct {
	sync.Mutex
	once   sync.Once
	cb     uintptr
	nextID uintptr
	fns    map[uintptr]func() bool
}

func interruptCallback() uintptr {
	interrupts.once.Do(func() {
		interrupts.fns = make(map[uintptr]func() bool)
		interrupts.cb = purego.NewCallback(func(opaque uintptr) int32 {
			interrupts.Lock()
			fn := interrupts.fns[opaque]
			interrupts.Unlock()
			if fn != nil && fn() {
				return 1
			}
			return 0
		})
	})
	return interrupts.cb
}

// interruptBridge pins one predicate into the registry for the lifetime of
// the container that uses it.
type interruptBridge struct {
	id uintptr
}

// newInterruptBridge registers fn. fn runs on native I/O threads and must
// not block; returning true aborts the pending operation with ErrCancelled.
func newInterruptBridge(fn func() bool) *interruptBridge {
	interruptCallback()
	interrupts.Lock()
	interrupts.nextID++
	id := interrupts.nextID
	interrupts.fns[id] = fn
	interrupts.Unlock()
	return &interruptBridge{id: id}
}

func contextBridge(ctx context.Context) *interruptBridge {
	return newInterruptBridge(func() bool { return ctx.Err() != nil })
}

func (b *interruptBridge) install(fmtCtx uintptr) {
	nav.FmtSetInterrupt(fmtCtx, interruptCallback(), b.id)
}

// release unregisters the predicate. The owning container must not issue
// further I/O afterwards.
func (b *interruptBridge) release() {
	if b == nil {
		return
	}
	interrupts.Lock()
	delete(interrupts.fns, b.id)
	interrupts.Unlock()
}
