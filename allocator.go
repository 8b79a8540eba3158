package tinymalloc

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

//go:linkname runtime_procPin sync.runtime_procPin
func runtime_procPin() int

//go:linkname runtime_procUnpin sync.runtime_procUnpin
func runtime_procUnpin()

// arenaTable is the published, read-only-after-init view of the
// process-wide arena array. Wrapping the slice in a struct lets us
// publish it through a single atomic.Pointer store, so every reader
// either sees nil or a fully built table — never a half-built slice
// header — with no locking on the read path.
type arenaTable struct {
	arenas []*arena
}

var (
	bootstrapMu sync.Mutex
	table       atomic.Pointer[arenaTable]
)

// bootstrap lazily builds the arena table on the first call to
// Allocate, one arena per logical CPU. A partial failure tears down
// whatever was already mapped and leaves the published table nil so
// the next caller retries — the reason this isn't a plain sync.Once,
// which has no retry-after-failure path.
func bootstrap() *arenaTable {
	bootstrapMu.Lock()
	defer bootstrapMu.Unlock()

	if t := table.Load(); t != nil {
		return t
	}

	n := runtime.NumCPU()
	built := make([]*arena, 0, n)
	for i := 0; i < n; i++ {
		a, err := newArena(HeapSize)
		if err != nil {
			for _, done := range built {
				_ = unmapAnon(done.bm.heap)
			}
			errorf("%v: arena %d/%d: %v", errBootstrapFailed, i, n, err)
			return nil
		}
		built = append(built, a)
	}
	t := &arenaTable{arenas: built}
	table.Store(t)
	infof("tinymalloc: bootstrapped %d arenas of %d bytes each", n, HeapSize)
	return t
}

// currentArena returns the arena affine to the calling goroutine's
// current processor, pinning for the duration of the call in place of
// a cached thread-local index.
func (t *arenaTable) currentArena() *arena {
	pid := runtime_procPin()
	runtime_procUnpin()
	return t.arenas[pid%len(t.arenas)]
}

// Allocate reserves at least size writable, word-aligned bytes and
// returns a pointer to them, or nil if size is zero or the OS refused
// to supply memory.
func Allocate(size int64) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	t := table.Load()
	if t == nil {
		if t = bootstrap(); t == nil {
			return nil
		}
	}

	var chosen *arena
	if size > LargeAllocationThreshold {
		chosen = t.leastLoadedArena(size)
	} else {
		chosen = t.currentArena()
	}

	ptr := chosen.tryAllocate(size)
	if ptr == nil {
		debugf("tinymalloc: allocate(%d) failed on chosen arena, falling back to arena 0", size)
		if chosen != t.arenas[0] {
			ptr = t.arenas[0].tryAllocate(size)
		}
	}
	return ptr
}

// leastLoadedArena picks the arena with the smallest allocated-bytes
// signal that still has room for size bytes, falling back to arena 0.
func (t *arenaTable) leastLoadedArena(size int64) *arena {
	var best *arena
	var bestLoad int64
	for _, a := range t.arenas {
		if a.available() < size {
			continue
		}
		if load := a.loadBytes(); best == nil || load < bestLoad {
			best, bestLoad = a, load
		}
	}
	if best == nil {
		return t.arenas[0]
	}
	return best
}

// Deallocate releases a pointer previously returned by Allocate. A
// nil pointer, or one not owned by any arena, is a silent no-op.
func Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	t := table.Load()
	if t == nil {
		return
	}
	for _, a := range t.arenas {
		if a.deallocatePointer(ptr) {
			return
		}
	}
}
