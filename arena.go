package tinymalloc

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// arena wraps one bitmapAllocator with its own mutex and a running
// count of allocated blocks, used as an advisory load signal when
// balancing large allocations across arenas.
type arena struct {
	mu              sync.Mutex
	bm              *bitmapAllocator
	allocatedBlocks atomic.Int64 // advisory only, not a bitmap invariant
	growth          averageInt64 // observability only: distribution of extend() sizes
}

func newArena(initialBytes int64) (*arena, error) {
	bm, err := newBitmapAllocator(initialBytes)
	if err != nil {
		return nil, err
	}
	return &arena{bm: bm}, nil
}

// blocksFor computes the block count a size-byte payload occupies
// once the in-band header is accounted for.
func blocksFor(size int64) int64 {
	total := size + headerWordSize
	return (total + BlockSize - 1) / BlockSize
}

// tryAllocate finds a free run for size bytes, growing the heap on
// shortfall, marks it used, writes the header, and bumps the load
// counter exactly once per successful allocation.
func (a *arena) tryAllocate(size int64) unsafe.Pointer {
	blocksNeeded := blocksFor(size)

	a.mu.Lock()
	defer a.mu.Unlock()

	start, ok := a.bm.findFreeRun(blocksNeeded)
	if !ok {
		growBy := blocksNeeded * BlockSize
		if quarter := a.bm.heapBytes / 4; quarter > growBy {
			growBy = quarter
		}
		if !a.bm.extend(growBy) {
			return nil
		}
		a.growth.add(growBy)
		start, ok = a.bm.findFreeRun(blocksNeeded)
		if !ok {
			return nil
		}
	}

	a.bm.markUsed(start, blocksNeeded)
	headerAddr := a.headerAddress(start)
	*(*int64)(headerAddr) = size
	a.allocatedBlocks.Add(blocksNeeded)

	return unsafe.Add(headerAddr, headerWordSize)
}

// deallocatePointer reads the stored size from ptr's header and
// clears the corresponding bits. Returns true if ptr belonged to this
// arena (whether or not it was a well-formed allocation within it);
// false means the caller should try another arena.
func (a *arena) deallocatePointer(ptr unsafe.Pointer) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.owns(ptr) {
		return false
	}

	headerAddr := unsafe.Add(ptr, -headerWordSize)
	if !a.owns(headerAddr) {
		return true // outside this arena's range once the header is accounted for; no-op
	}

	size := *(*int64)(headerAddr)
	blocks := blocksFor(size)
	start := a.blockIndex(headerAddr)

	if start < 0 || start+blocks > a.bm.blocks {
		return true // malformed range; silent no-op
	}

	a.bm.markFree(start, blocks)
	a.allocatedBlocks.Add(-blocks)
	return true
}

// owns reports whether addr falls within this arena's current heap
// range. Must be called with a.mu held, since heap bounds move on
// growth.
func (a *arena) owns(addr unsafe.Pointer) bool {
	if len(a.bm.heap) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&a.bm.heap[0]))
	end := base + uintptr(a.bm.heapBytes)
	p := uintptr(addr)
	return p >= base && p < end
}

func (a *arena) headerAddress(startBlock int64) unsafe.Pointer {
	base := unsafe.Pointer(&a.bm.heap[0])
	return alignHeaderPointer(unsafe.Add(base, startBlock*BlockSize))
}

// alignHeaderPointer rounds a header address up to headerWordSize.
// BlockSize (16) is already a multiple of headerWordSize (8) on every
// supported target, so this is a no-op in practice; it is kept so
// user pointers remain provably word-aligned even if those constants
// ever change.
func alignHeaderPointer(p unsafe.Pointer) unsafe.Pointer {
	rem := uintptr(p) % uintptr(headerWordSize)
	if rem == 0 {
		return p
	}
	return unsafe.Add(p, uintptr(headerWordSize)-rem)
}

func (a *arena) blockIndex(headerAddr unsafe.Pointer) int64 {
	base := uintptr(unsafe.Pointer(&a.bm.heap[0]))
	offset := uintptr(headerAddr) - base
	return int64(offset) / BlockSize
}

// available and loadBytes are consulted by the front-end's
// large-allocation balancing scan. available takes the arena lock
// briefly rather than reading bm.heapBytes unsynchronized, since that
// field only ever changes under the lock during growth; loadBytes
// reads only the atomic counter and takes no lock.
func (a *arena) available() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bm.heapBytes - a.allocatedBlocks.Load()*BlockSize
}

func (a *arena) loadBytes() int64 {
	return a.allocatedBlocks.Load() * BlockSize
}
