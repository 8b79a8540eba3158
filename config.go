package tinymalloc

import (
	"fmt"

	s "github.com/bnclabs/gosettings"
	"github.com/cloudfoundry/gosigar"
)

// BlockSize is the allocation granularity in bytes. All allocations
// are rounded up to a multiple of BlockSize. Must be a power of two
// and a divisor of HeapSize.
const BlockSize = int64(16)

// headerWordSize is the width, in bytes, of the in-band size header
// placed at the start of every block run.
const headerWordSize = int64(8)

// HeapSize is the initial heap size, in bytes, reserved per arena.
const HeapSize = int64(1024 * 1024)

// SmallAllocationThreshold and LargeAllocationThreshold are the
// compile-time size-class boundaries: the former picks a bit-scan
// tactic, the latter switches the arena-selection policy from per-CPU
// affinity to load balancing.
const (
	SmallAllocationThreshold = 4 * BlockSize
	LargeAllocationThreshold = 256 * BlockSize
)

func init() {
	if HeapSize%BlockSize != 0 {
		panic(fmt.Errorf("tinymalloc: HeapSize %d not a multiple of BlockSize %d", HeapSize, BlockSize))
	}
	if bitmapWordCount(HeapSize/BlockSize) <= 0 {
		panic("tinymalloc: degenerate bitmap word count")
	}
}

// DefaultSettings returns a settings map describing the allocator's
// parameters. Mirrors the corpus's map[string]interface{}-backed
// Settings idiom: "arenas" is the numArenas argument, "arena.capacity"
// defaults to a slice of total system memory sized so that no single
// arena can individually starve the machine, queried the same way
// llrb/config.go and bogn/config.go size their node and value arenas.
// Allocate does not read these settings: the arena count comes from
// runtime.NumCPU and the sizes from the constants above.
func DefaultSettings(numArenas int) s.Settings {
	total, _, _ := sysmem()
	perArenaCap := int64(HeapSize)
	if numArenas > 0 && total > 0 {
		budget := int64(total) / 4 // never reserve more than a quarter of RAM up front
		if share := budget / int64(numArenas); share > perArenaCap {
			perArenaCap = share
		}
	}
	return s.Settings{
		"arenas":          numArenas,
		"arena.heapsize":  HeapSize,
		"arena.blocksize": BlockSize,
		"arena.capacity":  perArenaCap,
	}
}

func sysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
