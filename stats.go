package tinymalloc

import (
	"fmt"
	"math"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

// averageInt64 is a running mean/variance tracker ported from the
// corpus's lib/avgint.go, used here purely for observability — to
// characterize the distribution of heap-growth extension sizes across
// an arena's lifetime. Never consulted by the allocation path.
type averageInt64 struct {
	n      int64
	minval int64
	maxval int64
	sum    int64
	sumsq  float64
	init   bool
}

func (av *averageInt64) add(sample int64) {
	av.n++
	av.sum += sample
	f := float64(sample)
	av.sumsq += f * f
	if !av.init || sample < av.minval {
		av.minval = sample
		av.init = true
	}
	if sample > av.maxval {
		av.maxval = sample
	}
}

func (av *averageInt64) mean() int64 {
	if av.n == 0 {
		return 0
	}
	return int64(float64(av.sum) / float64(av.n))
}

func (av *averageInt64) stddev() float64 {
	if av.n == 0 {
		return 0
	}
	n, mean := float64(av.n), float64(av.mean())
	variance := (av.sumsq / n) - (mean * mean)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// ArenaStats summarizes one arena's memory utilization.
type ArenaStats struct {
	HeapBytes int64
	Allocated int64
	Available int64
}

// Stats reports per-arena utilization plus a humanized, multi-line
// summary in the style of llrb_stats.go's use of go-humanize for
// operator-facing output.
func Stats() ([]ArenaStats, string) {
	t := table.Load()
	if t == nil {
		return nil, "tinymalloc: not yet bootstrapped"
	}

	stats := make([]ArenaStats, 0, len(t.arenas))
	var buf strings.Builder
	var totalHeap, totalAlloc int64
	for i, a := range t.arenas {
		a.mu.Lock()
		heapBytes := a.bm.heapBytes
		a.mu.Unlock()
		allocated := a.loadBytes()
		s := ArenaStats{HeapBytes: heapBytes, Allocated: allocated, Available: heapBytes - allocated}
		stats = append(stats, s)
		totalHeap += heapBytes
		totalAlloc += allocated
		a.mu.Lock()
		growthMean, growthSD, growthSamples := a.growth.mean(), a.growth.stddev(), a.growth.n
		a.mu.Unlock()
		fmt.Fprintf(&buf, "arena[%d]: heap=%s allocated=%s available=%s growths=%d meangrowth=%s(±%.0f)\n",
			i, humanize.Bytes(uint64(s.HeapBytes)), humanize.Bytes(uint64(s.Allocated)), humanize.Bytes(uint64(s.Available)),
			growthSamples, humanize.Bytes(uint64(growthMean)), growthSD)
	}
	fmt.Fprintf(&buf, "total: heap=%s allocated=%s\n", humanize.Bytes(uint64(totalHeap)), humanize.Bytes(uint64(totalAlloc)))
	return stats, buf.String()
}
