package tinymalloc

import (
	"strings"
	"testing"
)

func TestStatsSummaryNonEmpty(t *testing.T) {
	// Whether the table is already bootstrapped depends on which tests
	// ran first, so only assert what holds in either state: the
	// summary is never empty.
	_, summary := Stats()
	if summary == "" {
		t.Errorf("expected a non-empty summary")
	}
}

func TestStatsReflectsAllocation(t *testing.T) {
	p := Allocate(128)
	if p == nil {
		t.Fatalf("expected allocation to succeed")
	}
	defer Deallocate(p)

	stats, summary := Stats()
	if len(stats) == 0 {
		t.Fatalf("expected at least one arena's stats")
	}
	var totalAlloc int64
	for _, s := range stats {
		totalAlloc += s.Allocated
	}
	if totalAlloc == 0 {
		t.Errorf("expected nonzero allocated bytes across arenas")
	}
	if !strings.Contains(summary, "arena[0]") {
		t.Errorf("expected summary to mention arena[0], got %q", summary)
	}
}

func TestAverageInt64(t *testing.T) {
	var av averageInt64
	av.add(10)
	av.add(20)
	av.add(30)
	if got := av.mean(); got != 20 {
		t.Errorf("expected mean 20, got %d", got)
	}
	if av.minval != 10 || av.maxval != 30 {
		t.Errorf("expected min=10 max=30, got min=%d max=%d", av.minval, av.maxval)
	}
}
