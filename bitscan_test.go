package tinymalloc

import "testing"

func TestTacticFor(t *testing.T) {
	cases := []struct {
		blocks int64
		want   bitTactic
	}{
		{1, tacticTrailingZeros},
		{4, tacticTrailingZeros},
		{5, tacticFindFirstSet},
		{255, tacticFindFirstSet},
		{256, tacticTrailingZeros},
		{1000, tacticTrailingZeros},
	}
	for _, c := range cases {
		if got := tacticFor(c.blocks); got != c.want {
			t.Errorf("tacticFor(%d): expected %v, got %v", c.blocks, c.want, got)
		}
	}
}

func TestFirstFreeBitAgreesAcrossTactics(t *testing.T) {
	words := []uint64{0, ^uint64(0), 0x1, 0x8000000000000000, 0x0f0f0f0f0f0f0f0f, 0xffffffff00000000}
	for _, w := range words {
		a := firstFreeBit(w, tacticTrailingZeros)
		b := firstFreeBit(w, tacticFindFirstSet)
		if a != b {
			t.Errorf("tactics disagree for word %#x: ctz=%d ffs=%d", w, a, b)
		}
	}
}

func TestFirstFreeBitAllOnes(t *testing.T) {
	if x := firstFreeBit(^uint64(0), tacticTrailingZeros); x != -1 {
		t.Errorf("expected -1, got %d", x)
	}
	if x := firstFreeBit(^uint64(0), tacticFindFirstSet); x != -1 {
		t.Errorf("expected -1, got %d", x)
	}
}

func TestBitmapWordCount(t *testing.T) {
	cases := []struct{ blocks, words int64 }{
		{0, 0}, {1, 1}, {64, 1}, {65, 2}, {128, 2}, {129, 3},
	}
	for _, c := range cases {
		if got := bitmapWordCount(c.blocks); got != c.words {
			t.Errorf("bitmapWordCount(%d): expected %d, got %d", c.blocks, c.words, got)
		}
	}
}
