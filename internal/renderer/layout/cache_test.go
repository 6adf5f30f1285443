package layout

import "testing"

func TestCacheGetComputesOnce(t *testing.T) {
	c := NewCache(8, 100)

	ix1 := c.Get(0, "hello", 1)
	ix2 := c.Get(0, "hello", 1)

	if ix1 != ix2 {
		t.Error("second Get with same generation should return the cached index")
	}

	stats := c.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("expected 1 miss and 1 hit, got %d/%d", stats.Misses, stats.Hits)
	}
}

func TestCacheGenerationInvalidation(t *testing.T) {
	c := NewCache(8, 100)

	ix1 := c.Get(0, "hello", 1)
	ix2 := c.Get(0, "hello!", 2)

	if ix1 == ix2 {
		t.Error("bumped generation must recompute the index")
	}
	if ix2.CharCount() != 6 {
		t.Errorf("recomputed index has %d clusters, want 6", ix2.CharCount())
	}
}

func TestCacheNeighborsUnaffected(t *testing.T) {
	c := NewCache(8, 100)

	a := c.Get(0, "aaa", 1)
	b := c.Get(1, "bbb", 1)

	// Mutating line 0 must not disturb line 1's entry.
	_ = c.Get(0, "aaaa", 2)

	if got := c.Get(1, "bbb", 1); got != b {
		t.Error("editing line 0 invalidated line 1's cache entry")
	}
	_ = a
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(8, 100)

	ix1 := c.Get(3, "text", 1)
	c.Invalidate(3)
	ix2 := c.Get(3, "text", 1)

	if ix1 == ix2 {
		t.Error("Invalidate should force recompute")
	}
}

func TestCacheShiftLines(t *testing.T) {
	c := NewCache(8, 100)

	ix5 := c.Get(5, "five", 7)
	c.Get(2, "two", 3)

	// Insert one line at index 3: line 5 becomes line 6.
	c.ShiftLines(3, 1)

	if got := c.Get(6, "five", 7); got != ix5 {
		t.Error("shifted entry should survive under its new line number")
	}
	if got := c.Get(2, "two", 3); got == nil {
		t.Error("entry below the shift point should be untouched")
	}

	stats := c.Stats()
	if stats.Misses != 2 {
		t.Errorf("expected 2 misses (initial fills only), got %d", stats.Misses)
	}
}

func TestCacheShiftLinesDelete(t *testing.T) {
	c := NewCache(8, 100)

	c.Get(4, "gone", 1)
	ix6 := c.Get(6, "kept", 2)

	// Delete two lines starting at 4.
	c.ShiftLines(4, -2)

	if got := c.Get(4, "kept", 2); got != ix6 {
		t.Error("entry above deletion should shift down intact")
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(8, 2)

	c.Get(0, "a", 1)
	c.Get(1, "b", 1)
	c.Get(2, "c", 1)

	if c.Size() > 2 {
		t.Errorf("cache size %d exceeds max 2", c.Size())
	}
	if c.Stats().Evictions == 0 {
		t.Error("expected at least one eviction")
	}
}

func TestCacheSetTabStop(t *testing.T) {
	c := NewCache(8, 100)

	c.Get(0, "\t", 1)
	c.SetTabStop(4)

	ix := c.Get(0, "\t", 1)
	if ix.SpanAt(0).Width() != 4 {
		t.Errorf("after SetTabStop(4), tab width = %d, want 4", ix.SpanAt(0).Width())
	}
	if c.TabStop() != 4 {
		t.Errorf("TabStop() = %d, want 4", c.TabStop())
	}
}
