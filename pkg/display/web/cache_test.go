package web

import "testing"

func TestCacheHasReflectsAdd(t *testing.T) {
	c := newCache(4)
	if c.has(0xDEAD) {
		t.Fatal("fresh cache should not report an unseen hash as cached")
	}
	c.add(0xDEAD)
	if !c.has(0xDEAD) {
		t.Fatal("cache should report a hash as cached after add")
	}
}

func TestCacheEvictsOldestOnWraparound(t *testing.T) {
	c := newCache(2)
	c.add(1)
	c.add(2)
	c.add(3) // wraps around, evicting hash 1

	if c.has(1) {
		t.Fatal("hash 1 should have been evicted after the cache wrapped")
	}
	if !c.has(2) || !c.has(3) {
		t.Fatal("hashes 2 and 3 should still be cached")
	}
}
