package cache

import (
	"errors"
	"testing"
)

func pairFor(idx int) TilePNGPair {
	return TilePNGPair{Content: []byte{byte(idx)}, Sidebar: []byte{byte(idx), byte(idx)}}
}

func TestTileCacheInsertGet(t *testing.T) {
	c := NewTileCache(4)
	c.Insert(5, pairFor(5), 5)
	p, ok := c.Get(5)
	if !ok || len(p.Content) != 1 || p.Content[0] != 5 {
		t.Fatalf("Get(5) = %v, %v", p, ok)
	}
	if c.Contains(6) {
		t.Error("Contains(6) should be false")
	}
}

func TestTileCacheEvictsDistantEntries(t *testing.T) {
	c := NewTileCache(2)
	for _, idx := range []int{0, 1, 2, 3, 10} {
		c.Insert(idx, pairFor(idx), idx)
	}
	// Insert(10, ..., current=10) evicts everything farther than 2 from 10.
	for _, idx := range []int{0, 1, 2, 3} {
		if c.Contains(idx) {
			t.Errorf("tile %d should have been evicted", idx)
		}
	}
	if !c.Contains(10) {
		t.Error("tile 10 (current) should remain cached")
	}
}

func TestTileCacheGetOrRenderCachesOnMiss(t *testing.T) {
	c := NewTileCache(4)
	calls := 0
	render := func(idx int) (TilePNGPair, error) {
		calls++
		return pairFor(idx), nil
	}
	if _, err := c.GetOrRender(3, 3, render); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrRender(3, 3, render); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("render called %d times, want 1 (second call should hit cache)", calls)
	}
}

func TestTileCacheGetOrRenderPropagatesError(t *testing.T) {
	c := NewTileCache(4)
	wantErr := errors.New("boom")
	_, err := c.GetOrRender(0, 0, func(int) (TilePNGPair, error) { return TilePNGPair{}, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("got err %v, want %v", err, wantErr)
	}
	if c.Contains(0) {
		t.Error("a failed render must not be cached")
	}
}

func TestTileCacheClear(t *testing.T) {
	c := NewTileCache(4)
	c.Insert(1, pairFor(1), 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}
