// Package cache implements the tile cache and background prefetch worker
// (C4): a content-addressed cache of rendered tile PNG pairs, evicted by
// distance from the current tile, filled synchronously on miss and
// asynchronously by a single background worker.
package cache

import "sync"

// TilePNGPair is the PNG pair rendered from one tile index: the document
// tile itself and the sidebar strip covering the same Y-range.
type TilePNGPair struct {
	Content []byte
	Sidebar []byte
}

// RenderFunc renders one tile index to its PNG pair. It must be a pure
// function of idx and is safe to call from any goroutine.
type RenderFunc func(idx int) (TilePNGPair, error)

// TileCache is a content-addressed cache of tile PNG pairs with
// distance-from-current eviction rather than access-order LRU: scrolling a
// document only ever needs tiles near the current viewport, so an entry's
// age is irrelevant once it falls outside the keep radius.
type TileCache struct {
	mu            sync.Mutex
	entries       map[int]TilePNGPair
	evictDistance int
}

// NewTileCache creates an empty cache that keeps entries within
// evictDistance of whatever tile index is current at insert time.
func NewTileCache(evictDistance int) *TileCache {
	return &TileCache{entries: make(map[int]TilePNGPair), evictDistance: evictDistance}
}

// Get returns the cached pair for idx without affecting eviction.
func (c *TileCache) Get(idx int) (TilePNGPair, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[idx]
	return p, ok
}

// Contains reports whether idx is cached.
func (c *TileCache) Contains(idx int) bool {
	_, ok := c.Get(idx)
	return ok
}

// Insert stores pair at idx and evicts entries farther than evictDistance
// from current.
func (c *TileCache) Insert(idx int, pair TilePNGPair, current int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[idx] = pair
	c.evictDistant(current)
}

// GetOrRender returns the cached pair for idx, rendering and caching it
// synchronously on miss. Used for the tile the viewport needs immediately;
// background prefetch fills neighbours via Worker instead.
func (c *TileCache) GetOrRender(idx, current int, render RenderFunc) (TilePNGPair, error) {
	if p, ok := c.Get(idx); ok {
		return p, nil
	}
	pair, err := render(idx)
	if err != nil {
		return TilePNGPair{}, err
	}
	c.Insert(idx, pair, current)
	return pair, nil
}

// evictDistant removes entries farther than evictDistance from current.
// Caller must hold c.mu.
func (c *TileCache) evictDistant(current int) {
	for idx := range c.entries {
		if abs(idx-current) > c.evictDistance {
			delete(c.entries, idx)
		}
	}
}

// Clear drops every cached entry, used on resize/reload when the whole
// frame tree is rebuilt and every previously-cached tile index is stale.
func (c *TileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]TilePNGPair)
}

// Len returns the number of cached entries.
func (c *TileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
