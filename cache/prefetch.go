package cache

// Prefetcher combines the tile cache, the background worker, and the
// main-thread in-flight set into the single object the outer loop drives
// once per redraw. The cache and in-flight set are main-thread exclusive;
// only RenderFunc itself (and the frame data it closes over) is shared with
// the worker goroutine.
type Prefetcher struct {
	cache    *TileCache
	worker   *Worker
	inFlight map[int]struct{}
}

// NewPrefetcher binds a cache and worker for one document build's scoped
// region.
func NewPrefetcher(cache *TileCache, worker *Worker) *Prefetcher {
	return &Prefetcher{cache: cache, worker: worker, inFlight: make(map[int]struct{})}
}

// Drain non-blockingly collects every response the worker has produced
// since the last call, moving each out of the in-flight set and into the
// cache. Calling this before Dispatch eliminates the window where a
// just-rendered tile would be requested a second time.
func (p *Prefetcher) Drain(current int) {
	for {
		select {
		case r := <-p.worker.res:
			delete(p.inFlight, r.idx)
			if r.err == nil {
				p.cache.Insert(r.idx, r.pair, current)
			}
		default:
			return
		}
	}
}

// Dispatch issues prefetch requests for current+1, current+2, current-1, in
// that order, skipping any tile already cached or in flight, and bounded to
// [0, tileCount).
func (p *Prefetcher) Dispatch(current, tileCount int) {
	for _, idx := range [3]int{current + 1, current + 2, current - 1} {
		if idx < 0 || idx >= tileCount {
			continue
		}
		if p.cache.Contains(idx) {
			continue
		}
		if _, ok := p.inFlight[idx]; ok {
			continue
		}
		p.inFlight[idx] = struct{}{}
		p.worker.Request(idx)
	}
}

// Get returns idx's pair from the cache, rendering synchronously on miss.
// Used for the tile the viewport needs right now, which cannot wait on the
// background worker.
func (p *Prefetcher) Get(idx, current int, render RenderFunc) (TilePNGPair, error) {
	return p.cache.GetOrRender(idx, current, render)
}

// Pending returns the number of prefetch requests still in flight, used
// by the caller to decide whether to keep polling at a short interval or
// fall back to an idle wait.
func (p *Prefetcher) Pending() int {
	return len(p.inFlight)
}

// Reset drops every cached and in-flight entry, used on resize/reload
// before the next scoped region's tiles are built.
func (p *Prefetcher) Reset() {
	p.cache.Clear()
	p.inFlight = make(map[int]struct{})
}

// Close stops the background worker, waiting for its in-progress render
// (if any) to finish.
func (p *Prefetcher) Close() {
	p.worker.Stop()
}
