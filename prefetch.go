package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultPreloadChunk = 50
	preloadChunkPause   = 20 * time.Millisecond
	preloadParallelism  = 8
)

// Prefetcher schedules bulk frame loads into the cache. Batches run in
// parallel with a bounded worker count; whole-folder preloads proceed in
// fixed-size chunks with a short pause between them so the loop stays
// responsive. A failed frame is skipped, never fails the batch, and will be
// retried naturally if requested again for display.
type Prefetcher struct {
	src      FrameSource
	cache    *FrameCache
	resolver *FormatResolver
	counter  *FrameCounter
	chunk    int
}

func NewPrefetcher(src FrameSource, cache *FrameCache, resolver *FormatResolver, counter *FrameCounter, chunk int) *Prefetcher {
	if chunk < 1 {
		chunk = defaultPreloadChunk
	}
	return &Prefetcher{
		src:      src,
		cache:    cache,
		resolver: resolver,
		counter:  counter,
		chunk:    chunk,
	}
}

// PreloadRange loads frames start..end inclusive that are not already
// cached. It returns when every attempt has settled.
func (p *Prefetcher) PreloadRange(ctx context.Context, folder string, format NamingFormat, start, end int) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadParallelism)

	for i := start; i <= end; i++ {
		path := format.FramePath(folder, i)
		if _, ok := p.cache.Get(path); ok {
			continue
		}
		g.Go(func() error {
			img, err := p.src.Load(ctx, path)
			if err != nil {
				debugLog("Preload failed for %s: %v", path, err)
				return nil
			}
			p.cache.Put(path, img)
			return nil
		})
	}
	g.Wait()
}

// PreloadAll resolves the folder's frame count and loads every frame in
// chunks, yielding between chunks. A folder with no resolved format is a
// no-op.
func (p *Prefetcher) PreloadAll(ctx context.Context, folder string) {
	format, resolved := p.resolver.Resolve(ctx, folder)
	if !resolved {
		return
	}
	n := p.counter.Count(ctx, folder)

	for start := 1; start <= n; start += p.chunk {
		end := start + p.chunk - 1
		if end > n {
			end = n
		}
		p.PreloadRange(ctx, folder, format, start, end)

		if end < n {
			select {
			case <-ctx.Done():
				return
			case <-time.After(preloadChunkPause):
			}
		}
	}
	debugLog("Preloaded all %d frames of %s (cache: %d items)", n, folder, p.cache.Len())
}

// PreloadInitial loads only the first n frames so the idle scene becomes
// visible quickly while the rest loads in the background.
func (p *Prefetcher) PreloadInitial(ctx context.Context, folder string, n int) {
	format, resolved := p.resolver.Resolve(ctx, folder)
	if !resolved {
		return
	}
	total := p.counter.Count(ctx, folder)
	if n > total {
		n = total
	}
	p.PreloadRange(ctx, folder, format, 1, n)
}
