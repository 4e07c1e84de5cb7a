package main

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

const (
	// Frame count assumed before probing resolves, so progress mapping is
	// always defined.
	defaultFrameCount = 300

	// Upper bound for the frame-count binary search.
	maxFrameIndex = 2000
)

// NamingFormat describes how frame files in one folder are named:
// prefix + zero-padded index + extension.
type NamingFormat struct {
	Prefix string
	Pad    int
	Ext    string
}

// FrameName returns the file name for a 1-based frame index.
func (f NamingFormat) FrameName(i int) string {
	return fmt.Sprintf("%s%0*d%s", f.Prefix, f.Pad, i, f.Ext)
}

// FramePath returns the source-relative path for a frame in folder.
func (f NamingFormat) FramePath(folder string, i int) string {
	return folder + "/" + f.FrameName(i)
}

// formatCandidates is the ordered list of naming conventions tried for each
// folder. Most-likely-first: the first match wins and later candidates are
// never probed, so ordering determines average probe count.
func formatCandidates() []NamingFormat {
	return []NamingFormat{
		{"frame_", 4, ".jpg"},
		{"frame_", 4, ".png"},
		{"frame", 4, ".jpg"},
		{"", 4, ".jpg"},
		{"frame_", 3, ".jpg"},
		{"img_", 4, ".jpg"},
	}
}

type formatResult struct {
	format   NamingFormat
	resolved bool
}

// FormatResolver discovers which naming convention a frame folder uses by
// probing the first frame of each candidate. Results, including terminal
// "no format matched", are memoized for the process lifetime; concurrent
// callers for the same folder share one in-flight probe run.
type FormatResolver struct {
	src        FrameSource
	candidates []NamingFormat

	mu      sync.RWMutex
	results map[string]formatResult
	group   singleflight.Group
}

func NewFormatResolver(src FrameSource) *FormatResolver {
	return &FormatResolver{
		src:        src,
		candidates: formatCandidates(),
		results:    make(map[string]formatResult),
	}
}

// Resolve returns the folder's naming format, probing on first call.
// The second return is false once every candidate has been tried and failed;
// that outcome is memoized and the folder is never re-probed.
func (r *FormatResolver) Resolve(ctx context.Context, folder string) (NamingFormat, bool) {
	r.mu.RLock()
	res, ok := r.results[folder]
	r.mu.RUnlock()
	if ok {
		return res.format, res.resolved
	}

	v, _, _ := r.group.Do(folder, func() (interface{}, error) {
		// A caller that missed the memo can land here after the shared
		// run already finished; check again before probing.
		r.mu.RLock()
		res, ok := r.results[folder]
		r.mu.RUnlock()
		if ok {
			return res, nil
		}
		res = r.probe(ctx, folder)
		r.mu.Lock()
		r.results[folder] = res
		r.mu.Unlock()
		return res, nil
	})
	res = v.(formatResult)
	return res.format, res.resolved
}

// Lookup returns the memoized format without probing. The third return
// reports whether resolution has completed at all.
func (r *FormatResolver) Lookup(folder string) (NamingFormat, bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[folder]
	return res.format, res.resolved, ok
}

func (r *FormatResolver) probe(ctx context.Context, folder string) formatResult {
	for _, cand := range r.candidates {
		if r.src.Exists(ctx, cand.FramePath(folder, 1)) {
			debugLog("Format resolved for %s: %s", folder, cand.FrameName(1))
			return formatResult{format: cand, resolved: true}
		}
	}
	debugLog("No naming format matched for %s", folder)
	return formatResult{}
}

// FrameCounter determines how many frames a resolved folder holds by binary
// searching the highest existing index. It assumes frames are contiguous from
// 1 to N; a gapped sequence yields a deterministic but wrong count, which is
// an accepted limitation. Counts are memoized and concurrent callers share
// one in-flight probe.
type FrameCounter struct {
	src      FrameSource
	resolver *FormatResolver

	mu     sync.RWMutex
	counts map[string]int
	group  singleflight.Group
}

func NewFrameCounter(src FrameSource, resolver *FormatResolver) *FrameCounter {
	return &FrameCounter{
		src:      src,
		resolver: resolver,
		counts:   make(map[string]int),
	}
}

// Count returns the number of frames in folder. If the folder has no
// resolved naming format, the default count is returned without probing.
func (c *FrameCounter) Count(ctx context.Context, folder string) int {
	c.mu.RLock()
	n, ok := c.counts[folder]
	c.mu.RUnlock()
	if ok {
		return n
	}

	format, resolved := c.resolver.Resolve(ctx, folder)
	if !resolved {
		return defaultFrameCount
	}

	v, _, _ := c.group.Do(folder, func() (interface{}, error) {
		c.mu.RLock()
		n, ok := c.counts[folder]
		c.mu.RUnlock()
		if ok {
			return n, nil
		}
		n = c.search(ctx, folder, format)
		c.mu.Lock()
		c.counts[folder] = n
		c.mu.Unlock()
		return n, nil
	})
	return v.(int)
}

// CachedCount returns the memoized count, or the default if probing has not
// completed. It never blocks and is safe to call from the render path.
func (c *FrameCounter) CachedCount(folder string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n, ok := c.counts[folder]; ok {
		return n
	}
	return defaultFrameCount
}

func (c *FrameCounter) search(ctx context.Context, folder string, format NamingFormat) int {
	// Frame 1 is known to exist: format resolution probed it.
	lo, hi := 1, maxFrameIndex
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.src.Exists(ctx, format.FramePath(folder, mid)) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	debugLog("Frame count for %s: %d", folder, lo)
	return lo
}
