package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameCache maps a source-relative frame path to its loaded image. Entries
// are never evicted: frame assets are immutable and the working set is
// bounded by frame count times folders visited. Absence only means "not yet
// loaded"; the render path tolerates both.
type FrameCache struct {
	mu     sync.RWMutex
	frames map[string]*ebiten.Image
}

func NewFrameCache() *FrameCache {
	return &FrameCache{frames: make(map[string]*ebiten.Image)}
}

func (c *FrameCache) Get(path string) (*ebiten.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.frames[path]
	return img, ok
}

func (c *FrameCache) Put(path string, img *ebiten.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames[path] = img
}

func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}
