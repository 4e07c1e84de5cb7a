package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestFrameCachePutGet(t *testing.T) {
	cache := NewFrameCache()

	if _, ok := cache.Get("sunny/frame_0001.jpg"); ok {
		t.Error("empty cache reported a hit")
	}

	img := ebiten.NewImage(2, 2)
	cache.Put("sunny/frame_0001.jpg", img)

	got, ok := cache.Get("sunny/frame_0001.jpg")
	if !ok {
		t.Fatal("cached frame missing")
	}
	if got != img {
		t.Error("cache returned a different image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}

func TestFrameCacheRetainsEverything(t *testing.T) {
	cache := NewFrameCache()
	const n = 500

	for i := 1; i <= n; i++ {
		cache.Put(fmt.Sprintf("rainy/frame_%04d.jpg", i), ebiten.NewImage(1, 1))
	}

	if cache.Len() != n {
		t.Fatalf("Len = %d, want %d", cache.Len(), n)
	}
	// Early entries survive arbitrary later inserts.
	if _, ok := cache.Get("rainy/frame_0001.jpg"); !ok {
		t.Error("first inserted frame was evicted")
	}
}

func TestFrameCacheConcurrent(t *testing.T) {
	cache := NewFrameCache()
	var wg sync.WaitGroup

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				path := fmt.Sprintf("cloudy/frame_%02d_%02d.jpg", w, i)
				cache.Put(path, ebiten.NewImage(1, 1))
				if _, ok := cache.Get(path); !ok {
					t.Errorf("concurrent read missed %s", path)
				}
			}
		}(w)
	}
	wg.Wait()

	if cache.Len() != 8*50 {
		t.Errorf("Len = %d, want %d", cache.Len(), 8*50)
	}
}
