package main

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeFrameSource is an in-memory FrameSource for tests. It tracks how many
// existence probes were made and can fail loads for selected paths.
type fakeFrameSource struct {
	mu       sync.Mutex
	existing map[string]bool
	failing  map[string]bool
	probes   int
	loads    int
}

func newFakeFrameSource() *fakeFrameSource {
	return &fakeFrameSource{
		existing: make(map[string]bool),
		failing:  make(map[string]bool),
	}
}

// addFrames registers frames 1..n for the folder under the given format.
func (s *fakeFrameSource) addFrames(folder string, format NamingFormat, n int) {
	for i := 1; i <= n; i++ {
		s.existing[format.FramePath(folder, i)] = true
	}
}

func (s *fakeFrameSource) Exists(_ context.Context, relPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes++
	return s.existing[relPath]
}

func (s *fakeFrameSource) Load(_ context.Context, relPath string) (*ebiten.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.failing[relPath] {
		return nil, fmt.Errorf("simulated load failure: %s", relPath)
	}
	if !s.existing[relPath] {
		return nil, fmt.Errorf("not found: %s", relPath)
	}
	return ebiten.NewImage(1, 1), nil
}

func (s *fakeFrameSource) probeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probes
}

func TestFormatResolverResolve(t *testing.T) {
	tests := []struct {
		name         string
		format       NamingFormat
		wantResolved bool
	}{
		{"Standard padded jpg", NamingFormat{"frame_", 4, ".jpg"}, true},
		{"Padded png", NamingFormat{"frame_", 4, ".png"}, true},
		{"No underscore", NamingFormat{"frame", 4, ".jpg"}, true},
		{"Bare index", NamingFormat{"", 4, ".jpg"}, true},
		{"Three digit padding", NamingFormat{"frame_", 3, ".jpg"}, true},
		{"img prefix", NamingFormat{"img_", 4, ".jpg"}, true},
		{"Unknown convention", NamingFormat{"shot-", 5, ".tiff"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeFrameSource()
			src.addFrames("sunny", tt.format, 10)
			resolver := NewFormatResolver(src)

			format, resolved := resolver.Resolve(context.Background(), "sunny")
			if resolved != tt.wantResolved {
				t.Fatalf("Resolve resolved = %v, want %v", resolved, tt.wantResolved)
			}
			if resolved && format != tt.format {
				t.Errorf("Resolve format = %+v, want %+v", format, tt.format)
			}
		})
	}
}

func TestFormatResolverMemoizes(t *testing.T) {
	src := newFakeFrameSource()
	src.addFrames("rainy", NamingFormat{"frame_", 4, ".jpg"}, 5)
	resolver := NewFormatResolver(src)

	resolver.Resolve(context.Background(), "rainy")
	probesAfterFirst := src.probeCount()

	for i := 0; i < 10; i++ {
		resolver.Resolve(context.Background(), "rainy")
	}
	if src.probeCount() != probesAfterFirst {
		t.Errorf("repeated Resolve probed again: %d probes, want %d", src.probeCount(), probesAfterFirst)
	}
}

func TestFormatResolverMemoizesUnresolved(t *testing.T) {
	src := newFakeFrameSource()
	resolver := NewFormatResolver(src)

	_, resolved := resolver.Resolve(context.Background(), "foggy")
	if resolved {
		t.Fatal("Resolve on empty source reported resolved")
	}
	probesAfterFirst := src.probeCount()
	if probesAfterFirst != len(formatCandidates()) {
		t.Errorf("first Resolve made %d probes, want %d", probesAfterFirst, len(formatCandidates()))
	}

	// The terminal outcome must be remembered with no further probing.
	for i := 0; i < 5; i++ {
		if _, resolved := resolver.Resolve(context.Background(), "foggy"); resolved {
			t.Fatal("unresolved folder became resolved without new assets")
		}
	}
	if src.probeCount() != probesAfterFirst {
		t.Errorf("unresolved folder re-probed: %d probes, want %d", src.probeCount(), probesAfterFirst)
	}
}

func TestFormatResolverConcurrentResolveSharesProbe(t *testing.T) {
	src := newFakeFrameSource()
	format := NamingFormat{"frame_", 4, ".jpg"}
	src.addFrames("sunny", format, 5)
	resolver := NewFormatResolver(src)

	const callers = 16
	start := make(chan struct{})
	results := make([]NamingFormat, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got, resolved := resolver.Resolve(context.Background(), "sunny")
			if !resolved {
				t.Errorf("caller %d: folder unresolved", i)
			}
			results[i] = got
		}(i)
	}
	close(start)
	wg.Wait()

	for i, got := range results {
		if got != format {
			t.Errorf("caller %d got format %+v, want %+v", i, got, format)
		}
	}
	// The first candidate matches on its first probe; concurrent callers
	// must have shared that single run.
	if got := src.probeCount(); got != 1 {
		t.Errorf("concurrent Resolve made %d probes, want 1", got)
	}
}

func TestFrameCounterConcurrentCountSharesProbe(t *testing.T) {
	const frames = 237
	format := NamingFormat{"frame_", 4, ".jpg"}

	// Sequential baseline: probes for one resolution plus one search.
	baseSrc := newFakeFrameSource()
	baseSrc.addFrames("rainy", format, frames)
	baseCounter := NewFrameCounter(baseSrc, NewFormatResolver(baseSrc))
	baseCounter.Count(context.Background(), "rainy")
	baseline := baseSrc.probeCount()

	src := newFakeFrameSource()
	src.addFrames("rainy", format, frames)
	counter := NewFrameCounter(src, NewFormatResolver(src))

	const callers = 16
	start := make(chan struct{})
	counts := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			counts[i] = counter.Count(context.Background(), "rainy")
		}(i)
	}
	close(start)
	wg.Wait()

	for i, got := range counts {
		if got != frames {
			t.Errorf("caller %d got count %d, want %d", i, got, frames)
		}
	}
	if got := src.probeCount(); got != baseline {
		t.Errorf("concurrent Count made %d probes, want %d (one shared run)", got, baseline)
	}
}

func TestFormatResolverLookup(t *testing.T) {
	src := newFakeFrameSource()
	format := NamingFormat{"frame_", 4, ".jpg"}
	src.addFrames("snowy", format, 3)
	resolver := NewFormatResolver(src)

	if _, _, checked := resolver.Lookup("snowy"); checked {
		t.Error("Lookup before Resolve reported a completed check")
	}
	if src.probeCount() != 0 {
		t.Errorf("Lookup probed the source: %d probes", src.probeCount())
	}

	resolver.Resolve(context.Background(), "snowy")
	got, resolved, checked := resolver.Lookup("snowy")
	if !checked || !resolved {
		t.Fatalf("Lookup after Resolve = (resolved=%v, checked=%v), want both true", resolved, checked)
	}
	if got != format {
		t.Errorf("Lookup format = %+v, want %+v", got, format)
	}
}

func TestFrameCounterCount(t *testing.T) {
	tests := []struct {
		name   string
		frames int
	}{
		{"Single frame", 1},
		{"Small sequence", 24},
		{"Odd count", 237},
		{"Typical sequence", 800},
		{"Near upper bound", 1999},
		{"At upper bound", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeFrameSource()
			format := NamingFormat{"frame_", 4, ".jpg"}
			src.addFrames("cloudy", format, tt.frames)
			resolver := NewFormatResolver(src)
			counter := NewFrameCounter(src, resolver)

			if got := counter.Count(context.Background(), "cloudy"); got != tt.frames {
				t.Errorf("Count = %d, want %d", got, tt.frames)
			}
		})
	}
}

func TestFrameCounterUnresolvedDefault(t *testing.T) {
	src := newFakeFrameSource()
	resolver := NewFormatResolver(src)
	counter := NewFrameCounter(src, resolver)

	if got := counter.Count(context.Background(), "stormy"); got != defaultFrameCount {
		t.Errorf("Count on unresolved folder = %d, want %d", got, defaultFrameCount)
	}
}

func TestFrameCounterCachedCount(t *testing.T) {
	src := newFakeFrameSource()
	format := NamingFormat{"frame_", 4, ".jpg"}
	src.addFrames("sunny", format, 123)
	resolver := NewFormatResolver(src)
	counter := NewFrameCounter(src, resolver)

	if got := counter.CachedCount("sunny"); got != defaultFrameCount {
		t.Errorf("CachedCount before probing = %d, want %d", got, defaultFrameCount)
	}

	counter.Count(context.Background(), "sunny")
	if got := counter.CachedCount("sunny"); got != 123 {
		t.Errorf("CachedCount after probing = %d, want 123", got)
	}
}

func TestFrameCounterMemoizes(t *testing.T) {
	src := newFakeFrameSource()
	format := NamingFormat{"frame_", 4, ".jpg"}
	src.addFrames("rainy", format, 64)
	resolver := NewFormatResolver(src)
	counter := NewFrameCounter(src, resolver)

	counter.Count(context.Background(), "rainy")
	probesAfterFirst := src.probeCount()

	for i := 0; i < 5; i++ {
		counter.Count(context.Background(), "rainy")
	}
	if src.probeCount() != probesAfterFirst {
		t.Errorf("repeated Count probed again: %d probes, want %d", src.probeCount(), probesAfterFirst)
	}
}

func TestNamingFormatFrameName(t *testing.T) {
	tests := []struct {
		format   NamingFormat
		index    int
		expected string
	}{
		{NamingFormat{"frame_", 4, ".jpg"}, 1, "frame_0001.jpg"},
		{NamingFormat{"frame_", 4, ".jpg"}, 400, "frame_0400.jpg"},
		{NamingFormat{"frame_", 3, ".jpg"}, 42, "frame_042.jpg"},
		{NamingFormat{"", 4, ".jpg"}, 7, "0007.jpg"},
		{NamingFormat{"img_", 4, ".jpg"}, 2000, "img_2000.jpg"},
	}

	for _, tt := range tests {
		if got := tt.format.FrameName(tt.index); got != tt.expected {
			t.Errorf("FrameName(%d) = %q, want %q", tt.index, got, tt.expected)
		}
	}
}

func TestNamingFormatFramePath(t *testing.T) {
	format := NamingFormat{"frame_", 4, ".jpg"}
	if got := format.FramePath("sunny_to_rainy", 400); got != "sunny_to_rainy/frame_0400.jpg" {
		t.Errorf("FramePath = %q, want %q", got, "sunny_to_rainy/frame_0400.jpg")
	}
}
