package main

import (
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Idle loops advance at a fixed logical frame rate regardless of the
	// display refresh rate.
	idleFPS = 24.0

	// Progress below this is treated as "not transitioning".
	transitionEpsilon = 0.003

	// Portion of progress over which an incoming transition sequence is
	// cross-faded against the outgoing idle frame.
	crossFadeSpan = 0.12
)

// SceneStatus is the per-folder resolution state.
type SceneStatus int

const (
	SceneChecking SceneStatus = iota // format/count resolution in flight
	SceneFallback                    // no frame assets; procedural substitute
	SceneReady                       // frames found
)

// SceneState is the compositor's per-tick input, sourced from the gesture
// controller and the forecast.
type SceneState struct {
	Current  WeatherType
	Next     WeatherType
	Progress float64
	HasNext  bool
}

// LayerKind selects how the host draws a layer.
type LayerKind int

const (
	LayerFrame      LayerKind = iota // a cached frame image
	LayerProcedural                  // procedurally rendered scene
)

// Layer describes one visual layer of a render tick. For LayerFrame the
// Image may be nil when the frame has not loaded yet; the host substitutes
// the procedural scene of the same type so the render path never blocks.
type Layer struct {
	Kind    LayerKind
	Type    WeatherType
	Image   *ebiten.Image
	Path    string
	Opacity float64
	OffsetX float64 // fraction of viewport width
	Tick    int
}

// RenderPlan is the compositor's declarative output: layers in back-to-front
// order. The host performs the actual drawing.
type RenderPlan struct {
	Layers []Layer
}

// SceneCompositor decides, per render tick, whether each scene shows an
// idle-loop frame, a transition frame or a procedural fallback, and at what
// blend and offset. It holds no timers; the idle clock is derived from the
// timestamp passed to Compose, and state changes are driven by asynchronous
// resolution results and the externally supplied progress.
type SceneCompositor struct {
	resolver       *FormatResolver
	counter        *FrameCounter
	cache          *FrameCache
	prefetch       *Prefetcher
	initialPreload int
	epoch          time.Time

	mu       sync.Mutex
	statuses map[string]SceneStatus
}

func NewSceneCompositor(resolver *FormatResolver, counter *FrameCounter, cache *FrameCache, prefetch *Prefetcher, initialPreload int) *SceneCompositor {
	return &SceneCompositor{
		resolver:       resolver,
		counter:        counter,
		cache:          cache,
		prefetch:       prefetch,
		initialPreload: initialPreload,
		epoch:          time.Now(),
		statuses:       make(map[string]SceneStatus),
	}
}

// Status returns the folder's resolution state. An unknown folder reports
// SceneChecking: resolution simply has not been kicked off yet.
func (c *SceneCompositor) Status(folder string) SceneStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.statuses[folder]; ok {
		return s
	}
	return SceneChecking
}

func (c *SceneCompositor) setStatus(folder string, s SceneStatus) {
	c.mu.Lock()
	c.statuses[folder] = s
	c.mu.Unlock()
}

// EnsureScene starts asynchronous resolution and preloading for a weather
// type's idle folder. Safe to call redundantly; only the first call per
// folder does anything.
func (c *SceneCompositor) EnsureScene(ctx context.Context, t WeatherType) {
	c.ensureFolder(ctx, t.String(), true)
}

// EnsureTransition does the same for the directional pair folder. A same-type
// pair has no transition folder and is a no-op.
func (c *SceneCompositor) EnsureTransition(ctx context.Context, from, to WeatherType) {
	key, ok := TransitionKey(from, to)
	if !ok {
		return
	}
	c.ensureFolder(ctx, key, false)
}

func (c *SceneCompositor) ensureFolder(ctx context.Context, folder string, idle bool) {
	c.mu.Lock()
	if _, ok := c.statuses[folder]; ok {
		c.mu.Unlock()
		return
	}
	c.statuses[folder] = SceneChecking
	c.mu.Unlock()

	go func() {
		_, resolved := c.resolver.Resolve(ctx, folder)
		if !resolved {
			c.setStatus(folder, SceneFallback)
			return
		}
		c.counter.Count(ctx, folder)
		if idle {
			// Get the first frames on screen quickly, then fill in.
			c.prefetch.PreloadInitial(ctx, folder, c.initialPreload)
		}
		c.setStatus(folder, SceneReady)
		c.prefetch.PreloadAll(ctx, folder)
	}()
}

// Compose evaluates the state machine for one render tick.
func (c *SceneCompositor) Compose(now time.Time, st SceneState) RenderPlan {
	tick := c.animationTick(now)
	base := c.sceneLayer(st.Current, tick, 1.0, 0)

	transitioning := st.HasNext && st.Progress > transitionEpsilon
	if !transitioning {
		return RenderPlan{Layers: []Layer{base}}
	}

	if st.Current == st.Next {
		// Same classification on both days: the next layer mirrors the
		// current asset and playback position, so the base layer alone is
		// already the seamless result.
		return RenderPlan{Layers: []Layer{base}}
	}

	key, _ := TransitionKey(st.Current, st.Next)
	if c.Status(key) == SceneReady {
		return c.transitionPlan(key, base, st, tick)
	}

	// No transition sequence: positional slide driven by eased progress.
	t := easeInOutCubic(st.Progress)
	out := base
	out.OffsetX = -t
	in := c.sceneLayer(st.Next, tick, 1.0, 1-t)
	return RenderPlan{Layers: []Layer{out, in}}
}

func (c *SceneCompositor) transitionPlan(key string, base Layer, st SceneState, tick int) RenderPlan {
	n := c.counter.CachedCount(key)
	idx := FrameIndex(st.Progress, n)

	format, resolved, _ := c.resolver.Lookup(key)
	if !resolved {
		return RenderPlan{Layers: []Layer{base}}
	}
	path := format.FramePath(key, idx)
	img, _ := c.cache.Get(path)

	frame := Layer{
		Kind:    LayerFrame,
		Type:    st.Next,
		Image:   img,
		Path:    path,
		Opacity: clamp01(st.Progress / crossFadeSpan),
		Tick:    tick,
	}
	if frame.Opacity < 1 {
		return RenderPlan{Layers: []Layer{base, frame}}
	}
	return RenderPlan{Layers: []Layer{frame}}
}

// sceneLayer builds the layer for one weather type's idle scene.
func (c *SceneCompositor) sceneLayer(t WeatherType, tick int, opacity, offsetX float64) Layer {
	layer := Layer{
		Kind:    LayerProcedural,
		Type:    t,
		Opacity: opacity,
		OffsetX: offsetX,
		Tick:    tick,
	}

	folder := t.String()
	if c.Status(folder) != SceneReady {
		return layer
	}
	format, resolved, _ := c.resolver.Lookup(folder)
	if !resolved {
		return layer
	}

	n := c.counter.CachedCount(folder)
	idx := tick%n + 1
	path := format.FramePath(folder, idx)
	img, _ := c.cache.Get(path)

	layer.Kind = LayerFrame
	layer.Image = img
	layer.Path = path
	return layer
}

// animationTick is the idle-loop frame counter derived from wall clock.
func (c *SceneCompositor) animationTick(now time.Time) int {
	elapsed := now.Sub(c.epoch).Seconds()
	if elapsed < 0 {
		return 0
	}
	return int(elapsed * idleFPS)
}
