package main

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// App is the Ebiten game: it owns the forecast data, the gesture controller
// and the compositor, and feeds raw input into day-advance commands.
type App struct {
	config       Config
	configStatus ConfigLoadResult

	provider ForecastProvider
	lat, lon float64
	place    string

	gesture    *GestureController
	compositor *SceneCompositor
	renderer   *Renderer
	keys       *KeybindingManager
	wheel      *WheelTracker
	touch      *TouchTracker

	mu   sync.RWMutex
	days []DayForecast

	fullscreen bool
	savedWinW  int
	savedWinH  int
	showInfo   bool
	showHelp   bool

	screenW int
	screenH int

	touchIDs []ebiten.TouchID
}

func NewApp(configResult ConfigLoadResult, provider ForecastProvider, compositor *SceneCompositor, days []DayForecast, lat, lon float64, place string) *App {
	config := configResult.Config

	a := &App{
		config:       config,
		configStatus: configResult,
		provider:     provider,
		lat:          lat,
		lon:          lon,
		place:        place,
		compositor:   compositor,
		keys:         NewKeybindingManager(config.Keybindings),
		wheel:        NewWheelTracker(config.Pointer),
		touch:        NewTouchTracker(config.Pointer),
		days:         days,
		fullscreen:   config.Fullscreen,
		showInfo:     config.ShowInfo,
		screenW:      config.WindowWidth,
		screenH:      config.WindowHeight,
	}
	a.gesture = NewGestureController(len(days), time.Duration(config.TransitionMS)*time.Millisecond)
	a.renderer = NewRenderer(a)
	return a
}

func (a *App) Update() error {
	now := time.Now()
	a.gesture.Update(now)

	a.handleKeys()
	a.handleWheel(now)
	a.handleTouch()
	a.handleDotClick()

	a.ensureScenes()
	return nil
}

func (a *App) handleKeys() {
	for _, def := range actionDefinitions {
		a.keys.ExecuteAction(def.Name, a, a)
	}
}

func (a *App) handleWheel(now time.Time) {
	_, dy := ebiten.Wheel()
	dir := a.wheel.Add(now, dy)
	if dir == 0 || a.gesture.Animating() {
		return
	}
	a.gesture.TriggerTransition(now, dir)
}

func (a *App) handleTouch() {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		x, y := ebiten.TouchPosition(id)
		a.touch.Press(id, x, y)
	}

	a.touchIDs = inpututil.AppendJustReleasedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		dir := a.touch.Release(id, x, y)
		if dir == 0 || a.gesture.Animating() {
			continue
		}
		a.gesture.TriggerTransition(time.Now(), dir)
	}
}

func (a *App) handleDotClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	day := DayDotAt(a.screenW, a.screenH, a.GetDayCount(), x, y)
	if day >= 0 {
		a.JumpToDay(day)
	}
}

// ensureScenes kicks off resolution and preloading for everything the
// current view can need: the active day's idle scene, the next day's, and
// the transition pair between them. All calls are idempotent.
func (a *App) ensureScenes() {
	st := a.sceneState()
	ctx := context.Background()

	a.compositor.EnsureScene(ctx, st.Current)
	if st.HasNext {
		a.compositor.EnsureScene(ctx, st.Next)
		a.compositor.EnsureTransition(ctx, st.Current, st.Next)
	}
}

func (a *App) sceneState() SceneState {
	day, progress, _ := a.gesture.State()

	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.days) == 0 {
		return SceneState{Current: WeatherCloudy, Next: WeatherCloudy}
	}
	if day >= len(a.days) {
		day = len(a.days) - 1
	}

	st := SceneState{
		Current:  a.days[day].Type,
		Progress: progress,
		HasNext:  day < len(a.days)-1,
	}
	if st.HasNext {
		st.Next = a.days[day+1].Type
	} else {
		st.Next = st.Current
	}
	return st
}

func (a *App) Draw(screen *ebiten.Image) {
	plan := a.compositor.Compose(time.Now(), a.sceneState())
	a.renderer.Draw(screen, plan)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.screenW, a.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (a *App) Exit() {
	a.saveCurrentWindowSize()
	os.Exit(0)
}

func (a *App) ToggleHelp() { a.showHelp = !a.showHelp }
func (a *App) ToggleInfo() { a.showInfo = !a.showInfo }

func (a *App) ToggleFullscreen() {
	a.fullscreen = !a.fullscreen
	if a.fullscreen {
		a.savedWinW, a.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if a.savedWinW > 0 && a.savedWinH > 0 {
			ebiten.SetWindowSize(a.savedWinW, a.savedWinH)
		}
	}
}

func (a *App) NextDay() {
	a.gesture.TriggerTransition(time.Now(), 1)
}

func (a *App) PreviousDay() {
	a.gesture.TriggerTransition(time.Now(), -1)
}

func (a *App) JumpToDay(day int) {
	a.gesture.JumpToDay(day)
}

// RefreshForecast re-fetches the forecast in the background. The gesture
// controller is re-bounded to the new day list so a shrunken forecast cannot
// leave the active day, or a run completing, past the end.
func (a *App) RefreshForecast() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		days, err := a.provider.FetchForecast(ctx, a.lat, a.lon)
		if err != nil {
			log.Printf("Error: Failed to refresh forecast: %v", err)
			return
		}

		a.mu.Lock()
		a.days = days
		a.mu.Unlock()

		a.gesture.SetDayCount(len(days))
		debugLog("Forecast refreshed: %d days", len(days))
	}()
}

func (a *App) GetDayCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.days)
}

// InputState implementation

func (a *App) IsAnimating() bool { return a.gesture.Animating() }

// RenderState implementation

func (a *App) Days() []DayForecast {
	a.mu.RLock()
	defer a.mu.RUnlock()
	days := make([]DayForecast, len(a.days))
	copy(days, a.days)
	return days
}

func (a *App) ActiveDay() int { return a.gesture.ActiveDay() }

func (a *App) Progress() float64 {
	_, progress, _ := a.gesture.State()
	return progress
}

func (a *App) PlaceName() string { return a.place }

func (a *App) IsFullscreen() bool  { return a.fullscreen }
func (a *App) IsShowingInfo() bool { return a.showInfo }
func (a *App) IsShowingHelp() bool { return a.showHelp }

func (a *App) GetFontSize() float64 { return a.config.HelpFontSize }

func (a *App) GetConfigStatus() ConfigLoadResult { return a.configStatus }

func (a *App) GetKeybindings() map[string][]string { return a.keys.GetKeybindings() }

func (a *App) saveCurrentWindowSize() {
	if a.fullscreen {
		// Save the size from before fullscreen
		if a.savedWinW > 0 && a.savedWinH > 0 {
			a.config.WindowWidth = a.savedWinW
			a.config.WindowHeight = a.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		a.config.WindowWidth = w
		a.config.WindowHeight = h
	}
	a.config.Fullscreen = a.fullscreen
	a.config.ShowInfo = a.showInfo
	saveConfig(a.config)
}
