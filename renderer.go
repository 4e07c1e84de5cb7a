package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128} // Light semi-transparent
	bgColorMedium = color.RGBA{0, 0, 0, 160} // Medium semi-transparent
)

const (
	dayDotRadius  = 5.0
	dayDotSpacing = 24.0
	dayDotMarginY = 28.0
)

// Renderer turns the compositor's RenderPlan and the application state into
// pixels. It owns no animation state of its own.
type Renderer struct {
	renderState    RenderState
	helpFontSource *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer sharing the font source loaded by
// InitGraphics.
func NewRenderer(renderState RenderState) *Renderer {
	if globalFontSource == nil {
		if err := InitGraphics(); err != nil {
			log.Fatal(err)
		}
	}

	return &Renderer{
		renderState:    renderState,
		helpFontSource: globalFontSource,
	}
}

// Draw renders the plan's layers back-to-front, then the overlays.
func (r *Renderer) Draw(screen *ebiten.Image, plan RenderPlan) {
	screen.Clear()

	for _, layer := range plan.Layers {
		r.drawLayer(screen, layer)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoStrip(screen)
	}
	r.drawDayDots(screen)

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}
}

// drawLayer draws one layer. A frame layer whose image has not loaded yet is
// substituted with the procedural scene of the same type so there is always
// something on screen.
func (r *Renderer) drawLayer(screen *ebiten.Image, layer Layer) {
	if layer.Opacity <= 0 {
		return
	}
	if layer.Kind == LayerProcedural || layer.Image == nil {
		DrawProceduralScene(screen, layer.Type, layer.Tick, layer.Opacity, layer.OffsetX)
		return
	}

	img := layer.Image
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	// Cover-fit: fill the viewport, cropping overflow.
	scale := math.Max(w/iw, h/ih)
	sw, sh := iw*scale, ih*scale

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(w/2-sw/2+layer.OffsetX*w, h/2-sh/2)
	op.ColorScale.ScaleAlpha(float32(layer.Opacity))

	screen.DrawImage(img, op)
}

// dayDotCenters returns the screen positions of the day-navigation dots.
func dayDotCenters(screenW, screenH, dayCount int) []struct{ X, Y float64 } {
	centers := make([]struct{ X, Y float64 }, dayCount)
	total := float64(dayCount-1) * dayDotSpacing
	startX := float64(screenW)/2 - total/2
	y := float64(screenH) - dayDotMarginY
	for i := range centers {
		centers[i] = struct{ X, Y float64 }{startX + float64(i)*dayDotSpacing, y}
	}
	return centers
}

// DayDotAt returns the day index of the dot containing the point, or -1.
func DayDotAt(screenW, screenH, dayCount, x, y int) int {
	for i, c := range dayDotCenters(screenW, screenH, dayCount) {
		dx := float64(x) - c.X
		dy := float64(y) - c.Y
		if dx*dx+dy*dy <= (dayDotRadius*2)*(dayDotRadius*2) {
			return i
		}
	}
	return -1
}

func (r *Renderer) drawDayDots(screen *ebiten.Image) {
	days := r.renderState.Days()
	if len(days) < 2 {
		return
	}
	active := r.renderState.ActiveDay()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	for i, c := range dayDotCenters(w, h, len(days)) {
		col := color.RGBA{255, 255, 255, 110}
		radius := dayDotRadius
		if i == active {
			col = colorWhite
			radius = dayDotRadius * 1.4
		}
		DrawFilledCircle(screen, c.X, c.Y, radius, col)
	}
}

func (r *Renderer) drawInfoStrip(screen *ebiten.Image) {
	days := r.renderState.Days()
	active := r.renderState.ActiveDay()
	if active < 0 || active >= len(days) {
		return
	}
	day := days[active]

	infoFont := &text.GoTextFace{
		Source: r.helpFontSource,
		Size:   r.renderState.GetFontSize(),
	}

	place := r.renderState.PlaceName()
	infoText := fmt.Sprintf("%s  %s  %.0f° / %.0f°",
		day.Date.Format("Mon Jan 2"), day.Type.Label(), day.TempMax, day.TempMin)
	if place != "" {
		infoText = place + "  —  " + infoText
	}

	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	padding := 10.0
	textX := padding * 2
	textY := float64(screen.Bounds().Dy()) - textHeight - padding*2 - dayDotMarginY

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding,
		textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)

	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}

// getActionsList returns a sorted list of all actions that have bindings
func (r *Renderer) getActionsList() []string {
	keybindings := r.renderState.GetKeybindings()
	actions := make([]string, 0, len(keybindings))
	for action := range keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	padding := 40.0
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	helpFont := &text.GoTextFace{
		Source: r.helpFontSource,
		Size:   r.renderState.GetFontSize(),
	}
	fontSize := helpFont.Size
	lineHeight := fontSize * 1.5

	titleY := padding + 30
	DrawText(screen, "HELP:", helpFont, padding+20, titleY, colorWhite)
	currentY := titleY + fontSize*2

	actions := r.getActionsList()
	keybindings := r.renderState.GetKeybindings()
	actionDescriptions := GetActionDescriptions()

	// Column widths from text measurement
	maxActionWidth := 0.0
	maxKeysWidth := 0.0
	for _, action := range actions {
		keys := keybindings[action]
		if len(keys) == 0 {
			continue
		}
		aw, _ := text.Measure(action, helpFont, 0)
		if aw > maxActionWidth {
			maxActionWidth = aw
		}
		kw, _ := text.Measure(joinKeys(keys), helpFont, 0)
		if kw > maxKeysWidth {
			maxKeysWidth = kw
		}
	}

	actionColumnX := padding + 40
	arrowColumnX := actionColumnX + maxActionWidth + 20
	keysColumnX := arrowColumnX + 30
	descColumnX := keysColumnX + maxKeysWidth + 20

	for _, action := range actions {
		keys := keybindings[action]
		if len(keys) == 0 {
			continue
		}

		description := actionDescriptions[action]
		if description == "" {
			description = "No description available"
		}

		DrawText(screen, action, helpFont, actionColumnX, currentY, colorLightBlue)
		DrawText(screen, "→", helpFont, arrowColumnX, currentY, colorWhite)
		DrawText(screen, joinKeys(keys), helpFont, keysColumnX, currentY, colorYellow)
		DrawText(screen, description, helpFont, descColumnX, currentY, colorGray)

		currentY += lineHeight
	}

	// Config status section
	currentY += lineHeight
	DrawText(screen, "System:", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight

	configStatus := r.renderState.GetConfigStatus()
	statusText := fmt.Sprintf("Config Status: %s", configStatus.Status)
	statusColor := colorGreen
	if configStatus.Status == "Warning" || configStatus.Status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, statusText, helpFont, padding+40, currentY, statusColor)
}

func joinKeys(keys []string) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k
	}
	return out
}
