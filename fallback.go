package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Procedural scene rendering: the visual substitute used whenever frame
// assets are missing or still loading. Everything here is derived from the
// weather type and the animation tick alone, so it never depends on network
// success.

type skyPalette struct {
	top    color.RGBA
	bottom color.RGBA
}

func paletteFor(t WeatherType) skyPalette {
	switch t {
	case WeatherSunny:
		return skyPalette{color.RGBA{64, 156, 255, 255}, color.RGBA{180, 225, 255, 255}}
	case WeatherCloudy:
		return skyPalette{color.RGBA{110, 130, 160, 255}, color.RGBA{190, 200, 215, 255}}
	case WeatherFoggy:
		return skyPalette{color.RGBA{150, 155, 165, 255}, color.RGBA{205, 208, 214, 255}}
	case WeatherRainy:
		return skyPalette{color.RGBA{70, 85, 110, 255}, color.RGBA{130, 145, 170, 255}}
	case WeatherSnowy:
		return skyPalette{color.RGBA{160, 175, 200, 255}, color.RGBA{230, 235, 245, 255}}
	case WeatherStormy:
		return skyPalette{color.RGBA{40, 45, 60, 255}, color.RGBA{90, 95, 115, 255}}
	default:
		return skyPalette{color.RGBA{110, 130, 160, 255}, color.RGBA{190, 200, 215, 255}}
	}
}

// scatter returns a deterministic pseudo-random value in [0,1) for an
// element index, so particles keep stable positions across ticks.
func scatter(i int) float64 {
	x := uint32(i+1) * 2654435761
	x ^= x >> 16
	x *= 2246822519
	x ^= x >> 13
	return float64(x%10000) / 10000
}

// DrawProceduralScene renders the fallback visual for one weather type at
// the given opacity and horizontal offset (fraction of screen width).
func DrawProceduralScene(screen *ebiten.Image, t WeatherType, tick int, opacity, offsetX float64) {
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	ox := offsetX * w

	drawSkyGradient(screen, t, ox, w, h, opacity)

	switch t {
	case WeatherSunny:
		drawSun(screen, tick, ox, w, h, opacity)
	case WeatherCloudy:
		drawClouds(screen, tick, ox, w, h, opacity, 5)
	case WeatherFoggy:
		drawFogBands(screen, tick, ox, w, h, opacity)
	case WeatherRainy:
		drawClouds(screen, tick, ox, w, h, opacity, 3)
		drawRain(screen, tick, ox, w, h, opacity)
	case WeatherSnowy:
		drawSnow(screen, tick, ox, w, h, opacity)
	case WeatherStormy:
		drawClouds(screen, tick, ox, w, h, opacity, 4)
		drawRain(screen, tick, ox, w, h, opacity)
		drawLightning(screen, tick, ox, w, h, opacity)
	}
}

func drawSkyGradient(screen *ebiten.Image, t WeatherType, ox, w, h, opacity float64) {
	p := paletteFor(t)
	const bands = 24
	bandH := h / bands
	for i := 0; i < bands; i++ {
		f := float64(i) / (bands - 1)
		c := color.RGBA{
			R: uint8(lerp(float64(p.top.R), float64(p.bottom.R), f)),
			G: uint8(lerp(float64(p.top.G), float64(p.bottom.G), f)),
			B: uint8(lerp(float64(p.top.B), float64(p.bottom.B), f)),
			A: 255,
		}
		DrawFilledRect(screen, ox, float64(i)*bandH, w, bandH+1, scaleAlpha(c, opacity))
	}
}

func drawSun(screen *ebiten.Image, tick int, ox, w, h, opacity float64) {
	cx := ox + w*0.72
	cy := h * 0.26
	pulse := 1 + 0.04*math.Sin(float64(tick)/idleFPS)
	r := h * 0.11 * pulse

	halo := scaleAlpha(color.RGBA{255, 235, 150, 90}, opacity)
	core := scaleAlpha(color.RGBA{255, 220, 90, 255}, opacity)
	DrawFilledCircle(screen, cx, cy, r*1.6, halo)
	DrawFilledCircle(screen, cx, cy, r, core)
}

func drawClouds(screen *ebiten.Image, tick int, ox, w, h, opacity float64, count int) {
	c := scaleAlpha(color.RGBA{235, 238, 242, 230}, opacity)
	for i := 0; i < count; i++ {
		drift := math.Mod(scatter(i)*w+float64(tick)*(0.3+scatter(i*7)*0.4), w+w*0.4) - w*0.2
		cy := h * (0.12 + 0.22*scatter(i*3))
		r := h * (0.05 + 0.05*scatter(i*5))

		DrawFilledCircle(screen, ox+drift, cy, r, c)
		DrawFilledCircle(screen, ox+drift+r*1.1, cy+r*0.25, r*0.8, c)
		DrawFilledCircle(screen, ox+drift-r*1.1, cy+r*0.25, r*0.75, c)
	}
}

func drawFogBands(screen *ebiten.Image, tick int, ox, w, h, opacity float64) {
	const bands = 6
	for i := 0; i < bands; i++ {
		drift := math.Sin(float64(tick)/(idleFPS*3)+float64(i)) * w * 0.04
		y := h * (0.25 + 0.12*float64(i))
		band := scaleAlpha(color.RGBA{225, 228, 233, 70}, opacity)
		DrawFilledRect(screen, ox+drift-w*0.1, y, w*1.2, h*0.07, band)
	}
}

func drawRain(screen *ebiten.Image, tick int, ox, w, h, opacity float64) {
	c := scaleAlpha(color.RGBA{170, 190, 220, 200}, opacity)
	const drops = 60
	for i := 0; i < drops; i++ {
		x := scatter(i) * w
		fall := math.Mod(scatter(i*11)*h+float64(tick)*(h/30), h)
		DrawFilledRect(screen, ox+x, fall, 2, h*0.03, c)
	}
}

func drawSnow(screen *ebiten.Image, tick int, ox, w, h, opacity float64) {
	c := scaleAlpha(color.RGBA{250, 250, 255, 230}, opacity)
	const flakes = 50
	for i := 0; i < flakes; i++ {
		sway := math.Sin(float64(tick)/idleFPS+scatter(i*13)*math.Pi*2) * w * 0.01
		x := scatter(i)*w + sway
		fall := math.Mod(scatter(i*11)*h+float64(tick)*(h/240), h)
		DrawFilledCircle(screen, ox+x, fall, 2+2*scatter(i*17), c)
	}
}

func drawLightning(screen *ebiten.Image, tick int, ox, w, h, opacity float64) {
	// A short white flash on a fixed cycle.
	const cycle = int(idleFPS * 4)
	if tick%cycle >= 3 {
		return
	}
	flash := scaleAlpha(color.RGBA{255, 255, 240, 70}, opacity)
	DrawFilledRect(screen, ox, 0, w, h, flash)
}
