package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	openMeteoForecastURL  = "https://api.open-meteo.com"
	openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com"
)

var debugMode = flag.Bool("debug", false, "enable debug logging")

// debugLog prints a message only when -debug is set.
func debugLog(format string, args ...interface{}) {
	if *debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

func main() {
	assetsFlag := flag.String("assets", "", "frame asset location (directory, archive, or base URL)")
	placeFlag := flag.String("place", "", "place name to geocode for the forecast")
	latFlag := flag.Float64("lat", 0, "forecast latitude (used when no place is given)")
	lonFlag := flag.Float64("lon", 0, "forecast longitude (used when no place is given)")
	flag.Parse()

	configResult := loadConfig()
	config := configResult.Config
	for _, warning := range configResult.Warnings {
		log.Printf("Warning: %s", warning)
	}

	if *assetsFlag != "" {
		config.Assets = *assetsFlag
	}
	if *placeFlag != "" {
		config.Place = *placeFlag
	}
	if *latFlag != 0 || *lonFlag != 0 {
		config.Latitude = *latFlag
		config.Longitude = *lonFlag
		config.Place = ""
	}
	configResult.Config = config

	if config.Assets == "" {
		log.Fatal("Error: no asset location; set \"assets\" in ~/.skies.json or pass -assets")
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Error: Failed to initialize graphics: %v", err)
	}

	src, err := OpenFrameSource(config.Assets)
	if err != nil {
		log.Fatalf("Error: Failed to open asset source %s: %v", config.Assets, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lat, lon, place := config.Latitude, config.Longitude, config.Place
	if config.Place != "" {
		geocoder := NewOpenMeteoGeocoder(openMeteoGeocodingURL)
		lat, lon, place, err = geocoder.Geocode(ctx, config.Place)
		if err != nil {
			log.Fatalf("Error: Failed to geocode %q: %v", config.Place, err)
		}
		debugLog("Geocoded %q to %.4f,%.4f (%s)", config.Place, lat, lon, place)
	}
	if place == "" {
		place = fmt.Sprintf("%.2f, %.2f", lat, lon)
	}

	provider := NewOpenMeteoClient(openMeteoForecastURL, config.ForecastDays)
	days, err := provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		log.Fatalf("Error: Failed to fetch forecast: %v", err)
	}
	debugLog("Fetched %d forecast days for %s", len(days), place)

	resolver := NewFormatResolver(src)
	counter := NewFrameCounter(src, resolver)
	cache := NewFrameCache()
	prefetcher := NewPrefetcher(src, cache, resolver, counter, config.PreloadChunk)
	compositor := NewSceneCompositor(resolver, counter, cache, prefetcher, config.InitialPreload)

	app := NewApp(configResult, provider, compositor, days, lat, lon, place)

	ebiten.SetWindowTitle(fmt.Sprintf("Skies - %s", place))
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
