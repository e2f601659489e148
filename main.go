// Package main provides the entry point for the Plan Annotator application.
package main

import (
	"log"
	"os"

	"plan-annotator/internal/app"
	"plan-annotator/internal/config"
	"plan-annotator/internal/ocr"
	"plan-annotator/internal/version"
	"plan-annotator/ui/mainwindow"
	"plan-annotator/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.plan-annotator"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", version.Name, version.Version)

	cfgPath := config.GetConfigPath()
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Printf("Config %s: %v (using defaults)", cfgPath, err)
		cfg = config.Default()
	}

	// A typed nil *ocr.Engine must not reach NewSession.
	var reader app.RegionReader
	if cfg.OCR.Enabled {
		engine, err := ocr.NewEngine(cfg.OCR.Language)
		if err != nil {
			log.Printf("OCR disabled: %v", err)
		} else {
			defer engine.Close()
			reader = engine
		}
	}

	session := app.NewSession(cfg, reader)
	log.Printf("Session %s", session.ID)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.AnnotatorTheme{})

	appPrefs := prefs.Load()
	win := mainwindow.New(fyneApp, session, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := win.LoadImage(imagePath); err != nil {
			log.Printf("Failed to load image %s: %v", imagePath, err)
		}
	}

	win.ShowAndRun()
}
