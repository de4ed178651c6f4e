// Package main implements a terminal-only gones frontend, rendering frames
// as downsampled ANSI art through the bubbletea/lipgloss graphics backend.
package main

import (
	"flag"
	"log"

	"gones/internal/app"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		debug      = flag.Bool("debug", false, "Enable debug mode")
	)
	flag.Parse()

	if *romFile == "" {
		log.Fatal("a ROM file is required: -rom <file>")
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	config := app.NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		log.Printf("could not load config from %s, using defaults: %v", configPath, err)
	}
	config.Video.Backend = "terminal"

	application, err := app.NewApplicationWithConfig(config, false)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("application cleanup error: %v", err)
		}
	}()

	if *debug {
		cfg := application.GetConfig()
		cfg.UpdateDebug(true, true, true)
		application.ApplyDebugSettings()
	}

	if err := application.LoadROM(*romFile); err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application run failed: %v", err)
	}
}
