// Package main implements the gones NES emulator executable.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gones/internal/app"
	"gones/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file (optional for GUI mode)")
		configFile = flag.String("config", "", "Path to configuration file")
		debug      = flag.Bool("debug", false, "Enable debug mode")
		headless   = flag.Bool("headless", false, "Run without a window, for testing or automation")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		return
	}

	setupGracefulShutdown()

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplicationWithMode(configPath, *headless)
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

	if *romFile != "" {
		if err := application.LoadROM(*romFile); err != nil {
			log.Fatalf("failed to load ROM: %v", err)
		}
	} else if *headless {
		log.Fatal("ROM file required in headless mode")
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application run failed: %v", err)
	}

	log.Printf("session complete: %d frames in %v (avg %.1f FPS)",
		application.GetFrameCount(), application.GetUptime(), application.GetFPS())
}

// setupGracefulShutdown exits cleanly on SIGINT/SIGTERM.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("interrupt received, shutting down")
		os.Exit(0)
	}()
}
