// Package app implements the main NES emulator application with GUI support.
package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/graphics"
	"gones/internal/input"
)

// Application represents the main NES emulator application
type Application struct {
	bus *bus.Bus

	graphicsBackend graphics.Backend
	window          graphics.Window
	videoProcessor  *graphics.VideoProcessor

	config   *Config
	emulator *Emulator

	running     bool
	paused      bool
	initialized bool
	headless    bool

	frameCount  uint64
	startTime   time.Time
	lastFPSTime time.Time
	currentFPS  float64

	frameCountAtLastFPS uint64
	averageFPS          float64
	lastFPSLog          time.Time

	inputTime         time.Duration
	emulatorTime      time.Duration
	renderTime        time.Duration
	totalInputTime    time.Duration
	totalEmulatorTime time.Duration
	totalRenderTime   time.Duration

	romPath   string
	cartridge *cartridge.Cartridge

	lastESCTime time.Time

	lastController1State  [8]bool
	lastController2State  [8]bool
	inputStateInitialized bool
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// NewApplication creates a new NES emulator application
func NewApplication(configPath string) (*Application, error) {
	return NewApplicationWithMode(configPath, false)
}

// NewApplicationWithMode creates a new NES emulator application with optional headless mode
func NewApplicationWithMode(configPath string, headless bool) (*Application, error) {
	config := NewConfig()
	if configPath != "" {
		if err := config.LoadFromFile(configPath); err != nil {
			log.Printf("could not load config from %s, using defaults: %v", configPath, err)
		}
	}
	return NewApplicationWithConfig(config, headless)
}

// NewApplicationWithConfig creates a new application from an already-built
// Config, letting a caller override fields (such as Video.Backend) before
// the graphics backend is initialized.
func NewApplicationWithConfig(config *Config, headless bool) (*Application, error) {
	app := &Application{
		config:      config,
		initialized: false,
		headless:    headless,
		startTime:   time.Now(),
		lastFPSTime: time.Now(),
	}

	if err := app.initializeComponents(headless); err != nil {
		return nil, &ApplicationError{
			Component: "initialization",
			Operation: "component setup",
			Err:       err,
		}
	}

	return app, nil
}

// initializeComponents initializes all application components
func (app *Application) initializeComponents(headless bool) error {
	app.bus = bus.New()

	if err := app.initializeGraphicsBackend(headless); err != nil {
		return fmt.Errorf("initialize graphics backend: %w", err)
	}

	app.emulator = NewEmulator(app.bus, app.config)

	app.initialized = true
	return nil
}

// initializeGraphicsBackend initializes the graphics backend based on configuration
func (app *Application) initializeGraphicsBackend(headless bool) error {
	var backendType graphics.BackendType
	if headless {
		backendType = graphics.BackendHeadless
	} else {
		switch app.config.Video.Backend {
		case "ebitengine":
			backendType = graphics.BackendEbitengine
		case "headless":
			backendType = graphics.BackendHeadless
		case "terminal":
			backendType = graphics.BackendTerminal
		default:
			backendType = graphics.BackendEbitengine
		}
	}

	var err error
	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("create graphics backend: %w", err)
	}

	graphicsConfig := graphics.Config{
		WindowTitle:  "gones - Go NES Emulator",
		WindowWidth:  app.config.Window.Width,
		WindowHeight: app.config.Window.Height,
		Fullscreen:   app.config.Window.Fullscreen,
		VSync:        app.config.Video.VSync,
		Filter:       app.config.Video.Filter,
		AspectRatio:  app.config.Video.AspectRatio,
		Headless:     headless,
		Debug:        app.config.Debug.EnableLogging,
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType == graphics.BackendEbitengine {
			log.Printf("ebitengine backend failed (%v), falling back to headless mode", err)
			app.graphicsBackend, err = graphics.CreateBackend(graphics.BackendHeadless)
			if err != nil {
				return fmt.Errorf("create fallback headless backend: %w", err)
			}
			graphicsConfig.Headless = true
			if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
				return fmt.Errorf("initialize fallback headless backend: %w", err)
			}
		} else {
			return fmt.Errorf("initialize graphics backend: %w", err)
		}
	}

	if !headless && !app.graphicsBackend.IsHeadless() {
		app.window, err = app.graphicsBackend.CreateWindow(
			graphicsConfig.WindowTitle,
			graphicsConfig.WindowWidth,
			graphicsConfig.WindowHeight,
		)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
	}

	app.videoProcessor = graphics.NewVideoProcessor(
		app.config.Video.Brightness,
		app.config.Video.Contrast,
		app.config.Video.Saturation,
	)

	return nil
}

// LoadROM loads a ROM file into the emulator
func (app *Application) LoadROM(romPath string) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return &ApplicationError{
			Component: "cartridge",
			Operation: "load ROM",
			Err:       err,
		}
	}

	app.cartridge = cart
	app.romPath = romPath

	app.bus.LoadCartridge(cart)
	app.bus.Reset()

	if app.window != nil {
		romName := filepath.Base(romPath)
		app.window.SetTitle(fmt.Sprintf("gones - %s", romName))
	}

	app.emulator.Start()

	return nil
}

// Run starts the main application loop
func (app *Application) Run() error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	app.startTime = time.Now()
	app.lastFPSTime = time.Now()

	if app.config.Debug.EnableLogging {
		log.Printf("starting emulator with %s backend", app.graphicsBackend.GetName())
	}

	frameFunc := func() error {
		frameStartTime := time.Now()

		if err := app.processInput(); err != nil && app.config.Debug.EnableLogging {
			log.Printf("input processing error: %v", err)
		}

		if err := app.updateEmulator(); err != nil {
			return err
		}

		if err := app.render(); err != nil {
			return err
		}

		app.updatePerformanceMetrics(frameStartTime)

		if app.window != nil && app.window.ShouldClose() {
			app.Stop()
		}

		return nil
	}

	if app.window != nil {
		switch app.graphicsBackend.GetName() {
		case "Ebitengine":
			if w, ok := graphics.AsEbitengineWindow(app.window); ok {
				w.SetEmulatorUpdateFunc(frameFunc)
				return w.Run()
			}
		case "Terminal":
			if w, ok := graphics.AsTerminalWindow(app.window); ok {
				w.SetEmulatorUpdateFunc(frameFunc)
				return w.Run()
			}
		}
	}

	// Standard polling loop for headless/unrecognized backends.
	for app.running {
		if err := frameFunc(); err != nil && app.config.Debug.EnableLogging {
			log.Printf("frame error: %v", err)
		}
		time.Sleep(16 * time.Millisecond) // ~60 FPS
	}

	if app.config.Debug.EnableLogging {
		log.Println("emulator main loop ended")
	}
	return nil
}

// updateEmulator updates the emulator state
func (app *Application) updateEmulator() error {
	if !app.paused && app.cartridge != nil {
		if err := app.emulator.Update(); err != nil {
			return err
		}
	}
	return nil
}

// processInput processes input events from the graphics backend
func (app *Application) processInput() error {
	if app.window == nil {
		return nil
	}

	events := app.window.PollEvents()
	if len(events) == 0 {
		return nil
	}

	var controller1Changed, controller2Changed bool
	controller1Buttons := app.lastController1State
	controller2Buttons := app.lastController2State

	if !app.inputStateInitialized && app.bus != nil && app.cartridge != nil {
		controller1Buttons = controllerButtonArray(app.bus.Input.Controller1)
		controller2Buttons = controllerButtonArray(app.bus.Input.Controller2)
		app.lastController1State = controller1Buttons
		app.lastController2State = controller2Buttons
		app.inputStateInitialized = true
	}

	for _, event := range events {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			app.Stop()
			return nil

		case graphics.InputEventTypeButton:
			if app.handleSpecialInput(event) {
				continue
			}
			if app.cartridge == nil {
				continue
			}

			if is2PButton(event.Button) {
				if idx := get2PButtonIndex(event.Button); idx >= 0 {
					controller2Buttons[idx] = event.Pressed
					controller2Changed = true
				}
				continue
			}

			idx, ok := buttonIndex(graphicsButtonToInputButton(event.Button))
			if !ok {
				continue
			}
			controller1Buttons[idx] = event.Pressed
			controller1Changed = true

		case graphics.InputEventTypeKey:
			app.handleKeyInput(event)
		}
	}

	if controller1Changed && app.bus != nil && app.cartridge != nil && controller1Buttons != app.lastController1State {
		app.bus.SetControllerButtons(0, controller1Buttons)
		app.lastController1State = controller1Buttons
	}

	if controller2Changed && app.bus != nil && app.cartridge != nil && controller2Buttons != app.lastController2State {
		app.bus.SetControllerButtons(1, controller2Buttons)
		app.lastController2State = controller2Buttons
	}

	return nil
}

// controllerButtonArray reads a controller's live state into NES button order.
func controllerButtonArray(c *input.Controller) [8]bool {
	bits := [8]input.Button{
		input.ButtonA, input.ButtonB, input.ButtonSelect, input.ButtonStart,
		input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
	}
	var out [8]bool
	for i, b := range bits {
		out[i] = c.IsPressed(b)
	}
	return out
}

// buttonIndex maps a 1P input.Button to its NES button-order array index.
func buttonIndex(button input.Button) (int, bool) {
	switch button {
	case input.ButtonA:
		return 0, true
	case input.ButtonB:
		return 1, true
	case input.ButtonSelect:
		return 2, true
	case input.ButtonStart:
		return 3, true
	case input.ButtonUp:
		return 4, true
	case input.ButtonDown:
		return 5, true
	case input.ButtonLeft:
		return 6, true
	case input.ButtonRight:
		return 7, true
	default:
		return 0, false
	}
}

// handleSpecialInput handles non-gameplay input combinations (quit confirmation).
func (app *Application) handleSpecialInput(event graphics.InputEvent) bool {
	if !event.Pressed {
		return false
	}

	if event.Type == graphics.InputEventTypeKey && event.Key == graphics.KeyEscape {
		now := time.Now()
		if !app.lastESCTime.IsZero() && now.Sub(app.lastESCTime) < 3*time.Second {
			log.Println("ESC double-tap confirmed, shutting down")
			app.Stop()
			return true
		}
		log.Println("ESC pressed, press ESC again within 3 seconds to quit")
		app.lastESCTime = now
		return true
	}

	if event.Type == graphics.InputEventTypeKey && event.Key != graphics.KeyEscape {
		app.lastESCTime = time.Time{}
	}

	return false
}

// handleKeyInput handles key events with no special meaning to the application.
func (app *Application) handleKeyInput(event graphics.InputEvent) bool {
	return false
}

// graphicsButtonToInputButton converts graphics.Button to input.Button
func graphicsButtonToInputButton(gButton graphics.Button) input.Button {
	switch gButton {
	case graphics.ButtonA:
		return input.ButtonA
	case graphics.ButtonB:
		return input.ButtonB
	case graphics.ButtonSelect:
		return input.ButtonSelect
	case graphics.ButtonStart:
		return input.ButtonStart
	case graphics.ButtonUp:
		return input.ButtonUp
	case graphics.ButtonDown:
		return input.ButtonDown
	case graphics.ButtonLeft:
		return input.ButtonLeft
	case graphics.ButtonRight:
		return input.ButtonRight
	default:
		return input.ButtonA
	}
}

// is2PButton checks if the button belongs to the 2P controller
func is2PButton(gButton graphics.Button) bool {
	switch gButton {
	case graphics.Button2A, graphics.Button2B, graphics.Button2Select, graphics.Button2Start,
		graphics.Button2Up, graphics.Button2Down, graphics.Button2Left, graphics.Button2Right:
		return true
	default:
		return false
	}
}

// get2PButtonIndex returns the array index for 2P controller buttons
func get2PButtonIndex(gButton graphics.Button) int {
	switch gButton {
	case graphics.Button2A:
		return 0
	case graphics.Button2B:
		return 1
	case graphics.Button2Select:
		return 2
	case graphics.Button2Start:
		return 3
	case graphics.Button2Up:
		return 4
	case graphics.Button2Down:
		return 5
	case graphics.Button2Left:
		return 6
	case graphics.Button2Right:
		return 7
	default:
		return -1
	}
}

// SetControllerButtons sets all button states at once for one controller port.
func (app *Application) SetControllerButtons(controller int, buttons [8]bool) {
	if app.bus != nil {
		app.bus.SetControllerButtons(controller, buttons)
	}
}

// GetBus returns the bus for direct access (useful for testing and advanced control)
func (app *Application) GetBus() *bus.Bus {
	return app.bus
}

// render renders the current frame
func (app *Application) render() error {
	if app.window == nil {
		return nil
	}

	if app.cartridge != nil {
		frameBuffer := app.bus.GetFrameBuffer()
		if app.videoProcessor != nil {
			processed := app.videoProcessor.ProcessFrame(frameBuffer[:])
			copy(frameBuffer[:], processed)
		}
		if err := app.window.RenderFrame(frameBuffer); err != nil {
			return fmt.Errorf("render NES frame: %w", err)
		}
	}

	app.window.SwapBuffers()
	return nil
}

// updatePerformanceMetrics tracks FPS and per-frame component timing.
func (app *Application) updatePerformanceMetrics(frameStartTime time.Time) {
	now := time.Now()
	app.frameCount++

	if app.lastFPSTime.IsZero() {
		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount
		app.lastFPSLog = now
		return
	}

	if now.Sub(app.lastFPSTime) >= time.Second {
		elapsed := now.Sub(app.lastFPSTime).Seconds()
		framesInPeriod := app.frameCount - app.frameCountAtLastFPS
		app.currentFPS = float64(framesInPeriod) / elapsed

		if totalElapsed := now.Sub(app.startTime).Seconds(); totalElapsed > 0 {
			app.averageFPS = float64(app.frameCount) / totalElapsed
		}

		app.lastFPSTime = now
		app.frameCountAtLastFPS = app.frameCount

		if app.config.Debug.EnableLogging && now.Sub(app.lastFPSLog) >= 5*time.Second {
			log.Printf("[FPS] current=%.1f average=%.1f frame=%d", app.currentFPS, app.averageFPS, app.frameCount)
			app.lastFPSLog = now
		}
	}
}

// Stop stops the application
func (app *Application) Stop() {
	app.running = false
}

// Pause pauses the emulator
func (app *Application) Pause() {
	app.paused = true
}

// Resume resumes the emulator
func (app *Application) Resume() {
	app.paused = false
}

// TogglePause toggles pause state
func (app *Application) TogglePause() {
	app.paused = !app.paused
}

// Reset resets the emulator
func (app *Application) Reset() {
	if app.bus != nil {
		app.bus.Reset()
	}
}

// IsRunning returns whether the application is running
func (app *Application) IsRunning() bool {
	return app.running
}

// IsPaused returns whether the emulator is paused
func (app *Application) IsPaused() bool {
	return app.paused
}

// GetFPS returns the current FPS
func (app *Application) GetFPS() float64 {
	return app.currentFPS
}

// GetFrameCount returns the total frame count
func (app *Application) GetFrameCount() uint64 {
	return app.frameCount
}

// GetUptime returns the application uptime
func (app *Application) GetUptime() time.Duration {
	return time.Since(app.startTime)
}

// GetROMPath returns the currently loaded ROM path
func (app *Application) GetROMPath() string {
	return app.romPath
}

// GetConfig returns the application configuration
func (app *Application) GetConfig() *Config {
	return app.config
}

// ApplyDebugSettings applies debug settings to all components
func (app *Application) ApplyDebugSettings() {
	if app.config == nil || app.bus == nil {
		return
	}

	if app.config.Debug.EnableLogging {
		app.bus.EnableExecutionLogging()
		log.Println("execution logging enabled")
	} else {
		app.bus.DisableExecutionLogging()
	}
}

// Cleanup releases all resources and shuts down the application
func (app *Application) Cleanup() error {
	if app.config != nil && app.config.Debug.EnableLogging {
		log.Println("cleaning up application resources")
	}

	var lastErr error

	if app.emulator != nil {
		if err := app.emulator.Cleanup(); err != nil {
			lastErr = err
			log.Printf("emulator cleanup error: %v", err)
		}
	}

	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
			log.Printf("window cleanup error: %v", err)
		}
	}

	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
			log.Printf("graphics backend cleanup error: %v", err)
		}
	}

	app.initialized = false
	return lastErr
}
