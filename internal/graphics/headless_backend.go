package graphics

import (
	"fmt"
	"os"
	"path/filepath"
)

// HeadlessBackend implements the Backend interface for headless operation:
// CI smoke tests and scripted playback, with no window and no input.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements the Window interface for headless operation.
// It never shows anything on screen, but RenderFrame can optionally dump
// frames to disk as PPM images at a caller-configured interval.
type HeadlessWindow struct {
	title       string
	width       int
	height      int
	running     bool
	frameCount  int
	outputPath  string
	dumpEveryN  int
}

// NewHeadlessBackend creates a new headless graphics backend.
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a headless "window" (no actual window). Frame
// dumping is disabled until SetDumpInterval is called.
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	return &HeadlessWindow{
		title:      title,
		width:      width,
		height:     height,
		running:    true,
		outputPath: ".",
	}, nil
}

func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) GetName() string  { return "Headless" }

func (w *HeadlessWindow) SetTitle(title string) { w.title = title }

func (w *HeadlessWindow) GetSize() (width, height int) { return w.width, w.height }
func (w *HeadlessWindow) ShouldClose() bool            { return !w.running }
func (w *HeadlessWindow) SwapBuffers()                 {} // no-op, nothing to present

// PollEvents always returns no events: headless mode has no input source.
func (w *HeadlessWindow) PollEvents() []InputEvent { return nil }

// RenderFrame counts the frame and, if a dump interval was configured via
// SetDumpInterval, periodically saves it to outputPath as a PPM image.
func (w *HeadlessWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	w.frameCount++

	if w.dumpEveryN > 0 && w.frameCount%w.dumpEveryN == 0 {
		name := filepath.Join(w.outputPath, fmt.Sprintf("frame_%06d.ppm", w.frameCount))
		return w.saveFrameAsPPM(frameBuffer, name)
	}

	return nil
}

// saveFrameAsPPM saves the frame buffer as a P3 (ASCII) PPM image file.
func (w *HeadlessWindow) saveFrameAsPPM(frameBuffer [256 * 240]uint32, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("headless backend: create %s: %w", filename, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")

	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(file, "%d %d %d ", r, g, b)
		}
		fmt.Fprintf(file, "\n")
	}

	return nil
}

func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// SetOutputPath sets the directory frame dumps are written to.
func (w *HeadlessWindow) SetOutputPath(path string) { w.outputPath = path }

// SetDumpInterval enables periodic frame dumps: every n-th RenderFrame call
// is saved to disk. n <= 0 disables dumping, which is the default.
func (w *HeadlessWindow) SetDumpInterval(n int) { w.dumpEveryN = n }

// GetFrameCount returns the number of frames rendered so far.
func (w *HeadlessWindow) GetFrameCount() int { return w.frameCount }
