package graphics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TerminalBackend implements the Backend interface for a truecolor-terminal
// rendering target driven by bubbletea.
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow implements the Window interface for terminal rendering.
// Unlike EbitengineWindow it has no native event loop of its own to poll;
// RenderFrame/PollEvents are fed by a bubbletea program started via Run.
type TerminalWindow struct {
	title  string
	width  int
	height int

	mu      sync.Mutex
	running bool
	view    string
	events  []InputEvent

	emulatorUpdateFunc func() error
}

func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create a terminal window in headless mode")
	}

	return &TerminalWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
	}, nil
}

func (b *TerminalBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *TerminalBackend) IsHeadless() bool { return false }
func (b *TerminalBackend) GetName() string  { return "Terminal" }

func (w *TerminalWindow) SetTitle(title string) { w.title = title }

func (w *TerminalWindow) GetSize() (width, height int) { return w.width, w.height }

func (w *TerminalWindow) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.running
}

func (w *TerminalWindow) SwapBuffers() {} // bubbletea's renderer presents View() itself

func (w *TerminalWindow) PollEvents() []InputEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := w.events
	w.events = nil
	return events
}

// RenderFrame downsamples the NES frame buffer into a grid of half-block
// characters, each carrying two vertically-stacked source pixels as
// truecolor foreground/background, and stores it for the next tea View.
func (w *TerminalWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	const colStep = 4 // 256/4 = 64 terminal columns
	const rowStep = 4 // sample every 4th NES row, pair two samples per glyph row

	var b strings.Builder
	for y := 0; y+rowStep < 240; y += rowStep * 2 {
		for x := 0; x < 256; x += colStep {
			top := frameBuffer[y*256+x]
			bottom := frameBuffer[(y+rowStep)*256+x]
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render("▀")) // ▀
		}
		b.WriteByte('\n')
	}

	w.mu.Lock()
	w.view = b.String()
	w.mu.Unlock()
	return nil
}

func hexColor(pixel uint32) string {
	return fmt.Sprintf("#%06X", pixel&0xFFFFFF)
}

func (w *TerminalWindow) Cleanup() error {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return nil
}

func (w *TerminalWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

func (w *TerminalWindow) currentView() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view == "" {
		return "waiting for first frame..."
	}
	return w.view
}

func (w *TerminalWindow) pushEvent(e InputEvent) {
	w.mu.Lock()
	w.events = append(w.events, e)
	w.mu.Unlock()
}

// Run starts the bubbletea program driving this window, ticking the
// emulator forward once per frame interval and rendering whatever
// RenderFrame most recently produced.
func (w *TerminalWindow) Run() error {
	_, err := tea.NewProgram(&terminalModel{window: w}, tea.WithAltScreen()).Run()
	w.Cleanup()
	return err
}

type frameTickMsg time.Time

func frameTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

// terminalModel is the bubbletea model backing Run: it owns no rendering
// state of its own, just forwards ticks into the emulator and key
// presses into the window's event queue.
type terminalModel struct {
	window *TerminalWindow
}

func (m *terminalModel) Init() tea.Cmd { return frameTickCmd() }

var terminalKeyMappings = map[string]Key{
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
	"w": KeyW, "a": KeyA, "s": KeyS, "d": KeyD,
	"j": KeyJ, "k": KeyK,
	"enter": KeyEnter, " ": KeySpace,
}

var terminalButtonMappings = map[Key]Button{
	KeyUp: ButtonUp, KeyDown: ButtonDown, KeyLeft: ButtonLeft, KeyRight: ButtonRight,
	KeyW: ButtonUp, KeyS: ButtonDown, KeyA: ButtonLeft, KeyD: ButtonRight,
	KeyJ: ButtonA, KeyK: ButtonB,
	KeyEnter: ButtonStart, KeySpace: ButtonSelect,
}

func (m *terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		if m.window.emulatorUpdateFunc != nil {
			if err := m.window.emulatorUpdateFunc(); err != nil {
				return m, tea.Quit
			}
		}
		return m, frameTickCmd()

	case tea.KeyMsg:
		s := msg.String()
		if s == "ctrl+c" || s == "esc" {
			m.window.pushEvent(InputEvent{Type: InputEventTypeQuit, Pressed: true})
			return m, tea.Quit
		}
		if key, ok := terminalKeyMappings[s]; ok {
			if button, ok := terminalButtonMappings[key]; ok {
				m.window.pushEvent(InputEvent{Type: InputEventTypeButton, Button: button, Pressed: true})
			} else {
				m.window.pushEvent(InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
			}
		}
	}
	return m, nil
}

func (m *terminalModel) View() string { return m.window.currentView() }
