package graphics

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminalWindow(t *testing.T) *TerminalWindow {
	t.Helper()
	b := NewTerminalBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	return w.(*TerminalWindow)
}

func TestTerminalBackendRejectsHeadlessConfig(t *testing.T) {
	b := NewTerminalBackend()
	require.NoError(t, b.Initialize(Config{Headless: true}))
	_, err := b.CreateWindow("test", 256, 240)
	assert.Error(t, err)
}

func TestTerminalRenderFrameProducesNonEmptyView(t *testing.T) {
	w := newTerminalWindow(t)
	var buf [256 * 240]uint32
	buf[0] = 0xFF0000
	require.NoError(t, w.RenderFrame(buf))
	assert.NotEqual(t, "waiting for first frame...", w.currentView())
}

func TestTerminalCurrentViewPlaceholderBeforeFirstFrame(t *testing.T) {
	w := newTerminalWindow(t)
	assert.Equal(t, "waiting for first frame...", w.currentView())
}

func TestTerminalKeyMsgPushesMappedButtonEvent(t *testing.T) {
	w := newTerminalWindow(t)
	m := &terminalModel{window: w}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	events := w.PollEvents()
	require.Len(t, events, 1)
	assert.Equal(t, InputEventTypeButton, events[0].Type)
	assert.Equal(t, ButtonA, events[0].Button)
}

func TestTerminalEscQuitsAndPushesQuitEvent(t *testing.T) {
	w := newTerminalWindow(t)
	m := &terminalModel{window: w}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	events := w.PollEvents()
	require.Len(t, events, 1)
	assert.Equal(t, InputEventTypeQuit, events[0].Type)
}

func TestTerminalCleanupMarksClosed(t *testing.T) {
	w := newTerminalWindow(t)
	assert.False(t, w.ShouldClose())
	require.NoError(t, w.Cleanup())
	assert.True(t, w.ShouldClose())
}

func TestHexColorFormatsSixDigitUppercase(t *testing.T) {
	assert.Equal(t, "#FF0000", hexColor(0xFF0000))
	assert.Equal(t, "#00FF00", hexColor(0x00FF00))
}
