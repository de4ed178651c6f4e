//go:build !headless
// +build !headless

package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEbitengineInitializeStoresConfig(t *testing.T) {
	b := NewEbitengineBackend().(*EbitengineBackend)
	require.NoError(t, b.Initialize(Config{WindowTitle: "test"}))
	assert.True(t, b.initialized)
	assert.Equal(t, "test", b.config.WindowTitle)
}

func TestEbitengineDoubleInitializeFails(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	assert.Error(t, b.Initialize(Config{}))
}

func TestEbitengineCreateWindowFailsBeforeInitialize(t *testing.T) {
	b := NewEbitengineBackend()
	_, err := b.CreateWindow("test", 256, 240)
	assert.Error(t, err)
}

func TestEbitengineCreateWindowFailsInHeadlessConfig(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{Headless: true}))
	_, err := b.CreateWindow("test", 256, 240)
	assert.Error(t, err)
}

func TestEbitengineCreateWindowSucceeds(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 512, 480)
	require.NoError(t, err)
	width, height := w.GetSize()
	assert.Equal(t, 512, width)
	assert.Equal(t, 480, height)
}

func TestEbitengineRenderFrameConvertsPixelsIntoImageBuffer(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	ew := w.(*EbitengineWindow)

	var frame [256 * 240]uint32
	frame[0] = 0x112233
	require.NoError(t, ew.RenderFrame(frame))

	px := ew.game.imageBuffer.RGBAAt(0, 0)
	assert.Equal(t, uint8(0x11), px.R)
	assert.Equal(t, uint8(0x22), px.G)
	assert.Equal(t, uint8(0x33), px.B)
}

func TestEbitengineSetEmulatorUpdateFuncIsInvokedByUpdate(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	ew := w.(*EbitengineWindow)

	called := false
	ew.SetEmulatorUpdateFunc(func() error { called = true; return nil })
	require.NoError(t, ew.game.Update())
	assert.True(t, called)
}

func TestEbitengineKeyMappingsCoverWASDAndArrows(t *testing.T) {
	for key, button := range map[Key]Button{
		KeyUp: ButtonUp, KeyDown: ButtonDown, KeyLeft: ButtonLeft, KeyRight: ButtonRight,
		KeyW: ButtonUp, KeyS: ButtonDown, KeyA: ButtonLeft, KeyD: ButtonRight,
		KeyJ: ButtonA, KeyK: ButtonB, KeyEnter: ButtonStart, KeySpace: ButtonSelect,
	} {
		got, ok := buttonMappings[key]
		assert.True(t, ok, "missing mapping for %v", key)
		assert.Equal(t, button, got)
	}
}

func TestEbitengineCleanupStopsWindow(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	assert.False(t, w.ShouldClose())
	require.NoError(t, w.Cleanup())
	assert.True(t, w.ShouldClose())
}

func TestEbitengineLayoutTracksWindowDimensions(t *testing.T) {
	b := NewEbitengineBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	ew := w.(*EbitengineWindow)

	sw, sh := ew.game.Layout(640, 480)
	assert.Equal(t, 640, sw)
	assert.Equal(t, 480, sh)
	assert.Equal(t, 640, ew.game.windowWidth)
	assert.Equal(t, 480, ew.game.windowHeight)
}
