package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gones/internal/graphics"
	"gones/internal/input"
)

// writeTestROM writes a minimal one-bank NROM iNES image whose reset vector
// points at $8000, filled with NOPs.
func writeTestROM(t *testing.T) string {
	t.Helper()

	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16*1024)
	for i := range prg {
		prg[i] = 0xEA
	}
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	chr := make([]byte, 8*1024)

	data := append(append(header, prg...), chr...)
	path := filepath.Join(t.TempDir(), "test.nes")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func newHeadlessTestApp(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplicationWithMode("", true)
	require.NoError(t, err)
	return app
}

func TestNewApplicationWithModeHeadlessInitializes(t *testing.T) {
	app := newHeadlessTestApp(t)
	assert.True(t, app.initialized)
	assert.True(t, app.headless)
	assert.Nil(t, app.window)
}

func TestLoadROMWiresCartridgeIntoBus(t *testing.T) {
	app := newHeadlessTestApp(t)
	romPath := writeTestROM(t)

	require.NoError(t, app.LoadROM(romPath))
	assert.Equal(t, romPath, app.GetROMPath())
	assert.Equal(t, uint16(0x8000), app.GetBus().CPU.PC)
}

func TestLoadROMFailsOnMissingFile(t *testing.T) {
	app := newHeadlessTestApp(t)
	err := app.LoadROM("/no/such/file.nes")
	assert.Error(t, err)
}

func TestUpdateEmulatorSkippedWhenPaused(t *testing.T) {
	app := newHeadlessTestApp(t)
	require.NoError(t, app.LoadROM(writeTestROM(t)))

	app.Pause()
	require.NoError(t, app.updateEmulator())
	assert.Equal(t, uint64(0), app.emulator.GetFrameCount())

	app.Resume()
	require.NoError(t, app.updateEmulator())
	assert.Equal(t, uint64(1), app.emulator.GetFrameCount())
}

func TestGraphicsButtonToInputButtonMapsAllEightButtons(t *testing.T) {
	assert.Equal(t, input.ButtonA, graphicsButtonToInputButton(graphics.ButtonA))
	assert.Equal(t, input.ButtonB, graphicsButtonToInputButton(graphics.ButtonB))
	assert.Equal(t, input.ButtonSelect, graphicsButtonToInputButton(graphics.ButtonSelect))
	assert.Equal(t, input.ButtonStart, graphicsButtonToInputButton(graphics.ButtonStart))
	assert.Equal(t, input.ButtonUp, graphicsButtonToInputButton(graphics.ButtonUp))
	assert.Equal(t, input.ButtonDown, graphicsButtonToInputButton(graphics.ButtonDown))
	assert.Equal(t, input.ButtonLeft, graphicsButtonToInputButton(graphics.ButtonLeft))
	assert.Equal(t, input.ButtonRight, graphicsButtonToInputButton(graphics.ButtonRight))
}

func TestIs2PButtonDistinguishesControllerPorts(t *testing.T) {
	assert.True(t, is2PButton(graphics.Button2A))
	assert.False(t, is2PButton(graphics.ButtonA))
}

func TestGet2PButtonIndexCoversAllButtons(t *testing.T) {
	assert.Equal(t, 0, get2PButtonIndex(graphics.Button2A))
	assert.Equal(t, 1, get2PButtonIndex(graphics.Button2B))
	assert.Equal(t, 2, get2PButtonIndex(graphics.Button2Select))
	assert.Equal(t, 3, get2PButtonIndex(graphics.Button2Start))
	assert.Equal(t, 4, get2PButtonIndex(graphics.Button2Up))
	assert.Equal(t, 5, get2PButtonIndex(graphics.Button2Down))
	assert.Equal(t, 6, get2PButtonIndex(graphics.Button2Left))
	assert.Equal(t, 7, get2PButtonIndex(graphics.Button2Right))
	assert.Equal(t, -1, get2PButtonIndex(graphics.ButtonA))
}

func TestSetControllerButtonsRoutesThroughBus(t *testing.T) {
	app := newHeadlessTestApp(t)
	require.NoError(t, app.LoadROM(writeTestROM(t)))

	app.SetControllerButtons(0, [8]bool{true, false, false, false, false, false, false, false})
	assert.True(t, app.GetBus().Input.Controller1.IsPressed(input.ButtonA))
}

func TestApplyDebugSettingsTogglesExecutionLogging(t *testing.T) {
	app := newHeadlessTestApp(t)
	require.NoError(t, app.LoadROM(writeTestROM(t)))

	app.config.Debug.EnableLogging = true
	app.ApplyDebugSettings()
	app.GetBus().Step()
	assert.Len(t, app.GetBus().GetExecutionLog(), 1)
}

func TestTogglePauseFlipsPausedState(t *testing.T) {
	app := newHeadlessTestApp(t)
	assert.False(t, app.IsPaused())
	app.TogglePause()
	assert.True(t, app.IsPaused())
}

func TestCleanupMarksApplicationUninitialized(t *testing.T) {
	app := newHeadlessTestApp(t)
	require.NoError(t, app.Cleanup())
	assert.False(t, app.initialized)
}
