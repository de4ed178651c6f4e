package debug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gones/internal/bus"
	"gones/internal/cartridge"
)

func newTestBus(t *testing.T) *bus.Bus {
	t.Helper()
	b := bus.New()
	cart := cartridge.NewMockCartridge()
	prg := make([]uint8, 0x8000)
	for i := range prg {
		prg[i] = 0xEA
	}
	prg[0x7FFC], prg[0x7FFD] = 0x00, 0x80
	cart.LoadPRG(prg)
	b.LoadCartridge(cart)
	return b
}

func TestCaptureReflectsCPUAndPPUState(t *testing.T) {
	b := newTestBus(t)
	b.Step()

	snap := Capture(b)
	assert.Equal(t, b.CPU.PC, snap.CPU.PC)
	assert.Equal(t, b.CPU.Cycles(), snap.CPU.Cycles)
	assert.Equal(t, b.PPU.FrameCount(), snap.PPU.FrameCount)
	assert.Equal(t, b.GetCycleCount(), snap.TotalCycles)
}

func TestCaptureIncludesExecutionLogOnlyWhenEnabled(t *testing.T) {
	b := newTestBus(t)
	b.Step()
	assert.Empty(t, Capture(b).RecentEvents)

	b.EnableExecutionLogging()
	b.Step()
	snap := Capture(b)
	require.Len(t, snap.RecentEvents, 1)
	assert.Equal(t, uint8(0xEA), snap.RecentEvents[0].Opcode)
}

func TestDumpProducesNonEmptyMultilineText(t *testing.T) {
	b := newTestBus(t)
	b.Step()
	out := Dump(Capture(b))
	assert.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "CPU"))
}
