package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gones/internal/bus"
	"gones/internal/cartridge"
)

func newTestEmulatorBus(t *testing.T) *bus.Bus {
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

func TestNewEmulatorStartsStopped(t *testing.T) {
	e := NewEmulator(newTestEmulatorBus(t), NewConfig())
	assert.False(t, e.IsRunning())
	assert.Equal(t, uint64(29781), e.cyclesPerFrame)
}

func TestUpdateIsNoOpUntilStarted(t *testing.T) {
	b := newTestEmulatorBus(t)
	e := NewEmulator(b, NewConfig())
	require.NoError(t, e.Update())
	assert.Equal(t, uint64(0), e.GetFrameCount())
}

func TestUpdateAdvancesExactlyOneFrameWorthOfCycles(t *testing.T) {
	b := newTestEmulatorBus(t)
	e := NewEmulator(b, NewConfig())
	e.Start()

	require.NoError(t, e.Update())
	assert.Equal(t, uint64(1), e.GetFrameCount())
	assert.GreaterOrEqual(t, e.GetCycleCount(), uint64(29781))
}

func TestStepFrameRunsRegardlessOfRunState(t *testing.T) {
	b := newTestEmulatorBus(t)
	e := NewEmulator(b, NewConfig())
	require.NoError(t, e.StepFrame())
	assert.Equal(t, uint64(1), e.GetFrameCount())
}

func TestStopHaltsFurtherUpdates(t *testing.T) {
	b := newTestEmulatorBus(t)
	e := NewEmulator(b, NewConfig())
	e.Start()
	require.NoError(t, e.Update())
	e.Stop()
	require.NoError(t, e.Update())
	assert.Equal(t, uint64(1), e.GetFrameCount())
}
