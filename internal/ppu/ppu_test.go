package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatVRAM struct {
	data [0x4000]uint8
}

func (m *flatVRAM) Read(address uint16) uint8      { return m.data[address&0x3FFF] }
func (m *flatVRAM) Write(address uint16, value uint8) { m.data[address&0x3FFF] = value }

func TestResetClearsVBlankAndOAM(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.oam[5] = 0xAB
	p.Reset()
	assert.False(t, p.InVBlank())
	assert.Equal(t, uint8(0), p.oam[5])
}

func TestVBlankSetsAtScanline241Cycle1AndClearsAtPreRender(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.Reset()

	stepTo := (241-(-1))*341 + 1
	for i := 0; i < stepTo; i++ {
		p.Step()
	}
	assert.True(t, p.InVBlank())

	for !(p.Scanline() == -1 && p.Cycle() == 1) {
		p.Step()
	}
	assert.False(t, p.InVBlank())
}

func TestNMIFiresOnlyWhenGenerateNMIBitSet(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.Reset()
	fired := false
	p.SetNMICallback(func() { fired = true })

	for !(p.Scanline() == 241 && p.Cycle() == 1) {
		p.Step()
	}
	assert.False(t, fired)

	p.Reset()
	p.WriteRegister(0x2000, 0x80)
	for !(p.Scanline() == 241 && p.Cycle() == 1) {
		p.Step()
	}
	assert.True(t, fired)
}

func TestPPUADDRTwoWriteLatchSetsVRAMAddress(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	assert.Equal(t, uint16(0x2108), p.v)
}

func TestPPUDATAReadIsBufferedExceptForPalette(t *testing.T) {
	mem := &flatVRAM{}
	mem.data[0x2108] = 0x42
	mem.data[0x3F00] = 0x30

	p := New()
	p.SetMemory(mem)
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)

	first := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0), first) // stale read buffer
	second := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x42), second)

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	direct := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x30), direct) // palette reads are not buffered
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.status = p.status.With(1<<7, true)
	p.w = true
	_ = p.ReadRegister(0x2002)
	assert.False(t, p.InVBlank())
	assert.False(t, p.w)
}

func TestOAMDMAWriteIsVisibleThroughOAMDATA(t *testing.T) {
	p := New()
	p.SetMemory(&flatVRAM{})
	p.WriteOAM(0x10, 0x99)
	p.WriteRegister(0x2003, 0x10)
	assert.Equal(t, uint8(0x99), p.ReadRegister(0x2004))
}
