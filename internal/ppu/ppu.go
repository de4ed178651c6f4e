// Package ppu implements the Picture Processing Unit (2C02): the
// 341-dot/262-scanline timing state machine, the CPU-visible register
// port, OAM, and a full-frame renderer driven from that timing state.
package ppu

import "gones/internal/regs"

const (
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	postRenderScanline = 240
	vblankStartLine    = 241
	preRenderScanline  = -1
)

// Memory is the PPU-visible address space: pattern tables, nametables
// (through the cartridge's mirroring), and palette RAM.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// PPU is the NES picture processing unit.
type PPU struct {
	ctrl    regs.PPUCtrl
	mask    regs.PPUMask
	status  regs.PPUStatus
	oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8

	memory Memory
	oam    [256]uint8

	scanline int
	cycle    int
	frame    uint64
	oddFrame bool

	frameBuffer [256 * 240]uint32

	nmiCallback     func()
	onFrameComplete func()
}

// New creates a PPU with no memory attached; call SetMemory before Step.
func New() *PPU {
	return &PPU{scanline: preRenderScanline, cycle: 0}
}

// SetMemory wires the PPU's address-space view (nametables/pattern tables
// through the cartridge, palette RAM).
func (p *PPU) SetMemory(memory Memory) { p.memory = memory }

// SetNMICallback registers the callback invoked when VBlank NMI fires.
func (p *PPU) SetNMICallback(callback func()) { p.nmiCallback = callback }

// SetFrameCompleteCallback registers the callback invoked once per
// completed frame, after the frame buffer has been rendered.
func (p *PPU) SetFrameCompleteCallback(callback func()) { p.onFrameComplete = callback }

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline, p.cycle = preRenderScanline, 0
	p.frame, p.oddFrame = 0, false
	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// Step advances the PPU by one dot (PPU cycle), handling VBlank
// set/clear, NMI generation, the odd-frame skipped dot, and kicking off
// the full-frame render once the visible scanlines have all passed.
func (p *PPU) Step() {
	p.cycle++

	// Captured before the odd-frame skip advances cycle past the pivot dot,
	// so the frame-complete signal still fires even when that dot is skipped.
	frameComplete := p.scanline == preRenderScanline && p.cycle == dotsPerScanline-1

	if p.oddFrame && frameComplete && p.mask.RenderingEnabled() {
		p.cycle++ // skip the last dot of the pre-render line on odd frames
	}
	if p.cycle >= dotsPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame-1 {
			p.scanline = preRenderScanline
		}
	}

	switch {
	case p.scanline == postRenderScanline && p.cycle == 0:
		p.renderFrame()
	case p.scanline == vblankStartLine && p.cycle == 1:
		p.status = p.status.With(regs.StatusVBlank, true)
		if p.ctrl.GenerateNMI() && p.nmiCallback != nil {
			p.nmiCallback()
		}
	case p.scanline == preRenderScanline && p.cycle == 1:
		p.status = p.status.With(regs.StatusVBlank, false)
		p.status = p.status.With(regs.StatusSprite0Hit, false)
		p.status = p.status.With(regs.StatusSpriteOverflow, false)
	}

	if frameComplete {
		p.frame++
		p.oddFrame = !p.oddFrame
		if p.onFrameComplete != nil {
			p.onFrameComplete()
		}
	}
}

// FrameBuffer returns the most recently rendered 256x240 RGB frame.
func (p *PPU) FrameBuffer() [256 * 240]uint32 { return p.frameBuffer }

func (p *PPU) FrameCount() uint64     { return p.frame }
func (p *PPU) Scanline() int          { return p.scanline }
func (p *PPU) Cycle() int             { return p.cycle }
func (p *PPU) InVBlank() bool         { return p.status.VBlank() }
func (p *PPU) RenderingEnabled() bool { return p.mask.RenderingEnabled() }

// WriteOAM writes to OAM directly, bypassing OAMADDR auto-increment; used
// by OAM DMA on the bus.
func (p *PPU) WriteOAM(address uint8, value uint8) { p.oam[address] = value }
