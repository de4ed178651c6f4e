package ppu

import "gones/internal/regs"

// ReadRegister services a CPU read of $2000-$2007. Write-only registers
// return the open-bus pattern (the low 5 bits of the last latched status).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		value := uint8(p.status)
		p.status = p.status.With(regs.StatusVBlank, false)
		p.w = false
		return value
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readData()
	default:
		return uint8(p.status) & 0x1F
	}
}

// WriteRegister services a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		wasGeneratingNMI := p.ctrl.GenerateNMI()
		p.ctrl = regs.PPUCtrl(value)
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		if !wasGeneratingNMI && p.ctrl.GenerateNMI() && p.status.VBlank() && p.nmiCallback != nil {
			p.nmiCallback()
		}
	case 0x2001:
		p.mask = regs.PPUMask(value)
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddr(value)
	case 0x2007:
		p.writeData(value)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) vramIncrement() uint16 { return p.ctrl.VRAMIncrement() }

func (p *PPU) readData() uint8 {
	var data uint8
	if p.memory == nil {
		data = 0
	} else if p.v >= 0x3F00 {
		data = p.memory.Read(p.v)
		p.readBuffer = p.memory.Read(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.memory.Read(p.v)
	}
	p.v = (p.v + p.vramIncrement()) & 0x3FFF
	return data
}

func (p *PPU) writeData(value uint8) {
	if p.memory != nil {
		p.memory.Write(p.v, value)
	}
	p.v = (p.v + p.vramIncrement()) & 0x3FFF
}
