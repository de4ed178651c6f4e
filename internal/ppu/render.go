package ppu

import "gones/internal/regs"

// pixel is one rendered sample from either the background or sprite layer.
type pixel struct {
	colorIndex  uint8
	rgb         uint32
	spriteIndex int8
	behindBG    bool
	transparent bool
}

// spriteSlot is one entry of secondary OAM: the up-to-8 sprites found on
// the scanline currently being composited.
type spriteSlot struct {
	y, tile, attr, x uint8
	originalIndex    uint8
}

// renderFrame produces the complete 256x240 frame buffer in one pass. This
// is a deliberate simplification over real 2C02 behavior, which shifts
// pattern/attribute data through internal registers one dot at a time:
// here every visible scanline is evaluated and composited in full once
// the frame's dot/scanline counters reach the post-render line.
func (p *PPU) renderFrame() {
	if p.memory == nil {
		return
	}
	spriteHeight := p.ctrl.SpriteHeight()

	for y := 0; y < 240; y++ {
		slots, sprite0Present := p.evaluateSpritesForScanline(y, spriteHeight)
		for x := 0; x < 256; x++ {
			var bg, sp pixel
			bg = pixel{transparent: true}
			sp = pixel{transparent: true, spriteIndex: -1}

			if p.mask.ShowBackground() {
				bg = p.backgroundPixel(x, y)
			}
			if p.mask.ShowSprites() {
				sp = p.spritePixelAt(x, y, slots, spriteHeight)
			}
			if sprite0Present && !bg.transparent && !sp.transparent && sp.spriteIndex == 0 && x < 255 {
				p.status = p.status.With(regs.StatusSprite0Hit, true)
			}
			p.frameBuffer[y*256+x] = p.compositePixel(bg, sp)
		}
	}
}

func (p *PPU) backgroundPixel(pixelX, pixelY int) pixel {
	scrollX := int(p.t&0x001F)<<3 + int(p.x)
	scrollY := int((p.t>>5)&0x001F)<<3 + int((p.t>>12)&0x0007)
	nametable := int((p.t >> 10) & 0x0003)

	worldX := pixelX + scrollX
	worldY := pixelY + scrollY

	if worldX < 0 {
		nametable ^= 1
		worldX += 256
	} else if worldX >= 256 {
		nametable ^= 1
		worldX -= 256
	}
	if worldY < 0 {
		nametable ^= 2
		worldY += 240
	} else if worldY >= 240 {
		nametable ^= 2
		worldY -= 240
	}

	tileX, tileY := worldX>>3, worldY>>3
	fineX, fineY := worldX&7, worldY&7
	if tileX < 0 || tileX >= 32 || tileY < 0 || tileY >= 30 {
		return pixel{transparent: true}
	}

	nametableAddr := 0x2000 | (uint16(nametable&3) << 10) | uint16(tileY*32+tileX)
	tileID := p.memory.Read(nametableAddr)

	attrAddr := 0x23C0 | (uint16(nametable&3) << 10) | uint16((tileY>>2)*8+(tileX>>2))
	attrByte := p.memory.Read(attrAddr)
	block := ((tileX & 3) >> 1) + ((tileY&3)>>1)*2
	paletteIndex := (attrByte >> (uint(block) * 2)) & 0x03

	patternAddr := p.ctrl.BackgroundPatternTable() + uint16(tileID)*16 + uint16(fineY)
	lo := p.memory.Read(patternAddr)
	hi := p.memory.Read(patternAddr + 8)
	shift := 7 - fineX
	colorIndex := ((hi >> shift) & 1 << 1) | ((lo >> shift) & 1)

	if colorIndex == 0 {
		return pixel{transparent: true, rgb: nesColorToRGB(p.memory.Read(0x3F00))}
	}
	paletteAddr := 0x3F00 + uint16(paletteIndex)*4 + uint16(colorIndex)
	return pixel{colorIndex: colorIndex, rgb: nesColorToRGB(p.memory.Read(paletteAddr))}
}

func (p *PPU) evaluateSpritesForScanline(scanline, spriteHeight int) ([]spriteSlot, bool) {
	slots := make([]spriteSlot, 0, 8)
	sprite0 := false
	overflow := false

	for i := 0; i < 64; i++ {
		base := i * 4
		y := int(p.oam[base])
		if scanline < y+1 || scanline >= y+1+spriteHeight {
			continue
		}
		if len(slots) == 8 {
			overflow = true
			break
		}
		slots = append(slots, spriteSlot{
			y: p.oam[base], tile: p.oam[base+1], attr: p.oam[base+2], x: p.oam[base+3],
			originalIndex: uint8(i),
		})
		if i == 0 {
			sprite0 = true
		}
	}
	if overflow {
		p.status = p.status.With(regs.StatusSpriteOverflow, true)
	}
	return slots, sprite0
}

func (p *PPU) spritePixelAt(pixelX, pixelY int, slots []spriteSlot, spriteHeight int) pixel {
	for _, s := range slots {
		sy := int(s.y)
		if pixelX < int(s.x) || pixelX >= int(s.x)+8 {
			continue
		}
		row := pixelY - (sy + 1)
		if row < 0 || row >= spriteHeight {
			continue
		}
		col := pixelX - int(s.x)
		if s.attr&0x40 != 0 {
			col = 7 - col
		}
		if s.attr&0x80 != 0 {
			row = spriteHeight - 1 - row
		}

		colorIndex := p.spritePatternColor(s.tile, col, row, spriteHeight)
		if colorIndex == 0 {
			continue
		}
		paletteIndex := s.attr & 0x03
		paletteAddr := 0x3F10 + uint16(paletteIndex)*4 + uint16(colorIndex)
		return pixel{
			colorIndex:  colorIndex,
			rgb:         nesColorToRGB(p.memory.Read(paletteAddr)),
			spriteIndex: int8(s.originalIndex),
			behindBG:    s.attr&0x20 != 0,
		}
	}
	return pixel{transparent: true, spriteIndex: -1}
}

func (p *PPU) spritePatternColor(tile uint8, col, row, spriteHeight int) uint8 {
	var base uint16
	if spriteHeight == 8 {
		base = p.ctrl.SpritePatternTable()
	} else {
		if tile&0x01 != 0 {
			base = 0x1000
		}
		tile &= 0xFE
		if row >= 8 {
			tile++
			row -= 8
		}
	}
	addr := base + uint16(tile)*16 + uint16(row)
	lo := p.memory.Read(addr)
	hi := p.memory.Read(addr + 8)
	shift := 7 - col
	return ((hi >> shift) & 1 << 1) | ((lo >> shift) & 1)
}

func (p *PPU) compositePixel(bg, sp pixel) uint32 {
	if sp.transparent {
		return bg.rgb
	}
	if bg.transparent {
		return sp.rgb
	}
	if sp.behindBG {
		return bg.rgb
	}
	return sp.rgb
}
