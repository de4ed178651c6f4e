package cpu

// ExecFunc executes one instruction body against the already-resolved
// effective address, returning any cycle penalty beyond BaseCycles (taken
// branches, page-crossing reads charged by the caller).
type ExecFunc func(c *CPU, address uint16, pageCrossed bool) uint8

// Instruction is one entry of the 256-slot dispatch table.
type Instruction struct {
	Name             string
	Mode             AddressingMode
	Bytes            uint8
	BaseCycles       uint8
	Legal            bool
	PageCrossPenalty bool
	Exec             ExecFunc
}

func op(name string, mode AddressingMode, bytes, cycles uint8, legal bool, penalty bool, fn ExecFunc) Instruction {
	return Instruction{Name: name, Mode: mode, Bytes: bytes, BaseCycles: cycles, Legal: legal, PageCrossPenalty: penalty, Exec: fn}
}

// buildInstructionTable populates all 256 opcode slots. Every slot starts
// as a two-cycle illegal KIL placeholder, which this core runs as a no-op,
// before the assigned opcodes below overwrite it.
func buildInstructionTable() [256]Instruction {
	var t [256]Instruction
	for i := range t {
		t[i] = op("KIL", Implied, 1, 2, false, false, kil)
	}

	// Loads.
	t[0xA9] = op("LDA", Immediate, 2, 2, true, false, lda)
	t[0xA5] = op("LDA", ZeroPage, 2, 3, true, false, lda)
	t[0xB5] = op("LDA", ZeroPageX, 2, 4, true, false, lda)
	t[0xAD] = op("LDA", Absolute, 3, 4, true, false, lda)
	t[0xBD] = op("LDA", AbsoluteX, 3, 4, true, true, lda)
	t[0xB9] = op("LDA", AbsoluteY, 3, 4, true, true, lda)
	t[0xA1] = op("LDA", IndexedIndirect, 2, 6, true, false, lda)
	t[0xB1] = op("LDA", IndirectIndexed, 2, 5, true, true, lda)

	t[0xA2] = op("LDX", Immediate, 2, 2, true, false, ldx)
	t[0xA6] = op("LDX", ZeroPage, 2, 3, true, false, ldx)
	t[0xB6] = op("LDX", ZeroPageY, 2, 4, true, false, ldx)
	t[0xAE] = op("LDX", Absolute, 3, 4, true, false, ldx)
	t[0xBE] = op("LDX", AbsoluteY, 3, 4, true, true, ldx)

	t[0xA0] = op("LDY", Immediate, 2, 2, true, false, ldy)
	t[0xA4] = op("LDY", ZeroPage, 2, 3, true, false, ldy)
	t[0xB4] = op("LDY", ZeroPageX, 2, 4, true, false, ldy)
	t[0xAC] = op("LDY", Absolute, 3, 4, true, false, ldy)
	t[0xBC] = op("LDY", AbsoluteX, 3, 4, true, true, ldy)

	// Stores (always fixed cost, never a page-cross penalty).
	t[0x85] = op("STA", ZeroPage, 2, 3, true, false, sta)
	t[0x95] = op("STA", ZeroPageX, 2, 4, true, false, sta)
	t[0x8D] = op("STA", Absolute, 3, 4, true, false, sta)
	t[0x9D] = op("STA", AbsoluteX, 3, 5, true, false, sta)
	t[0x99] = op("STA", AbsoluteY, 3, 5, true, false, sta)
	t[0x81] = op("STA", IndexedIndirect, 2, 6, true, false, sta)
	t[0x91] = op("STA", IndirectIndexed, 2, 6, true, false, sta)

	t[0x86] = op("STX", ZeroPage, 2, 3, true, false, stx)
	t[0x96] = op("STX", ZeroPageY, 2, 4, true, false, stx)
	t[0x8E] = op("STX", Absolute, 3, 4, true, false, stx)

	t[0x84] = op("STY", ZeroPage, 2, 3, true, false, sty)
	t[0x94] = op("STY", ZeroPageX, 2, 4, true, false, sty)
	t[0x8C] = op("STY", Absolute, 3, 4, true, false, sty)

	// Arithmetic.
	t[0x69] = op("ADC", Immediate, 2, 2, true, false, adc)
	t[0x65] = op("ADC", ZeroPage, 2, 3, true, false, adc)
	t[0x75] = op("ADC", ZeroPageX, 2, 4, true, false, adc)
	t[0x6D] = op("ADC", Absolute, 3, 4, true, false, adc)
	t[0x7D] = op("ADC", AbsoluteX, 3, 4, true, true, adc)
	t[0x79] = op("ADC", AbsoluteY, 3, 4, true, true, adc)
	t[0x61] = op("ADC", IndexedIndirect, 2, 6, true, false, adc)
	t[0x71] = op("ADC", IndirectIndexed, 2, 5, true, true, adc)

	t[0xE9] = op("SBC", Immediate, 2, 2, true, false, sbc)
	t[0xE5] = op("SBC", ZeroPage, 2, 3, true, false, sbc)
	t[0xF5] = op("SBC", ZeroPageX, 2, 4, true, false, sbc)
	t[0xED] = op("SBC", Absolute, 3, 4, true, false, sbc)
	t[0xFD] = op("SBC", AbsoluteX, 3, 4, true, true, sbc)
	t[0xF9] = op("SBC", AbsoluteY, 3, 4, true, true, sbc)
	t[0xE1] = op("SBC", IndexedIndirect, 2, 6, true, false, sbc)
	t[0xF1] = op("SBC", IndirectIndexed, 2, 5, true, true, sbc)
	t[0xEB] = op("SBC", Immediate, 2, 2, false, false, sbc)

	// Bitwise.
	t[0x29] = op("AND", Immediate, 2, 2, true, false, and)
	t[0x25] = op("AND", ZeroPage, 2, 3, true, false, and)
	t[0x35] = op("AND", ZeroPageX, 2, 4, true, false, and)
	t[0x2D] = op("AND", Absolute, 3, 4, true, false, and)
	t[0x3D] = op("AND", AbsoluteX, 3, 4, true, true, and)
	t[0x39] = op("AND", AbsoluteY, 3, 4, true, true, and)
	t[0x21] = op("AND", IndexedIndirect, 2, 6, true, false, and)
	t[0x31] = op("AND", IndirectIndexed, 2, 5, true, true, and)

	t[0x09] = op("ORA", Immediate, 2, 2, true, false, ora)
	t[0x05] = op("ORA", ZeroPage, 2, 3, true, false, ora)
	t[0x15] = op("ORA", ZeroPageX, 2, 4, true, false, ora)
	t[0x0D] = op("ORA", Absolute, 3, 4, true, false, ora)
	t[0x1D] = op("ORA", AbsoluteX, 3, 4, true, true, ora)
	t[0x19] = op("ORA", AbsoluteY, 3, 4, true, true, ora)
	t[0x01] = op("ORA", IndexedIndirect, 2, 6, true, false, ora)
	t[0x11] = op("ORA", IndirectIndexed, 2, 5, true, true, ora)

	t[0x49] = op("EOR", Immediate, 2, 2, true, false, eor)
	t[0x45] = op("EOR", ZeroPage, 2, 3, true, false, eor)
	t[0x55] = op("EOR", ZeroPageX, 2, 4, true, false, eor)
	t[0x4D] = op("EOR", Absolute, 3, 4, true, false, eor)
	t[0x5D] = op("EOR", AbsoluteX, 3, 4, true, true, eor)
	t[0x59] = op("EOR", AbsoluteY, 3, 4, true, true, eor)
	t[0x41] = op("EOR", IndexedIndirect, 2, 6, true, false, eor)
	t[0x51] = op("EOR", IndirectIndexed, 2, 5, true, true, eor)

	// Shifts and rotates.
	t[0x0A] = op("ASL", Accumulator, 1, 2, true, false, aslAcc)
	t[0x06] = op("ASL", ZeroPage, 2, 5, true, false, asl)
	t[0x16] = op("ASL", ZeroPageX, 2, 6, true, false, asl)
	t[0x0E] = op("ASL", Absolute, 3, 6, true, false, asl)
	t[0x1E] = op("ASL", AbsoluteX, 3, 7, true, false, asl)

	t[0x4A] = op("LSR", Accumulator, 1, 2, true, false, lsrAcc)
	t[0x46] = op("LSR", ZeroPage, 2, 5, true, false, lsr)
	t[0x56] = op("LSR", ZeroPageX, 2, 6, true, false, lsr)
	t[0x4E] = op("LSR", Absolute, 3, 6, true, false, lsr)
	t[0x5E] = op("LSR", AbsoluteX, 3, 7, true, false, lsr)

	t[0x2A] = op("ROL", Accumulator, 1, 2, true, false, rolAcc)
	t[0x26] = op("ROL", ZeroPage, 2, 5, true, false, rol)
	t[0x36] = op("ROL", ZeroPageX, 2, 6, true, false, rol)
	t[0x2E] = op("ROL", Absolute, 3, 6, true, false, rol)
	t[0x3E] = op("ROL", AbsoluteX, 3, 7, true, false, rol)

	t[0x6A] = op("ROR", Accumulator, 1, 2, true, false, rorAcc)
	t[0x66] = op("ROR", ZeroPage, 2, 5, true, false, ror)
	t[0x76] = op("ROR", ZeroPageX, 2, 6, true, false, ror)
	t[0x6E] = op("ROR", Absolute, 3, 6, true, false, ror)
	t[0x7E] = op("ROR", AbsoluteX, 3, 7, true, false, ror)

	// Comparisons.
	t[0xC9] = op("CMP", Immediate, 2, 2, true, false, cmp)
	t[0xC5] = op("CMP", ZeroPage, 2, 3, true, false, cmp)
	t[0xD5] = op("CMP", ZeroPageX, 2, 4, true, false, cmp)
	t[0xCD] = op("CMP", Absolute, 3, 4, true, false, cmp)
	t[0xDD] = op("CMP", AbsoluteX, 3, 4, true, true, cmp)
	t[0xD9] = op("CMP", AbsoluteY, 3, 4, true, true, cmp)
	t[0xC1] = op("CMP", IndexedIndirect, 2, 6, true, false, cmp)
	t[0xD1] = op("CMP", IndirectIndexed, 2, 5, true, true, cmp)

	t[0xE0] = op("CPX", Immediate, 2, 2, true, false, cpx)
	t[0xE4] = op("CPX", ZeroPage, 2, 3, true, false, cpx)
	t[0xEC] = op("CPX", Absolute, 3, 4, true, false, cpx)

	t[0xC0] = op("CPY", Immediate, 2, 2, true, false, cpy)
	t[0xC4] = op("CPY", ZeroPage, 2, 3, true, false, cpy)
	t[0xCC] = op("CPY", Absolute, 3, 4, true, false, cpy)

	// Increments/decrements.
	t[0xE6] = op("INC", ZeroPage, 2, 5, true, false, inc)
	t[0xF6] = op("INC", ZeroPageX, 2, 6, true, false, inc)
	t[0xEE] = op("INC", Absolute, 3, 6, true, false, inc)
	t[0xFE] = op("INC", AbsoluteX, 3, 7, true, false, inc)

	t[0xC6] = op("DEC", ZeroPage, 2, 5, true, false, dec)
	t[0xD6] = op("DEC", ZeroPageX, 2, 6, true, false, dec)
	t[0xCE] = op("DEC", Absolute, 3, 6, true, false, dec)
	t[0xDE] = op("DEC", AbsoluteX, 3, 7, true, false, dec)

	t[0xE8] = op("INX", Implied, 1, 2, true, false, inx)
	t[0xCA] = op("DEX", Implied, 1, 2, true, false, dex)
	t[0xC8] = op("INY", Implied, 1, 2, true, false, iny)
	t[0x88] = op("DEY", Implied, 1, 2, true, false, dey)

	// Register transfers.
	t[0xAA] = op("TAX", Implied, 1, 2, true, false, tax)
	t[0x8A] = op("TXA", Implied, 1, 2, true, false, txa)
	t[0xA8] = op("TAY", Implied, 1, 2, true, false, tay)
	t[0x98] = op("TYA", Implied, 1, 2, true, false, tya)
	t[0xBA] = op("TSX", Implied, 1, 2, true, false, tsx)
	t[0x9A] = op("TXS", Implied, 1, 2, true, false, txs)

	// Stack.
	t[0x48] = op("PHA", Implied, 1, 3, true, false, pha)
	t[0x68] = op("PLA", Implied, 1, 4, true, false, pla)
	t[0x08] = op("PHP", Implied, 1, 3, true, false, php)
	t[0x28] = op("PLP", Implied, 1, 4, true, false, plp)

	// Flag instructions.
	t[0x18] = op("CLC", Implied, 1, 2, true, false, clc)
	t[0x38] = op("SEC", Implied, 1, 2, true, false, sec)
	t[0x58] = op("CLI", Implied, 1, 2, true, false, cli)
	t[0x78] = op("SEI", Implied, 1, 2, true, false, sei)
	t[0xB8] = op("CLV", Implied, 1, 2, true, false, clv)
	t[0xD8] = op("CLD", Implied, 1, 2, true, false, cld)
	t[0xF8] = op("SED", Implied, 1, 2, true, false, sed)

	// Control flow.
	t[0x4C] = op("JMP", Absolute, 3, 3, true, false, jmp)
	t[0x6C] = op("JMP", Indirect, 3, 5, true, false, jmp)
	t[0x20] = op("JSR", Absolute, 3, 6, true, false, jsr)
	t[0x60] = op("RTS", Implied, 1, 6, true, false, rts)
	t[0x40] = op("RTI", Implied, 1, 6, true, false, rti)

	t[0x90] = op("BCC", Relative, 2, 2, true, false, bcc)
	t[0xB0] = op("BCS", Relative, 2, 2, true, false, bcs)
	t[0xD0] = op("BNE", Relative, 2, 2, true, false, bne)
	t[0xF0] = op("BEQ", Relative, 2, 2, true, false, beq)
	t[0x10] = op("BPL", Relative, 2, 2, true, false, bpl)
	t[0x30] = op("BMI", Relative, 2, 2, true, false, bmi)
	t[0x50] = op("BVC", Relative, 2, 2, true, false, bvc)
	t[0x70] = op("BVS", Relative, 2, 2, true, false, bvs)

	t[0x24] = op("BIT", ZeroPage, 2, 3, true, false, bit)
	t[0x2C] = op("BIT", Absolute, 3, 4, true, false, bit)
	t[0xEA] = op("NOP", Implied, 1, 2, true, false, nop)
	t[0x00] = op("BRK", Implied, 1, 7, true, false, brk)

	// Illegal single-byte NOPs.
	for _, hex := range []int{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		t[hex] = op("NOP", Implied, 1, 2, false, false, nop)
	}
	// Illegal immediate-operand NOPs (DOP).
	for _, hex := range []int{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		t[hex] = op("NOP", Immediate, 2, 2, false, false, topDop)
	}
	// Illegal zero-page NOPs.
	for _, hex := range []int{0x04, 0x44, 0x64} {
		t[hex] = op("NOP", ZeroPage, 2, 3, false, false, topDop)
	}
	// Illegal zero-page,X NOPs.
	for _, hex := range []int{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		t[hex] = op("NOP", ZeroPageX, 2, 4, false, false, topDop)
	}
	// Illegal absolute/absolute,X NOPs (TOP).
	t[0x0C] = op("NOP", Absolute, 3, 4, false, false, topDop)
	for _, hex := range []int{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		t[hex] = op("NOP", AbsoluteX, 3, 4, false, true, topDop)
	}

	// LAX: LDA+LDX combined.
	t[0xA7] = op("LAX", ZeroPage, 2, 3, false, false, lax)
	t[0xB7] = op("LAX", ZeroPageY, 2, 4, false, false, lax)
	t[0xAF] = op("LAX", Absolute, 3, 4, false, false, lax)
	t[0xBF] = op("LAX", AbsoluteY, 3, 4, false, true, lax)
	t[0xA3] = op("LAX", IndexedIndirect, 2, 6, false, false, lax)
	t[0xB3] = op("LAX", IndirectIndexed, 2, 5, false, true, lax)

	// SAX: store A&X.
	t[0x87] = op("SAX", ZeroPage, 2, 3, false, false, sax)
	t[0x97] = op("SAX", ZeroPageY, 2, 4, false, false, sax)
	t[0x8F] = op("SAX", Absolute, 3, 4, false, false, sax)
	t[0x83] = op("SAX", IndexedIndirect, 2, 6, false, false, sax)

	// DCP: DEC then CMP.
	t[0xC7] = op("DCP", ZeroPage, 2, 5, false, false, dcp)
	t[0xD7] = op("DCP", ZeroPageX, 2, 6, false, false, dcp)
	t[0xCF] = op("DCP", Absolute, 3, 6, false, false, dcp)
	t[0xDF] = op("DCP", AbsoluteX, 3, 7, false, false, dcp)
	t[0xDB] = op("DCP", AbsoluteY, 3, 7, false, false, dcp)
	t[0xC3] = op("DCP", IndexedIndirect, 2, 8, false, false, dcp)
	t[0xD3] = op("DCP", IndirectIndexed, 2, 8, false, false, dcp)

	// ISB (ISC): INC then SBC.
	t[0xE7] = op("ISB", ZeroPage, 2, 5, false, false, isb)
	t[0xF7] = op("ISB", ZeroPageX, 2, 6, false, false, isb)
	t[0xEF] = op("ISB", Absolute, 3, 6, false, false, isb)
	t[0xFF] = op("ISB", AbsoluteX, 3, 7, false, false, isb)
	t[0xFB] = op("ISB", AbsoluteY, 3, 7, false, false, isb)
	t[0xE3] = op("ISB", IndexedIndirect, 2, 8, false, false, isb)
	t[0xF3] = op("ISB", IndirectIndexed, 2, 8, false, false, isb)

	// SLO: ASL then ORA.
	t[0x07] = op("SLO", ZeroPage, 2, 5, false, false, slo)
	t[0x17] = op("SLO", ZeroPageX, 2, 6, false, false, slo)
	t[0x0F] = op("SLO", Absolute, 3, 6, false, false, slo)
	t[0x1F] = op("SLO", AbsoluteX, 3, 7, false, false, slo)
	t[0x1B] = op("SLO", AbsoluteY, 3, 7, false, false, slo)
	t[0x03] = op("SLO", IndexedIndirect, 2, 8, false, false, slo)
	t[0x13] = op("SLO", IndirectIndexed, 2, 8, false, false, slo)

	// RLA: ROL then AND.
	t[0x27] = op("RLA", ZeroPage, 2, 5, false, false, rla)
	t[0x37] = op("RLA", ZeroPageX, 2, 6, false, false, rla)
	t[0x2F] = op("RLA", Absolute, 3, 6, false, false, rla)
	t[0x3F] = op("RLA", AbsoluteX, 3, 7, false, false, rla)
	t[0x3B] = op("RLA", AbsoluteY, 3, 7, false, false, rla)
	t[0x23] = op("RLA", IndexedIndirect, 2, 8, false, false, rla)
	t[0x33] = op("RLA", IndirectIndexed, 2, 8, false, false, rla)

	// SRE: LSR then EOR.
	t[0x47] = op("SRE", ZeroPage, 2, 5, false, false, sre)
	t[0x57] = op("SRE", ZeroPageX, 2, 6, false, false, sre)
	t[0x4F] = op("SRE", Absolute, 3, 6, false, false, sre)
	t[0x5F] = op("SRE", AbsoluteX, 3, 7, false, false, sre)
	t[0x5B] = op("SRE", AbsoluteY, 3, 7, false, false, sre)
	t[0x43] = op("SRE", IndexedIndirect, 2, 8, false, false, sre)
	t[0x53] = op("SRE", IndirectIndexed, 2, 8, false, false, sre)

	// RRA: ROR then ADC.
	t[0x67] = op("RRA", ZeroPage, 2, 5, false, false, rra)
	t[0x77] = op("RRA", ZeroPageX, 2, 6, false, false, rra)
	t[0x6F] = op("RRA", Absolute, 3, 6, false, false, rra)
	t[0x7F] = op("RRA", AbsoluteX, 3, 7, false, false, rra)
	t[0x7B] = op("RRA", AbsoluteY, 3, 7, false, false, rra)
	t[0x63] = op("RRA", IndexedIndirect, 2, 8, false, false, rra)
	t[0x73] = op("RRA", IndirectIndexed, 2, 8, false, false, rra)

	// Unstable immediate-operand opcodes.
	t[0x0B] = op("ANC", Immediate, 2, 2, false, false, anc)
	t[0x2B] = op("ANC", Immediate, 2, 2, false, false, anc)
	t[0x4B] = op("ALR", Immediate, 2, 2, false, false, alr)
	t[0x6B] = op("ARR", Immediate, 2, 2, false, false, arr)
	t[0xCB] = op("AXS", Immediate, 2, 2, false, false, axs)
	t[0xAB] = op("LXA", Immediate, 2, 2, false, false, lxa)
	t[0x8B] = op("XAA", Immediate, 2, 2, false, false, xaa)

	// Store-class unstable opcodes (bus-address-dependent high byte).
	t[0x9C] = op("SYA", AbsoluteX, 3, 5, false, false, sya)
	t[0x9E] = op("SXA", AbsoluteY, 3, 5, false, false, sxa)
	t[0x9F] = op("AXA", AbsoluteY, 3, 5, false, false, axa)
	t[0x93] = op("AXA", IndirectIndexed, 2, 6, false, false, axa)
	t[0x9B] = op("XAS", AbsoluteY, 3, 5, false, false, xas)
	t[0xBB] = op("LAS", AbsoluteY, 3, 4, false, true, las)

	// Remaining KIL (halt) opcodes: processor jams, emulated as a no-op trap.
	for _, hex := range []int{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		t[hex] = op("KIL", Implied, 1, 2, false, false, kil)
	}

	return t
}
