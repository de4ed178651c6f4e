// Package cpu implements the 6502-family interpreter used by the NES: the
// register file, the 13 addressing modes, the 256-entry opcode table
// (including documented undocumented instructions), and the interrupt
// protocol.
package cpu

import "gones/internal/regs"

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Memory is the bus interface the CPU executes against.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the 6502-family register file plus execution engine.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  regs.CPUStatus

	memory Memory
	cycles uint64

	nmiPending bool
	irqLine    bool

	instructions [256]Instruction
}

// New creates a CPU wired to the given bus. Call Reset before Step.
func New(memory Memory) *CPU {
	cpu := &CPU{memory: memory}
	cpu.instructions = buildInstructionTable()
	return cpu
}

// Reset performs the 6502 power-up/reset sequence: A=X=Y=0, SP=$FD,
// P=%00100100, PC loaded from the reset vector, 7-cycle initial budget.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.Status = regs.FlagInterruptDisable | regs.FlagBreakHigh
	c.PC = c.read16(resetVector)
	c.cycles = 7
	c.nmiPending = false
	c.irqLine = false
}

// Cycles returns the running total of CPU cycles consumed since Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// RaiseNMI latches a pending non-maskable interrupt, serviced before the
// next instruction fetch.
func (c *CPU) RaiseNMI() { c.nmiPending = true }

// SetIRQLine sets the level-triggered IRQ line state.
func (c *CPU) SetIRQLine(asserted bool) { c.irqLine = asserted }

// Step services a pending interrupt if there is one, returning its 7
// cycles without executing an instruction; otherwise it executes exactly
// one instruction and returns the number of CPU cycles it took.
func (c *CPU) Step() uint64 {
	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(nmiVector, false)
		c.cycles += 7
		return 7
	}
	if c.irqLine && !c.Status.InterruptDisable() {
		c.serviceInterrupt(irqVector, false)
		c.cycles += 7
		return 7
	}

	opcode := c.memory.Read(c.PC)
	inst := &c.instructions[opcode]
	c.PC++

	address, pageCrossed := c.resolveAddress(inst.Mode)
	extra := inst.Exec(c, address, pageCrossed)
	if pageCrossed && inst.PageCrossPenalty {
		extra++
	}

	total := uint64(inst.BaseCycles) + uint64(extra)
	c.cycles += total
	return total
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.memory.Read(addr))
	hi := uint16(c.memory.Read(addr + 1))
	return (hi << 8) | lo
}

func (c *CPU) push(v uint8) {
	c.memory.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.memory.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return (hi << 8) | lo
}

func (c *CPU) setZN(v uint8) {
	c.Status = c.Status.With(regs.FlagZero, v == 0)
	c.Status = c.Status.With(regs.FlagNegative, v&0x80 != 0)
}

// compare implements CMP/CPX/CPY: C = reg >= mem, then Z/N from reg-mem.
func (c *CPU) compare(reg, mem uint8) {
	c.Status = c.Status.With(regs.FlagCarry, reg >= mem)
	c.setZN(reg - mem)
}

// addToAccumulator implements ADC; SBC calls it with value^0xFF.
func (c *CPU) addToAccumulator(value uint8) {
	carry := uint16(0)
	if c.Status.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(value) + carry
	result := uint8(sum)
	overflow := (value^result)&(result^c.A)&0x80 != 0
	c.Status = c.Status.With(regs.FlagCarry, sum > 0xFF)
	c.Status = c.Status.With(regs.FlagOverflow, overflow)
	c.A = result
	c.setZN(c.A)
}

// serviceInterrupt runs the common NMI/IRQ/BRK stack protocol.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.pushWord(c.PC)
	c.push(c.Status.Pushed(brk))
	c.Status = c.Status.With(regs.FlagInterruptDisable, true)
	c.PC = c.read16(vector)
}
