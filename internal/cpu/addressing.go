package cpu

// AddressingMode identifies one of the 13 effective-address computations.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// resolveAddress computes the effective address for the instruction whose
// opcode byte has already been consumed (PC points at the first operand
// byte). It advances PC past the operand and reports whether the
// computation crossed a page boundary.
func (c *CPU) resolveAddress(mode AddressingMode) (address uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		address = c.PC
		c.PC++
		return address, false

	case ZeroPage:
		address = uint16(c.memory.Read(c.PC))
		c.PC++
		return address, false

	case ZeroPageX:
		base := c.memory.Read(c.PC)
		c.PC++
		return uint16((base + c.X) & 0xFF), false

	case ZeroPageY:
		base := c.memory.Read(c.PC)
		c.PC++
		return uint16((base + c.Y) & 0xFF), false

	case Relative:
		offset := int8(c.memory.Read(c.PC))
		c.PC++
		base := c.PC
		address = uint16(int32(base) + int32(offset))
		pageCrossed = (base & 0xFF00) != (address & 0xFF00)
		return address, pageCrossed

	case Absolute:
		address = c.read16(c.PC)
		c.PC += 2
		return address, false

	case AbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		address = base + uint16(c.X)
		pageCrossed = (base & 0xFF00) != (address & 0xFF00)
		return address, pageCrossed

	case AbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		address = base + uint16(c.Y)
		pageCrossed = (base & 0xFF00) != (address & 0xFF00)
		return address, pageCrossed

	case Indirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		if ptr&0xFF == 0xFF {
			lo := uint16(c.memory.Read(ptr))
			hi := uint16(c.memory.Read(ptr & 0xFF00))
			address = (hi << 8) | lo
		} else {
			address = c.read16(ptr)
		}
		return address, false

	case IndexedIndirect:
		base := c.memory.Read(c.PC)
		c.PC++
		ptr := (base + c.X) & 0xFF
		lo := uint16(c.memory.Read(uint16(ptr)))
		hi := uint16(c.memory.Read(uint16((ptr + 1) & 0xFF)))
		address = (hi << 8) | lo
		return address, false

	case IndirectIndexed:
		ptr := uint16(c.memory.Read(c.PC))
		c.PC++
		lo := uint16(c.memory.Read(ptr))
		hi := uint16(c.memory.Read((ptr + 1) & 0xFF))
		base := (hi << 8) | lo
		address = base + uint16(c.Y)
		pageCrossed = (base & 0xFF00) != (address & 0xFF00)
		return address, pageCrossed

	default:
		return 0, false
	}
}
