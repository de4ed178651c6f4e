package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gones/internal/regs"
)

// MockMemory implements the Memory interface for testing, tracking access
// counts the way the rest of this corpus's mock buses do.
type MockMemory struct {
	data       [0x10000]uint8
	readCount  map[uint16]int
	writeCount map[uint16]int
}

func NewMockMemory() *MockMemory {
	return &MockMemory{
		readCount:  make(map[uint16]int),
		writeCount: make(map[uint16]int),
	}
}

func (m *MockMemory) Read(address uint16) uint8 {
	m.readCount[address]++
	return m.data[address]
}

func (m *MockMemory) Write(address uint16, value uint8) {
	m.writeCount[address]++
	m.data[address] = value
}

func (m *MockMemory) SetBytes(address uint16, values ...uint8) {
	for i, value := range values {
		m.data[address+uint16(i)] = value
	}
}

// CPUTestHelper bundles a CPU with its backing mock memory.
type CPUTestHelper struct {
	CPU    *CPU
	Memory *MockMemory
}

func NewCPUTestHelper() *CPUTestHelper {
	memory := NewMockMemory()
	return &CPUTestHelper{CPU: New(memory), Memory: memory}
}

func (h *CPUTestHelper) SetupResetVector(address uint16) {
	h.Memory.SetBytes(0xFFFC, uint8(address&0xFF), uint8(address>>8))
	h.CPU.Reset()
}

func (h *CPUTestHelper) LoadProgram(address uint16, program ...uint8) {
	h.Memory.SetBytes(address, program...)
}

func TestCPUReset(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)

	assert.Equal(t, uint8(0), h.CPU.A)
	assert.Equal(t, uint8(0), h.CPU.X)
	assert.Equal(t, uint8(0), h.CPU.Y)
	assert.Equal(t, uint8(0xFD), h.CPU.SP)
	assert.Equal(t, uint16(0x8000), h.CPU.PC)
	assert.True(t, h.CPU.Status.InterruptDisable())
	assert.Equal(t, uint64(7), h.CPU.Cycles())
}

func TestNOPTakesTwoCyclesAndAdvancesPC(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0xEA) // NOP

	cycles := h.CPU.Step()
	assert.Equal(t, uint64(2), cycles)
	assert.Equal(t, uint16(0x8001), h.CPU.PC)
}

func TestLDAImmediateSetsZeroAndNegativeFlags(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0xA9, 0x00) // LDA #$00
	h.CPU.Step()
	assert.Equal(t, uint8(0), h.CPU.A)
	assert.True(t, h.CPU.Status.Zero())
	assert.False(t, h.CPU.Status.Negative())

	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0xA9, 0x80) // LDA #$80
	h.CPU.Step()
	assert.Equal(t, uint8(0x80), h.CPU.A)
	assert.False(t, h.CPU.Status.Zero())
	assert.True(t, h.CPU.Status.Negative())
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0xBD, 0xFF, 0x80) // LDA $80FF,X
	h.CPU.X = 0x01
	cycles := h.CPU.Step()
	assert.Equal(t, uint64(5), cycles)
}

func TestAbsoluteXNoPageCrossIsBaseCost(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0xBD, 0x00, 0x80) // LDA $8000,X
	h.CPU.X = 0x01
	cycles := h.CPU.Step()
	assert.Equal(t, uint64(4), cycles)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.LoadProgram(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	h.Memory.SetBytes(0x02FF, 0x34)
	h.Memory.SetBytes(0x0300, 0x12) // would supply the high byte without the bug
	h.Memory.SetBytes(0x0200, 0x00) // wraps to read the high byte from $0200, not $0300
	h.CPU.Step()
	assert.Equal(t, uint16(0x0034), h.CPU.PC)
}

func TestBranchTakenCrossesPageCostsExtraCycle(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x80F0)
	h.CPU.Status = h.CPU.Status.With(regs.FlagZero, true)
	h.LoadProgram(0x80F0, 0xF0, 0x20) // BEQ +32, lands across the page boundary
	cycles := h.CPU.Step()
	assert.Equal(t, uint64(4), cycles)
	assert.Equal(t, uint16(0x8112), h.CPU.PC)
}

func TestStackPushPullRoundTrip(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x42
	h.LoadProgram(0x8000, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #$00; PLA
	h.CPU.Step()
	h.CPU.Step()
	h.CPU.Step()
	assert.Equal(t, uint8(0x42), h.CPU.A)
}

func TestNMIServicingPushesPCAndStatus(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFA, 0x00, 0x90) // NMI vector -> $9000
	h.CPU.PC = 0x1234
	startSP := h.CPU.SP

	h.CPU.RaiseNMI()
	cycles := h.CPU.Step()
	assert.Equal(t, uint64(7), cycles)
	assert.Equal(t, uint16(0x9000), h.CPU.PC)
	assert.Equal(t, startSP-3, h.CPU.SP)
}

func TestADCSetsCarryAndOverflowOnSignedOverflow(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x7F
	h.LoadProgram(0x8000, 0x69, 0x01) // ADC #$01
	h.CPU.Step()
	assert.Equal(t, uint8(0x80), h.CPU.A)
	assert.True(t, h.CPU.Status.Overflow())
	assert.False(t, h.CPU.Status.Carry())
}

func TestSBCBorrowClearsCarry(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x00
	h.CPU.Status = h.CPU.Status.With(regs.FlagCarry, true)
	h.LoadProgram(0x8000, 0xE9, 0x01) // SBC #$01
	h.CPU.Step()
	assert.Equal(t, uint8(0xFF), h.CPU.A)
	assert.False(t, h.CPU.Status.Carry())
}

func TestUndocumentedLAXLoadsBothRegisters(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x0010, 0x99)
	h.LoadProgram(0x8000, 0xA7, 0x10) // LAX $10
	h.CPU.Step()
	assert.Equal(t, uint8(0x99), h.CPU.A)
	assert.Equal(t, uint8(0x99), h.CPU.X)
}

func TestAllOpcodeSlotsAreDispatchable(t *testing.T) {
	h := NewCPUTestHelper()
	for i := 0; i < 256; i++ {
		assert.NotNil(t, h.CPU.instructions[i].Exec, "opcode %#02x has no handler", i)
	}
}
