// Package bus wires the CPU, PPU, APU, input, and cartridge together and
// drives their relative timing: one CPU instruction per Step, the PPU at
// 3x CPU speed, the APU at 1x, with OAM DMA CPU-stall accounting.
package bus

import (
	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// ExecutionEvent is one recorded Step, kept only while logging is enabled.
type ExecutionEvent struct {
	StepNumber   int
	PC           uint16
	Opcode       uint8
	CPUCycles    uint64
	FrameCount   uint64
	DMAActive    bool
	NMIDelivered bool
}

// Bus connects all NES components and coordinates their cycle timing.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	totalCycles uint64
	cpuCycles   uint64
	frameCount  uint64

	dmaSuspendCycles uint64
	dmaInProgress    bool
	nmiPending       bool

	executionLog   []ExecutionEvent
	loggingEnabled bool
}

// New creates a fully wired bus with no cartridge loaded.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}

	b.Memory = memory.New(b.PPU, b.APU, nil)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.PPU.SetFrameCompleteCallback(b.handleFrameComplete)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)

	b.Reset()
	return b
}

// Reset resets every component and the bus's own timing state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.totalCycles = 0
	b.cpuCycles = 0
	b.frameCount = 0
	b.dmaSuspendCycles = 0
	b.dmaInProgress = false
	b.nmiPending = false

	b.executionLog = nil
}

func (b *Bus) triggerNMI() { b.nmiPending = true }

func (b *Bus) handleFrameComplete() {
	b.frameCount = b.PPU.FrameCount()
}

// Step executes one CPU instruction (or consumes one DMA-stall cycle),
// then advances the PPU 3x and the APU 1x for however many CPU cycles
// that took.
func (b *Bus) Step() {
	prePC := b.CPU.PC
	preOpcode := b.Memory.Read(prePC)
	nmiDelivered := false

	var cpuCycles uint64
	if b.dmaSuspendCycles > 0 {
		cpuCycles = 1
		b.dmaSuspendCycles--
		if b.dmaSuspendCycles == 0 {
			b.dmaInProgress = false
		}
	} else {
		if b.nmiPending {
			b.CPU.RaiseNMI()
			b.nmiPending = false
			nmiDelivered = true
		}
		cpuCycles = b.CPU.Step()
	}

	for i := uint64(0); i < cpuCycles*3; i++ {
		b.PPU.Step()
	}
	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}

	b.cpuCycles += cpuCycles
	b.totalCycles += cpuCycles

	if b.loggingEnabled {
		b.executionLog = append(b.executionLog, ExecutionEvent{
			StepNumber:   len(b.executionLog) + 1,
			PC:           prePC,
			Opcode:       preOpcode,
			CPUCycles:    b.cpuCycles,
			FrameCount:   b.frameCount,
			DMAActive:    b.dmaInProgress,
			NMIDelivered: nmiDelivered,
		})
	}
}

// TriggerOAMDMA starts a 256-byte OAM DMA transfer from sourcePage<<8,
// stalling the CPU for 513 cycles (514 if it starts on an odd CPU cycle).
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	if b.dmaInProgress {
		return
	}

	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}
	b.dmaInProgress = true
	b.dmaSuspendCycles = dmaCycles

	base := uint16(sourcePage) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAM(uint8(i), b.Memory.Read(base+uint16(i)))
	}
}

// LoadCartridge wires a cartridge into the memory maps and mirroring the
// cartridge reports, then resets the CPU so it fetches from the cartridge's
// reset vector.
func (b *Bus) LoadCartridge(cart memory.CartridgeInterface) {
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	mirrorMode := memory.MirrorHorizontal
	if c, ok := cart.(interface{ GetMirrorMode() cartridge.MirrorMode }); ok {
		switch c.GetMirrorMode() {
		case cartridge.MirrorHorizontal:
			mirrorMode = memory.MirrorHorizontal
		case cartridge.MirrorVertical:
			mirrorMode = memory.MirrorVertical
		case cartridge.MirrorSingleScreen0:
			mirrorMode = memory.MirrorSingleScreen0
		case cartridge.MirrorSingleScreen1:
			mirrorMode = memory.MirrorSingleScreen1
		case cartridge.MirrorFourScreen:
			mirrorMode = memory.MirrorFourScreen
		}
	}

	b.PPU.SetMemory(memory.NewPPUMemory(cart, mirrorMode))
	b.PPU.SetNMICallback(b.triggerNMI)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.CPU.Reset()
}

// Run steps the bus until the given number of additional frames complete.
func (b *Bus) Run(frames int) {
	target := b.frameCount + uint64(frames)
	for b.frameCount < target {
		b.Step()
	}
}

// RunCycles steps the bus until at least the given number of additional CPU cycles elapse.
func (b *Bus) RunCycles(cycles uint64) {
	target := b.cpuCycles + cycles
	for b.cpuCycles < target {
		b.Step()
	}
}

// GetFrameBuffer returns the PPU's current 256x240 RGB frame buffer.
func (b *Bus) GetFrameBuffer() [256 * 240]uint32 { return b.PPU.FrameBuffer() }

// GetCycleCount returns the CPU cycle count since Reset.
func (b *Bus) GetCycleCount() uint64 { return b.cpuCycles }

// GetFrameCount returns the number of frames completed since Reset.
func (b *Bus) GetFrameCount() uint64 { return b.frameCount }

// IsDMAInProgress reports whether an OAM DMA transfer is currently stalling the CPU.
func (b *Bus) IsDMAInProgress() bool { return b.dmaInProgress }

// SetControllerButtons sets all eight buttons of one standard controller
// port at once. controller 0 is $4016, controller 1 is $4017.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	if controller == 0 {
		b.Input.SetButtons1(buttons)
	} else {
		b.Input.SetButtons2(buttons)
	}
}

// EnableExecutionLogging starts recording ExecutionEvents on every Step.
func (b *Bus) EnableExecutionLogging() { b.loggingEnabled = true }

// DisableExecutionLogging stops recording ExecutionEvents.
func (b *Bus) DisableExecutionLogging() { b.loggingEnabled = false }

// ClearExecutionLog discards any recorded ExecutionEvents.
func (b *Bus) ClearExecutionLog() { b.executionLog = nil }

// GetExecutionLog returns a copy of the recorded ExecutionEvents.
func (b *Bus) GetExecutionLog() []ExecutionEvent {
	log := make([]ExecutionEvent, len(b.executionLog))
	copy(log, b.executionLog)
	return log
}
