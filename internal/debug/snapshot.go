// Package debug provides an opt-in diagnostic snapshot of CPU/PPU state
// and recent bus activity, for dumping to a trace log on request.
package debug

import (
	"github.com/davecgh/go-spew/spew"

	"gones/internal/bus"
	"gones/internal/regs"
)

// CPUSnapshot captures the register state a trace line cares about.
type CPUSnapshot struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  regs.CPUStatus
	Cycles  uint64
}

// PPUSnapshot captures the PPU's position within the current frame.
type PPUSnapshot struct {
	Scanline   int
	Cycle      int
	FrameCount uint64
}

// Snapshot is a single point-in-time capture of a running Bus, along with
// whatever ExecutionEvents its execution log currently holds.
type Snapshot struct {
	CPU           CPUSnapshot
	PPU           PPUSnapshot
	TotalCycles   uint64
	DMAInProgress bool
	RecentEvents  []bus.ExecutionEvent
}

// Capture builds a Snapshot from a Bus's current state.
func Capture(b *bus.Bus) Snapshot {
	return Snapshot{
		CPU: CPUSnapshot{
			A: b.CPU.A, X: b.CPU.X, Y: b.CPU.Y,
			SP:     b.CPU.SP,
			PC:     b.CPU.PC,
			Status: b.CPU.Status,
			Cycles: b.CPU.Cycles(),
		},
		PPU: PPUSnapshot{
			Scanline:   b.PPU.Scanline(),
			Cycle:      b.PPU.Cycle(),
			FrameCount: b.PPU.FrameCount(),
		},
		TotalCycles:   b.GetCycleCount(),
		DMAInProgress: b.IsDMAInProgress(),
		RecentEvents:  b.GetExecutionLog(),
	}
}

// Dump renders a Snapshot as a human-readable multi-line string, suitable
// for writing straight into a trace log.
func Dump(s Snapshot) string {
	return spew.Sdump(s)
}
