package vm

import (
	"bufio"
	"context"
	"fmt"
)

// StartAddr is the conventional LC-3 user-program origin. Run always resets
// PC to StartAddr before the first fetch; the loader never sets PC itself
// (see loader.go), since images may be loaded at any origin they declare.
const StartAddr Word = 0x3000

// Machine owns everything that fetch-decode-execute touches: the register
// file, the address space, and the byte-oriented input/output channels. It
// is created once per process run and is not safe for concurrent use — the
// whole point of the design is that nothing needs it to be.
type Machine struct {
	Reg   Registers
	Mem   *Memory
	Input InputDevice
	Out   *bufio.Writer

	running bool
}

// NewMachine wires a fresh Machine around the given input device and output
// writer. Memory starts zeroed; callers load images into it via Memory.Write
// or the Load helper in loader.go before calling Run.
func NewMachine(input InputDevice, out *bufio.Writer) *Machine {
	return &Machine{
		Reg:   NewRegisters(),
		Mem:   NewMemory(input),
		Input: input,
		Out:   out,
	}
}

// Run executes the fetch-decode-execute cycle starting at StartAddr until
// the guest program issues HALT, the executor hits a fatal condition
// (ErrIllegalInstruction), or ctx is cancelled. A cancelled context is
// checked between instructions only — the guest program cannot observe or
// mask the cancellation, and it never interrupts an in-flight instruction.
func (m *Machine) Run(ctx context.Context) error {
	m.Reg.PC = StartAddr
	m.Reg.Cond = FlagZro
	m.running = true

	for m.running {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w", ErrInterrupted)
		default:
		}

		instr := m.Mem.Read(m.Reg.PC)
		m.Reg.PC++

		if err := m.execute(instr); err != nil {
			return err
		}
	}

	return nil
}

// halt is called by the HALT trap to stop the run loop after the current
// instruction finishes.
func (m *Machine) halt() {
	m.running = false
}
