package vm

import "fmt"

// Trap vectors, selected by the low byte of a TRAP instruction.
const (
	TrapGETC  Word = 0x20
	TrapOUT   Word = 0x21
	TrapPUTS  Word = 0x22
	TrapIN    Word = 0x23
	TrapPUTSP Word = 0x24
	TrapHALT  Word = 0x25
)

// trap dispatches on the trap vector. R7 already holds the pre-trap PC by
// the time this runs (see execute's OpTRAP case); trap handlers return to
// the caller implicitly once they're done, with PC already pointing past
// the TRAP instruction.
func (m *Machine) trap(vector Word) error {
	switch vector {
	case TrapGETC:
		b, err := m.Input.ReadByte()
		if err != nil {
			return fmt.Errorf("getc: %w", err)
		}
		m.Reg.Set(R0, Word(b))

	case TrapOUT:
		m.Out.WriteByte(byte(m.Reg.Get(R0)))
		m.Out.Flush()

	case TrapPUTS:
		addr := m.Reg.Get(R0)
		for {
			w := m.Mem.Read(addr)
			if w == 0 {
				break
			}
			m.Out.WriteByte(byte(w))
			addr++
		}
		m.Out.Flush()

	case TrapIN:
		m.Out.WriteString("Enter a character: ")
		b, err := m.Input.ReadByte()
		if err != nil {
			m.Out.Flush()
			return fmt.Errorf("in: %w", err)
		}
		m.Out.WriteByte(b)
		m.Out.Flush()
		m.Reg.Set(R0, Word(b))

	case TrapPUTSP:
		addr := m.Reg.Get(R0)
		for {
			w := m.Mem.Read(addr)
			if w == 0 {
				break
			}
			lo := byte(w & 0xFF)
			hi := byte(w >> 8)
			m.Out.WriteByte(lo)
			if hi != 0 {
				m.Out.WriteByte(hi)
			}
			addr++
		}
		m.Out.Flush()

	case TrapHALT:
		m.Out.WriteString("HALT\n")
		m.Out.Flush()
		m.halt()

	default:
		return fmt.Errorf("%w: trap vector %#02x at pc %#04x", ErrIllegalInstruction, vector, m.Reg.PC-1)
	}

	return nil
}
