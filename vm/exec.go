package vm

import "fmt"

// execute realises a single fetched instruction against the machine's
// registers and memory. PC has already been incremented past instr by the
// caller (Run), so every PC-relative computation below uses the
// already-advanced value, matching the hardware.
func (m *Machine) execute(instr Word) error {
	switch decode(instr) {
	case OpADD:
		dr, sr1 := field(instr, 11, 9), field(instr, 8, 6)
		var value Word
		if instr&0x20 != 0 {
			value = m.Reg.Get(sr1) + signExtend(instr&0x1F, 5)
		} else {
			value = m.Reg.Get(sr1) + m.Reg.Get(field(instr, 2, 0))
		}
		m.Reg.Set(dr, value)

	case OpAND:
		dr, sr1 := field(instr, 11, 9), field(instr, 8, 6)
		var value Word
		if instr&0x20 != 0 {
			value = m.Reg.Get(sr1) & signExtend(instr&0x1F, 5)
		} else {
			value = m.Reg.Get(sr1) & m.Reg.Get(field(instr, 2, 0))
		}
		m.Reg.Set(dr, value)

	case OpNOT:
		dr, sr1 := field(instr, 11, 9), field(instr, 8, 6)
		m.Reg.Set(dr, ^m.Reg.Get(sr1))

	case OpBR:
		condMask := field(instr, 11, 9)
		if Word(condMask)&m.Reg.Cond != 0 {
			m.Reg.PC += signExtend(instr&0x1FF, 9)
		}

	case OpJMP:
		baseR := field(instr, 8, 6)
		m.Reg.PC = m.Reg.Get(baseR)

	case OpJSR:
		returnAddr := m.Reg.PC
		if instr&0x800 != 0 {
			m.Reg.PC = returnAddr + signExtend(instr&0x7FF, 11)
		} else {
			m.Reg.PC = m.Reg.Get(field(instr, 8, 6))
		}
		m.Reg.General[R7] = returnAddr

	case OpLD:
		dr := field(instr, 11, 9)
		addr := m.Reg.PC + signExtend(instr&0x1FF, 9)
		m.Reg.Set(dr, m.Mem.Read(addr))

	case OpLDI:
		dr := field(instr, 11, 9)
		addr := m.Reg.PC + signExtend(instr&0x1FF, 9)
		m.Reg.Set(dr, m.Mem.Read(m.Mem.Read(addr)))

	case OpLDR:
		dr, baseR := field(instr, 11, 9), field(instr, 8, 6)
		addr := m.Reg.Get(baseR) + signExtend(instr&0x3F, 6)
		m.Reg.Set(dr, m.Mem.Read(addr))

	case OpLEA:
		dr := field(instr, 11, 9)
		m.Reg.Set(dr, m.Reg.PC+signExtend(instr&0x1FF, 9))

	case OpST:
		sr := field(instr, 11, 9)
		addr := m.Reg.PC + signExtend(instr&0x1FF, 9)
		m.Mem.Write(addr, m.Reg.Get(sr))

	case OpSTI:
		sr := field(instr, 11, 9)
		addr := m.Reg.PC + signExtend(instr&0x1FF, 9)
		m.Mem.Write(m.Mem.Read(addr), m.Reg.Get(sr))

	case OpSTR:
		sr, baseR := field(instr, 11, 9), field(instr, 8, 6)
		addr := m.Reg.Get(baseR) + signExtend(instr&0x3F, 6)
		m.Mem.Write(addr, m.Reg.Get(sr))

	case OpTRAP:
		m.Reg.General[R7] = m.Reg.PC
		return m.trap(Word(instr & 0xFF))

	case OpRTI, OpRES:
		return fmt.Errorf("%w: opcode %04b at pc %#04x", ErrIllegalInstruction, decode(instr), m.Reg.PC-1)

	default:
		// decode can only ever produce the 16 cases above; unreachable.
		return fmt.Errorf("%w: unknown opcode %#x at pc %#04x", ErrIllegalInstruction, decode(instr), m.Reg.PC-1)
	}

	return nil
}

// field extracts the inclusive bit range [lo, hi] from instr as an unsigned
// value in the low bits of the result — e.g. field(instr, 11, 9) pulls DR
// out of bits 11..9.
func field(instr Word, hi, lo uint) int {
	mask := Word(1)<<(hi-lo+1) - 1
	return int((instr >> lo) & mask)
}
