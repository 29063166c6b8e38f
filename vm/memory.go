package vm

// Addresses of the memory-mapped keyboard status and data registers. All
// other addresses behave as ordinary memory on both read and write; the
// system models no display MMIO, since character output is entirely via
// service traps (see trap.go).
const (
	KBSRAddr Word = 0xFE00
	KBDRAddr Word = 0xFE02
)

const memorySize = 1 << 16

// InputDevice is the narrow contract Memory needs from whatever is feeding
// the guest program's keyboard. Ready is a non-blocking readiness probe;
// ReadByte blocks until a byte is available. Production code backs this
// with internal/host.Terminal; tests back it with a fixed byte queue.
type InputDevice interface {
	Ready() bool
	ReadByte() (byte, error)
}

// Memory is the LC-3's flat 65,536-word address space. Reads of KBSR consult
// the attached InputDevice and may synthesize a value in KBDR as a side
// effect; every other address behaves as plain storage.
type Memory struct {
	cell  [memorySize]Word
	input InputDevice
}

// NewMemory returns a zeroed memory image backed by the given input device
// for KBSR/KBDR synthesis.
func NewMemory(input InputDevice) *Memory {
	return &Memory{input: input}
}

// Read returns the word at addr, synthesizing KBSR/KBDR from the input
// device first when addr is KBSR. Between the KBSR read that yields 0x8000
// and the following KBDR read, nothing else may touch the input device:
// the core is single-threaded, so this is automatic as long as no caller
// reads KBSR speculatively (e.g. from a debugger or tracer) outside the
// fetch path — there is no such caller in this implementation.
func (m *Memory) Read(addr Word) Word {
	if addr == KBSRAddr {
		if m.input.Ready() {
			b, err := m.input.ReadByte()
			if err == nil {
				m.cell[KBDRAddr] = Word(b)
				m.cell[KBSRAddr] = 0x8000
			} else {
				m.cell[KBSRAddr] = 0
			}
		} else {
			m.cell[KBSRAddr] = 0
		}
	}
	return m.cell[addr]
}

// Write stores value at addr unconditionally. Writes to KBSR/KBDR have no
// side effects; they behave as ordinary memory.
func (m *Memory) Write(addr Word, value Word) {
	m.cell[addr] = value
}
