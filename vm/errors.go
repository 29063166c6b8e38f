package vm

import "errors"

// Sentinel errors for the taxonomy the CLI layer maps to process exit codes.
// Wrap these with fmt.Errorf("...: %w", ErrX) at the detection site so callers
// can still errors.Is against the sentinel.
var (
	// ErrUsage is returned by the CLI layer when invoked without at least
	// one image argument.
	ErrUsage = errors.New("usage error")

	// ErrLoad is returned when an object-file image cannot be opened or read.
	ErrLoad = errors.New("failed to load image")

	// ErrInterrupted is returned by Run when the supplied context is
	// cancelled (host interrupt) before the guest program halts.
	ErrInterrupted = errors.New("interrupted")

	// ErrIllegalInstruction is returned when the executor encounters RTI,
	// the reserved opcode, or a TRAP with an unrecognized vector.
	ErrIllegalInstruction = errors.New("illegal instruction")
)
