package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeInput is a deterministic InputDevice backed by a fixed byte queue,
// standing in for internal/host.Terminal in tests.
type fakeInput struct {
	bytes []byte
	pos   int
}

func (f *fakeInput) Ready() bool {
	return f.pos < len(f.bytes)
}

func (f *fakeInput) ReadByte() (byte, error) {
	if f.pos >= len(f.bytes) {
		return 0, errors.New("fakeInput: no more bytes")
	}
	b := f.bytes[f.pos]
	f.pos++
	return b, nil
}

func TestMemoryReadWritePlainAddress(t *testing.T) {
	m := NewMemory(&fakeInput{})
	m.Write(0x3000, 0xBEEF)
	assert.Equal(t, Word(0xBEEF), m.Read(0x3000))
}

func TestMemoryKBSRSynthesisWhenReady(t *testing.T) {
	m := NewMemory(&fakeInput{bytes: []byte{'x'}})
	assert.Equal(t, Word(0x8000), m.Read(KBSRAddr))
	assert.Equal(t, Word('x'), m.Read(KBDRAddr))
}

func TestMemoryKBSRZeroWhenNotReady(t *testing.T) {
	m := NewMemory(&fakeInput{})
	assert.Equal(t, Word(0), m.Read(KBSRAddr))
}
