package vm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Load reads a big-endian LC-3 object image from r and installs it into
// memory. The first word is the origin address; every word after it is
// stored starting there. Loading stops if the image would run past the end
// of the address space — the remainder is silently truncated, matching the
// reference loader's behaviour on oversized images.
func (m *Machine) Load(r io.Reader) error {
	var originBuf [2]byte
	if _, err := io.ReadFull(r, originBuf[:]); err != nil {
		return fmt.Errorf("%w: reading origin: %v", ErrLoad, err)
	}
	origin := Word(binary.BigEndian.Uint16(originBuf[:]))

	addr := int(origin)
	var wordBuf [2]byte
	for {
		_, err := io.ReadFull(r, wordBuf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading program word: %v", ErrLoad, err)
		}
		if addr >= memorySize {
			break
		}
		m.Mem.Write(Word(addr), Word(binary.BigEndian.Uint16(wordBuf[:])))
		addr++
	}

	return nil
}
