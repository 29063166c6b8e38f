package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert.Equal(t, OpADD, decode(0x1000))
	assert.Equal(t, OpAND, decode(0x5000))
	assert.Equal(t, OpTRAP, decode(0xF025))
	assert.Equal(t, OpRTI, decode(0x8000))
	assert.Equal(t, OpRES, decode(0xD000))
}

func TestSignExtendPositive(t *testing.T) {
	assert.Equal(t, Word(0x000F), signExtend(0x000F, 5))
}

func TestSignExtendNegative(t *testing.T) {
	// 5-bit value 0x1F == -1 in two's complement.
	assert.Equal(t, Word(0xFFFF), signExtend(0x001F, 5))
	// 9-bit PCoffset9, top bit set: 0x1FF == -1.
	assert.Equal(t, Word(0xFFFF), signExtend(0x01FF, 9))
}
