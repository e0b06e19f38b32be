package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStack(sp uint8) (s Stack, mem *[MEMORY_SIZE]uint8, ptr *uint8) {
	mem = &[MEMORY_SIZE]uint8{}
	ptr = new(uint8)
	*ptr = sp
	s = Stack{Memory: mem, Pointer: ptr, Top: STACK_TOP}
	return
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s, mem, ptr := newStack(STACK_TOP)
	assert.True(s.Empty())
	assert.False(s.Full())

	err := s.Push(0x42)
	assert.NoError(err)
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(uint8(STACK_TOP-1), *ptr)
	assert.Equal(uint8(0x42), mem[STACK_TOP-1])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s, _, ptr := newStack(STACK_TOP)
	assert.NoError(s.Push(0x12))
	assert.NoError(s.Push(0xAB))

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0xAB), val)
	assert.Equal(1, s.Depth())

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(uint8(0x12), val)
	assert.Equal(0, s.Depth())
	assert.Equal(uint8(STACK_TOP), *ptr)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s, _, ptr := newStack(STACK_TOP)
	val, err := s.Pop()
	assert.ErrorIs(err, ErrStackUnderflow)
	assert.Equal(uint8(0), val)
	assert.Equal(uint8(STACK_TOP), *ptr)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s, _, _ := newStack(STACK_TOP)
	assert.NoError(s.Push(0x12))
	assert.NoError(s.Push(0xAB))

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint8(0xAB), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Peek_Empty(t *testing.T) {
	assert := assert.New(t)

	s, _, _ := newStack(STACK_TOP)
	val, ok := s.Peek()
	assert.False(ok)
	assert.Equal(uint8(0), val)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s, mem, ptr := newStack(1)
	assert.False(s.Full())

	assert.NoError(s.Push(0x55))
	assert.True(s.Full())
	assert.Equal(uint8(0x55), mem[0])

	err := s.Push(0x66)
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(uint8(0), *ptr)
	assert.Equal(uint8(0x55), mem[0])
}

func TestStack_Capacity(t *testing.T) {
	assert := assert.New(t)

	s, _, _ := newStack(STACK_TOP)

	for i := 0; i < STACK_TOP; i++ {
		assert.False(s.Full())
		assert.NoError(s.Push(uint8(i)))
	}

	assert.True(s.Full())
	assert.Equal(STACK_TOP, s.Depth())
}
