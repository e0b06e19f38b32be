package cpu

// Stack is a descending stack held in memory, addressed through a
// register. The pointer holds the address of the most recently pushed
// value, or Top when the stack is empty.
type Stack struct {
	Memory  *[MEMORY_SIZE]uint8
	Pointer *uint8
	Top     uint8 // Address one past the bottom of the stack.
}

// Push decrements the pointer, then stores the value.
func (s Stack) Push(value uint8) error {
	if s.Full() {
		return ErrStackOverflow
	}

	*s.Pointer--
	s.Memory[*s.Pointer] = value
	return nil
}

// Pop loads the value, then increments the pointer.
func (s Stack) Pop() (value uint8, err error) {
	value, ok := s.Peek()
	if !ok {
		err = ErrStackUnderflow
		return
	}

	*s.Pointer++
	return
}

// Peek returns the most recently pushed value.
func (s Stack) Peek() (value uint8, ok bool) {
	if s.Empty() {
		return
	}

	return s.Memory[*s.Pointer], true
}

func (s Stack) Empty() bool {
	return *s.Pointer >= s.Top
}

// Full is true when a push would move the pointer below address 0.
func (s Stack) Full() bool {
	return *s.Pointer == 0
}

// Depth returns the number of values on the stack.
func (s Stack) Depth() int {
	if s.Empty() {
		return 0
	}

	return int(s.Top) - int(*s.Pointer)
}
