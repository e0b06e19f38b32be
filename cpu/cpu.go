package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Channel is the output channel used by PRN.
type Channel io.Channel

// Machine geometry.
const (
	MEMORY_SIZE    = 256  // Bytes of addressable memory.
	REGISTER_COUNT = 8    // General purpose registers.
	REG_LINK       = 6    // Register holding the CALL return address.
	REG_SP         = 7    // Register holding the stack pointer.
	STACK_TOP      = 0xf4 // Initial stack pointer (empty stack).
)

// Comparison flags, in the FL register.
const (
	FLAG_EQUAL   = uint8(1 << 0)
	FLAG_GREATER = uint8(1 << 1)
	FLAG_LESS    = uint8(1 << 2)

	FLAG_MASK = FLAG_EQUAL | FLAG_GREATER | FLAG_LESS
)

var _cpu_defines = func() (defines map[string]string) {
	defines = map[string]string{
		"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
		"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
		"STACK_TOP":      fmt.Sprintf("0x%x", STACK_TOP),
		"FLAG_EQUAL":     fmt.Sprintf("0x%x", FLAG_EQUAL),
		"FLAG_GREATER":   fmt.Sprintf("0x%x", FLAG_GREATER),
		"FLAG_LESS":      fmt.Sprintf("0x%x", FLAG_LESS),
		"SP":             fmt.Sprintf("R%d", REG_SP),
		"LR":             fmt.Sprintf("R%d", REG_LINK),
	}
	for _, op := range Opcodes {
		defines["OP_"+op.String()] = fmt.Sprintf("0x%02x", uint8(op))
	}
	return
}()

// handler executes a decoded instruction, and is responsible for
// advancing or assigning the PC.
type handler func(cpu *Cpu, code Code) error

// Cpu is the simulation context for the LS-8 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	FlagMode   FlagMode   // How CMP treats previously set flags.
	ReturnMode ReturnMode // Where RET finds the return address.

	Memory   [MEMORY_SIZE]uint8    // Main memory.
	Register [REGISTER_COUNT]uint8 // Register bank.
	Pc       uint16                // Current program counter.
	Fl       uint8                 // Comparison flags.
	Halted   bool                  // Set by HLT.

	Ticks int // Instructions executed since reset.

	channel  Channel
	dispatch map[Opcode]handler
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		dispatch: map[Opcode]handler{
			OP_HLT:  (*Cpu).doHlt,
			OP_RET:  (*Cpu).doRet,
			OP_PUSH: (*Cpu).doPush,
			OP_POP:  (*Cpu).doPop,
			OP_PRN:  (*Cpu).doPrn,
			OP_CALL: (*Cpu).doCall,
			OP_JMP:  (*Cpu).doJmp,
			OP_JEQ:  (*Cpu).doJeq,
			OP_JNE:  (*Cpu).doJne,
			OP_LDI:  (*Cpu).doLdi,
			OP_ADD:  (*Cpu).doAlu,
			OP_SUB:  (*Cpu).doAlu,
			OP_MUL:  (*Cpu).doAlu,
			OP_DIV:  (*Cpu).doAlu,
			OP_CMP:  (*Cpu).doAlu,
		},
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Stack returns the stack addressed by the SP register.
func (cpu *Cpu) Stack() Stack {
	return Stack{
		Memory:  &cpu.Memory,
		Pointer: &cpu.Register[REG_SP],
		Top:     STACK_TOP,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %03b\n", "fl", cpu.Fl)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}
	strval := "--"
	if val, ok := cpu.Stack().Peek(); ok {
		strval = fmt.Sprintf("%02X", val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", strval)

	return
}

// Trace returns a single line of machine state: the PC, the three bytes
// at the PC, the flags and the registers.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X | %02X |",
		cpu.Pc, cpu.peek(cpu.Pc), cpu.peek(cpu.Pc+1), cpu.peek(cpu.Pc+2), cpu.Fl)
	for _, val := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", val)
	}

	return sb.String()
}

// peek reads memory without faulting; out of range reads as 0.
func (cpu *Cpu) peek(addr uint16) uint8 {
	if addr >= MEMORY_SIZE {
		return 0
	}
	return cpu.Memory[addr]
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Sets SP to an empty stack.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = STACK_TOP
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// Load copies an image into memory, starting at address 0.
func (cpu *Cpu) Load(image []uint8) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrImageTooLarge
		return
	}

	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// SetChannel attaches the output channel.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel returns the output channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.channel
	return
}

// FetchCode decodes the instruction at the PC.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc >= MEMORY_SIZE {
		err = &ErrFault{Pc: cpu.Pc, Err: ErrAddressRange}
		return
	}

	code.Op = Opcode(cpu.Memory[cpu.Pc])
	if _, ok := cpu.dispatch[code.Op]; !ok {
		err = &ErrFault{Pc: cpu.Pc, Code: code, Err: ErrIllegalInstruction}
		return
	}

	end := cpu.Pc + code.Op.Size()
	if end > MEMORY_SIZE {
		err = &ErrFault{Pc: cpu.Pc, Code: code, Err: ErrAddressRange}
		return
	}
	code.Args = slices.Clone(cpu.Memory[cpu.Pc+1 : end])

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Print(cpu.Trace())
	}

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction at the current PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Code: code, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	handle, ok := cpu.dispatch[code.Op]
	if !ok || len(code.Args) != code.Op.Operands() {
		err = ErrIllegalInstruction
		return
	}

	err = handle(cpu, code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// reg returns the register selected by an operand byte.
func (cpu *Cpu) reg(index uint8) (reg *uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterRange
		return
	}

	reg = &cpu.Register[index]
	return
}

// next advances the PC past the instruction.
func (cpu *Cpu) next(code Code) {
	cpu.Pc += code.Op.Size()
}
