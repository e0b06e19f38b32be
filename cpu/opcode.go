package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the first byte of an instruction.
//
// The two most significant bits hold the operand count, bit 5 marks ALU
// operations and bit 4 marks instructions that assign the PC.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT  = Opcode(0b0000_0001) // HLT
	OP_RET  = Opcode(0b0001_0001) // RET
	OP_PUSH = Opcode(0b0100_0101) // PUSH
	OP_POP  = Opcode(0b0100_0110) // POP
	OP_PRN  = Opcode(0b0100_0111) // PRN
	OP_CALL = Opcode(0b0101_0000) // CALL
	OP_JMP  = Opcode(0b0101_0100) // JMP
	OP_JEQ  = Opcode(0b0101_0101) // JEQ
	OP_JNE  = Opcode(0b0101_0110) // JNE
	OP_LDI  = Opcode(0b1000_0010) // LDI
	OP_ADD  = Opcode(0b1010_0000) // ADD
	OP_SUB  = Opcode(0b1010_0001) // SUB
	OP_MUL  = Opcode(0b1010_0010) // MUL
	OP_DIV  = Opcode(0b1010_0011) // DIV
	OP_CMP  = Opcode(0b1010_0111) // CMP
)

// Opcodes lists every defined opcode, in numeric order.
var Opcodes = []Opcode{
	OP_HLT, OP_RET,
	OP_PUSH, OP_POP, OP_PRN,
	OP_CALL, OP_JMP, OP_JEQ, OP_JNE,
	OP_LDI,
	OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_CMP,
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Size returns the instruction length in bytes.
func (op Opcode) Size() uint16 {
	return uint16(op.Operands()) + 1
}

// IsAlu is true for opcodes executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op>>5)&1 == 1
}

// SetsPc is true for opcodes that may assign the PC directly.
func (op Opcode) SetsPc() bool {
	return (op>>4)&1 == 1
}

// Immediate returns true if operand n is an immediate value rather
// than a register index.
func (op Opcode) Immediate(n int) bool {
	return op == OP_LDI && n == 1
}

// Code is a decoded instruction: the opcode and its operand bytes.
type Code struct {
	Op   Opcode
	Args []uint8
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	words := []string{code.Op.String()}
	for n, arg := range code.Args {
		if code.Op.Immediate(n) {
			words = append(words, fmt.Sprintf("%d", arg))
		} else {
			words = append(words, fmt.Sprintf("R%d", arg))
		}
	}

	return strings.Join(words, " ")
}

// Bytes returns the encoded instruction.
func (code Code) Bytes() []uint8 {
	return append([]uint8{uint8(code.Op)}, code.Args...)
}
