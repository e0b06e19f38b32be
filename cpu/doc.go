// Package cpu implements the processor and assembler for the LS-8 machine.
//
// The machine has 256 bytes of memory, eight 8-bit registers (r0-r7), a
// program counter and a flags register. R7 is the stack pointer, and R6
// holds the return address recorded by CALL. Instructions are decoded
// through a dispatch table built when the CPU is created.
//
// The assembler provides a small assembly language for the LS-8
// instruction set, supporting labels, macros, equates and compile-time
// expression evaluation.
package cpu
