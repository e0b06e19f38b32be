package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_SUB = AluOp(1) // sub
	ALU_OP_MUL = AluOp(2) // mul
	ALU_OP_DIV = AluOp(3) // div
	ALU_OP_CMP = AluOp(4) // cmp
)

// aluMap maps ALU opcodes to their operation.
var aluMap = map[Opcode]AluOp{
	OP_ADD: ALU_OP_ADD,
	OP_SUB: ALU_OP_SUB,
	OP_MUL: ALU_OP_MUL,
	OP_DIV: ALU_OP_DIV,
	OP_CMP: ALU_OP_CMP,
}

// alu performs the requested ALU action on two registers.
// Results wrap modulo 256.
func (cpu *Cpu) alu(op AluOp, reg_a, reg_b uint8) (err error) {
	a, err := cpu.reg(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.reg(reg_b)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		*a += *b
	case ALU_OP_SUB:
		*a -= *b
	case ALU_OP_MUL:
		*a *= *b
	case ALU_OP_DIV:
		if *b == 0 {
			err = ErrDivideByZero
			return
		}
		*a /= *b
	case ALU_OP_CMP:
		cpu.compare(int8(*a), int8(*b))
	default:
		err = ErrAluOp
	}

	return
}

// compare sets exactly one of the comparison flags. Treat as signed.
func (cpu *Cpu) compare(a, b int8) {
	if cpu.FlagMode == FLAG_MODE_REPLACE {
		cpu.Fl &^= FLAG_MASK
	}

	switch {
	case a == b:
		cpu.Fl |= FLAG_EQUAL
	case a < b:
		cpu.Fl |= FLAG_LESS
	default:
		cpu.Fl |= FLAG_GREATER
	}
}
