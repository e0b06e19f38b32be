package cpu

// doHlt stops execution.
func (cpu *Cpu) doHlt(code Code) (err error) {
	cpu.Halted = true
	cpu.next(code)
	return
}

// doLdi loads an immediate into a register.
func (cpu *Cpu) doLdi(code Code) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}

	*reg = code.Args[1]
	cpu.next(code)
	return
}

// doPrn sends a register to the output channel.
func (cpu *Cpu) doPrn(code Code) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}

	channel, err := cpu.GetChannel()
	if err != nil {
		return
	}

	err = channel.Print(*reg)
	if err != nil {
		return
	}

	cpu.next(code)
	return
}

// doAlu executes ADD, SUB, MUL, DIV and CMP.
func (cpu *Cpu) doAlu(code Code) (err error) {
	op, ok := aluMap[code.Op]
	if !ok {
		err = ErrAluOp
		return
	}

	err = cpu.alu(op, code.Args[0], code.Args[1])
	if err != nil {
		return
	}

	cpu.next(code)
	return
}

func (cpu *Cpu) doPush(code Code) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}

	err = cpu.Stack().Push(*reg)
	if err != nil {
		return
	}

	cpu.next(code)
	return
}

func (cpu *Cpu) doPop(code Code) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}

	value, err := cpu.Stack().Pop()
	if err != nil {
		return
	}

	*reg = value
	cpu.next(code)
	return
}

// doCall pushes the return address, mirrors it into the linkage
// register, and jumps to the address in the operand register.
func (cpu *Cpu) doCall(code Code) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}
	target := *reg

	ret := cpu.Pc + code.Op.Size()
	if ret >= MEMORY_SIZE {
		err = ErrAddressRange
		return
	}

	err = cpu.Stack().Push(uint8(ret))
	if err != nil {
		return
	}

	cpu.Register[REG_LINK] = uint8(ret)
	cpu.Pc = uint16(target)
	return
}

// doRet pops the frame pushed by CALL. See ReturnMode for the choice of
// return address.
func (cpu *Cpu) doRet(code Code) (err error) {
	ret, err := cpu.Stack().Pop()
	if err != nil {
		return
	}

	switch cpu.ReturnMode {
	case RETURN_MODE_STACK:
		cpu.Pc = uint16(ret)
	default:
		cpu.Pc = uint16(cpu.Register[REG_LINK])
	}

	return
}

func (cpu *Cpu) doJmp(code Code) (err error) {
	return cpu.jumpIf(code, true)
}

func (cpu *Cpu) doJeq(code Code) (err error) {
	return cpu.jumpIf(code, cpu.Fl&FLAG_EQUAL != 0)
}

func (cpu *Cpu) doJne(code Code) (err error) {
	return cpu.jumpIf(code, cpu.Fl&FLAG_EQUAL == 0)
}

// jumpIf sets the PC to the operand register when taken, otherwise
// falls through to the next instruction.
func (cpu *Cpu) jumpIf(code Code, taken bool) (err error) {
	reg, err := cpu.reg(code.Args[0])
	if err != nil {
		return
	}

	if taken {
		cpu.Pc = uint16(*reg)
	} else {
		cpu.next(code)
	}

	return
}
