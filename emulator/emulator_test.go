package emulator

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(os.Stdout, emu.Console.Output)
	assert.Nil(emu.Program)
	assert.Equal(0, emu.Limit)

	channel, err := emu.Cpu.GetChannel()
	assert.NoError(err)
	assert.Equal(&emu.Console, channel)
}

func doAssemble(emu *Emulator, program []string, t *testing.T) (output *bytes.Buffer) {
	assert := assert.New(t)

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	assert.NoError(err)

	output = &bytes.Buffer{}
	emu.Console.Output = output

	return
}

func TestEmulatorImage(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.LoadImage(strings.NewReader(strings.Join([]string{
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}, "\n")))
	assert.NoError(err)

	output := &bytes.Buffer{}
	emu.Console.Output = output

	err = emu.Reset()
	assert.NoError(err)

	reason, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_HALT, reason)
	assert.Equal("8\n", output.String())
	assert.Equal(3, emu.Ticks())
	assert.Equal(0, emu.LineNo())
	assert.True(emu.Halted)

	// A halted machine stays halted.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(3, emu.Ticks())
}

func TestEmulatorLoadFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "print8.ls8")
	err := os.WriteFile(path, []byte("10000010\n00000000\n00001000\n01000111\n00000000\n00000001\n"), 0o644)
	assert.NoError(err)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.Console.Output = output

	err = emu.LoadFile(path)
	assert.NoError(err)
	assert.NoError(emu.Reset())

	reason, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_HALT, reason)
	assert.Equal("8\n", output.String())

	err = emu.LoadFile(filepath.Join(t.TempDir(), "missing.ls8"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestEmulatorAssemble(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"; multiply and print",
		"LDI R0, 8",
		"LDI R1, 9",
		"MUL R0, R1",
		"PRN R0",
		"HLT",
	}

	output := doAssemble(emu, program, t)

	lines := []int{}
	for {
		lines = append(lines, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		if err != nil || done {
			break
		}
	}

	assert.Equal([]int{2, 3, 4, 5, 6}, lines)
	assert.Equal("72\n", output.String())
	assert.Equal(uint8(72), emu.Register[0])
}

func TestEmulatorCode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"LDI R2, 0x10", "HLT"}, t)

	assert.Equal("LDI R2 16", emu.Code().String())

	_, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(cpu.OP_HLT, emu.Code().Op)

	emu.Memory[4] = 0xff
	emu.Pc = 4
	assert.Equal(cpu.Code{}, emu.Code())
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := maps.Collect(emu.Defines())

	assert.Equal("256", defines["IMAGE_SIZE"])
	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("0xf4", defines["STACK_TOP"])
	assert.Equal("R7", defines["SP"])
	assert.Equal("R6", defines["LR"])
	assert.Equal("0x01", defines["OP_HLT"])
	assert.Equal("0x82", defines["OP_LDI"])

	output := doAssemble(emu, []string{
		"LDI R0, $(IMAGE_SIZE - 1)",
		"PRN R0",
		"PUSH R0",
		"LDI R1, STACK_TOP",
		"SUB R1, SP",
		"PRN R1",
		"HLT",
	}, t)

	reason, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_HALT, reason)
	assert.Equal("255\n1\n", output.String())
}

var callProgram = []string{
	"        LDI R0, 2",
	"        LDI R1, sub",
	"        CALL R1",
	"        PRN R0",
	"        HLT",
	"sub:    PRN R0",
	"        RET",
}

func TestEmulatorCall(t *testing.T) {
	assert := assert.New(t)

	for _, mode := range []cpu.ReturnMode{cpu.RETURN_MODE_LINKAGE, cpu.RETURN_MODE_STACK} {
		emu := NewEmulator()
		emu.ReturnMode = mode

		output := doAssemble(emu, callProgram, t)

		reason, err := emu.Run()
		assert.NoError(err, mode.String())
		assert.Equal(REASON_HALT, reason, mode.String())
		assert.Equal("2\n2\n", output.String(), mode.String())
		assert.Equal(uint8(cpu.STACK_TOP), emu.Register[cpu.REG_SP], mode.String())
		assert.Equal(uint16(11), emu.Pc, mode.String())
	}
}

func TestEmulatorMacro(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		".macro SHOW reg value",
		"LDI reg, value",
		"PRN reg",
		".endm",
		".macro COUNTDOWN reg",
		"        LDI R5, 1",
		"        LDI R6, 0",
		"        LDI R4, @loop",
		"@loop:  PRN reg",
		"        SUB reg, R5",
		"        CMP reg, R6",
		"        JNE R4",
		".endm",
		"SHOW R0 7",
		"COUNTDOWN R0",
		"SHOW R1 'A'",
		"HLT",
	}

	output := doAssemble(emu, program, t)

	reason, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_HALT, reason)
	assert.Equal("7\n7\n6\n5\n4\n3\n2\n1\n65\n", output.String())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LDI R0, 1",
		"LDI R1, 0",
		"",
		"DIV R0, R1",
		"HLT",
	}

	doAssemble(emu, program, t)

	reason, err := emu.Run()
	assert.Equal(REASON_FAULT, reason)
	assert.ErrorIs(err, cpu.ErrDivideByZero)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(4, runtime.LineNo)
	}

	var fault *cpu.ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(uint16(6), fault.Pc)
		assert.Equal(cpu.OP_DIV, fault.Code.Op)
	}

	assert.True(strings.HasPrefix(err.Error(), "line 4 "))
	assert.Equal(uint16(6), emu.Pc)
}

func TestEmulatorIllegal(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.LoadImage(strings.NewReader("00000011\n"))
	assert.NoError(err)
	assert.NoError(emu.Reset())

	reason, err := emu.Run()
	assert.Equal(REASON_FAULT, reason)
	assert.ErrorIs(err, cpu.ErrIllegalInstruction)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(0, runtime.LineNo)
		assert.Equal(runtime.Err.Error(), err.Error())
	}
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Limit = 10

	doAssemble(emu, []string{
		"     LDI R0, top",
		"top: JMP R0",
	}, t)

	reason, err := emu.Run()
	assert.Equal(REASON_LIMIT, reason)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Ticks())
	assert.False(emu.Halted)
	assert.Equal(2, emu.LineNo())

	// Run resumes where it left off.
	reason, err = emu.Run()
	assert.Equal(REASON_LIMIT, reason)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(20, emu.Ticks())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := doAssemble(emu, []string{"LDI R0, 8", "PRN R0", "HLT"}, t)

	_, err := emu.Run()
	assert.NoError(err)

	assert.NoError(emu.Reset())
	assert.False(emu.Halted)
	assert.Equal(0, emu.Ticks())
	assert.Equal(uint16(0), emu.Pc)
	assert.Equal(uint8(0), emu.Register[0])
	assert.Equal(0, emu.Console.Lines)

	_, err = emu.Run()
	assert.NoError(err)
	assert.Equal("8\n8\n", output.String())
}

func TestReason(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halt", REASON_HALT.String())
	assert.Equal("fault", REASON_FAULT.String())
	assert.Equal("limit", REASON_LIMIT.String())
	assert.Equal("unknown", Reason(9).String())
}
