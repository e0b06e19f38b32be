// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	lsio "github.com/ezrec/ls8/io"
)

var _emulator_defines = map[string]string{
	"IMAGE_SIZE": fmt.Sprintf("%v", lsio.IMAGE_SIZE),
}

// Reason is why a run stopped.
type Reason int

const (
	REASON_HALT  = Reason(0) // HLT executed.
	REASON_FAULT = Reason(1) // A fatal error.
	REASON_LIMIT = Reason(2) // Tick limit reached.
)

func (reason Reason) String() string {
	switch reason {
	case REASON_HALT:
		return "halt"
	case REASON_FAULT:
		return "fault"
	case REASON_LIMIT:
		return "limit"
	}
	return "unknown"
}

// Emulator state. CPU + program image + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled program, if any; takes precedence over Image.

	Image   lsio.Image   // Program image.
	Console lsio.Console // PRN output.

	Limit int // Maximum ticks per Run; 0 is unlimited.
}

// NewEmulator creates a new emulator, printing to stdout.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Console.Output = os.Stdout
	emu.Cpu.SetChannel(&emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// LoadFile reads a text image file.
func (emu *Emulator) LoadFile(path string) (err error) {
	emu.Program = nil
	emu.Image.Verbose = emu.Verbose
	err = emu.Image.ReadFile(path)
	return
}

// LoadImage reads a text image.
func (emu *Emulator) LoadImage(input io.Reader) (err error) {
	emu.Program = nil
	emu.Image.Verbose = emu.Verbose
	err = emu.Image.Read(input)
	return
}

// Assemble assembles a source program, with the emulator defines
// predefined.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Image.Data = prog.Binary()

	return
}

// Reset the machine and load the image into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Image.Data)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the PC, or a zero Code if it
// cannot be decoded.
func (emu *Emulator) Code() cpu.Code {
	code, err := emu.Cpu.FetchCode()
	if err != nil {
		return cpu.Code{}
	}
	return code
}

// LineNo returns the source line number for the executing statement.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks until the machine halts, faults, or reaches the tick limit.
func (emu *Emulator) Run() (reason Reason, err error) {
	for ticks := 0; emu.Limit == 0 || ticks < emu.Limit; ticks++ {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			reason = REASON_FAULT
			return
		}
		if done {
			if emu.Verbose {
				log.Printf("emulator: halted after %d ticks", emu.Ticks())
			}
			reason = REASON_HALT
			return
		}
	}

	reason = REASON_LIMIT
	err = ErrTickLimit
	return
}
